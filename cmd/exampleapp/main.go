// Package main is a simple example app to write logs to see log rotation in action.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"golift.io/turnstile"
)

// ///////////////////////////////////////////////////////////////////////// //

/* This is a simple example app to write logs to see log rotation in action. */

// Usage, rotate at 1MB and keep 10 files:
//   go run ./cmd/exampleapp --size 1MB --keep 10
//
// Usage, rotate every 2 seconds, delete files older than 10 seconds, watch the directory:
//   go run ./cmd/exampleapp --every 2s --max-age 10s --watch

const (
	logFilePath     = "/tmp/myfolder/myfile.log"
	logFileSize     = "1MB"
	bytesPerLogLine = 5000
	timeBetweenLogs = time.Millisecond * 5
	dirMode         = 0o750
)

// ///////////////////////////////////////////////////////////////////////// //

type options struct {
	path      string
	size      string
	every     time.Duration
	keep      int
	maxAge    time.Duration
	newline   bool
	lineBytes int
	lines     int
	interval  time.Duration
	watch     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "exampleapp",
		Short: "Write fake logs to see log rotation in action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.path, "path", "p", logFilePath, "base path of the log file")
	flags.StringVarP(&opts.size, "size", "s", logFileSize, "rotate once the active file is larger than this (0 disables)")
	flags.DurationVarP(&opts.every, "every", "e", 0, "rotate once the active file goes this long without a write")
	flags.IntVarP(&opts.keep, "keep", "k", -1, "number of rotated files to keep (-1 keeps all)")
	flags.DurationVar(&opts.maxAge, "max-age", 0, "delete rotated files older than this (0 keeps all)")
	flags.BoolVar(&opts.newline, "newline", true, "make sure every write ends with a newline")
	flags.IntVar(&opts.lineBytes, "line-bytes", bytesPerLogLine, "bytes per fake log line")
	flags.IntVarP(&opts.lines, "lines", "n", 0, "stop after this many lines (0 runs forever)")
	flags.DurationVar(&opts.interval, "interval", timeBetweenLogs, "time between log lines")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "print file events in the log directory")

	return cmd
}

// config turns command line flags into a turnstile.Config.
func (o *options) config(output io.Writer) (*turnstile.Config, error) {
	config := &turnstile.Config{
		Filepath:       o.path,
		RequireNewline: o.newline,
		Printf:         log.New(output, "", log.LstdFlags).Printf,
		PostRotate: func(activeFile, rotatedFile string) {
			fmt.Fprintf(output, "\nfile rotated: %s -> %s\n", activeFile, rotatedFile)
		},
	}

	size, err := units.FromHumanSize(o.size)
	if err != nil {
		return nil, fmt.Errorf("invalid size %q: %w", o.size, err)
	}

	if size > 0 {
		config.Rotation = append(config.Rotation, turnstile.SizeThreshold(size))
	}

	if o.every > 0 {
		config.Rotation = append(config.Rotation, turnstile.AgeThreshold(o.every))
	}

	if o.keep >= 0 {
		config.Prune = append(config.Prune, turnstile.MaxFileCount(o.keep))
	}

	if o.maxAge > 0 {
		config.Prune = append(config.Prune, turnstile.MaxAge(o.maxAge))
	}

	return config, nil
}

func run(output io.Writer, opts *options) error {
	config, err := opts.config(output)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(config.Filepath), dirMode); err != nil {
		return fmt.Errorf("making log directory: %w", err)
	}

	if opts.watch {
		stop, err := watch(filepath.Dir(config.Filepath), output)
		if err != nil {
			return err
		}
		defer stop() //nolint:errcheck
	}

	rotator, err := turnstile.New(config)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer rotator.Close()

	return makeLogs(log.New(rotator, "", log.LstdFlags), output, opts)
}

// Write fake logs!
func makeLogs(logger *log.Logger, output io.Writer, opts *options) error {
	logLine := string(bytes.Repeat([]byte{'_'}, opts.lineBytes))

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	for count := 1; ; count++ {
		<-ticker.C
		fmt.Fprint(output, ".")

		if err := logger.Output(0, logLine); err != nil {
			return fmt.Errorf("writing log line %d: %w", count, err)
		}

		if opts.lines > 0 && count >= opts.lines {
			return nil
		}
	}
}
