package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/turnstile"
)

func TestConfig(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	opts := &options{path: "/tmp/x.log", size: "2MB", every: time.Hour, keep: 3, maxAge: time.Minute}
	config, err := opts.config(io.Discard)
	require.NoError(t, err)
	assert.Equal([]turnstile.RotationCondition{
		turnstile.SizeThreshold(2_000_000),
		turnstile.AgeThreshold(time.Hour),
	}, config.Rotation)
	assert.Equal([]turnstile.PruneCondition{
		turnstile.MaxFileCount(3),
		turnstile.MaxAge(time.Minute),
	}, config.Prune)

	opts = &options{path: "/tmp/x.log", size: "0", keep: -1}
	config, err = opts.config(io.Discard)
	require.NoError(t, err)
	assert.Empty(config.Rotation)
	assert.Empty(config.Prune)

	opts.size = "lots"
	_, err = opts.config(io.Discard)
	assert.Error(err)
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	// Each line is a 20 byte time stamp, 300 bytes, and a newline: the 5th and 9th lines rotate.
	cmd.SetArgs([]string{
		"--path", filepath.Join(dir, "app.log"), "--size", "1kB", "--keep", "1",
		"--line-bytes", "300", "--lines", "10", "--interval", "1ms",
	})
	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := []string{}
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	assert.Equal(t, []string{"app.ACTIVE.log", "app.log.2"}, names)
}
