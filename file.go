package turnstile

import (
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"golift.io/turnstile/filer"
)

// FileMode is the default POSIX mode for new active files.
const FileMode os.FileMode = 0o600

// Config is the data needed to create a new RotatingFile.
type Config struct {
	Filepath       string              // Base path. service.log produces service.ACTIVE.log, service.log.1, etc.
	Rotation       []RotationCondition // Rotate when any of these is satisfied. Empty never rotates.
	Prune          []PruneCondition    // Delete rotated files any of these select. Empty keeps all files.
	RequireNewline bool                // Append a newline to writes that do not end in one.
	FileMode       os.FileMode         // POSIX mode for new files.
	// PostRotate is called after a successful rotation, before pruning.
	// This is blocking, so make it snappy. Writing to the same RotatingFile from here deadlocks.
	PostRotate func(activeFile, rotatedFile string)
	// Printf receives warnings: failed pre-write stats and failed prunes. Default: log.Printf.
	Printf func(msg string, v ...any)
	// Filer may be overridden to control or mock file system procedures.
	Filer filer.Filer
}

// RotatingFile is what you get in return for providing a Config. Use this to set log output.
// You must obtain a RotatingFile by calling New().
// Calls are serialized; nothing runs in the background.
type RotatingFile struct {
	mu sync.Mutex

	config      *Config  // incoming configuration.
	dir         string   // directory containing every file in the set.
	active      string   // full path to the active file.
	index       uint     // highest known rotated index.
	file        *os.File // the active open file.
	filer.Filer          // overridable file system procedures.
}

// New takes in your configuration and returns a RotatingFile you can use with
// log.SetOutput(). The directory in Config.Filepath must already exist.
// The directory is scanned once: an existing active file is appended to and
// rotated files are numbered after the highest index found.
func New(config *Config) (*RotatingFile, error) {
	if config == nil {
		return nil, ErrNilConfig
	}

	rotator := &RotatingFile{config: config}
	rotator.setConfigDefaults()

	if err := rotator.open(); err != nil {
		return nil, err
	}

	return rotator, nil
}

// setConfigDefaults does exactly what it says. Sets missing values.
func (r *RotatingFile) setConfigDefaults() {
	if r.config.Filepath == "" {
		r.config.Filepath = filepath.Join(os.TempDir(),
			filepath.Base(os.Args[0])+"-"+path.Base(reflect.TypeFor[RotatingFile]().PkgPath())+".log")
	}

	if r.config.FileMode == 0 {
		r.config.FileMode = FileMode
	}

	if r.config.Printf == nil {
		r.config.Printf = log.Printf
	}

	if r.config.Filer == nil {
		r.config.Filer = filer.Default()
	}

	r.Filer = r.config.Filer
	r.dir = filepath.Dir(r.config.Filepath)
}

// open resolves the file set on disk and opens (or creates) the active file.
func (r *RotatingFile) open() error {
	listing, err := r.ReadDir(r.dir)
	if err != nil {
		return &IOError{Op: "list", Path: r.dir, Err: err}
	}

	set, err := Resolve(r.config.Filepath, listing)
	if err != nil {
		return err
	}

	r.index = set.Index
	r.active = set.Active

	if r.active == "" {
		r.active = filepath.Join(r.dir, ActiveName(r.config.Filepath))
	}

	r.file, err = r.OpenFile(r.active, os.O_WRONLY|os.O_APPEND|os.O_CREATE, r.config.FileMode)
	if err != nil {
		return &IOError{Op: "open", Path: r.active, Err: err}
	}

	return nil
}

// Write rotates the active file if a rotation condition is satisfied, then
// appends p to the active file. This satisfies the io.Writer interface.
// Either all of p lands in one file or an error is returned.
// With RequireNewline, a newline is appended when p does not end in one;
// it is not counted in the returned length.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, ErrClosed
	}

	if r.rotationDue() {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	return r.write(p)
}

// WriteAll is Write without the count. A nil return means all of p was appended.
func (r *RotatingFile) WriteAll(p []byte) error {
	_, err := r.Write(p)

	return err
}

// WriteString is Write for strings. This satisfies the io.StringWriter interface.
func (r *RotatingFile) WriteString(s string) (int, error) {
	return r.Write([]byte(s))
}

// rotationDue stats the active file and asks the rotation conditions.
// A failed stat is a warning, and the write goes ahead without rotating.
func (r *RotatingFile) rotationDue() bool {
	if len(r.config.Rotation) == 0 {
		return false
	}

	info, err := r.Stat(r.active)
	if err != nil {
		r.warn(&Warning{Op: "stat", Path: r.active, Err: err})

		return false
	}

	return ShouldRotate(info, time.Now(), r.config.Rotation...)
}

// write appends to the active file, adding a trailing newline if needed.
func (r *RotatingFile) write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	buf := p
	if r.config.RequireNewline && p[len(p)-1] != '\n' {
		buf = make([]byte, len(p)+1)
		copy(buf, p)
		buf[len(p)] = '\n'
	}

	size, err := r.file.Write(buf)
	if err != nil {
		return min(size, len(p)), &IOError{Op: "write", Path: r.active, Err: err}
	}

	return len(p), nil
}

// Index returns the highest rotated index known to this session.
// It never rescans the directory, so it lags behind files changed by other processes.
func (r *RotatingFile) Index() uint {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.index
}

// ActivePath returns the full path of the file currently receiving writes.
func (r *RotatingFile) ActivePath() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.active
}

// Rotate forces the active file to rotate immediately, regardless of the rotation conditions.
func (r *RotatingFile) Rotate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return ErrClosed
	}

	return r.rotate()
}

// Sync commits the active file's contents to stable storage.
func (r *RotatingFile) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return ErrClosed
	}

	if err := r.file.Sync(); err != nil {
		return &IOError{Op: "sync", Path: r.active, Err: err}
	}

	return nil
}

// Close closes the active file. It is left on disk as-is.
// Writes after Close return ErrClosed. Closing twice is a no-op.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil

	if err != nil {
		return &IOError{Op: "close", Path: r.active, Err: err}
	}

	return nil
}

// warn sends an absorbed failure to the configured Printf.
func (r *RotatingFile) warn(w *Warning) {
	r.config.Printf("[turnstile] WARNING: %v", w)
}

// Our RotatingFile must satify an io.WriteCloser and io.StringWriter.
var (
	_ io.WriteCloser  = (*RotatingFile)(nil)
	_ io.StringWriter = (*RotatingFile)(nil)
)
