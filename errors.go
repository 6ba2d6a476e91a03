package turnstile

import (
	"errors"
	"fmt"
)

// Custom errors returned by this package.
var (
	ErrNilConfig    = errors.New("nil Config provided")
	ErrCorruptState = errors.New("more than one file claims to be active")
	ErrClosed       = errors.New("rotating file is closed")
)

// IOError is returned when a filesystem primitive fails in a way that leaves
// the library unable to say which file is active: opening the active file,
// renaming it, creating its replacement or writing to it.
type IOError struct {
	Op   string // list, open, rename, create, write, sync, close
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Warning describes a failure that was absorbed. The pre-write stat and the
// prune pass produce these; they are sent to Config.Printf and never returned.
type Warning struct {
	Op   string // stat, list, resolve, remove, close, rollback
	Path string
	Err  error
}

func (w *Warning) Error() string {
	return fmt.Sprintf("%s %s: %v", w.Op, w.Path, w.Err)
}

func (w *Warning) Unwrap() error {
	return w.Err
}
