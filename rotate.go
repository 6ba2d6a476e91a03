package turnstile

import (
	"os"
	"path/filepath"
	"time"
)

// rotate renames the active file to the next index and opens a new active file.
// If either step fails the previous state is kept and an *IOError is returned.
// Pruning follows; its failures are only warnings.
func (r *RotatingFile) rotate() error {
	var (
		next    = r.index + 1
		rotated = filepath.Join(r.dir, RotatedName(r.config.Filepath, next))
		active  = filepath.Join(r.dir, ActiveName(r.config.Filepath))
	)

	if err := r.Rename(r.active, rotated); err != nil {
		return &IOError{Op: "rename", Path: r.active, Err: err}
	}

	file, err := r.OpenFile(active, os.O_WRONLY|os.O_APPEND|os.O_CREATE, r.config.FileMode)
	if err != nil {
		// Put the old active file back so the caller sees nothing changed.
		// If that fails too, keep writing where the handle points now;
		// the next rotation renames it onto itself and creates the active file.
		if rbErr := r.Rename(rotated, r.active); rbErr != nil {
			r.warn(&Warning{Op: "rollback", Path: rotated, Err: rbErr})
			r.active = rotated
		}

		return &IOError{Op: "create", Path: active, Err: err}
	}

	if err := r.file.Close(); err != nil {
		r.warn(&Warning{Op: "close", Path: rotated, Err: err})
	}

	r.file = file
	r.active = active
	r.index = next

	if r.config.PostRotate != nil {
		r.config.PostRotate(active, rotated)
	}

	r.prune()

	return nil
}

// prune deletes the rotated files selected by the prune conditions.
// This is best-effort: a file that fails to delete is tried again next rotation.
func (r *RotatingFile) prune() {
	if len(r.config.Prune) == 0 {
		return
	}

	listing, err := r.ReadDir(r.dir)
	if err != nil {
		r.warn(&Warning{Op: "list", Path: r.dir, Err: err})

		return
	}

	set, err := Resolve(r.config.Filepath, listing)
	if err != nil {
		r.warn(&Warning{Op: "resolve", Path: r.dir, Err: err})

		return
	}

	for _, file := range FilesToDelete(set.Rotated, time.Now(), r.config.Prune...) {
		if err := r.Remove(file.Path); err != nil {
			r.warn(&Warning{Op: "remove", Path: file.Path, Err: err})
		}
	}
}
