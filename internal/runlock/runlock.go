// Package runlock enforces single-instance execution per output tree. Two
// concurrent runs against the same destination would race on collision
// detection and the catalog, so the organizer takes an advisory lock inside
// the output directory before touching it.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".starsort.lock"

// ErrHeld reports that another run already holds the output tree.
var ErrHeld = errors.New("another starsort run is already organizing this output directory")

// Lock is an advisory file lock on one output directory.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock for outputDir, creating the directory if needed.
// It does not block: a held lock returns ErrHeld immediately.
func Acquire(outputDir string) (*Lock, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(outputDir, lockFileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrHeld, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Release drops the lock. Safe to call on a nil receiver.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}
