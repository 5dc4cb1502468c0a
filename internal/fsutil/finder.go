// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when an upward search reaches its limit without a match.
var ErrNotFound = errors.New("no matching file found")

// FindUp searches dir and then each of its parents for the first existing
// regular file among names, checked in the given order at every level. The
// search stops after stopAt when it is non-empty, or at the filesystem root.
func FindUp(dir string, stopAt string, names ...string) (string, error) {
	if len(names) == 0 {
		panic("names must not be empty")
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if stopAt != "" {
		if stopAt, err = filepath.Abs(stopAt); err != nil {
			return "", err
		}
	}

	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}

		if dir == stopAt {
			return "", ErrNotFound
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNotFound
		}
		dir = parent
	}
}
