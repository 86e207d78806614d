package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the name of the lock file created inside a locked directory.
const LockFileName = ".lock"

// DirLock is an exclusive, inter-process lock on a directory. The node
// holds it on its storage directory while running, and maintenance actions
// acquire it before touching storage, so the two never overlap.
type DirLock struct {
	lockFile *flock.Flock
	path     string
}

// NewDirLock returns an unacquired lock for dir. The lock file lives inside dir.
func NewDirLock(dir string) *DirLock {
	lockPath := filepath.Join(dir, LockFileName)
	return &DirLock{
		lockFile: flock.New(lockPath),
		path:     lockPath,
	}
}

// Lock acquires the lock without blocking. It creates dir if it does not exist
// and fails if another process already holds the lock.
func (l *DirLock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("could not create directory for lock file %s: %w", l.path, err)
	}

	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("could not acquire lock %s: %w", l.path, err)
	}
	if !locked {
		return fmt.Errorf("directory %s is in use by another process", filepath.Dir(l.path))
	}
	return nil
}

// Unlock releases the lock.
func (l *DirLock) Unlock() error {
	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("could not release lock %s: %w", l.path, err)
	}
	return nil
}

// Path returns the path of the lock file.
func (l *DirLock) Path() string {
	return l.path
}
