// Package lock guards against overlapping evaluations with an flock(2) lock file.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// ErrConcurrentInvocation is returned when another evaluation holds the lock
var ErrConcurrentInvocation = errors.New("another evaluation is already in progress")

// FileLock is an exclusive, non-blocking lock on a file
type FileLock struct {
	path string
	file *os.File
}

// Acquire takes the lock at path without blocking. The lock is released by
// Release or when the process exits.
func Acquire(path string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("error creating lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening lock file %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrConcurrentInvocation
		}
		return nil, fmt.Errorf("error locking %s: %w", path, err)
	}

	// Owner PID is informational only
	if err := f.Truncate(0); err == nil {
		_, _ = f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	}

	return &FileLock{path: path, file: f}, nil
}

// Path returns the lock file path
func (l *FileLock) Path() string {
	return l.path
}

// Release unlocks and closes the lock file. The file itself is kept so the
// next invocation locks the same inode.
func (l *FileLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	defer func() { l.file = nil }()

	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		l.file.Close()
		return fmt.Errorf("error unlocking %s: %w", l.path, err)
	}
	return l.file.Close()
}
