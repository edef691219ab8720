package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Locker is a process-scoped, non-blocking, exclusive lock.
type Locker interface {
	// Acquire reports false without error when another process holds the lock.
	Acquire() (bool, error)
	// Release is idempotent and safe to call without a prior Acquire.
	Release()
}

// InstanceLock is an advisory OS lock on a well-known file. It only guards
// against a second copy of this program; other writers are not blocked.
type InstanceLock struct {
	path   string
	file   *os.File
	logger *slog.Logger
}

var _ Locker = (*InstanceLock)(nil)

// NewInstanceLock returns an unheld lock on path.
func NewInstanceLock(path string, logger *slog.Logger) *InstanceLock {
	if logger == nil {
		logger = slog.Default()
	}
	return &InstanceLock{path: path, logger: logger}
}

func (l *InstanceLock) Path() string {
	return l.path
}

func (l *InstanceLock) Acquire() (bool, error) {
	if l.file != nil {
		return true, nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("store: ensure lock directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return false, fmt.Errorf("store: open lock %s: %w", l.path, err)
	}

	held, err := tryLock(f)
	if err != nil {
		_ = f.Close()
		return false, fmt.Errorf("store: lock %s: %w", l.path, err)
	}
	if !held {
		_ = f.Close()
		l.logger.Error("another instance is already running", "path", l.path)
		return false, nil
	}

	// The pid is for humans poking at the file; failing to write it is not fatal.
	if err := f.Truncate(0); err == nil {
		if _, err := f.WriteAt([]byte(fmt.Sprintf("%d\n", os.Getpid())), 0); err != nil {
			l.logger.Warn("failed to record pid in lock file", "path", l.path, "err", err)
		}
	} else {
		l.logger.Warn("failed to truncate lock file", "path", l.path, "err", err)
	}

	l.file = f
	return true, nil
}

func (l *InstanceLock) Release() {
	if l.file == nil {
		return
	}
	if err := unlock(l.file); err != nil {
		l.logger.Error("failed to release instance lock", "path", l.path, "err", err)
	}
	if err := l.file.Close(); err != nil {
		l.logger.Error("failed to close instance lock", "path", l.path, "err", err)
	}
	l.file = nil
}
