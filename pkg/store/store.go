// Package store persists the counter snapshot and its event history under a
// single base directory.
package store

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"tableflip.dev/kcal/pkg/timeutil"
)

// Files under the base path.
const (
	StateFile      = "state.json"
	SessionLogFile = "session_log.jsonl"
	ArchiveLogFile = "log_archive.jsonl"
	LockFile       = "app.lock"
)

// Store bundles every on-disk component of one base directory.
type Store struct {
	BasePath string
	Defaults Snapshot

	State   *StateStore
	Log     *EventLog
	Archive *ArchiveLog
	Lock    *InstanceLock

	files  *atomicFiles
	now    func() time.Time
	logger *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp and prune events.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger overrides the logger; slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open wires a Store for cfg. A nil cfg loads the user configuration. No file
// is touched until a component is used.
func Open(cfg Config, opts ...Option) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	base := cfg.BasePath()
	if base == "" {
		return nil, errors.New("store: base path unknown")
	}
	retention := cfg.ArchiveRetention()
	if retention <= 0 {
		retention, _, _ = timeutil.ParseWindow(timeutil.DefaultArchiveRetention)
	}

	s := &Store{
		BasePath: base,
		Defaults: cfg.Defaults(),
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	files := newAtomicFiles(base)
	s.files = files
	s.State = &StateStore{files: files, now: s.now, logger: s.logger}
	s.Archive = &ArchiveLog{logFile{
		files:     files,
		name:      ArchiveLogFile,
		retention: retention,
		now:       s.now,
		logger:    s.logger,
	}}
	s.Log = &EventLog{
		logFile: logFile{
			files:     files,
			name:      SessionLogFile,
			retention: timeutil.ActiveRetention,
			now:       s.now,
			logger:    s.logger,
		},
		archive: s.Archive,
	}
	s.Lock = NewInstanceLock(filepath.Join(base, LockFile), s.logger)
	return s, nil
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Logger returns the logger shared by the store's components.
func (s *Store) Logger() *slog.Logger {
	return s.logger
}

// SweepStaging deletes files orphaned in the staging directory by failed
// writes. Call it only while holding the instance lock.
func (s *Store) SweepStaging() error {
	if err := s.files.Sweep(); err != nil {
		s.logger.Warn("failed to sweep staging directory", "path", s.BasePath, "err", err)
		return err
	}
	return nil
}
