package store

import (
	"iter"
	"log/slog"
	"time"

	"tableflip.dev/kcal/pkg/entry"
)

const (
	noLogEvents   = "No log events yet."
	logReadFailed = "Failed to read log."
)

// logFile is the behaviour shared by the active log and the archive.
type logFile struct {
	files     *atomicFiles
	name      string
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

func (l *logFile) Path() string {
	return l.files.Path(l.name)
}

// Retention is how long records survive pruning.
func (l *logFile) Retention() time.Duration {
	return l.retention
}

// Clear replaces the file with an empty one.
func (l *logFile) Clear() error {
	if err := l.files.Write(l.name, nil); err != nil {
		l.logger.Error("failed to clear log", "path", l.Path(), "err", err)
		return err
	}
	return nil
}

func (l *logFile) cutoff() time.Time {
	return l.now().Add(-l.retention)
}

// EventLog is the append-only record of mutations for the trailing seven
// days. Older records are moved to the archive on every prune.
type EventLog struct {
	logFile
	archive *ArchiveLog
}

// Append records one event stamped now, syncs it to disk and prunes. An
// error means the event is not durable.
func (l *EventLog) Append(delta, caloriesAfter int, action entry.Action) error {
	e := entry.New(l.now(), delta, caloriesAfter, action)
	if err := appendLines(l.Path(), [][]byte{e.Line()}); err != nil {
		l.logger.Error("failed to append session log", "path", l.Path(), "err", err)
		return err
	}
	// The event is already durable; a failed prune is retried on the next append.
	_ = l.Prune()
	return nil
}

// EnsureInitialEntry seeds an init record at sessionStart when the log holds
// no dated record, so the tracked period always has a start.
func (l *EventLog) EnsureInitialEntry(sessionStart time.Time, calories int) error {
	if l.HasEvents() {
		return nil
	}
	e := entry.New(sessionStart, 0, calories, entry.ActionInit)
	if err := appendLines(l.Path(), [][]byte{e.Line()}); err != nil {
		l.logger.Error("failed to seed initial log entry", "path", l.Path(), "err", err)
		return err
	}
	return nil
}

// HasEvents reports whether at least one record carries a parseable timestamp.
func (l *EventLog) HasEvents() bool {
	found := false
	err := forEachEvent(l.files, l.name, func(e *entry.Event) bool {
		found = e.Dated()
		return !found
	})
	if err != nil {
		l.logger.Error("failed to inspect session log", "path", l.Path(), "err", err)
	}
	return found
}

// Prune keeps the last seven days in the active log and moves older records
// to the archive. The archive is written first: if that fails the active log
// is left as is, so a record can be duplicated across both files but is
// never lost. Undated or malformed lines are dropped.
func (l *EventLog) Prune() error {
	split, exists, err := splitByAge(l.files, l.name, l.cutoff())
	if err != nil {
		l.logger.Error("failed to prune session log", "path", l.Path(), "err", err)
		return err
	}
	if !exists {
		return l.archive.Prune()
	}

	if err := l.archive.AppendLines(split.evicted); err != nil {
		return err
	}
	if err := l.files.Write(l.name, joinLines(split.kept)); err != nil {
		l.logger.Error("failed to prune session log", "path", l.Path(), "err", err)
		return err
	}
	if len(split.evicted) > 0 {
		l.logger.Debug("archived session events", "count", len(split.evicted))
	}
	return l.archive.Prune()
}

// ReadText renders the active log for display.
func (l *EventLog) ReadText() string {
	return l.renderText(noLogEvents, logReadFailed)
}

// Since yields the dated records at or after start in file order. Each range
// over the sequence re-reads the file. A read failure is yielded once as an
// error.
func (l *EventLog) Since(start time.Time) iter.Seq2[*entry.Event, error] {
	return func(yield func(*entry.Event, error) bool) {
		stopped := false
		err := forEachEvent(l.files, l.name, func(e *entry.Event) bool {
			if !e.Dated() || e.Timestamp.Before(start) {
				return true
			}
			if !yield(e, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(nil, err)
		}
	}
}
