// Package app is the calorie counter core: it owns the in-memory snapshot and
// sequences every user action against the store.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/kcal/pkg/entry"
	"tableflip.dev/kcal/pkg/store"
)

var (
	ErrAlreadyRunning   = errors.New("app: another kcal instance is already running")
	ErrResetNotRecorded = errors.New("app: could not write reset event to log, session was not reset")
	ErrNegativeAmount   = errors.New("app: click amounts must not be negative")
)

// Tracker holds the single running counter for one base directory. It keeps
// the instance lock until Close.
type Tracker struct {
	store  *store.Store
	snap   store.Snapshot
	logger *slog.Logger
}

// Open acquires the instance lock, clears stale staged writes, loads and
// repairs the snapshot, prunes the event log and makes sure the log has a
// starting entry. Only lock
// failures are fatal; store errors past that point are logged by the store.
func Open(st *store.Store, defaults store.Snapshot) (*Tracker, error) {
	if st == nil {
		return nil, errors.New("app: no store configured")
	}
	held, err := st.Lock.Acquire()
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, ErrAlreadyRunning
	}

	t := &Tracker{store: st, logger: st.Logger()}
	_ = st.SweepStaging()
	snap, needsResave := st.State.Load(defaults)
	t.snap = snap
	if needsResave {
		_ = st.State.Save(snap)
	}
	_ = st.Log.Prune()
	_ = st.Log.EnsureInitialEntry(snap.SessionStart, snap.Calories)

	t.logger.Debug("tracker opened",
		"path", st.BasePath,
		"calories", snap.Calories,
		"session_start", snap.SessionStart)
	return t, nil
}

// Snapshot returns the current counter, step sizes and session start.
func (t *Tracker) Snapshot() store.Snapshot {
	return t.snap
}

// Add increases the counter by the left click amount. The in-memory counter
// changes even when the log append fails; the error is returned so the
// caller can tell the user the event is not durable.
func (t *Tracker) Add() error {
	step := t.snap.LeftClickAmount
	t.snap.Calories += step
	logErr := t.store.Log.Append(step, t.snap.Calories, entry.ActionAdd)
	return errors.Join(logErr, t.save())
}

// Subtract lowers the counter by the right click amount, stopping at zero.
// Nothing is logged when the counter was already zero.
func (t *Tracker) Subtract() error {
	before := t.snap.Calories
	t.snap.Calories = max(0, before-t.snap.RightClickAmount)

	var logErr error
	if actual := before - t.snap.Calories; actual > 0 {
		logErr = t.store.Log.Append(-actual, t.snap.Calories, entry.ActionSubtract)
	}
	return errors.Join(logErr, t.save())
}

// Reset zeroes the counter and starts a new session. The reset is logged
// first; if that fails nothing changes and ErrResetNotRecorded is returned.
func (t *Tracker) Reset() error {
	at := t.store.Now().Local()
	if err := t.store.Log.Append(0, 0, entry.ActionReset); err != nil {
		return fmt.Errorf("%w: %w", ErrResetNotRecorded, err)
	}
	t.snap.Calories = 0
	t.snap.SessionStart = at
	return t.save()
}

// SetAmounts replaces both click amounts.
func (t *Tracker) SetAmounts(add, subtract int) error {
	if add < 0 || subtract < 0 {
		return ErrNegativeAmount
	}
	t.snap.LeftClickAmount = add
	t.snap.RightClickAmount = subtract
	return t.save()
}

// ClearLog erases the active log and restarts the session clock.
func (t *Tracker) ClearLog() error {
	if err := t.store.Log.Clear(); err != nil {
		return err
	}
	t.snap.SessionStart = t.store.Now().Local()
	return t.save()
}

// ClearArchive erases the archive log.
func (t *Tracker) ClearArchive() error {
	return t.store.Archive.Clear()
}

// LogText renders the active log.
func (t *Tracker) LogText() string {
	return t.store.Log.ReadText()
}

// ArchiveText renders the archive log.
func (t *Tracker) ArchiveText() string {
	return t.store.Archive.ReadText()
}

// Weekly summarizes the last seven days of the active log.
func (t *Tracker) Weekly() (*WeeklySummary, error) {
	now := t.store.Now()
	w, err := BuildWeekly(t.store.Log.Since(WindowStart(now)), now)
	if err != nil && !errors.Is(err, ErrNoTrackedData) {
		t.logger.Error("failed to read weekly summary", "path", t.store.Log.Path(), "err", err)
	}
	return w, err
}

// Close releases the instance lock. The tracker must not be used afterwards.
func (t *Tracker) Close() {
	t.store.Lock.Release()
}

func (t *Tracker) save() error {
	return t.store.State.Save(t.snap)
}
