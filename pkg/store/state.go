package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"tableflip.dev/kcal/pkg/entry"
	"tableflip.dev/kcal/pkg/timeutil"
)

// Snapshot is the current counter state. It is always written whole.
type Snapshot struct {
	Calories         int
	LeftClickAmount  int
	RightClickAmount int
	SessionStart     time.Time
}

type stateFile struct {
	Calories         int             `json:"calories"`
	LeftClickAmount  int             `json:"left_click_amount"`
	RightClickAmount int             `json:"right_click_amount"`
	SessionStart     entry.Timestamp `json:"session_start"`
}

// StateStore persists the snapshot in state.json.
type StateStore struct {
	files  *atomicFiles
	now    func() time.Time
	logger *slog.Logger
}

func (s *StateStore) Path() string {
	return s.files.Path(StateFile)
}

// Load reads the snapshot, repairing missing or invalid fields from defaults.
// The returned flag is true when the repaired snapshot should be saved before
// anything else happens.
func (s *StateStore) Load(defaults Snapshot) (Snapshot, bool) {
	fallback := Snapshot{
		Calories:         0,
		LeftClickAmount:  max(0, defaults.LeftClickAmount),
		RightClickAmount: max(0, defaults.RightClickAmount),
		SessionStart:     s.now().Local().Truncate(time.Second),
	}

	rc, err := s.files.Open(StateFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("failed to load state file", "path", s.Path(), "err", err)
		}
		return fallback, true
	}
	defer rc.Close()

	var fields map[string]any
	dec := json.NewDecoder(rc)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || fields == nil {
		s.logger.Error("failed to parse state file", "path", s.Path(), "err", err)
		return fallback, true
	}

	repaired := false
	field := func(name string, def int) int {
		raw, ok := fields[name]
		if !ok {
			repaired = true
			return def
		}
		v, ok := entry.Number(raw)
		if !ok {
			s.logger.Warn("invalid state field, using default", "field", name, "value", raw)
			repaired = true
			return def
		}
		if v < 0 {
			repaired = true
			return 0
		}
		return v
	}

	snap := Snapshot{
		Calories:         field("calories", 0),
		LeftClickAmount:  field("left_click_amount", fallback.LeftClickAmount),
		RightClickAmount: field("right_click_amount", fallback.RightClickAmount),
	}

	raw, _ := fields["session_start"].(string)
	start, ok := timeutil.ParseTimestamp(raw)
	if !ok {
		start = fallback.SessionStart
		repaired = true
	}
	snap.SessionStart = start
	return snap, repaired
}

// Save replaces state.json with snap. Failures are logged and returned; the
// caller's in-memory snapshot stays authoritative.
func (s *StateStore) Save(snap Snapshot) error {
	data, err := json.Marshal(stateFile{
		Calories:         max(0, snap.Calories),
		LeftClickAmount:  snap.LeftClickAmount,
		RightClickAmount: snap.RightClickAmount,
		SessionStart:     entry.Timestamp{Time: snap.SessionStart},
	})
	if err != nil {
		return err
	}
	if err := s.files.Write(StateFile, data); err != nil {
		s.logger.Error("failed to save state file", "path", s.Path(), "err", err)
		return err
	}
	return nil
}
