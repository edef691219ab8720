package entry

import (
	"encoding/json"
	"time"

	"tableflip.dev/kcal/pkg/timeutil"
)

// Timestamp is an event instant normalized to local time.
type Timestamp struct {
	time.Time
}

// SameDay reports whether t falls on the same calendar day as then, both
// viewed in then's location.
func (t Timestamp) SameDay(then time.Time) bool {
	a := t.In(then.Location())
	return a.Year() == then.Year() && a.YearDay() == then.YearDay()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, ok := timeutil.ParseTimestamp(raw)
	if !ok {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) String() string {
	return timeutil.FormatTimestamp(t.Time)
}
