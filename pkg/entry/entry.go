// Package entry defines the mutation events recorded in the session and
// archive logs, one JSON object per line.
package entry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/kcal/pkg/timeutil"
)

// Action names the user action that produced an event.
type Action string

const (
	ActionAdd      Action = "add"
	ActionSubtract Action = "subtract"
	ActionReset    Action = "reset"
	ActionInit     Action = "init"
)

// Counted reports whether events with this action contribute to daily totals.
func (a Action) Counted() bool {
	switch a {
	case ActionAdd, ActionSubtract, ActionReset, ActionInit:
		return true
	}
	return false
}

// ErrMalformed is returned by Parse for lines that are not a JSON object.
var ErrMalformed = errors.New("entry: malformed record")

// Event is one log record. Records read back from disk may be partially
// valid: Timestamp is zero when the stored timestamp is missing or
// unparseable, and DeltaOK is false when delta is not an integer.
type Event struct {
	Timestamp     Timestamp
	RawTimestamp  string
	Delta         int
	DeltaOK       bool
	CaloriesAfter int
	Action        Action

	afterText string
	line      []byte
}

type wireEvent struct {
	Timestamp     Timestamp `json:"timestamp"`
	Delta         int       `json:"delta"`
	CaloriesAfter int       `json:"calories_after"`
	Action        Action    `json:"action"`
}

// New builds an event stamped at the given instant, truncated to seconds.
func New(at time.Time, delta, caloriesAfter int, action Action) *Event {
	ts := Timestamp{Time: at.Local().Truncate(time.Second)}
	e := &Event{
		Timestamp:     ts,
		RawTimestamp:  ts.String(),
		Delta:         delta,
		DeltaOK:       true,
		CaloriesAfter: caloriesAfter,
		Action:        action,
		afterText:     strconv.Itoa(caloriesAfter),
	}
	e.line, _ = json.Marshal(wireEvent{
		Timestamp:     ts,
		Delta:         delta,
		CaloriesAfter: caloriesAfter,
		Action:        action,
	})
	return e
}

// Parse decodes one log line. Only lines that are not a JSON object fail;
// invalid fields are reported through Dated and DeltaOK instead.
func Parse(line []byte) (*Event, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrMalformed)
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformed)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, line); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	e := &Event{line: compact.Bytes()}
	if raw, ok := fields["timestamp"]; ok {
		e.RawTimestamp = valueText(raw, "")
		if s, ok := raw.(string); ok {
			if t, ok := timeutil.ParseTimestamp(s); ok {
				e.Timestamp = Timestamp{Time: t}
			}
		}
	}
	if raw, ok := fields["delta"]; ok {
		e.Delta, e.DeltaOK = Number(raw)
	} else {
		e.DeltaOK = true
	}
	if raw, ok := fields["calories_after"]; ok {
		e.CaloriesAfter, _ = Number(raw)
		e.afterText = valueText(raw, "?")
	} else {
		e.afterText = "?"
	}
	if s, ok := fields["action"].(string); ok {
		e.Action = Action(s)
	}
	return e, nil
}

// Dated reports whether the event carries a parseable timestamp.
func (e *Event) Dated() bool {
	return !e.Timestamp.IsZero()
}

// Line returns the compact JSON form of the event without a trailing newline.
func (e *Event) Line() []byte {
	return e.line
}

// Text renders the event as a human-readable log line. It reports false when
// the delta is not an integer.
func (e *Event) Text() (string, bool) {
	if !e.DeltaOK {
		return "", false
	}
	stamp := e.RawTimestamp
	if stamp == "" {
		stamp = "unknown time"
	}
	return fmt.Sprintf("%s | %+d kcal | total=%s", stamp, e.Delta, e.afterText), true
}

// Number coerces a decoded JSON value (json.Number, numeric string or bool)
// to an int. Fractional numbers are truncated.
func Number(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func valueText(v any, fallback string) string {
	switch n := v.(type) {
	case nil:
		return fallback
	case string:
		return n
	case json.Number:
		return n.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(b)
}
