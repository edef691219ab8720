package app

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"tableflip.dev/kcal/pkg/entry"
	"tableflip.dev/kcal/pkg/timeutil"
)

// WeekDays is the length of the weekly window, today included.
const WeekDays = 7

// Messages shown in place of a weekly summary.
const (
	NoTrackedDataText = "No tracked data in the last 7 days."
	WeeklyFailedText  = "Failed to read weekly summary."
)

// ErrNoTrackedData is returned by BuildWeekly when no counted event falls in
// the window.
var ErrNoTrackedData = errors.New("app: no tracked data in the last 7 days")

// DaySummary is one calendar day of the tracked period.
type DaySummary struct {
	Day     time.Time
	Key     string
	Label   string
	Net     int
	HasData bool
}

// DayBar is one bar of the weekly chart. Only days with data get a bar.
type DayBar struct {
	DayKey string
	Label  string
	Net    int
}

// WeeklySummary is the net calorie change per day over the tracked part of
// the last seven days.
type WeeklySummary struct {
	// Days covers every day from the tracked start through today, oldest first.
	Days []DaySummary
	Bars []DayBar

	Total        int
	Average      float64
	TrackedStart time.Time
}

// WindowStart is local midnight six days before now, in now's location.
func WindowStart(now time.Time) time.Time {
	return timeutil.StartOfDay(now).AddDate(0, 0, -(WeekDays - 1))
}

// BuildWeekly sums event deltas per calendar day for the week ending on now's
// day. Days before the earliest counted event are not part of the summary.
// ErrNoTrackedData is returned when there is no such event; a read failure
// from events is returned wrapped.
func BuildWeekly(events iter.Seq2[*entry.Event, error], now time.Time) (*WeeklySummary, error) {
	loc := now.Location()
	start := WindowStart(now)

	days := make([]DaySummary, WeekDays)
	index := make(map[string]int, WeekDays)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = DaySummary{Day: d, Key: timeutil.DayKey(d), Label: timeutil.DayLabel(d)}
		index[days[i].Key] = i
	}

	var first time.Time
	for e, err := range events {
		if err != nil {
			return nil, fmt.Errorf("app: read weekly events: %w", err)
		}
		if !e.Action.Counted() || !e.Dated() || !e.DeltaOK {
			continue
		}
		at := e.Timestamp.In(loc)
		i, ok := index[timeutil.DayKey(at)]
		if !ok {
			continue
		}
		if first.IsZero() || at.Before(first) {
			first = at
		}
		days[i].Net += e.Delta
		days[i].HasData = true
	}
	if first.IsZero() {
		return nil, ErrNoTrackedData
	}

	summary := &WeeklySummary{TrackedStart: first}
	firstDay := timeutil.StartOfDay(first)
	for _, d := range days {
		if d.Day.Before(firstDay) {
			continue
		}
		summary.Days = append(summary.Days, d)
		summary.Total += d.Net
		if d.HasData {
			summary.Bars = append(summary.Bars, DayBar{DayKey: d.Key, Label: d.Label, Net: d.Net})
		}
	}
	summary.Average = float64(summary.Total) / float64(len(summary.Days))
	return summary, nil
}

// Lines renders one line per day, a blank line, then the period totals.
func (w *WeeklySummary) Lines() []string {
	lines := make([]string, 0, len(w.Days)+3)
	for _, d := range w.Days {
		if d.HasData {
			lines = append(lines, fmt.Sprintf("%s (%s): net %+d kcal", d.Key, d.Label, d.Net))
		} else {
			lines = append(lines, fmt.Sprintf("%s (%s): no data", d.Key, d.Label))
		}
	}
	return append(lines,
		"",
		fmt.Sprintf("Tracked-period net: %+d kcal", w.Total),
		fmt.Sprintf("Tracked-period average net: %+.1f kcal/day", w.Average),
	)
}

func (w *WeeklySummary) Text() string {
	return strings.Join(w.Lines(), "\n")
}
