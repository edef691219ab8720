// Package timeutil normalizes timestamps to the local zone and parses
// retention windows.
package timeutil

import (
	"strings"
	"time"
)

const (
	// LayoutDay keys calendar days.
	LayoutDay = "2006-01-02"

	// LayoutStamp is the on-disk timestamp form: RFC3339 at seconds precision.
	LayoutStamp = time.RFC3339
)

// Offset-carrying layouts, tried in order.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
}

// Layouts without an offset are read as local wall time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	LayoutDay,
}

// ParseTimestamp parses an ISO-8601 timestamp and normalizes it to local
// time. It reports false for empty or unparseable input.
func ParseTimestamp(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Local(), true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t in local time with its offset, truncated to seconds.
func FormatTimestamp(t time.Time) string {
	return t.Local().Truncate(time.Second).Format(LayoutStamp)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey returns the calendar-day key of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(LayoutDay)
}

// DayLabel returns the abbreviated weekday name of t.
func DayLabel(t time.Time) string {
	return t.Format("Mon")
}
