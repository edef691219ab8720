package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Day is one calendar day of wall-clock time.
	Day = 24 * time.Hour

	// ActiveRetention is how long events stay in the active log.
	ActiveRetention = 7 * Day

	// DefaultArchiveRetention is the fallback archive horizon used when none is configured.
	DefaultArchiveRetention = "90d"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]time.Duration{
		"h":     time.Hour,
		"hr":    time.Hour,
		"hrs":   time.Hour,
		"hour":  time.Hour,
		"hours": time.Hour,
		"d":     Day,
		"day":   Day,
		"days":  Day,
		"w":     7 * Day,
		"wk":    7 * Day,
		"wks":   7 * Day,
		"week":  7 * Day,
		"weeks": 7 * Day,
	}
)

// ParseWindow parses a retention horizon such as "90d", "12w" or "1w3d" and
// returns the duration with its canonical compact form. A bare number is read
// as days. Empty input yields DefaultArchiveRetention.
func ParseWindow(input string) (time.Duration, string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		trimmed = DefaultArchiveRetention
	}
	if days, err := strconv.Atoi(trimmed); err == nil {
		trimmed = fmt.Sprintf("%dd", days)
	}

	remaining := trimmed
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration using day and hour tokens.
func FormatWindow(d time.Duration) string {
	if d < time.Hour {
		return "0h"
	}
	var parts []string
	if days := d / Day; days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
		d -= days * Day
	}
	if hours := d / time.Hour; hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	return strings.Join(parts, "")
}
