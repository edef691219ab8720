package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/kcal/pkg/entry"
)

type testConfig struct {
	path      string
	retention time.Duration
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) ArchiveRetention() time.Duration {
	return t.retention
}

func (t testConfig) Defaults() Snapshot {
	return Snapshot{LeftClickAmount: DefaultLeftClickAmount, RightClickAmount: DefaultRightClickAmount}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: testNow}
	s, err := Open(testConfig{path: t.TempDir(), retention: 90 * 24 * time.Hour}, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s, clock
}

func eventLine(at time.Time, delta, after int, action entry.Action) string {
	return string(entry.New(at, delta, after, action).Line())
}

func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

// datedEvents parses path and returns the records that carry a timestamp.
func datedEvents(t *testing.T, path string) []*entry.Event {
	t.Helper()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var out []*entry.Event
	for _, line := range strings.Split(string(b), "\n") {
		e, err := entry.Parse([]byte(line))
		if err != nil || !e.Dated() {
			continue
		}
		out = append(out, e)
	}
	return out
}
