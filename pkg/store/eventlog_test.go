package store

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kcal/pkg/entry"
)

const day = 24 * time.Hour

func TestEventLogAppendAndRead(t *testing.T) {
	s, clock := newTestStore(t)

	assert.Equal(t, "No log events yet.", s.Log.ReadText())

	require.NoError(t, s.Log.Append(50, 50, entry.ActionAdd))
	clock.now = clock.now.Add(time.Minute)
	require.NoError(t, s.Log.Append(-10, 40, entry.ActionSubtract))

	lines := strings.Split(s.Log.ReadText(), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " | +50 kcal | total=50"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " | -10 kcal | total=40"), lines[1])

	events := datedEvents(t, s.Log.Path())
	require.Len(t, events, 2)
	assert.Equal(t, entry.ActionAdd, events[0].Action)
	assert.Equal(t, entry.ActionSubtract, events[1].Action)
	assert.True(t, events[1].Timestamp.Equal(testNow.Add(time.Minute)))
}

func TestEventLogPruneMovesOldRecords(t *testing.T) {
	s, _ := newTestStore(t)
	writeLines(t, s.Log.Path(),
		eventLine(testNow.Add(-10*day), 0, 0, entry.ActionInit),
		eventLine(testNow.Add(-8*day), 100, 100, entry.ActionAdd),
		`not json at all`,
		`{"delta": 5, "calories_after": 105, "action": "add"}`,
		eventLine(testNow.Add(-2*day), -5, 95, entry.ActionSubtract),
		eventLine(testNow.Add(-time.Hour), 10, 105, entry.ActionAdd),
	)

	require.NoError(t, s.Log.Prune())

	cutoff := testNow.Add(-7 * day)
	active := datedEvents(t, s.Log.Path())
	archived := datedEvents(t, s.Archive.Path())
	require.Len(t, active, 2)
	require.Len(t, archived, 2)
	for _, e := range active {
		assert.False(t, e.Timestamp.Before(cutoff), "active log kept %s", e.Timestamp)
	}
	for _, e := range archived {
		assert.True(t, e.Timestamp.Before(cutoff), "archive received %s", e.Timestamp)
	}

	// Malformed and undated lines are gone from both files.
	assert.NotContains(t, readFile(t, s.Log.Path()), "not json")
	assert.NotContains(t, readFile(t, s.Archive.Path()), "not json")
	assert.Equal(t, 2, strings.Count(readFile(t, s.Log.Path()), "\n"))
}

func TestEventLogPruneIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	writeLines(t, s.Log.Path(),
		eventLine(testNow.Add(-9*day), 20, 20, entry.ActionAdd),
		eventLine(testNow.Add(-day), 30, 50, entry.ActionAdd),
	)

	require.NoError(t, s.Log.Prune())
	activeOnce := readFile(t, s.Log.Path())
	archiveOnce := readFile(t, s.Archive.Path())

	require.NoError(t, s.Log.Prune())
	assert.Equal(t, activeOnce, readFile(t, s.Log.Path()))
	assert.Equal(t, archiveOnce, readFile(t, s.Archive.Path()))
}

func TestEventLogPrunePreservesUnknownFields(t *testing.T) {
	s, _ := newTestStore(t)
	old := testNow.Add(-8 * day).Format(time.RFC3339)
	writeLines(t, s.Log.Path(),
		`{"timestamp": "`+old+`", "delta": 5, "calories_after": 5, "action": "add", "note": "snack"}`,
	)

	require.NoError(t, s.Log.Prune())

	assert.Empty(t, readFile(t, s.Log.Path()))
	assert.JSONEq(t,
		`{"timestamp": "`+old+`", "delta": 5, "calories_after": 5, "action": "add", "note": "snack"}`,
		strings.TrimSpace(readFile(t, s.Archive.Path())))
}

func TestEventLogPruneArchiveFailureKeepsActiveLog(t *testing.T) {
	s, _ := newTestStore(t)
	writeLines(t, s.Log.Path(),
		eventLine(testNow.Add(-8*day), 20, 20, entry.ActionAdd),
		eventLine(testNow.Add(-day), 30, 50, entry.ActionAdd),
	)
	before := readFile(t, s.Log.Path())

	// Appending to a directory fails.
	require.NoError(t, os.MkdirAll(s.Archive.Path(), 0o755))

	assert.Error(t, s.Log.Prune())
	assert.Equal(t, before, readFile(t, s.Log.Path()))
}

func TestEventLogPruneMissingFile(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Log.Prune())

	_, err := os.Stat(s.Log.Path())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestArchivePruneDiscardsExpired(t *testing.T) {
	s, _ := newTestStore(t)
	writeLines(t, s.Archive.Path(),
		eventLine(testNow.Add(-120*day), 10, 10, entry.ActionAdd),
		eventLine(testNow.Add(-30*day), 20, 30, entry.ActionAdd),
		`{"timestamp": "garbage", "delta": 1}`,
	)

	require.NoError(t, s.Archive.Prune())

	archived := datedEvents(t, s.Archive.Path())
	require.Len(t, archived, 1)
	assert.Equal(t, 20, archived[0].Delta)
	assert.Equal(t, 1, strings.Count(readFile(t, s.Archive.Path()), "\n"))
}

func TestArchiveRetentionFromConfig(t *testing.T) {
	clock := &fakeClock{now: testNow}
	s, err := Open(testConfig{path: t.TempDir(), retention: 14 * day}, WithClock(clock.Now))
	require.NoError(t, err)
	assert.Equal(t, 14*day, s.Archive.Retention())
	assert.Equal(t, 7*day, s.Log.Retention())

	writeLines(t, s.Archive.Path(),
		eventLine(testNow.Add(-20*day), 10, 10, entry.ActionAdd),
		eventLine(testNow.Add(-10*day), 20, 30, entry.ActionAdd),
	)
	require.NoError(t, s.Archive.Prune())
	assert.Len(t, datedEvents(t, s.Archive.Path()), 1)
}

func TestOpenDefaultsRetention(t *testing.T) {
	s, err := Open(testConfig{path: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 90*day, s.Archive.Retention())

	_, err = Open(testConfig{})
	assert.Error(t, err)
}

func TestEnsureInitialEntry(t *testing.T) {
	s, _ := newTestStore(t)
	start := testNow.Add(-time.Hour)

	// Only unusable lines: still counts as empty.
	writeLines(t, s.Log.Path(), `garbage`, `{"delta": 3}`)
	assert.False(t, s.Log.HasEvents())

	require.NoError(t, s.Log.EnsureInitialEntry(start, 120))
	events := datedEvents(t, s.Log.Path())
	require.Len(t, events, 1)
	assert.Equal(t, entry.ActionInit, events[0].Action)
	assert.Equal(t, 0, events[0].Delta)
	assert.Equal(t, 120, events[0].CaloriesAfter)
	assert.True(t, events[0].Timestamp.Equal(start))

	require.NoError(t, s.Log.EnsureInitialEntry(testNow, 500))
	assert.Len(t, datedEvents(t, s.Log.Path()), 1)
}

func TestClearLogs(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Log.Append(5, 5, entry.ActionAdd))
	writeLines(t, s.Archive.Path(), eventLine(testNow.Add(-10*day), 1, 1, entry.ActionAdd))

	require.NoError(t, s.Log.Clear())
	require.NoError(t, s.Archive.Clear())

	assert.Equal(t, "No log events yet.", s.Log.ReadText())
	assert.Equal(t, "No archived log events yet.", s.Archive.ReadText())
	assert.Empty(t, readFile(t, s.Log.Path()))
}

func TestReadTextUnknownFields(t *testing.T) {
	s, _ := newTestStore(t)
	writeLines(t, s.Log.Path(),
		`{"delta": 5}`,
		`[1, 2]`,
		`{"timestamp": "2024-03-20T10:00:00+00:00", "delta": "x", "calories_after": 9, "action": "add"}`,
	)

	lines := strings.Split(s.Log.ReadText(), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "unknown time | +5 kcal | total=?", lines[0])
}

func TestEventLogSince(t *testing.T) {
	s, _ := newTestStore(t)
	writeLines(t, s.Log.Path(),
		eventLine(testNow.Add(-3*day), 0, 0, entry.ActionInit),
		eventLine(testNow.Add(-2*day), 40, 40, entry.ActionAdd),
		`{"delta": 7}`,
		eventLine(testNow.Add(-time.Hour), -15, 25, entry.ActionSubtract),
	)

	var deltas []int
	for e, err := range s.Log.Since(testNow.Add(-2 * day)) {
		require.NoError(t, err)
		deltas = append(deltas, e.Delta)
	}
	assert.Equal(t, []int{40, -15}, deltas)

	// Ranging again re-reads the file; stopping early is honoured.
	count := 0
	for range s.Log.Since(time.Time{}) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestEventLogPruneSkipsOversizedLine(t *testing.T) {
	s, _ := newTestStore(t)
	fresh := eventLine(testNow.Add(-time.Hour), 25, 25, entry.ActionAdd)
	writeLines(t, s.Log.Path(),
		eventLine(testNow.Add(-10*day), 10, 10, entry.ActionAdd),
		strings.Repeat("x", 2<<20),
		fresh,
	)

	require.NoError(t, s.Log.Prune())

	active := datedEvents(t, s.Log.Path())
	require.Len(t, active, 1)
	assert.Equal(t, 25, active[0].Delta)
	assert.Len(t, datedEvents(t, s.Archive.Path()), 1)
	assert.NotContains(t, readFile(t, s.Log.Path()), "xxxx")

	assert.True(t, strings.HasSuffix(s.Log.ReadText(), "| +25 kcal | total=25"))
}

func TestEventLogReadsLongRecords(t *testing.T) {
	s, _ := newTestStore(t)
	// Longer than the read buffer, shorter than the record limit.
	note := strings.Repeat("n", 200<<10)
	stamp := testNow.Add(-time.Hour).Format(time.RFC3339)
	writeLines(t, s.Log.Path(),
		`{"timestamp":"`+stamp+`","delta":5,"calories_after":5,"action":"add","note":"`+note+`"}`,
		eventLine(testNow, 5, 10, entry.ActionAdd),
	)

	var deltas []int
	for e, err := range s.Log.Since(time.Time{}) {
		require.NoError(t, err)
		deltas = append(deltas, e.Delta)
	}
	assert.Equal(t, []int{5, 5}, deltas)
}

func TestEventLogAppendAfterTornLine(t *testing.T) {
	s, _ := newTestStore(t)
	whole := eventLine(testNow.Add(-time.Hour), 30, 30, entry.ActionAdd)
	require.NoError(t, os.WriteFile(s.Log.Path(), []byte(whole+"\n"+`{"timestamp":"2024-03-20T11:0`), 0o644))

	require.NoError(t, s.Log.Append(20, 50, entry.ActionAdd))

	events := datedEvents(t, s.Log.Path())
	require.Len(t, events, 2)
	assert.Equal(t, 30, events[0].Delta)
	assert.Equal(t, 20, events[1].Delta)
	assert.Equal(t, 50, events[1].CaloriesAfter)
}
