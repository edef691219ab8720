package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSnapshot() Snapshot {
	return Snapshot{LeftClickAmount: 50, RightClickAmount: 10}
}

func TestStateLoadMissing(t *testing.T) {
	s, clock := newTestStore(t)

	snap, needsResave := s.State.Load(defaultSnapshot())

	assert.True(t, needsResave)
	assert.Equal(t, 0, snap.Calories)
	assert.Equal(t, 50, snap.LeftClickAmount)
	assert.Equal(t, 10, snap.RightClickAmount)
	assert.True(t, snap.SessionStart.Equal(clock.now))
}

func TestStateSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	snap, _ := s.State.Load(defaultSnapshot())
	snap.Calories = 420
	snap.LeftClickAmount = 75
	snap.RightClickAmount = 0
	require.NoError(t, s.State.Save(snap))

	got, needsResave := s.State.Load(defaultSnapshot())
	assert.False(t, needsResave)
	assert.Equal(t, 420, got.Calories)
	assert.Equal(t, 75, got.LeftClickAmount)
	assert.Equal(t, 0, got.RightClickAmount)
	assert.True(t, got.SessionStart.Equal(snap.SessionStart), "%v != %v", got.SessionStart, snap.SessionStart)

	assert.JSONEq(t,
		`{"calories":420,"left_click_amount":75,"right_click_amount":0,"session_start":"`+snap.SessionStart.Format("2006-01-02T15:04:05Z07:00")+`"}`,
		readFile(t, s.State.Path()))
}

func TestStateLoadMalformed(t *testing.T) {
	s, clock := newTestStore(t)
	writeLines(t, s.State.Path(), `{"calories": 12,`)

	snap, needsResave := s.State.Load(defaultSnapshot())

	assert.True(t, needsResave)
	assert.Equal(t, 0, snap.Calories)
	assert.Equal(t, 50, snap.LeftClickAmount)
	assert.True(t, snap.SessionStart.Equal(clock.now))
}

func TestStateLoadRepairsFields(t *testing.T) {
	s, clock := newTestStore(t)
	writeLines(t, s.State.Path(),
		`{"calories": -5, "left_click_amount": "abc", "right_click_amount": "7", "session_start": "not a time"}`)

	snap, needsResave := s.State.Load(defaultSnapshot())

	assert.True(t, needsResave)
	assert.Equal(t, 0, snap.Calories)
	assert.Equal(t, 50, snap.LeftClickAmount)
	assert.Equal(t, 7, snap.RightClickAmount)
	assert.True(t, snap.SessionStart.Equal(clock.now))
}

func TestStateLoadMissingSessionStart(t *testing.T) {
	s, clock := newTestStore(t)
	writeLines(t, s.State.Path(), `{"calories": 300, "left_click_amount": 40, "right_click_amount": 5}`)

	snap, needsResave := s.State.Load(defaultSnapshot())

	assert.True(t, needsResave)
	assert.Equal(t, 300, snap.Calories)
	assert.Equal(t, 40, snap.LeftClickAmount)
	assert.Equal(t, 5, snap.RightClickAmount)
	assert.True(t, snap.SessionStart.Equal(clock.now))
}

func TestStateLoadValidNeedsNoResave(t *testing.T) {
	s, _ := newTestStore(t)
	writeLines(t, s.State.Path(),
		`{"calories": 300.7, "left_click_amount": 40, "right_click_amount": 5, "session_start": "2024-03-19T08:00:00+00:00"}`)

	snap, needsResave := s.State.Load(defaultSnapshot())

	assert.False(t, needsResave)
	assert.Equal(t, 300, snap.Calories)
	assert.Equal(t, "2024-03-19T08:00:00Z", snap.SessionStart.UTC().Format("2006-01-02T15:04:05Z07:00"))
}

func TestStateFallbackRoundTripsExactly(t *testing.T) {
	clock := &fakeClock{now: testNow.Add(123456789 * time.Nanosecond)}
	s, err := Open(testConfig{path: t.TempDir()}, WithClock(clock.Now))
	require.NoError(t, err)

	snap, _ := s.State.Load(defaultSnapshot())
	require.NoError(t, s.State.Save(snap))

	got, needsResave := s.State.Load(defaultSnapshot())
	assert.False(t, needsResave)
	assert.True(t, got.SessionStart.Equal(snap.SessionStart), "%v != %v", got.SessionStart, snap.SessionStart)
	assert.True(t, snap.SessionStart.Equal(testNow))
}
