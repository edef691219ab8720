package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 90 * Day; dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "90d" {
		t.Fatalf("expected label 90d, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w3d12h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 10*Day + 12*time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "10d12h" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowBareDays(t *testing.T) {
	dur, label, err := ParseWindow("30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 30*Day || label != "30d" {
		t.Fatalf("expected 30d, got %v (%s)", dur, label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "5m", "0d"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
