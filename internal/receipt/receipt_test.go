package receipt

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateFormatAndIncrement(t *testing.T) {
	s := NewSequencer("LWC", time.UTC)
	s.now = fixedClock(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC))

	first, err := s.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first != "LWC202405010001" {
		t.Fatalf("expected LWC202405010001, got %s", first)
	}

	second, err := s.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if second != "LWC202405010002" {
		t.Fatalf("expected LWC202405010002, got %s", second)
	}
}

func TestGenerateResetsOnNewDay(t *testing.T) {
	s := NewSequencer("LWC", time.UTC)
	s.now = fixedClock(time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		if _, err := s.Generate(); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}

	s.now = fixedClock(time.Date(2024, 5, 2, 0, 1, 0, 0, time.UTC))
	got, err := s.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "LWC202405020001" {
		t.Fatalf("expected sequence reset to 0001, got %s", got)
	}
}

func TestGenerateUsesShopLocalDate(t *testing.T) {
	panama, err := time.LoadLocation("America/Panama")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	s := NewSequencer("LWC", panama)
	// 03:00 UTC on May 2 is still 22:00 May 1 in Panama (UTC-5).
	s.now = fixedClock(time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC))

	got, err := s.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "LWC202405010001" {
		t.Fatalf("expected shop-local date 20240501, got %s", got)
	}
}

func TestGenerateExhaustsAtCap(t *testing.T) {
	s := NewSequencer("LWC", time.UTC)
	s.now = fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s.date = "20240501"
	s.sequence = maxDailySequence - 1

	last, err := s.Generate()
	if err != nil {
		t.Fatalf("generate at cap boundary: %v", err)
	}
	if last != fmt.Sprintf("LWC20240501%04d", maxDailySequence) {
		t.Fatalf("expected final number 9999, got %s", last)
	}

	_, err = s.Generate()
	var exhausted *SequenceExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected SequenceExhaustedError, got %v", err)
	}
	if exhausted.Date != "20240501" {
		t.Fatalf("unexpected date in error: %s", exhausted.Date)
	}

	// Exhaustion persists for the rest of the day but clears at midnight.
	if _, err := s.Generate(); err == nil {
		t.Fatalf("expected repeated exhaustion on the same day")
	}
	s.now = fixedClock(time.Date(2024, 5, 2, 0, 0, 1, 0, time.UTC))
	next, err := s.Generate()
	if err != nil {
		t.Fatalf("generate after rollover: %v", err)
	}
	if next != "LWC202405020001" {
		t.Fatalf("expected fresh sequence after rollover, got %s", next)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"LWC202405010001", "LWC-20240501-0001"},
		{"SHOP202412319999", "SHOP-20241231-9999"},
		{"short", "short"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Format(tc.in); got != tc.want {
			t.Fatalf("Format(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
