package store

import (
	"testing"
	"time"
)

func TestFormatTimeRoundTrip(t *testing.T) {
	in := time.Date(2024, 5, 1, 12, 30, 45, 123456789, time.UTC)

	out, err := parseTime(formatTime(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("expected %v, got %v", in, out)
	}
}

func TestFormatTimeSortsChronologically(t *testing.T) {
	// last_update is compared as text by the listing query, so the encoding
	// must sort the same way the instants do.
	times := []time.Time{
		time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC),
		time.Date(2024, 5, 1, 12, 0, 5, 500000000, time.UTC),
		time.Date(2024, 5, 1, 12, 0, 6, 0, time.UTC),
		time.Date(2024, 5, 1, 12, 0, 10, 0, time.UTC),
	}
	for i := 1; i < len(times); i++ {
		before, after := formatTime(times[i-1]), formatTime(times[i])
		if !(before < after) {
			t.Fatalf("expected %q < %q", before, after)
		}
	}
}

func TestFormatTimeNormalizesZone(t *testing.T) {
	zone := time.FixedZone("plus2", 2*60*60)
	local := time.Date(2024, 5, 1, 14, 0, 0, 0, zone)
	utc := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if formatTime(local) != formatTime(utc) {
		t.Fatalf("expected identical encodings, got %q and %q", formatTime(local), formatTime(utc))
	}
}
