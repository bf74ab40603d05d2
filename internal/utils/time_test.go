package utils

import (
	"testing"
	"time"
)

func TestLoadLocationFallback(t *testing.T) {
	if loc := LoadLocation("Not/AZone"); loc != ReportZoneFallback {
		t.Fatalf("expected fallback zone, got %v", loc)
	}
	if loc := LoadLocation(""); loc != ReportZoneFallback {
		t.Fatalf("expected fallback zone for empty name, got %v", loc)
	}
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("GST", 4*3600)

	got, err := ParseTimestamp("2025-03-10", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, loc)) {
		t.Fatalf("date-only parsed as %s", got)
	}

	got, err = ParseTimestamp("2025-03-10T08:15:00Z", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDate(got, loc) != "2025-03-10" || FormatDateTime(got, loc) != "2025-03-10 12:15:00" {
		t.Fatalf("formatted %s / %s", FormatDate(got, loc), FormatDateTime(got, loc))
	}

	if _, err := ParseTimestamp("10/03/2025", loc); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}
