package services

import (
	"testing"
	"time"
)

func TestDayRangeUsesLocation(t *testing.T) {
	t.Parallel()

	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2026-03-10 20:30 UTC is already 2026-03-11 02:00 in Kolkata.
	moment := time.Date(2026, 3, 10, 20, 30, 0, 0, time.UTC)
	start, end := DayRange(moment, kolkata)

	if start.Year() != 2026 || start.Month() != time.March || start.Day() != 11 {
		t.Fatalf("expected local day 2026-03-11, got %v", start)
	}
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Fatalf("expected midnight start, got %v", start)
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("expected end one day after start, got %v", end)
	}
}

func TestDateAtLocationTruncates(t *testing.T) {
	t.Parallel()

	moment := time.Date(2026, 3, 10, 15, 45, 12, 0, time.UTC)
	day := DateAtLocation(moment, time.UTC)
	if !day.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected start of day, got %v", day)
	}
}
