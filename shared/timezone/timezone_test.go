package timezone_test

import (
	"testing"
	"time"

	"agenda/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestTimezoneWithStandardLocation(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("Expected converted time to have a location")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed == (time.Time{}) {
		t.Error("Parse() returned a zero time")
	}
}

func TestStartOfDay(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02 15:04", "2024-06-10 14:37")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	start := timezone.StartOfDay(parsed)

	hour, minute, sec := start.Clock()
	if hour != 0 || minute != 0 || sec != 0 {
		t.Errorf("expected local midnight, got %02d:%02d:%02d", hour, minute, sec)
	}

	if start.Day() != 10 {
		t.Errorf("expected day 10, got %d", start.Day())
	}
}

func TestAt(t *testing.T) {
	date, err := timezone.Parse("2006-01-02", "2024-06-10")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	at := timezone.At(date, 9*60+30)

	if got := at.Format("15:04"); got != "09:30" {
		t.Errorf("expected 09:30, got %s", got)
	}
}
