// Package slot computes the bookable time grid for a single day. Everything
// here works on minutes since local midnight so callers can stay independent
// of time.Time until they attach a concrete date.
package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"agenda/shared/constant"
)

// Window is one day's opening window. Closed days have no Window at all.
type Window struct {
	OpenMinute  int
	CloseMinute int
}

type Slot struct {
	Minute    int
	Time      string
	Available bool
}

// ParseClock converts a zero-padded "HH:MM" string to minutes since midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}

	return hour*constant.MinutesPerHour + minute, nil
}

// FormatMinute renders minutes since midnight as a zero-padded "HH:MM".
func FormatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/constant.MinutesPerHour, minute%constant.MinutesPerHour)
}

// ParseWindow converts an opening window given as "HH:MM" strings.
func ParseWindow(openTime, closeTime string) (Window, error) {
	open, err := ParseClock(openTime)
	if err != nil {
		return Window{}, err
	}

	close, err := ParseClock(closeTime)
	if err != nil {
		return Window{}, err
	}

	return Window{OpenMinute: open, CloseMinute: close}, nil
}

// Generate walks the window from its open minute in fixed steps and emits one
// slot per step strictly before the close minute. The grid is never truncated
// by a service's duration: a 45 minute appointment may legally start on the
// last slot even when it runs past closing.
//
// With isToday set, slots at or before nowMinute are marked unavailable so a
// customer cannot book into the past; future days ignore nowMinute entirely.
func Generate(window Window, stepMinutes int, isToday bool, nowMinute int) []Slot {
	if stepMinutes <= 0 || window.CloseMinute <= window.OpenMinute {
		return []Slot{}
	}

	slots := make([]Slot, 0, (window.CloseMinute-window.OpenMinute)/stepMinutes+1)

	for minute := window.OpenMinute; minute < window.CloseMinute; minute += stepMinutes {
		slots = append(slots, Slot{
			Minute:    minute,
			Time:      FormatMinute(minute),
			Available: !isToday || minute > nowMinute,
		})
	}

	return slots
}

// Overlaps reports whether two half-open intervals [startA, endA) and
// [startB, endB) intersect. Back-to-back appointments share an instant but do
// not overlap.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}
