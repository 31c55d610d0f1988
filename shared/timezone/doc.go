// Package timezone pins the wall clock every booking operation runs on.
//
// All opening hours, slot times and booking timestamps are interpreted in a
// single application location ("business-local time"); no per-request UTC
// conversion happens anywhere in the scheduling core.
//
//  1. Current time in the app location:
//     now := timezone.Now()
//
//  2. Converting and formatting:
//     local := timezone.ToAppTime(someTime)
//     s := timezone.Format(someTime, "2006-01-02 15:04")
//
//  3. Parsing wall-clock strings:
//     t, err := timezone.Parse("2006-01-02", "2024-01-01")
//
// The location comes from the APP_TIMEZONE environment variable and must be
// a standard IANA name ("UTC", "America/New_York", "Asia/Jakarta").
package timezone
