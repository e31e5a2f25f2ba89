package utils

import (
	"math"
	"strings"
	"time"

	"airhotel-web/constants"
)

// Clock returns the current time. Tests swap it for a fixed clock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// ParseLocalDate parses a YYYY-MM-DD string as midnight in the local time zone.
// Parsing in UTC would shift the calendar day for users west of Greenwich.
func ParseLocalDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(constants.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate formats t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}

// AddDays returns value shifted by n calendar days, or "" when value is empty or invalid
func AddDays(value string, n int) string {
	t, ok := ParseLocalDate(value)
	if !ok {
		return ""
	}
	return FormatDate(t.AddDate(0, 0, n))
}

// NightsBetween counts the nights between two dates. Missing dates or a
// non-positive span give 0. Rounding absorbs DST days of 23 or 25 hours.
func NightsBetween(checkIn, checkOut string) int {
	in, ok := ParseLocalDate(checkIn)
	if !ok {
		return 0
	}
	out, ok := ParseLocalDate(checkOut)
	if !ok {
		return 0
	}
	diff := out.Sub(in)
	if diff <= 0 {
		return 0
	}
	return int(math.Round(diff.Hours() / 24))
}

// StartOfDay returns local midnight of the day containing t
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// Today returns the local date of now as YYYY-MM-DD
func Today(now time.Time) string {
	return FormatDate(StartOfDay(now))
}

// IsPast reports whether value is strictly before the start of the current local day
func IsPast(value string, now time.Time) bool {
	t, ok := ParseLocalDate(value)
	if !ok {
		return false
	}
	return t.Before(StartOfDay(now))
}

// IsPastOrToday reports whether value is on or before the current local day
func IsPastOrToday(value string, now time.Time) bool {
	t, ok := ParseLocalDate(value)
	if !ok {
		return false
	}
	return !t.After(StartOfDay(now))
}
