// Package timeutil provides helpers for local calendar dates and the
// reset-hour adjusted logical date.
package timeutil

import (
	"time"
)

// DateFormat is the canonical YYYY-MM-DD layout used as the session
// grouping key.
const DateFormat = "2006-01-02"

const hoursInADay = 24

// DateString formats a time as a local calendar date string.
func DateString(t time.Time) string {
	return t.Format(DateFormat)
}

// LogicalDate shifts a time to the day it logically belongs to: times before
// resetHour count towards the previous day, so "today" can extend past
// midnight.
func LogicalDate(t time.Time, resetHour int) time.Time {
	if t.Hour() < resetHour {
		return t.AddDate(0, 0, -1)
	}

	return t
}

// LogicalDateString returns the logical date of t as a YYYY-MM-DD string.
func LogicalDateString(t time.Time, resetHour int) string {
	return DateString(LogicalDate(t, resetHour))
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// WeekStart returns the Monday that begins the week containing t.
func WeekStart(t time.Time) time.Time {
	diff := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		diff = 6
	}

	return RoundToStart(t.AddDate(0, 0, -diff))
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, -1)

	return start, end
}

// DiffDays returns the difference between two dates rounded to whole days.
func DiffDays(from, to time.Time) int {
	hours := to.Sub(from).Hours()

	days := hours / hoursInADay
	if days < 0 {
		return int(days - 0.5)
	}

	return int(days + 0.5)
}

// FromMillis converts epoch milliseconds to a local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// ToMillis converts a time to epoch milliseconds.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}
