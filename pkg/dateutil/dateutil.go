package dateutil

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical YYYY-MM-DD layout used for date keys
const KeyLayout = "2006-01-02"

// Date returns the civil date year-month-day at midnight UTC
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize drops the time of day and location, keeping the local calendar day
// of t. Two normalized values are equal iff their keys are equal.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Key returns the canonical YYYY-MM-DD key of the calendar day of t
func Key(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// MonthDayKey returns the MM-DD part of the key
func MonthDayKey(t time.Time) string {
	return fmt.Sprintf("%02d-%02d", int(t.Month()), t.Day())
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDate parses date string in the accepted input formats and normalizes it
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		KeyLayout,
		"02/01/2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return Normalize(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date: %q", dateStr)
}

// Today returns today's local date, normalized
func Today() time.Time {
	return Normalize(time.Now())
}
