package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for stay dates.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

const secondsPerDay = 24 * 60 * 60

// NightsBetween counts the nights in [checkIn, checkOut). It is zero or
// negative when checkOut is not after checkIn. Days are counted on the
// calendar, so spans longer than a time.Duration can hold stay exact.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(dayNumber(checkOut) - dayNumber(checkIn))
}

// dayNumber is the count of days since the Unix epoch. DateOnly is always
// midnight UTC, so the division is exact.
func dayNumber(t time.Time) int64 {
	return DateOnly(t).Unix() / secondsPerDay
}

// StayNights lists every night of the stay [checkIn, checkOut) in ascending
// order.
func StayNights(checkIn, checkOut time.Time) []time.Time {
	n := NightsBetween(checkIn, checkOut)
	if n <= 0 {
		return nil
	}
	start := DateOnly(checkIn)
	nights := make([]time.Time, n)
	for i := range nights {
		nights[i] = start.AddDate(0, 0, i)
	}
	return nights
}
