package domain

import (
	"fmt"
	"math"
	"time"
)

const dayMillis = 24 * 60 * 60 * 1000

// WeekNumber returns the ISO week of t's calendar date. Week 1 is the week
// holding the year's first Thursday and weeks start on Monday.
func WeekNumber(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	d = d.AddDate(0, 0, 4-weekday)
	yearStart := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := float64(d.Sub(yearStart).Milliseconds()) / dayMillis
	return int(math.Ceil((days + 1) / 7))
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Saturday || day == time.Sunday
}

// FormatDate returns t's calendar date as YYYY-MM-DD in t's own location.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// DaysBetween returns the whole number of days between a and b, rounded up.
func DaysBetween(a, b time.Time) float64 {
	return math.Ceil(math.Abs(float64(b.Sub(a).Milliseconds())) / dayMillis)
}
