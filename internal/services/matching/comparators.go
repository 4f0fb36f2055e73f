package matching

import "time"

// AmountDifferenceCents returns the absolute difference between two
// minor-unit amounts. Symmetric, never negative.
func AmountDifferenceCents(a, b int64) int64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d
}

// DateDifferenceDays returns the absolute difference in whole calendar days,
// ignoring time-of-day. Two timestamps on the same calendar day are 0 days
// apart regardless of hour.
func DateDifferenceDays(a, b time.Time) int {
	da := calendarDay(a)
	db := calendarDay(b)
	d := int(da.Sub(db).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}

func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
