package domain

import "time"

// Clock yields the calendar date used for overdue comparisons.
type Clock interface {
	Today() time.Time
}

// UTCClock is the canonical clock: today is the current UTC calendar date.
type UTCClock struct{}

func (UTCClock) Today() time.Time {
	return DateOf(time.Now().UTC())
}

// FixedClock always reports the same date.
type FixedClock time.Time

func (c FixedClock) Today() time.Time {
	return DateOf(time.Time(c))
}

// DateOf truncates t to midnight UTC of its calendar day in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"
