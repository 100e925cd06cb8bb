package service

import "time"

// DayFormat is the calendar-day format meal records are keyed by.
const DayFormat = "2006-01-02"

// Clock supplies the current local day. Injected so the day-rollover
// behavior is testable with a fixed clock.
type Clock interface {
	Today() string
}

type systemClock struct{}

func (systemClock) Today() string {
	return time.Now().Format(DayFormat)
}

// NewClock returns a clock backed by local wall-clock time.
func NewClock() Clock {
	return systemClock{}
}

// FixedClock always reports the same day. Test use only.
type FixedClock struct {
	Day string
}

func (c FixedClock) Today() string {
	return c.Day
}
