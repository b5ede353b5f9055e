package services

import "time"

// Clock supplies the current instant. Every "today" computation reads it at
// call time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type ClockFunc func() time.Time

func (fn ClockFunc) Now() time.Time {
	return fn()
}
