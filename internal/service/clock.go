package service

import "time"

// Clock supplies the current instant. Timestamps are naive local times
// truncated to the second, matching DATETIME precision.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
