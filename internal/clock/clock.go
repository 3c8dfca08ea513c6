package clock

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func NewSystemClock() Clock {
	return &SystemClock{}
}

func (r *SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func NewFixedClock(at time.Time) Clock {
	return &FixedClock{At: at}
}

func (r *FixedClock) Now() time.Time {
	return r.At
}
