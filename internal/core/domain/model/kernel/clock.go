package kernel

import "time"

// Clock is the source of "now" for time-driven rules. Handlers take it as a
// dependency so tests can pin the instant a trip starts or goes overdue.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
