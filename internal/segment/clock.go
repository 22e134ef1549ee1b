package segment

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Stepping an empty year segment starts from the clock's current year.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
