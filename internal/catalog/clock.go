package catalog

import "time"

// Clock supplies the current time to anything that reasons about "now".
// Production code uses SystemClock; tests pin time with testutil.FixedClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}
