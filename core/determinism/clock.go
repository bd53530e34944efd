package determinism

import "time"

// Clock supplies the current date to pricing rules
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location (UTC if unset)
func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// FixedClock always returns the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}

// Date is a convenience for building a FixedClock on a calendar day
func Date(year int, month time.Month, day int) FixedClock {
	return FixedClock{At: time.Date(year, month, day, 12, 0, 0, 0, time.UTC)}
}
