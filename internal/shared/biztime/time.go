// Package biztime centralises the notion of "now". All persisted timestamps
// are UTC.
package biztime

import "time"

// Clock returns the current time. Components that enforce expiry take a Clock
// so tests can move time forward without sleeping.
type Clock func() time.Time

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Fixed returns a Clock frozen at t, converted to UTC.
func Fixed(t time.Time) Clock {
	t = t.UTC()
	return func() time.Time { return t }
}
