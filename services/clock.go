package services

import "time"

// Clock abstracts wall-clock time so lock expiry can be tested
// deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock used in production.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }
