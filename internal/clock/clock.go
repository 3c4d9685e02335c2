package clock

import "time"

// Clock provides time to the application.
// Using an interface enables deterministic tests via a controllable implementation.
type Clock interface {
	Now() time.Time
}

// System returns the current wall-clock time in the local zone, which is the
// zone calendar months are computed in.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }
