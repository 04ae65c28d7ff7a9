package clock

import "time"

// Clock abstracts wall time so time-driven behaviour (the auto-cancel
// sweep, code expiry) is deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func System() Clock { return systemClock{} }

// Fixed returns a clock pinned to t.
func Fixed(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
