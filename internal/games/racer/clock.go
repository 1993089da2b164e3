package racer

import "time"

// Clock turns frame callback timestamps into per-tick deltas.
type Clock struct {
	prev    time.Time
	hasPrev bool
}

// Tick returns the time since the previous call and records now.
// The first tick after construction or Reset yields 0 so a run never starts
// with a jump. Timestamps that go backwards yield 0.
func (c *Clock) Tick(now time.Time) time.Duration {
	if !c.hasPrev {
		c.prev = now
		c.hasPrev = true
		return 0
	}
	dt := now.Sub(c.prev)
	c.prev = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset forgets the previous timestamp.
func (c *Clock) Reset() {
	c.prev = time.Time{}
	c.hasPrev = false
}
