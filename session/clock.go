package session

import "time"

// Clock decides when the simulation is due for its next step. At most one
// step is taken per call, and the reference point jumps to now, so a long
// stall never produces a burst of catch-up steps.
type Clock struct {
	last time.Time
}

// Due reports whether interval has elapsed since the last step. The first
// call only records the reference time.
func (c *Clock) Due(now time.Time, interval time.Duration) bool {
	if c.last.IsZero() {
		c.last = now
		return false
	}
	if now.Sub(c.last) < interval {
		return false
	}
	c.last = now
	return true
}

// Reset forgets the reference time. The next Due call re-arms the clock.
func (c *Clock) Reset() {
	c.last = time.Time{}
}
