package ecs

import "time"

// Clock measures the time between consecutive ticks. Now can be replaced
// in tests.
type Clock struct {
	Now  func() time.Time
	last time.Time
}

// NewClock returns a clock that starts counting from the current time.
func NewClock() *Clock {
	c := &Clock{Now: time.Now}
	c.last = c.Now()
	return c
}

// Tick returns the time elapsed since the previous Tick (or since the clock
// was created) and restarts the measurement.
func (c *Clock) Tick() time.Duration {
	now := c.Now()
	d := now.Sub(c.last)
	c.last = now
	return d
}
