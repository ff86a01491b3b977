package kernel

import (
	"sync/atomic"
	"time"
)

// Clock is the logical animation clock, counted in milliseconds.
//
// Tick is safe to call from an interrupt-style context: it is a single
// atomic add and never blocks.
type Clock struct {
	ms   atomic.Uint64
	step uint64
}

// NewClock creates a clock that advances by period on every Tick.
// Periods below one millisecond count as one millisecond.
func NewClock(period time.Duration) *Clock {
	step := uint64(period / time.Millisecond)
	if step == 0 {
		step = 1
	}
	return &Clock{step: step}
}

// Tick advances the clock by one period.
func (c *Clock) Tick() {
	c.ms.Add(c.step)
}

// Now returns the current logical time in milliseconds.
func (c *Clock) Now() uint64 {
	return c.ms.Load()
}

// Step returns the increment applied per Tick, in milliseconds.
func (c *Clock) Step() uint64 { return c.step }
