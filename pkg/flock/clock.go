package flock

import "time"

// DefaultStep is the simulated time covered by one Tick.
const DefaultStep = 10 * time.Millisecond

// Clock gates Tick to a fixed simulated rate, independent of how often the
// render loop calls in.
//
// Real elapsed time is accumulated; every whole Step in the accumulator is one
// due tick. At most MaxCatchUp ticks are released per Advance and any extra
// whole steps are dropped, so a stalled frame never triggers a burst. With
// MaxCatchUp == 1 the flock runs at most one update per frame.
type Clock struct {
	Step       time.Duration
	MaxCatchUp int

	acc     time.Duration
	skipped uint64
}

// NewClock returns a Clock with the given step; step <= 0 selects DefaultStep
// and maxCatchUp <= 0 selects 1.
func NewClock(step time.Duration, maxCatchUp int) *Clock {
	if step <= 0 {
		step = DefaultStep
	}
	if maxCatchUp <= 0 {
		maxCatchUp = 1
	}
	return &Clock{Step: step, MaxCatchUp: maxCatchUp}
}

// Advance adds elapsed real time and returns the number of ticks to run now.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		c.acc += elapsed
	}
	due := int(c.acc / c.Step)
	c.acc -= time.Duration(due) * c.Step
	if due > c.MaxCatchUp {
		c.skipped += uint64(due - c.MaxCatchUp)
		due = c.MaxCatchUp
	}
	return due
}

// Pending is the simulated time accumulated towards the next tick.
func (c *Clock) Pending() time.Duration { return c.acc }

// Skipped counts the ticks dropped because more than MaxCatchUp were due.
func (c *Clock) Skipped() uint64 { return c.skipped }
