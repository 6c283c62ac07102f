package game

import "time"

// maxCatchUp bounds how many ticks one Advance call may report, so a stall
// (window drag, debugger) does not trigger a burst of catch-up ticks.
const maxCatchUp = 5

// Ticker converts elapsed wall time into whole simulation ticks of a fixed
// period. A tick is never split: leftover time carries into the next call.
type Ticker struct {
	period  time.Duration
	pending time.Duration
}

// NewTicker creates a ticker with the given period (minimum 1ms).
func NewTicker(period time.Duration) *Ticker {
	return &Ticker{period: max(period, time.Millisecond)}
}

// Period returns the tick period.
func (t *Ticker) Period() time.Duration {
	return t.period
}

// SetPeriod changes the period. Accumulated time is kept.
func (t *Ticker) SetPeriod(period time.Duration) {
	t.period = max(period, time.Millisecond)
}

// Advance adds elapsed wall time and returns how many ticks are due.
func (t *Ticker) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		t.pending += elapsed
	}
	n := int(t.pending / t.period)
	t.pending -= time.Duration(n) * t.period
	if n > maxCatchUp {
		n = maxCatchUp
		t.pending = 0
	}
	return n
}

// Reset discards accumulated time.
func (t *Ticker) Reset() {
	t.pending = 0
}
