package snake

import "time"

// DefaultTickPeriod is the simulated time between movement ticks.
const DefaultTickPeriod = 150 * time.Millisecond

// TickTimer accumulates frame time and fires at most once per frame.
// Time beyond one period is folded modulo the period, so a long stall never
// produces a burst of catch-up ticks.
type TickTimer struct {
	period  time.Duration
	elapsed time.Duration
}

// NewTickTimer creates a timer with the given period. Non-positive periods
// fall back to DefaultTickPeriod.
func NewTickTimer(period time.Duration) TickTimer {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return TickTimer{period: period}
}

// Advance adds dt and reports whether a tick is due this frame.
func (t *TickTimer) Advance(dt time.Duration) bool {
	if dt > 0 {
		t.elapsed += dt
	}
	if t.elapsed < t.period {
		return false
	}
	t.elapsed %= t.period
	return true
}

// Period returns the current tick period.
func (t TickTimer) Period() time.Duration { return t.period }

// SetPeriod changes the period without discarding accumulated time.
func (t *TickTimer) SetPeriod(p time.Duration) {
	if p > 0 {
		t.period = p
	}
}

// Reset discards accumulated time.
func (t *TickTimer) Reset() {
	t.elapsed = 0
}
