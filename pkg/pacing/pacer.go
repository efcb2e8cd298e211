// Package pacing throttles how fast queued commands are consumed.
//
// The pacer is a busy-wait: the render loop keeps running while it is armed so
// that animations driven by the embedding program continue to advance. It must
// never be replaced by a blocking sleep.
package pacing

import "time"

// Clock returns the current time. time.Now carries a monotonic reading, so
// comparisons are unaffected by wall-clock adjustments.
type Clock func() time.Time

// Pacer holds a single "armed until" deadline. The zero value is idle.
type Pacer struct {
	until time.Time
	now   Clock
}

// New creates an idle pacer using the system clock
func New() *Pacer {
	return &Pacer{now: time.Now}
}

// NewWithClock creates an idle pacer reading time from clock
func NewWithClock(clock Clock) *Pacer {
	return &Pacer{now: clock}
}

// Arm makes the pacer busy until d from now
func (p *Pacer) Arm(d time.Duration) {
	p.until = p.clock()().Add(d)
}

// Busy reports whether the current time is still before the armed deadline
func (p *Pacer) Busy() bool {
	return p.clock()().Before(p.until)
}

// Remaining returns the time left until the pacer goes idle, or zero
func (p *Pacer) Remaining() time.Duration {
	if left := p.until.Sub(p.clock()()); left > 0 {
		return left
	}
	return 0
}

func (p *Pacer) clock() Clock {
	if p.now == nil {
		return time.Now
	}
	return p.now
}
