package testutil

import (
	"sync"
	"time"
)

// Clock provides a thread-safe deterministic wall clock for tests.
//
// Each call to Now returns the next instant on a fixed schedule, so
// repeated runs of a scenario produce identical timestamps, ledger
// digests and golden output.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	calls int
}

// NewClock creates a clock whose first Now call returns start and whose
// every subsequent call advances by step.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{start: start.UTC(), step: step}
}

// Now returns the scheduled instant and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Current returns the instant the next Now call will produce, without
// advancing.
func (c *Clock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start.Add(time.Duration(c.calls) * c.step)
}

// Reset rewinds the clock to its start instant.
//
// Used for test reuse. After Reset, the next Now call returns start again.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
