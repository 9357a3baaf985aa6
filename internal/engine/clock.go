package engine

import (
	"sync"
	"time"
)

// Clock supplies wall-clock time to the engine.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time with monotonic clock readings.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a controllable clock for tests and headless rendering.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a manual clock starting at t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
