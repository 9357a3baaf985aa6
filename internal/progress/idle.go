package progress

import (
	"time"
)

// Default idle timing: checks run on a coarse timer and fire after a
// sustained pause in interaction.
const (
	DefaultIdleCheckInterval = 5 * time.Second
	DefaultIdleAfter         = 30 * time.Second
)

// IdleDetector reports sustained inactivity. It fires at most once per
// idle interval: after firing it waits for the next Touch before it can
// fire again.
type IdleDetector struct {
	After time.Duration

	last  time.Time
	fired bool
}

// NewIdleDetector creates a detector armed at now.
func NewIdleDetector(after time.Duration, now time.Time) *IdleDetector {
	if after <= 0 {
		after = DefaultIdleAfter
	}
	return &IdleDetector{After: after, last: now}
}

// Touch records an interaction.
func (d *IdleDetector) Touch(now time.Time) {
	d.last = now
	d.fired = false
}

// Check reports whether the idle threshold has just been crossed.
func (d *IdleDetector) Check(now time.Time) bool {
	if d.fired || now.Sub(d.last) < d.After {
		return false
	}
	d.fired = true
	return true
}

// IdleFor returns how long it has been since the last interaction.
func (d *IdleDetector) IdleFor(now time.Time) time.Duration {
	return now.Sub(d.last)
}
