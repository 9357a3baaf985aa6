// Package overlay implements the transient before/after comparison overlay:
// a snapshot of progress that fades out over a fixed duration.
package overlay

import (
	"fmt"
	"time"
)

// Fade selects how the overlay alpha evolves over its lifetime.
type Fade int

const (
	// FadeLinear starts at full alpha and ramps to zero at expiry.
	FadeLinear Fade = iota
	// FadeEnvelope fades in, holds, and fades out before expiry.
	FadeEnvelope
)

// Envelope proportions of the total duration.
const (
	envelopeIn  = 0.15
	envelopeOut = 0.35
)

func (f Fade) String() string {
	switch f {
	case FadeLinear:
		return "linear"
	case FadeEnvelope:
		return "envelope"
	default:
		return "unknown"
	}
}

// ParseFade parses a fade name.
func ParseFade(s string) (Fade, error) {
	switch s {
	case "", "linear":
		return FadeLinear, nil
	case "envelope":
		return FadeEnvelope, nil
	default:
		return FadeLinear, fmt.Errorf("unknown fade %q", s)
	}
}

// Default overlay settings.
const (
	DefaultDuration = 5 * time.Second
	DefaultMaxAlpha = 0.6
)

// Overlay is the Inactive/Active state machine. The zero value is inactive
// and uses the defaults.
type Overlay struct {
	Duration time.Duration
	Fade     Fade
	MaxAlpha float64

	active   bool
	snapshot float64
	started  time.Time
	expiry   time.Time
}

// New creates an inactive overlay.
func New(duration time.Duration, fade Fade, maxAlpha float64) *Overlay {
	return &Overlay{Duration: duration, Fade: fade, MaxAlpha: maxAlpha}
}

func (o *Overlay) duration() time.Duration {
	if o.Duration <= 0 {
		return DefaultDuration
	}
	return o.Duration
}

func (o *Overlay) maxAlpha() float64 {
	if o.MaxAlpha <= 0 || o.MaxAlpha > 1 {
		return DefaultMaxAlpha
	}
	return o.MaxAlpha
}

// Trigger activates the overlay with a snapshot of progress. Triggering
// while active replaces the snapshot and restarts the timer.
func (o *Overlay) Trigger(now time.Time, progress float64) {
	o.active = true
	o.snapshot = progress
	o.started = now
	o.expiry = now.Add(o.duration())
}

// Update deactivates the overlay once now is past expiry. It reports
// whether the overlay is still active.
func (o *Overlay) Update(now time.Time) bool {
	if o.active && now.After(o.expiry) {
		o.active = false
	}
	return o.active
}

// Active reports whether the overlay is showing.
func (o *Overlay) Active() bool {
	return o.active
}

// Snapshot returns the progress captured at the last trigger.
func (o *Overlay) Snapshot() float64 {
	return o.snapshot
}

// Remaining returns the time left before expiry, or zero when inactive.
func (o *Overlay) Remaining(now time.Time) time.Duration {
	if !o.active || now.After(o.expiry) {
		return 0
	}
	return o.expiry.Sub(now)
}

// Alpha returns the overlay opacity at now. It depends only on wall-clock
// time since the trigger, never on frame count.
func (o *Overlay) Alpha(now time.Time) float64 {
	if !o.active {
		return 0
	}
	total := o.duration().Seconds()
	t := now.Sub(o.started).Seconds() / total
	if t < 0 || t > 1 {
		return 0
	}

	var k float64
	switch o.Fade {
	case FadeEnvelope:
		switch {
		case t < envelopeIn:
			k = t / envelopeIn
		case t > 1-envelopeOut:
			k = (1 - t) / envelopeOut
		default:
			k = 1
		}
	default:
		k = 1 - t
	}
	return k * o.maxAlpha()
}
