// Package camera implements the smoothed orbit camera. Input moves the
// target values; Step eases the current values toward them.
package camera

import (
	"math"

	"github.com/litescript/ls-orbit/internal/astro"
)

// Config holds the camera tunables.
type Config struct {
	Home        astro.Pose `yaml:"home"`
	Smoothing   float64    `yaml:"smoothing"`   // fraction of the remaining gap closed per step
	YawSpeed    float64    `yaml:"yaw_speed"`   // radians per drag unit
	PitchSpeed  float64    `yaml:"pitch_speed"` // radians per drag unit
	ZoomSpeed   float64    `yaml:"zoom_speed"`  // distance per wheel unit
	MinPitch    float64    `yaml:"min_pitch"`
	MaxPitch    float64    `yaml:"max_pitch"`
	MinDistance float64    `yaml:"min_distance"`
	MaxDistance float64    `yaml:"max_distance"`
}

// DefaultSmoothing is used when the configured smoothing is out of range.
const DefaultSmoothing = 0.06

// DefaultConfig returns the reference camera: drag speeds are per pixel and
// zoom is per wheel delta unit.
func DefaultConfig() Config {
	return Config{
		Home:        astro.Pose{Yaw: 0.4, Pitch: 0.18, Distance: 4.2},
		Smoothing:   DefaultSmoothing,
		YawSpeed:    0.0035,
		PitchSpeed:  0.0035,
		ZoomSpeed:   0.0015,
		MinPitch:    -0.7,
		MaxPitch:    0.7,
		MinDistance: 2.6,
		MaxDistance: 7.5,
	}
}

// Camera tracks current and target pose. Only targets are clamped; the
// current values converge into range through smoothing.
type Camera struct {
	cfg     Config
	current astro.Pose
	target  astro.Pose
}

// New creates a camera resting at the configured home pose.
func New(cfg Config) *Camera {
	if !(cfg.Smoothing > 0 && cfg.Smoothing <= 1) {
		cfg.Smoothing = DefaultSmoothing
	}
	if cfg.MinPitch > cfg.MaxPitch {
		cfg.MinPitch, cfg.MaxPitch = cfg.MaxPitch, cfg.MinPitch
	}
	if cfg.MinDistance > cfg.MaxDistance {
		cfg.MinDistance, cfg.MaxDistance = cfg.MaxDistance, cfg.MinDistance
	}

	c := &Camera{cfg: cfg}
	c.target = c.clampPose(cfg.Home)
	c.current = c.target
	return c
}

// Config returns the effective configuration.
func (c *Camera) Config() Config {
	return c.cfg
}

// Step moves every current value a fixed fraction toward its target.
func (c *Camera) Step() {
	s := c.cfg.Smoothing
	c.current.Yaw += (c.target.Yaw - c.current.Yaw) * s
	c.current.Pitch += (c.target.Pitch - c.current.Pitch) * s
	c.current.Distance += (c.target.Distance - c.current.Distance) * s
}

// Drag rotates the target by a pointer displacement.
func (c *Camera) Drag(dx, dy float64) {
	c.target.Yaw += dx * c.cfg.YawSpeed
	c.target.Pitch = clamp(c.target.Pitch+dy*c.cfg.PitchSpeed, c.cfg.MinPitch, c.cfg.MaxPitch)
}

// Zoom moves the target distance by a wheel delta. Positive zooms out.
func (c *Camera) Zoom(delta float64) {
	c.target.Distance = clamp(c.target.Distance+delta*c.cfg.ZoomSpeed, c.cfg.MinDistance, c.cfg.MaxDistance)
}

// Reset sends the targets home. The current pose animates back.
func (c *Camera) Reset() {
	c.target = c.clampPose(c.cfg.Home)
}

// Pose returns the current (smoothed) pose.
func (c *Camera) Pose() astro.Pose {
	return c.current
}

// Target returns the target pose.
func (c *Camera) Target() astro.Pose {
	return c.target
}

func (c *Camera) clampPose(p astro.Pose) astro.Pose {
	p.Pitch = clamp(p.Pitch, c.cfg.MinPitch, c.cfg.MaxPitch)
	p.Distance = clamp(p.Distance, c.cfg.MinDistance, c.cfg.MaxDistance)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
