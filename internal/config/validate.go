package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orbit/internal/overlay"
)

// Validate reports every inconsistent setting.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	cam := c.Camera
	if !(cam.Smoothing > 0 && cam.Smoothing <= 1) {
		add("camera.smoothing %v must be in (0,1]", cam.Smoothing)
	}
	if cam.MinPitch > cam.MaxPitch {
		add("camera.min_pitch %v exceeds max_pitch %v", cam.MinPitch, cam.MaxPitch)
	}
	if cam.MinDistance <= 0 || cam.MinDistance > cam.MaxDistance {
		add("camera distance range [%v, %v] is invalid", cam.MinDistance, cam.MaxDistance)
	}

	p := c.Progress.Policy
	if p.Drag < 0 || p.Zoom < 0 || p.Refocus < 0 || p.Idle < 0 {
		add("progress.policy deltas must not be negative")
	}
	if c.Progress.IdleAfter <= 0 {
		add("progress.idle_after must be positive")
	}
	if c.Progress.IdleCheck <= 0 {
		add("progress.idle_check must be positive")
	}

	if _, err := overlay.ParseFade(c.Overlay.Fade); err != nil {
		add("overlay.fade: %v", err)
	}
	if c.Overlay.Duration <= 0 {
		add("overlay.duration must be positive")
	}
	if !(c.Overlay.MaxAlpha > 0 && c.Overlay.MaxAlpha <= 1) {
		add("overlay.max_alpha %v must be in (0,1]", c.Overlay.MaxAlpha)
	}

	if c.Display.FPS <= 0 || c.Display.FPS > 120 {
		add("display.fps %d must be in 1..120", c.Display.FPS)
	}
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		add("display.color %q must be auto, always or never", c.Display.Color)
	}

	if c.Scene.EasingExponent <= 0 {
		add("scene.easing_exponent must be positive")
	}
	if c.Scene.Stars.MinRadius > c.Scene.Stars.MaxRadius {
		add("scene.stars radius range [%v, %v] is invalid", c.Scene.Stars.MinRadius, c.Scene.Stars.MaxRadius)
	}
	if _, err := colorful.Hex(c.Scene.GhostColor); c.Scene.GhostColor != "" && err != nil {
		add("scene.ghost_color %q: %v", c.Scene.GhostColor, err)
	}

	if len(c.Orbits) == 0 {
		add("at least one orbit is required")
	}
	for i, pl := range c.Planets {
		if pl.OrbitIndex < 0 || pl.OrbitIndex >= len(c.Orbits) {
			add("planets[%d].orbit %d out of range", i, pl.OrbitIndex)
		}
		if _, err := colorful.Hex(pl.Color); err != nil {
			add("planets[%d].color %q: %v", i, pl.Color, err)
		}
	}

	return errors.Join(errs...)
}
