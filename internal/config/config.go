// Package config handles ls-orbit configuration loading and management.
package config

import (
	"time"

	"github.com/litescript/ls-orbit/internal/astro"
	"github.com/litescript/ls-orbit/internal/camera"
	"github.com/litescript/ls-orbit/internal/engine"
	"github.com/litescript/ls-orbit/internal/logging"
	"github.com/litescript/ls-orbit/internal/overlay"
	"github.com/litescript/ls-orbit/internal/progress"
	"github.com/litescript/ls-orbit/internal/render"
	"github.com/litescript/ls-orbit/internal/state"
)

// Config holds all settings.
type Config struct {
	Scene    SceneConfig       `yaml:"scene"`
	Camera   camera.Config     `yaml:"camera"`
	Progress ProgressConfig    `yaml:"progress"`
	Overlay  OverlayConfig     `yaml:"overlay"`
	Compare  CompareConfig     `yaml:"compare"`
	Display  DisplayConfig     `yaml:"display"`
	Logging  LoggingConfig     `yaml:"logging"`
	Metrics  MetricsConfig     `yaml:"metrics"`
	Orbits   []astro.OrbitSpec `yaml:"orbits"`
	Planets  []astro.Planet    `yaml:"planets"`
}

// SceneConfig holds the look of the scene and its star field.
type SceneConfig struct {
	render.Style `yaml:",inline"`
	Stars        astro.ShellConfig `yaml:"stars"`
}

// ProgressConfig holds persistence and delta settings.
type ProgressConfig struct {
	Key       string          `yaml:"key"`
	File      string          `yaml:"file"`      // empty uses DataDir()/progress.yaml
	Ephemeral bool            `yaml:"ephemeral"` // keep progress in memory only
	Policy    progress.Policy `yaml:"policy"`
	IdleAfter time.Duration   `yaml:"idle_after"`
	IdleCheck time.Duration   `yaml:"idle_check"`
}

// OverlayConfig holds the comparison overlay settings.
type OverlayConfig struct {
	Duration time.Duration `yaml:"duration"`
	Fade     string        `yaml:"fade"` // linear or envelope
	MaxAlpha float64       `yaml:"max_alpha"`
}

// CompareConfig holds the before/now panel timing.
type CompareConfig struct {
	BaselineDelay time.Duration `yaml:"baseline_delay"`
	PanelDuration time.Duration `yaml:"panel_duration"`
}

// DisplayConfig holds terminal settings.
type DisplayConfig struct {
	FPS         int     `yaml:"fps"`
	WheelStep   float64 `yaml:"wheel_step"`    // wheel delta per mouse wheel notch
	KeyDragStep float64 `yaml:"key_drag_step"` // drag units per arrow key press
	Color       string  `yaml:"color"`         // auto, always or never
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Addr    string `yaml:"addr"` // empty disables the endpoint
	Runtime bool   `yaml:"runtime"`
}

// Default returns a Config with the reference scene.
func Default() *Config {
	ov := engine.DefaultConfig().Overlay
	return &Config{
		Scene: SceneConfig{
			Style: render.DefaultStyle(),
			Stars: astro.DefaultShellConfig(),
		},
		Camera: camera.DefaultConfig(),
		Progress: ProgressConfig{
			Key:       progress.DefaultKey,
			Policy:    progress.DefaultPolicy(),
			IdleAfter: progress.DefaultIdleAfter,
			IdleCheck: progress.DefaultIdleCheckInterval,
		},
		Overlay: OverlayConfig{
			Duration: ov.Duration,
			Fade:     ov.Fade.String(),
			MaxAlpha: ov.MaxAlpha,
		},
		Compare: CompareConfig{
			BaselineDelay: engine.DefaultBaselineDelay,
			PanelDuration: engine.DefaultPanelDuration,
		},
		Display: DisplayConfig{
			FPS:         30,
			WheelStep:   100,
			KeyDragStep: 12,
			Color:       "auto",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
			Compress:   true,
		},
		Orbits:  astro.ReferenceOrbits(),
		Planets: astro.ReferencePlanets(),
	}
}

// EngineConfig converts the settings into an engine configuration.
// Validate should have succeeded first.
func (c *Config) EngineConfig() engine.Config {
	fade, _ := overlay.ParseFade(c.Overlay.Fade)
	return engine.Config{
		Camera:      c.Camera,
		Policy:      c.Progress.Policy,
		ProgressKey: c.Progress.Key,
		Overlay: engine.OverlayConfig{
			Duration: c.Overlay.Duration,
			Fade:     fade,
			MaxAlpha: c.Overlay.MaxAlpha,
		},
		IdleAfter:     c.Progress.IdleAfter,
		BaselineDelay: c.Compare.BaselineDelay,
		PanelDuration: c.Compare.PanelDuration,
		Style:         c.Scene.Style,
		Orbits:        c.Orbits,
		Planets:       c.Planets,
		Stars:         c.Scene.Stars,
		Journal:       state.DefaultConfig(),
	}
}

// LoggerOptions converts the logging section into logger options.
func (c *Config) LoggerOptions() logging.Options {
	opts := logging.Options{Level: logging.ParseLevel(c.Logging.Level)}
	if c.Logging.File != "" {
		opts.File = logging.FileConfig{
			Path:       c.Logging.File,
			MaxSizeMB:  c.Logging.MaxSizeMB,
			MaxBackups: c.Logging.MaxBackups,
			MaxAgeDays: c.Logging.MaxAgeDays,
			Compress:   c.Logging.Compress,
		}
	}
	return opts
}
