package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-orbit/internal/logging"
	"github.com/litescript/ls-orbit/internal/overlay"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Display.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Display.FPS)
	}
	if cfg.Camera.Home.Distance != 4.2 {
		t.Errorf("expected home distance 4.2, got %v", cfg.Camera.Home.Distance)
	}
	if cfg.Overlay.Duration != 5*time.Second {
		t.Errorf("expected overlay 5s, got %v", cfg.Overlay.Duration)
	}
	if cfg.Progress.Key != "blink_orbit_progress_v1" {
		t.Errorf("unexpected progress key %q", cfg.Progress.Key)
	}
	if len(cfg.Orbits) != 4 || len(cfg.Planets) != 4 {
		t.Errorf("expected 4 orbits and 4 planets, got %d and %d", len(cfg.Orbits), len(cfg.Planets))
	}
	if cfg.Metrics.Addr != "" {
		t.Error("metrics should be disabled by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
scene:
  focal_length: 2.0
  orbit_samples: 90
  stars:
    count: 300

camera:
  smoothing: 0.1
  home:
    yaw: 0.2
    pitch: 0.1
    distance: 5

progress:
  idle_after: 45s
  policy:
    drag: 0.001

overlay:
  fade: envelope
  duration: 3s

orbits:
  - base_radius: 1
    delta_radius: 0.5

planets:
  - orbit: 0
    color: "#ffffff"
    size: 0.05
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Scene.FocalLength != 2.0 || cfg.Scene.OrbitSamples != 90 {
		t.Errorf("scene style not loaded: %+v", cfg.Scene.Style)
	}
	if cfg.Scene.PlanetSquash != 0.98 {
		t.Errorf("unset style fields should keep defaults, got squash %v", cfg.Scene.PlanetSquash)
	}
	if cfg.Scene.Stars.Count != 300 || cfg.Scene.Stars.MinRadius != 22 {
		t.Errorf("stars = %+v", cfg.Scene.Stars)
	}
	if cfg.Camera.Smoothing != 0.1 || cfg.Camera.Home.Distance != 5 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Camera.MaxDistance != 7.5 {
		t.Errorf("unset camera fields should keep defaults, got %v", cfg.Camera.MaxDistance)
	}
	if cfg.Progress.IdleAfter != 45*time.Second {
		t.Errorf("idle_after = %v, want 45s", cfg.Progress.IdleAfter)
	}
	if cfg.Progress.Policy.Drag != 0.001 || cfg.Progress.Policy.Zoom != 0.0009 {
		t.Errorf("policy = %+v", cfg.Progress.Policy)
	}
	if cfg.Overlay.Fade != "envelope" || cfg.Overlay.Duration != 3*time.Second {
		t.Errorf("overlay = %+v", cfg.Overlay)
	}
	if len(cfg.Orbits) != 1 || len(cfg.Planets) != 1 {
		t.Errorf("lists should replace defaults, got %d orbits, %d planets", len(cfg.Orbits), len(cfg.Planets))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}

	ec := cfg.EngineConfig()
	if ec.Overlay.Fade != overlay.FadeEnvelope {
		t.Errorf("engine fade = %v, want envelope", ec.Overlay.Fade)
	}
	if ec.Style.FocalLength != 2.0 || ec.Stars.Count != 300 {
		t.Error("engine config did not carry scene settings")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
display:
  fps: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadWithFlags(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("display:\n  fps: 20\nlogging:\n  level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	err := fs.Parse([]string{
		"--config", configPath,
		"--fps", "60",
		"--debug",
		"--ephemeral",
		"--metrics-addr", ":9464",
		"--overlay", "8s",
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.FPS != 60 {
		t.Errorf("flag should override file fps, got %d", cfg.Display.FPS)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("--debug should override file level, got %s", cfg.Logging.Level)
	}
	if !cfg.Progress.Ephemeral || cfg.Metrics.Addr != ":9464" || cfg.Overlay.Duration != 8*time.Second {
		t.Errorf("flags not applied: %+v %+v %+v", cfg.Progress, cfg.Metrics, cfg.Overlay)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("overlay:\n  fade: sparkle\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse([]string{"--config", configPath}); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(f); err == nil || !strings.Contains(err.Error(), "overlay.fade") {
		t.Errorf("expected overlay.fade error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"smoothing zero", func(c *Config) { c.Camera.Smoothing = 0 }, "camera.smoothing"},
		{"smoothing above one", func(c *Config) { c.Camera.Smoothing = 1.5 }, "camera.smoothing"},
		{"pitch inverted", func(c *Config) { c.Camera.MinPitch, c.Camera.MaxPitch = 1, -1 }, "min_pitch"},
		{"distance inverted", func(c *Config) { c.Camera.MinDistance = 9 }, "distance range"},
		{"negative delta", func(c *Config) { c.Progress.Policy.Zoom = -1 }, "policy"},
		{"fps", func(c *Config) { c.Display.FPS = 0 }, "display.fps"},
		{"color mode", func(c *Config) { c.Display.Color = "sometimes" }, "display.color"},
		{"alpha", func(c *Config) { c.Overlay.MaxAlpha = 2 }, "max_alpha"},
		{"no orbits", func(c *Config) { c.Orbits = nil; c.Planets = nil }, "orbit"},
		{"planet orbit", func(c *Config) { c.Planets[0].OrbitIndex = 9 }, "planets[0].orbit"},
		{"planet color", func(c *Config) { c.Planets[1].Color = "teal" }, "planets[1].color"},
		{"ghost color", func(c *Config) { c.Scene.GhostColor = "#zz" }, "ghost_color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Display.FPS = 24
	cfg.Overlay.Fade = "envelope"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if loaded.Display.FPS != 24 || loaded.Overlay.Fade != "envelope" {
		t.Errorf("saved values lost: %+v %+v", loaded.Display, loaded.Overlay)
	}
	if loaded.Compare.PanelDuration != 6*time.Second {
		t.Errorf("duration round trip = %v", loaded.Compare.PanelDuration)
	}
}

func TestPaths(t *testing.T) {
	for name, dir := range map[string]string{"config": ConfigDir(), "data": DataDir()} {
		if dir == "" || !filepath.IsAbs(dir) {
			t.Errorf("%s dir should be absolute, got %q", name, dir)
		}
	}

	cfg := Default()
	if filepath.Base(cfg.ProgressPath()) != "progress.yaml" {
		t.Errorf("default progress path = %s", cfg.ProgressPath())
	}
	cfg.Progress.File = "/tmp/p.yaml"
	if cfg.ProgressPath() != "/tmp/p.yaml" {
		t.Errorf("explicit progress path ignored: %s", cfg.ProgressPath())
	}
}

func TestLoggerOptions(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "warn"
	opts := cfg.LoggerOptions()
	if opts.Level != logging.LevelWarn || opts.File.Path != "" {
		t.Errorf("options = %+v", opts)
	}

	cfg.Logging.File = "/tmp/ls-orbit.log"
	if got := cfg.LoggerOptions().File; got.Path != cfg.Logging.File || got.MaxBackups != 3 {
		t.Errorf("file options = %+v", got)
	}
}
