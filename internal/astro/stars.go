package astro

import (
	"math"
	"math/rand"
)

// Star is a background point on the star shell.
type Star struct {
	Pos        Vec3
	Brightness float64 // base brightness in [0,1]
}

// ShellConfig describes the spherical shell the star field is drawn from.
type ShellConfig struct {
	Count     int     `yaml:"count"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	MinBright float64 `yaml:"min_brightness"`
	Seed      int64   `yaml:"seed"`
}

// DefaultShellConfig returns the reference star field: 900 stars between
// radius 22 and 31.
func DefaultShellConfig() ShellConfig {
	return ShellConfig{
		Count:     900,
		MinRadius: 22,
		MaxRadius: 31,
		MinBright: 0.4,
		Seed:      20251015,
	}
}

// GenerateStars builds the star field once. Directions are uniform on the
// sphere; the same seed always yields the same field.
func GenerateStars(cfg ShellConfig) []Star {
	if cfg.Count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	span := cfg.MaxRadius - cfg.MinRadius
	if span < 0 {
		span = 0
	}

	stars := make([]Star, cfg.Count)
	for i := range stars {
		r := cfg.MinRadius + rng.Float64()*span
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		stars[i] = Star{
			Pos: Vec3{
				X: r * math.Sin(phi) * math.Cos(theta),
				Y: r * math.Cos(phi),
				Z: r * math.Sin(phi) * math.Sin(theta),
			},
			Brightness: cfg.MinBright + rng.Float64()*(1-cfg.MinBright),
		}
	}
	return stars
}
