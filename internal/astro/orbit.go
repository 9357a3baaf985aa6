package astro

import (
	"math"
)

// DefaultEasingExponent slows early change and accelerates late change.
const DefaultEasingExponent = 1.4

// OrbitSpec is the immutable base+delta configuration of one orbit slot.
type OrbitSpec struct {
	BaseRadius  float64 `yaml:"base_radius"`
	BaseTiltX   float64 `yaml:"base_tilt_x"`
	BaseTiltZ   float64 `yaml:"base_tilt_z"`
	DeltaRadius float64 `yaml:"delta_radius"`
	DeltaTiltX  float64 `yaml:"delta_tilt_x"`
	DeltaTiltZ  float64 `yaml:"delta_tilt_z"`
}

// Orbit is an orbit evolved for a particular progress value.
type Orbit struct {
	Radius float64
	TiltX  float64
	TiltZ  float64
}

// Planet is a body riding one orbit slot.
type Planet struct {
	OrbitIndex int     `yaml:"orbit"`
	Phase      float64 `yaml:"phase"` // radians at elapsed time zero
	Color      string  `yaml:"color"` // hex, e.g. "#ffd27b"
	Size       float64 `yaml:"size"`
}

// ReferenceOrbits returns the four orbit slots of the reference scene.
func ReferenceOrbits() []OrbitSpec {
	return []OrbitSpec{
		{BaseRadius: 0.8, BaseTiltX: 0.05, BaseTiltZ: 0.02, DeltaRadius: 0.25, DeltaTiltX: 0.28, DeltaTiltZ: -0.4},
		{BaseRadius: 1.3, BaseTiltX: -0.08, BaseTiltZ: 0.04, DeltaRadius: -0.18, DeltaTiltX: -0.36, DeltaTiltZ: 0.3},
		{BaseRadius: 1.8, BaseTiltX: 0.11, BaseTiltZ: -0.07, DeltaRadius: 0.34, DeltaTiltX: 0.42, DeltaTiltZ: 0.22},
		{BaseRadius: 2.45, BaseTiltX: -0.18, BaseTiltZ: 0.12, DeltaRadius: -0.3, DeltaTiltX: -0.52, DeltaTiltZ: -0.18},
	}
}

// ReferencePlanets returns one planet per reference orbit.
func ReferencePlanets() []Planet {
	return []Planet{
		{OrbitIndex: 0, Phase: 0.1, Color: "#ffd27b", Size: 0.045},
		{OrbitIndex: 1, Phase: 1.4, Color: "#f6f2ff", Size: 0.04},
		{OrbitIndex: 2, Phase: 2.35, Color: "#7fd4ff", Size: 0.038},
		{OrbitIndex: 3, Phase: 3.8, Color: "#ff9fd0", Size: 0.032},
	}
}

// Ease remaps progress in [0,1] with a power curve.
func Ease(progress, exponent float64) float64 {
	if progress <= 0 || math.IsNaN(progress) {
		return 0
	}
	if progress >= 1 {
		return 1
	}
	return math.Pow(progress, exponent)
}

// Evolve returns the orbit parameters for a progress value.
// It is pure: identical inputs always give identical output.
func Evolve(spec OrbitSpec, progress, exponent float64) Orbit {
	eased := Ease(progress, exponent)
	return Orbit{
		Radius: spec.BaseRadius + spec.DeltaRadius*eased,
		TiltX:  spec.BaseTiltX + spec.DeltaTiltX*eased,
		TiltZ:  spec.BaseTiltZ + spec.DeltaTiltZ*eased,
	}
}

// Apply tilts a point from the orbit plane into world space.
// Tilts are always applied X first, then the second tilt about Y.
func (o Orbit) Apply(v Vec3) Vec3 {
	return RotateY(RotateX(v, o.TiltX), o.TiltZ)
}

// PointAt returns the world position at angle on the orbit. squashY
// flattens the in-plane ellipse (1 is a circle).
func (o Orbit) PointAt(angle, squashY float64) Vec3 {
	return o.Apply(Vec3{
		X: o.Radius * math.Cos(angle),
		Y: o.Radius * math.Sin(angle) * squashY,
	})
}

// Sample returns n+1 points around the orbit; the last closes the loop.
func (o Orbit) Sample(n int) []Vec3 {
	if n < 3 {
		n = 3
	}
	pts := make([]Vec3, n+1)
	for j := 0; j <= n; j++ {
		ang := float64(j) / float64(n) * 2 * math.Pi
		pts[j] = o.PointAt(ang, 1)
	}
	return pts
}

// AngularSpeed returns the phase advance per time unit for an orbit slot.
// Outer slots move faster, matching the reference scene.
func AngularSpeed(orbitIndex int) float64 {
	return 0.2 + float64(orbitIndex)*0.06
}
