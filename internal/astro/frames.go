// Package astro provides the scene geometry: vectors, rotations, perspective
// projection, orbit evolution and the background star shell.
package astro

import (
	"math"
)

// CullEpsilon keeps projected points away from the perspective singularity.
const CullEpsilon = 0.05

// DefaultFocalLength suits the normalized-unit reference scene.
const DefaultFocalLength = 1.8

// Vec3 represents a 3D vector in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// RotateY rotates v about the Y axis by angle radians.
func RotateY(v Vec3, angle float64) Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec3{
		X: v.X*cos - v.Z*sin,
		Y: v.Y,
		Z: v.X*sin + v.Z*cos,
	}
}

// RotateX rotates v about the X axis by angle radians.
func RotateX(v Vec3, angle float64) Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec3{
		X: v.X,
		Y: v.Y*cos - v.Z*sin,
		Z: v.Y*sin + v.Z*cos,
	}
}

// Pose is the camera orientation and distance used for projection.
type Pose struct {
	Yaw      float64 `yaml:"yaw"`      // radians about Y
	Pitch    float64 `yaml:"pitch"`    // radians about X
	Distance float64 `yaml:"distance"` // distance from the origin along the view axis
}

// Position returns the camera position in world space. The camera sits on
// its view axis at Distance from the origin, oriented by pitch then yaw.
func (p Pose) Position() Vec3 {
	return RotateX(RotateY(Vec3{Z: -p.Distance}, p.Yaw), p.Pitch)
}

// Projected is a point after perspective projection.
type Projected struct {
	X, Y   float64 // relative to the viewport center, in world units
	Scale  float64 // perspective scale factor
	Behind bool    // true if the point must be culled
}

// Project maps a world point through the camera pose to screen space.
//
// The point is translated into camera-relative space, rotated by the
// inverse pitch and then the inverse yaw, and divided by perspective.
// Points closer than the focal plane behind the camera are flagged Behind.
func Project(p Vec3, pose Pose, focal float64) Projected {
	v := p.Sub(pose.Position())
	v = RotateX(v, -pose.Pitch)
	v = RotateY(v, -pose.Yaw)

	if v.Z < -focal+CullEpsilon {
		return Projected{Behind: true}
	}

	scale := focal / (focal + v.Z)
	return Projected{
		X:     v.X * scale,
		Y:     v.Y * scale,
		Scale: scale,
	}
}
