// Package render turns scene state into an ordered list of draw commands.
// Scene is pure: it reads nothing but its Input and returns a Frame that
// any Surface can replay.
package render

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orbit/internal/astro"
)

// Ghost is the comparison overlay as seen by the renderer.
type Ghost struct {
	Progress float64
	Alpha    float64
}

// Input is everything a frame depends on.
type Input struct {
	Pose     astro.Pose
	Progress float64
	Orbits   []astro.OrbitSpec
	Planets  []astro.Planet
	Stars    []astro.Star
	Elapsed  time.Duration // drives planet phase
	Ghost    *Ghost        // nil when the overlay is inactive
	Width    int           // surface pixels
	Height   int
	Style    Style
}

// Style holds the visual tunables of a frame.
type Style struct {
	FocalLength    float64   `yaml:"focal_length"`
	ViewScale      float64   `yaml:"view_scale"`     // fraction of min(w,h) per world unit
	SizeReference  float64   `yaml:"size_reference"` // min(w,h) at which sizes are 1:1 pixels
	EasingExponent float64   `yaml:"easing_exponent"`
	OrbitSamples   int       `yaml:"orbit_samples"`
	PhaseRate      float64   `yaml:"phase_rate"` // radians per millisecond before orbit speed
	PlanetSquash   float64   `yaml:"planet_squash"`
	ColorShift     float64   `yaml:"color_shift"` // background shift per unit progress
	OrbitAlpha     float64   `yaml:"orbit_alpha"`
	OrbitWidth     float64   `yaml:"orbit_width"`
	GhostWidth     float64   `yaml:"ghost_width"`
	GhostColor     string    `yaml:"ghost_color"`
	GhostDash      []float64 `yaml:"ghost_dash"`
	CoreRadius     float64   `yaml:"core_radius"`
	HaloFactor     float64   `yaml:"halo_factor"`
}

// DefaultStyle returns the reference look.
func DefaultStyle() Style {
	return Style{
		FocalLength:    astro.DefaultFocalLength,
		ViewScale:      0.4,
		SizeReference:  160,
		EasingExponent: astro.DefaultEasingExponent,
		OrbitSamples:   120,
		PhaseRate:      0.00006,
		PlanetSquash:   0.98,
		ColorShift:     0.14,
		OrbitAlpha:     0.2,
		OrbitWidth:     0.8,
		GhostWidth:     0.7,
		GhostColor:     "#a0c8ff",
		GhostDash:      []float64{3, 4},
		CoreRadius:     13,
		HaloFactor:     2.6,
	}
}

// withDefaults fills zero fields from DefaultStyle.
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.FocalLength <= 0 {
		s.FocalLength = d.FocalLength
	}
	if s.ViewScale <= 0 {
		s.ViewScale = d.ViewScale
	}
	if s.SizeReference <= 0 {
		s.SizeReference = d.SizeReference
	}
	if s.EasingExponent <= 0 {
		s.EasingExponent = d.EasingExponent
	}
	if s.OrbitSamples <= 0 {
		s.OrbitSamples = d.OrbitSamples
	}
	if s.PhaseRate == 0 {
		s.PhaseRate = d.PhaseRate
	}
	if s.PlanetSquash <= 0 {
		s.PlanetSquash = d.PlanetSquash
	}
	if s.OrbitAlpha <= 0 {
		s.OrbitAlpha = d.OrbitAlpha
	}
	if s.OrbitWidth <= 0 {
		s.OrbitWidth = d.OrbitWidth
	}
	if s.GhostWidth <= 0 {
		s.GhostWidth = d.GhostWidth
	}
	if s.GhostColor == "" {
		s.GhostColor = d.GhostColor
	}
	if s.GhostDash == nil {
		s.GhostDash = d.GhostDash
	}
	if s.CoreRadius <= 0 {
		s.CoreRadius = d.CoreRadius
	}
	if s.HaloFactor <= 0 {
		s.HaloFactor = d.HaloFactor
	}
	return s
}

// viewport maps projected world units onto surface pixels.
type viewport struct {
	cx, cy float64
	unit   float64 // pixels per projected world unit
	size   float64 // multiplier for reference pixel sizes
}

func (v viewport) point(p astro.Projected) Point {
	return Point{X: v.cx + p.X*v.unit, Y: v.cy + p.Y*v.unit}
}

// Scene renders one frame.
func Scene(in Input) Frame {
	st := in.Style.withDefaults()
	frame := Frame{Width: in.Width, Height: in.Height}
	if in.Width <= 0 || in.Height <= 0 {
		return frame
	}

	w, h := float64(in.Width), float64(in.Height)
	extent := math.Min(w, h)
	vp := viewport{
		cx:   w / 2,
		cy:   h / 2,
		unit: extent * st.ViewScale,
		size: extent / st.SizeReference,
	}
	progress := clamp01(in.Progress)

	r := renderer{in: in, st: st, vp: vp, progress: progress, frame: &frame}
	r.background()
	r.stars()
	if in.Ghost != nil && in.Ghost.Alpha > 0 {
		ghost := Hex(st.GhostColor, in.Ghost.Alpha)
		r.orbitSet(clamp01(in.Ghost.Progress), ghost, st.GhostWidth, st.GhostDash, LayerGhostOrbits)
		frame.Stats.GhostDrawn = true
	}
	r.orbitSet(progress, RGBA(255, 255, 255, st.OrbitAlpha), st.OrbitWidth, nil, LayerOrbits)
	r.centralBody()
	r.planets()
	return frame
}

type renderer struct {
	in       Input
	st       Style
	vp       viewport
	progress float64
	frame    *Frame
}

func (r *renderer) emit(c Command) {
	r.frame.Commands = append(r.frame.Commands, c)
}

func (r *renderer) project(p astro.Vec3) astro.Projected {
	return astro.Project(p, r.in.Pose, r.st.FocalLength)
}

// background emits the radial gradient; its inner color warms slightly as
// progress grows.
func (r *renderer) background() {
	w, h := float64(r.in.Width), float64(r.in.Height)
	shift := r.progress * r.st.ColorShift
	inner := RGBA(uint8(12+shift*80), uint8(18+shift*50), 45, 1)
	r.emit(Command{
		Kind:   KindBackground,
		Layer:  LayerBackground,
		Center: Point{X: w * 0.5, Y: h * 0.18},
		Radius: math.Max(w, h) * 0.75,
		Stops: []Stop{
			{Offset: 0, Paint: inner},
			{Offset: 0.5, Paint: RGBA(5, 7, 20, 1)},
			{Offset: 1, Paint: RGBA(0, 0, 0, 1)},
		},
	})
}

func (r *renderer) stars() {
	for _, s := range r.in.Stars {
		p := r.project(s.Pos)
		if p.Behind {
			r.frame.Stats.StarsCulled++
			continue
		}
		size := (0.7 + p.Scale*1.1) * r.vp.size
		alpha := s.Brightness * (0.35 + p.Scale*0.9) * (0.7 + r.progress*0.3)
		at := r.vp.point(p)
		r.emit(Command{
			Kind:  KindRect,
			Layer: LayerStars,
			Min:   at,
			Max:   Point{X: at.X + size, Y: at.Y + size},
			Paint: RGBA(255, 255, 255, alpha),
		})
		r.frame.Stats.StarsDrawn++
	}
}

// orbitSet draws every orbit evolved to progress. Culled samples split a
// ring into separate runs; runs shorter than two points are dropped.
func (r *renderer) orbitSet(progress float64, paint Paint, width float64, dash []float64, layer Layer) {
	for _, spec := range r.in.Orbits {
		orbit := astro.Evolve(spec, progress, r.st.EasingExponent)
		var run []Point
		flush := func() {
			if len(run) >= 2 {
				r.emit(Command{
					Kind:   KindPolyline,
					Layer:  layer,
					Points: run,
					Width:  width * r.vp.size,
					Paint:  paint,
					Dash:   dash,
				})
				r.frame.Stats.Polylines++
			}
			run = nil
		}
		for _, v := range orbit.Sample(r.st.OrbitSamples) {
			r.frame.Stats.OrbitSamples++
			p := r.project(v)
			if p.Behind {
				r.frame.Stats.SamplesCulled++
				flush()
				continue
			}
			run = append(run, r.vp.point(p))
		}
		flush()
	}
}

func (r *renderer) centralBody() {
	p := r.project(astro.Vec3{})
	if p.Behind {
		return
	}
	core := r.st.CoreRadius * p.Scale * r.vp.size
	at := r.vp.point(p)
	r.emit(Command{
		Kind:   KindGlow,
		Layer:  LayerCentralBody,
		Center: at,
		Radius: core * r.st.HaloFactor,
		Stops: []Stop{
			{Offset: 0, Paint: RGBA(255, 255, 255, 1)},
			{Offset: 0.35, Paint: RGBA(255, 240, 210, 0.85)},
			{Offset: 1, Paint: RGBA(255, 180, 120, 0)},
		},
	})
	r.emit(Command{
		Kind:   KindCircle,
		Layer:  LayerCentralBody,
		Center: at,
		Radius: core,
		Paint:  RGBA(255, 255, 255, 0.9),
	})
	r.frame.Stats.BodyVisible = true
}

func (r *renderer) planets() {
	ms := float64(r.in.Elapsed) / float64(time.Millisecond)
	t := ms * r.st.PhaseRate
	for _, pl := range r.in.Planets {
		if pl.OrbitIndex < 0 || pl.OrbitIndex >= len(r.in.Orbits) {
			continue
		}
		orbit := astro.Evolve(r.in.Orbits[pl.OrbitIndex], r.progress, r.st.EasingExponent)
		angle := pl.Phase + t*astro.AngularSpeed(pl.OrbitIndex)
		p := r.project(orbit.PointAt(angle, r.st.PlanetSquash))
		if p.Behind {
			r.frame.Stats.PlanetsCulled++
			continue
		}

		radius := pl.Size * (20 + 40*p.Scale) * r.vp.size
		at := r.vp.point(p)
		body := Hex(pl.Color, 1)
		r.emit(Command{
			Kind:   KindGlow,
			Layer:  LayerPlanets,
			Center: at,
			Radius: radius * r.st.HaloFactor,
			Stops: []Stop{
				{Offset: 0, Paint: RGBA(255, 255, 255, 0.95)},
				{Offset: 0.3, Paint: body.WithAlpha(0xee / 255.0)},
				{Offset: 1, Paint: Paint{Color: colorful.Color{}, Alpha: 0}},
			},
		})
		r.emit(Command{
			Kind:   KindCircle,
			Layer:  LayerPlanets,
			Center: at,
			Radius: radius,
			Paint:  body,
		})
		r.frame.Stats.PlanetsDrawn++
	}
}
