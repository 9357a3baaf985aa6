package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Paint is a color with straight (non-premultiplied) alpha.
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// RGBA builds a paint from 8-bit channels and an alpha in [0,1].
func RGBA(r, g, b uint8, alpha float64) Paint {
	return Paint{
		Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		Alpha: clamp01(alpha),
	}
}

// Hex parses a "#rrggbb" color. Invalid input yields opaque white.
func Hex(s string, alpha float64) Paint {
	c, err := colorful.Hex(s)
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	return Paint{Color: c, Alpha: clamp01(alpha)}
}

// WithAlpha returns p with its alpha replaced.
func (p Paint) WithAlpha(alpha float64) Paint {
	p.Alpha = clamp01(alpha)
	return p
}

// Visible reports whether the paint has any opacity.
func (p Paint) Visible() bool {
	return p.Alpha > 0
}

// Stop is one color stop of a radial gradient. Offset runs from the
// center (0) to the rim (1).
type Stop struct {
	Offset float64
	Paint  Paint
}

// At samples a gradient at offset t, interpolating color in linear RGB.
// Stops must be sorted by offset.
func At(stops []Stop, t float64) Paint {
	if len(stops) == 0 {
		return Paint{}
	}
	if t <= stops[0].Offset {
		return stops[0].Paint
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Paint
			}
			k := (t - a.Offset) / span
			return Paint{
				Color: a.Paint.Color.BlendRgb(b.Paint.Color, k),
				Alpha: a.Paint.Alpha + (b.Paint.Alpha-a.Paint.Alpha)*k,
			}
		}
	}
	return stops[len(stops)-1].Paint
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
