// Package canvas rasterizes draw commands onto a terminal cell grid. Each
// cell holds two vertically stacked pixels printed as an upper half block
// with foreground and background colors.
package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orbit/internal/render"
)

const halfBlock = "▀"

// Canvas is a render.Surface backed by a pixel buffer.
type Canvas struct {
	cols, rows int
	px         []colorful.Color // row-major, cols x rows*2
}

var _ render.Surface = (*Canvas)(nil)

// New creates a black canvas of cols x rows terminal cells.
func New(cols, rows int) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Canvas{cols: cols, rows: rows, px: make([]colorful.Color, cols*rows*2)}
}

// Size implements render.Surface. Height is in pixels, two per row.
func (c *Canvas) Size() (int, int) {
	return c.cols, c.rows * 2
}

// Cells returns the grid size in terminal cells.
func (c *Canvas) Cells() (cols, rows int) {
	return c.cols, c.rows
}

// Pixel returns the color at pixel (x, y), or black outside the canvas.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return colorful.Color{}
	}
	return c.px[y*c.cols+x]
}

func (c *Canvas) blend(x, y int, p render.Paint) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 || !p.Visible() {
		return
	}
	i := y*c.cols + x
	c.px[i] = c.px[i].BlendRgb(p.Color, p.Alpha).Clamped()
}

// FillBackground implements render.Surface.
func (c *Canvas) FillBackground(center render.Point, radius float64, stops []render.Stop) {
	_, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < c.cols; x++ {
			t := 1.0
			if radius > 0 {
				t = math.Hypot(float64(x)+0.5-center.X, float64(y)+0.5-center.Y) / radius
			}
			c.blend(x, y, render.At(stops, t))
		}
	}
}

// FillRect implements render.Surface. Rectangles smaller than a pixel
// still mark one pixel, dimmed by their coverage.
func (c *Canvas) FillRect(min, max render.Point, p render.Paint) {
	area := (max.X - min.X) * (max.Y - min.Y)
	if area < 1 {
		p = p.WithAlpha(p.Alpha * math.Max(area, 0.5))
	}
	x0, y0 := int(math.Floor(min.X)), int(math.Floor(min.Y))
	x1, y1 := int(math.Ceil(max.X)), int(math.Ceil(max.Y))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.blend(x, y, p)
		}
	}
}

// FillCircle implements render.Surface.
func (c *Canvas) FillCircle(center render.Point, radius float64, p render.Paint) {
	if radius <= 0 {
		return
	}
	if radius < 0.5 {
		// Sub-pixel disc: one pixel, dimmed by its area.
		k := math.Max(radius*radius/0.25, 0.3)
		c.blend(int(math.Floor(center.X)), int(math.Floor(center.Y)), p.WithAlpha(p.Alpha*k))
		return
	}
	c.eachInDisc(center, radius, func(x, y int, _ float64) {
		c.blend(x, y, p)
	})
}

// FillGlow implements render.Surface.
func (c *Canvas) FillGlow(center render.Point, radius float64, stops []render.Stop) {
	if radius <= 0 {
		return
	}
	if radius < 0.5 {
		c.blend(int(math.Floor(center.X)), int(math.Floor(center.Y)), render.At(stops, 0.5))
		return
	}
	c.eachInDisc(center, radius, func(x, y int, d float64) {
		c.blend(x, y, render.At(stops, d/radius))
	})
}

func (c *Canvas) eachInDisc(center render.Point, radius float64, fn func(x, y int, d float64)) {
	x0 := int(math.Floor(center.X - radius))
	x1 := int(math.Ceil(center.X + radius))
	y0 := int(math.Floor(center.Y - radius))
	y1 := int(math.Ceil(center.Y + radius))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-center.X, float64(y)+0.5-center.Y)
			if d <= radius {
				fn(x, y, d)
			}
		}
	}
}

// StrokePolyline implements render.Surface. Each pixel is touched at most
// once per stroke so overlapping segments do not stack alpha. Dash
// lengths are in pixels.
func (c *Canvas) StrokePolyline(points []render.Point, width float64, p render.Paint, dash []float64) {
	if len(points) < 2 {
		return
	}
	if width < 1 {
		p = p.WithAlpha(p.Alpha * math.Max(width, 0.5))
	}
	period := 0.0
	for _, d := range dash {
		period += d
	}
	dashed := len(dash) >= 2 && period > 0

	seen := make(map[int]bool)
	travelled := 0.0
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		length := math.Hypot(b.X-a.X, b.Y-a.Y)
		steps := int(math.Ceil(length * 2))
		if steps < 1 {
			steps = 1
		}
		for s := 0; s <= steps; s++ {
			k := float64(s) / float64(steps)
			if dashed && !dashOn(dash, period, travelled+k*length) {
				continue
			}
			x := int(math.Floor(a.X + (b.X-a.X)*k))
			y := int(math.Floor(a.Y + (b.Y-a.Y)*k))
			key := y*c.cols + x
			if x < 0 || y < 0 || x >= c.cols || seen[key] {
				continue
			}
			seen[key] = true
			c.blend(x, y, p)
		}
		travelled += length
	}
}

func dashOn(dash []float64, period, at float64) bool {
	pos := math.Mod(at, period)
	for i, d := range dash {
		if pos < d {
			return i%2 == 0
		}
		pos -= d
	}
	return false
}

// String renders the canvas with truecolor half blocks. Runs of identical
// cells share one style.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		var runFg, runBg string
		runLen := 0
		flush := func() {
			if runLen == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runFg)).
				Background(lipgloss.Color(runBg))
			b.WriteString(style.Render(strings.Repeat(halfBlock, runLen)))
			runLen = 0
		}
		for x := 0; x < c.cols; x++ {
			fg := c.px[(row*2)*c.cols+x].Hex()
			bg := c.px[(row*2+1)*c.cols+x].Hex()
			if runLen > 0 && (fg != runFg || bg != runBg) {
				flush()
			}
			runFg, runBg = fg, bg
			runLen++
		}
		flush()
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ramp maps increasing brightness to glyphs for plain output.
var ramp = []rune(" .:-=+*#%@")

// Plain renders the canvas as monochrome ASCII, one glyph per cell.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for x := 0; x < c.cols; x++ {
			top := luminance(c.px[(row*2)*c.cols+x])
			bottom := luminance(c.px[(row*2+1)*c.cols+x])
			l := math.Max(top, bottom)
			idx := int(l * float64(len(ramp)))
			if idx >= len(ramp) {
				idx = len(ramp) - 1
			}
			b.WriteRune(ramp[idx])
		}
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func luminance(col colorful.Color) float64 {
	l, _, _ := col.Clamped().Lab()
	if l < 0 {
		return 0
	}
	if l > 1 {
		return 1
	}
	return l
}
