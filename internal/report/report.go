// Package report writes headless text output: rasterized frames, orbit
// tables, easing curves and the session journal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/litescript/ls-orbit/internal/astro"
	"github.com/litescript/ls-orbit/internal/canvas"
	"github.com/litescript/ls-orbit/internal/render"
	"github.com/litescript/ls-orbit/internal/state"
)

// WriteFrame rasterizes frame onto a cols×rows cell canvas. With color
// set the output carries ANSI truecolor escapes; otherwise it is a
// luminance ramp.
func WriteFrame(w io.Writer, frame render.Frame, cols, rows int, color bool) error {
	c := canvas.New(cols, rows)
	frame.Replay(c)
	out := c.Plain()
	if color {
		out = c.String()
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// WriteSummary prints the evolved orbit parameters at progress.
func WriteSummary(w io.Writer, progress float64, orbits []astro.OrbitSpec, exponent float64) {
	fmt.Fprintf(w, "Orbits @ progress %.4f (eased %.4f)\n", progress, astro.Ease(progress, exponent))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(orbits) == 0 {
		fmt.Fprintln(w, "No orbits configured")
		return
	}

	fmt.Fprintf(w, "%-5s %-9s %-9s %-9s %-9s %-9s\n",
		"Orbit", "Radius", "ΔRadius", "TiltX", "TiltZ", "Speed")
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for i, spec := range orbits {
		o := astro.Evolve(spec, progress, exponent)
		fmt.Fprintf(w, "%-5d %-9.4f %+-9.4f %+-9.4f %+-9.4f %-9.3f\n",
			i,
			o.Radius,
			o.Radius-spec.BaseRadius,
			o.TiltX,
			o.TiltZ,
			astro.AngularSpeed(i),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d orbits\n", len(orbits))
}

// CurveSamples is the number of progress steps plotted by WriteCurve.
const CurveSamples = 60

// WriteCurve plots every orbit's radius against progress and marks the
// current progress on the caption.
func WriteCurve(w io.Writer, orbits []astro.OrbitSpec, exponent, progress float64) error {
	if len(orbits) == 0 {
		_, err := fmt.Fprintln(w, "No orbits configured")
		return err
	}

	series := make([][]float64, len(orbits))
	for i, spec := range orbits {
		series[i] = make([]float64, CurveSamples+1)
		for s := 0; s <= CurveSamples; s++ {
			p := float64(s) / CurveSamples
			series[i][s] = astro.Evolve(spec, p, exponent).Radius
		}
	}

	colors := []asciigraph.AnsiColor{
		asciigraph.Goldenrod, asciigraph.Lavender, asciigraph.SkyBlue, asciigraph.HotPink,
	}
	opts := []asciigraph.Option{
		asciigraph.Height(12),
		asciigraph.Width(CurveSamples + 1),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("orbit radius vs progress (0 → 1), now %.3f", progress)),
	}
	if len(series) <= len(colors) {
		opts = append(opts, asciigraph.SeriesColors(colors[:len(series)]...))
	}

	_, err := fmt.Fprintln(w, asciigraph.PlotMany(series, opts...))
	return err
}

// WriteHistory plots the session's progress samples. Extra options are
// applied after the defaults.
func WriteHistory(w io.Writer, values []float64, width, height int, extra ...asciigraph.Option) error {
	if len(values) < 2 {
		_, err := fmt.Fprintln(w, "Not enough progress history")
		return err
	}
	opts := append([]asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(4),
		asciigraph.Caption("progress"),
	}, extra...)
	_, err := fmt.Fprintln(w, asciigraph.Plot(values, opts...))
	return err
}

// WriteEvents prints the last limit journal events.
func WriteEvents(w io.Writer, events []state.Event, limit int) {
	fmt.Fprintln(w, "Session Events")
	fmt.Fprintln(w, strings.Repeat("─", 50))

	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	for _, e := range events {
		line := fmt.Sprintf("%s  %-11s %.5f", e.Timestamp.Format(time.TimeOnly), e.Type, e.Progress)
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}
