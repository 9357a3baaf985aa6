package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/litescript/ls-orbit/internal/canvas"
	"github.com/litescript/ls-orbit/internal/engine"
	"github.com/litescript/ls-orbit/internal/render"
	"github.com/litescript/ls-orbit/internal/report"
)

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5A4E8C"))
	panelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8A9F0")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// rasterize replays frame onto a cols×rows canvas.
func (m Model) rasterize(frame render.Frame, cols, rows int) string {
	c := canvas.New(cols, rows)
	frame.Replay(c)
	if m.opts.Color {
		return c.String()
	}
	return c.Plain()
}

// renderScene draws the last engine frame at full size.
func (m Model) renderScene() string {
	cols, rows := m.sceneSize()
	return m.rasterize(m.eng.LastFrame(), cols, rows)
}

// renderCompare draws the before/now miniatures side by side with the
// session progress history underneath.
func (m Model) renderCompare() string {
	cols, rows := m.sceneSize()
	before, now, _ := m.eng.Compare()

	// Two bordered panes share the width; the graph takes the bottom rows.
	graphRows := 4
	paneCols := cols/2 - 2
	paneRows := rows - graphRows - 5
	if paneCols < 4 || paneRows < 2 {
		return m.renderScene()
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPane("BEFORE", before, paneCols, paneRows),
		m.renderPane("NOW", now, paneCols, paneRows),
	)

	hint := dimStyle.Render("  [x] close")
	graph := m.renderHistory(cols-12, graphRows)
	return lipgloss.JoinVertical(lipgloss.Left, panes, graph+hint)
}

func (m Model) renderPane(label string, snap *engine.Snapshot, cols, rows int) string {
	var body string
	if snap == nil {
		body = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("not captured yet"))
	} else {
		frame := render.Scene(m.eng.SnapshotInput(*snap, cols, rows*2))
		body = m.rasterize(frame, cols, rows)
	}
	title := panelLabel.Render(label)
	if snap != nil {
		title += dimStyle.Render(" " + formatPercent(snap.Progress))
	}
	return panelBorder.Render(title + "\n" + body)
}

func (m Model) renderHistory(width, height int) string {
	values := m.eng.Journal().ProgressValues()
	if len(values) < 2 {
		return dimStyle.Render("  progress history builds as you interact")
	}
	if width < 10 {
		width = 10
	}
	// The caption takes one of the rows.
	var b strings.Builder
	if err := report.WriteHistory(&b, values, width, height-1, asciigraph.SeriesColors(asciigraph.Lavender)); err != nil {
		return dimStyle.Render("  " + err.Error())
	}
	return strings.TrimRight(b.String(), "\n")
}
