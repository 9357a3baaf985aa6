package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orbit/internal/version"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	ghostStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0C8FF"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

// Title gradient endpoints: blue to pink.
var (
	titleFrom, _ = colorful.Hex("#3B82F6")
	titleTo, _   = colorful.Hex("#EC4899")
)

const barWidth = 20

// idleShownAfter is how long the session must be idle before the footer
// shows it.
const idleShownAfter = 10 * time.Second

func (m Model) renderHeader() string {
	pose := m.eng.Pose()
	parts := []string{
		renderTitle("ls-orbit"),
		progressBar(m.eng.Progress(), barWidth) + " " + formatPercent(m.eng.Progress()),
		dimStyle.Render(fmt.Sprintf("yaw %+.2f  pitch %+.2f  dist %.2f", pose.Yaw, pose.Pitch, pose.Distance)),
	}

	now := m.eng.Now()
	if ov := m.eng.Overlay(); ov.Active() {
		remaining := ov.Remaining(now).Round(100 * time.Millisecond)
		parts = append(parts, ghostStyle.Render(fmt.Sprintf("ghost %s @ %s", remaining, formatPercent(ov.Snapshot()))))
	}
	return " " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	if !m.eng.Started() {
		return "  " + m.renderShimmerText("press enter to begin") + dimStyle.Render("  |  q: quit")
	}

	var status string
	if snap := m.eng.Journal().Snapshot(); snap.FailedWrites > 0 {
		status = errorStyle.Render(fmt.Sprintf("%d unsaved  ", snap.FailedWrites))
	}
	if idle := m.eng.IdleFor(m.eng.Now()); idle >= idleShownAfter {
		status += dimStyle.Render(fmt.Sprintf("idle %s  ", idle.Truncate(time.Second)))
	}

	help := "r: reset & compare | x: close | +/-: zoom | arrows: orbit | q: quit"
	if !m.eng.Moved() {
		help = "drag or use arrows to orbit | wheel or +/- to zoom | " + help
	}
	return "  " + status + dimStyle.Render(help+"  v"+version.Version)
}

// renderTitle draws text with a horizontal truecolor gradient.
func renderTitle(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := titleFrom.BlendHcl(titleTo, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true).Render(string(r)))
	}
	return b.String()
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	pos := m.animTick % (textLen + 8)
	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}
		var hexColor string
		switch {
		case dist <= 1:
			hexColor = "#B4A0DC"
		case dist <= 3:
			hexColor = "#8C78B4"
		case dist <= 5:
			hexColor = "#6E5A96"
		default:
			hexColor = "#504678"
		}
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(string(r)))
	}
	return result.String()
}

// progressBar draws value in [0,1] as a fixed-width bar.
func progressBar(value float64, width int) string {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	filled := int(value*float64(width) + 0.5)
	return accentStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
