package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orbit/internal/engine"
	"github.com/litescript/ls-orbit/internal/state"
)

var t0 = time.Date(2025, 10, 15, 21, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *engine.Engine, *engine.ManualClock) {
	t.Helper()
	clock := engine.NewManualClock(t0)
	cfg := engine.DefaultConfig()
	cfg.Stars.Count = 40
	eng := engine.New(cfg, engine.Options{Clock: clock})

	opts := DefaultOptions()
	opts.Color = false
	m := New(eng, opts)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model), eng, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitializing(t *testing.T) {
	m := New(engine.New(engine.DefaultConfig(), engine.Options{}), Options{})
	if m.View() != "Initializing..." {
		t.Errorf("expected initializing view, got %q", m.View())
	}
	if m.opts.FPS != 30 || m.opts.WheelStep != 100 {
		t.Errorf("defaults not applied: %+v", m.opts)
	}
	if m.Init() == nil {
		t.Error("Init should schedule ticks")
	}
}

func TestModelWindowSize(t *testing.T) {
	m, eng, _ := newTestModel(t)
	if !m.ready {
		t.Fatal("model should be ready after a size message")
	}
	w, h := eng.Size()
	if w != 80 || h != (24-chromeRows)*2 {
		t.Errorf("engine size = %dx%d, want 80x%d", w, h, (24-chromeRows)*2)
	}
}

func TestModelEnterStarts(t *testing.T) {
	m, eng, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if eng.Progress() != 0 {
		t.Error("keys before start should not advance progress")
	}
	if !strings.Contains(m.View(), "q: quit") {
		t.Error("splash footer missing")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !eng.Started() {
		t.Fatal("enter should start the scene")
	}
	if !strings.Contains(m.View(), "r: reset & compare") {
		t.Error("started footer missing help")
	}
}

func TestModelArrowKeysDrag(t *testing.T) {
	m, eng, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	home := eng.Target()
	speed := eng.Config().Camera.YawSpeed

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	update(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	want := home.Yaw + 12*speed
	if math.Abs(eng.Target().Yaw-want) > 1e-12 {
		t.Errorf("yaw = %v, want %v", eng.Target().Yaw, want)
	}
	if math.Abs(eng.Progress()-3*0.0007) > 1e-12 {
		t.Errorf("progress = %v, want three drag awards", eng.Progress())
	}
	if eng.Dragging() {
		t.Error("a key press should not leave a drag open")
	}
}

func TestModelZoomKeys(t *testing.T) {
	m, eng, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	d := eng.Target().Distance

	m = update(t, m, runes("+"))
	if got := eng.Target().Distance; math.Abs(got-(d-0.15)) > 1e-12 {
		t.Errorf("after +, distance = %v, want %v", got, d-0.15)
	}
	update(t, m, runes("-"))
	if got := eng.Target().Distance; math.Abs(got-d) > 1e-12 {
		t.Errorf("after -, distance = %v, want %v", got, d)
	}
}

func TestModelMouseDrag(t *testing.T) {
	m, eng, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	home := eng.Target()
	speed := eng.Config().Camera.YawSpeed

	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = update(t, m, tea.MouseMsg{X: 12, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	m = update(t, m, tea.MouseMsg{X: 12, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	update(t, m, tea.MouseMsg{X: 30, Y: 5, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion})

	want := home.Yaw + 2*cellPixelsX*speed
	if math.Abs(eng.Target().Yaw-want) > 1e-12 {
		t.Errorf("yaw = %v, want %v", eng.Target().Yaw, want)
	}
	if !eng.Moved() {
		t.Error("drag should hide the hint")
	}
}

func TestModelMouseWheel(t *testing.T) {
	m, eng, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	d := eng.Target().Distance

	update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := eng.Target().Distance; math.Abs(got-(d+0.15)) > 1e-12 {
		t.Errorf("wheel down distance = %v, want %v", got, d+0.15)
	}
	if math.Abs(eng.Progress()-0.0009) > 1e-12 {
		t.Errorf("progress = %v, want 0.0009", eng.Progress())
	}
}

func TestModelFocusRefocus(t *testing.T) {
	m, eng, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, tea.BlurMsg{})
	update(t, m, tea.FocusMsg{})
	if math.Abs(eng.Progress()-0.0015) > 1e-12 {
		t.Errorf("progress = %v, want 0.0015", eng.Progress())
	}
}

func TestModelCompareToggle(t *testing.T) {
	m, eng, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, FrameMsg{})

	m = update(t, m, runes("r"))
	if _, _, open := eng.Compare(); !open {
		t.Fatal("r should open the compare panel")
	}
	view := m.View()
	for _, want := range []string{"BEFORE", "NOW", "not captured yet", "[x] close"} {
		if !strings.Contains(view, want) {
			t.Errorf("compare view missing %q", want)
		}
	}

	m = update(t, m, runes("x"))
	if _, _, open := eng.Compare(); open {
		t.Error("x should close the compare panel")
	}
	if strings.Contains(m.View(), "BEFORE") {
		t.Error("closed panel still rendered")
	}
}

func TestModelFrameTick(t *testing.T) {
	m, eng, _ := newTestModel(t)

	next, cmd := m.Update(FrameMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("frame tick should schedule the next frame")
	}
	if m.animTick != 1 {
		t.Errorf("animTick = %d, want 1", m.animTick)
	}
	if f := eng.LastFrame(); f.Width != 80 || len(f.Commands) == 0 {
		t.Errorf("frame not rendered: %dx%d, %d commands", f.Width, f.Height, len(f.Commands))
	}

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 24 {
		t.Errorf("view has %d lines, want 24", len(lines))
	}
}

func TestModelIdleTick(t *testing.T) {
	m, eng, clock := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	clock.Advance(31 * time.Second)
	_, cmd := m.Update(IdleTickMsg{})
	if cmd == nil {
		t.Error("idle tick should reschedule itself")
	}
	if math.Abs(eng.Progress()-0.00045) > 1e-12 {
		t.Errorf("progress = %v, want one idle award", eng.Progress())
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		value  float64
		filled int
	}{
		{0, 0},
		{0.5, 10},
		{1, 20},
		{1.7, 20},
		{-1, 0},
	}
	for _, tt := range tests {
		bar := progressBar(tt.value, barWidth)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progressBar(%v) filled %d, want %d", tt.value, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != barWidth {
			t.Errorf("progressBar(%v) width %d, want %d", tt.value, got, barWidth)
		}
	}
}

func TestModelUsesEngineClock(t *testing.T) {
	m, eng, clock := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	clock.Advance(2 * time.Second)
	m = update(t, m, FrameMsg{})
	update(t, m, runes("r"))

	want := engine.DefaultConfig().Overlay.Duration
	if got := eng.Overlay().Remaining(clock.Now()); got != want {
		t.Errorf("overlay remaining = %v, want %v", got, want)
	}

	events := eng.Journal().Snapshot().Events
	last := events[len(events)-1]
	if last.Type != state.EventReset || !last.Timestamp.Equal(clock.Now()) {
		t.Errorf("last event = %s at %v, want RESET at %v", last.Type, last.Timestamp, clock.Now())
	}
	if !events[0].Timestamp.Equal(t0) {
		t.Errorf("start recorded at %v, want %v", events[0].Timestamp, t0)
	}
}

func TestFooterShowsIdleTime(t *testing.T) {
	m, _, clock := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if strings.Contains(m.View(), "idle ") {
		t.Error("fresh session should not show idle time")
	}

	clock.Advance(42 * time.Second)
	if view := m.View(); !strings.Contains(view, "idle 42s") {
		t.Errorf("footer missing idle time:\n%s", view)
	}
}
