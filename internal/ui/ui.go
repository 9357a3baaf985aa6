// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orbit/internal/engine"
	"github.com/litescript/ls-orbit/internal/progress"
)

// Terminal cells are coarser than the pointer units the camera speeds are
// tuned for; mouse motion is scaled by these factors.
const (
	cellPixelsX = 8
	cellPixelsY = 16
)

// Chrome rows around the scene: header and footer.
const chromeRows = 2

// Msg types for Bubble Tea
type (
	// FrameMsg schedules one engine tick.
	FrameMsg struct{}

	// IdleTickMsg triggers the coarse idle check.
	IdleTickMsg struct{}
)

// Options configures the model.
type Options struct {
	FPS         int
	WheelStep   float64       // wheel delta per notch or +/- press
	KeyDragStep float64       // drag units per arrow key press
	IdleCheck   time.Duration // interval between idle checks
	Color       bool          // truecolor output
}

// DefaultOptions returns the reference terminal settings.
func DefaultOptions() Options {
	return Options{
		FPS:         30,
		WheelStep:   100,
		KeyDragStep: 12,
		IdleCheck:   progress.DefaultIdleCheckInterval,
		Color:       true,
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	eng  *engine.Engine
	opts Options

	// UI state
	width    int
	height   int
	ready    bool
	animTick int // frame counter for the splash shimmer
}

// New creates a new root UI model around eng.
func New(eng *engine.Engine, opts Options) Model {
	d := DefaultOptions()
	if opts.FPS <= 0 {
		opts.FPS = d.FPS
	}
	if opts.WheelStep <= 0 {
		opts.WheelStep = d.WheelStep
	}
	if opts.KeyDragStep <= 0 {
		opts.KeyDragStep = d.KeyDragStep
	}
	if opts.IdleCheck <= 0 {
		opts.IdleCheck = d.IdleCheck
	}
	return Model{eng: eng, opts: opts}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameCmd(m.opts.FPS),
		idleCmd(m.opts.IdleCheck),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.FocusMsg:
		m.eng.VisibilityChanged(true)

	case tea.BlurMsg:
		m.eng.VisibilityChanged(false)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		cols, rows := m.sceneSize()
		m.eng.Resize(cols, rows*2)

	case FrameMsg:
		m.animTick++
		m.eng.Tick(m.eng.Now())
		return m, frameCmd(m.opts.FPS)

	case IdleTickMsg:
		m.eng.CheckIdle(m.eng.Now())
		return m, idleCmd(m.opts.IdleCheck)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "enter", " ":
		m.eng.Start(m.eng.Now())

	case "r":
		m.eng.ResetView(m.eng.Now())

	case "x", "esc":
		m.eng.CloseCompare()

	case "+", "=":
		m.eng.Wheel(-m.opts.WheelStep)
	case "-", "_":
		m.eng.Wheel(m.opts.WheelStep)

	case "left", "h":
		m.keyDrag(-m.opts.KeyDragStep, 0)
	case "right", "l":
		m.keyDrag(m.opts.KeyDragStep, 0)
	case "up", "k":
		m.keyDrag(0, -m.opts.KeyDragStep)
	case "down", "j":
		m.keyDrag(0, m.opts.KeyDragStep)
	}
	return m, nil
}

// keyDrag applies one arrow key press as a complete drag gesture.
func (m Model) keyDrag(dx, dy float64) {
	if m.eng.Dragging() {
		m.eng.DragMove(dx, dy)
		return
	}
	m.eng.DragStart(0, 0)
	m.eng.DragMove(dx, dy)
	m.eng.DragEnd()
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X * cellPixelsX)
	y := float64(msg.Y * cellPixelsY)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.eng.Wheel(-m.opts.WheelStep)
		return
	case tea.MouseButtonWheelDown:
		m.eng.Wheel(m.opts.WheelStep)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.eng.DragStart(x, y)
		}
	case tea.MouseActionMotion:
		m.eng.DragTo(x, y)
	case tea.MouseActionRelease:
		m.eng.DragEnd()
	}
}

// sceneSize returns the canvas size in cells.
func (m Model) sceneSize() (cols, rows int) {
	rows = m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	cols = m.width
	if cols < 1 {
		cols = 1
	}
	return cols, rows
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	if _, _, open := m.eng.Compare(); open {
		content = m.renderCompare()
	} else {
		content = m.renderScene()
	}
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(time.Time) tea.Msg {
		return FrameMsg{}
	})
}

func idleCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return IdleTickMsg{}
	})
}
