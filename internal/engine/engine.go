// Package engine is the scene context object. It owns the camera, the
// progress store, the comparison overlay, the idle detector and the
// session journal, maps input events onto them and produces one frame per
// tick. An Engine is not safe for concurrent use; the UI loop owns it.
package engine

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/litescript/ls-orbit/internal/astro"
	"github.com/litescript/ls-orbit/internal/camera"
	"github.com/litescript/ls-orbit/internal/logging"
	"github.com/litescript/ls-orbit/internal/overlay"
	"github.com/litescript/ls-orbit/internal/progress"
	"github.com/litescript/ls-orbit/internal/render"
	"github.com/litescript/ls-orbit/internal/state"
)

// Interaction kinds reported to the journal and the Recorder.
const (
	KindDrag    = "drag"
	KindWheel   = "wheel"
	KindRefocus = "refocus"
	KindIdle    = "idle"
)

// Default compare panel timing.
const (
	DefaultBaselineDelay = 1500 * time.Millisecond
	DefaultPanelDuration = 6 * time.Second
)

// Recorder receives engine instrumentation. metrics.Collector implements it.
type Recorder interface {
	FrameRendered(s render.Stats)
	Interaction(kind string)
	ProgressChanged(value float64, persisted bool)
	OverlayActive(active bool)
}

type nopRecorder struct{}

func (nopRecorder) FrameRendered(render.Stats)    {}
func (nopRecorder) Interaction(string)            {}
func (nopRecorder) ProgressChanged(float64, bool) {}
func (nopRecorder) OverlayActive(bool)            {}

// OverlayConfig holds the comparison overlay settings.
type OverlayConfig struct {
	Duration time.Duration
	Fade     overlay.Fade
	MaxAlpha float64
}

// Config holds everything the engine needs to build a scene.
type Config struct {
	Camera        camera.Config
	Policy        progress.Policy
	ProgressKey   string
	Overlay       OverlayConfig
	IdleAfter     time.Duration
	BaselineDelay time.Duration
	PanelDuration time.Duration
	Style         render.Style
	Orbits        []astro.OrbitSpec
	Planets       []astro.Planet
	Stars         astro.ShellConfig
	Journal       state.Config
}

// DefaultConfig returns the reference scene.
func DefaultConfig() Config {
	return Config{
		Camera:      camera.DefaultConfig(),
		Policy:      progress.DefaultPolicy(),
		ProgressKey: progress.DefaultKey,
		Overlay: OverlayConfig{
			Duration: overlay.DefaultDuration,
			Fade:     overlay.FadeLinear,
			MaxAlpha: overlay.DefaultMaxAlpha,
		},
		IdleAfter:     progress.DefaultIdleAfter,
		BaselineDelay: DefaultBaselineDelay,
		PanelDuration: DefaultPanelDuration,
		Style:         render.DefaultStyle(),
		Orbits:        astro.ReferenceOrbits(),
		Planets:       astro.ReferencePlanets(),
		Stars:         astro.DefaultShellConfig(),
		Journal:       state.DefaultConfig(),
	}
}

// Options carries the engine's collaborators. Every field is optional.
type Options struct {
	Backend  progress.Backend
	Logger   *logging.Logger
	Recorder Recorder
	Clock    Clock
}

// Snapshot is a captured moment of the scene, kept as render inputs so it
// can be re-rendered at any size.
type Snapshot struct {
	Taken    time.Time
	Pose     astro.Pose
	Progress float64
	Elapsed  time.Duration
}

// Engine is the scene context object.
type Engine struct {
	cfg   Config
	log   *logging.Logger
	rec   Recorder
	clock Clock

	cam     *camera.Camera
	store   *progress.Store
	overlay *overlay.Overlay
	idle    *progress.IdleDetector
	journal *state.Manager
	stars   []astro.Star

	epoch         time.Time
	width, height int

	started   bool
	startedAt time.Time
	visible   bool

	dragging     bool
	lastX, lastY float64
	moved        bool

	baseline   *Snapshot
	current    *Snapshot
	panelOpen  bool
	panelUntil time.Time

	logLimit *rate.Limiter
	last     render.Frame
}

// New builds an engine and loads the persisted progress.
func New(cfg Config, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if cfg.BaselineDelay <= 0 {
		cfg.BaselineDelay = DefaultBaselineDelay
	}
	if cfg.PanelDuration <= 0 {
		cfg.PanelDuration = DefaultPanelDuration
	}
	if cfg.Orbits == nil {
		cfg.Orbits = astro.ReferenceOrbits()
	}
	if cfg.Planets == nil {
		cfg.Planets = astro.ReferencePlanets()
	}

	now := opts.Clock.Now()
	e := &Engine{
		cfg:      cfg,
		log:      opts.Logger,
		rec:      opts.Recorder,
		clock:    opts.Clock,
		cam:      camera.New(cfg.Camera),
		store:    progress.Open(opts.Backend, cfg.ProgressKey, opts.Logger),
		overlay:  overlay.New(cfg.Overlay.Duration, cfg.Overlay.Fade, cfg.Overlay.MaxAlpha),
		idle:     progress.NewIdleDetector(cfg.IdleAfter, now),
		journal:  state.NewManager(cfg.Journal),
		stars:    astro.GenerateStars(cfg.Stars),
		epoch:    now,
		visible:  true,
		logLimit: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
	e.store.OnChange = e.progressChanged
	e.log.Debug("Engine ready: %d orbits, %d planets, %d stars, progress %.4f",
		len(cfg.Orbits), len(cfg.Planets), len(e.stars), e.store.Value())
	return e
}

func (e *Engine) progressChanged(value float64, persisted bool) {
	now := e.clock.Now()
	e.journal.RecordProgress(now, value, persisted)
	e.rec.ProgressChanged(value, persisted)
	if e.logLimit.AllowN(now, 1) {
		e.log.Debug("Progress %.5f (persisted=%v)", value, persisted)
	}
}

func (e *Engine) award(kind string, delta float64) {
	e.journal.CountInteraction(kind)
	e.rec.Interaction(kind)
	e.store.Record(delta)
}

// Start opens the scene to input. Calls after the first are ignored.
func (e *Engine) Start(now time.Time) {
	if e.started {
		return
	}
	e.started = true
	e.startedAt = now
	e.idle.Touch(now)
	e.journal.Begin(now, e.store.Value())
	e.log.Info("Scene started at progress %.4f", e.store.Value())
}

// DragStart begins a drag at pointer position (x, y).
func (e *Engine) DragStart(x, y float64) {
	if !e.started {
		return
	}
	e.dragging = true
	e.lastX, e.lastY = x, y
}

// DragMove rotates the camera by a pointer displacement while dragging.
// Every move awards the drag delta.
func (e *Engine) DragMove(dx, dy float64) {
	if !e.started || !e.dragging {
		return
	}
	e.cam.Drag(dx, dy)
	e.moved = true
	e.idle.Touch(e.clock.Now())
	e.award(KindDrag, e.cfg.Policy.Drag)
}

// DragTo moves the pointer to (x, y) and applies the displacement since the
// last drag position.
func (e *Engine) DragTo(x, y float64) {
	if !e.dragging {
		return
	}
	dx, dy := x-e.lastX, y-e.lastY
	e.lastX, e.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	e.DragMove(dx, dy)
}

// DragEnd ends the current drag.
func (e *Engine) DragEnd() {
	e.dragging = false
}

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool {
	return e.dragging
}

// Wheel zooms by a wheel delta. Positive moves the camera away.
func (e *Engine) Wheel(deltaY float64) {
	if !e.started {
		return
	}
	e.cam.Zoom(deltaY)
	e.moved = true
	e.idle.Touch(e.clock.Now())
	e.award(KindWheel, e.cfg.Policy.Zoom)
}

// VisibilityChanged records the host view becoming visible or hidden.
// Becoming visible after Start awards the refocus delta.
func (e *Engine) VisibilityChanged(visible bool) {
	was := e.visible
	e.visible = visible
	if !visible || was || !e.started {
		return
	}
	now := e.clock.Now()
	e.idle.Touch(now)
	e.journal.RecordEvent(state.Event{Type: state.EventRefocus, Timestamp: now, Progress: e.store.Value()})
	e.award(KindRefocus, e.cfg.Policy.Refocus)
}

// ResetView sends the camera home, triggers the comparison overlay and
// opens the compare panel with the current view as "now".
func (e *Engine) ResetView(now time.Time) {
	if !e.started {
		return
	}
	value := e.store.Value()
	e.current = e.snapshot(now)
	e.cam.Reset()
	e.overlay.Trigger(now, value)
	e.rec.OverlayActive(true)
	e.panelOpen = true
	e.panelUntil = now.Add(e.cfg.PanelDuration)
	e.journal.RecordEvent(state.Event{Type: state.EventReset, Timestamp: now, Progress: value})
	e.log.Debug("View reset at progress %.4f", value)
}

// CloseCompare hides the compare panel.
func (e *Engine) CloseCompare() {
	e.panelOpen = false
}

// CheckIdle awards the idle delta once per sustained pause. It reports
// whether the delta was awarded.
func (e *Engine) CheckIdle(now time.Time) bool {
	if !e.started || !e.visible || !e.idle.Check(now) {
		return false
	}
	e.journal.RecordEvent(state.Event{Type: state.EventIdle, Timestamp: now, Progress: e.store.Value()})
	e.award(KindIdle, e.cfg.Policy.Idle)
	return true
}

// Resize sets the surface size in pixels.
func (e *Engine) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	e.width, e.height = w, h
}

// Tick advances one frame: camera smoothing, overlay expiry, baseline
// capture, then rendering.
func (e *Engine) Tick(now time.Time) render.Frame {
	e.cam.Step()

	if was := e.overlay.Active(); e.overlay.Update(now) != was {
		e.rec.OverlayActive(!was)
	}
	if e.panelOpen && now.After(e.panelUntil) {
		e.panelOpen = false
	}
	if e.started && e.baseline == nil && now.Sub(e.startedAt) > e.cfg.BaselineDelay {
		e.baseline = e.snapshot(now)
		e.journal.RecordEvent(state.Event{Type: state.EventBaseline, Timestamp: now, Progress: e.baseline.Progress})
	}

	in := e.input(e.cam.Pose(), e.store.Value(), now.Sub(e.epoch), e.width, e.height)
	if a := e.overlay.Alpha(now); e.overlay.Active() && a > 0 {
		in.Ghost = &render.Ghost{Progress: e.overlay.Snapshot(), Alpha: a}
	}
	e.last = render.Scene(in)
	e.rec.FrameRendered(e.last.Stats)
	return e.last
}

func (e *Engine) input(pose astro.Pose, value float64, elapsed time.Duration, w, h int) render.Input {
	return render.Input{
		Pose:     pose,
		Progress: value,
		Orbits:   e.cfg.Orbits,
		Planets:  e.cfg.Planets,
		Stars:    e.stars,
		Elapsed:  elapsed,
		Width:    w,
		Height:   h,
		Style:    e.cfg.Style,
	}
}

func (e *Engine) snapshot(now time.Time) *Snapshot {
	return &Snapshot{
		Taken:    now,
		Pose:     e.cam.Pose(),
		Progress: e.store.Value(),
		Elapsed:  now.Sub(e.epoch),
	}
}

// SnapshotInput returns the render input that reproduces s at w×h.
func (e *Engine) SnapshotInput(s Snapshot, w, h int) render.Input {
	return e.input(s.Pose, s.Progress, s.Elapsed, w, h)
}

// Started reports whether Start has been called.
func (e *Engine) Started() bool { return e.started }

// Moved reports whether the user has moved the camera since start.
func (e *Engine) Moved() bool { return e.moved }

// Progress returns the current progress value.
func (e *Engine) Progress() float64 { return e.store.Value() }

// Pose returns the current camera pose.
func (e *Engine) Pose() astro.Pose { return e.cam.Pose() }

// Target returns the camera target pose.
func (e *Engine) Target() astro.Pose { return e.cam.Target() }

// Overlay returns the comparison overlay.
func (e *Engine) Overlay() *overlay.Overlay { return e.overlay }

// Journal returns the session journal.
func (e *Engine) Journal() *state.Manager { return e.journal }

// LastFrame returns the most recent frame.
func (e *Engine) LastFrame() render.Frame { return e.last }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Compare returns the compare panel snapshots and whether the panel is
// open. Either snapshot may be nil.
func (e *Engine) Compare() (before, now *Snapshot, open bool) {
	return e.baseline, e.current, e.panelOpen
}

// Size returns the surface size.
func (e *Engine) Size() (int, int) { return e.width, e.height }

// Now reads the engine clock. Callers pass it back into Start, ResetView,
// CheckIdle and Tick so every timestamp comes from one source.
func (e *Engine) Now() time.Time { return e.clock.Now() }

// IdleFor returns the time since the last interaction.
func (e *Engine) IdleFor(now time.Time) time.Duration { return e.idle.IdleFor(now) }
