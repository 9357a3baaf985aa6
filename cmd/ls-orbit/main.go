// Command ls-orbit is an ambient orbit scene for the terminal. The orbits
// drift slowly with every interaction and the drift is remembered between
// sessions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orbit/internal/config"
	"github.com/litescript/ls-orbit/internal/engine"
	"github.com/litescript/ls-orbit/internal/logging"
	"github.com/litescript/ls-orbit/internal/metrics"
	"github.com/litescript/ls-orbit/internal/progress"
	"github.com/litescript/ls-orbit/internal/report"
	"github.com/litescript/ls-orbit/internal/ui"
	"github.com/litescript/ls-orbit/internal/version"
)

// CLI flags for headless mode
var (
	frameMode   bool
	summaryMode bool
	curveMode   bool
	eventsMode  bool
	writeConfig string
	frameCols   int
	frameRows   int
	settleFor   string
	showVersion bool
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.BoolVar(&frameMode, "frame", false, "Print one rendered frame instead of the TUI")
	flag.BoolVar(&summaryMode, "summary", false, "Print the evolved orbit table")
	flag.BoolVar(&curveMode, "curve", false, "Plot orbit radius against progress")
	flag.BoolVar(&eventsMode, "events", false, "Print session events after headless output")
	flag.StringVar(&writeConfig, "write-config", "", "Write the effective config to a file and exit")
	flag.IntVar(&frameCols, "cols", 0, "Frame width in cells (default: terminal width)")
	flag.IntVar(&frameRows, "rows", 0, "Frame height in cells (default: terminal height)")
	flag.StringVar(&settleFor, "settle", "2s", "Simulated time before a headless frame is captured")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("ls-orbit", version.Version)
		return
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if writeConfig != "" {
		if err := cfg.SaveTo(writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config written to", writeConfig)
		return
	}

	headless := frameMode || summaryMode || curveMode || eventsMode

	// The TUI owns the terminal; logs go to the file only.
	logOpts := cfg.LoggerOptions()
	if headless {
		logOpts.Console = os.Stderr
	}
	logger, err := logging.NewWithOptions(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var backend progress.Backend
	if cfg.Progress.Ephemeral {
		backend = progress.NewMemoryBackend()
	} else {
		backend = progress.NewFileBackend(cfg.ProgressPath())
		logger.Debug("Progress file: %s", cfg.ProgressPath())
	}

	collector := metrics.NewCollector(cfg.Metrics.Runtime)
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := collector.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error("Metrics server failed: %v", err)
			}
		}()
	}

	if headless {
		if err := runHeadless(cfg, backend, collector, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	eng := engine.New(cfg.EngineConfig(), engine.Options{
		Backend:  backend,
		Logger:   logger,
		Recorder: collector,
	})

	model := ui.New(eng, ui.Options{
		FPS:         cfg.Display.FPS,
		WheelStep:   cfg.Display.WheelStep,
		KeyDragStep: cfg.Display.KeyDragStep,
		IdleCheck:   cfg.Progress.IdleCheck,
		Color:       cfg.Display.Color != "never",
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Session ended at progress %.4f", eng.Progress())
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(cfg *config.Config, backend progress.Backend, rec engine.Recorder, logger *logging.Logger) error {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	cols, rows := frameCols, frameRows
	if isTTY && (cols <= 0 || rows <= 0) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if cols <= 0 {
				cols = w
			}
			if rows <= 0 {
				rows = h - 1
			}
		}
	}
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	settle, err := time.ParseDuration(settleFor)
	if err != nil {
		return fmt.Errorf("parse --settle: %w", err)
	}

	// Headless frames run on simulated time so the camera and planets
	// settle deterministically.
	clock := engine.NewManualClock(time.Now())
	eng := engine.New(cfg.EngineConfig(), engine.Options{
		Backend:  backend,
		Logger:   logger,
		Recorder: rec,
		Clock:    clock,
	})
	eng.Resize(cols, rows*2)
	eng.Start(clock.Now())

	out := os.Stdout
	exponent := cfg.Scene.EasingExponent

	if summaryMode {
		report.WriteSummary(out, eng.Progress(), cfg.Orbits, exponent)
	}

	if curveMode {
		if summaryMode {
			fmt.Fprintln(out)
		}
		if err := report.WriteCurve(out, cfg.Orbits, exponent, eng.Progress()); err != nil {
			return fmt.Errorf("write curve: %w", err)
		}
	}

	if frameMode {
		step := time.Second / time.Duration(cfg.Display.FPS)
		frame := eng.Tick(clock.Now())
		for elapsed := time.Duration(0); elapsed < settle; elapsed += step {
			clock.Advance(step)
			frame = eng.Tick(clock.Now())
		}
		color := (isTTY && cfg.Display.Color != "never") || cfg.Display.Color == "always"
		if err := report.WriteFrame(out, frame, cols, rows, color); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}

	if eventsMode {
		fmt.Fprintln(out)
		report.WriteEvents(out, eng.Journal().Snapshot().Events, 10)
	}
	return nil
}
