package config

import (
	"flag"
	"time"
)

// Flags holds the command-line overrides registered on a FlagSet.
type Flags struct {
	config      *string
	debug       *bool
	logLevel    *string
	logFile     *string
	fps         *int
	progress    *string
	ephemeral   *bool
	key         *string
	fade        *string
	overlayFor  *time.Duration
	metricsAddr *string
	color       *string
}

// RegisterFlags registers the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:      fs.String("config", "", "Path to config file"),
		debug:       fs.Bool("debug", false, "Enable debug logging"),
		logLevel:    fs.String("log-level", "", "Log level (debug, info, warn, error)"),
		logFile:     fs.String("log-file", "", "Write logs to a rotating file"),
		fps:         fs.Int("fps", 0, "Frames per second"),
		progress:    fs.String("progress-file", "", "Progress file path"),
		ephemeral:   fs.Bool("ephemeral", false, "Keep progress in memory only"),
		key:         fs.String("key", "", "Progress key"),
		fade:        fs.String("fade", "", "Overlay fade (linear, envelope)"),
		overlayFor:  fs.Duration("overlay", 0, "Overlay duration (e.g., 5s)"),
		metricsAddr: fs.String("metrics-addr", "", "Serve Prometheus metrics on addr (e.g., :9464)"),
		color:       fs.String("color", "", "Color output (auto, always, never)"),
	}
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.logLevel != "" {
		cfg.Logging.Level = *f.logLevel
	}
	if *f.logFile != "" {
		cfg.Logging.File = *f.logFile
	}
	if *f.fps > 0 {
		cfg.Display.FPS = *f.fps
	}
	if *f.progress != "" {
		cfg.Progress.File = *f.progress
	}
	if *f.ephemeral {
		cfg.Progress.Ephemeral = true
	}
	if *f.key != "" {
		cfg.Progress.Key = *f.key
	}
	if *f.fade != "" {
		cfg.Overlay.Fade = *f.fade
	}
	if *f.overlayFor > 0 {
		cfg.Overlay.Duration = *f.overlayFor
	}
	if *f.metricsAddr != "" {
		cfg.Metrics.Addr = *f.metricsAddr
	}
	if *f.color != "" {
		cfg.Display.Color = *f.color
	}
}
