// Package logging provides a leveled logger backed by zap, with optional
// rotating file output.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// FileConfig holds rotating file output settings.
type FileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultFileConfig returns default rotation settings for path.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// Options selects where log output goes.
type Options struct {
	Level Level
	File  FileConfig // empty Path disables file output

	// Console is the console destination; nil disables console output.
	// The TUI leaves it nil because the alternate screen owns the terminal.
	Console io.Writer
}

// Logger is a leveled printf-style logger.
type Logger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
	sync  func() error
}

// New creates a logger writing to stderr.
func New(level Level) *Logger {
	l, _ := NewWithOptions(Options{Level: level, Console: os.Stderr})
	return l
}

// NewWithOptions creates a logger from explicit options. An error is
// returned only when the log file directory cannot be created.
func NewWithOptions(opts Options) (*Logger, error) {
	level := zap.NewAtomicLevelAt(opts.Level.zap())

	var cores []zapcore.Core
	if opts.Console != nil {
		enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			MessageKey:       "msg",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05.000"),
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(opts.Console), level))
	}

	if opts.File.Path != "" {
		if err := ensureDir(opts.File.Path); err != nil {
			return Discard(), fmt.Errorf("create log directory: %w", err)
		}
		w := &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSizeMB,
			MaxBackups: opts.File.MaxBackups,
			MaxAge:     opts.File.MaxAgeDays,
			Compress:   opts.File.Compress,
			LocalTime:  true,
		}
		enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.ISO8601TimeEncoder,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), level))
	}

	if len(cores) == 0 {
		return Discard(), nil
	}

	z := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logger{level: level, sugar: z.Sugar(), sync: z.Sync}, nil
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zap())
}

// Enabled reports whether messages at level are emitted.
func (l *Logger) Enabled(level Level) bool {
	return l.level.Enabled(level.zap())
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered output.
func (l *Logger) Sync() {
	if l.sync != nil {
		_ = l.sync()
	}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{
		level: zap.NewAtomicLevelAt(zapcore.FatalLevel),
		sugar: zap.NewNop().Sugar(),
	}
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
