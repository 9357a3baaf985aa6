package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the working directory.
const FileName = "ls-orbit.yaml"

// Load loads configuration with priority: defaults < file < flags.
// f may be nil when no flags were registered.
func Load(f *Flags) (*Config, error) {
	cfg := Default()

	configPath := ""
	if f != nil {
		configPath = f.ConfigPath()
	}
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	if f != nil {
		f.apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + FileName,
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "LsOrbit")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "LsOrbit")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "ls-orbit")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "ls-orbit")
	}
}

// DataDir returns the OS-appropriate directory for persisted progress.
func DataDir() string {
	switch runtime.GOOS {
	case "darwin", "windows":
		return ConfigDir()
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "ls-orbit")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "ls-orbit")
	}
}

// ProgressPath returns the progress file, falling back to DataDir.
func (c *Config) ProgressPath() string {
	if c.Progress.File != "" {
		return c.Progress.File
	}
	return filepath.Join(DataDir(), "progress.yaml")
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Lists (orbits, planets) present in the file replace the defaults.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
