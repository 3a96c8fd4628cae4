// Package config loads cubestudio settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DirName is the per-user settings directory under the home directory.
const DirName = ".cubestudio"

// Config holds all settings. Zero values are replaced by defaults on load.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Solver   SolverConfig   `yaml:"solver"`
	Storage  StorageConfig  `yaml:"storage"`
	Playback PlaybackConfig `yaml:"playback"`

	// ValidateBeforeSolve runs the color-count check before calling the
	// solver. A failed check aborts the solve.
	ValidateBeforeSolve bool `yaml:"validate_before_solve"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type SolverConfig struct {
	// URL of a remote solve service. Empty uses the built-in demo solver.
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

type PlaybackConfig struct {
	TurnDuration time.Duration `yaml:"turn_duration"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
		Solver: SolverConfig{
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Enabled: true,
		},
		Playback: PlaybackConfig{
			TurnDuration: 300 * time.Millisecond,
		},
		ValidateBeforeSolve: true,
		LogLevel:            "info",
	}
}

// DefaultPath returns ~/.cubestudio/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName, "config.yaml"), nil
}

// Load reads the file at path over the defaults. With an empty path the
// default location is used, and a missing file there is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Solver.Timeout < 0 {
		return fmt.Errorf("config: solver.timeout must not be negative")
	}
	if c.Playback.TurnDuration < 0 {
		return fmt.Errorf("config: playback.turn_duration must not be negative")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// DBPath returns the history database path, defaulting to
// ~/.cubestudio/history.db.
func (c *Config) DBPath() (string, error) {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName, "history.db"), nil
}

// Save writes the settings as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
