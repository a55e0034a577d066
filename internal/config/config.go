// Package config loads the YAML settings shared by the shell and the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kk-code-lab/fbrowse/internal/logger"
	"github.com/kk-code-lab/fbrowse/internal/search"
	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the directory name under ~/.config.
	AppDir = "fbrowse"
	// FileName is the config file name.
	FileName = "config.yaml"
)

// Config is the on-disk configuration.
type Config struct {
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Listing struct {
		ShowHidden bool `yaml:"show_hidden"`
	} `yaml:"listing"`
	Search struct {
		Workers    int      `yaml:"workers"`     // 0 uses every CPU
		Buffer     int      `yaml:"buffer"`      // match channel capacity
		DrainLimit int      `yaml:"drain_limit"` // matches taken per tick
		SkipHidden bool     `yaml:"skip_hidden"`
		Exclude    []string `yaml:"exclude"`
	} `yaml:"search"`
	Selection struct {
		KeyReleaseMS int `yaml:"key_release_ms"`
	} `yaml:"selection"`
	UI struct {
		NothingSelected string `yaml:"nothing_selected"`
		TickMS          int    `yaml:"tick_ms"`
	} `yaml:"ui"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Search.Buffer = 1024
	cfg.Search.DrainLimit = 4096
	cfg.Search.Exclude = []string{".git", "node_modules", "proc"}
	cfg.Selection.KeyReleaseMS = 550
	cfg.UI.NothingSelected = "Nothing selected"
	cfg.UI.TickMS = 50
	return cfg
}

// DefaultPath returns ~/.config/fbrowse/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDir, FileName), nil
}

// Load reads path and overlays it on the defaults. A missing file yields the
// defaults. Keys present in the file win even when they hold zero values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidationError names the offending key.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// Validate checks value ranges. The log level is normalized in place.
func (c *Config) Validate() error {
	switch {
	case c.Search.Workers < 0:
		return &ValidationError{Field: "search.workers", Reason: "must not be negative"}
	case c.Search.Buffer < 1:
		return &ValidationError{Field: "search.buffer", Reason: "must be at least 1"}
	case c.Search.DrainLimit < 1:
		return &ValidationError{Field: "search.drain_limit", Reason: "must be at least 1"}
	case c.Selection.KeyReleaseMS < 1:
		return &ValidationError{Field: "selection.key_release_ms", Reason: "must be at least 1"}
	case c.UI.TickMS < 1:
		return &ValidationError{Field: "ui.tick_ms", Reason: "must be at least 1"}
	case c.UI.NothingSelected == "":
		return &ValidationError{Field: "ui.nothing_selected", Reason: "must not be empty"}
	}
	for _, pattern := range c.Search.Exclude {
		if pattern == "" {
			return &ValidationError{Field: "search.exclude", Reason: "empty pattern"}
		}
	}
	c.Log.Level = logger.NormalizeLevel(c.Log.Level)
	return nil
}

// KeyReleaseTimeout is how long a letter stays held without a repeat.
func (c *Config) KeyReleaseTimeout() time.Duration {
	return time.Duration(c.Selection.KeyReleaseMS) * time.Millisecond
}

// TickInterval is the shell's refresh period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.UI.TickMS) * time.Millisecond
}

// SearchOptions maps the search section onto pipeline options.
func (c *Config) SearchOptions(log *logger.Logger) search.Options {
	return search.Options{
		Workers:    c.Search.Workers,
		Buffer:     c.Search.Buffer,
		DrainLimit: c.Search.DrainLimit,
		SkipHidden: c.Search.SkipHidden,
		Exclude:    append([]string(nil), c.Search.Exclude...),
		Logger:     log,
	}
}
