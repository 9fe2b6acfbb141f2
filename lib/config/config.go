// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads and validates vitals configuration.
//
// Configuration is read from a single YAML file specified by:
//
//   - the VITALS_CONFIG environment variable, or
//   - the --config flag passed to the command.
//
// There are no fallbacks or automatic discovery. When neither is set,
// the built-in defaults apply, so a config file is never required.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/poller"
)

// EnvVar names the environment variable that points at the config file.
const EnvVar = "VITALS_CONFIG"

// Config is the top-level vitals configuration.
type Config struct {
	// Interval is the poll cadence as a Go duration string ("2s",
	// "500ms"). Empty uses the provider's default interval.
	Interval string `yaml:"interval"`

	// Theme selects the color palette: "dark", "light", or "auto".
	// Auto probes the terminal background. Empty means auto.
	Theme string `yaml:"theme"`

	// Thresholds is the path to a JSONC file of threshold rules.
	// Empty uses the built-in rules.
	Thresholds string `yaml:"thresholds"`

	// Categories controls which metric categories are shown.
	Categories CategoriesConfig `yaml:"categories"`

	// UI adjusts the dashboard layout.
	UI UIConfig `yaml:"ui"`

	// Logging controls diagnostic output.
	Logging LoggingConfig `yaml:"logging"`
}

// CategoriesConfig controls category visibility.
type CategoriesConfig struct {
	// Disabled lists category names (case-insensitive) that are
	// hidden from the dashboard entirely.
	Disabled []string `yaml:"disabled"`
}

// UIConfig adjusts the dashboard layout.
type UIConfig struct {
	// SplitRatio is the metric list's share of the window width when
	// the detail pane is open, between 0.20 and 0.80. Zero uses the
	// default split.
	SplitRatio float64 `yaml:"split_ratio"`

	// Collapsed lists category names that start collapsed.
	Collapsed []string `yaml:"collapsed"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Output is a file path that receives JSON log records. Empty
	// disables file logging; records then surface only in the
	// dashboard status bar.
	Output string `yaml:"output"`

	// Level is the minimum record level: "debug", "info", "warn", or
	// "error". Empty means info.
	Level string `yaml:"level"`
}

// Default returns the built-in configuration used when no file is set.
func Default() *Config {
	return &Config{
		Theme: "auto",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config file named by the VITALS_CONFIG environment
// variable. When the variable is unset the defaults are returned, so
// running without any configuration always works.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the config file at path. Settings start
// from Default, so the file only needs the fields it changes.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// PollInterval parses the configured interval. It returns zero when
// the field is empty, meaning the provider's default should be used.
func (c *Config) PollInterval() (time.Duration, error) {
	if c.Interval == "" {
		return 0, nil
	}
	interval, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("interval: invalid duration %q", c.Interval)
	}
	return interval, nil
}

// LogLevel parses the configured logging level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch c.Logging.Level {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
}

// Validate checks the configuration for consistency. All problems are
// reported together rather than one at a time.
func (c *Config) Validate() error {
	var errs []error

	if interval, err := c.PollInterval(); err != nil {
		errs = append(errs, err)
	} else if interval != 0 && interval < poller.MinInterval {
		errs = append(errs, fmt.Errorf("interval: %s is below the %s minimum", interval, poller.MinInterval))
	}

	switch c.Theme {
	case "", "auto", "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("theme: unknown theme %q (want dark, light, or auto)", c.Theme))
	}

	if r := c.UI.SplitRatio; r != 0 && (r < 0.20 || r > 0.80) {
		errs = append(errs, fmt.Errorf("ui.split_ratio: %.2f is outside 0.20..0.80", r))
	}

	for _, name := range c.Categories.Disabled {
		if _, ok := metric.CategoryByName(name); !ok {
			errs = append(errs, fmt.Errorf("categories.disabled: unknown category %q", name))
		}
	}
	for _, name := range c.UI.Collapsed {
		if _, ok := metric.CategoryByName(name); !ok {
			errs = append(errs, fmt.Errorf("ui.collapsed: unknown category %q", name))
		}
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
