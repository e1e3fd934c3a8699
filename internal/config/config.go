// Package config loads editor configuration from TOML files and the
// environment.
//
// Lookup order, later sources overriding earlier ones:
//  1. built-in defaults
//  2. the TOML config file (a missing file is not an error)
//  3. WEBCDU_* environment variables
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable names recognized by applyEnv.
const (
	envHistoryMaxEntries = "WEBCDU_HISTORY_MAX_ENTRIES"
	envLogLevel          = "WEBCDU_LOG_LEVEL"
)

// Config is the editor configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// HistoryConfig configures the undo/redo engine.
type HistoryConfig struct {
	// MaxEntries bounds the command history. Oldest entries are evicted
	// silently once the bound is exceeded.
	MaxEntries int `toml:"max_entries"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level to output: debug, info, warn, or error.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxEntries: 50},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the configuration from path, applying defaults and environment
// overrides. A nonexistent file yields defaults plus environment, not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to environment overrides.
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg = applyEnv(cfg)
	return sanitize(cfg), nil
}

// applyEnv overlays WEBCDU_* environment variables onto cfg.
func applyEnv(cfg Config) Config {
	if v, ok := os.LookupEnv(envHistoryMaxEntries); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxEntries = n
		}
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	return cfg
}

// sanitize replaces out-of-range values with defaults.
func sanitize(cfg Config) Config {
	def := Default()
	if cfg.History.MaxEntries <= 0 {
		cfg.History.MaxEntries = def.History.MaxEntries
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	return cfg
}
