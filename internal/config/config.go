// Package config provides unified configuration for the REPL and web
// front ends.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration for all front ends. The engine itself
// needs none; everything here belongs to the shells around it.
type Config struct {
	// HTTP configuration for the web front end
	HTTP HTTPConfig `json:"http" yaml:"http"`

	// REPL configuration for the interactive shell
	REPL REPLConfig `json:"repl" yaml:"repl"`

	// Stats configuration for statement statistics
	Stats StatsConfig `json:"stats" yaml:"stats"`

	// SeedFile is an optional file of statements executed at startup,
	// one per line, to pre-populate the database
	SeedFile string `json:"seed_file" yaml:"seed_file"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	// Addr is the listen address for the web front end
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout is the HTTP read timeout
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the HTTP write timeout
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the HTTP idle timeout
	IdleTimeout time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
}

// REPLConfig holds interactive shell configuration.
type REPLConfig struct {
	// Prompt is the string printed before each input line
	Prompt string `json:"prompt" yaml:"prompt"`
}

// StatsConfig holds statement statistics configuration.
type StatsConfig struct {
	// Enabled controls whether statement statistics are collected
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Window is the retention duration for statistics entries
	Window time.Duration `json:"window" yaml:"window"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		REPL: REPLConfig{
			Prompt: "simpledb> ",
		},
		Stats: StatsConfig{
			Enabled: true,
			Window:  time.Hour,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Stats.Enabled && c.Stats.Window <= 0 {
		return fmt.Errorf("stats.window must be positive, got %s", c.Stats.Window)
	}
	if c.SeedFile != "" {
		if _, err := os.Stat(c.SeedFile); err != nil {
			return fmt.Errorf("seed file %s: %w", c.SeedFile, err)
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the SIMPLEDB_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("SIMPLEDB_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("SIMPLEDB_REPL_PROMPT"); v != "" {
		cfg.REPL.Prompt = v
	}
	if v := os.Getenv("SIMPLEDB_STATS_ENABLED"); v != "" {
		cfg.Stats.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("SIMPLEDB_STATS_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Stats.Window = d
		}
	}
	if v := os.Getenv("SIMPLEDB_SEED_FILE"); v != "" {
		cfg.SeedFile = v
	}
}
