// Package config loads the generator's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrykeightley/wordcrossing-generator/internal/generator"
	"github.com/harrykeightley/wordcrossing-generator/internal/logger"
)

// OutputConfig controls the file artifacts written per level.
type OutputConfig struct {
	// Dir receives one artifact per level. Empty disables file output.
	Dir string `yaml:"dir"`

	// Format is "json" or "yaml".
	Format string `yaml:"format"`

	// StartDate names the first level; subsequent levels advance one day.
	// Format: 2006-01-02.
	StartDate string `yaml:"start_date"`

	// Count is the number of levels to produce.
	Count int `yaml:"count"`
}

// StoreConfig selects the database backend, if any.
type StoreConfig struct {
	// Backend is "none", "sqlite" or "postgres".
	Backend string `yaml:"backend"`

	// Path is the sqlite database file.
	Path string `yaml:"path"`

	// DSN is the postgres connection string.
	DSN string `yaml:"dsn"`
}

// PreviewConfig controls the playtest preview service.
type PreviewConfig struct {
	// Addr is the listen address. Empty disables the service.
	Addr string `yaml:"addr"`

	// AllowedOrigins lists origins accepted for WebSocket upgrades.
	// "*" allows all; empty enforces same-origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Config is the full configuration for a generation run.
type Config struct {
	Generator generator.Config `yaml:"generator"`
	Wordlist  string           `yaml:"wordlist"`
	Output    OutputConfig     `yaml:"output"`
	Store     StoreConfig      `yaml:"store"`
	Preview   PreviewConfig    `yaml:"preview"`
	Logging   logger.Config    `yaml:"logging"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Generator: generator.DefaultConfig(),
		Wordlist:  "assets/words.txt",
		Output: OutputConfig{
			Dir:       "assets/output",
			Format:    "json",
			StartDate: time.Now().Format("2006-01-02"),
			Count:     1,
		},
		Store:   StoreConfig{Backend: "none", Path: "data/levels.db"},
		Logging: logger.DefaultConfig(),
	}
}

// Load reads a YAML config file over the defaults. A missing file yields
// the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// Validate reports fatal misconfiguration.
func (c *Config) Validate() error {
	if err := c.Generator.Validate(); err != nil {
		return err
	}
	if c.Wordlist == "" {
		return fmt.Errorf("wordlist path is required")
	}
	if c.Output.Count < 0 {
		return fmt.Errorf("output count must not be negative, got %d", c.Output.Count)
	}
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if _, err := time.Parse("2006-01-02", c.Output.StartDate); err != nil {
		return fmt.Errorf("invalid start date %q: %w", c.Output.StartDate, err)
	}
	switch c.Store.Backend {
	case "none", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
