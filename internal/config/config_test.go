package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Generator.Rows != 8 || cfg.Generator.Cols != 8 {
		t.Errorf("default grid = %dx%d, want 8x8", cfg.Generator.Rows, cfg.Generator.Cols)
	}
	if cfg.Generator.MinAvgWordLen != 4.0 {
		t.Errorf("default min avg word length = %g, want 4.0", cfg.Generator.MinAvgWordLen)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("default output format = %q, want json", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() of missing file failed: %v", err)
	}
	if cfg.Generator.Rows != 8 {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelgen.yaml")
	content := `
generator:
  rows: 10
  cols: 12
  min_avg_word_len: 5.5
  seed: 99
wordlist: words/common.txt
output:
  dir: out
  format: yaml
  start_date: "2026-01-01"
  count: 30
store:
  backend: sqlite
  path: data/daily.db
preview:
  addr: ":9090"
  allowed_origins: ["*"]
logging:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Generator.Rows != 10 || cfg.Generator.Cols != 12 {
		t.Errorf("grid = %dx%d, want 10x12", cfg.Generator.Rows, cfg.Generator.Cols)
	}
	if cfg.Generator.MinAvgWordLen != 5.5 {
		t.Errorf("min avg word length = %g, want 5.5", cfg.Generator.MinAvgWordLen)
	}
	if cfg.Generator.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Generator.Seed)
	}
	// Values absent from the file keep their defaults.
	if cfg.Generator.WallRatioMin != 0.15 || cfg.Generator.WallRatioMax != 0.50 {
		t.Errorf("wall ratios = [%g, %g], want defaults", cfg.Generator.WallRatioMin, cfg.Generator.WallRatioMax)
	}
	if cfg.Wordlist != "words/common.txt" {
		t.Errorf("wordlist = %q, want words/common.txt", cfg.Wordlist)
	}
	if cfg.Output.Format != "yaml" || cfg.Output.Count != 30 {
		t.Errorf("output = %+v, want yaml x30", cfg.Output)
	}
	if cfg.Store.Backend != "sqlite" {
		t.Errorf("store backend = %q, want sqlite", cfg.Store.Backend)
	}
	if cfg.Preview.Addr != ":9090" {
		t.Errorf("preview addr = %q, want :9090", cfg.Preview.Addr)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("log level = %q, want DEBUG", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelgen.yaml")
	if err := os.WriteFile(path, []byte("generator: [not a mapping"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad generator", func(c *Config) { c.Generator.Rows = 0 }},
		{"empty wordlist path", func(c *Config) { c.Wordlist = "" }},
		{"negative count", func(c *Config) { c.Output.Count = -1 }},
		{"unknown format", func(c *Config) { c.Output.Format = "toml" }},
		{"bad start date", func(c *Config) { c.Output.StartDate = "May 3rd" }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "oracle" }},
	}

	for _, tc := range tests {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() passed, want error", tc.name)
		}
	}
}
