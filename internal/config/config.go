package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "arbor.json"

	// DefaultIndent is the default pretty-print indentation.
	DefaultIndent = "  "

	// DefaultBenchWorkload is the default bench workload.
	DefaultBenchWorkload = "swap"

	// DefaultBenchListSize is the default keyed list size for benches.
	DefaultBenchListSize = 1000

	// DefaultBenchCycles is the default number of bench cycles.
	DefaultBenchCycles = 1000
)

// Config represents the complete arbor.json configuration.
type Config struct {
	// Render contains renderer defaults.
	Render RenderConfig `json:"render,omitempty"`

	// Diff contains differ defaults.
	Diff DiffConfig `json:"diff,omitempty"`

	// Bench contains bench runner defaults.
	Bench BenchConfig `json:"bench,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains renderer defaults.
type RenderConfig struct {
	// Pretty enables pretty-printed output.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the indentation string in pretty mode.
	Indent string `json:"indent,omitempty"`

	// Minify enables minified output.
	Minify bool `json:"minify,omitempty"`
}

// DiffConfig contains differ defaults.
type DiffConfig struct {
	// Batch merges contiguous single-child patches into batch patches.
	Batch bool `json:"batch,omitempty"`
}

// BenchConfig contains bench runner defaults.
type BenchConfig struct {
	// Workload is the reconciliation workload to run.
	Workload string `json:"workload,omitempty"`

	// ListSize is the keyed list size.
	ListSize int `json:"listSize,omitempty"`

	// Cycles is the number of diff cycles per run.
	Cycles int `json:"cycles,omitempty"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Render: RenderConfig{Indent: DefaultIndent},
		Bench: BenchConfig{
			Workload: DefaultBenchWorkload,
			ListSize: DefaultBenchListSize,
			Cycles:   DefaultBenchCycles,
		},
	}
}

// Load reads arbor.json from the given directory. A missing file is not an
// error; defaults are returned.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.configPath = path
	return cfg, nil
}

// Save writes the configuration to arbor.json in the given directory.
func (c *Config) Save(dir string) error {
	path := filepath.Join(dir, ConfigFileName)
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path returns where the config was loaded from or saved to, if anywhere.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills zero values that have non-zero defaults.
func (c *Config) applyDefaults() {
	if c.Render.Indent == "" {
		c.Render.Indent = DefaultIndent
	}
	if c.Bench.Workload == "" {
		c.Bench.Workload = DefaultBenchWorkload
	}
	if c.Bench.ListSize == 0 {
		c.Bench.ListSize = DefaultBenchListSize
	}
	if c.Bench.Cycles == 0 {
		c.Bench.Cycles = DefaultBenchCycles
	}
}
