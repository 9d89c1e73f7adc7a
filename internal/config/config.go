// Package config holds tool-wide defaults, optionally overlaid from a
// YAML file. Command-line flags always win over config values.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the tunable defaults for the subcommands.
type Config struct {
	// split: chunk size in minutes
	ChunkMinutes int `yaml:"chunk_minutes"`
	// compress: fuse cues whose gap is at most this many milliseconds
	GapMs int `yaml:"gap_ms"`
	// compress: character budget per fused cue
	MaxChars int `yaml:"max_chars"`
	// clean: how many report items to print
	ShowLimit int `yaml:"show_limit"`
	// merge: glob pattern for part files
	Pattern string `yaml:"pattern"`
}

// Default returns the compiled-in defaults.
func Default() *Config {
	return &Config{
		ChunkMinutes: 10,
		GapMs:        500,
		MaxChars:     130,
		ShowLimit:    50,
		Pattern:      "*.vtt",
	}
}

// Load reads a YAML file over the defaults: fields present in the file
// override, missing fields keep their default. An empty path means
// defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize falls back to the defaults for zero, negative or blank
// values.
func (c *Config) normalize() {
	def := Default()
	if c.ChunkMinutes <= 0 {
		c.ChunkMinutes = def.ChunkMinutes
	}
	if c.GapMs <= 0 {
		c.GapMs = def.GapMs
	}
	if c.MaxChars <= 0 {
		c.MaxChars = def.MaxChars
	}
	if c.ShowLimit <= 0 {
		c.ShowLimit = def.ShowLimit
	}
	if strings.TrimSpace(c.Pattern) == "" {
		c.Pattern = def.Pattern
	}
}
