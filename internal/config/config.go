// Package config loads and validates the declscope configuration.
package config

import (
	"fmt"
	"os"
)

// Config is the complete declscope configuration. It can be loaded from
// .declscope.yml with environment variable overrides (DECLSCOPE_ prefix).
type Config struct {
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SourceConfig defines where the TypeScript tree lives and what to skip.
type SourceConfig struct {
	Root   string   `yaml:"root" mapstructure:"root"`     // source root directory
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// SearchConfig tunes query behavior.
type SearchConfig struct {
	FuzzyLimit int `yaml:"fuzzy_limit" mapstructure:"fuzzy_limit"` // default fuzzy result cap
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // zerolog level name
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Root: "src",
			Ignore: []string{
				"node_modules/**",
				"dist/**",
				"build/**",
				"coverage/**",
			},
		},
		Search: SearchConfig{
			FuzzyLimit: 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration before an engine is constructed. A
// missing source root is a configuration error and is surfaced here, not
// deferred to the engine.
func (c *Config) Validate() error {
	if c.Source.Root == "" {
		return fmt.Errorf("source.root must be set")
	}
	info, err := os.Stat(c.Source.Root)
	if err != nil {
		return fmt.Errorf("source.root %q: %w", c.Source.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source.root %q is not a directory", c.Source.Root)
	}
	if c.Search.FuzzyLimit <= 0 {
		return fmt.Errorf("search.fuzzy_limit must be positive, got %d", c.Search.FuzzyLimit)
	}
	return nil
}
