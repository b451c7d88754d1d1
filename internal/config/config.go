// Package config holds the file-backed defaults the jsonease CLI
// applies when flags are not given.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file the CLI looks for, walking up from the
// working directory.
const ConfigFileName = ".jsonease.yaml"

// Config represents the complete configuration for the jsonease CLI.
type Config struct {
	Tier     string       `yaml:"tier"`
	MaxDepth int          `yaml:"max_depth"`
	Format   FormatConfig `yaml:"format"`
}

// FormatConfig controls the pretty-printer knobs.
type FormatConfig struct {
	Align         int    `yaml:"align"`
	Indent        int    `yaml:"indent"`
	ItemSeparator string `yaml:"item_separator"`
	KeySeparator  string `yaml:"key_separator"`
	LineEnding    string `yaml:"line_ending"`
}

// NewConfig returns the default configuration: custom tier, 4-space
// indent, CRLF line endings.
func NewConfig() *Config {
	return &Config{
		Tier:     "custom",
		MaxDepth: 0,
		Format: FormatConfig{
			Align:         0,
			Indent:        4,
			ItemSeparator: ",\r\n",
			KeySeparator:  ": ",
			LineEnding:    "\r\n",
		},
	}
}

// LoadConfig reads and validates a yaml config file, applying
// defaults for any omitted field.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile walks up from the working directory looking for a
// config file. It returns the empty string when none exists.
func FindConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadOrDefault loads the discovered config file, or returns the
// defaults when there is none.
func LoadOrDefault() (*Config, error) {
	path := FindConfigFile()
	if path == "" {
		return NewConfig(), nil
	}
	return LoadConfig(path)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Tier {
	case "basic", "advanced", "custom":
	default:
		return fmt.Errorf("unknown tier %q (want basic, advanced or custom)", c.Tier)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative")
	}
	if c.Format.Align < 0 {
		return fmt.Errorf("format.align must not be negative")
	}
	if c.Format.Indent < 0 {
		return fmt.Errorf("format.indent must not be negative")
	}
	return nil
}
