// Package config loads the xlref command configuration from YAML or TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the command line tool.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config is the top-level configuration.
type Config struct {
	Log          LogConfig `yaml:"log" toml:"log"`
	DefaultSheet string    `yaml:"default_sheet" toml:"default_sheet"` // sheet for references without a sheet name
	Output       string    `yaml:"output" toml:"output"`               // text, yaml
}

// LogConfig configures logging.
type LogConfig struct {
	Level       string `yaml:"level" toml:"level"`             // debug, info, warn, error
	Development bool   `yaml:"development" toml:"development"` // console encoder instead of JSON
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "warn"},
		Output: OutputText,
	}
}

// Load reads configuration from a YAML file, or TOML when the path ends in
// ".toml". A missing file yields the defaults. XLREF_LOG_LEVEL and
// XLREF_DEFAULT_SHEET override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := unmarshal(path, data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, cfg.Validate()
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("XLREF_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("XLREF_DEFAULT_SHEET"); v != "" {
		c.DefaultSheet = v
	}
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Log.Level)
	}
	switch c.Output {
	case OutputText, OutputYAML:
	default:
		return fmt.Errorf("invalid output format: %s (valid: %s, %s)", c.Output, OutputText, OutputYAML)
	}
	return nil
}
