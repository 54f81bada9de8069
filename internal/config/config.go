// Package config holds the plugin's configuration. The host stores it and
// hands it to the plugin read-only; the one functional knob is which
// regional storefront of the catalog to scrape.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Region is a catalog storefront code.
type Region string

// Supported storefront regions.
const (
	RegionUS Region = "us"
	RegionJP Region = "jp"
)

// Config holds all plugin configuration.
type Config struct {
	Region  Region        `yaml:"region"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	FilePath string `yaml:"file_path,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Region: RegionJP,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("CODA_REGION"); v != "" {
		c.Region = Region(v)
	}
	if v := os.Getenv("CODA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CODA_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CODA_LOG_FILE"); v != "" {
		c.Logging.FilePath = v
	}
}

func (c *Config) validate() error {
	switch c.Region {
	case RegionUS, RegionJP:
	default:
		return fmt.Errorf("unsupported region: %q", c.Region)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %q", c.Logging.Format)
	}
	return nil
}
