// Package config provides configuration management for stackskit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version int           `yaml:"version"`
	Home    string        `yaml:"home"`
	Network NetworkConfig `yaml:"network"`
	API     APIConfig     `yaml:"api"`
	Polling PollingConfig `yaml:"polling"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// NetworkConfig defines network selection settings.
type NetworkConfig struct {
	// Default is the network used when no preference was persisted.
	Default string `yaml:"default"`
}

// APIConfig defines Hiro API settings.
type APIConfig struct {
	MainnetURL     string  `yaml:"mainnet_url"`
	TestnetURL     string  `yaml:"testnet_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RateLimit      float64 `yaml:"rate_limit_per_second"`
	RateBurst      int     `yaml:"rate_limit_burst"`
}

// PollingConfig defines transaction status polling settings.
type PollingConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kiterr.ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", kiterr.ErrConfigInvalid, err)
	}

	return cfg, nil
}

// LoadOrDefault reads the config file, falling back to defaults when
// the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if kiterr.Is(err, kiterr.ErrConfigNotFound) {
		return Defaults(), nil
	}
	return cfg, err
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate checks the configuration for values the rest of the
// application cannot work with.
func (c *Config) Validate() error {
	switch c.Network.Default {
	case "mainnet", "testnet":
	default:
		return fmt.Errorf("%w: unknown default network %q", kiterr.ErrConfigInvalid, c.Network.Default)
	}

	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: api timeout must be positive", kiterr.ErrConfigInvalid)
	}
	if c.Polling.IntervalMs < minPollIntervalMs {
		return fmt.Errorf("%w: polling interval below %dms", kiterr.ErrConfigInvalid, minPollIntervalMs)
	}

	return nil
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// PreferencesPath returns the network preference file path.
func PreferencesPath(home string) string {
	return filepath.Join(home, "preferences.json")
}

// GetHome returns the stackskit home directory path.
func (c *Config) GetHome() string {
	return expandHome(c.Home)
}

// APITimeout returns the per-request API timeout.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// PollInterval returns the transaction polling cadence.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Polling.IntervalMs) * time.Millisecond
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// DefaultHome returns the default stackskit home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stackskit"
	}
	return filepath.Join(home, ".stackskit")
}

// expandHome expands a leading "~/" to the user home directory.
func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
