package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvHome           = "STACKSKIT_HOME"
	EnvNetwork        = "STACKSKIT_NETWORK"
	EnvMainnetAPI     = "STACKSKIT_MAINNET_API"
	EnvTestnetAPI     = "STACKSKIT_TESTNET_API"
	EnvOutputFormat   = "STACKSKIT_OUTPUT_FORMAT"
	EnvVerbose        = "STACKSKIT_VERBOSE"
	EnvLogLevel       = "STACKSKIT_LOG_LEVEL"
	EnvPollIntervalMs = "STACKSKIT_POLL_INTERVAL_MS"
	EnvNoColor        = "NO_COLOR"
)

// LoadDotEnv loads a .env file from the working directory if present.
// Existing environment variables win over file entries.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnvironment applies environment variable overrides to the
// configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvNetwork); v != "" {
		cfg.Network.Default = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvMainnetAPI); v != "" {
		cfg.API.MainnetURL = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvTestnetAPI); v != "" {
		cfg.API.TestnetURL = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvPollIntervalMs); v != "" {
		if interval, err := strconv.Atoi(v); err == nil && interval >= minPollIntervalMs {
			cfg.Polling.IntervalMs = interval
		}
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
