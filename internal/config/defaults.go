package config

import (
	"github.com/stackskit/stackskit/internal/chain"
)

// minPollIntervalMs is the lowest polling cadence the config accepts.
// Anything faster hammers the public API for no benefit: Stacks
// blocks arrive far slower than this.
const minPollIntervalMs = 500

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.stackskit",
		Network: NetworkConfig{
			Default: string(chain.DefaultNetwork),
		},
		API: APIConfig{
			MainnetURL:     chain.MainnetAPIURL,
			TestnetURL:     chain.TestnetAPIURL,
			TimeoutSeconds: 10,
			RateLimit:      5,
			RateBurst:      10,
		},
		Polling: PollingConfig{
			IntervalMs: 3000,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.stackskit/stackskit.log",
		},
	}
}
