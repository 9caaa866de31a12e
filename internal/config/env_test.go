package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvHome, "/tmp/kit-home")
	t.Setenv(EnvNetwork, "Testnet")
	t.Setenv(EnvMainnetAPI, " https://hiro.example ")
	t.Setenv(EnvOutputFormat, "JSON")
	t.Setenv(EnvVerbose, "yes")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvPollIntervalMs, "6000")

	cfg := Defaults()
	ApplyEnvironment(cfg)

	assert.Equal(t, "/tmp/kit-home", cfg.Home)
	assert.Equal(t, "testnet", cfg.Network.Default)
	assert.Equal(t, "https://hiro.example", cfg.API.MainnetURL)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 6000, cfg.Polling.IntervalMs)
}

func TestApplyEnvironment_NoColor(t *testing.T) {
	t.Setenv(EnvNoColor, "")

	cfg := Defaults()
	ApplyEnvironment(cfg)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestApplyEnvironment_RejectsTooFastInterval(t *testing.T) {
	t.Setenv(EnvPollIntervalMs, "50")

	cfg := Defaults()
	ApplyEnvironment(cfg)
	assert.Equal(t, 3000, cfg.Polling.IntervalMs)
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	assert.True(t, parseBool("1"))
	assert.True(t, parseBool("true"))
	assert.True(t, parseBool("YES"))
	assert.True(t, parseBool("on"))
	assert.False(t, parseBool("0"))
	assert.False(t, parseBool("nope"))
	assert.False(t, parseBool(""))
}
