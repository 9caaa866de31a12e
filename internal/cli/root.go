// Package cli implements the stackskit command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/config"
	"github.com/stackskit/stackskit/internal/hiro"
	"github.com/stackskit/stackskit/internal/output"
	"github.com/stackskit/stackskit/internal/session"
	"github.com/stackskit/stackskit/internal/version"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

var (
	// Global flags
	homeDir      string
	networkFlag  string
	outputFormat string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stackskit",
	Short: "A Stacks wallet integration toolkit",
	Long: `Stackskit is a command-line toolkit for Stacks wallet integrations.

It manages a wallet session (connect, disconnect, recover), checks STX and
sBTC balances, watches transaction status, performs read-only contract calls,
and requests contract calls and STX transfers through a wallet bridge.

Example:
  stackskit balance stx SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7
  stackskit tx status 0x1234... --watch
  stackskit contract read SP000....pox get-pox-info`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initGlobals()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if formatter != nil {
			_ = output.FormatError(os.Stderr, err, formatter.Format())
		} else {
			_ = output.FormatError(os.Stderr, err, output.FormatText)
		}
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return kiterr.ExitCode(err)
}

// initGlobals initializes global configuration, logger, and formatter.
func initGlobals() error {
	config.LoadDotEnv()

	// Determine home directory
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	// Load or create config
	configPath := config.Path(home)
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		// Use defaults if config doesn't exist
		cfg = config.Defaults()
		cfg.Home = home
	}

	// Apply environment variable overrides
	config.ApplyEnvironment(cfg)

	// Override with command-line flags
	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != "auto" {
		cfg.Output.DefaultFormat = outputFormat
	}

	// Initialize logger
	logLevel := config.ParseLogLevel(cfg.Logging.Level)
	logger, err = config.NewLogger(logLevel, cfg.Logging.File)
	if err != nil {
		// Use null logger if we can't create the file
		logger = config.NullLogger()
	}

	// Initialize formatter
	explicitFormat := output.ParseFormat(cfg.Output.DefaultFormat)
	detectedFormat := output.DetectFormat(os.Stdout, explicitFormat)
	formatter = output.NewFormatter(detectedFormat, os.Stdout)

	return nil
}

// cleanup releases resources.
func cleanup() {
	if logger != nil {
		_ = logger.Close()
	}
}

// Config returns the global configuration.
func Config() *config.Config {
	return cfg
}

// Logger returns the global logger.
func Logger() *config.Logger {
	return logger
}

// Formatter returns the global output formatter.
func Formatter() *output.Formatter {
	return formatter
}

// preferenceStore returns the persisted network preference store.
func preferenceStore() *session.FileStore {
	return session.NewFileStore(config.PreferencesPath(cfg.GetHome()))
}

// resolveNetwork determines the active network: --network flag first, then
// the persisted preference, then the configured default.
func resolveNetwork() (chain.Network, error) {
	if networkFlag != "" {
		return chain.ParseNetwork(networkFlag)
	}

	prefsPath := config.PreferencesPath(cfg.GetHome())
	if _, err := os.Stat(prefsPath); err == nil {
		return preferenceStore().LoadNetwork()
	}

	if cfg.Network.Default != "" {
		return chain.ParseNetwork(cfg.Network.Default)
	}
	return chain.DefaultNetwork, nil
}

// staticNetwork adapts a fixed network to the services' network source interfaces.
type staticNetwork chain.Network

func (n staticNetwork) Network() chain.Network {
	return chain.Network(n)
}

// newHiroClient builds a Hiro API client from the active configuration.
func newHiroClient() *hiro.Client {
	return hiro.NewClient(&hiro.ClientOptions{
		MainnetURL:  cfg.API.MainnetURL,
		TestnetURL:  cfg.API.TestnetURL,
		Timeout:     cfg.APITimeout(),
		RateLimiter: chain.NewRateLimiter(cfg.API.RateLimit, cfg.API.RateBurst),
		UserAgent:   version.UserAgent(),
	})
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "stackskit data directory (default: ~/.stackskit)")
	rootCmd.PersistentFlags().StringVarP(&networkFlag, "network", "n", "", "network: mainnet, testnet (default: persisted preference)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
