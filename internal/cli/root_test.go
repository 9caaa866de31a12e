package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/config"
	"github.com/stackskit/stackskit/internal/service/balance"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// setupTestGlobals points the CLI globals at a temp home for one test.
func setupTestGlobals(t *testing.T) {
	t.Helper()
	cfg = config.Defaults()
	cfg.Home = t.TempDir()
	logger = config.NullLogger()
	t.Cleanup(func() {
		cfg = nil
		logger = nil
		networkFlag = ""
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	//nolint:err113 // Test error, not wrapped
	assert.Equal(t, kiterr.ExitGeneral, ExitCode(errors.New("boom")))
	assert.Equal(t, kiterr.ExitCode(kiterr.ErrInvalidAddress), ExitCode(kiterr.ErrInvalidAddress))
}

func TestResolveNetwork_Flag(t *testing.T) {
	setupTestGlobals(t)

	networkFlag = "testnet"
	network, err := resolveNetwork()
	require.NoError(t, err)
	assert.Equal(t, chain.Testnet, network)
}

func TestResolveNetwork_InvalidFlag(t *testing.T) {
	setupTestGlobals(t)

	networkFlag = "bogus"
	_, err := resolveNetwork()
	require.ErrorIs(t, err, kiterr.ErrUnknownNetwork)
}

func TestResolveNetwork_Persisted(t *testing.T) {
	setupTestGlobals(t)

	require.NoError(t, preferenceStore().SaveNetwork(chain.Testnet))

	network, err := resolveNetwork()
	require.NoError(t, err)
	assert.Equal(t, chain.Testnet, network)
}

func TestResolveNetwork_ConfigDefault(t *testing.T) {
	setupTestGlobals(t)

	cfg.Network.Default = "testnet"
	network, err := resolveNetwork()
	require.NoError(t, err)
	assert.Equal(t, chain.Testnet, network)
}

func TestBalanceResponse_NilRaw(t *testing.T) {
	t.Parallel()

	resp := balanceResponse(balance.Record{Address: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"}, "STX", "mainnet")
	assert.Equal(t, "0", resp.Raw)
	assert.Equal(t, "STX", resp.Asset)
	assert.Equal(t, "mainnet", resp.Network)
}
