package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetwork(t *testing.T) {
	t.Run("parses known networks", func(t *testing.T) {
		for _, s := range []string{"mainnet", "MAINNET", " testnet "} {
			n, err := ParseNetwork(s)
			require.NoError(t, err, s)
			assert.True(t, n.IsValid())
		}
	})

	t.Run("rejects unknown network", func(t *testing.T) {
		_, err := ParseNetwork("devnet")
		require.Error(t, err)
	})
}

func TestNetworkAPIURL(t *testing.T) {
	assert.Equal(t, MainnetAPIURL, Mainnet.APIURL())
	assert.Equal(t, TestnetAPIURL, Testnet.APIURL())
}

func TestNetworkSBTCContract(t *testing.T) {
	assert.Equal(t, SBTCContractMainnet, Mainnet.SBTCContract())
	assert.Equal(t, SBTCContractTestnet, Testnet.SBTCContract())
}
