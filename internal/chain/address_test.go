package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

const (
	mainnetAddr  = "SP000000000000000000002Q6VF78"
	deployerAddr = "SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4"
	testnetAddr  = "ST1F7QA2MDF17S807EPA36TSS8AMEFY4KA9TVGWXT"
)

func TestValidateAddress(t *testing.T) {
	t.Run("accepts valid addresses", func(t *testing.T) {
		for _, addr := range []string{mainnetAddr, deployerAddr, testnetAddr} {
			assert.NoError(t, ValidateAddress(addr), addr)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		require.ErrorIs(t, ValidateAddress(""), kiterr.ErrInvalidAddress)
	})

	t.Run("rejects bad shapes", func(t *testing.T) {
		for _, addr := range []string{"0x1234", "SPabc", "SQ000000000000000000002Q6VF78"} {
			assert.Error(t, ValidateAddress(addr), addr)
		}
	})

	t.Run("rejects corrupted checksum", func(t *testing.T) {
		assert.Error(t, ValidateAddress("SP000000000000000000002Q6VF79"))
	})
}

func TestValidateAddressForNetwork(t *testing.T) {
	assert.NoError(t, ValidateAddressForNetwork(mainnetAddr, Mainnet))
	assert.NoError(t, ValidateAddressForNetwork(deployerAddr, Mainnet))
	assert.NoError(t, ValidateAddressForNetwork(testnetAddr, Testnet))

	assert.Error(t, ValidateAddressForNetwork(mainnetAddr, Testnet))
	assert.Error(t, ValidateAddressForNetwork(testnetAddr, Mainnet))
}

func TestParseContractID(t *testing.T) {
	t.Run("parses valid identifier", func(t *testing.T) {
		id, err := ParseContractID(deployerAddr + ".sbtc-token")
		require.NoError(t, err)
		assert.Equal(t, deployerAddr, id.Address)
		assert.Equal(t, "sbtc-token", id.Name)
		assert.Equal(t, deployerAddr+".sbtc-token", id.String())
	})

	t.Run("rejects missing name", func(t *testing.T) {
		for _, contract := range []string{deployerAddr, deployerAddr + ".", "a.b.c"} {
			_, err := ParseContractID(contract)
			assert.Error(t, err, contract)
		}
	})

	t.Run("rejects invalid contract name", func(t *testing.T) {
		_, err := ParseContractID(deployerAddr + ".9bad")
		require.Error(t, err)
	})

	t.Run("rejects invalid address part", func(t *testing.T) {
		_, err := ParseContractID("notanaddress.sbtc-token")
		require.Error(t, err)
	})
}
