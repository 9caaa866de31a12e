package clarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

func TestDecodeAddress(t *testing.T) {
	t.Run("burn address decodes to zero hash", func(t *testing.T) {
		version, hash, err := DecodeAddress("SP000000000000000000002Q6VF78")
		require.NoError(t, err)
		assert.Equal(t, VersionMainnetP2PKH, version)
		assert.Equal(t, make([]byte, 20), hash)
	})

	t.Run("accepts real mainnet contract deployer", func(t *testing.T) {
		version, _, err := DecodeAddress("SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4")
		require.NoError(t, err)
		assert.Equal(t, VersionMainnetP2SH, version)
	})

	t.Run("accepts real testnet address", func(t *testing.T) {
		version, _, err := DecodeAddress("ST1F7QA2MDF17S807EPA36TSS8AMEFY4KA9TVGWXT")
		require.NoError(t, err)
		assert.Equal(t, VersionTestnetP2PKH, version)
	})

	t.Run("rejects corrupted checksum", func(t *testing.T) {
		// Last character flipped.
		_, _, err := DecodeAddress("SP000000000000000000002Q6VF79")
		require.Error(t, err)
	})

	t.Run("rejects shortened zero run", func(t *testing.T) {
		// Same numeric value as the burn address but with the leading
		// zero digits stripped; must not be accepted as an alias.
		_, _, err := DecodeAddress("SP2Q6VF78")
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, addr := range []string{"", "S", "XP000000000000000000002Q6VF78", "SPhello!"} {
			_, _, err := DecodeAddress(addr)
			assert.Error(t, err, addr)
		}
	})
}

func TestEncodeAddressRoundTrip(t *testing.T) {
	addresses := []string{
		"SP000000000000000000002Q6VF78",
		"SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4",
		"ST1F7QA2MDF17S807EPA36TSS8AMEFY4KA9TVGWXT",
	}

	for _, addr := range addresses {
		t.Run(addr, func(t *testing.T) {
			version, hash, err := DecodeAddress(addr)
			require.NoError(t, err)

			encoded, err := EncodeAddress(version, hash)
			require.NoError(t, err)
			assert.Equal(t, addr, encoded)
		})
	}
}

func TestEncodeAddressRejectsBadInput(t *testing.T) {
	t.Run("oversized version", func(t *testing.T) {
		_, err := EncodeAddress(32, make([]byte, 20))
		require.ErrorIs(t, err, kiterr.ErrInvalidAddress)
	})

	t.Run("wrong hash length", func(t *testing.T) {
		_, err := EncodeAddress(VersionMainnetP2PKH, make([]byte, 19))
		require.ErrorIs(t, err, kiterr.ErrInvalidAddress)
	})
}

func TestC32EncodeLeadingZeros(t *testing.T) {
	assert.Equal(t, "01", c32Encode([]byte{0x00, 0x01}))
	assert.Equal(t, "0000", c32Encode([]byte{0x00, 0x00, 0x00, 0x00}))
	assert.Equal(t, "1", c32Encode([]byte{0x01}))
}

func TestC32Normalize(t *testing.T) {
	assert.Equal(t, "0011", c32Normalize("OolI"))
}

func TestVersionPredicates(t *testing.T) {
	assert.True(t, IsMainnetVersion(VersionMainnetP2PKH))
	assert.True(t, IsMainnetVersion(VersionMainnetP2SH))
	assert.False(t, IsMainnetVersion(VersionTestnetP2PKH))

	assert.True(t, IsTestnetVersion(VersionTestnetP2PKH))
	assert.True(t, IsTestnetVersion(VersionTestnetP2SH))
	assert.False(t, IsTestnetVersion(VersionMainnetP2SH))
}
