package provider

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

func TestStoredAddresses_Primary(t *testing.T) {
	t.Parallel()

	addrs := &StoredAddresses{
		STX: []AddressEntry{{Address: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"}},
		BTC: []AddressEntry{{Address: "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"}},
	}

	assert.Equal(t, "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", addrs.PrimarySTX())
	assert.Equal(t, "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh", addrs.PrimaryBTC())
}

func TestStoredAddresses_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, (&StoredAddresses{}).PrimarySTX())
	assert.Empty(t, (&StoredAddresses{}).PrimaryBTC())

	var nilAddrs *StoredAddresses
	assert.Empty(t, nilAddrs.PrimarySTX())
	assert.Empty(t, nilAddrs.PrimaryBTC())
}

func TestParseTxResult(t *testing.T) {
	t.Parallel()

	result, err := ParseTxResult(json.RawMessage(`{"txId":"0xabc123"}`))
	require.NoError(t, err)
	assert.Equal(t, "0xabc123", result.TxID)
}

func TestParseTxResult_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing txId", raw: `{}`},
		{name: "empty txId", raw: `{"txId":""}`},
		{name: "not json", raw: `broadcast ok`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTxResult(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, kiterr.ErrInvalidResponse)
		})
	}
}

func TestUnavailable(t *testing.T) {
	t.Parallel()

	bridge := NewUnavailable()

	_, err := bridge.Request(context.Background(), MethodGetAddresses, nil)
	assert.ErrorIs(t, err, kiterr.ErrWalletUnavailable)

	assert.NoError(t, bridge.Disconnect(context.Background()))

	addrs, err := bridge.StoredAddresses(context.Background())
	require.NoError(t, err)
	assert.Nil(t, addrs)
}
