package balance

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/hiro"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

const testAddress = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"

type fixedNetwork struct{}

func (fixedNetwork) Network() chain.Network { return chain.Mainnet }

// fakeAccountClient returns a scripted balance per address.
type fakeAccountClient struct {
	mu       sync.Mutex
	balances map[string]string
	err      error
	calls    int
	block    chan struct{} // when non-nil, fetches wait on it
}

func (f *fakeAccountClient) GetAccountBalances(ctx context.Context, _ chain.Network, address string) (*hiro.AccountBalances, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.err != nil {
		return nil, f.err
	}
	return &hiro.AccountBalances{STX: hiro.STXBalance{Balance: f.balances[address]}}, nil
}

func (f *fakeAccountClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	client := &fakeAccountClient{balances: map[string]string{testAddress: "1000000000"}}
	fetcher := NewFetcher(client, fixedNetwork{})

	record, err := fetcher.Fetch(context.Background(), testAddress)
	require.NoError(t, err)

	assert.Equal(t, testAddress, record.Address)
	assert.Zero(t, record.Raw.Cmp(big.NewInt(1000000000)))
	assert.Equal(t, chain.STXDecimals, record.Decimals)
	assert.Equal(t, "1,000.00", record.Formatted)
}

func TestFetcher_Fetch_EmptyAddress(t *testing.T) {
	t.Parallel()

	client := &fakeAccountClient{}
	fetcher := NewFetcher(client, fixedNetwork{})

	record, err := fetcher.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Record{}, record)
	assert.Zero(t, client.callCount())
}

func TestFetcher_Fetch_InvalidAddress(t *testing.T) {
	t.Parallel()

	fetcher := NewFetcher(&fakeAccountClient{}, fixedNetwork{})

	_, err := fetcher.Fetch(context.Background(), "SPNOTANADDRESS")
	require.Error(t, err)
	assert.ErrorIs(t, err, kiterr.ErrInvalidAddress)
}

func TestFetcher_Fetch_MalformedBalance(t *testing.T) {
	t.Parallel()

	client := &fakeAccountClient{balances: map[string]string{testAddress: "lots"}}
	fetcher := NewFetcher(client, fixedNetwork{})

	_, err := fetcher.Fetch(context.Background(), testAddress)
	require.Error(t, err)
	assert.ErrorIs(t, err, kiterr.ErrInvalidResponse)
}

func TestFetcher_Refresh(t *testing.T) {
	t.Parallel()

	client := &fakeAccountClient{balances: map[string]string{testAddress: "2500000"}}
	fetcher := NewFetcher(client, fixedNetwork{})

	fetcher.Refresh(testAddress)
	<-fetcher.Done()

	record := fetcher.Record()
	assert.False(t, record.Loading)
	assert.NoError(t, record.Err)
	assert.Equal(t, "2.50", record.Formatted)
}

func TestFetcher_Refresh_EmptyAddressResets(t *testing.T) {
	t.Parallel()

	client := &fakeAccountClient{balances: map[string]string{testAddress: "2500000"}}
	fetcher := NewFetcher(client, fixedNetwork{})

	fetcher.Refresh(testAddress)
	<-fetcher.Done()
	require.NotNil(t, fetcher.Record().Raw)

	fetcher.Refresh("")
	assert.Equal(t, Record{}, fetcher.Record())
}

func TestFetcher_Refresh_ErrorStored(t *testing.T) {
	t.Parallel()

	client := &fakeAccountClient{err: kiterr.ErrNetworkError}
	fetcher := NewFetcher(client, fixedNetwork{})

	fetcher.Refresh(testAddress)
	<-fetcher.Done()

	record := fetcher.Record()
	assert.ErrorIs(t, record.Err, kiterr.ErrNetworkError)
	assert.False(t, record.Loading)
	assert.Nil(t, record.Raw)
}

func TestFetcher_Refresh_Superseded(t *testing.T) {
	t.Parallel()

	const otherAddress = "SP000000000000000000002Q6VF78"

	client := &fakeAccountClient{
		balances: map[string]string{
			testAddress:  "1000000",
			otherAddress: "7000000",
		},
		block: make(chan struct{}),
	}
	fetcher := NewFetcher(client, fixedNetwork{})

	fetcher.Refresh(testAddress)
	require.Eventually(t, func() bool {
		return client.callCount() == 1
	}, time.Second, time.Millisecond)

	// Supersede while the first fetch is blocked.
	fetcher.Refresh(otherAddress)
	close(client.block)
	<-fetcher.Done()

	record := fetcher.Record()
	assert.Equal(t, otherAddress, record.Address)
	assert.Equal(t, "7.00", record.Formatted)
}

func TestFetcher_Reset(t *testing.T) {
	t.Parallel()

	client := &fakeAccountClient{balances: map[string]string{testAddress: "1000000"}}
	fetcher := NewFetcher(client, fixedNetwork{})

	fetcher.Refresh(testAddress)
	<-fetcher.Done()
	fetcher.Reset()

	assert.Equal(t, Record{}, fetcher.Record())
}
