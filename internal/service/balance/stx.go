package balance

import (
	"context"
	"fmt"
	"math/big"

	"github.com/stackskit/stackskit/internal/chain"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// Fetcher fetches the native STX balance for an address.
type Fetcher struct {
	client  AccountClient
	network NetworkSource
	tracker
}

// NewFetcher creates an STX balance fetcher.
func NewFetcher(client AccountClient, network NetworkSource) *Fetcher {
	return &Fetcher{client: client, network: network}
}

// Fetch performs one synchronous balance fetch. An empty address
// yields an empty record with no network call.
func (f *Fetcher) Fetch(ctx context.Context, address string) (Record, error) {
	if address == "" {
		return Record{}, nil
	}
	return f.fetch(ctx, address)
}

// Refresh fetches asynchronously, superseding any refresh in flight.
// Observe the outcome via Record and Done.
func (f *Fetcher) Refresh(address string) {
	f.tracker.refresh(address, f.fetch)
}

// Record returns a snapshot of the subscription state.
func (f *Fetcher) Record() Record {
	return f.tracker.snapshot()
}

// Done returns a channel closed when the current refresh settles.
func (f *Fetcher) Done() <-chan struct{} {
	return f.tracker.doneCh()
}

// Reset cancels any in-flight refresh and clears the record.
func (f *Fetcher) Reset() {
	f.tracker.reset()
}

func (f *Fetcher) fetch(ctx context.Context, address string) (Record, error) {
	if err := chain.ValidateAddress(address); err != nil {
		return Record{}, err
	}

	balances, err := f.client.GetAccountBalances(ctx, f.network.Network(), address)
	if err != nil {
		return Record{}, err
	}

	raw, ok := new(big.Int).SetString(balances.STX.Balance, 10)
	if !ok || raw.Sign() < 0 {
		return Record{}, fmt.Errorf("%w: malformed stx balance %q", kiterr.ErrInvalidResponse, balances.STX.Balance)
	}

	return Record{
		Address:   address,
		Raw:       raw,
		Decimals:  chain.STXDecimals,
		Formatted: chain.FormatSTX(raw),
	}, nil
}
