package balance

import (
	"context"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/clarity"
)

// sbtcBalanceFunction is the read-only accessor on the sBTC token
// contract.
const sbtcBalanceFunction = "get-balance"

// SBTCFetcher fetches the sBTC token balance for an address via a
// read-only call to the per-network sBTC contract.
type SBTCFetcher struct {
	reader  UintReader
	network NetworkSource
	tracker
}

// NewSBTCFetcher creates an sBTC balance fetcher.
func NewSBTCFetcher(reader UintReader, network NetworkSource) *SBTCFetcher {
	return &SBTCFetcher{reader: reader, network: network}
}

// Fetch performs one synchronous balance fetch. An empty address
// yields an empty record with no network call.
func (f *SBTCFetcher) Fetch(ctx context.Context, address string) (Record, error) {
	if address == "" {
		return Record{}, nil
	}
	return f.fetch(ctx, address)
}

// Refresh fetches asynchronously, superseding any refresh in flight.
func (f *SBTCFetcher) Refresh(address string) {
	f.tracker.refresh(address, f.fetch)
}

// Record returns a snapshot of the subscription state.
func (f *SBTCFetcher) Record() Record {
	return f.tracker.snapshot()
}

// Done returns a channel closed when the current refresh settles.
func (f *SBTCFetcher) Done() <-chan struct{} {
	return f.tracker.doneCh()
}

// Reset cancels any in-flight refresh and clears the record.
func (f *SBTCFetcher) Reset() {
	f.tracker.reset()
}

func (f *SBTCFetcher) fetch(ctx context.Context, address string) (Record, error) {
	principal, err := clarity.NewPrincipal(address)
	if err != nil {
		return Record{}, err
	}

	network := f.network.Network()
	raw, err := f.reader.ReadUint(ctx, network, network.SBTCContract(), sbtcBalanceFunction, []clarity.Value{principal})
	if err != nil {
		return Record{}, err
	}

	return Record{
		Address:   address,
		Raw:       raw,
		Decimals:  chain.SBTCDecimals,
		Formatted: chain.FormatSBTC(raw),
	}, nil
}
