package balance

import (
	"context"
	"math/big"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/clarity"
	"github.com/stackskit/stackskit/internal/hiro"
)

// AccountClient fetches account balances from the Hiro API.
type AccountClient interface {
	GetAccountBalances(ctx context.Context, network chain.Network, address string) (*hiro.AccountBalances, error)
}

// UintReader performs read-only contract calls with numeric results.
// The contract Reader satisfies it.
type UintReader interface {
	ReadUint(ctx context.Context, network chain.Network, contract, function string, args []clarity.Value) (*big.Int, error)
}

// NetworkSource yields the currently selected network. Each refresh
// re-reads it, so a network switch takes effect on the next fetch.
type NetworkSource interface {
	Network() chain.Network
}
