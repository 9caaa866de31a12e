package contract

import (
	"context"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/hiro"
)

// ReadClient executes read-only contract calls against the Hiro API.
type ReadClient interface {
	CallReadOnly(ctx context.Context, network chain.Network, contract chain.ContractID, function string, args []string) (*hiro.ReadOnlyResult, error)
}
