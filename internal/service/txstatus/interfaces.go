package txstatus

import (
	"context"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/hiro"
)

// StatusFetcher fetches the current status of one transaction.
type StatusFetcher interface {
	GetTransaction(ctx context.Context, network chain.Network, txID string) (*hiro.Transaction, error)
}

// NetworkSource yields the currently selected network. Each fetch
// re-reads it, so a network switch takes effect on the next tick.
type NetworkSource interface {
	Network() chain.Network
}

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}
