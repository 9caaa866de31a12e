// Package txstatus tracks a transaction's lifecycle from broadcast to
// finality by polling the Hiro API until a terminal status arrives.
package txstatus

import (
	"github.com/stackskit/stackskit/internal/chain"
)

// Record is the observable state of one status subscription.
type Record struct {
	// TxID is the watched transaction, or "" when idle.
	TxID string

	// Status is the last committed status. StatusUnknown until the
	// first fetch lands.
	Status chain.TxStatus

	// BlockHeight is set only when the API reports one, typically on
	// confirmation.
	BlockHeight *int64

	// Err is the last fetch failure. Cleared by the next successful
	// fetch. Timeouts and superseded fetches never set it.
	Err error

	// Loading is true only until the first fetch of a subscription
	// reaches an outcome.
	Loading bool
}

// IsConfirmed reports whether the transaction succeeded.
func (r Record) IsConfirmed() bool {
	return r.Status.IsConfirmed()
}

// IsFailed reports whether the transaction was aborted or dropped.
func (r Record) IsFailed() bool {
	return r.Status.IsFailed()
}

// IsPending reports whether the transaction is still in the mempool.
func (r Record) IsPending() bool {
	return r.Status.IsPending()
}
