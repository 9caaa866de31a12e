// Package session owns wallet connectivity state: the connected
// address pair, the selected network, and the last connect error. It
// is the single mutable resource every other component consults; only
// the Manager mutates it.
package session

import (
	"github.com/stackskit/stackskit/internal/chain"
)

// Status is the connection lifecycle state.
type Status string

// Session statuses.
const (
	// StatusDisconnected means no wallet session exists.
	StatusDisconnected Status = "disconnected"

	// StatusConnecting means a connect attempt is in flight.
	StatusConnecting Status = "connecting"

	// StatusConnected means a wallet disclosed a Stacks address.
	StatusConnected Status = "connected"
)

// State is a point-in-time snapshot of the session.
type State struct {
	// Connected is true once a Stacks address is held.
	Connected bool

	// Connecting is true only while a connect attempt is in flight.
	Connecting bool

	// Address is the primary Stacks address. Non-empty iff Connected.
	Address string

	// BTCAddress is the companion Bitcoin address, if the wallet
	// disclosed one. May be empty even when connected.
	BTCAddress string

	// Network is the selected network. Survives disconnect.
	Network chain.Network

	// Err is the last connect failure. Cleared on a successful
	// connect and on disconnect.
	Err error
}

// Status derives the lifecycle state from the snapshot flags.
func (s State) Status() Status {
	switch {
	case s.Connecting:
		return StatusConnecting
	case s.Connected:
		return StatusConnected
	default:
		return StatusDisconnected
	}
}
