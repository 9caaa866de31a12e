// Package balance fetches and formats fungible token balances: the
// native STX balance from the account endpoint and the sBTC balance
// from the token contract.
package balance

import (
	"math/big"
)

// Record is the observable state of one balance subscription.
type Record struct {
	// Address the balance belongs to. "" when idle.
	Address string

	// Raw is the balance in smallest units (micro-STX or satoshis).
	// Nil until a fetch commits.
	Raw *big.Int

	// Decimals is the token precision used for formatting.
	Decimals int

	// Formatted is the display string for Raw.
	Formatted string

	// Err is the last fetch failure. Timeouts and superseded fetches
	// never set it.
	Err error

	// Loading is true while a refresh is in flight.
	Loading bool
}
