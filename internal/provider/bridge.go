// Package provider defines the wallet bridge interface through which
// address disclosure, contract calls and transfers are requested from
// an external Stacks wallet. The bridge is a collaborator: this module
// never implements wallet communication itself.
package provider

import (
	"context"
	"encoding/json"
	"fmt"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// Bridge request methods understood by Stacks wallets.
const (
	// MethodGetAddresses asks the wallet to disclose its addresses.
	MethodGetAddresses = "getAddresses"

	// MethodCallContract asks the wallet to sign and broadcast a
	// contract call.
	MethodCallContract = "stx_callContract"

	// MethodTransferSTX asks the wallet to sign and broadcast an STX
	// transfer.
	MethodTransferSTX = "stx_transferStx"
)

// Bridge is the wallet provider boundary. Implementations route
// requests to a wallet (extension, remote signer, test double) and
// keep their own persisted session storage.
type Bridge interface {
	// Request performs a wallet request and returns the raw response.
	Request(ctx context.Context, method string, params any) (json.RawMessage, error)

	// Disconnect tears down the wallet session. Errors are advisory;
	// callers clear their own state regardless.
	Disconnect(ctx context.Context) error

	// StoredAddresses reads the bridge's persisted address set from a
	// prior session. A nil result with a nil error means no prior
	// session exists.
	StoredAddresses(ctx context.Context) (*StoredAddresses, error)
}

// AddressEntry is one disclosed address.
type AddressEntry struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey,omitempty"`
}

// StoredAddresses is the address set a bridge persists after a
// successful connect.
type StoredAddresses struct {
	STX []AddressEntry `json:"stx"`
	BTC []AddressEntry `json:"btc"`
}

// PrimarySTX returns the first disclosed Stacks address, or "".
func (s *StoredAddresses) PrimarySTX() string {
	if s == nil || len(s.STX) == 0 {
		return ""
	}
	return s.STX[0].Address
}

// PrimaryBTC returns the first disclosed Bitcoin address, or "".
func (s *StoredAddresses) PrimaryBTC() string {
	if s == nil || len(s.BTC) == 0 {
		return ""
	}
	return s.BTC[0].Address
}

// CallContractParams are the parameters for MethodCallContract.
type CallContractParams struct {
	Contract     string   `json:"contract"`
	FunctionName string   `json:"functionName"`
	FunctionArgs []string `json:"functionArgs"`
}

// TransferSTXParams are the parameters for MethodTransferSTX. Amount
// is micro-STX as a decimal string.
type TransferSTXParams struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Memo      string `json:"memo,omitempty"`
}

// TxResult is the wallet's response to a broadcast request.
type TxResult struct {
	TxID string `json:"txId"`
}

// ParseTxResult validates a raw bridge response as a transaction
// result. A missing or empty txId is a malformed response.
func ParseTxResult(raw json.RawMessage) (*TxResult, error) {
	var result TxResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding transaction response: %w", kiterr.ErrInvalidResponse, err)
	}
	if result.TxID == "" {
		return nil, fmt.Errorf("%w: transaction response missing txId", kiterr.ErrInvalidResponse)
	}
	return &result, nil
}
