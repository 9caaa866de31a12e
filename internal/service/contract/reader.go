// Package contract provides one-shot contract operations: read-only
// calls through the Hiro API and state-changing calls through the
// wallet bridge.
package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/clarity"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// Reader performs read-only contract calls. Arguments are serialized
// to the Clarity wire encoding and the result is deserialized back
// into a Clarity value.
type Reader struct {
	client ReadClient
}

// NewReader creates a contract reader over the given API client.
func NewReader(client ReadClient) *Reader {
	return &Reader{client: client}
}

// Read calls a read-only contract function. contract is the
// "address.name" form. A response with okay=false becomes an error
// carrying the remote cause as its message.
func (r *Reader) Read(ctx context.Context, network chain.Network, contract, function string, args []clarity.Value) (clarity.Value, error) {
	contractID, err := chain.ParseContractID(contract)
	if err != nil {
		return nil, err
	}

	encoded, err := clarity.EncodeHexAll(args)
	if err != nil {
		return nil, err
	}

	result, err := r.client.CallReadOnly(ctx, network, contractID, function, encoded)
	if err != nil {
		return nil, err
	}

	if !result.Okay {
		cause := result.Cause
		if cause == "" {
			cause = "read-only call failed"
		}
		return nil, fmt.Errorf("%w: %s", kiterr.ErrContractCallFailed, cause)
	}

	value, err := clarity.DecodeHex(result.Result)
	if err != nil {
		return nil, fmt.Errorf("decoding %s.%s result: %w", contractID.Name, function, err)
	}

	return value, nil
}

// ReadUint calls a read-only function whose result is numeric,
// unwrapping (ok ...) and (some ...) layers around the number.
func (r *Reader) ReadUint(ctx context.Context, network chain.Network, contract, function string, args []clarity.Value) (*big.Int, error) {
	value, err := r.Read(ctx, network, contract, function, args)
	if err != nil {
		return nil, err
	}
	return clarity.UintFrom(value)
}
