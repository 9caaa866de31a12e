package contract

import (
	"context"
	"fmt"
	"sync"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/clarity"
	"github.com/stackskit/stackskit/internal/metrics"
	"github.com/stackskit/stackskit/internal/provider"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// CallState is the observable state of the most recent contract call.
type CallState struct {
	// TxID is the broadcast transaction, set on success.
	TxID string

	// Err is the failure of the last call, if any.
	Err error

	// InFlight is true while a call awaits the wallet.
	InFlight bool
}

// Caller sends state-changing contract calls through the wallet
// bridge. Unlike the session manager's swallow-and-return-bool style,
// Call both stores its outcome and returns the error to the caller.
type Caller struct {
	bridge provider.Bridge

	mu    sync.Mutex
	state CallState
}

// NewCaller creates a contract caller over the given bridge.
func NewCaller(bridge provider.Bridge) *Caller {
	return &Caller{bridge: bridge}
}

// State returns a snapshot of the last call's state.
func (c *Caller) State() CallState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset clears the stored call state.
func (c *Caller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = CallState{}
}

// Call asks the wallet to sign and broadcast a contract call and
// returns the resulting transaction ID. The wallet decides network
// and fees; a response without a transaction ID is an error.
func (c *Caller) Call(ctx context.Context, contract, function string, args []clarity.Value) (*provider.TxResult, error) {
	if _, err := chain.ParseContractID(contract); err != nil {
		return nil, c.fail(err)
	}
	if function == "" {
		return nil, c.fail(fmt.Errorf("%w: function name is required", kiterr.ErrInvalidInput))
	}

	encoded, err := clarity.EncodeHexAll(args)
	if err != nil {
		return nil, c.fail(err)
	}
	if encoded == nil {
		encoded = []string{}
	}

	c.mu.Lock()
	c.state = CallState{InFlight: true}
	c.mu.Unlock()

	raw, err := c.bridge.Request(ctx, provider.MethodCallContract, provider.CallContractParams{
		Contract:     contract,
		FunctionName: function,
		FunctionArgs: encoded,
	})
	metrics.Global.RecordWalletOp(err)
	if err != nil {
		return nil, c.fail(err)
	}

	result, err := provider.ParseTxResult(raw)
	if err != nil {
		return nil, c.fail(fmt.Errorf("%w: %w", kiterr.ErrMissingTxID, err))
	}

	c.mu.Lock()
	c.state = CallState{TxID: result.TxID}
	c.mu.Unlock()

	return result, nil
}

// fail stores an error outcome and returns the same error so callers
// observe it both ways.
func (c *Caller) fail(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = CallState{Err: err}
	return err
}
