// Package transfer sends STX through the wallet bridge.
package transfer

import (
	"context"
	"fmt"
	"sync"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/metrics"
	"github.com/stackskit/stackskit/internal/provider"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// maxMemoLength is the Stacks transaction memo field size.
const maxMemoLength = 34

// Request describes a transfer. Amount is denominated in STX and may
// carry up to six decimal places.
type Request struct {
	Recipient string
	Amount    string
	Memo      string
}

// State is the observable state of the most recent transfer.
type State struct {
	// TxID is the broadcast transaction, set on success.
	TxID string

	// Err is the failure of the last transfer, if any.
	Err error

	// InFlight is true while a transfer awaits the wallet.
	InFlight bool
}

// Service sends STX transfers. Like the contract caller, Transfer
// both stores its outcome and returns the error to the caller.
type Service struct {
	bridge provider.Bridge

	mu    sync.Mutex
	state State
}

// NewService creates a transfer service over the given bridge.
func NewService(bridge provider.Bridge) *Service {
	return &Service{bridge: bridge}
}

// State returns a snapshot of the last transfer's state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset clears the stored transfer state.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
}

// Transfer validates the request, converts the amount to micro-STX
// and asks the wallet to sign and broadcast it.
func (s *Service) Transfer(ctx context.Context, req Request) (*provider.TxResult, error) {
	if err := chain.ValidateAddress(req.Recipient); err != nil {
		return nil, s.fail(err)
	}

	micro, err := chain.ParseSTX(req.Amount)
	if err != nil {
		return nil, s.fail(err)
	}

	if len(req.Memo) > maxMemoLength {
		return nil, s.fail(fmt.Errorf("%w: memo exceeds %d bytes", kiterr.ErrInvalidInput, maxMemoLength))
	}

	s.mu.Lock()
	s.state = State{InFlight: true}
	s.mu.Unlock()

	raw, err := s.bridge.Request(ctx, provider.MethodTransferSTX, provider.TransferSTXParams{
		Recipient: req.Recipient,
		Amount:    micro.String(),
		Memo:      req.Memo,
	})
	metrics.Global.RecordWalletOp(err)
	if err != nil {
		return nil, s.fail(err)
	}

	result, err := provider.ParseTxResult(raw)
	if err != nil {
		return nil, s.fail(fmt.Errorf("%w: %w", kiterr.ErrMissingTxID, err))
	}

	s.mu.Lock()
	s.state = State{TxID: result.TxID}
	s.mu.Unlock()

	return result, nil
}

// fail stores an error outcome and returns the same error so callers
// observe it both ways.
func (s *Service) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Err: err}
	return err
}
