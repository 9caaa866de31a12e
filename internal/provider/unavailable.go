package provider

import (
	"context"
	"encoding/json"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// Unavailable is a Bridge for environments without a wallet. Every
// request fails with ErrWalletUnavailable and no session storage
// exists. The CLI uses it so read-only commands work without a wallet
// while write commands fail with a clear message.
type Unavailable struct{}

// NewUnavailable returns a bridge that reports no wallet present.
func NewUnavailable() *Unavailable {
	return &Unavailable{}
}

// Request always fails.
func (*Unavailable) Request(_ context.Context, _ string, _ any) (json.RawMessage, error) {
	return nil, kiterr.ErrWalletUnavailable
}

// Disconnect is a no-op.
func (*Unavailable) Disconnect(_ context.Context) error {
	return nil
}

// StoredAddresses reports no prior session.
func (*Unavailable) StoredAddresses(_ context.Context) (*StoredAddresses, error) {
	return nil, nil
}
