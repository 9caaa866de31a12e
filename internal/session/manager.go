package session

import (
	"context"
	"strings"
	"sync"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/metrics"
	"github.com/stackskit/stackskit/internal/provider"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// Manager is the session state machine. States are Disconnected,
// Connecting and Connected; Connect drives Disconnected→Connecting→
// Connected (or back to Disconnected with the error stored), Recover
// is a direct Disconnected→Connected edge for sessions the bridge
// already holds, and Disconnect returns to Disconnected while keeping
// the network preference.
type Manager struct {
	mu     sync.RWMutex
	bridge provider.Bridge
	prefs  PreferenceStore
	state  State
}

// NewManager creates a session manager. The persisted network
// preference is loaded immediately; when prefs is nil an in-memory
// store is used. An unreadable preference falls back to the default
// network rather than failing construction.
func NewManager(bridge provider.Bridge, prefs PreferenceStore) *Manager {
	if prefs == nil {
		prefs = NewMemoryStore()
	}

	network, err := prefs.LoadNetwork()
	if err != nil {
		network = chain.DefaultNetwork
	}

	return &Manager{
		bridge: bridge,
		prefs:  prefs,
		state:  State{Network: network},
	}
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Network returns the currently selected network.
func (m *Manager) Network() chain.Network {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Network
}

// Address returns the connected Stacks address, or "".
func (m *Manager) Address() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Address
}

// Recover restores a session the bridge persisted from a previous
// run. Purely local: no wallet request is made and Connecting is
// never set. Returns true if a session was restored.
func (m *Manager) Recover(ctx context.Context) bool {
	addrs, err := m.bridge.StoredAddresses(ctx)
	if err != nil || addrs.PrimarySTX() == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Connected = true
	m.state.Address = addrs.PrimarySTX()
	m.state.BTCAddress = addrs.PrimaryBTC()
	m.state.Err = nil
	return true
}

// Connect asks the wallet to disclose addresses and transitions to
// Connected on success. Failures never propagate as errors: the
// mapped error is stored in the session state and false is returned.
// A second Connect while one is already in flight returns false
// without disturbing the running attempt.
func (m *Manager) Connect(ctx context.Context) bool {
	m.mu.Lock()
	if m.state.Connecting {
		m.mu.Unlock()
		return false
	}
	m.state.Connecting = true
	m.state.Err = nil
	m.mu.Unlock()

	addrs, err := m.requestAddresses(ctx)
	metrics.Global.RecordWalletOp(err)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Connecting = false

	if err != nil {
		m.state.Err = mapConnectError(err)
		return false
	}

	m.state.Connected = true
	m.state.Address = addrs.PrimarySTX()
	m.state.BTCAddress = addrs.PrimaryBTC()
	m.state.Err = nil
	return true
}

// requestAddresses performs the bridge round trip: request address
// disclosure, then read what the bridge persisted.
func (m *Manager) requestAddresses(ctx context.Context) (*provider.StoredAddresses, error) {
	if _, err := m.bridge.Request(ctx, provider.MethodGetAddresses, nil); err != nil {
		return nil, err
	}

	addrs, err := m.bridge.StoredAddresses(ctx)
	if err != nil {
		return nil, err
	}
	if addrs.PrimarySTX() == "" {
		return nil, kiterr.ErrNoStacksAddress
	}
	return addrs, nil
}

// Disconnect tears down the session. The bridge disconnect is fire
// and forget; local state is cleared regardless. Network and the
// persisted preference are untouched.
func (m *Manager) Disconnect(ctx context.Context) {
	_ = m.bridge.Disconnect(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Connected = false
	m.state.Connecting = false
	m.state.Address = ""
	m.state.BTCAddress = ""
	m.state.Err = nil
}

// SetNetwork selects a network and persists the preference. It never
// touches connection state; consumers re-derive request targets from
// the new value on their next call.
func (m *Manager) SetNetwork(network chain.Network) error {
	m.mu.Lock()
	m.state.Network = network
	m.mu.Unlock()

	return m.prefs.SaveNetwork(network)
}

// SetError stores a session error. Setting any error, including nil,
// clears Connecting: an error is only meaningful at the end of an
// attempt.
func (m *Manager) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Err = err
	m.state.Connecting = false
}

// mapConnectError converts a raw bridge failure into the error stored
// on the session. Typed errors pass through; an untyped error whose
// text suggests no wallet extension is present is remapped to
// ErrWalletUnavailable; anything else keeps its message verbatim.
func mapConnectError(err error) error {
	if kiterr.Is(err, kiterr.ErrWalletUnavailable) || kiterr.Is(err, kiterr.ErrNoStacksAddress) {
		return err
	}

	msg := err.Error()
	if strings.Contains(msg, "'in' operator") || strings.Contains(msg, "undefined") {
		return kiterr.ErrWalletUnavailable
	}

	return kiterr.New("CONNECT_FAILED", msg)
}
