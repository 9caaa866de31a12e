package session

import (
	"errors"
	"os"
	"sync"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/fileutil"
)

// prefsFilePermissions is the permission mode for the preference file.
const prefsFilePermissions = 0o600

// PreferenceStore persists the settings that survive disconnect and
// process restarts. Connection state itself is never persisted here;
// reconnection goes through the bridge's own storage.
type PreferenceStore interface {
	// LoadNetwork returns the persisted network preference, or the
	// default network when none has been saved.
	LoadNetwork() (chain.Network, error)

	// SaveNetwork persists the network preference.
	SaveNetwork(network chain.Network) error
}

// preferences is the on-disk preference format.
type preferences struct {
	Network string `json:"network"`
}

// FileStore is a PreferenceStore backed by a JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a preference store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadNetwork implements PreferenceStore. A missing or unreadable
// preference file falls back to the default network.
func (s *FileStore) LoadNetwork() (chain.Network, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prefs preferences
	if err := fileutil.ReadJSON(s.path, &prefs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return chain.DefaultNetwork, nil
		}
		return chain.DefaultNetwork, err
	}

	network, err := chain.ParseNetwork(prefs.Network)
	if err != nil {
		return chain.DefaultNetwork, err
	}
	return network, nil
}

// SaveNetwork implements PreferenceStore.
func (s *FileStore) SaveNetwork(network chain.Network) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fileutil.WriteJSON(s.path, preferences{Network: string(network)}, prefsFilePermissions)
}

// MemoryStore is a PreferenceStore that keeps the preference in
// memory. Used when no preference path is configured, and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	network chain.Network
	loaded  bool
}

// NewMemoryStore creates an in-memory preference store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadNetwork implements PreferenceStore.
func (s *MemoryStore) LoadNetwork() (chain.Network, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return chain.DefaultNetwork, nil
	}
	return s.network, nil
}

// SaveNetwork implements PreferenceStore.
func (s *MemoryStore) SaveNetwork(network chain.Network) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.network = network
	s.loaded = true
	return nil
}
