// Package chain provides Stacks network definitions and common utilities:
// network/endpoint resolution, address validation, amount parsing and
// formatting, and request rate limiting.
package chain

import (
	"strings"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// Network identifies a Stacks network.
type Network string

// Supported networks.
const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// DefaultNetwork is used when no preference has been stored.
const DefaultNetwork = Mainnet

// Default Hiro API base URLs per network.
const (
	MainnetAPIURL = "https://api.hiro.so"
	TestnetAPIURL = "https://api.testnet.hiro.so"
)

// sBTC token contract identifiers per network.
const (
	SBTCContractMainnet = "SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4.sbtc-token"
	SBTCContractTestnet = "ST1F7QA2MDF17S807EPA36TSS8AMEFY4KA9TVGWXT.sbtc-token"
)

// String returns the network identifier string.
func (n Network) String() string {
	return string(n)
}

// IsValid returns true if the network is a known network.
func (n Network) IsValid() bool {
	return n == Mainnet || n == Testnet
}

// APIURL returns the default Hiro API base URL for the network.
func (n Network) APIURL() string {
	if n == Testnet {
		return TestnetAPIURL
	}
	return MainnetAPIURL
}

// SBTCContract returns the sbtc-token contract identifier for the network.
func (n Network) SBTCContract() string {
	if n == Testnet {
		return SBTCContractTestnet
	}
	return SBTCContractMainnet
}

// ParseNetwork parses a string into a Network.
func ParseNetwork(s string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(s)))
	if !n.IsValid() {
		return "", kiterr.WithDetails(kiterr.ErrUnknownNetwork,
			map[string]string{"network": s})
	}
	return n, nil
}
