package chain

import (
	"regexp"
	"strings"

	"github.com/stackskit/stackskit/internal/clarity"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// stxAddressRegex is the cheap shape check applied before the full
// c32check decode: 'S' plus a version character plus c32 body.
var stxAddressRegex = regexp.MustCompile(`^S[PMTN][0-9A-Z]{6,40}$`)

// contractNameRegex matches valid Clarity contract names.
var contractNameRegex = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9]|[-_]){0,39}$`)

// ValidateAddress checks that an address is a well-formed Stacks address
// with a valid c32check checksum.
func ValidateAddress(address string) error {
	if address == "" {
		return kiterr.ErrInvalidAddress
	}

	if !stxAddressRegex.MatchString(address) {
		return kiterr.WithDetails(kiterr.ErrInvalidAddress,
			map[string]string{"address": address})
	}

	if _, _, err := clarity.DecodeAddress(address); err != nil {
		return err
	}

	return nil
}

// ValidateAddressForNetwork additionally checks that the address version
// matches the given network (SP/SM mainnet, ST/SN testnet).
func ValidateAddressForNetwork(address string, network Network) error {
	if err := ValidateAddress(address); err != nil {
		return err
	}

	version, _, err := clarity.DecodeAddress(address)
	if err != nil {
		return err
	}

	switch network {
	case Testnet:
		if !clarity.IsTestnetVersion(version) {
			return kiterr.WithDetails(kiterr.ErrInvalidAddress,
				map[string]string{"address": address, "expected": "testnet"})
		}
	default:
		if !clarity.IsMainnetVersion(version) {
			return kiterr.WithDetails(kiterr.ErrInvalidAddress,
				map[string]string{"address": address, "expected": "mainnet"})
		}
	}

	return nil
}

// ContractID is a parsed "address.contract-name" identifier.
type ContractID struct {
	Address string
	Name    string
}

// String returns the canonical contract identifier.
func (c ContractID) String() string {
	return c.Address + "." + c.Name
}

// ParseContractID splits and validates an "address.contract-name"
// identifier.
func ParseContractID(contract string) (ContractID, error) {
	parts := strings.Split(contract, ".")
	if len(parts) != 2 {
		return ContractID{}, kiterr.WithDetails(kiterr.ErrInvalidContractID,
			map[string]string{"contract": contract, "expected": "address.contract-name"})
	}

	if err := ValidateAddress(parts[0]); err != nil {
		return ContractID{}, kiterr.Wrap(err, "contract address")
	}

	if !contractNameRegex.MatchString(parts[1]) {
		return ContractID{}, kiterr.WithDetails(kiterr.ErrInvalidContractID,
			map[string]string{"name": parts[1]})
	}

	return ContractID{Address: parts[0], Name: parts[1]}, nil
}
