package clarity

import (
	"crypto/sha256"
	"math/big"
	"strings"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// c32Alphabet is the Crockford-style base32 alphabet used by Stacks
// addresses. It excludes I, L, O and U.
const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Stacks address version bytes.
const (
	VersionMainnetP2PKH byte = 22 // 'P'
	VersionMainnetP2SH  byte = 20 // 'M'
	VersionTestnetP2PKH byte = 26 // 'T'
	VersionTestnetP2SH  byte = 21 // 'N'
)

const (
	hash160Length  = 20
	checksumLength = 4
)

// c32Normalize uppercases the input and maps the homoglyphs the alphabet
// excludes onto their canonical digits.
func c32Normalize(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "O", "0")
	s = strings.ReplaceAll(s, "L", "1")
	s = strings.ReplaceAll(s, "I", "1")
	return s
}

// c32Encode encodes data using the c32 alphabet. Leading zero bytes are
// preserved as leading '0' characters, matching the reference encoding.
func c32Encode(data []byte) string {
	zeros := 0
	for _, b := range data {
		if b != 0 {
			break
		}
		zeros++
	}

	n := new(big.Int).SetBytes(data)
	base := big.NewInt(32)
	mod := new(big.Int)

	var digits []byte
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, c32Alphabet[mod.Int64()])
	}

	// Digits come out least significant first.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	return strings.Repeat("0", zeros) + string(digits)
}

// c32DecodeSized decodes a c32 string into exactly size bytes.
func c32DecodeSized(s string, size int) ([]byte, error) {
	if s == "" {
		return nil, kiterr.ErrInvalidAddress
	}

	n := new(big.Int)
	base := big.NewInt(32)
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(c32Alphabet, s[i])
		if idx < 0 {
			return nil, kiterr.WithDetails(kiterr.ErrInvalidAddress,
				map[string]string{"character": string(s[i])})
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}

	if n.BitLen() > size*8 {
		return nil, kiterr.ErrInvalidAddress
	}

	buf := make([]byte, size)
	n.FillBytes(buf)
	return buf, nil
}

// addressChecksum computes the 4-byte c32check checksum over the version
// byte followed by the hash160.
func addressChecksum(version byte, hash []byte) []byte {
	payload := make([]byte, 0, 1+len(hash))
	payload = append(payload, version)
	payload = append(payload, hash...)

	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}

// EncodeAddress builds a Stacks address string from a version byte and a
// 20-byte hash160.
func EncodeAddress(version byte, hash []byte) (string, error) {
	if int(version) >= len(c32Alphabet) {
		return "", kiterr.ErrInvalidAddress
	}
	if len(hash) != hash160Length {
		return "", kiterr.ErrInvalidAddress
	}

	data := make([]byte, 0, hash160Length+checksumLength)
	data = append(data, hash...)
	data = append(data, addressChecksum(version, hash)...)

	return "S" + string(c32Alphabet[version]) + c32Encode(data), nil
}

// DecodeAddress parses a Stacks address into its version byte and hash160,
// verifying the c32check checksum.
func DecodeAddress(addr string) (byte, []byte, error) {
	const minBodyLength = 7 // a bare 4-byte checksum encodes to 7 digits

	if len(addr) < 2+minBodyLength || addr[0] != 'S' {
		return 0, nil, kiterr.ErrInvalidAddress
	}

	normalized := c32Normalize(addr[1:])

	versionIdx := strings.IndexByte(c32Alphabet, normalized[0])
	if versionIdx < 0 {
		return 0, nil, kiterr.ErrInvalidAddress
	}
	version := byte(versionIdx)

	body := normalized[1:]
	data, err := c32DecodeSized(body, hash160Length+checksumLength)
	if err != nil {
		return 0, nil, err
	}

	// The sized decode is value-based; require the canonical string form so
	// leading-zero bytes cannot be forged by shortening the body.
	if c32Encode(data) != body {
		return 0, nil, kiterr.ErrInvalidAddress
	}

	hash := data[:hash160Length]
	checksum := data[hash160Length:]
	expected := addressChecksum(version, hash)
	for i := range checksum {
		if checksum[i] != expected[i] {
			return 0, nil, kiterr.ErrInvalidChecksum
		}
	}

	return version, hash, nil
}

// IsMainnetVersion reports whether the version byte belongs to a mainnet
// address.
func IsMainnetVersion(version byte) bool {
	return version == VersionMainnetP2PKH || version == VersionMainnetP2SH
}

// IsTestnetVersion reports whether the version byte belongs to a testnet
// address.
func IsTestnetVersion(version byte) bool {
	return version == VersionTestnetP2PKH || version == VersionTestnetP2SH
}
