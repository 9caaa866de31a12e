package chain

import (
	"math/big"
	"strings"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// Token precisions.
const (
	// STXDecimals is the micro-STX precision of the native token.
	STXDecimals = 6

	// SBTCDecimals is the satoshi precision of the sBTC token.
	SBTCDecimals = 8

	// stxMinFractionDigits is the minimum number of fraction digits shown
	// for STX amounts.
	stxMinFractionDigits = 2
)

// ParseDecimalAmount parses a decimal amount string to big.Int with the
// given decimal places. For example, "1.5" with 6 decimals returns 1500000.
//
//nolint:gocognit,gocyclo // Decimal parsing requires sequential validation steps
func ParseDecimalAmount(amount string, decimalPlaces int) (*big.Int, error) {
	if amount == "" {
		return nil, kiterr.ErrInvalidAmount
	}

	// Check for negative amounts
	if strings.HasPrefix(amount, "-") {
		return nil, kiterr.ErrInvalidAmount
	}

	// Split by decimal point
	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return nil, kiterr.ErrInvalidAmount
	}

	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}

	// More fraction digits than the token precision cannot be represented.
	if len(decPart) > decimalPlaces {
		return nil, kiterr.ErrInvalidAmount
	}

	if intPart == "" {
		intPart = "0"
	}
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return nil, kiterr.ErrInvalidAmount
		}
	}
	intVal, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return nil, kiterr.ErrInvalidAmount
	}

	// Scale integer part
	multiplier := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimalPlaces)), nil)
	result := new(big.Int).Mul(intVal, multiplier)

	// Handle decimal part
	if decPart != "" {
		for _, c := range decPart {
			if c < '0' || c > '9' {
				return nil, kiterr.ErrInvalidAmount
			}
		}

		for len(decPart) < decimalPlaces {
			decPart += "0"
		}

		decVal, ok := new(big.Int).SetString(decPart, 10)
		if !ok {
			return nil, kiterr.ErrInvalidAmount
		}

		result = result.Add(result, decVal)
	}

	return result, nil
}

// ParseSTX parses a human-readable STX amount into micro-STX. The amount
// must be positive with at most six fraction digits.
func ParseSTX(amount string) (*big.Int, error) {
	micro, err := ParseDecimalAmount(amount, STXDecimals)
	if err != nil {
		return nil, err
	}
	if micro.Sign() <= 0 {
		return nil, kiterr.ErrInvalidAmount
	}
	return micro, nil
}

// FormatSTX converts a micro-STX amount to a human-readable string with
// thousands separators and between two and six fraction digits.
// 1000000000 renders as "1,000.00".
func FormatSTX(micro *big.Int) string {
	whole, frac := splitAmount(micro, STXDecimals)

	// Trim trailing zeros down to the two-digit minimum.
	for len(frac) > stxMinFractionDigits && frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}

	return groupThousands(whole) + "." + frac
}

// FormatSBTC converts a satoshi sBTC amount to a human-readable string.
// The trailing zero fraction is trimmed entirely: 50000000 renders as
// "0.5" and 100000000 as "1".
func FormatSBTC(sats *big.Int) string {
	whole, frac := splitAmount(sats, SBTCDecimals)

	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return groupThousands(whole)
	}

	return groupThousands(whole) + "." + frac
}

// splitAmount splits a smallest-unit amount into whole and fraction digit
// strings for the given precision. The fraction keeps its full width.
func splitAmount(amount *big.Int, decimalPlaces int) (string, string) {
	if amount == nil {
		return "0", strings.Repeat("0", decimalPlaces)
	}

	str := amount.String()

	// Pad with leading zeros if necessary
	for len(str) <= decimalPlaces {
		str = "0" + str
	}

	decimalPos := len(str) - decimalPlaces
	return str[:decimalPos], str[decimalPos:]
}

// groupThousands inserts comma separators into a non-negative integer
// digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
