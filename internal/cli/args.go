package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/stackskit/stackskit/internal/clarity"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// parseClarityArg parses a typed command-line argument into a Clarity value.
//
// Accepted forms:
//
//	uint:123         unsigned integer
//	int:-5           signed integer
//	bool:true        boolean
//	principal:SP...  standard or contract principal
//	ascii:hello      ASCII string
//	utf8:héllo       UTF-8 string
//	buff:deadbeef    hex-encoded buffer
//	none             no value
func parseClarityArg(arg string) (clarity.Value, error) {
	if arg == "none" {
		return clarity.None{}, nil
	}

	kind, raw, ok := strings.Cut(arg, ":")
	if !ok {
		return nil, fmt.Errorf("%w: argument %q needs a type prefix (uint:, int:, bool:, principal:, ascii:, utf8:, buff:)",
			kiterr.ErrInvalidInput, arg)
	}

	switch kind {
	case "uint":
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid uint %q", kiterr.ErrInvalidInput, raw)
		}
		return clarity.NewUInt(v), nil
	case "int":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid int %q", kiterr.ErrInvalidInput, raw)
		}
		return clarity.NewInt(v), nil
	case "bool":
		switch raw {
		case "true":
			return clarity.Bool(true), nil
		case "false":
			return clarity.Bool(false), nil
		}
		return nil, fmt.Errorf("%w: invalid bool %q", kiterr.ErrInvalidInput, raw)
	case "principal":
		return clarity.NewPrincipal(raw)
	case "ascii":
		return clarity.StringASCII(raw), nil
	case "utf8":
		return clarity.StringUTF8(raw), nil
	case "buff":
		b, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hex buffer %q", kiterr.ErrInvalidInput, raw)
		}
		return clarity.Buffer(b), nil
	}

	return nil, fmt.Errorf("%w: unknown argument type %q", kiterr.ErrInvalidInput, kind)
}

// parseClarityArgs parses a slice of typed arguments.
func parseClarityArgs(args []string) ([]clarity.Value, error) {
	values := make([]clarity.Value, 0, len(args))
	for _, arg := range args {
		v, err := parseClarityArg(arg)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
