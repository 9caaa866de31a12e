// Package clarity implements the subset of the Clarity wire encoding the
// kit needs: hex-encoding read-only call arguments and decoding returned
// values. Addresses use the c32check codec from this package.
package clarity

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// Wire type tags.
const (
	tagInt               byte = 0x00
	tagUInt              byte = 0x01
	tagBuffer            byte = 0x02
	tagBoolTrue          byte = 0x03
	tagBoolFalse         byte = 0x04
	tagPrincipalStandard byte = 0x05
	tagPrincipalContract byte = 0x06
	tagResponseOk        byte = 0x07
	tagResponseErr       byte = 0x08
	tagOptionalNone      byte = 0x09
	tagOptionalSome      byte = 0x0a
	tagList              byte = 0x0b
	tagTuple             byte = 0x0c
	tagStringASCII       byte = 0x0d
	tagStringUTF8        byte = 0x0e
)

const (
	int128Bytes     = 16
	maxContractName = 128
	maxDecodeDepth  = 32
)

// uint128Max is one past the largest encodable unsigned 128-bit value.
var uint128Bound = new(big.Int).Lsh(big.NewInt(1), 128)

// int128Bound is 2^127, the two's-complement boundary for 128-bit ints.
var int128Bound = new(big.Int).Lsh(big.NewInt(1), 127)

// Value is a Clarity value that can be serialized to the wire encoding.
type Value interface {
	// writeTo appends the wire encoding of the value.
	writeTo(buf *bytes.Buffer) error

	// String renders the value in Clarity source form, e.g. u123 or
	// (ok u123).
	String() string
}

// UInt is an unsigned 128-bit Clarity integer.
type UInt struct {
	V *big.Int
}

// NewUInt builds a UInt from a uint64.
func NewUInt(v uint64) UInt {
	return UInt{V: new(big.Int).SetUint64(v)}
}

func (u UInt) writeTo(buf *bytes.Buffer) error {
	if u.V == nil || u.V.Sign() < 0 || u.V.Cmp(uint128Bound) >= 0 {
		return kiterr.ErrInvalidClarityValue
	}
	buf.WriteByte(tagUInt)
	b := make([]byte, int128Bytes)
	u.V.FillBytes(b)
	buf.Write(b)
	return nil
}

func (u UInt) String() string {
	if u.V == nil {
		return "u0"
	}
	return "u" + u.V.String()
}

// Int is a signed 128-bit Clarity integer.
type Int struct {
	V *big.Int
}

// NewInt builds an Int from an int64.
func NewInt(v int64) Int {
	return Int{V: big.NewInt(v)}
}

func (i Int) writeTo(buf *bytes.Buffer) error {
	if i.V == nil || i.V.Cmp(int128Bound) >= 0 ||
		i.V.Cmp(new(big.Int).Neg(int128Bound)) < 0 {
		return kiterr.ErrInvalidClarityValue
	}
	buf.WriteByte(tagInt)
	// Two's complement: encode v mod 2^128.
	enc := new(big.Int).Mod(i.V, uint128Bound)
	b := make([]byte, int128Bytes)
	enc.FillBytes(b)
	buf.Write(b)
	return nil
}

func (i Int) String() string {
	if i.V == nil {
		return "0"
	}
	return i.V.String()
}

// Bool is a Clarity boolean.
type Bool bool

func (b Bool) writeTo(buf *bytes.Buffer) error {
	if b {
		buf.WriteByte(tagBoolTrue)
	} else {
		buf.WriteByte(tagBoolFalse)
	}
	return nil
}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Buffer is a Clarity byte buffer.
type Buffer []byte

func (b Buffer) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagBuffer)
	writeLength(buf, len(b))
	buf.Write(b)
	return nil
}

func (b Buffer) String() string {
	return "0x" + hex.EncodeToString(b)
}

// StandardPrincipal is a Clarity standard principal (an account address).
type StandardPrincipal struct {
	Version byte
	Hash    [20]byte
}

func (p StandardPrincipal) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagPrincipalStandard)
	buf.WriteByte(p.Version)
	buf.Write(p.Hash[:])
	return nil
}

func (p StandardPrincipal) String() string {
	addr, err := EncodeAddress(p.Version, p.Hash[:])
	if err != nil {
		return "'<invalid>"
	}
	return "'" + addr
}

// Address returns the c32check address string for the principal.
func (p StandardPrincipal) Address() (string, error) {
	return EncodeAddress(p.Version, p.Hash[:])
}

// ContractPrincipal is a Clarity contract principal ("address.name").
type ContractPrincipal struct {
	StandardPrincipal
	Name string
}

func (p ContractPrincipal) writeTo(buf *bytes.Buffer) error {
	if p.Name == "" || len(p.Name) > maxContractName {
		return kiterr.ErrInvalidClarityValue
	}
	buf.WriteByte(tagPrincipalContract)
	buf.WriteByte(p.Version)
	buf.Write(p.Hash[:])
	buf.WriteByte(byte(len(p.Name)))
	buf.WriteString(p.Name)
	return nil
}

func (p ContractPrincipal) String() string {
	addr, err := EncodeAddress(p.Version, p.Hash[:])
	if err != nil {
		return "'<invalid>"
	}
	return "'" + addr + "." + p.Name
}

// NewPrincipal parses "ADDRESS" or "ADDRESS.contract-name" into a
// principal value.
func NewPrincipal(s string) (Value, error) {
	addrPart := s
	name := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		addrPart = s[:idx]
		name = s[idx+1:]
		if name == "" {
			return nil, kiterr.ErrInvalidContractID
		}
	}

	version, hash, err := DecodeAddress(addrPart)
	if err != nil {
		return nil, err
	}

	std := StandardPrincipal{Version: version}
	copy(std.Hash[:], hash)

	if name == "" {
		return std, nil
	}
	return ContractPrincipal{StandardPrincipal: std, Name: name}, nil
}

// ResponseOk wraps a value in (ok ...).
type ResponseOk struct {
	Inner Value
}

func (r ResponseOk) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagResponseOk)
	return r.Inner.writeTo(buf)
}

func (r ResponseOk) String() string {
	return "(ok " + r.Inner.String() + ")"
}

// ResponseErr wraps a value in (err ...).
type ResponseErr struct {
	Inner Value
}

func (r ResponseErr) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagResponseErr)
	return r.Inner.writeTo(buf)
}

func (r ResponseErr) String() string {
	return "(err " + r.Inner.String() + ")"
}

// None is the empty optional.
type None struct{}

func (None) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagOptionalNone)
	return nil
}

func (None) String() string {
	return "none"
}

// Some wraps a value in (some ...).
type Some struct {
	Inner Value
}

func (s Some) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagOptionalSome)
	return s.Inner.writeTo(buf)
}

func (s Some) String() string {
	return "(some " + s.Inner.String() + ")"
}

// List is a Clarity list.
type List []Value

func (l List) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagList)
	writeLength(buf, len(l))
	for _, v := range l {
		if err := v.writeTo(buf); err != nil {
			return err
		}
	}
	return nil
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "(list " + strings.Join(parts, " ") + ")"
}

// Tuple is a Clarity tuple. Entries serialize in lexicographic key order.
type Tuple map[string]Value

func (t Tuple) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagTuple)
	writeLength(buf, len(t))
	for _, k := range t.sortedKeys() {
		if k == "" || len(k) > maxContractName {
			return kiterr.ErrInvalidClarityValue
		}
		buf.WriteByte(byte(len(k)))
		buf.WriteString(k)
		if err := t[k].writeTo(buf); err != nil {
			return err
		}
	}
	return nil
}

func (t Tuple) String() string {
	parts := make([]string, 0, len(t))
	for _, k := range t.sortedKeys() {
		parts = append(parts, k+": "+t[k].String())
	}
	return "(tuple " + strings.Join(parts, " ") + ")"
}

func (t Tuple) sortedKeys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	// Insertion sort; tuples are tiny.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// StringASCII is a Clarity ASCII string.
type StringASCII string

func (s StringASCII) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagStringASCII)
	writeLength(buf, len(s))
	buf.WriteString(string(s))
	return nil
}

func (s StringASCII) String() string {
	return fmt.Sprintf("%q", string(s))
}

// StringUTF8 is a Clarity UTF-8 string.
type StringUTF8 string

func (s StringUTF8) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte(tagStringUTF8)
	writeLength(buf, len(s))
	buf.WriteString(string(s))
	return nil
}

func (s StringUTF8) String() string {
	return fmt.Sprintf("u%q", string(s))
}

func writeLength(buf *bytes.Buffer, n int) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n)) //nolint:gosec // G115: lengths are bounded by callers
	buf.Write(b[:])
}

// EncodeHex serializes a value to its 0x-prefixed hex wire form, the
// encoding the read-only call endpoint expects for arguments.
func EncodeHex(v Value) (string, error) {
	var buf bytes.Buffer
	if err := v.writeTo(&buf); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(buf.Bytes()), nil
}

// EncodeHexAll serializes a slice of values.
func EncodeHexAll(values []Value) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		enc, err := EncodeHex(v)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

// DecodeHex parses a 0x-prefixed hex wire encoding into a value. Trailing
// bytes after a complete value are rejected.
func DecodeHex(s string) (Value, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, kiterr.Wrap(kiterr.ErrInvalidClarityValue, "decoding hex")
	}

	r := &reader{data: raw}
	v, err := r.readValue(0)
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.data) {
		return nil, kiterr.Wrap(kiterr.ErrInvalidClarityValue, "trailing bytes")
	}
	return v, nil
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, kiterr.Wrap(kiterr.ErrInvalidClarityValue, "truncated value")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, kiterr.Wrap(kiterr.ErrInvalidClarityValue, "truncated value")
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readLength() (int, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	n := binary.BigEndian.Uint32(b)
	if int(n) > len(r.data) {
		return 0, kiterr.Wrap(kiterr.ErrInvalidClarityValue, "length exceeds payload")
	}
	return int(n), nil
}

//nolint:gocyclo // One case per wire tag.
func (r *reader) readValue(depth int) (Value, error) {
	if depth > maxDecodeDepth {
		return nil, kiterr.Wrap(kiterr.ErrInvalidClarityValue, "nesting too deep")
	}

	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagInt:
		b, err := r.readBytes(int128Bytes)
		if err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(b)
		if v.Cmp(int128Bound) >= 0 {
			v.Sub(v, uint128Bound)
		}
		return Int{V: v}, nil

	case tagUInt:
		b, err := r.readBytes(int128Bytes)
		if err != nil {
			return nil, err
		}
		return UInt{V: new(big.Int).SetBytes(b)}, nil

	case tagBuffer:
		n, err := r.readLength()
		if err != nil {
			return nil, err
		}
		b, err := r.readBytes(n)
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		copy(out, b)
		return Buffer(out), nil

	case tagBoolTrue:
		return Bool(true), nil

	case tagBoolFalse:
		return Bool(false), nil

	case tagPrincipalStandard:
		return r.readStandardPrincipal()

	case tagPrincipalContract:
		std, err := r.readStandardPrincipal()
		if err != nil {
			return nil, err
		}
		nameLen, err := r.readByte()
		if err != nil {
			return nil, err
		}
		name, err := r.readBytes(int(nameLen))
		if err != nil {
			return nil, err
		}
		return ContractPrincipal{StandardPrincipal: std, Name: string(name)}, nil

	case tagResponseOk:
		inner, err := r.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		return ResponseOk{Inner: inner}, nil

	case tagResponseErr:
		inner, err := r.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		return ResponseErr{Inner: inner}, nil

	case tagOptionalNone:
		return None{}, nil

	case tagOptionalSome:
		inner, err := r.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		return Some{Inner: inner}, nil

	case tagList:
		n, err := r.readLength()
		if err != nil {
			return nil, err
		}
		list := make(List, 0, n)
		for i := 0; i < n; i++ {
			v, err := r.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case tagTuple:
		n, err := r.readLength()
		if err != nil {
			return nil, err
		}
		tuple := make(Tuple, n)
		for i := 0; i < n; i++ {
			nameLen, err := r.readByte()
			if err != nil {
				return nil, err
			}
			name, err := r.readBytes(int(nameLen))
			if err != nil {
				return nil, err
			}
			v, err := r.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			tuple[string(name)] = v
		}
		return tuple, nil

	case tagStringASCII:
		n, err := r.readLength()
		if err != nil {
			return nil, err
		}
		b, err := r.readBytes(n)
		if err != nil {
			return nil, err
		}
		return StringASCII(b), nil

	case tagStringUTF8:
		n, err := r.readLength()
		if err != nil {
			return nil, err
		}
		b, err := r.readBytes(n)
		if err != nil {
			return nil, err
		}
		return StringUTF8(b), nil

	default:
		return nil, kiterr.WithDetails(kiterr.ErrInvalidClarityValue,
			map[string]string{"tag": fmt.Sprintf("0x%02x", tag)})
	}
}

func (r *reader) readStandardPrincipal() (StandardPrincipal, error) {
	version, err := r.readByte()
	if err != nil {
		return StandardPrincipal{}, err
	}
	hash, err := r.readBytes(hash160Length)
	if err != nil {
		return StandardPrincipal{}, err
	}
	std := StandardPrincipal{Version: version}
	copy(std.Hash[:], hash)
	return std, nil
}

// UintFrom extracts an unsigned integer from a value, unwrapping (ok ...)
// and (some ...) layers. Token balances come back as (ok u...) from
// fungible token contracts.
func UintFrom(v Value) (*big.Int, error) {
	for {
		switch inner := v.(type) {
		case UInt:
			return inner.V, nil
		case Int:
			if inner.V.Sign() < 0 {
				return nil, kiterr.ErrInvalidClarityValue
			}
			return inner.V, nil
		case ResponseOk:
			v = inner.Inner
		case Some:
			v = inner.Inner
		case ResponseErr:
			return nil, kiterr.WithDetails(kiterr.ErrContractCallFailed,
				map[string]string{"err": inner.Inner.String()})
		default:
			return nil, kiterr.ErrInvalidClarityValue
		}
	}
}
