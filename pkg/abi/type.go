/*
Package abi implements the contract application binary interface codec: the
type model used by function signatures, head/tail encoding and decoding of
argument and return values and selector derivation.
*/
package abi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is a category of ABI type.
type Kind int

// A list of supported ABI type kinds.
const (
	UintKind Kind = iota
	IntKind
	AddressKind
	BoolKind
	StringKind
	BytesKind
	FixedBytesKind
	SliceKind
	ArrayKind
)

// WordSize is the size of a single encoding slot in bytes.
const WordSize = 32

var (
	// ErrInvalidType is returned when a type name can't be parsed.
	ErrInvalidType = errors.New("invalid ABI type")
	// ErrEncoding is returned when values can't be encoded into the given
	// types (count mismatch, unsupported Go type, value out of range).
	ErrEncoding = errors.New("encoding error")
	// ErrDecoding is returned when the data can't be decoded into the given
	// types.
	ErrDecoding = errors.New("decoding error")
	// ErrInvalidSignature is returned for malformed function signatures.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Type describes a single ABI type. Size is the bit width for integer kinds
// and the byte width for FixedBytesKind. Length is the element count of
// ArrayKind. Elem is set for SliceKind and ArrayKind.
type Type struct {
	Kind   Kind
	Size   int
	Length int
	Elem   *Type
}

// Convenience constructors for the most widespread types.
var (
	Uint256 = Type{Kind: UintKind, Size: 256}
	Int256  = Type{Kind: IntKind, Size: 256}
	Address = Type{Kind: AddressKind}
	Bool    = Type{Kind: BoolKind}
	String  = Type{Kind: StringKind}
	Bytes   = Type{Kind: BytesKind}
	Bytes32 = Type{Kind: FixedBytesKind, Size: 32}
)

// SliceOf returns a dynamic array type of elem.
func SliceOf(elem Type) Type {
	return Type{Kind: SliceKind, Elem: &elem}
}

// ArrayOf returns a fixed-length array type of elem.
func ArrayOf(elem Type, length int) Type {
	return Type{Kind: ArrayKind, Length: length, Elem: &elem}
}

// MustParseType is the same as ParseType, but panics on error. It's intended
// for initializing package-level values.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseType converts a type name into Type. It accepts canonical names along
// with the usual shorthands:
//
//	uint, int -> uint256, int256
//	byte -> bytes1
//	T[] -> dynamic array of T
//	T[k] -> fixed array of k elements of T
//
// Tuples are not supported.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "]") {
		i := strings.LastIndexByte(s, '[')
		if i <= 0 {
			return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
		}
		elem, err := ParseType(s[:i])
		if err != nil {
			return Type{}, err
		}
		inner := s[i+1 : len(s)-1]
		if inner == "" {
			return SliceOf(elem), nil
		}
		n, err := strconv.Atoi(inner)
		if err != nil || n <= 0 {
			return Type{}, fmt.Errorf("%w: bad array length in %q", ErrInvalidType, s)
		}
		return ArrayOf(elem, n), nil
	}
	switch s {
	case "address":
		return Address, nil
	case "bool":
		return Bool, nil
	case "string":
		return String, nil
	case "bytes":
		return Bytes, nil
	case "byte":
		return Type{Kind: FixedBytesKind, Size: 1}, nil
	case "uint":
		return Uint256, nil
	case "int":
		return Int256, nil
	}
	switch {
	case strings.HasPrefix(s, "uint"):
		return parseSized(s, UintKind, s[4:], 8, 256, 8)
	case strings.HasPrefix(s, "int"):
		return parseSized(s, IntKind, s[3:], 8, 256, 8)
	case strings.HasPrefix(s, "bytes"):
		return parseSized(s, FixedBytesKind, s[5:], 1, 32, 1)
	}
	return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
}

func parseSized(name string, k Kind, size string, min, max, step int) (Type, error) {
	n, err := strconv.Atoi(size)
	if err != nil || n < min || n > max || n%step != 0 || strconv.Itoa(n) != size {
		return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, name)
	}
	return Type{Kind: k, Size: n}, nil
}

// ParseTypes parses a list of type names.
func ParseTypes(names ...string) ([]Type, error) {
	res := make([]Type, len(names))
	for i := range names {
		t, err := ParseType(names[i])
		if err != nil {
			return nil, err
		}
		res[i] = t
	}
	return res, nil
}

// String returns the canonical type name used in signatures.
func (t Type) String() string {
	switch t.Kind {
	case UintKind:
		return "uint" + strconv.Itoa(t.Size)
	case IntKind:
		return "int" + strconv.Itoa(t.Size)
	case AddressKind:
		return "address"
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	case BytesKind:
		return "bytes"
	case FixedBytesKind:
		return "bytes" + strconv.Itoa(t.Size)
	case SliceKind:
		return t.Elem.String() + "[]"
	case ArrayKind:
		return t.Elem.String() + "[" + strconv.Itoa(t.Length) + "]"
	default:
		return ""
	}
}

// IsDynamic returns true for types that are encoded via an offset into the
// tail region.
func (t Type) IsDynamic() bool {
	switch t.Kind {
	case StringKind, BytesKind, SliceKind:
		return true
	case ArrayKind:
		return t.Elem.IsDynamic()
	default:
		return false
	}
}

// headSize returns the number of bytes t occupies in the head region.
func (t Type) headSize() int {
	if t.Kind == ArrayKind && !t.IsDynamic() {
		return t.Length * t.Elem.headSize()
	}
	return WordSize
}

// Equals checks whether both types describe the same ABI type.
func (t Type) Equals(other Type) bool {
	return t.String() == other.String()
}

// MarshalJSON implements the json.Marshaler interface.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	p, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = p
	return nil
}

func repeat(t Type, n int) []Type {
	res := make([]Type, n)
	for i := range res {
		res[i] = t
	}
	return res
}
