package abi

import (
	"fmt"
	"strings"

	"github.com/evmclient/evm-go/pkg/crypto/hash"
	"github.com/evmclient/evm-go/pkg/util"
)

// SelectorSize is the length of function selector in bytes.
const SelectorSize = 4

// EncodedCall is a function invocation ready to be sent: selector followed by
// the encoded arguments.
type EncodedCall struct {
	Selector [SelectorSize]byte
	Payload  []byte
}

// Bytes returns selector and payload concatenated, that's what goes into the
// transaction data field.
func (c EncodedCall) Bytes() []byte {
	res := make([]byte, 0, SelectorSize+len(c.Payload))
	res = append(res, c.Selector[:]...)
	return append(res, c.Payload...)
}

// Signature builds a canonical signature string like "transfer(address,uint256)".
func Signature(name string, types []Type) string {
	names := make([]string, len(types))
	for i := range types {
		names[i] = types[i].String()
	}
	return name + "(" + strings.Join(names, ",") + ")"
}

// Selector computes the 4-byte function identifier of the given canonical
// signature. Non-canonical type names (like "uint" instead of "uint256") are
// rejected since they'd produce a selector no contract uses.
func Selector(sig string) ([SelectorSize]byte, error) {
	if err := checkSignature(sig); err != nil {
		return [SelectorSize]byte{}, err
	}
	return hash.Checksum([]byte(sig)), nil
}

// EventID computes the 32-byte event topic of the given canonical signature.
func EventID(sig string) (util.Hash, error) {
	if err := checkSignature(sig); err != nil {
		return util.Hash{}, err
	}
	return hash.Keccak256([]byte(sig)), nil
}

// Pack encodes a call of the function with the given canonical signature.
func Pack(sig string, values ...any) (EncodedCall, error) {
	sel, err := Selector(sig)
	if err != nil {
		return EncodedCall{}, err
	}
	_, types, err := ParseSignature(sig)
	if err != nil {
		return EncodedCall{}, err
	}
	payload, err := Encode(types, values)
	if err != nil {
		return EncodedCall{}, err
	}
	return EncodedCall{Selector: sel, Payload: payload}, nil
}

// ParseSignature splits the canonical signature into the function name and
// argument types.
func ParseSignature(sig string) (string, []Type, error) {
	if err := checkSignature(sig); err != nil {
		return "", nil, err
	}
	types, err := ParseTypes(signatureArgs(sig)...)
	if err != nil {
		return "", nil, err
	}
	return sig[:strings.IndexByte(sig, '(')], types, nil
}

func checkSignature(sig string) error {
	open := strings.IndexByte(sig, '(')
	if open <= 0 || !strings.HasSuffix(sig, ")") || strings.Count(sig, "(") != 1 || strings.Count(sig, ")") != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidSignature, sig)
	}
	for _, c := range sig[:open] {
		if !(c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return fmt.Errorf("%w: bad name in %q", ErrInvalidSignature, sig)
		}
	}
	for _, name := range signatureArgs(sig) {
		t, err := ParseType(name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
		}
		if t.String() != name {
			return fmt.Errorf("%w: non-canonical type %q, use %q", ErrInvalidSignature, name, t.String())
		}
	}
	return nil
}

func signatureArgs(sig string) []string {
	open := strings.IndexByte(sig, '(')
	inner := sig[open+1 : len(sig)-1]
	if inner == "" {
		return nil
	}
	return strings.Split(inner, ",")
}
