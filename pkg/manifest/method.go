package manifest

import (
	"fmt"

	"github.com/evmclient/evm-go/pkg/abi"
)

// Entry types as they appear in the ABI JSON.
const (
	TypeFunction    = "function"
	TypeConstructor = "constructor"
	TypeEvent       = "event"
	TypeFallback    = "fallback"
	TypeReceive     = "receive"
	TypeError       = "error"
)

// State mutability values.
const (
	MutabilityPure       = "pure"
	MutabilityView       = "view"
	MutabilityNonPayable = "nonpayable"
	MutabilityPayable    = "payable"
)

// Method represents method's metadata, it's immutable once the ABI is
// parsed.
type Method struct {
	Name            string     `json:"name,omitempty"`
	Type            string     `json:"type"`
	Inputs          Parameters `json:"inputs"`
	Outputs         Parameters `json:"outputs,omitempty"`
	Constant        bool       `json:"constant,omitempty"`
	Payable         bool       `json:"payable,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
}

// MutatesState returns false for methods that are declared constant, view or
// pure. Such methods are usually invoked via eth_call.
func (m *Method) MutatesState() bool {
	if m.Constant {
		return false
	}
	return m.StateMutability != MutabilityView && m.StateMutability != MutabilityPure
}

// IsPayable tells whether the method accepts value transfers.
func (m *Method) IsPayable() bool {
	return m.Payable || m.StateMutability == MutabilityPayable
}

// Signature returns the canonical method signature like "set(uint256)".
func (m *Method) Signature() string {
	return abi.Signature(m.Name, m.Inputs.Types())
}

// Selector returns the 4-byte method identifier.
func (m *Method) Selector() [abi.SelectorSize]byte {
	sel, err := abi.Selector(m.Signature())
	if err != nil {
		// Types are validated by Parse, so the signature is always canonical.
		panic(err)
	}
	return sel
}

// Pack encodes a call of the method with the given arguments.
func (m *Method) Pack(args ...any) (abi.EncodedCall, error) {
	payload, err := m.EncodeInputs(args...)
	if err != nil {
		return abi.EncodedCall{}, err
	}
	return abi.EncodedCall{Selector: m.Selector(), Payload: payload}, nil
}

// EncodeInputs encodes arguments without the selector. It's used for
// constructors whose arguments are appended to the contract code.
func (m *Method) EncodeInputs(args ...any) ([]byte, error) {
	if len(args) != len(m.Inputs) {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", abi.ErrEncoding, m.Name, len(m.Inputs), len(args))
	}
	return abi.Encode(m.Inputs.Types(), args)
}

// Unpack decodes data returned by the method.
func (m *Method) Unpack(data []byte) ([]any, error) {
	return abi.DecodeOutput(m.Outputs.Types(), data)
}

// IsValid checks method's consistency.
func (m *Method) IsValid() error {
	switch m.Type {
	case TypeFunction:
		if m.Name == "" {
			return errNoName
		}
		if err := checkSignature(m.Signature()); err != nil {
			return err
		}
	case TypeConstructor:
		if len(m.Outputs) != 0 {
			return fmt.Errorf("%w: constructor can't have outputs", ErrInvalidABI)
		}
	case TypeFallback, TypeReceive:
	default:
		return fmt.Errorf("%w: unknown entry type %q", ErrInvalidABI, m.Type)
	}
	switch m.StateMutability {
	case "", MutabilityPure, MutabilityView, MutabilityNonPayable, MutabilityPayable:
	default:
		return fmt.Errorf("%w: unknown state mutability %q", ErrInvalidABI, m.StateMutability)
	}
	return nil
}

// checkSignature makes sure the name forms a valid signature, so that the
// selector can always be derived later.
func checkSignature(sig string) error {
	if _, _, err := abi.ParseSignature(sig); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidABI, err)
	}
	return nil
}
