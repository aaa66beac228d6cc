package manifest

import (
	"github.com/evmclient/evm-go/pkg/abi"
)

// Error is a description of a custom error a contract can revert with. Errors
// aren't callable, they're kept to identify revert data.
type Error struct {
	Name   string     `json:"name"`
	Inputs Parameters `json:"inputs"`
}

// Signature returns the canonical error signature.
func (e *Error) Signature() string {
	return abi.Signature(e.Name, e.Inputs.Types())
}

// Selector returns the 4-byte error identifier that prefixes revert data.
func (e *Error) Selector() [abi.SelectorSize]byte {
	sel, err := abi.Selector(e.Signature())
	if err != nil {
		panic(err)
	}
	return sel
}

// IsValid checks error consistency.
func (e *Error) IsValid() error {
	if e.Name == "" {
		return errNoName
	}
	return checkSignature(e.Signature())
}
