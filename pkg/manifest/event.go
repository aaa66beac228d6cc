package manifest

import (
	"fmt"

	"github.com/evmclient/evm-go/pkg/abi"
	"github.com/evmclient/evm-go/pkg/util"
)

// Event is a description of a single event.
type Event struct {
	Name      string     `json:"name"`
	Inputs    Parameters `json:"inputs"`
	Anonymous bool       `json:"anonymous,omitempty"`
}

// Signature returns the canonical event signature.
func (e *Event) Signature() string {
	return abi.Signature(e.Name, e.Inputs.Types())
}

// ID returns the event topic.
func (e *Event) ID() util.Hash {
	id, err := abi.EventID(e.Signature())
	if err != nil {
		panic(err)
	}
	return id
}

// IsValid checks event consistency.
func (e *Event) IsValid() error {
	if e.Name == "" {
		return errNoName
	}
	if err := checkSignature(e.Signature()); err != nil {
		return err
	}
	var indexed int
	for i := range e.Inputs {
		if e.Inputs[i].Indexed {
			indexed++
		}
	}
	limit := 3
	if e.Anonymous {
		limit = 4
	}
	if indexed > limit {
		return fmt.Errorf("%w: too many indexed parameters", ErrInvalidABI)
	}
	return nil
}
