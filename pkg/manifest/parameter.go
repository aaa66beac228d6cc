package manifest

import (
	"github.com/evmclient/evm-go/pkg/abi"
)

// Parameter represents a single input or output of a method or event.
type Parameter struct {
	Name    string   `json:"name"`
	Type    abi.Type `json:"type"`
	Indexed bool     `json:"indexed,omitempty"`
}

// Parameters is a list of Parameter.
type Parameters []Parameter

// NewParameter returns a new parameter of the specified name and type.
func NewParameter(name string, typ abi.Type) Parameter {
	return Parameter{
		Name: name,
		Type: typ,
	}
}

// Types returns parameter types in order.
func (p Parameters) Types() []abi.Type {
	res := make([]abi.Type, len(p))
	for i := range p {
		res[i] = p[i].Type
	}
	return res
}
