/*
Package manifest contains the contract descriptor table: the parsed form of
the JSON ABI produced by Solidity compilers. It maps method names to their
input and output types and provides the means to encode calls and decode
returned values.
*/
package manifest

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidABI is returned for ABI JSON that can't be parsed or has
	// inconsistent entries.
	ErrInvalidABI = errors.New("invalid ABI")
	// ErrAmbiguousOverload is returned when there are several functions with
	// the same name and the same number of inputs, such overloads can't be
	// resolved by argument count.
	ErrAmbiguousOverload = errors.New("ambiguous overload")

	errNoName = fmt.Errorf("%w: empty name", ErrInvalidABI)
)

// ABI represents a contract application binary interface.
type ABI struct {
	Methods  []Method
	Events   []Event
	Errors   []Error
	Fallback *Method
	Receive  *Method

	constructor *Method
}

// abiEntry is a union of all fields ABI JSON entries can have.
type abiEntry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	Inputs          Parameters `json:"inputs"`
	Outputs         Parameters `json:"outputs"`
	Constant        bool       `json:"constant,omitempty"`
	Payable         bool       `json:"payable,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Anonymous       bool       `json:"anonymous,omitempty"`
}

// Parse builds the descriptor table from the ABI JSON. Entries without a type
// are treated as functions. The table is validated, so ambiguous overloads
// and unsupported types are reported here rather than on invocation.
func Parse(data []byte) (*ABI, error) {
	a := new(ABI)
	if err := a.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	if err := a.IsValid(); err != nil {
		return nil, err
	}
	return a, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *ABI) UnmarshalJSON(data []byte) error {
	var entries []abiEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidABI, err)
	}
	*a = ABI{}
	for _, e := range entries {
		switch e.Type {
		case TypeEvent:
			a.Events = append(a.Events, Event{
				Name:      e.Name,
				Inputs:    e.Inputs,
				Anonymous: e.Anonymous,
			})
			continue
		case TypeError:
			a.Errors = append(a.Errors, Error{
				Name:   e.Name,
				Inputs: e.Inputs,
			})
			continue
		}
		if e.Type == "" {
			e.Type = TypeFunction
		}
		m := Method{
			Name:            e.Name,
			Type:            e.Type,
			Inputs:          e.Inputs,
			Outputs:         e.Outputs,
			Constant:        e.Constant,
			Payable:         e.Payable,
			StateMutability: e.StateMutability,
		}
		switch e.Type {
		case TypeConstructor:
			if a.constructor != nil {
				return fmt.Errorf("%w: multiple constructors", ErrInvalidABI)
			}
			a.constructor = &m
		case TypeFallback:
			a.Fallback = &m
		case TypeReceive:
			a.Receive = &m
		case TypeFunction:
			a.Methods = append(a.Methods, m)
		default:
			return fmt.Errorf("%w: unknown entry type %q", ErrInvalidABI, e.Type)
		}
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (a *ABI) MarshalJSON() ([]byte, error) {
	entries := make([]abiEntry, 0, len(a.Methods)+len(a.Events)+len(a.Errors)+3)
	fromMethod := func(m *Method) abiEntry {
		return abiEntry{
			Type:            m.Type,
			Name:            m.Name,
			Inputs:          m.Inputs,
			Outputs:         m.Outputs,
			Constant:        m.Constant,
			Payable:         m.Payable,
			StateMutability: m.StateMutability,
		}
	}
	if a.constructor != nil {
		entries = append(entries, fromMethod(a.constructor))
	}
	for i := range a.Methods {
		entries = append(entries, fromMethod(&a.Methods[i]))
	}
	for _, m := range []*Method{a.Fallback, a.Receive} {
		if m != nil {
			entries = append(entries, fromMethod(m))
		}
	}
	for i := range a.Events {
		entries = append(entries, abiEntry{
			Type:      TypeEvent,
			Name:      a.Events[i].Name,
			Inputs:    a.Events[i].Inputs,
			Anonymous: a.Events[i].Anonymous,
		})
	}
	for i := range a.Errors {
		entries = append(entries, abiEntry{
			Type:   TypeError,
			Name:   a.Errors[i].Name,
			Inputs: a.Errors[i].Inputs,
		})
	}
	return json.Marshal(entries)
}

// Constructor returns the constructor descriptor or nil if the contract
// doesn't declare one.
func (a *ABI) Constructor() *Method {
	return a.constructor
}

// GetMethod returns the function with the specified name and the number of
// inputs. paramCount of -1 matches any number of inputs.
func (a *ABI) GetMethod(name string, paramCount int) *Method {
	for i := range a.Methods {
		if a.Methods[i].Name == name && (paramCount == -1 || len(a.Methods[i].Inputs) == paramCount) {
			return &a.Methods[i]
		}
	}
	return nil
}

// Names returns the sorted list of unique function names.
func (a *ABI) Names() []string {
	names := make([]string, 0, len(a.Methods))
	for i := range a.Methods {
		names = append(names, a.Methods[i].Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// GetEvent returns the event with the specified name.
func (a *ABI) GetEvent(name string) *Event {
	for i := range a.Events {
		if a.Events[i].Name == name {
			return &a.Events[i]
		}
	}
	return nil
}

// GetError returns the custom error with the specified name.
func (a *ABI) GetError(name string) *Error {
	for i := range a.Errors {
		if a.Errors[i].Name == name {
			return &a.Errors[i]
		}
	}
	return nil
}

// IsValid checks ABI consistency and correctness.
func (a *ABI) IsValid() error {
	for i := range a.Methods {
		err := a.Methods[i].IsValid()
		if err != nil {
			return fmt.Errorf("method %q/%d: %w", a.Methods[i].Name, len(a.Methods[i].Inputs), err)
		}
	}
	for _, m := range []*Method{a.constructor, a.Fallback, a.Receive} {
		if m != nil {
			if err := m.IsValid(); err != nil {
				return fmt.Errorf("%s: %w", m.Type, err)
			}
		}
	}
	if len(a.Methods) > 1 {
		var methods = slices.Clone(a.Methods)
		slices.SortFunc(methods, func(a, b Method) int {
			return cmp.Or(
				cmp.Compare(a.Name, b.Name),
				cmp.Compare(len(a.Inputs), len(b.Inputs)),
			)
		})
		for i := range methods {
			if i == 0 {
				continue
			}
			if methods[i].Name == methods[i-1].Name &&
				len(methods[i].Inputs) == len(methods[i-1].Inputs) {
				return fmt.Errorf("%w: %s and %s", ErrAmbiguousOverload, methods[i-1].Signature(), methods[i].Signature())
			}
		}
	}
	for i := range a.Events {
		err := a.Events[i].IsValid()
		if err != nil {
			return fmt.Errorf("event %q/%d: %w", a.Events[i].Name, len(a.Events[i].Inputs), err)
		}
	}
	if len(a.Events) > 1 {
		sigs := make([]string, len(a.Events))
		for i := range a.Events {
			sigs[i] = a.Events[i].Signature()
		}
		slices.Sort(sigs)
		if len(slices.Compact(sigs)) != len(a.Events) {
			return fmt.Errorf("%w: duplicate events", ErrInvalidABI)
		}
	}
	for i := range a.Errors {
		err := a.Errors[i].IsValid()
		if err != nil {
			return fmt.Errorf("error %q/%d: %w", a.Errors[i].Name, len(a.Errors[i].Inputs), err)
		}
	}
	return nil
}
