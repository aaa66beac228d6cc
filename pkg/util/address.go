package util

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// AddressSize is the length of an account address in bytes.
const AddressSize = 20

// Address is a 20 byte long account or contract address.
type Address [AddressSize]uint8

// AddressDecodeString attempts to decode the given hex string (with or
// without 0x prefix) into an Address.
func AddressDecodeString(s string) (Address, error) {
	var u Address
	s = trimHexPrefix(s)
	if len(s) != AddressSize*2 {
		return u, fmt.Errorf("expected string size of %d got %d", AddressSize*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, err
	}
	return AddressDecodeBytes(b)
}

// AddressDecodeBytes attempts to decode the given bytes into an Address.
func AddressDecodeBytes(b []byte) (u Address, err error) {
	if len(b) != AddressSize {
		return u, fmt.Errorf("expected byte size of %d got %d", AddressSize, len(b))
	}
	copy(u[:], b)
	return
}

// Bytes returns the byte slice representation of u.
func (u Address) Bytes() []byte {
	return u[:]
}

// String implements the stringer interface. Addresses are always rendered in
// lowercase with 0x prefix, that's what nodes accept in requests.
func (u Address) String() string {
	return "0x" + hex.EncodeToString(u.Bytes())
}

// Equals returns true if both Address values are the same.
func (u Address) Equals(other Address) bool {
	return u == other
}

// IsZero checks whether u is an all-zero address.
func (u Address) IsZero() bool {
	return u == Address{}
}

// UnmarshalJSON implements the json unmarshaller interface.
func (u *Address) UnmarshalJSON(data []byte) (err error) {
	var js string
	if err = json.Unmarshal(data, &js); err != nil {
		return err
	}
	*u, err = AddressDecodeString(js)
	return err
}

// MarshalJSON implements the json marshaller interface.
func (u Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// MarshalYAML implements the YAML Marshaler interface.
func (u Address) MarshalYAML() (any, error) {
	return u.String(), nil
}

// UnmarshalYAML implements the YAML Unmarshaler interface.
func (u *Address) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	addr, err := AddressDecodeString(s)
	if err != nil {
		return err
	}
	*u = addr
	return nil
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
