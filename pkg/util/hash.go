package util

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashSize is the length of a transaction or block hash in bytes.
const HashSize = 32

// Hash is a 32 byte long big-endian hash value (transaction identifiers,
// block hashes, event topics).
type Hash [HashSize]uint8

// HashDecodeString attempts to decode the given hex string (with or without
// 0x prefix) into a Hash.
func HashDecodeString(s string) (u Hash, err error) {
	s = trimHexPrefix(s)
	if len(s) != HashSize*2 {
		return u, fmt.Errorf("expected string size of %d got %d", HashSize*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, err
	}
	return HashDecodeBytes(b)
}

// HashDecodeBytes attempts to decode the given bytes into a Hash.
func HashDecodeBytes(b []byte) (u Hash, err error) {
	if len(b) != HashSize {
		return u, fmt.Errorf("expected []byte of size %d got %d", HashSize, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// Bytes returns a byte slice representation of u.
func (u Hash) Bytes() []byte {
	return u[:]
}

// Equals returns true if both Hash values are the same.
func (u Hash) Equals(other Hash) bool {
	return u == other
}

// IsZero checks whether u consists of zero bytes only.
func (u Hash) IsZero() bool {
	return u == Hash{}
}

// String implements the stringer interface.
func (u Hash) String() string {
	return "0x" + hex.EncodeToString(u.Bytes())
}

// UnmarshalJSON implements the json unmarshaller interface.
func (u *Hash) UnmarshalJSON(data []byte) (err error) {
	var js string
	if err = json.Unmarshal(data, &js); err != nil {
		return err
	}
	*u, err = HashDecodeString(js)
	return err
}

// MarshalJSON implements the json marshaller interface.
func (u Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}
