/*
Package hash contains the hashing primitive used to derive function selectors
and event topics.
*/
package hash

import (
	"github.com/evmclient/evm-go/pkg/util"
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes the incoming byte slices using the original (pre-NIST)
// Keccak-256 algorithm, as used by the EVM.
func Keccak256(data ...[]byte) util.Hash {
	var h util.Hash
	hasher := sha3.NewLegacyKeccak256()
	for _, b := range data {
		_, _ = hasher.Write(b)
	}
	copy(h[:], hasher.Sum(nil))
	return h
}

// Checksum returns the first four bytes of the Keccak-256 hash of the data.
func Checksum(data []byte) [4]byte {
	var c [4]byte
	h := Keccak256(data)
	copy(c[:], h[:4])
	return c
}
