package abi

import (
	"fmt"
	"math/big"

	"github.com/evmclient/evm-go/pkg/util"
)

// Decode unpacks data according to types. Every dynamic value is located via
// its own head offset, so tail segments don't have to follow argument order.
// Integers are returned as *big.Int, addresses as util.Address, strings as
// string, bytes of any kind as []byte and arrays as []any.
func Decode(types []Type, data []byte) ([]any, error) {
	return decodeTuple(types, data)
}

// DecodeOutput is the same as Decode, but it also accepts a compact form of
// a single string or bytes return value that some nodes produce: a word
// holding 32 plus the content length immediately followed by the content.
// It's only tried when the canonical decoding fails.
func DecodeOutput(types []Type, data []byte) ([]any, error) {
	res, err := Decode(types, data)
	if err == nil || len(types) != 1 || (types[0].Kind != StringKind && types[0].Kind != BytesKind) {
		return res, err
	}
	n, cerr := readLength(data, 0)
	if cerr != nil || n < WordSize || n-WordSize > len(data)-WordSize {
		return nil, err
	}
	content := make([]byte, n-WordSize)
	copy(content, data[WordSize:n])
	if types[0].Kind == StringKind {
		return []any{string(content)}, nil
	}
	return []any{content}, nil
}

func decodeTuple(types []Type, data []byte) ([]any, error) {
	var (
		res = make([]any, len(types))
		off int
	)
	for i, t := range types {
		var (
			v   any
			err error
		)
		if t.IsDynamic() {
			var ptr int
			ptr, err = readLength(data, off)
			if err == nil {
				if ptr > len(data) {
					err = fmt.Errorf("%w: offset %d is out of bounds", ErrDecoding, ptr)
				} else {
					v, err = decodeValue(t, data[ptr:])
				}
			}
		} else {
			if off > len(data) {
				err = fmt.Errorf("%w: unexpected end of data", ErrDecoding)
			} else {
				v, err = decodeValue(t, data[off:])
			}
		}
		if err != nil {
			return nil, fmt.Errorf("value #%d (%s): %w", i, t, err)
		}
		res[i] = v
		off += t.headSize()
	}
	return res, nil
}

func decodeValue(t Type, data []byte) (any, error) {
	switch t.Kind {
	case UintKind:
		w, err := word(data, 0)
		if err != nil {
			return nil, err
		}
		b := new(big.Int).SetBytes(w)
		if b.BitLen() > t.Size {
			return nil, fmt.Errorf("%w: value doesn't fit into %s", ErrDecoding, t)
		}
		return b, nil
	case IntKind:
		w, err := word(data, 0)
		if err != nil {
			return nil, err
		}
		b := new(big.Int).SetBytes(w)
		if w[0]&0x80 != 0 {
			b.Sub(b, two256)
		}
		limit := new(big.Int).Lsh(bigOne, uint(t.Size-1))
		if b.Cmp(new(big.Int).Neg(limit)) < 0 || b.Cmp(limit) >= 0 {
			return nil, fmt.Errorf("%w: value doesn't fit into %s", ErrDecoding, t)
		}
		return b, nil
	case AddressKind:
		w, err := word(data, 0)
		if err != nil {
			return nil, err
		}
		var a util.Address
		copy(a[:], w[WordSize-util.AddressSize:])
		return a, nil
	case BoolKind:
		w, err := word(data, 0)
		if err != nil {
			return nil, err
		}
		b := new(big.Int).SetBytes(w)
		if b.BitLen() > 1 {
			return nil, fmt.Errorf("%w: invalid boolean", ErrDecoding)
		}
		return b.Sign() == 1, nil
	case FixedBytesKind:
		w, err := word(data, 0)
		if err != nil {
			return nil, err
		}
		b := make([]byte, t.Size)
		copy(b, w)
		return b, nil
	case StringKind, BytesKind:
		n, err := readLength(data, 0)
		if err != nil {
			return nil, err
		}
		if n > len(data)-WordSize {
			return nil, fmt.Errorf("%w: %d bytes of content exceed data", ErrDecoding, n)
		}
		b := make([]byte, n)
		copy(b, data[WordSize:WordSize+n])
		if t.Kind == StringKind {
			return string(b), nil
		}
		return b, nil
	case SliceKind:
		n, err := readLength(data, 0)
		if err != nil {
			return nil, err
		}
		// Every element takes at least one word.
		if n > (len(data)-WordSize)/WordSize {
			return nil, fmt.Errorf("%w: %d elements exceed data", ErrDecoding, n)
		}
		return decodeTuple(repeat(*t.Elem, n), data[WordSize:])
	case ArrayKind:
		return decodeTuple(repeat(*t.Elem, t.Length), data)
	default:
		return nil, fmt.Errorf("%w: unknown type kind %d", ErrDecoding, t.Kind)
	}
}

// word returns a 32-byte slot starting at off.
func word(data []byte, off int) ([]byte, error) {
	if off < 0 || off+WordSize > len(data) {
		return nil, fmt.Errorf("%w: unexpected end of data", ErrDecoding)
	}
	return data[off : off+WordSize], nil
}

// readLength reads a word at off that is expected to hold an offset or a
// length, it must fit into a non-negative int.
func readLength(data []byte, off int) (int, error) {
	w, err := word(data, off)
	if err != nil {
		return 0, err
	}
	b := new(big.Int).SetBytes(w)
	if !b.IsInt64() || b.Int64() > int64(len(data)) {
		return 0, fmt.Errorf("%w: length or offset %s is out of bounds", ErrDecoding, b)
	}
	return int(b.Int64()), nil
}
