package abi

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/evmclient/evm-go/pkg/util"
	"github.com/holiman/uint256"
)

var (
	bigOne = big.NewInt(1)
	two256 = new(big.Int).Lsh(bigOne, 256)
)

// Encode packs values according to types using the standard head/tail
// layout. Static values are placed into the head directly, dynamic ones are
// represented in the head by an offset (counted from the start of the
// encoded block) to their tail segment, tail segments follow the head in
// argument order.
func Encode(types []Type, values []any) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("%w: %d values for %d types", ErrEncoding, len(values), len(types))
	}
	return encodeTuple(types, values)
}

func encodeTuple(types []Type, values []any) ([]byte, error) {
	var headLen int
	for _, t := range types {
		headLen += t.headSize()
	}
	var (
		head = make([]byte, 0, headLen)
		tail []byte
	)
	for i, t := range types {
		enc, err := encodeValue(t, values[i])
		if err != nil {
			return nil, fmt.Errorf("value #%d (%s): %w", i, t, err)
		}
		if t.IsDynamic() {
			head = append(head, uintWord(uint64(headLen+len(tail)))...)
			tail = append(tail, enc...)
		} else {
			head = append(head, enc...)
		}
	}
	return append(head, tail...), nil
}

func encodeValue(t Type, v any) ([]byte, error) {
	switch t.Kind {
	case UintKind:
		return encodeUint(t, v)
	case IntKind:
		return encodeInt(t, v)
	case AddressKind:
		a, err := toAddress(v)
		if err != nil {
			return nil, err
		}
		return leftPad(a.Bytes()), nil
	case BoolKind:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not a bool", ErrEncoding, v)
		}
		if b {
			return uintWord(1), nil
		}
		return uintWord(0), nil
	case StringKind, BytesKind:
		b, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		return append(uintWord(uint64(len(b))), rightPad(b)...), nil
	case FixedBytesKind:
		b, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		if len(b) > t.Size {
			return nil, fmt.Errorf("%w: %d bytes don't fit into %s", ErrEncoding, len(b), t)
		}
		return rightPad(b), nil
	case SliceKind:
		items, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		enc, err := encodeTuple(repeat(*t.Elem, len(items)), items)
		if err != nil {
			return nil, err
		}
		return append(uintWord(uint64(len(items))), enc...), nil
	case ArrayKind:
		items, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		if len(items) != t.Length {
			return nil, fmt.Errorf("%w: %d elements for %s", ErrEncoding, len(items), t)
		}
		return encodeTuple(repeat(*t.Elem, len(items)), items)
	default:
		return nil, fmt.Errorf("%w: unknown type kind %d", ErrEncoding, t.Kind)
	}
}

func encodeUint(t Type, v any) ([]byte, error) {
	b, err := toBig(v)
	if err != nil {
		return nil, err
	}
	if b.Sign() < 0 || b.BitLen() > t.Size {
		return nil, fmt.Errorf("%w: %s is out of %s range", ErrEncoding, b, t)
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("%w: %s is out of %s range", ErrEncoding, b, t)
	}
	w := u.Bytes32()
	return w[:], nil
}

func encodeInt(t Type, v any) ([]byte, error) {
	b, err := toBig(v)
	if err != nil {
		return nil, err
	}
	var (
		max = new(big.Int).Lsh(bigOne, uint(t.Size-1))
		min = new(big.Int).Neg(max)
	)
	if b.Cmp(min) < 0 || b.Cmp(max) >= 0 {
		return nil, fmt.Errorf("%w: %s is out of %s range", ErrEncoding, b, t)
	}
	if b.Sign() < 0 {
		b = new(big.Int).Add(b, two256)
	}
	u, _ := uint256.FromBig(b)
	w := u.Bytes32()
	return w[:], nil
}

func toBig(v any) (*big.Int, error) {
	switch x := v.(type) {
	case int:
		return big.NewInt(int64(x)), nil
	case int8:
		return big.NewInt(int64(x)), nil
	case int16:
		return big.NewInt(int64(x)), nil
	case int32:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	case uint:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case *big.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrEncoding)
		}
		return x, nil
	case big.Int:
		return &x, nil
	case *uint256.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrEncoding)
		}
		return x.ToBig(), nil
	case string:
		b, ok := new(big.Int).SetString(x, 0)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrEncoding, x)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %T is not an integer", ErrEncoding, v)
	}
}

func toAddress(v any) (util.Address, error) {
	switch x := v.(type) {
	case util.Address:
		return x, nil
	case *util.Address:
		if x == nil {
			return util.Address{}, fmt.Errorf("%w: nil address", ErrEncoding)
		}
		return *x, nil
	case [util.AddressSize]byte:
		return util.Address(x), nil
	case []byte:
		a, err := util.AddressDecodeBytes(x)
		if err != nil {
			return a, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return a, nil
	case string:
		a, err := util.AddressDecodeString(x)
		if err != nil {
			return a, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return a, nil
	default:
		return util.Address{}, fmt.Errorf("%w: %T is not an address", ErrEncoding, v)
	}
}

func toBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	case util.Hash:
		return x.Bytes(), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return b, nil
	}
	return nil, fmt.Errorf("%w: %T is not a byte sequence", ErrEncoding, v)
}

func toSlice(v any) ([]any, error) {
	if items, ok := v.([]any); ok {
		return items, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T is not a list", ErrEncoding, v)
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}

// uintWord returns n as a 32-byte big-endian word.
func uintWord(n uint64) []byte {
	w := new(uint256.Int).SetUint64(n).Bytes32()
	return w[:]
}

func leftPad(b []byte) []byte {
	res := make([]byte, WordSize)
	copy(res[WordSize-len(b):], b)
	return res
}

// rightPad pads b with zeroes up to the next multiple of WordSize.
func rightPad(b []byte) []byte {
	n := (len(b) + WordSize - 1) / WordSize * WordSize
	res := make([]byte, n)
	copy(res, b)
	return res
}
