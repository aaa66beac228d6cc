package abi

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/evmclient/evm-go/pkg/util"
)

// ParseValue is a user-friendly string to value converter, it returns a value
// accepted by Encode for the given type:
//
//	uintN, intN -> *big.Int (decimal or 0x-prefixed hex)
//	address -> util.Address (hex, 0x prefix is optional)
//	bool -> bool ("true" or "false")
//	string -> string as is
//	bytes, bytesN -> []byte (hex, 0x prefix is optional)
//	T[], T[k] -> []any from JSON array, elements are converted recursively
func ParseValue(t Type, s string) (any, error) {
	switch t.Kind {
	case UintKind, IntKind:
		bi, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer value %q", s)
		}
		return bi, nil
	case AddressKind:
		return util.AddressDecodeString(s)
	case BoolKind:
		switch s {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, errors.New("invalid boolean value")
		}
	case StringKind:
		return s, nil
	case BytesKind, FixedBytesKind:
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, err
		}
		if t.Kind == FixedBytesKind && len(b) > t.Size {
			return nil, fmt.Errorf("%d bytes don't fit into %s", len(b), t)
		}
		return b, nil
	case SliceKind, ArrayKind:
		var raw []json.RawMessage
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return nil, fmt.Errorf("not a JSON array: %w", err)
		}
		if t.Kind == ArrayKind && len(raw) != t.Length {
			return nil, fmt.Errorf("%d elements for %s", len(raw), t)
		}
		res := make([]any, len(raw))
		for i := range raw {
			var elem string
			if err := json.Unmarshal(raw[i], &elem); err != nil {
				elem = string(raw[i])
			}
			v, err := ParseValue(*t.Elem, elem)
			if err != nil {
				return nil, fmt.Errorf("element #%d: %w", i, err)
			}
			res[i] = v
		}
		return res, nil
	default:
		return nil, errors.New("unsupported type")
	}
}

// FormatValue converts a decoded value into a string that is accepted by
// ParseValue for the same type.
func FormatValue(v any) string {
	switch x := v.(type) {
	case *big.Int:
		return x.String()
	case util.Address:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return x
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case []any:
		items := make([]string, len(x))
		for i := range x {
			b, _ := json.Marshal(FormatValue(x[i]))
			items[i] = string(b)
		}
		return "[" + strings.Join(items, ",") + "]"
	default:
		return fmt.Sprint(v)
	}
}
