/*
Package unwrap provides a set of proxy methods to process call results.

Functions implemented there are intended to be used as wrappers for other
functions that return (*result.Call, error) pair (of which there are many).
These functions will check for error, check the number of decoded results,
cast them to appropriate type (if everything is OK) and then return a result
or error. They're mostly useful for other higher-level contract-specific
packages.
*/
package unwrap

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/evmclient/evm-go/pkg/ethrpc/result"
	"github.com/evmclient/evm-go/pkg/util"
)

// BigInt expects a single integer value returned.
func BigInt(r *result.Call, err error) (*big.Int, error) {
	itm, err := Item(r, err)
	if err != nil {
		return nil, err
	}
	i, ok := itm.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%T is not an integer", itm)
	}
	return i, nil
}

// Bool expects a single bool value returned.
func Bool(r *result.Call, err error) (bool, error) {
	itm, err := Item(r, err)
	if err != nil {
		return false, err
	}
	b, ok := itm.(bool)
	if !ok {
		return false, fmt.Errorf("%T is not a bool", itm)
	}
	return b, nil
}

// Int64 expects a single integer value returned that fits into int64.
func Int64(r *result.Call, err error) (int64, error) {
	i, err := BigInt(r, err)
	if err != nil {
		return 0, err
	}
	if !i.IsInt64() {
		return 0, errors.New("int64 overflow")
	}
	return i.Int64(), nil
}

// Uint64 expects a single integer value returned that fits into uint64.
func Uint64(r *result.Call, err error) (uint64, error) {
	i, err := BigInt(r, err)
	if err != nil {
		return 0, err
	}
	if !i.IsUint64() {
		return 0, errors.New("uint64 overflow")
	}
	return i.Uint64(), nil
}

// Bytes expects a single bytes or bytesN value returned.
func Bytes(r *result.Call, err error) ([]byte, error) {
	itm, err := Item(r, err)
	if err != nil {
		return nil, err
	}
	b, ok := itm.([]byte)
	if !ok {
		return nil, fmt.Errorf("%T is not a byte slice", itm)
	}
	return b, nil
}

// String expects a single valid UTF-8 string returned.
func String(r *result.Call, err error) (string, error) {
	itm, err := Item(r, err)
	if err != nil {
		return "", err
	}
	s, ok := itm.(string)
	if !ok {
		return "", fmt.Errorf("%T is not a string", itm)
	}
	if !utf8.ValidString(s) {
		return "", errors.New("not a UTF-8 string")
	}
	return s, nil
}

// Address expects a single address returned.
func Address(r *result.Call, err error) (util.Address, error) {
	itm, err := Item(r, err)
	if err != nil {
		return util.Address{}, err
	}
	a, ok := itm.(util.Address)
	if !ok {
		return util.Address{}, fmt.Errorf("%T is not an address", itm)
	}
	return a, nil
}

// Array expects a single array (fixed or dynamic) returned.
func Array(r *result.Call, err error) ([]any, error) {
	itm, err := Item(r, err)
	if err != nil {
		return nil, err
	}
	arr, ok := itm.([]any)
	if !ok {
		return nil, fmt.Errorf("%T is not an array", itm)
	}
	return arr, nil
}

// ArrayOfAddresses checks the result to be an array of addresses.
func ArrayOfAddresses(r *result.Call, err error) ([]util.Address, error) {
	arr, err := Array(r, err)
	if err != nil {
		return nil, err
	}
	res := make([]util.Address, len(arr))
	for i := range arr {
		a, ok := arr[i].(util.Address)
		if !ok {
			return nil, fmt.Errorf("item #%d: %T is not an address", i, arr[i])
		}
		res[i] = a
	}
	return res, nil
}

// Nothing expects the method to return no values, like functions without
// outputs do.
func Nothing(r *result.Call, err error) error {
	if err != nil {
		return err
	}
	if len(r.Formatted) != 0 {
		return fmt.Errorf("unexpected %d result items", len(r.Formatted))
	}
	return nil
}

// Item returns a decoded value from the result if it's the only one.
func Item(r *result.Call, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if len(r.Formatted) == 0 {
		return nil, errors.New("result is empty")
	}
	if len(r.Formatted) > 1 {
		return nil, fmt.Errorf("too many (%d) result items", len(r.Formatted))
	}
	return r.Formatted[0], nil
}
