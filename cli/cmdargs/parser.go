package cmdargs

import (
	"errors"
	"fmt"

	"github.com/evmclient/evm-go/pkg/abi"
	"github.com/urfave/cli"
)

const (
	// ArrayStartSeparator marks the start of array cli arg.
	ArrayStartSeparator = "["
	// ArrayEndSeparator marks the end of array cli arg.
	ArrayEndSeparator = "]"
)

// ParamsParsingDoc is a documentation for parameters parsing.
const ParamsParsingDoc = `   Arguments are converted to the types of the method (or constructor) inputs
   declared in the contract ABI, the method is chosen by its name and the
   number of arguments given. Values are accepted in the following form:
    * 'uintN' and 'intN' values are decimal or 0x-prefixed hexadecimal
      integers that fit into the type.
    * 'bool' values are 'true' and 'false'.
    * 'address' values are hex-encoded 20-bytes long strings with or without
      '0x' prefix.
    * 'bytes' and 'bytesN' values are hex-encoded strings with or without
      '0x' prefix.
    * 'string' values are taken as is.
    * 'T[]' and 'T[k]' values are either JSON arrays or space-separated
      values enclosed into special space-separated '[' and ']' words. Nested
      arrays are also supported.

   Examples:
    * '42' is an integer with a value of 42
    * '0x2a' is an integer with a value of 42
    * '[ 1 2 3 ]' is an array of three elements
    * '[1,2,3]' is the same array in JSON form
    * '[ [ 1 2 ] [ 3 ] ]' is an array of two arrays
    * '[ ]' is an empty array`

var (
	errNoOpening = errors.New("invalid array syntax: missing opening bracket")
	errNoClosing = errors.New("invalid array syntax: missing closing bracket")
)

// EnsureNone returns an error if there are any positional arguments present.
// It can be used to check for them in commands that don't accept arguments.
func EnsureNone(ctx *cli.Context) *cli.ExitError {
	if ctx.Args().Present() {
		return cli.NewExitError("additional arguments given while this command expects none", 1)
	}
	return nil
}

// CountParams returns the number of parameters in args, arrays given with
// bracket syntax are counted as a single parameter.
func CountParams(args []string) (int, error) {
	var n, depth int
	for _, s := range args {
		switch s {
		case ArrayStartSeparator:
			if depth == 0 {
				n++
			}
			depth++
		case ArrayEndSeparator:
			if depth == 0 {
				return 0, errNoOpening
			}
			depth--
		default:
			if depth == 0 {
				n++
			}
		}
	}
	if depth != 0 {
		return 0, errNoClosing
	}
	return n, nil
}

// ParseParams converts args into the values of the given types, the result
// can be used for ABI encoding.
func ParseParams(types []abi.Type, args []string) ([]any, error) {
	res := make([]any, 0, len(types))
	for k := 0; k < len(args); {
		if len(res) == len(types) {
			return nil, fmt.Errorf("too many arguments, expected %d", len(types))
		}
		n, v, err := parseParam(types[len(res)], args[k:])
		if err != nil {
			return nil, fmt.Errorf("failed to parse argument #%d: %w", len(res)+1, err)
		}
		res = append(res, v)
		k += n
	}
	if len(res) != len(types) {
		return nil, fmt.Errorf("not enough arguments, expected %d, got %d", len(types), len(res))
	}
	return res, nil
}

// parseParam parses a single value of type t from the beginning of args and
// returns the number of words read.
func parseParam(t abi.Type, args []string) (int, any, error) {
	switch args[0] {
	case ArrayEndSeparator:
		return 0, nil, errNoOpening
	case ArrayStartSeparator:
		if t.Kind != abi.SliceKind && t.Kind != abi.ArrayKind {
			return 0, nil, fmt.Errorf("array given for %s", t)
		}
		res := []any{}
		for k := 1; k < len(args); {
			if args[k] == ArrayEndSeparator {
				if t.Kind == abi.ArrayKind && len(res) != t.Length {
					return 0, nil, fmt.Errorf("%d elements for %s", len(res), t)
				}
				return k + 1, res, nil // `1` to convert index to numWordsRead
			}
			n, v, err := parseParam(*t.Elem, args[k:])
			if err != nil {
				return 0, nil, fmt.Errorf("element #%d: %w", len(res), err)
			}
			res = append(res, v)
			k += n
		}
		return 0, nil, errNoClosing
	default:
		v, err := abi.ParseValue(t, args[0])
		if err != nil {
			return 0, nil, err
		}
		return 1, v, nil
	}
}
