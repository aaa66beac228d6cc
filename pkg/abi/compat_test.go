package abi

import (
	"math/big"
	"strings"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/require"
)

func gethArguments(t *testing.T, names ...string) gethabi.Arguments {
	args := make(gethabi.Arguments, len(names))
	for i, n := range names {
		typ, err := gethabi.NewType(n, "", nil)
		require.NoError(t, err)
		args[i] = gethabi.Argument{Type: typ}
	}
	return args
}

func TestGethCompatibility(t *testing.T) {
	long := strings.Repeat("a longer string ", 5)
	var testCases = map[string]struct {
		types  []string
		values []any
	}{
		"string[][]": {
			types:  []string{"string[][]"},
			values: []any{[][]string{{"a", "bc"}, {}, {long}}},
		},
		"uint8[2][]": {
			types:  []string{"uint8[2][]"},
			values: []any{[][2]uint8{{1, 2}, {3, 255}}},
		},
		"string[2]": {
			types:  []string{"string[2]"},
			values: []any{[2]string{"ala", long}},
		},
		"mixed": {
			types: []string{"uint256", "string[2]", "bytes", "uint8[2][]", "bool"},
			values: []any{
				big.NewInt(42),
				[2]string{"", long},
				[]byte{1, 2, 3},
				[][2]uint8{{7, 8}},
				true,
			},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			args := gethArguments(t, tc.types...)
			types := mustTypes(t, tc.types...)

			expected, err := args.Pack(tc.values...)
			require.NoError(t, err)
			actual, err := Encode(types, tc.values)
			require.NoError(t, err)
			require.Equal(t, expected, actual)

			unpacked, err := args.UnpackValues(actual)
			require.NoError(t, err)
			require.Equal(t, tc.values, unpacked)

			decoded, err := Decode(types, expected)
			require.NoError(t, err)
			reencoded, err := Encode(types, decoded)
			require.NoError(t, err)
			require.Equal(t, expected, reencoded)
		})
	}
}
