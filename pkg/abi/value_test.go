package abi

import (
	"math/big"
	"testing"

	"github.com/evmclient/evm-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	addr, err := util.AddressDecodeString("0x27dcb234fab8190e53e2d949d7b2c37411efb72e")
	require.NoError(t, err)

	var testCases = []struct {
		typ      string
		in       string
		expected any
	}{
		{"uint256", "42", big.NewInt(42)},
		{"uint256", "0x2a", big.NewInt(42)},
		{"int8", "-5", big.NewInt(-5)},
		{"address", "0x27dcb234fab8190e53e2d949d7b2c37411efb72e", addr},
		{"address", "27dcb234fab8190e53e2d949d7b2c37411efb72e", addr},
		{"bool", "true", true},
		{"bool", "false", false},
		{"string", "ala ma kota", "ala ma kota"},
		{"bytes", "0xbeef", []byte{0xbe, 0xef}},
		{"bytes4", "deadbeef", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"uint8[]", "[1, \"0x2\"]", []any{big.NewInt(1), big.NewInt(2)}},
		{"string[2]", `["a","b"]`, []any{"a", "b"}},
		{"bool[][]", `[[true],[]]`, []any{[]any{true}, []any{}}},
	}
	for _, tc := range testCases {
		t.Run(tc.typ+" "+tc.in, func(t *testing.T) {
			v, err := ParseValue(MustParseType(tc.typ), tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.expected, v)
		})
	}
}

func TestParseValueErrors(t *testing.T) {
	var testCases = []struct {
		typ string
		in  string
	}{
		{"uint256", "forty two"},
		{"address", "0x1234"},
		{"bool", "yes"},
		{"bytes", "0xzz"},
		{"bytes2", "0x010203"},
		{"uint8[]", "1,2"},
		{"uint8[2]", "[1]"},
		{"uint8[]", `["x"]`},
	}
	for _, tc := range testCases {
		t.Run(tc.typ+" "+tc.in, func(t *testing.T) {
			_, err := ParseValue(MustParseType(tc.typ), tc.in)
			require.Error(t, err)
		})
	}
}

func TestFormatValue(t *testing.T) {
	addr, err := util.AddressDecodeString("0x27dcb234fab8190e53e2d949d7b2c37411efb72e")
	require.NoError(t, err)

	require.Equal(t, "-7", FormatValue(big.NewInt(-7)))
	require.Equal(t, "0x27dcb234fab8190e53e2d949d7b2c37411efb72e", FormatValue(addr))
	require.Equal(t, "true", FormatValue(true))
	require.Equal(t, "ala", FormatValue("ala"))
	require.Equal(t, "0xbeef", FormatValue([]byte{0xbe, 0xef}))
	require.Equal(t, `["1","2"]`, FormatValue([]any{big.NewInt(1), big.NewInt(2)}))
	require.Equal(t, "5", FormatValue(5))

	// FormatValue output is accepted back by ParseValue.
	typ := MustParseType("uint16[]")
	v, err := ParseValue(typ, FormatValue([]any{big.NewInt(1), big.NewInt(300)}))
	require.NoError(t, err)
	require.Equal(t, []any{big.NewInt(1), big.NewInt(300)}, v)
}
