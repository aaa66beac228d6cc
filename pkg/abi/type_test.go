package abi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	var testCases = []struct {
		in        string
		canonical string
		dynamic   bool
	}{
		{"uint", "uint256", false},
		{"uint8", "uint8", false},
		{"int", "int256", false},
		{"int64", "int64", false},
		{"address", "address", false},
		{"bool", "bool", false},
		{"string", "string", true},
		{"bytes", "bytes", true},
		{"byte", "bytes1", false},
		{"bytes32", "bytes32", false},
		{"uint256[]", "uint256[]", true},
		{"uint[3]", "uint256[3]", false},
		{"string[2]", "string[2]", true},
		{"address[][2]", "address[][2]", true},
		{"bytes4[2][]", "bytes4[2][]", true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			typ, err := ParseType(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.canonical, typ.String())
			require.Equal(t, tc.dynamic, typ.IsDynamic())
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, s := range []string{"", "uint7", "uint264", "int0", "uint08", "bytes0", "bytes33",
		"tuple", "foo", "uint[", "[]", "uint[0]", "uint[-1]", "uint[x]", "function"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseType(s)
			require.ErrorIs(t, err, ErrInvalidType)
		})
	}
}

func TestHeadSize(t *testing.T) {
	require.Equal(t, 32, MustParseType("uint8").headSize())
	require.Equal(t, 96, MustParseType("uint256[3]").headSize())
	require.Equal(t, 192, MustParseType("uint256[3][2]").headSize())
	require.Equal(t, 32, MustParseType("string[3]").headSize())
	require.Equal(t, 32, MustParseType("uint256[]").headSize())
}

func TestTypeJSON(t *testing.T) {
	var typ Type
	require.NoError(t, json.Unmarshal([]byte(`"uint[]"`), &typ))
	require.True(t, typ.Equals(SliceOf(Uint256)))

	data, err := json.Marshal(typ)
	require.NoError(t, err)
	require.Equal(t, `"uint256[]"`, string(data))

	require.Error(t, json.Unmarshal([]byte(`"uint3"`), &typ))
	require.Error(t, json.Unmarshal([]byte(`3`), &typ))
}

func TestMustParseType(t *testing.T) {
	require.NotPanics(t, func() { MustParseType("bytes32") })
	require.Panics(t, func() { MustParseType("bytes64") })
}
