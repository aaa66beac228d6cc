package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evmclient/evm-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	t.Run("explicit paths", func(t *testing.T) {
		f := NewFinder(t.TempDir(), "testdata")
		a, err := f.Find("TestContractOne")
		require.NoError(t, err)
		require.Equal(t, "TestContractOne", a.ContractName)
		require.Equal(t, filepath.Join("testdata", "build", "contracts", "TestContractOne.json"), a.Path)
		require.Equal(t, []byte{0x60, 0x60, 0x60, 0x40}, a.Bytecode[:4])
		require.Equal(t, []string{"addCounter", "counterFor", "removeCounter"}, a.ABI.Names())

		addr, ok := a.Address("1234")
		require.True(t, ok)
		require.Equal(t, "0xc0c32feb41be1f1eba28f3612d3ca7e458974cdb", addr.String())
		_, ok = a.Address("1")
		require.False(t, ok)

		b, err := f.Find("TestContractOne")
		require.NoError(t, err)
		require.Same(t, a, b)
	})
	t.Run("no paths", func(t *testing.T) {
		_, err := NewFinder().Find("TestContractOne")
		require.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := NewFinder("testdata").Find("TestContractTwo")
		require.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("first path wins", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, "TestContractOne", `{"contractName":"Other","abi":[],"bytecode":"0x00"}`)
		a, err := NewFinder(dir, "testdata").Find("TestContractOne")
		require.NoError(t, err)
		require.Equal(t, "Other", a.ContractName)
	})
	t.Run("broken", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, "Broken", `{"abi":`)
		_, err := NewFinder(dir, "testdata").Find("Broken")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})
}

func writeArtifact(t *testing.T, dir, name, data string) {
	p := filepath.Join(dir, "build", "contracts")
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, name+".json"), []byte(data), 0o644))
}

func TestParse(t *testing.T) {
	for name, data := range map[string]string{
		"no abi":         `{"bytecode":"0x00"}`,
		"bad abi":        `{"abi":[{"type":"function","name":"f","inputs":[{"type":"uint7"}]}],"bytecode":"0x00"}`,
		"unlinked":       `{"abi":[],"bytecode":"0x60__Lib_____________________________"}`,
		"bad network":    `{"abi":[],"bytecode":"0x00","networks":{"1":{"address":"0x12"}}}`,
		"not an object":  `[]`,
		"bad json":       `{`,
		"bad bytecode":   `{"abi":[],"bytecode":12}`,
		"bad networks":   `{"abi":[],"bytecode":"0x","networks":[]}`,
		"bad abi format": `{"abi":{},"bytecode":"0x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.Error(t, err)
		})
	}

	a, err := Parse([]byte(`{"abi":[],"bytecode":"0x"}`))
	require.NoError(t, err)
	require.Empty(t, a.Bytecode)
	require.Empty(t, a.ABI.Names())
	_, ok := a.Address("1")
	require.False(t, ok)
	require.Equal(t, util.Address{}, a.Networks["1"].Address)
}
