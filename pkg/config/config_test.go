package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testConfigPath = "./testdata/evm-go.yml"

func TestLoad(t *testing.T) {
	cfg, err := Load(testConfigPath)
	require.NoError(t, err)

	require.Equal(t, "http://127.0.0.1:8545", cfg.RPC.Endpoint)
	require.Equal(t, 10*time.Second, cfg.RPC.RequestTimeout)
	require.Zero(t, cfg.RPC.DialTimeout)
	require.NotNil(t, cfg.RPC.DefaultAccount)
	require.Equal(t, "0x27dcb234fab8190e53e2d949d7b2c37411efb72e", cfg.RPC.DefaultAccount.String())
	require.Equal(t, uint64(20000000000), *cfg.Contract.GasPrice)
	require.Equal(t, uint64(44000), *cfg.Contract.GasLimit)
	require.Equal(t, 500*time.Millisecond, cfg.Contract.PollInterval)
	require.Equal(t, 2*time.Minute, cfg.Contract.Timeout)
	require.Equal(t, []string{"./contracts", "/opt/truffle"}, cfg.Artifacts.Paths)
	require.Equal(t, "debug", cfg.Logger.LogLevel)
	require.Equal(t, "console", cfg.Logger.LogEncoding)
	require.Equal(t, "./evm-go.log", cfg.Logger.LogPath)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestUnmarshal(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		cfg, err := Unmarshal(nil)
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
		require.Nil(t, cfg.Contract.GasPrice)
	})
	t.Run("unknown field", func(t *testing.T) {
		_, err := Unmarshal([]byte("RPC:\n  Endpoit: http://localhost\n"))
		require.Error(t, err)
	})
	t.Run("bad account", func(t *testing.T) {
		_, err := Unmarshal([]byte("RPC:\n  DefaultAccount: 0x1234\n"))
		require.Error(t, err)
	})
	for name, data := range map[string]string{
		"no endpoint":      "RPC:\n  Endpoint: \"\"\n",
		"negative timeout": "RPC:\n  DialTimeout: -1s\n",
		"negative poll":    "Contract:\n  PollInterval: -1s\n",
		"negative wait":    "Contract:\n  Timeout: -5s\n",
		"bad level":        "Logger:\n  LogLevel: loud\n",
		"bad encoding":     "Logger:\n  LogEncoding: xml\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal([]byte(data))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(p, []byte("Contract:\n  Timeout: 1m\n"), 0o644))
	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, time.Minute, cfg.Contract.Timeout)
	require.Equal(t, DefaultEndpoint, cfg.RPC.Endpoint)
	require.Equal(t, DefaultPollInterval, cfg.Contract.PollInterval)
}

func TestSampleConfig(t *testing.T) {
	cfg, err := Load("../../config/evm-go.yml")
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8545", cfg.RPC.Endpoint)
	require.Nil(t, cfg.RPC.DefaultAccount)
	require.Equal(t, []string{"."}, cfg.Artifacts.Paths)
	require.Equal(t, "info", cfg.Logger.LogLevel)
}
