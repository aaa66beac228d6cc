package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/evmclient/evm-go/pkg/util"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultEndpoint is the node RPC endpoint used if none is configured.
	DefaultEndpoint = "http://localhost:8545"
	// DefaultPollInterval is the transaction awaiting poll interval.
	DefaultPollInterval = time.Second
)

// Version is the version of the client, overridden at build time.
var Version = "dev"

type (
	// Config is the top level struct representing the client configuration.
	Config struct {
		RPC       RPC       `yaml:"RPC"`
		Contract  Contract  `yaml:"Contract"`
		Artifacts Artifacts `yaml:"Artifacts"`
		Logger    Logger    `yaml:"Logger"`
	}

	// RPC is the node connection configuration.
	RPC struct {
		Endpoint       string        `yaml:"Endpoint"`
		DialTimeout    time.Duration `yaml:"DialTimeout"`
		RequestTimeout time.Duration `yaml:"RequestTimeout"`
		// DefaultAccount is the transaction sender, the first account of
		// the node is used if it's not set.
		DefaultAccount *util.Address `yaml:"DefaultAccount"`
	}

	// Contract contains contract invocation defaults.
	Contract struct {
		// GasPrice and GasLimit are added to transactions if set.
		GasPrice     *uint64       `yaml:"GasPrice"`
		GasLimit     *uint64       `yaml:"GasLimit"`
		PollInterval time.Duration `yaml:"PollInterval"`
		// Timeout limits transaction awaiting, zero means no limit.
		Timeout time.Duration `yaml:"Timeout"`
	}

	// Artifacts configures contract artifact discovery.
	Artifacts struct {
		// Paths is a list of project directories containing
		// build/contracts/<Name>.json files.
		Paths []string `yaml:"Paths"`
	}

	// Logger contains logging configuration.
	Logger struct {
		LogEncoding  string `yaml:"LogEncoding"`
		LogLevel     string `yaml:"LogLevel"`
		LogPath      string `yaml:"LogPath"`
		LogTimestamp *bool  `yaml:"LogTimestamp,omitempty"`
	}
)

// Default returns the configuration with default values set.
func Default() Config {
	return Config{
		RPC: RPC{
			Endpoint: DefaultEndpoint,
		},
		Contract: Contract{
			PollInterval: DefaultPollInterval,
		},
		Logger: Logger{
			LogEncoding: "console",
			LogLevel:    "info",
		},
	}
}

// Load attempts to load the config from the given file. Values missing from
// the file are set to defaults.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "Unable to load config")
	}

	configData, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "Unable to read config")
	}
	return Unmarshal(configData)
}

// Unmarshal parses YAML configuration over the defaults and validates it.
// Unknown fields are not allowed.
func Unmarshal(data []byte) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "failed to unmarshal config YAML")
	}
	if err := config.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return config, nil
}

// Validate checks configuration consistency.
func (c Config) Validate() error {
	if c.RPC.Endpoint == "" {
		return errors.New("no RPC endpoint")
	}
	if c.RPC.DialTimeout < 0 || c.RPC.RequestTimeout < 0 {
		return errors.New("negative RPC timeout")
	}
	if c.Contract.PollInterval < 0 {
		return fmt.Errorf("negative PollInterval: %s", c.Contract.PollInterval)
	}
	if c.Contract.Timeout < 0 {
		return fmt.Errorf("negative Timeout: %s", c.Contract.Timeout)
	}
	if _, err := zapcore.ParseLevel(c.Logger.LogLevel); err != nil {
		return err
	}
	switch c.Logger.LogEncoding {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown LogEncoding: %s", c.Logger.LogEncoding)
	}
	return nil
}
