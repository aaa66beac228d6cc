/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/evmclient/evm-go/pkg/artifact"
	"github.com/evmclient/evm-go/pkg/config"
	"github.com/evmclient/evm-go/pkg/contract"
	"github.com/evmclient/evm-go/pkg/rpcclient"
	"github.com/evmclient/evm-go/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultTimeout is the default timeout used for RPC requests.
	DefaultTimeout = 10 * time.Second
	// DefaultAwaitableTimeout is the default timeout used for commands that
	// wait for transactions to be mined.
	DefaultAwaitableTimeout = 2 * time.Minute
)

// RPCEndpointFlag is a long flag name for an RPC endpoint. It can be used to
// check for flag presence in the context.
const RPCEndpointFlag = "rpc-endpoint"

// RPC is a set of flags used for RPC connections (endpoint and timeout).
var RPC = []cli.Flag{
	cli.StringFlag{
		Name:  RPCEndpointFlag + ", r",
		Usage: "RPC node address (overrides configuration)",
	},
	cli.DurationFlag{
		Name:  "timeout, s",
		Value: DefaultTimeout,
		Usage: "Timeout for the operation",
	},
}

// Config is a flag for commands that use client configuration file.
var Config = cli.StringFlag{
	Name:  "config, c",
	Usage: "path to the YAML configuration file",
}

// Debug is a flag for commands that allow debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (overrides configuration)",
}

// RPCTrace is a flag enabling RPC requests logging.
var RPCTrace = cli.BoolFlag{
	Name:  "rpc-trace",
	Usage: "log every RPC request at debug level",
}

// Historic is a flag for commands that can perform historic calls.
var Historic = cli.StringFlag{
	Name:  "historic",
	Usage: "Use historic state (block number)",
}

// Sender is a flag overriding the sender account.
var Sender = cli.StringFlag{
	Name:  "from, f",
	Usage: "sender account (node default account if not set)",
}

// Gas is a set of flags overriding transaction gas parameters.
var Gas = []cli.Flag{
	cli.StringFlag{
		Name:  "gas-price",
		Usage: "gas price for transactions (node default if not set)",
	},
	cli.StringFlag{
		Name:  "gas-limit",
		Usage: "gas limit for transactions (node default if not set)",
	},
}

// Artifacts is a flag with Truffle project directories to look for contract
// artifacts in.
var Artifacts = cli.StringSliceFlag{
	Name:  "artifacts-path, p",
	Usage: "Truffle project directory to look for build/contracts/<Name>.json in (can be repeated)",
}

var (
	errNoEndpoint      = errors.New("no RPC endpoint specified, use option '--" + RPCEndpointFlag + "' or '-r'")
	errInvalidHistoric = errors.New("invalid 'historic' parameter, not a block number")
)

// GetTimeoutContext returns a context.Context with the default or a user-set timeout.
func GetTimeoutContext(ctx *cli.Context) (context.Context, func()) {
	dur := ctx.Duration("timeout")
	if dur == 0 {
		dur = DefaultTimeout
	}
	if !ctx.IsSet("timeout") && ctx.Bool("await") {
		dur = DefaultAwaitableTimeout
	}
	return context.WithTimeout(context.Background(), dur)
}

// GetConfigFromContext loads the configuration file if it's given and
// applies command line overrides.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var (
		cfg = config.Default()
		err error
	)
	if path := ctx.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}
	if ep := ctx.String(RPCEndpointFlag); ep != "" {
		cfg.RPC.Endpoint = ep
	}
	if s := ctx.String("from"); s != "" {
		acc, err := util.AddressDecodeString(s)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid sender: %w", err)
		}
		cfg.RPC.DefaultAccount = &acc
	}
	for _, name := range []string{"gas-price", "gas-limit"} {
		s := ctx.String(name)
		if s == "" {
			continue
		}
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid %s: %w", name, err)
		}
		if name == "gas-price" {
			cfg.Contract.GasPrice = &v
		} else {
			cfg.Contract.GasLimit = &v
		}
	}
	if paths := ctx.StringSlice("artifacts-path"); len(paths) != 0 {
		cfg.Artifacts.Paths = paths
	}
	if ctx.Bool("debug") {
		cfg.Logger.LogLevel = "debug"
	}
	return cfg, nil
}

// RPCClient is a client returned by GetRPCClient, it's either HTTP or
// websocket one depending on the endpoint scheme.
type RPCClient interface {
	contract.Client
	Close()
}

// GetRPCClient returns an RPC client instance for the given configuration.
// ws:// and wss:// endpoints are served by a websocket client.
func GetRPCClient(gctx context.Context, cfg config.Config, log *zap.Logger) (RPCClient, cli.ExitCoder) {
	if len(cfg.RPC.Endpoint) == 0 {
		return nil, cli.NewExitError(errNoEndpoint, 1)
	}
	var (
		c    RPCClient
		err  error
		opts = rpcclient.Options{
			DialTimeout:    cfg.RPC.DialTimeout,
			RequestTimeout: cfg.RPC.RequestTimeout,
			DefaultAccount: cfg.RPC.DefaultAccount,
			Logger:         log.Named(RPCLoggerName),
		}
	)
	if strings.HasPrefix(cfg.RPC.Endpoint, "ws://") || strings.HasPrefix(cfg.RPC.Endpoint, "wss://") {
		c, err = rpcclient.NewWS(gctx, cfg.RPC.Endpoint, opts)
	} else {
		c, err = rpcclient.New(gctx, cfg.RPC.Endpoint, opts)
	}
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	return c, nil
}

// GetHistoric parses "--historic" parameter, nil is returned if it's not
// set.
func GetHistoric(ctx *cli.Context) (*uint64, cli.ExitCoder) {
	historic := ctx.String("historic")
	if historic == "" {
		return nil, nil
	}
	index, err := strconv.ParseUint(historic, 0, 64)
	if err != nil {
		return nil, cli.NewExitError(errInvalidHistoric, 1)
	}
	return &index, nil
}

// ContractConfig creates contract binding parameters from the client
// configuration.
func ContractConfig(cfg config.Config, log *zap.Logger) contract.Config {
	cc := contract.Config{
		PollInterval: cfg.Contract.PollInterval,
		Timeout:      cfg.Contract.Timeout,
		Logger:       log,
	}
	if cfg.Contract.GasPrice != nil {
		cc.GasPrice = new(big.Int).SetUint64(*cfg.Contract.GasPrice)
	}
	if cfg.Contract.GasLimit != nil {
		cc.GasLimit = new(big.Int).SetUint64(*cfg.Contract.GasLimit)
	}
	return cc
}

// GetFinder returns artifact finder for the configured paths.
func GetFinder(cfg config.Config) *artifact.Finder {
	return artifact.NewFinder(cfg.Artifacts.Paths...)
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a rotated file for
// logging and returns closer for it.
// RPC client entries are only logged if rpcTrace is set.
func HandleLoggingParams(debug, rpcTrace bool, cfg config.Logger) (*zap.Logger, *zap.AtomicLevel, func() error, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug || rpcTrace {
		level = zapcore.DebugLevel
	}

	ec := zap.NewProductionEncoderConfig()
	ec.EncodeDuration = zapcore.StringDurationEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.LogTimestamp != nil && !*cfg.LogTimestamp {
		ec.TimeKey = ""
	}
	var encoder zapcore.Encoder
	if cfg.LogEncoding == "json" {
		encoder = zapcore.NewJSONEncoder(ec)
	} else {
		encoder = zapcore.NewConsoleEncoder(ec)
	}

	var (
		sink   zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
		closer func() error
	)
	if logPath := cfg.LogPath; logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("could not create dir for logger: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
		}
		sink = zapcore.AddSync(lj)
		closer = lj.Close
	}

	atom := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(encoder, sink, atom)
	if !rpcTrace {
		core = NewFilteringCore(core, SkipRPCTrace)
	}
	return zap.New(core), &atom, closer, nil
}
