package smartcontract

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/evmclient/evm-go/cli/cmdargs"
	"github.com/evmclient/evm-go/cli/flags"
	"github.com/evmclient/evm-go/cli/options"
	"github.com/evmclient/evm-go/pkg/abi"
	"github.com/evmclient/evm-go/pkg/artifact"
	"github.com/evmclient/evm-go/pkg/config"
	"github.com/evmclient/evm-go/pkg/contract"
	"github.com/evmclient/evm-go/pkg/manifest"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var (
	errNoSignature  = errors.New("no function signature specified")
	errNoMethod     = errors.New("no method specified")
	errNoData       = errors.New("no data to decode specified")
	errNoTypes      = errors.New("no output types specified, use --types")
	errNoContract   = errors.New("no contract specified, use --name or --abi")
	errBothContract = errors.New("--name conflicts with --abi, use one of them")
)

var (
	nameFlag = cli.StringFlag{
		Name:  "name, n",
		Usage: "contract name to look up Truffle artifact for (see --artifacts-path)",
	}
	abiFlag = cli.StringFlag{
		Name:  "abi, a",
		Usage: "path to the contract ABI JSON file",
	}
	codeFlag = cli.StringFlag{
		Name:  "code",
		Usage: "path to the file with hex-encoded contract code (for deployment)",
	}
	addressFlag = flags.AddressFlag{
		Name:  "address",
		Usage: "contract address (taken from the artifact if not set)",
	}
	awaitFlag = cli.BoolFlag{
		Name:  "await",
		Usage: "wait for the transaction to be mined",
	}
)

var argsDoc = `Arguments are given after the method name (deploy takes constructor
   arguments only).

` + cmdargs.ParamsParsingDoc

// NewCommands returns 'contract' command.
func NewCommands() []cli.Command {
	netFlags := []cli.Flag{options.Config, options.Debug, options.RPCTrace, options.Sender, options.Artifacts,
		nameFlag, abiFlag, addressFlag}
	netFlags = append(netFlags, options.RPC...)
	txFlags := append([]cli.Flag{awaitFlag}, options.Gas...)
	txFlags = append(txFlags, netFlags...)
	deployFlags := append([]cli.Flag{codeFlag}, txFlags...)
	estimateFlags := append([]cli.Flag{codeFlag, cli.BoolFlag{
		Name:  "deploy",
		Usage: "estimate deployment instead of a function invocation",
	}}, options.Gas...)
	estimateFlags = append(estimateFlags, netFlags...)
	callFlags := append([]cli.Flag{options.Historic}, netFlags...)

	return []cli.Command{{
		Name:  "contract",
		Usage: "encode, call, send and deploy EVM contracts",
		Subcommands: []cli.Command{
			{
				Name:      "selector",
				Usage:     "print function selector (or event topic)",
				UsageText: "evm-go contract selector [--event] <signature>",
				Action:    printSelector,
				Flags: []cli.Flag{cli.BoolFlag{
					Name:  "event, e",
					Usage: "print full 32-byte event topic",
				}},
			},
			{
				Name:      "encode",
				Usage:     "encode function call data",
				UsageText: "evm-go contract encode [--no-selector] <signature> [args...]",
				Description: `Encodes function call with the given arguments. Integers can be
   given in decimal or 0x-prefixed hex, bytes and addresses in hex, arrays
   as JSON arrays, for example:

     evm-go contract encode 'sam(bytes,bool,uint256[])' 0x64617665 true '[1,2,3]'
`,
				Action: encode,
				Flags: []cli.Flag{cli.BoolFlag{
					Name:  "no-selector",
					Usage: "encode arguments only (for constructors)",
				}},
			},
			{
				Name:      "decode",
				Usage:     "decode returned data",
				UsageText: "evm-go contract decode --types <type,...> <hex>",
				Action:    decode,
				Flags: flags.MarkRequired([]cli.Flag{cli.StringFlag{
					Name:  "types, t",
					Usage: "comma-separated list of output types",
				}}, "types, t"),
			},
			{
				Name:      "methods",
				Usage:     "list contract functions",
				UsageText: "evm-go contract methods --name <Name> | --abi <file>",
				Action:    listMethods,
				Flags:     []cli.Flag{options.Artifacts, nameFlag, abiFlag},
			},
			{
				Name:        "call",
				Usage:       "perform read-only function call",
				UsageText:   "evm-go contract call -r endpoint --address <address> --name <Name> | --abi <file> [--historic <block>] <method> [args...]",
				Description: argsDoc,
				Action:      call,
				Flags:       callFlags,
			},
			{
				Name:        "send",
				Usage:       "send function invocation transaction",
				UsageText:   "evm-go contract send -r endpoint --address <address> --name <Name> | --abi <file> [--await] [--gas-price <n>] [--gas-limit <n>] <method> [args...]",
				Description: argsDoc,
				Action:      send,
				Flags:       txFlags,
			},
			{
				Name:        "deploy",
				Usage:       "deploy contract",
				UsageText:   "evm-go contract deploy -r endpoint --name <Name> | --abi <file> --code <file> [--await] [args...]",
				Description: argsDoc,
				Action:      deploy,
				Flags:       deployFlags,
			},
			{
				Name:        "estimate",
				Usage:       "estimate gas needed for function invocation or deployment",
				UsageText:   "evm-go contract estimate -r endpoint [--deploy] --name <Name> | --abi <file> [<method>] [args...]",
				Description: argsDoc,
				Action:      estimate,
				Flags:       estimateFlags,
			},
		},
	}}
}

func printSelector(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.NewExitError(errNoSignature, 1)
	}
	sig := ctx.Args().First()
	if ctx.Bool("event") {
		id, err := abi.EventID(sig)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Fprintln(ctx.App.Writer, id.String())
		return nil
	}
	sel, err := abi.Selector(sig)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, "0x"+hex.EncodeToString(sel[:]))
	return nil
}

func encode(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.NewExitError(errNoSignature, 1)
	}
	sig := ctx.Args().First()
	_, types, err := abi.ParseSignature(sig)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	values, err := cmdargs.ParseParams(types, ctx.Args().Tail())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	var data []byte
	if ctx.Bool("no-selector") {
		data, err = abi.Encode(types, values)
	} else {
		var c abi.EncodedCall
		c, err = abi.Pack(sig, values...)
		data = c.Bytes()
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, "0x"+hex.EncodeToString(data))
	return nil
}

func decode(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.NewExitError(errNoData, 1)
	}
	if ctx.String("types") == "" {
		return cli.NewExitError(errNoTypes, 1)
	}
	types, err := abi.ParseTypes(strings.Split(ctx.String("types"), ",")...)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	data, err := decodeHex(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	values, err := abi.DecodeOutput(types, data)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	printValues(ctx, values)
	return nil
}

func listMethods(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	a, err := readABI(ctx, artifact.NewFinder(ctx.StringSlice("artifacts-path")...))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if ctor := a.Constructor(); ctor != nil {
		fmt.Fprintf(ctx.App.Writer, "constructor%s\n", strings.TrimPrefix(ctor.Signature(), ctor.Name))
	}
	for i := range a.Methods {
		m := &a.Methods[i]
		kind := "call"
		if m.MutatesState() {
			kind = "send"
		}
		fmt.Fprintf(ctx.App.Writer, "%s 0x%s %s", kind, hex.EncodeToString(selector(m)), m.Signature())
		if len(m.Outputs) != 0 {
			fmt.Fprintf(ctx.App.Writer, " returns (%s)", strings.TrimSuffix(strings.TrimPrefix(abi.Signature("", m.Outputs.Types()), "("), ")"))
		}
		fmt.Fprintln(ctx.App.Writer)
	}
	return nil
}

func selector(m *manifest.Method) []byte {
	sel := m.Selector()
	return sel[:]
}

func call(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.NewExitError(errNoMethod, 1)
	}
	height, exitErr := options.GetHistoric(ctx)
	if exitErr != nil {
		return exitErr
	}
	return withContract(ctx, func(ct *contract.Contract, _ *zap.Logger) error {
		if height != nil {
			ct = ct.AtBlock(*height)
		}
		method, args := ctx.Args().First(), ctx.Args().Tail()
		values, err := methodArgs(ct.ABI, method, args)
		if err != nil {
			return err
		}
		res, err := ct.Call(method, values...)
		if err != nil {
			return err
		}
		printValues(ctx, res.Formatted)
		return nil
	})
}

func send(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.NewExitError(errNoMethod, 1)
	}
	return withContract(ctx, func(ct *contract.Contract, log *zap.Logger) error {
		method, args := ctx.Args().First(), ctx.Args().Tail()
		values, err := methodArgs(ct.ABI, method, args)
		if err != nil {
			return err
		}
		if !ctx.Bool("await") {
			ptx, err := ct.Transact(method, values...)
			if err != nil {
				return err
			}
			fmt.Fprintln(ctx.App.Writer, ptx.Hash.String())
			return nil
		}
		gctx, cancel := options.GetTimeoutContext(ctx)
		defer cancel()
		tx, err := ct.TransactAndWait(gctx, method, values...)
		if err != nil {
			return err
		}
		log.Info("transaction mined", zap.Stringer("hash", tx.Hash), zap.Stringer("block", tx.BlockHash))
		fmt.Fprintln(ctx.App.Writer, tx.Hash.String())
		return nil
	})
}

func deploy(ctx *cli.Context) error {
	return withContract(ctx, func(ct *contract.Contract, _ *zap.Logger) error {
		values, err := ctorArgs(ct.ABI, ctx.Args())
		if err != nil {
			return err
		}
		if !ctx.Bool("await") {
			ptx, err := ct.Deploy(values...)
			if err != nil {
				return err
			}
			fmt.Fprintln(ctx.App.Writer, ptx.Hash.String())
			return nil
		}
		gctx, cancel := options.GetTimeoutContext(ctx)
		defer cancel()
		addr, err := ct.DeployAndWait(gctx, values...)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, addr.String())
		return nil
	})
}

func estimate(ctx *cli.Context) error {
	if !ctx.Bool("deploy") && ctx.NArg() == 0 {
		return cli.NewExitError(errNoMethod, 1)
	}
	return withContract(ctx, func(ct *contract.Contract, _ *zap.Logger) error {
		var (
			gas uint64
			err error
		)
		if ctx.Bool("deploy") {
			var values []any
			values, err = ctorArgs(ct.ABI, ctx.Args())
			if err != nil {
				return err
			}
			gas, err = ct.Estimate(values...)
		} else {
			method, args := ctx.Args().First(), ctx.Args().Tail()
			var values []any
			values, err = methodArgs(ct.ABI, method, args)
			if err != nil {
				return err
			}
			gas, err = ct.EstimateCall(method, values...)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, gas)
		return nil
	})
}

// withContract sets up logging, RPC client and contract binding for f.
// Errors returned by f are converted into exit errors.
func withContract(ctx *cli.Context, f func(*contract.Contract, *zap.Logger) error) error {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, _, closer, err := options.HandleLoggingParams(ctx.Bool("debug"), ctx.Bool("rpc-trace"), cfg.Logger)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() {
		_ = log.Sync()
		if closer != nil {
			_ = closer()
		}
	}()

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()
	c, exitErr := options.GetRPCClient(gctx, cfg, log)
	if exitErr != nil {
		return exitErr
	}
	defer c.Close()

	ct, err := getContract(ctx, c, cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := f(ct, log); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func getContract(ctx *cli.Context, c contract.Client, cfg config.Config, log *zap.Logger) (*contract.Contract, error) {
	cc := options.ContractConfig(cfg, log)
	if addr := flags.GetAddress(ctx, "address"); addr != nil {
		cc.Address = addr
	}
	if name := ctx.String("name"); name != "" {
		if ctx.String("abi") != "" {
			return nil, errBothContract
		}
		return contract.NewFromArtifact(name, options.GetFinder(cfg), c, cc)
	}
	a, err := readABI(ctx, nil)
	if err != nil {
		return nil, err
	}
	cc.ABI = a
	if path := ctx.String("code"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cc.Code, err = decodeHex(string(data))
		if err != nil {
			return nil, fmt.Errorf("invalid contract code: %w", err)
		}
	}
	return contract.New(c, cc)
}

// readABI reads ABI from the file given with --abi flag or from the artifact
// named with --name flag.
func readABI(ctx *cli.Context, f *artifact.Finder) (*manifest.ABI, error) {
	if name := ctx.String("name"); name != "" && f != nil {
		if ctx.String("abi") != "" {
			return nil, errBothContract
		}
		a, err := f.Find(name)
		if err != nil {
			return nil, err
		}
		return a.ABI, nil
	}
	path := ctx.String("abi")
	if path == "" {
		return nil, errNoContract
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read ABI file: %w", err)
	}
	return manifest.Parse(data)
}

// methodArgs converts command line arguments into values of the method with
// the given name. Unknown methods and wrong argument counts are left for the
// contract to report.
func methodArgs(a *manifest.ABI, name string, args []string) ([]any, error) {
	n, err := cmdargs.CountParams(args)
	if err != nil {
		return nil, err
	}
	m := a.GetMethod(name, n)
	if m == nil {
		return make([]any, n), nil
	}
	return cmdargs.ParseParams(m.Inputs.Types(), args)
}

func ctorArgs(a *manifest.ABI, args []string) ([]any, error) {
	n, err := cmdargs.CountParams(args)
	if err != nil {
		return nil, err
	}
	ctor := a.Constructor()
	if ctor == nil || len(ctor.Inputs) != n {
		return make([]any, n), nil
	}
	return cmdargs.ParseParams(ctor.Inputs.Types(), args)
}

func printValues(ctx *cli.Context, values []any) {
	for _, v := range values {
		fmt.Fprintln(ctx.App.Writer, abi.FormatValue(v))
	}
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}
