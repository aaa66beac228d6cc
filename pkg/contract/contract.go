/*
Package contract provides a high-level binding for a deployed (or to be
deployed) contract. It combines the ABI descriptor table with an RPC client
and allows to invoke contract functions by name in one of three modes: a
read-only call, a transaction and a transaction that is awaited to be mined.

Every function declared in the ABI is available via proxies built when the
contract is bound:

	greeter, err := contract.New(c, contract.Config{ABI: abi, Address: &addr})
	...
	res, err := greeter.CallProxy()["greet"]()
	s, err := unwrap.String(res, err)

All modes can also be reached via the generic Invoke method.
*/
package contract

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/evmclient/evm-go/pkg/artifact"
	"github.com/evmclient/evm-go/pkg/manifest"
	"github.com/evmclient/evm-go/pkg/rpcclient/actor"
	"github.com/evmclient/evm-go/pkg/rpcclient/invoker"
	"github.com/evmclient/evm-go/pkg/rpcclient/waiter"
	"github.com/evmclient/evm-go/pkg/util"
	"go.uber.org/zap"
)

var (
	// ErrArgumentCountMismatch is returned when the number of arguments
	// doesn't match the number of function (or constructor) inputs. No
	// requests are made to the node in this case.
	ErrArgumentCountMismatch = errors.New("wrong number of arguments")
	// ErrUnknownMethod is returned for functions not declared in the ABI.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrNoConstructor is returned when deployment arguments are given for a
	// contract without constructor.
	ErrNoConstructor = errors.New("contract has no constructor")
	// ErrNoAddress is returned when a function is invoked on a contract that
	// is not yet deployed.
	ErrNoAddress = errors.New("contract address is not set")
	// ErrNoCode is returned on deployment of a contract without code.
	ErrNoCode = errors.New("contract code is not set")
)

// Client is the set of RPC methods used by Contract, it's implemented by
// rpcclient.Client and rpcclient.WSClient.
type Client interface {
	actor.RPCActor
	invoker.RPCInvokeHistoric
	waiter.RPCPollingBased

	DefaultAccount() (util.Address, error)
	NetVersion() (string, error)
}

// Config contains contract binding parameters. Only ABI is mandatory.
type Config struct {
	Name string
	// Code is the contract creation code, it's only needed for deployment.
	Code []byte
	ABI  *manifest.ABI
	// Address is the address of the deployed contract.
	Address *util.Address
	// Sender overrides the client default account.
	Sender *util.Address

	GasPrice *big.Int
	GasLimit *big.Int
	// PollInterval is used when awaiting transactions, DefaultPollInterval
	// is used if it's not positive. Contract.PollInterval can be set to zero
	// after creation for continuous polling.
	PollInterval time.Duration
	// Timeout limits transaction awaiting if positive.
	Timeout time.Duration

	Logger *zap.Logger
}

// Contract is a contract binding. Gas settings can be changed between
// invocations, but they're not synchronized, so it's up to the user to not
// change them while invocations are in progress.
type Contract struct {
	Name    string
	Address *util.Address
	Code    []byte
	ABI     *manifest.ABI

	// GasPrice and GasLimit are added to transactions if not nil.
	GasPrice *big.Int
	GasLimit *big.Int

	PollInterval time.Duration
	Timeout      time.Duration

	client Client
	sender *util.Address
	height *uint64
	log    *zap.Logger

	call     CallProxy
	transact TransactProxy
	wait     WaitProxy
}

// DefaultPollInterval is the default transaction awaiting poll interval.
const DefaultPollInterval = waiter.DefaultPollInterval

// New binds the contract to the given client.
func New(c Client, cfg Config) (*Contract, error) {
	if cfg.ABI == nil {
		return nil, errors.New("no ABI")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	ct := &Contract{
		Name:         cfg.Name,
		Address:      cfg.Address,
		Code:         cfg.Code,
		ABI:          cfg.ABI,
		GasPrice:     cfg.GasPrice,
		GasLimit:     cfg.GasLimit,
		PollInterval: cfg.PollInterval,
		Timeout:      cfg.Timeout,
		client:       c,
		sender:       cfg.Sender,
		log:          cfg.Logger,
	}
	ct.bind()
	return ct, nil
}

// NewFromArtifact binds the contract using code and ABI from the artifact
// with the given name. Code and ABI of cfg are ignored. If cfg.Address is not
// set, the address is taken from the artifact deployment data for the
// network the client is connected to (if there is any).
func NewFromArtifact(name string, f *artifact.Finder, c Client, cfg Config) (*Contract, error) {
	a, err := f.Find(name)
	if err != nil {
		return nil, err
	}
	cfg.Name = name
	cfg.Code = a.Bytecode
	cfg.ABI = a.ABI
	if cfg.Address == nil {
		netVer, err := c.NetVersion()
		if err != nil {
			return nil, fmt.Errorf("failed to get network version: %w", err)
		}
		if addr, ok := a.Address(netVer); ok {
			cfg.Address = &addr
		}
	}
	return New(c, cfg)
}

// AtBlock returns a copy of the contract performing calls against the state
// of the given block. Transactions are not affected.
func (c *Contract) AtBlock(height uint64) *Contract {
	cp := *c
	cp.height = &height
	cp.bind()
	return &cp
}

// Sender returns the account used to invoke the contract.
func (c *Contract) Sender() (util.Address, error) {
	if c.sender != nil {
		return *c.sender, nil
	}
	return c.client.DefaultAccount()
}

// method resolves the function by name and the number of arguments.
func (c *Contract) method(name string, argc int) (*manifest.Method, error) {
	if m := c.ABI.GetMethod(name, argc); m != nil {
		return m, nil
	}
	if c.ABI.GetMethod(name, -1) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return nil, fmt.Errorf("%w: %s doesn't accept %d", ErrArgumentCountMismatch, name, argc)
}

// prepare resolves everything needed for a function invocation.
func (c *Contract) prepare(name string, argc int) (*manifest.Method, util.Address, util.Address, error) {
	m, err := c.method(name, argc)
	if err != nil {
		return nil, util.Address{}, util.Address{}, err
	}
	if c.Address == nil {
		return nil, util.Address{}, util.Address{}, ErrNoAddress
	}
	sender, err := c.Sender()
	if err != nil {
		return nil, util.Address{}, util.Address{}, err
	}
	return m, *c.Address, sender, nil
}

func (c *Contract) txOptions() actor.TxOptions {
	return actor.TxOptions{
		GasPrice: c.GasPrice,
		GasLimit: c.GasLimit,
	}
}

func (c *Contract) newWaiter() *waiter.PollingBased {
	return waiter.NewCustomPollingBased(c.client, waiter.PollConfig{
		PollInterval: c.PollInterval,
		Timeout:      c.Timeout,
	})
}
