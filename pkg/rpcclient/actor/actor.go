/*
Package actor provides a way to change chain state via RPC client.

This layer builds on top of the basic RPC client and [invoker] package, it
simplifies creating and sending transactions to the network (since that's the
only way chain state is changed). Transactions are sent with
eth_sendTransaction, so they're signed by the node on behalf of an account
unlocked there. It's generic enough to be used for any contract that you may
want to invoke and contract-specific functions can build on top of it.
*/
package actor

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/evmclient/evm-go/pkg/ethrpc"
	"github.com/evmclient/evm-go/pkg/manifest"
	"github.com/evmclient/evm-go/pkg/rpcclient/invoker"
	"github.com/evmclient/evm-go/pkg/util"
)

// ErrSubmissionFailed is matched by errors returned when the node accepted
// the transaction request, but returned an empty transaction hash. It
// usually means the sender account is locked.
var ErrSubmissionFailed = errors.New("transaction submission failed")

// RPCActor is an interface required from the RPC client to successfully
// create and send transactions.
type RPCActor interface {
	invoker.RPCInvoke

	SendTransaction(tx ethrpc.TxParams) (string, error)
	EstimateGas(tx ethrpc.TxParams) (uint64, error)
}

// Actor keeps a connection to the RPC endpoint and allows to perform
// state-changing actions on behalf of the sender account. It also provides
// an Invoker interface to perform test calls from the same account.
//
// Actor-specific APIs follow the naming scheme set by Invoker in method
// suffixes. *Call methods operate with function calls and require a contract
// address, a method descriptor and parameters if any. *Deploy methods operate
// with contract code and constructor. Prefixes denote the action to be
// performed, "Make" prefix is used for methods that create transactions,
// "Send" prefix is used by methods that directly transmit created
// transactions to the RPC server and "Estimate" returns the amount of gas
// needed.
type Actor struct {
	invoker.Invoker

	client RPCActor
	sender util.Address
}

// TxOptions are optional transaction fields, nil values are omitted from the
// request, so the node uses its defaults.
type TxOptions struct {
	GasPrice *big.Int
	GasLimit *big.Int
	Value    *big.Int
}

// PendingTx is a transaction accepted by the node.
type PendingTx struct {
	Hash   util.Hash
	Sender util.Address
}

// SubmissionError is returned when the node replies with an empty
// transaction hash. It matches ErrSubmissionFailed.
type SubmissionError struct {
	// Action is a short description of what was attempted ("deploy",
	// "send transaction").
	Action string
	Sender util.Address
	// Hash is the hash returned by the node as is.
	Hash string
}

// Error implements the error interface.
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("Failed to %s, did you unlock %s account? Transaction hash: %s", e.Action, e.Sender, e.Hash)
}

// Is makes SubmissionError match ErrSubmissionFailed.
func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmissionFailed
}

// New creates an Actor instance using the specified RPC interface and the
// sender account. Every transaction created by this Actor will be sent from
// this account.
func New(ra RPCActor, sender util.Address) *Actor {
	return &Actor{
		Invoker: *invoker.New(ra, sender),
		client:  ra,
		sender:  sender,
	}
}

// MakeCall creates a transaction that calls the given method of the given
// contract with the given parameters.
func (a *Actor) MakeCall(contract util.Address, method *manifest.Method, opts TxOptions, params ...any) (ethrpc.TxParams, error) {
	c, err := method.Pack(params...)
	if err != nil {
		return ethrpc.TxParams{}, fmt.Errorf("%s: %w", method.Signature(), err)
	}
	tx := a.makeTx(c.Bytes(), opts)
	tx.To = &contract
	return tx, nil
}

// MakeDeploy creates a contract creation transaction: its data is the code
// followed by the encoded constructor arguments. ctor can be nil for
// contracts without constructor, then no parameters can be passed.
func (a *Actor) MakeDeploy(code []byte, ctor *manifest.Method, opts TxOptions, params ...any) (ethrpc.TxParams, error) {
	var args []byte
	if ctor != nil {
		var err error
		args, err = ctor.EncodeInputs(params...)
		if err != nil {
			return ethrpc.TxParams{}, fmt.Errorf("constructor: %w", err)
		}
	} else if len(params) != 0 {
		return ethrpc.TxParams{}, errors.New("no constructor to pass parameters to")
	}
	d := make([]byte, 0, len(code)+len(args))
	d = append(append(d, code...), args...)
	return a.makeTx(d, opts), nil
}

func (a *Actor) makeTx(d []byte, opts TxOptions) ethrpc.TxParams {
	return ethrpc.TxParams{
		From:     a.sender,
		Data:     d,
		GasPrice: ethrpc.Quantity(opts.GasPrice),
		Gas:      ethrpc.Quantity(opts.GasLimit),
		Value:    ethrpc.Quantity(opts.Value),
	}
}

// SendCall creates and sends a transaction that calls the given method of the
// given contract with the given parameters.
func (a *Actor) SendCall(contract util.Address, method *manifest.Method, opts TxOptions, params ...any) (*PendingTx, error) {
	tx, err := a.MakeCall(contract, method, opts, params...)
	if err != nil {
		return nil, err
	}
	return a.send(tx, "send transaction")
}

// SendDeploy creates and sends a contract creation transaction.
func (a *Actor) SendDeploy(code []byte, ctor *manifest.Method, opts TxOptions, params ...any) (*PendingTx, error) {
	tx, err := a.MakeDeploy(code, ctor, opts, params...)
	if err != nil {
		return nil, err
	}
	return a.send(tx, "deploy")
}

// Send sends the given transaction to the network.
func (a *Actor) Send(tx ethrpc.TxParams) (*PendingTx, error) {
	return a.send(tx, "send transaction")
}

func (a *Actor) send(tx ethrpc.TxParams, action string) (*PendingTx, error) {
	raw, err := a.client.SendTransaction(tx)
	if err != nil {
		return nil, err
	}
	if isEmptyHash(raw) {
		return nil, &SubmissionError{Action: action, Sender: tx.From, Hash: raw}
	}
	h, err := util.HashDecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction hash %q: %w", raw, err)
	}
	return &PendingTx{Hash: h, Sender: tx.From}, nil
}

// isEmptyHash checks for "", "0x" and all-zero hashes.
func isEmptyHash(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strings.Trim(s, "0") == ""
}

// EstimateCall returns the amount of gas needed to perform the call.
func (a *Actor) EstimateCall(contract util.Address, method *manifest.Method, opts TxOptions, params ...any) (uint64, error) {
	tx, err := a.MakeCall(contract, method, opts, params...)
	if err != nil {
		return 0, err
	}
	return a.client.EstimateGas(tx)
}

// EstimateDeploy returns the amount of gas needed to deploy the contract.
func (a *Actor) EstimateDeploy(code []byte, ctor *manifest.Method, opts TxOptions, params ...any) (uint64, error) {
	tx, err := a.MakeDeploy(code, ctor, opts, params...)
	if err != nil {
		return 0, err
	}
	return a.client.EstimateGas(tx)
}
