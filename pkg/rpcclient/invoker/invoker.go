/*
Package invoker provides a convenient wrapper to perform read-only contract
calls via eth_call. Calls don't produce transactions and don't change the
chain state, they can be performed against the latest state or against the
state of some given block.
*/
package invoker

import (
	"fmt"

	"github.com/evmclient/evm-go/pkg/ethrpc"
	"github.com/evmclient/evm-go/pkg/ethrpc/result"
	"github.com/evmclient/evm-go/pkg/manifest"
	"github.com/evmclient/evm-go/pkg/util"
)

// RPCInvoke is a set of RPC methods needed to execute things at the current
// blockchain height.
type RPCInvoke interface {
	Call(tx ethrpc.TxParams) ([]byte, error)
}

// RPCInvokeHistoric is a set of RPC methods needed to execute things at some
// fixed point in blockchain's life.
type RPCInvokeHistoric interface {
	CallAtHeight(height uint64, tx ethrpc.TxParams) ([]byte, error)
}

// Invoker allows to test-execute things using RPC client on behalf of some
// sender. It decodes returned values using method descriptors, but doesn't
// interpret them in any other way, that's left for upper (contract) layer
// to deal with.
type Invoker struct {
	client RPCInvoke
	sender util.Address
}

type historicConverter struct {
	client RPCInvokeHistoric
	height *uint64
}

// New creates an Invoker to test-execute things at the current blockchain height.
func New(client RPCInvoke, sender util.Address) *Invoker {
	return &Invoker{client, sender}
}

// NewHistoricAtHeight creates an Invoker to test-execute things at some given height.
func NewHistoricAtHeight(height uint64, client RPCInvokeHistoric, sender util.Address) *Invoker {
	return New(&historicConverter{
		client: client,
		height: &height,
	}, sender)
}

func (h *historicConverter) Call(tx ethrpc.TxParams) ([]byte, error) {
	if h.height != nil {
		return h.client.CallAtHeight(*h.height, tx)
	}
	panic("uninitialized historicConverter")
}

// Sender returns the account calls are performed from.
func (v *Invoker) Sender() util.Address {
	return v.sender
}

// Call invokes the method of the contract with the given parameters and
// returns the data sent, the data returned and the decoded output values.
func (v *Invoker) Call(contract util.Address, method *manifest.Method, params ...any) (*result.Call, error) {
	c, err := method.Pack(params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method.Signature(), err)
	}
	res, err := v.Run(contract, c.Bytes())
	if err != nil {
		return nil, err
	}
	res.Formatted, err = method.Unpack(res.Raw)
	if err != nil {
		return nil, fmt.Errorf("%s result: %w", method.Signature(), err)
	}
	return res, nil
}

// Run performs eth_call with the given call data as is, no decoding is
// performed.
func (v *Invoker) Run(contract util.Address, data []byte) (*result.Call, error) {
	raw, err := v.client.Call(ethrpc.TxParams{
		To:   &contract,
		From: v.sender,
		Data: data,
	})
	if err != nil {
		return nil, err
	}
	return &result.Call{Data: data, Raw: raw}, nil
}
