package contract

import (
	"context"
	"fmt"

	"github.com/evmclient/evm-go/pkg/ethrpc/result"
	"github.com/evmclient/evm-go/pkg/rpcclient/actor"
	"github.com/evmclient/evm-go/pkg/rpcclient/invoker"
	"go.uber.org/zap"
)

// Mode is a function invocation mode.
type Mode byte

// Invocation modes.
const (
	// ModeCall performs a read-only eth_call.
	ModeCall Mode = iota
	// ModeTransact sends a transaction without waiting for it to be mined.
	ModeTransact
	// ModeTransactAndWait sends a transaction and waits for it to be mined.
	ModeTransactAndWait
	// ModeEstimate estimates the amount of gas needed for the transaction.
	ModeEstimate
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeCall:
		return "call"
	case ModeTransact:
		return "transact"
	case ModeTransactAndWait:
		return "transact_and_wait"
	case ModeEstimate:
		return "estimate"
	default:
		return fmt.Sprintf("unknown(%d)", byte(m))
	}
}

// Invoke invokes the function in the given mode. The result type depends on
// the mode: *result.Call for ModeCall, *actor.PendingTx for ModeTransact,
// *result.Transaction for ModeTransactAndWait and uint64 for ModeEstimate.
// ctx is only used by ModeTransactAndWait.
func (c *Contract) Invoke(ctx context.Context, mode Mode, name string, args ...any) (any, error) {
	switch mode {
	case ModeCall:
		return c.Call(name, args...)
	case ModeTransact:
		return c.Transact(name, args...)
	case ModeTransactAndWait:
		return c.TransactAndWait(ctx, name, args...)
	case ModeEstimate:
		return c.EstimateCall(name, args...)
	default:
		return nil, fmt.Errorf("invalid invocation mode %s", mode)
	}
}

// Call performs a read-only call of the function against the latest block
// (or the one set with AtBlock) and decodes returned data.
func (c *Contract) Call(name string, args ...any) (*result.Call, error) {
	m, addr, sender, err := c.prepare(name, len(args))
	if err != nil {
		return nil, err
	}
	var inv *invoker.Invoker
	if c.height != nil {
		inv = invoker.NewHistoricAtHeight(*c.height, c.client, sender)
	} else {
		inv = invoker.New(c.client, sender)
	}
	return inv.Call(addr, m, args...)
}

// Transact sends a transaction invoking the function.
func (c *Contract) Transact(name string, args ...any) (*actor.PendingTx, error) {
	m, addr, sender, err := c.prepare(name, len(args))
	if err != nil {
		return nil, err
	}
	ptx, err := actor.New(c.client, sender).SendCall(addr, m, c.txOptions(), args...)
	if err != nil {
		return nil, err
	}
	c.log.Debug("transaction sent", zap.String("contract", c.Name),
		zap.String("method", m.Signature()), zap.Stringer("hash", ptx.Hash))
	return ptx, nil
}

// TransactAndWait sends a transaction invoking the function and waits for
// it to be included into a block polling the node every PollInterval.
func (c *Contract) TransactAndWait(ctx context.Context, name string, args ...any) (*result.Transaction, error) {
	ptx, err := c.Transact(name, args...)
	if err != nil {
		return nil, err
	}
	return c.newWaiter().WaitTx(ctx, ptx.Hash)
}

// EstimateCall returns the amount of gas needed for the function invocation
// transaction.
func (c *Contract) EstimateCall(name string, args ...any) (uint64, error) {
	m, addr, sender, err := c.prepare(name, len(args))
	if err != nil {
		return 0, err
	}
	return actor.New(c.client, sender).EstimateCall(addr, m, c.txOptions(), args...)
}
