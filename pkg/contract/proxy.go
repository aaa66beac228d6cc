package contract

import (
	"context"
	"slices"

	"github.com/evmclient/evm-go/pkg/ethrpc/result"
	"github.com/evmclient/evm-go/pkg/rpcclient/actor"
)

type (
	// CallFunc performs a read-only call of a contract function.
	CallFunc func(args ...any) (*result.Call, error)
	// TransactFunc sends a transaction invoking a contract function.
	TransactFunc func(args ...any) (*actor.PendingTx, error)
	// WaitFunc sends a transaction invoking a contract function and waits
	// for it to be mined.
	WaitFunc func(ctx context.Context, args ...any) (*result.Transaction, error)

	// CallProxy maps contract function names to read-only calls.
	CallProxy map[string]CallFunc
	// TransactProxy maps contract function names to transactions.
	TransactProxy map[string]TransactFunc
	// WaitProxy maps contract function names to awaited transactions.
	WaitProxy map[string]WaitFunc
)

// CallProxy returns read-only calls for every contract function.
func (c *Contract) CallProxy() CallProxy {
	return c.call
}

// TransactProxy returns transaction senders for every contract function.
func (c *Contract) TransactProxy() TransactProxy {
	return c.transact
}

// WaitProxy returns awaited transaction senders for every contract function.
func (c *Contract) WaitProxy() WaitProxy {
	return c.wait
}

// bind builds proxies for the function names from the ABI. Overloads share
// the name and are resolved by the number of arguments on invocation.
func (c *Contract) bind() {
	names := c.ABI.Names()
	c.call = make(CallProxy, len(names))
	c.transact = make(TransactProxy, len(names))
	c.wait = make(WaitProxy, len(names))
	for _, name := range names {
		c.call[name] = func(args ...any) (*result.Call, error) {
			res, err := c.Invoke(context.Background(), ModeCall, name, args...)
			r, _ := res.(*result.Call)
			return r, err
		}
		c.transact[name] = func(args ...any) (*actor.PendingTx, error) {
			res, err := c.Invoke(context.Background(), ModeTransact, name, args...)
			r, _ := res.(*actor.PendingTx)
			return r, err
		}
		c.wait[name] = func(ctx context.Context, args ...any) (*result.Transaction, error) {
			res, err := c.Invoke(ctx, ModeTransactAndWait, name, args...)
			r, _ := res.(*result.Transaction)
			return r, err
		}
	}
}

// Names returns sorted function names.
func (p CallProxy) Names() []string { return keys(p) }

// Names returns sorted function names.
func (p TransactProxy) Names() []string { return keys(p) }

// Names returns sorted function names.
func (p WaitProxy) Names() []string { return keys(p) }

func keys[M ~map[string]V, V any](m M) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}
