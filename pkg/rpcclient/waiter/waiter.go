/*
Package waiter provides a way to wait for transactions sent to the node to be
mined. Nodes don't notify clients about that via plain JSON-RPC, so the only
way is to poll transaction or receipt data until it's available.
*/
package waiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evmclient/evm-go/pkg/ethrpc/result"
	"github.com/evmclient/evm-go/pkg/util"
)

// DefaultPollInterval is used by PollingBased if no (or negative) interval
// is configured.
const DefaultPollInterval = time.Second

var (
	// ErrContextDone is returned when Waiter context has been done in the middle
	// of transaction awaiting process and no result was received yet.
	ErrContextDone = errors.New("waiter context done")
	// ErrTimeout is returned when configured Timeout has passed and the
	// transaction is still not mined.
	ErrTimeout = errors.New("transaction awaiting timeout")
)

type (
	// Waiter is an interface providing transaction awaiting functionality.
	Waiter interface {
		// WaitTx waits until the transaction is included into a block and
		// returns its data (with BlockHash set).
		WaitTx(ctx context.Context, h util.Hash) (*result.Transaction, error)
		// WaitReceipt waits until the transaction receipt is available.
		WaitReceipt(ctx context.Context, h util.Hash) (*result.Receipt, error)
	}
	// RPCPollingBased is an interface that enables transaction awaiting
	// functionality based on periodical transaction and receipt polls. Both
	// methods should return nil result with no error for unknown or pending
	// transactions.
	RPCPollingBased interface {
		// Context should return the RPC client context to be able to gracefully
		// shut down all running processes (if so).
		Context() context.Context
		GetTransactionByHash(hash util.Hash) (*result.Transaction, error)
		GetTransactionReceipt(hash util.Hash) (*result.Receipt, error)
	}
)

// PollConfig is a configuration for PollingBased waiter.
type PollConfig struct {
	// PollInterval is a time interval between subsequent polls. Zero means
	// polling without pauses, negative values are replaced with
	// DefaultPollInterval.
	PollInterval time.Duration
	// Timeout limits the overall awaiting time if positive.
	Timeout time.Duration
	// RetryCount is the number of subsequent failed polls tolerated before
	// an error is returned from WaitTx or WaitReceipt. Zero means the first
	// failure is returned.
	RetryCount int
}

// PollingBased is a polling-based Waiter.
type PollingBased struct {
	polling RPCPollingBased
	config  PollConfig
}

// NewPollingBased creates an instance of Waiter supporting poll-based
// transaction awaiting with DefaultPollInterval and no timeout.
func NewPollingBased(waiter RPCPollingBased) *PollingBased {
	return NewCustomPollingBased(waiter, PollConfig{PollInterval: DefaultPollInterval})
}

// NewCustomPollingBased creates an instance of Waiter supporting poll-based
// transaction awaiting. Poll options may be specified via config parameter.
func NewCustomPollingBased(waiter RPCPollingBased, config PollConfig) *PollingBased {
	if config.PollInterval < 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.RetryCount < 0 {
		config.RetryCount = 0
	}
	return &PollingBased{
		polling: waiter,
		config:  config,
	}
}

// Config returns waiter configuration.
func (w *PollingBased) Config() PollConfig {
	return w.config
}

// WaitTx implements Waiter interface.
func (w *PollingBased) WaitTx(ctx context.Context, h util.Hash) (*result.Transaction, error) {
	return poll(ctx, w, "transaction", func() (*result.Transaction, bool, error) {
		tx, err := w.polling.GetTransactionByHash(h)
		if err != nil {
			return nil, false, err
		}
		return tx, tx != nil && !tx.IsPending(), nil
	})
}

// WaitReceipt implements Waiter interface.
func (w *PollingBased) WaitReceipt(ctx context.Context, h util.Hash) (*result.Receipt, error) {
	return poll(ctx, w, "receipt", func() (*result.Receipt, bool, error) {
		r, err := w.polling.GetTransactionReceipt(h)
		if err != nil {
			return nil, false, err
		}
		return r, r != nil && !r.IsPending(), nil
	})
}

// poll calls check immediately and then every PollInterval until it reports
// completion, fails more than RetryCount times in a row or awaiting is
// interrupted.
func poll[T any](ctx context.Context, w *PollingBased, what string, check func() (T, bool, error)) (T, error) {
	var (
		nothing       T
		failedAttempt int
		timeout       <-chan time.Time
	)
	if w.config.Timeout > 0 {
		t := time.NewTimer(w.config.Timeout)
		defer t.Stop()
		timeout = t.C
	}
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			res, done, err := check()
			if err != nil {
				failedAttempt++
				if failedAttempt > w.config.RetryCount {
					return nothing, fmt.Errorf("failed to retrieve %s: %w", what, err)
				}
			} else {
				failedAttempt = 0
				if done {
					return res, nil
				}
			}
			timer.Reset(w.config.PollInterval)
		case <-timeout:
			return nothing, fmt.Errorf("%w after %s", ErrTimeout, w.config.Timeout)
		case <-w.polling.Context().Done():
			return nothing, fmt.Errorf("%w: %w", ErrContextDone, w.polling.Context().Err())
		case <-ctx.Done():
			return nothing, fmt.Errorf("%w: %w", ErrContextDone, ctx.Err())
		}
	}
}
