package rpcclient

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/evmclient/evm-go/pkg/ethrpc"
	"github.com/evmclient/evm-go/pkg/ethrpc/result"
	"github.com/evmclient/evm-go/pkg/util"
)

// Call performs eth_call against the latest chain state and returns the data
// produced by the contract.
func (c *Client) Call(tx ethrpc.TxParams) ([]byte, error) {
	return c.call(tx, nil)
}

// CallAtHeight performs eth_call against the state of the given block.
func (c *Client) CallAtHeight(height uint64, tx ethrpc.TxParams) ([]byte, error) {
	return c.call(tx, &height)
}

func (c *Client) call(tx ethrpc.TxParams, height *uint64) ([]byte, error) {
	var (
		params = []any{tx, ethrpc.BlockParam(height)}
		resp   hexutil.Bytes
	)
	if err := c.performRequest("eth_call", params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SendTransaction submits the transaction via eth_sendTransaction (it's
// signed by the node, so the sender account must be unlocked there). The
// hash is returned as is, it can be empty if the node failed to accept the
// transaction without reporting an error.
func (c *Client) SendTransaction(tx ethrpc.TxParams) (string, error) {
	var (
		params = []any{tx}
		resp   string
	)
	if err := c.performRequest("eth_sendTransaction", params, &resp); err != nil {
		return "", err
	}
	return resp, nil
}

// EstimateGas returns the amount of gas the transaction is expected to use.
func (c *Client) EstimateGas(tx ethrpc.TxParams) (uint64, error) {
	var (
		params = []any{tx}
		resp   string
	)
	if err := c.performRequest("eth_estimateGas", params, &resp); err != nil {
		return 0, err
	}
	gas, err := hexutil.DecodeUint64(resp)
	if err != nil {
		return 0, fmt.Errorf("invalid gas estimation %q: %w", resp, err)
	}
	return gas, nil
}

// GetTransactionByHash returns the transaction with the given hash. Nil
// without an error is returned for transactions unknown to the node.
func (c *Client) GetTransactionByHash(hash util.Hash) (*result.Transaction, error) {
	var (
		params = []any{hash}
		resp   *result.Transaction
	)
	if err := c.performRequest("eth_getTransactionByHash", params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTransactionReceipt returns the receipt of the transaction with the
// given hash. Nil without an error is returned while the transaction is not
// yet included into a block.
func (c *Client) GetTransactionReceipt(hash util.Hash) (*result.Receipt, error) {
	var (
		params = []any{hash}
		resp   *result.Receipt
	)
	if err := c.performRequest("eth_getTransactionReceipt", params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Accounts returns the list of accounts managed by the node.
func (c *Client) Accounts() ([]util.Address, error) {
	var resp []util.Address
	if err := c.performRequest("eth_accounts", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DefaultAccount returns the account used as a sender when none is
// specified explicitly: the one from Options or the first account of the
// node. The result is cached.
func (c *Client) DefaultAccount() (util.Address, error) {
	c.cacheLock.RLock()
	acc := c.cache.defaultAccount
	c.cacheLock.RUnlock()
	if acc != nil {
		return *acc, nil
	}

	accounts, err := c.Accounts()
	if err != nil {
		return util.Address{}, fmt.Errorf("failed to get accounts: %w", err)
	}
	if len(accounts) == 0 {
		return util.Address{}, ErrNoAccounts
	}
	c.cacheLock.Lock()
	c.cache.defaultAccount = &accounts[0]
	c.cacheLock.Unlock()
	return accounts[0], nil
}

// NetVersion returns the network identifier, the result is cached.
func (c *Client) NetVersion() (string, error) {
	c.cacheLock.RLock()
	v := c.cache.netVersion
	c.cacheLock.RUnlock()
	if v != "" {
		return v, nil
	}
	if err := c.performRequest("net_version", nil, &v); err != nil {
		return "", err
	}
	c.cacheLock.Lock()
	c.cache.netVersion = v
	c.cacheLock.Unlock()
	return v, nil
}

// BlockNumber returns the number of the most recent block.
func (c *Client) BlockNumber() (uint64, error) {
	var resp hexutil.Uint64
	if err := c.performRequest("eth_blockNumber", nil, &resp); err != nil {
		return 0, err
	}
	return uint64(resp), nil
}

// GasPrice returns the current gas price suggested by the node.
func (c *Client) GasPrice() (*big.Int, error) {
	var resp hexutil.Big
	if err := c.performRequest("eth_gasPrice", nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToInt(), nil
}
