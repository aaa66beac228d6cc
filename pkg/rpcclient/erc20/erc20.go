/*
Package erc20 contains RPC wrappers for ERC-20 tokens.

TokenReader only uses read-only methods that are performed via eth_call,
Token also provides state-changing methods that produce transactions sent
on behalf of the actor's account.
*/
package erc20

import (
	"fmt"
	"math/big"

	"github.com/evmclient/evm-go/pkg/ethrpc/result"
	"github.com/evmclient/evm-go/pkg/manifest"
	"github.com/evmclient/evm-go/pkg/rpcclient/actor"
	"github.com/evmclient/evm-go/pkg/rpcclient/unwrap"
	"github.com/evmclient/evm-go/pkg/util"
)

// MaxValidDecimals is the maximum value 'decimals' contract method can
// return to be considered as valid. It's log10(2^256), higher values don't
// make any sense for 256-bit balances.
const MaxValidDecimals = 77

// ABIJSON is the standard ERC-20 interface.
const ABIJSON = `[
{"type":"function","name":"name","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
{"type":"function","name":"symbol","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
{"type":"function","name":"decimals","inputs":[],"outputs":[{"name":"","type":"uint8"}],"stateMutability":"view"},
{"type":"function","name":"totalSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
{"type":"function","name":"balanceOf","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
{"type":"function","name":"allowance","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
{"type":"function","name":"approve","inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
{"type":"function","name":"transferFrom","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
{"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}],"anonymous":false},
{"type":"event","name":"Approval","inputs":[{"name":"owner","type":"address","indexed":true},{"name":"spender","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}],"anonymous":false}
]`

// Invoker is used by TokenReader to call various safe methods.
type Invoker interface {
	Call(contract util.Address, method *manifest.Method, params ...any) (*result.Call, error)
}

// Actor is used by Token to create and send transactions.
type Actor interface {
	Invoker

	SendCall(contract util.Address, method *manifest.Method, opts actor.TxOptions, params ...any) (*actor.PendingTx, error)
}

// TokenReader provides safe ERC-20 methods.
type TokenReader struct {
	invoker Invoker
	hash    util.Address
}

// Token provides full ERC-20 interface, both safe and state-changing methods.
type Token struct {
	TokenReader

	actor Actor
	// Options are used for every transaction sent, gas price and limit are
	// node defaults if not set.
	Options actor.TxOptions
}

var tokenABI = mustParse(ABIJSON)

func mustParse(s string) *manifest.ABI {
	a, err := manifest.Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return a
}

// ABI returns the ERC-20 descriptor table.
func ABI() *manifest.ABI {
	return tokenABI
}

func method(name string) *manifest.Method {
	return tokenABI.GetMethod(name, -1)
}

// NewReader creates an instance of TokenReader for the contract with the
// given address using the given invoker.
func NewReader(invoker Invoker, hash util.Address) *TokenReader {
	return &TokenReader{invoker, hash}
}

// New creates an instance of Token for the contract with the given address
// using the given actor.
func New(actor Actor, hash util.Address) *Token {
	return &Token{TokenReader: *NewReader(actor, hash), actor: actor}
}

// Name returns the token name.
func (t *TokenReader) Name() (string, error) {
	return unwrap.String(t.invoker.Call(t.hash, method("name")))
}

// Symbol returns a short token identifier.
func (t *TokenReader) Symbol() (string, error) {
	return unwrap.String(t.invoker.Call(t.hash, method("symbol")))
}

// Decimals returns the number of decimals used by the token. Values more than
// MaxValidDecimals are considered to be invalid.
func (t *TokenReader) Decimals() (int, error) {
	dec, err := unwrap.Int64(t.invoker.Call(t.hash, method("decimals")))
	if err != nil {
		return 0, err
	}
	if dec < 0 || dec > MaxValidDecimals {
		return 0, fmt.Errorf("decimals %d out of range", dec)
	}
	return int(dec), nil
}

// TotalSupply returns the total token supply currently available.
func (t *TokenReader) TotalSupply() (*big.Int, error) {
	return unwrap.BigInt(t.invoker.Call(t.hash, method("totalSupply")))
}

// BalanceOf returns the token balance of the given account (with decimals,
// 1 TOK with 2 decimals is 100).
func (t *TokenReader) BalanceOf(account util.Address) (*big.Int, error) {
	return unwrap.BigInt(t.invoker.Call(t.hash, method("balanceOf"), account))
}

// Allowance returns the amount spender is still allowed to transfer from the
// owner's account.
func (t *TokenReader) Allowance(owner, spender util.Address) (*big.Int, error) {
	return unwrap.BigInt(t.invoker.Call(t.hash, method("allowance"), owner, spender))
}

// Transfer creates and sends a transaction moving the given amount of tokens
// from the actor's account to the given one. The transaction is not awaited,
// use waiter to check its result.
func (t *Token) Transfer(to util.Address, amount *big.Int) (*actor.PendingTx, error) {
	return t.actor.SendCall(t.hash, method("transfer"), t.Options, to, amount)
}

// Approve creates and sends a transaction allowing spender to transfer up to
// the given amount of tokens from the actor's account.
func (t *Token) Approve(spender util.Address, amount *big.Int) (*actor.PendingTx, error) {
	return t.actor.SendCall(t.hash, method("approve"), t.Options, spender, amount)
}

// TransferFrom creates and sends a transaction moving tokens from the given
// account (that has approved the actor's one to do so) to another one.
func (t *Token) TransferFrom(from, to util.Address, amount *big.Int) (*actor.PendingTx, error) {
	return t.actor.SendCall(t.hash, method("transferFrom"), t.Options, from, to, amount)
}
