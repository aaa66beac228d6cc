/*
Package ethrpc contains a set of types used for JSON-RPC communication with
Ethereum-compatible nodes. It defines basic request/response types, the node
error type and transaction parameters used by eth_call, eth_sendTransaction
and eth_estimateGas.
*/
package ethrpc

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/evmclient/evm-go/pkg/util"
)

const (
	// JSONRPCVersion is the only JSON-RPC protocol version supported.
	JSONRPCVersion = "2.0"

	// LatestBlock is the block parameter referring to the current chain
	// state.
	LatestBlock = "latest"
)

type (
	// Request represents JSON-RPC request. Field order matches the one nodes
	// and most clients use: jsonrpc, method, params, id.
	Request struct {
		// JSONRPC is the protocol version, only valid when it contains JSONRPCVersion.
		JSONRPC string `json:"jsonrpc"`
		// Method is the method being called.
		Method string `json:"method"`
		// Params is a set of method-specific positional parameters.
		Params []any `json:"params"`
		// ID is an identifier associated with this request, the client uses
		// numeric identifiers.
		ID uint64 `json:"id"`
	}

	// Header is a generic JSON-RPC 2.0 response header (ID and JSON-RPC version).
	Header struct {
		ID      json.RawMessage `json:"id"`
		JSONRPC string          `json:"jsonrpc"`
	}

	// HeaderAndError adds an Error (that can be empty) to the Header, it's used
	// to construct type-specific responses.
	HeaderAndError struct {
		Header
		Error *Error `json:"error,omitempty"`
	}

	// Response represents a standard raw JSON-RPC 2.0
	// response: http://www.jsonrpc.org/specification#response_object.
	Response struct {
		HeaderAndError
		Result json.RawMessage `json:"result,omitempty"`
	}

	// TxParams is the transaction object accepted by eth_call,
	// eth_sendTransaction and eth_estimateGas. Optional fields are omitted
	// when not set, so the node applies its defaults.
	TxParams struct {
		To       *util.Address `json:"to,omitempty"`
		From     util.Address  `json:"from"`
		Data     hexutil.Bytes `json:"data"`
		GasPrice *hexutil.Big  `json:"gasPrice,omitempty"`
		Gas      *hexutil.Big  `json:"gas,omitempty"`
		Value    *hexutil.Big  `json:"value,omitempty"`
	}
)

// NewRequest creates a JSON-RPC 2.0 request with the given parameters.
func NewRequest(id uint64, method string, params ...any) *Request {
	if params == nil {
		params = []any{}
	}
	return &Request{
		JSONRPC: JSONRPCVersion,
		Method:  method,
		Params:  params,
		ID:      id,
	}
}

// BlockParam returns the block parameter for the given height, nil means
// the latest block.
func BlockParam(height *uint64) string {
	if height == nil {
		return LatestBlock
	}
	return hexutil.EncodeUint64(*height)
}

// Quantity converts b into the hex quantity form or returns nil if b is nil.
func Quantity(b *big.Int) *hexutil.Big {
	if b == nil {
		return nil
	}
	return (*hexutil.Big)(new(big.Int).Set(b))
}
