package result

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/evmclient/evm-go/pkg/util"
)

type (
	// Receipt is the result of eth_getTransactionReceipt.
	Receipt struct {
		TransactionHash   util.Hash       `json:"transactionHash"`
		TransactionIndex  hexutil.Uint64  `json:"transactionIndex"`
		BlockHash         *util.Hash      `json:"blockHash"`
		BlockNumber       *hexutil.Big    `json:"blockNumber"`
		From              *util.Address   `json:"from,omitempty"`
		To                *util.Address   `json:"to,omitempty"`
		ContractAddress   *util.Address   `json:"contractAddress"`
		CumulativeGasUsed hexutil.Uint64  `json:"cumulativeGasUsed"`
		GasUsed           hexutil.Uint64  `json:"gasUsed"`
		Logs              []Log           `json:"logs"`
		LogsBloom         hexutil.Bytes   `json:"logsBloom"`
		Root              hexutil.Bytes   `json:"root,omitempty"`
		Status            *hexutil.Uint64 `json:"status,omitempty"`
	}

	// Log is an event emitted during transaction execution.
	Log struct {
		Address          util.Address   `json:"address"`
		Topics           []util.Hash    `json:"topics"`
		Data             hexutil.Bytes  `json:"data"`
		BlockNumber      *hexutil.Big   `json:"blockNumber"`
		TransactionHash  util.Hash      `json:"transactionHash"`
		TransactionIndex hexutil.Uint64 `json:"transactionIndex"`
		LogIndex         hexutil.Uint64 `json:"logIndex"`
		Removed          bool           `json:"removed"`
	}
)

// IsPending tells whether the receipt is not yet bound to a block.
func (r *Receipt) IsPending() bool {
	return r.BlockHash == nil || r.BlockHash.IsZero()
}

// Succeeded returns false for receipts having zero status. Receipts of
// pre-Byzantium blocks have no status and are considered successful.
func (r *Receipt) Succeeded() bool {
	return r.Status == nil || *r.Status != 0
}
