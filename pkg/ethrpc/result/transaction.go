package result

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/evmclient/evm-go/pkg/util"
)

// Transaction is the result of eth_getTransactionByHash. Pending transactions
// have nil BlockHash and BlockNumber.
type Transaction struct {
	Hash             util.Hash       `json:"hash"`
	Nonce            hexutil.Uint64  `json:"nonce"`
	BlockHash        *util.Hash      `json:"blockHash"`
	BlockNumber      *hexutil.Big    `json:"blockNumber"`
	TransactionIndex *hexutil.Uint64 `json:"transactionIndex"`
	From             util.Address    `json:"from"`
	To               *util.Address   `json:"to"`
	Value            *hexutil.Big    `json:"value"`
	Gas              hexutil.Uint64  `json:"gas"`
	GasPrice         *hexutil.Big    `json:"gasPrice"`
	Input            hexutil.Bytes   `json:"input"`
}

// IsPending tells whether the transaction is not yet included into a block.
func (t *Transaction) IsPending() bool {
	return t.BlockHash == nil || t.BlockHash.IsZero()
}
