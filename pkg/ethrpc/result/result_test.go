package result

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReceiptUnmarshal(t *testing.T) {
	var r Receipt
	require.NoError(t, json.Unmarshal([]byte(`{"blockHash":"0xc46f34137d2f6efb28b223527d30c6795a90e6d739327ee149e59da0bb135e18",`+
		`"blockNumber":"0x59b99","contractAddress":"0xb208cc15cb01ec6ac37eeeadb7847eacee706c47","cumulativeGasUsed":"0x179583",`+
		`"gasUsed":"0xe57e0","logs":[],"logsBloom":"0x","root":"0x9e6c00714e4fe68e97c6ca7db35981e266b83c360782d92783a4ebf93da6eae1",`+
		`"transactionHash":"0x8f27c18ef7c9070884e6a0953be7611b2ab5958e7043398200dc6a6707a2bd4a","transactionIndex":"0x9"}`), &r))
	require.False(t, r.IsPending())
	require.True(t, r.Succeeded())
	require.Equal(t, "0xb208cc15cb01ec6ac37eeeadb7847eacee706c47", r.ContractAddress.String())
	require.Equal(t, uint64(0xe57e0), uint64(r.GasUsed))
	require.Equal(t, int64(0x59b99), r.BlockNumber.ToInt().Int64())
	require.Equal(t, "0x8f27c18ef7c9070884e6a0953be7611b2ab5958e7043398200dc6a6707a2bd4a", r.TransactionHash.String())
	require.Empty(t, r.LogsBloom)

	var failed Receipt
	require.NoError(t, json.Unmarshal([]byte(`{"blockHash":null,"status":"0x0","transactionHash":`+
		`"0x8f27c18ef7c9070884e6a0953be7611b2ab5958e7043398200dc6a6707a2bd4a","transactionIndex":"0x0",`+
		`"cumulativeGasUsed":"0x0","gasUsed":"0x0","logs":null,"logsBloom":"0x","contractAddress":null}`), &failed))
	require.True(t, failed.IsPending())
	require.False(t, failed.Succeeded())
	require.Nil(t, failed.ContractAddress)
}

func TestTransactionUnmarshal(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"blockHash":"0xc1e5032da79990789fb6933d31fb5670e66aec1e88fa98efbc1c9d4507c070ab",`+
		`"blockNumber":"0x56893","creates":null,"from":"0x27dcb234fab8190e53e2d949d7b2c37411efb72e","gas":"0xe57e0",`+
		`"gasPrice":"0x4a817c800","hash":"0x528b3c18433ea9b9089f0eef1f5be722934e629e441fa1af07f33531b20c22c9",`+
		`"input":"0x41c0e1b5","nonce":"0x25","to":"0x5b1141d29fad616d221fff559dcaa11bbb2ebcb7","transactionIndex":"0x3",`+
		`"v":1,"value":"0x0"}`), &tx))
	require.False(t, tx.IsPending())
	require.Equal(t, "0x27dcb234fab8190e53e2d949d7b2c37411efb72e", tx.From.String())
	require.Equal(t, []byte{0x41, 0xc0, 0xe1, 0xb5}, []byte(tx.Input))
	require.Equal(t, uint64(0x25), uint64(tx.Nonce))
	require.Equal(t, uint64(3), uint64(*tx.TransactionIndex))

	var pending Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"blockHash":null,"blockNumber":null,"from":"0x27dcb234fab8190e53e2d949d7b2c37411efb72e",`+
		`"gas":"0x0","hash":"0x528b3c18433ea9b9089f0eef1f5be722934e629e441fa1af07f33531b20c22c9","input":"0x","nonce":"0x0",`+
		`"to":null,"transactionIndex":null}`), &pending))
	require.True(t, pending.IsPending())
	require.Nil(t, pending.To)
}
