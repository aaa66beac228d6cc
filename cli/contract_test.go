package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	greeterABIPath  = "testdata/greeter.abi.json"
	greeterCodePath = "testdata/greeter.hex"
	artifactsPath   = "../pkg/artifact/testdata"

	defaultAccount  = "0x27dcb234fab8190e53e2d949d7b2c37411efb72e"
	contractAddress = "0xaf83b6f1162062aa6711de633821f3e66b6fb3a5"
	counterAddress  = "0xc0c32feb41be1f1eba28f3612d3ca7e458974cdb"

	killTxHash   = "0x2736d20b6e8698225c298fba56a90c0c6e95699f95e9c0b13909a730ea438623"
	deployTxHash = "0x8f27c18ef7c9070884e6a0953be7611b2ab5958e7043398200dc6a6707a2bd4a"

	greetRequest    = `{"jsonrpc":"2.0","method":"eth_call","params":[{"to":"` + contractAddress + `","from":"` + defaultAccount + `","data":"0xcfae3217"},"latest"],"id":1}`
	greetResult     = `{"jsonrpc":"2.0", "result": "0x0000000000000000000000000000000000000000000000000000000000000020000000000000000000000000000000000000000000000000000000000000000568656c6c6f000000000000000000000000000000000000000000000000000000", "id": 1}`
	killRequest     = `{"jsonrpc":"2.0","method":"eth_sendTransaction","params":[{"to":"` + contractAddress + `","from":"` + defaultAccount + `","data":"0x41c0e1b5"}],"id":1}`
	killResult      = `{"jsonrpc":"2.0","result":"` + killTxHash + `","id":1}`
	txByHashRequest = `{"jsonrpc":"2.0","method":"eth_getTransactionByHash","params":["` + killTxHash + `"],"id":1}`
	txByHashResult  = `{"jsonrpc":"2.0","result":{"blockHash":"0xc1e5032da79990789fb6933d31fb5670e66aec1e88fa98efbc1c9d4507c070ab","blockNumber":"0x56893","from":"` + defaultAccount + `","gas":"0xe57e0","gasPrice":"0x4a817c800","hash":"` + killTxHash + `","input":"0x41c0e1b5","nonce":"0x25","to":"` + contractAddress + `","transactionIndex":"0x3","value":"0x0"},"id":1}`
)

var base = []string{"evm-go", "contract"}

func args(a ...string) []string {
	return append(append([]string{}, base...), a...)
}

func TestContractSelector(t *testing.T) {
	e := newExecutor(t)

	e.Run(t, args("selector", "greet()")...)
	e.checkNextLine(t, "^0xcfae3217$")
	e.checkEOF(t)

	e.Run(t, args("selector", "--event", "Transfer(address,address,uint256)")...)
	e.checkNextLine(t, "^0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef$")
	e.checkEOF(t)

	t.Run("errors", func(t *testing.T) {
		e.RunWithError(t, args("selector")...)
		e.RunWithError(t, args("selector", "greet")...)
		e.RunWithError(t, args("selector", "--event", "(uint256)")...)
	})
}

func TestContractEncode(t *testing.T) {
	e := newExecutor(t)

	e.Run(t, args("encode", "sam(bytes,bool,uint256[])", "0x64617665", "true", "[1,2,3]")...)
	e.checkNextLine(t, "^0xa5643bf2"+
		"0000000000000000000000000000000000000000000000000000000000000060"+
		"0000000000000000000000000000000000000000000000000000000000000001"+
		"00000000000000000000000000000000000000000000000000000000000000a0"+
		"0000000000000000000000000000000000000000000000000000000000000004"+
		"6461766500000000000000000000000000000000000000000000000000000000"+
		"0000000000000000000000000000000000000000000000000000000000000003"+
		"0000000000000000000000000000000000000000000000000000000000000001"+
		"0000000000000000000000000000000000000000000000000000000000000002"+
		"0000000000000000000000000000000000000000000000000000000000000003$")
	e.checkEOF(t)

	e.Run(t, args("encode", "--no-selector", "f(uint256,bool)", "0x2a", "false")...)
	e.checkNextLine(t, "^0x"+
		"000000000000000000000000000000000000000000000000000000000000002a"+
		"0000000000000000000000000000000000000000000000000000000000000000$")
	e.checkEOF(t)

	t.Run("errors", func(t *testing.T) {
		e.RunWithError(t, args("encode")...)
		e.RunWithError(t, args("encode", "f(uint256")...)
		e.RunWithError(t, args("encode", "f(uint256)")...)
		e.RunWithError(t, args("encode", "f(uint256)", "many")...)
		e.RunWithError(t, args("encode", "f(uint8)", "256")...)
	})
}

func TestContractDecode(t *testing.T) {
	e := newExecutor(t)

	e.Run(t, args("decode", "--types", "string",
		"0x0000000000000000000000000000000000000000000000000000000000000023616c610000000000000000000000000000000000000000000000000000000000")...)
	e.checkNextLine(t, "^ala$")
	e.checkEOF(t)

	e.Run(t, args("decode", "--types", "uint256,address,bool",
		"000000000000000000000000000000000000000000000000000000000000002a"+
			"00000000000000000000000027dcb234fab8190e53e2d949d7b2c37411efb72e"+
			"0000000000000000000000000000000000000000000000000000000000000001")...)
	e.checkNextLine(t, "^42$")
	e.checkNextLine(t, "^"+defaultAccount+"$")
	e.checkNextLine(t, "^true$")
	e.checkEOF(t)

	t.Run("errors", func(t *testing.T) {
		e.RunWithError(t, args("decode", "--types", "uint256")...)
		e.RunWithError(t, args("decode", "--types", "uint7", "0x00")...)
		e.RunWithError(t, args("decode", "--types", "uint256", "0xzz")...)
		e.RunWithError(t, args("decode", "--types", "uint256", "0x0102")...)
	})
}

func TestContractMethods(t *testing.T) {
	e := newExecutor(t)

	e.Run(t, args("methods", "--abi", greeterABIPath)...)
	e.checkNextLine(t, `^constructor\(string\)$`)
	e.checkNextLine(t, `^send 0x41c0e1b5 kill\(\)$`)
	e.checkNextLine(t, `^call 0xcfae3217 greet\(\) returns \(string\)$`)
	e.checkEOF(t)

	e.Run(t, args("methods", "-p", artifactsPath, "--name", "TestContractOne")...)
	e.checkNextLine(t, `^call 0x5d0b6774 counterFor\(address\) returns \(uint256\)$`)
	e.checkNextLine(t, `^send 0x08615e55 addCounter\(\)$`)
	e.checkNextLine(t, `^send 0xe6afa09f removeCounter\(\)$`)
	e.checkEOF(t)

	t.Run("errors", func(t *testing.T) {
		e.RunWithError(t, args("methods")...)
		e.RunWithError(t, args("methods", "--abi", "testdata/missing.json")...)
		e.RunWithError(t, args("methods", "-p", artifactsPath, "--name", "Missing")...)
		e.RunWithError(t, args("methods", "-p", artifactsPath, "--name", "TestContractOne", "--abi", greeterABIPath)...)
	})
}

func greeterArgs(endpoint string, a ...string) []string {
	return append([]string{"-r", endpoint, "--from", defaultAccount, "--abi", greeterABIPath, "--address", contractAddress}, a...)
}

func TestContractCall(t *testing.T) {
	e := newExecutor(t)

	t.Run("latest", func(t *testing.T) {
		url := newTestNode(t, exchange{greetRequest, greetResult})
		e.Run(t, args(append([]string{"call"}, greeterArgs(url, "greet")...)...)...)
		e.checkNextLine(t, "^hello$")
		e.checkEOF(t)
	})
	t.Run("historic", func(t *testing.T) {
		url := newTestNode(t, exchange{strings.Replace(greetRequest, `"latest"`, `"0x1"`, 1), greetResult})
		e.Run(t, args(append([]string{"call", "--historic", "1"}, greeterArgs(url, "greet")...)...)...)
		e.checkNextLine(t, "^hello$")
		e.checkEOF(t)
	})
	t.Run("artifact", func(t *testing.T) {
		url := newTestNode(t,
			exchange{`{"jsonrpc":"2.0","method":"net_version","params":[],"id":1}`, `{"jsonrpc":"2.0","result":"1234","id":1}`},
			exchange{
				`{"jsonrpc":"2.0","method":"eth_call","params":[{"to":"` + counterAddress + `","from":"` + defaultAccount +
					`","data":"0x5d0b6774` + "000000000000000000000000" + strings.TrimPrefix(defaultAccount, "0x") + `"},"latest"],"id":1}`,
				`{"jsonrpc":"2.0","result":"0x000000000000000000000000000000000000000000000000000000000000002a","id":1}`,
			})
		e.Run(t, args("call", "-r", url, "--from", defaultAccount, "-p", artifactsPath, "--name", "TestContractOne",
			"counterFor", defaultAccount)...)
		e.checkNextLine(t, "^42$")
		e.checkEOF(t)
	})
	t.Run("errors", func(t *testing.T) {
		url := newTestNode(t)
		e.RunWithError(t, args("call")...)
		e.RunWithError(t, args("call", "-r", url, "--from", defaultAccount, "greet")...)
		e.RunWithError(t, args("call", "--historic", "latest", "-r", url, "greet")...)
		e.RunWithError(t, args(append([]string{"call"}, greeterArgs(url, "nosuch")...)...)...)
		e.RunWithError(t, args(append([]string{"call"}, greeterArgs(url, "greet", "extra")...)...)...)
	})
}

func TestContractSend(t *testing.T) {
	e := newExecutor(t)

	t.Run("async", func(t *testing.T) {
		url := newTestNode(t, exchange{killRequest, killResult})
		e.Run(t, args(append([]string{"send"}, greeterArgs(url, "kill")...)...)...)
		e.checkNextLine(t, "^"+killTxHash+"$")
		e.checkEOF(t)
	})
	t.Run("gas", func(t *testing.T) {
		url := newTestNode(t, exchange{
			strings.Replace(killRequest, `"data":"0x41c0e1b5"`, `"data":"0x41c0e1b5","gasPrice":"0xa","gas":"0xabe0"`, 1),
			killResult,
		})
		e.Run(t, args(append([]string{"send", "--gas-price", "10", "--gas-limit", "44000"}, greeterArgs(url, "kill")...)...)...)
		e.checkNextLine(t, "^"+killTxHash+"$")
		e.checkEOF(t)
	})
	t.Run("await", func(t *testing.T) {
		url := newTestNode(t, exchange{killRequest, killResult}, exchange{txByHashRequest, txByHashResult})
		e.Run(t, args(append([]string{"send", "--await"}, greeterArgs(url, "kill")...)...)...)
		e.checkNextLine(t, "^"+killTxHash+"$")
		e.checkEOF(t)
	})
	t.Run("locked account", func(t *testing.T) {
		url := newTestNode(t, exchange{killRequest, `{"jsonrpc":"2.0","result":"0x","id":1}`})
		e.RunWithError(t, args(append([]string{"send"}, greeterArgs(url, "kill")...)...)...)
	})
}

func TestContractDeploy(t *testing.T) {
	e := newExecutor(t)

	code, err := os.ReadFile(greeterCodePath)
	require.NoError(t, err)
	helloArgs := strings.Repeat("0", 62) + "20" + strings.Repeat("0", 62) + "05" + "48656c6c6f" + strings.Repeat("0", 54)

	url := newTestNode(t, exchange{
		`{"jsonrpc":"2.0","method":"eth_sendTransaction","params":[{"from":"` + defaultAccount +
			`","data":"0x` + strings.TrimSpace(string(code)) + helloArgs + `"}],"id":1}`,
		`{"jsonrpc":"2.0","result":"` + deployTxHash + `","id":1}`,
	})
	e.Run(t, args("deploy", "-r", url, "--from", defaultAccount, "--abi", greeterABIPath, "--code", greeterCodePath, "Hello")...)
	e.checkNextLine(t, "^"+deployTxHash+"$")
	e.checkEOF(t)

	t.Run("errors", func(t *testing.T) {
		url := newTestNode(t)
		e.RunWithError(t, args("deploy", "-r", url, "--from", defaultAccount, "--abi", greeterABIPath, "Hello")...)
		e.RunWithError(t, args("deploy", "-r", url, "--from", defaultAccount, "--abi", greeterABIPath, "--code", greeterCodePath)...)
		e.RunWithError(t, args("deploy", "-r", url, "--from", defaultAccount, "--abi", greeterABIPath, "--code", greeterABIPath, "Hello")...)
	})
}

func TestContractEstimate(t *testing.T) {
	e := newExecutor(t)

	url := newTestNode(t, exchange{
		`{"jsonrpc":"2.0","method":"eth_estimateGas","params":[{"to":"` + contractAddress + `","from":"` + defaultAccount + `","data":"0x41c0e1b5"}],"id":1}`,
		`{"jsonrpc":"2.0","result":"0x5208","id":1}`,
	})
	e.Run(t, args(append([]string{"estimate"}, greeterArgs(url, "kill")...)...)...)
	e.checkNextLine(t, "^21000$")
	e.checkEOF(t)

	e.RunWithError(t, args("estimate")...)
}
