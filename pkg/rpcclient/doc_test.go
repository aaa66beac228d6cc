package rpcclient_test

import (
	"context"
	"fmt"
	"os"

	"github.com/evmclient/evm-go/pkg/rpcclient"
	"github.com/evmclient/evm-go/pkg/util"
)

func Example() {
	endpoint := "http://localhost:8545"
	opts := rpcclient.Options{}

	c, err := rpcclient.New(context.TODO(), endpoint, opts)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	netVer, err := c.NetVersion()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println(netVer)

	h, err := util.HashDecodeString("0x8f27c18ef7c9070884e6a0953be7611b2ab5958e7043398200dc6a6707a2bd4a")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	receipt, err := c.GetTransactionReceipt(h)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if receipt == nil || receipt.IsPending() {
		fmt.Println("not yet mined")
		return
	}
	fmt.Println(receipt.ContractAddress)
}
