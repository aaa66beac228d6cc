package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/evmclient/evm-go/cli/smartcontract"
	"github.com/evmclient/evm-go/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "evm-go\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates an evm-go instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "evm-go"
	ctl.Version = config.Version
	ctl.Usage = "Go client for EVM contracts"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, smartcontract.NewCommands()...)
	return ctl
}
