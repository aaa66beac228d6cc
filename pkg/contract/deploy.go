package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/evmclient/evm-go/pkg/manifest"
	"github.com/evmclient/evm-go/pkg/rpcclient/actor"
	"github.com/evmclient/evm-go/pkg/util"
	"go.uber.org/zap"
)

// checkDeploy validates constructor arguments.
func (c *Contract) checkDeploy(args []any) (*manifest.Method, error) {
	if len(c.Code) == 0 {
		return nil, ErrNoCode
	}
	ctor := c.ABI.Constructor()
	if ctor == nil {
		if len(args) != 0 {
			return nil, ErrNoConstructor
		}
		return nil, nil
	}
	if len(args) != len(ctor.Inputs) {
		return nil, fmt.Errorf("%w in a constructor", ErrArgumentCountMismatch)
	}
	return ctor, nil
}

// Deploy sends a contract creation transaction with the given constructor
// arguments.
func (c *Contract) Deploy(args ...any) (*actor.PendingTx, error) {
	ctor, err := c.checkDeploy(args)
	if err != nil {
		return nil, err
	}
	sender, err := c.Sender()
	if err != nil {
		return nil, err
	}
	ptx, err := actor.New(c.client, sender).SendDeploy(c.Code, ctor, c.txOptions(), args...)
	if err != nil {
		return nil, err
	}
	c.log.Debug("deployment sent", zap.String("contract", c.Name), zap.Stringer("hash", ptx.Hash))
	return ptx, nil
}

// DeployAndWait deploys the contract and waits for the transaction receipt.
// The address of the deployed contract is returned and set as the contract
// Address.
func (c *Contract) DeployAndWait(ctx context.Context, args ...any) (util.Address, error) {
	ptx, err := c.Deploy(args...)
	if err != nil {
		return util.Address{}, err
	}
	r, err := c.newWaiter().WaitReceipt(ctx, ptx.Hash)
	if err != nil {
		return util.Address{}, err
	}
	if !r.Succeeded() {
		return util.Address{}, fmt.Errorf("deployment %s failed", ptx.Hash)
	}
	if r.ContractAddress == nil {
		return util.Address{}, errors.New("no contract address in the receipt")
	}
	addr := *r.ContractAddress
	c.Address = &addr
	c.log.Info("contract deployed", zap.String("contract", c.Name), zap.Stringer("address", addr))
	return addr, nil
}

// Estimate returns the amount of gas needed to deploy the contract.
func (c *Contract) Estimate(args ...any) (uint64, error) {
	ctor, err := c.checkDeploy(args)
	if err != nil {
		return 0, err
	}
	sender, err := c.Sender()
	if err != nil {
		return 0, err
	}
	return actor.New(c.client, sender).EstimateDeploy(c.Code, ctor, c.txOptions(), args...)
}
