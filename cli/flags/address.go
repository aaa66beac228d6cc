package flags

import (
	"flag"
	"fmt"
	"strings"

	"github.com/evmclient/evm-go/pkg/util"
	"github.com/urfave/cli"
)

// Address is a wrapper for a util.Address with flag.Value methods.
type Address struct {
	IsSet bool
	Value util.Address
}

// AddressFlag is a flag with type util.Address.
type AddressFlag struct {
	Name  string
	Usage string
	Value Address
}

var (
	_ flag.Value = (*Address)(nil)
	_ cli.Flag   = AddressFlag{}
)

// String implements the fmt.Stringer interface.
func (a Address) String() string {
	return a.Value.String()
}

// Set implements the flag.Value interface.
func (a *Address) Set(s string) error {
	addr, err := util.AddressDecodeString(s)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	a.IsSet = true
	a.Value = addr
	return nil
}

// Address returns the value, it panics if the flag was not set.
func (a *Address) Address() util.Address {
	if !a.IsSet {
		// It is a programmer error to call this method without
		// checking if the value was provided.
		panic("address was not set")
	}
	return a.Value
}

// IsSet checks if flag was set to a non-default value.
func (f AddressFlag) IsSet() bool {
	return f.Value.IsSet
}

// String returns a readable representation of this value
// (for usage defaults).
func (f AddressFlag) String() string {
	var names []string
	eachName(f.Name, func(name string) {
		names = append(names, getNameHelp(name))
	})

	return strings.Join(names, ", ") + "\t" + f.Usage
}

func getNameHelp(name string) string {
	if len(name) == 1 {
		return fmt.Sprintf("-%s value", name)
	}
	return fmt.Sprintf("--%s value", name)
}

// GetName implements the cli.Flag interface.
func (f AddressFlag) GetName() string {
	return f.Name
}

// Apply implements the cli.Flag interface.
func (f AddressFlag) Apply(set *flag.FlagSet) {
	eachName(f.Name, func(name string) {
		set.Var(&f.Value, name, f.Usage)
	})
}

// GetAddress returns the address flag value from the context, nil is
// returned if it's not set.
func GetAddress(ctx *cli.Context, name string) *util.Address {
	a, ok := ctx.Generic(name).(*Address)
	if !ok || !a.IsSet {
		return nil
	}
	addr := a.Address()
	return &addr
}
