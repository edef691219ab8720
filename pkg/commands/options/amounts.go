package options

import (
	"errors"

	"github.com/spf13/cobra"
)

// AmountsOptions
type AmountsOptions struct {
	Add      int
	Subtract int

	cmd *cobra.Command
}

func AddAmountsArgs(cmd *cobra.Command, o *AmountsOptions) {
	o.cmd = cmd
	cmd.Flags().IntVarP(&o.Add, "add", "a", 0,
		"Calories added by kcal add.")
	cmd.Flags().IntVarP(&o.Subtract, "subtract", "s", 0,
		"Calories removed by kcal sub.")
}

// Changed returns the amounts given on the command line; nil means the flag
// was not set.
func (o *AmountsOptions) Changed() (add, subtract *int, err error) {
	if o.cmd.Flags().Changed("add") {
		if o.Add < 0 {
			return nil, nil, errors.New("--add must not be negative")
		}
		add = &o.Add
	}
	if o.cmd.Flags().Changed("subtract") {
		if o.Subtract < 0 {
			return nil, nil, errors.New("--subtract must not be negative")
		}
		subtract = &o.Subtract
	}
	return add, subtract, nil
}
