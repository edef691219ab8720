package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/kcal/pkg/commands/options"
	"tableflip.dev/kcal/pkg/runner/counter"
)

func addAmounts(topLevel *cobra.Command) {
	ao := &options.AmountsOptions{}

	cmd := &cobra.Command{
		Use:   "amounts",
		Short: "Adjust the calories added and subtracted per step.",
		Example: `
kcal amounts --add 100
kcal amounts --add 50 --subtract 10
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			add, sub, err := ao.Changed()
			if err != nil {
				return err
			}
			if add == nil && sub == nil {
				return errors.New("requires --add or --subtract")
			}
			cmd.SilenceUsage = true

			t, err := openTracker()
			if err != nil {
				return output.HandleError(err)
			}
			defer t.Close()

			s := counter.Amounts{
				Tracker:  t,
				Printer:  printer(cmd),
				Add:      add,
				Subtract: sub,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddAmountsArgs(cmd, ao)

	topLevel.AddCommand(cmd)
}
