package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kcal/pkg/runner/counter"
)

func addCounter(topLevel *cobra.Command) {
	for _, c := range []struct {
		use     string
		short   string
		example string
		op      counter.Op
	}{{
		use:     "add",
		short:   "Add the add amount to the counter.",
		example: "kcal add",
		op:      counter.Add,
	}, {
		use:     "sub",
		short:   "Subtract the subtract amount, stopping at zero.",
		example: "kcal sub",
		op:      counter.Subtract,
	}, {
		use:     "reset",
		short:   "Zero the counter and start a new session.",
		example: "kcal reset",
		op:      counter.Reset,
	}} {
		op := c.op
		cmd := &cobra.Command{
			Use:     c.use,
			Short:   c.short,
			Example: "\n" + c.example + "\n",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cmd.SilenceUsage = true
				t, err := openTracker()
				if err != nil {
					return output.HandleError(err)
				}
				defer t.Close()

				s := counter.Counter{
					Tracker: t,
					Printer: printer(cmd),
					Op:      op,
				}
				err = s.Do(context.Background())
				return output.HandleError(err)
			},
		}
		topLevel.AddCommand(cmd)
	}
}
