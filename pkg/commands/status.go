package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kcal/pkg/commands/options"
	"tableflip.dev/kcal/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	so := &options.ShortOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the counter and click amounts.",
		Example: `
kcal status
kcal status --short
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			t, err := openTracker()
			if err != nil {
				return output.HandleError(err)
			}
			defer t.Close()

			s := status.Status{
				Tracker: t,
				Printer: printer(cmd),
				Short:   so.Short,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShortArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
