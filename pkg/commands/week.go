package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kcal/pkg/runner/week"
)

func addWeek(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "week",
		Aliases: []string{"last-week"},
		Short:   "Summarize net calories per day for the last 7 days.",
		Example: `
kcal week
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			t, err := openTracker()
			if err != nil {
				return output.HandleError(err)
			}
			defer t.Close()

			s := week.Week{
				Tracker: t,
				Printer: printer(cmd),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
