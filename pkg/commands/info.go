package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kcal/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about where the counter and its logs are stored.",
		Example: `
kcal info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			st, err := openStore()
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Store: st,
				Out:   cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
