package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/kcal/pkg/commands/options"
	"tableflip.dev/kcal/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	so := &options.ShortOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: options.Wrap80("Print the counter every time it changes. Read only, runs next to other kcal commands."),
		Example: `
kcal watch --short
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			st, err := openStore()
			if err != nil {
				return output.HandleError(err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := watch.Watch{
				Store:   st,
				Printer: printer(cmd),
				Short:   so.Short,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddShortArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
