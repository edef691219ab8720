package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/kcal/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	logging = &options.LoggingOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "kcal",
		Short: options.Wrap80("Count calories on the command line. Every change is logged, the last week can be summarized."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Install(cmd.ErrOrStderr())
			output.Out = cmd.OutOrStdout()
			// JSON errors are printed by HandleError.
			cmd.Root().SilenceErrors = output.JSON
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddLoggingArgs(cmd, logging)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addStatus(topLevel)
	addCounter(topLevel)
	addAmounts(topLevel)
	addLog(topLevel)
	addArchive(topLevel)
	addWeek(topLevel)
	addWatch(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
