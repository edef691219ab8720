package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kcal/pkg/commands/options"
	"tableflip.dev/kcal/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "View the click log of the last 7 days.",
		Example: `
kcal log
kcal log clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd, false, false, nil)
		},
	}

	addClear(cmd, false)

	topLevel.AddCommand(cmd)
}

func addArchive(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "View log entries older than 7 days.",
		Example: `
kcal archive
kcal archive clear --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd, true, false, nil)
		},
	}

	addClear(cmd, true)

	topLevel.AddCommand(cmd)
}

func addClear(parent *cobra.Command, archive bool) {
	co := &options.ConfirmOptions{}

	short := "Permanently remove every retained click event. Restarts the session clock."
	if archive {
		short = "Permanently remove every archived log entry."
	}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd, archive, true, co.Confirm)
		},
	}

	options.AddConfirmArgs(cmd, co)

	parent.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, archive, clearing bool, confirm func(string) bool) error {
	cmd.SilenceUsage = true
	t, err := openTracker()
	if err != nil {
		return output.HandleError(err)
	}
	defer t.Close()

	s := log.Log{
		Tracker: t,
		Printer: printer(cmd),
		Archive: archive,
		Clear:   clearing,
		Confirm: confirm,
	}
	err = s.Do(context.Background())
	return output.HandleError(err)
}
