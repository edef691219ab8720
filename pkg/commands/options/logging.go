package options

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// LoggingOptions
type LoggingOptions struct {
	Verbose bool
}

func AddLoggingArgs(cmd *cobra.Command, o *LoggingOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug details to stderr.")
}

// Install makes a text handler on w the default slog logger. Only warnings
// and errors are shown unless Verbose is set.
func (o *LoggingOptions) Install(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
