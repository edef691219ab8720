package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"tableflip.dev/kcal/pkg/app"
	"tableflip.dev/kcal/pkg/printers"
	"tableflip.dev/kcal/pkg/store"
)

func openStore() (*store.Store, error) {
	return store.Open(nil, store.WithLogger(slog.Default()))
}

// openTracker takes the instance lock. Callers must Close the tracker.
func openTracker() (*app.Tracker, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	return app.Open(st, st.Defaults)
}

func printer(cmd *cobra.Command) *printers.PrettyPrint {
	return &printers.PrettyPrint{Out: cmd.OutOrStdout()}
}
