package options

import (
	"github.com/spf13/cobra"
)

// ShortOptions
type ShortOptions struct {
	Short bool
}

func AddShortArgs(cmd *cobra.Command, o *ShortOptions) {
	cmd.Flags().BoolVar(&o.Short, "short", false,
		`Print only the compact counter label, "1k" style.`)
}
