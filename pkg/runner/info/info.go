package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/kcal/pkg/store"
	"tableflip.dev/kcal/pkg/timeutil"
)

type Info struct {
	Store *store.Store
	Out   io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("failed to create store object")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("KCAL_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "KCAL_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "KCAL_CONFIG_PATH env var not set")
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config.path:", n.Store.BasePath)
	tbl.AddRow("State:", n.Store.State.Path())
	tbl.AddRow("Session log:", fmt.Sprintf("%s (keeps %s)", n.Store.Log.Path(), timeutil.FormatWindow(n.Store.Log.Retention())))
	tbl.AddRow("Archive log:", fmt.Sprintf("%s (keeps %s)", n.Store.Archive.Path(), timeutil.FormatWindow(n.Store.Archive.Retention())))
	tbl.AddRow("Lock:", n.Store.Lock.Path())
	tbl.AddRow("Default steps:", fmt.Sprintf("+%d / -%d", n.Store.Defaults.LeftClickAmount, n.Store.Defaults.RightClickAmount))
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
