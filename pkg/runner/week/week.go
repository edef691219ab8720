package week

import (
	"context"
	"errors"

	"tableflip.dev/kcal/pkg/app"
	"tableflip.dev/kcal/pkg/printers"
)

const title = "Last 7 Days"

type Week struct {
	Tracker *app.Tracker
	Printer *printers.PrettyPrint
}

func (w *Week) Do(ctx context.Context) error {
	if w.Tracker == nil {
		return errors.New("can not summarize, no tracker")
	}

	summary, err := w.Tracker.Weekly()
	switch {
	case errors.Is(err, app.ErrNoTrackedData):
		w.Printer.Text(title, app.NoTrackedDataText)
		return nil
	case err != nil:
		w.Printer.Text(title, app.WeeklyFailedText)
		return err
	}

	w.Printer.Weekly(summary, w.Tracker.Snapshot())
	return nil
}
