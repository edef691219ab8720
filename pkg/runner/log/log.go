package log

import (
	"context"
	"errors"

	"tableflip.dev/kcal/pkg/app"
	"tableflip.dev/kcal/pkg/printers"
)

const (
	titleLog     = "Log (Last 7 Days)"
	titleArchive = "Archive Log"
)

// Log shows or clears the active log, or the archive when Archive is set.
type Log struct {
	Tracker *app.Tracker
	Printer *printers.PrettyPrint
	Archive bool
	Clear   bool
	// Confirm is asked before clearing. Nil clears without asking.
	Confirm func(label string) bool
}

func (l *Log) Do(ctx context.Context) error {
	if l.Tracker == nil {
		return errors.New("can not read log, no tracker")
	}

	if l.Clear {
		return l.clear()
	}

	if l.Archive {
		l.Printer.Text(titleArchive, l.Tracker.ArchiveText())
	} else {
		l.Printer.Text(titleLog, l.Tracker.LogText())
	}
	return nil
}

func (l *Log) clear() error {
	label := "Clear entire log? Retained click events are removed permanently"
	if l.Archive {
		label = "Clear archived log? All archived entries are removed permanently"
	}
	if l.Confirm != nil && !l.Confirm(label) {
		l.Printer.Warn("Aborted.")
		return nil
	}

	if l.Archive {
		if err := l.Tracker.ClearArchive(); err != nil {
			return err
		}
		l.Printer.Text(titleArchive, l.Tracker.ArchiveText())
		return nil
	}
	if err := l.Tracker.ClearLog(); err != nil {
		return err
	}
	l.Printer.Text(titleLog, l.Tracker.LogText())
	return nil
}
