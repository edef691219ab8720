package status

import (
	"context"
	"errors"

	"tableflip.dev/kcal/pkg/app"
	"tableflip.dev/kcal/pkg/printers"
)

type Status struct {
	Tracker *app.Tracker
	Printer *printers.PrettyPrint
	Short   bool
}

func (s *Status) Do(ctx context.Context) error {
	if s.Tracker == nil {
		return errors.New("can not show status, no tracker")
	}
	snap := s.Tracker.Snapshot()
	if s.Short {
		s.Printer.Short(snap.Calories)
		return nil
	}
	s.Printer.Status(snap)
	return nil
}
