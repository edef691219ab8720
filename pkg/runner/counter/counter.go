package counter

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/kcal/pkg/app"
	"tableflip.dev/kcal/pkg/printers"
)

// Op is a counter mutation.
type Op int

const (
	Add Op = iota
	Subtract
	Reset
)

func (o Op) String() string {
	switch o {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Reset:
		return "reset"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

type Counter struct {
	Tracker *app.Tracker
	Printer *printers.PrettyPrint
	Op      Op
}

func (c *Counter) Do(ctx context.Context) error {
	if c.Tracker == nil {
		return errors.New("can not change counter, no tracker")
	}

	var err error
	switch c.Op {
	case Add:
		err = c.Tracker.Add()
	case Subtract:
		err = c.Tracker.Subtract()
	case Reset:
		err = c.Tracker.Reset()
		if errors.Is(err, app.ErrResetNotRecorded) {
			return err
		}
	default:
		return fmt.Errorf("unknown counter operation %s", c.Op)
	}

	c.Printer.Status(c.Tracker.Snapshot())
	if err != nil {
		// The counter moved; only durability is in question.
		c.Printer.Warn("Warning: change was not fully saved.")
	}
	return err
}

// Amounts replaces the click step sizes. Nil leaves a step unchanged.
type Amounts struct {
	Tracker  *app.Tracker
	Printer  *printers.PrettyPrint
	Add      *int
	Subtract *int
}

func (a *Amounts) Do(ctx context.Context) error {
	if a.Tracker == nil {
		return errors.New("can not set amounts, no tracker")
	}
	snap := a.Tracker.Snapshot()
	add, sub := snap.LeftClickAmount, snap.RightClickAmount
	if a.Add != nil {
		add = *a.Add
	}
	if a.Subtract != nil {
		sub = *a.Subtract
	}
	if err := a.Tracker.SetAmounts(add, sub); err != nil {
		return err
	}
	a.Printer.Status(a.Tracker.Snapshot())
	return nil
}
