package watch

import (
	"context"
	"errors"

	"tableflip.dev/kcal/pkg/printers"
	"tableflip.dev/kcal/pkg/store"
)

// Watch reprints the counter whenever another process changes the store.
// It only reads, so it runs alongside the instance that holds the lock.
type Watch struct {
	Store   *store.Store
	Printer *printers.PrettyPrint
	Short   bool
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Store == nil {
		return errors.New("can not watch, no store")
	}

	events, err := w.Store.Watch(ctx)
	if err != nil {
		return err
	}

	w.print()
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			w.Store.Logger().Debug("store changed", "type", evt.Type)
			if evt.Type == store.EventStateChanged {
				w.print()
			}
		}
	}
}

func (w *Watch) print() {
	snap, _ := w.Store.State.Load(w.Store.Defaults)
	if w.Short {
		w.Printer.Short(snap.Calories)
		return
	}
	w.Printer.Status(snap)
}
