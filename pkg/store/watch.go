package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes which part of the store changed.
type EventType int

const (
	// EventStateChanged indicates state.json was replaced.
	EventStateChanged EventType = iota

	// EventLogChanged indicates the active session log was appended to or rewritten.
	EventLogChanged

	// EventArchiveChanged indicates the archive log changed.
	EventArchiveChanged
)

func (t EventType) String() string {
	switch t {
	case EventStateChanged:
		return "state"
	case EventLogChanged:
		return "log"
	case EventArchiveChanged:
		return "archive"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is emitted by Watch when a store file changes.
type Event struct {
	Type EventType
}

// Watch streams change events until ctx is cancelled. It never writes, so it
// does not need the instance lock. Callers should drain the returned channel;
// events are dropped rather than blocking the watcher. The channel is closed
// once ctx is done or the watcher fails.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	if s.BasePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				s.logger.Warn("watcher close failed", "err", err)
			}
		})
	}

	// Staged writes land in a subdirectory and arrive here as a rename, so the
	// base directory alone sees every committed change.
	if err := watcher.Add(s.BasePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", s.BasePath, err)
	}

	events := make(chan Event, 16)

	// The throttle flushes from its own timer goroutine, so sends and the final
	// close are serialized.
	var sendMu sync.Mutex
	closed := false
	send := func(ev Event) {
		sendMu.Lock()
		defer sendMu.Unlock()
		if closed {
			return
		}
		select {
		case events <- ev:
		default:
			// Consumer is behind; it will re-read the files on the next event.
		}
	}

	go func() {
		defer func() {
			sendMu.Lock()
			closed = true
			close(events)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("store watcher error", "err", err)
				throttle.Enqueue(EventStateChanged, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				typ, ok := eventTypeForPath(evt.Name)
				if !ok {
					continue
				}
				throttle.Enqueue(typ, send)
			}
		}
	}()

	return events, nil
}

// eventTypeForPath maps a store file to the change it represents. The lock
// file and staging directory are ignored.
func eventTypeForPath(path string) (EventType, bool) {
	switch filepath.Base(path) {
	case StateFile:
		return EventStateChanged, true
	case SessionLogFile:
		return EventLogChanged, true
	case ArchiveLogFile:
		return EventArchiveChanged, true
	}
	return 0, false
}

// eventThrottle coalesces bursts (an append followed by a prune rewrite, say)
// into one notification per event type.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(typ EventType, send func(Event)) {
	t.mu.Lock()
	t.pending[typ] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	for typ := range pending {
		send(Event{Type: typ})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
