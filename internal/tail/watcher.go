package tail

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/tessro/groove/internal/core"
)

// Event is a player event together with the player state observed when
// it arrived.
type Event struct {
	core.Event
	State core.PlaybackState
}

// subject returns the track the event is about, falling back to the
// current track.
func (e Event) subject() *core.Track {
	if e.Track != nil {
		return e.Track
	}
	return e.State.Track
}

// Watcher buffers player events for a line-oriented consumer. It is an
// observer; register it with the session and read from Events.
type Watcher struct {
	state   func() core.PlaybackState
	events  chan Event
	ignore  map[core.EventType]bool
	until   func(Event) bool
	dropped atomic.Int64
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithBuffer sets how many events are held before new ones are dropped.
func WithBuffer(n int) WatcherOption {
	return func(w *Watcher) {
		if n > 0 {
			w.events = make(chan Event, n)
		}
	}
}

// WithUntil makes Run return after writing the first event for which
// fn reports true.
func WithUntil(fn func(Event) bool) WatcherOption {
	return func(w *Watcher) {
		w.until = fn
	}
}

// WithVerbose also passes through progress and listening events.
func WithVerbose(enabled bool) WatcherOption {
	return func(w *Watcher) {
		if enabled {
			w.ignore = map[core.EventType]bool{}
		}
	}
}

// NewWatcher creates a watcher that snapshots state for each event.
func NewWatcher(state func() core.PlaybackState, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		state:  state,
		events: make(chan Event, 16),
		ignore: map[core.EventType]bool{
			core.EventProgress: true,
			core.EventListened: true,
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnEvent queues e. Events arriving while the buffer is full are
// dropped so the player is never blocked by a slow reader.
func (w *Watcher) OnEvent(e core.Event) {
	if w.ignore[e.Type] {
		return
	}
	ev := Event{Event: e}
	if w.state != nil {
		ev.State = w.state()
	}
	select {
	case w.events <- ev:
	default:
		w.dropped.Add(1)
	}
}

// Events returns the channel of buffered events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Dropped reports how many events were discarded.
func (w *Watcher) Dropped() int64 {
	return w.dropped.Load()
}

// Run writes formatted events to out until ctx is done or the WithUntil
// condition is met.
func (w *Watcher) Run(ctx context.Context, out io.Writer, f *Formatter) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-w.events:
			if _, err := fmt.Fprintln(out, f.Format(e)); err != nil {
				return err
			}
			if w.until != nil && w.until(e) {
				return nil
			}
		}
	}
}
