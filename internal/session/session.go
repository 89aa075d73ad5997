// Package session wires the catalog, queue, history, engine, stats and
// recommender into one player and fans their events out to front ends.
package session

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/engine"
	grooveerrors "github.com/tessro/groove/internal/errors"
	"github.com/tessro/groove/internal/history"
	"github.com/tessro/groove/internal/queue"
	"github.com/tessro/groove/internal/recommend"
	"github.com/tessro/groove/internal/stats"
)

// Session is the root object of a running player.
type Session struct {
	mu          sync.Mutex
	catalog     *catalog.Catalog
	queue       *queue.Queue
	history     *history.History
	engine      *engine.Engine
	stats       *stats.Accumulator
	recommender *recommend.Recommender
	logger      *zap.Logger
	observers   []core.Observer

	playlistID string
	list       []int
}

type options struct {
	logger          *zap.Logger
	engineOpts      []engine.Option
	historyCapacity int
}

// Option configures a Session.
type Option func(*options)

// WithLogger sets the logger shared with the engine.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEngineOptions passes options through to the playback engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// WithHistoryCapacity overrides the history size.
func WithHistoryCapacity(n int) Option {
	return func(o *options) {
		o.historyCapacity = n
	}
}

// New creates a session playing through transport. The current list
// starts as the all-tracks playlist.
func New(cat *catalog.Catalog, transport core.Transport, opts ...Option) *Session {
	o := options{logger: zap.NewNop(), historyCapacity: history.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		catalog:     cat,
		queue:       queue.New(),
		history:     history.New(o.historyCapacity),
		stats:       stats.New(cat),
		recommender: recommend.New(cat),
		logger:      o.logger,
	}

	engineOpts := append([]engine.Option{engine.WithLogger(o.logger)}, o.engineOpts...)
	s.engine = engine.New(cat, s.queue, s.history, transport, engineOpts...)
	s.engine.Subscribe(s)

	_ = s.LoadPlaylist(core.PlaylistAll)
	return s
}

// Engine returns the playback engine for direct transport control.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// Catalog returns the track store.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// State returns the engine snapshot.
func (s *Session) State() core.PlaybackState {
	return s.engine.State()
}

// Subscribe registers an observer for engine and session events.
func (s *Session) Subscribe(o core.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// OnEvent receives engine events, folds them into the statistics and
// forwards them.
func (s *Session) OnEvent(e core.Event) {
	events := []core.Event{e}
	if s.stats.Apply(e) && e.Type == core.EventPlayCredited {
		events = append(events, core.Event{Type: core.EventStatsChanged, Timestamp: e.Timestamp})
	}
	s.notify(events...)
}

func (s *Session) notify(events ...core.Event) {
	s.mu.Lock()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, e := range events {
		if e.Timestamp.IsZero() {
			e.Timestamp = time.Now()
		}
		for _, o := range observers {
			o.OnEvent(e)
		}
	}
}

// Close stops playback and releases the audio device.
func (s *Session) Close() error {
	return s.engine.Close()
}

// Play plays a track without touching the queue.
func (s *Session) Play(id int) {
	s.engine.Play(id)
}

// PlayFromList plays a track from the current list and queues the
// tracks that follow it. A track missing from the list is put at its
// front.
func (s *Session) PlayFromList(id int) error {
	if !s.catalog.Contains(id) {
		s.logger.Warn("play: unknown track", zap.Int("track", id))
		return fmt.Errorf("%w: %d", grooveerrors.ErrTrackNotFound, id)
	}

	s.mu.Lock()
	if !slices.Contains(s.list, id) {
		s.list = append([]int{id}, s.list...)
	}
	idx := slices.Index(s.list, id)
	s.queue.Replace(s.list[idx+1:])
	s.mu.Unlock()

	s.notify(core.Event{Type: core.EventQueueChanged})
	s.engine.Play(id)
	return nil
}

// PlayPlaylist switches to a playlist and plays one of its tracks, or
// its first track when id is zero.
func (s *Session) PlayPlaylist(playlistID string, id int) error {
	if err := s.LoadPlaylist(playlistID); err != nil {
		return err
	}
	if id == 0 {
		tracks := s.CurrentTracks()
		if len(tracks) == 0 {
			return fmt.Errorf("playlist %s is empty", playlistID)
		}
		id = tracks[0].ID
	}
	return s.PlayFromList(id)
}

// TogglePlayPause pauses or resumes. With nothing loaded it starts the
// first track of the current list.
func (s *Session) TogglePlayPause() {
	if st := s.engine.State(); st.HasTrack() {
		s.engine.TogglePlayPause()
		return
	}
	if tracks := s.CurrentTracks(); len(tracks) > 0 {
		s.engine.Play(tracks[0].ID)
	}
}

// Next advances to the queue head or a shuffled pick.
func (s *Session) Next() {
	s.engine.Next()
}

// Previous restarts the current track or goes back in history.
func (s *Session) Previous() {
	s.engine.Previous()
}

// CycleRepeat moves to the next repeat mode and returns it.
func (s *Session) CycleRepeat() core.RepeatMode {
	next := s.engine.State().Repeat.Next()
	s.engine.SetRepeatMode(next)
	return next
}

// ToggleShuffle flips shuffle and returns the new setting.
func (s *Session) ToggleShuffle() bool {
	on := !s.engine.State().Shuffled
	s.engine.SetShuffle(on)
	return on
}

// CycleSpeed moves to the next allowed playback rate and returns it.
func (s *Session) CycleSpeed() float64 {
	next := core.NextSpeed(s.engine.State().Speed)
	s.engine.SetSpeed(next)
	return next
}

// Recommendations suggests n tracks related to the current one.
func (s *Session) Recommendations(n int) []*core.Track {
	return s.recommender.Recommend(s.engine.State().Track, n)
}

// Stats returns the listening statistics.
func (s *Session) Stats() stats.Summary {
	return s.stats.Snapshot()
}

// Search filters the catalog.
func (s *Session) Search(f catalog.Filter) []*core.Track {
	return s.catalog.Search(f)
}
