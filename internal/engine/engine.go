// Package engine drives playback of catalog tracks through a Transport.
//
// All state lives behind one mutex. Operations collect the events they
// produce while holding it and deliver them to observers after it is
// released, in emission order. Deferred work (the play credit and the
// crossfade ramp) is scheduled with the play sequence number current
// at scheduling time and re-checked when it fires, so work belonging
// to an earlier play is dropped rather than cancelled.
package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/history"
	"github.com/tessro/groove/internal/queue"
)

const (
	// DefaultCreditDelay is how long a track must keep playing to count
	// as a play.
	DefaultCreditDelay = 30 * time.Second

	// DefaultCrossfade is the fade-out window before the end of a track.
	DefaultCrossfade = 2 * time.Second

	// DefaultVolume is the nominal output volume at startup.
	DefaultVolume = 0.7

	// DefaultMaxGain bounds equalizer gains in both directions.
	DefaultMaxGain = 12.0

	// RestartThreshold is the position past which Previous restarts the
	// current track instead of going back.
	RestartThreshold = 3 * time.Second

	fadeSteps = 20

	// Progress deltas larger than this are seeks, not listening.
	maxListenDelta = time.Second
)

// Engine is the playback state machine.
type Engine struct {
	mu        sync.Mutex
	catalog   *catalog.Catalog
	queue     *queue.Queue
	history   *history.History
	transport core.Transport
	scheduler core.Scheduler
	logger    *zap.Logger
	observers []core.Observer
	pending   []core.Event

	currentID  int
	hasCurrent bool
	state      core.PlayerState
	position   time.Duration
	duration   time.Duration
	lastTick   time.Duration

	volume   float64
	speed    float64
	repeat   core.RepeatMode
	shuffled bool
	bands    [core.NumBands]float64

	seq         uint64
	fadeStarted bool
	fadeGen     uint64
	fadeLevel   float64

	creditDelay time.Duration
	crossfade   time.Duration
	minGain     float64
	maxGain     float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s core.Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithCreditDelay sets how long a play must last before it is credited.
func WithCreditDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.creditDelay = d
		}
	}
}

// WithCrossfade sets the fade-out window. Zero disables the fade.
func WithCrossfade(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.crossfade = d
		}
	}
}

// WithGainRange sets the equalizer gain bounds in dB.
func WithGainRange(lo, hi float64) Option {
	return func(e *Engine) {
		if lo <= 0 && hi >= 0 && lo < hi {
			e.minGain, e.maxGain = lo, hi
		}
	}
}

// New creates an engine bound to transport. The engine registers itself
// as the transport's listener.
func New(cat *catalog.Catalog, q *queue.Queue, h *history.History, transport core.Transport, opts ...Option) *Engine {
	e := &Engine{
		catalog:     cat,
		queue:       q,
		history:     h,
		transport:   transport,
		scheduler:   RealScheduler{},
		logger:      zap.NewNop(),
		state:       core.StateIdle,
		volume:      DefaultVolume,
		speed:       1,
		creditDelay: DefaultCreditDelay,
		crossfade:   DefaultCrossfade,
		minGain:     -DefaultMaxGain,
		maxGain:     DefaultMaxGain,
	}
	for _, opt := range opts {
		opt(e)
	}

	transport.Bind(e)
	transport.SetVolume(e.volume)
	transport.SetRate(e.speed)

	return e
}

// Subscribe registers an observer for all future events.
func (e *Engine) Subscribe(o core.Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// State returns a snapshot of the engine.
func (e *Engine) State() core.PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := core.PlaybackState{
		State:       e.state,
		StateName:   e.state.String(),
		Progress:    e.position,
		Duration:    e.duration,
		Volume:      e.volume,
		Speed:       e.speed,
		Repeat:      e.repeat,
		RepeatName:  e.repeat.String(),
		Shuffled:    e.shuffled,
		Bands:       e.bands,
		FadeStarted: e.fadeStarted,
	}
	if e.hasCurrent {
		s.Track = e.catalog.ByID(e.currentID)
	}
	return s
}

// CurrentID returns the current track ID.
func (e *Engine) CurrentID() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentID, e.hasCurrent
}

// Close releases the transport.
func (e *Engine) Close() error {
	return e.transport.Close()
}

// run executes fn under the lock and then delivers the events it
// produced.
func (e *Engine) run(fn func()) {
	e.mu.Lock()
	fn()
	events := e.pending
	e.pending = nil
	observers := make([]core.Observer, len(e.observers))
	copy(observers, e.observers)
	e.mu.Unlock()

	for _, ev := range events {
		for _, o := range observers {
			o.OnEvent(ev)
		}
	}
}

func (e *Engine) emit(ev core.Event) {
	ev.Timestamp = time.Now()
	e.pending = append(e.pending, ev)
}

func (e *Engine) setState(s core.PlayerState) {
	if e.state == s {
		return
	}
	e.state = s
	e.emit(core.Event{Type: core.EventStateChanged, State: s})
}

// warn logs a rejected input or absorbed failure and reports it to
// observers.
func (e *Engine) warn(msg string, fields ...zap.Field) {
	e.logger.Warn(msg, fields...)
	e.emit(core.Event{Type: core.EventWarning, Message: msg})
}

// RealScheduler schedules work on the wall clock.
type RealScheduler struct{}

// AfterFunc runs f on its own goroutine after d.
func (RealScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
