package engine

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/tessro/groove/internal/core"
)

// fakeTransport records the calls made by the engine.
type fakeTransport struct {
	mu       sync.Mutex
	listener core.TransportListener
	loaded   []string
	playing  bool
	volumes  []float64
	rate     float64
	bands    [core.NumBands]float64
	seeks    []time.Duration
	failLoad map[string]bool
	failPlay bool
	spectrum []uint8
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failLoad: map[string]bool{}}
}

func (f *fakeTransport) Load(source string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad[source] {
		return errors.New("cannot open " + source)
	}
	f.loaded = append(f.loaded, source)
	f.playing = false
	return nil
}

func (f *fakeTransport) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPlay {
		return errors.New("device busy")
	}
	f.playing = true
	return nil
}

func (f *fakeTransport) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = false
}

func (f *fakeTransport) Seek(pos time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, pos)
}

func (f *fakeTransport) SetVolume(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes = append(f.volumes, v)
}

func (f *fakeTransport) SetRate(r float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = r
}

func (f *fakeTransport) SetBand(i int, db float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bands[i] = db
}

func (f *fakeTransport) FrequencyData(dst []uint8) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.spectrum == nil {
		return false
	}
	copy(dst, f.spectrum)
	return true
}

func (f *fakeTransport) Bind(l core.TransportListener) {
	f.listener = l
}

func (f *fakeTransport) Close() error {
	return nil
}

func (f *fakeTransport) lastVolume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.volumes) == 0 {
		return -1
	}
	return f.volumes[len(f.volumes)-1]
}

func (f *fakeTransport) loads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loaded...)
}

// manualScheduler fires callbacks only when Advance moves its clock.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []manualTimer
}

type manualTimer struct {
	at time.Duration
	f  func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers = append(s.timers, manualTimer{at: s.now + d, f: f})
}

// Advance moves the clock forward, firing due timers in time order,
// including timers scheduled by callbacks.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		sort.SliceStable(s.timers, func(i, j int) bool { return s.timers[i].at < s.timers[j].at })
		if len(s.timers) == 0 || s.timers[0].at > target {
			s.now = target
			s.mu.Unlock()
			return
		}
		t := s.timers[0]
		s.timers = s.timers[1:]
		s.now = t.at
		s.mu.Unlock()
		t.f()
	}
}

// recorder collects events delivered to it.
type recorder struct {
	mu     sync.Mutex
	events []core.Event
}

func (r *recorder) OnEvent(e core.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count(t core.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func (r *recorder) last(t core.EventType) (core.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return core.Event{}, false
}
