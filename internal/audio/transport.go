// Package audio plays catalog tracks on the local sound device through
// a beep speaker pipeline.
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"

	"github.com/tessro/groove/internal/core"
	grooveerrors "github.com/tessro/groove/internal/errors"
)

// Config holds speaker settings.
type Config struct {
	SampleRate int
	BufferMS   int
	Quality    int

	// UpdateInterval is how often progress is reported to the listener.
	UpdateInterval time.Duration
}

const defaultUpdateInterval = 250 * time.Millisecond

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Transport implements core.Transport on top of the beep speaker.
type Transport struct {
	mu       sync.Mutex
	cfg      Config
	rate     beep.SampleRate
	logger   *zap.Logger
	listener core.TransportListener

	// Pipeline for the loaded track, outermost last.
	stream    beep.StreamSeekCloser
	format    beep.Format
	resampler *beep.Resampler
	eq        *equalizerStage
	tap       *tap
	volume    *effects.Volume
	ctrl      *beep.Ctrl

	// attached counts speaker.Play calls; end callbacks from an earlier
	// attachment are ignored.
	attached  int
	onSpeaker bool
	speed     float64
	gain      float64
	bands     [core.NumBands]float64
	analyser  *analyser
	done      chan struct{}
	closeOnce sync.Once
}

// New opens the audio device. It fails with ErrBackendUnavailable when
// no output can be initialised.
func New(cfg Config, logger *zap.Logger) (*Transport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if cfg.BufferMS <= 0 {
		cfg.BufferMS = 100
	}
	if cfg.Quality <= 0 {
		cfg.Quality = 4
	}
	if cfg.UpdateInterval <= 0 {
		cfg.UpdateInterval = defaultUpdateInterval
	}

	rate := beep.SampleRate(cfg.SampleRate)
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, rate.N(time.Duration(cfg.BufferMS)*time.Millisecond))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("%w: %v", grooveerrors.ErrBackendUnavailable, speakerErr)
	}

	t := &Transport{
		cfg:      cfg,
		rate:     rate,
		logger:   logger,
		speed:    1,
		gain:     1,
		analyser: newAnalyser(core.FrequencyBins * 2),
		done:     make(chan struct{}),
	}
	go t.monitor()
	return t, nil
}

// Bind registers the listener for progress and end notifications.
func (t *Transport) Bind(l core.TransportListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listener = l
}

// Load decodes source and builds a paused pipeline for it. The previous
// track is stopped and released.
func (t *Transport) Load(source string) error {
	stream, format, err := open(source)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	speaker.Clear()
	t.onSpeaker = false
	t.attached++
	if t.stream != nil {
		_ = t.stream.Close()
	}

	t.stream = stream
	t.format = format
	t.resampler = beep.ResampleRatio(t.cfg.Quality, t.ratio(), stream)
	t.eq = newEqualizerStage(t.resampler, t.rate)
	t.eq.set(t.bands)
	t.tap = newTap(t.eq, len(t.analyser.window))
	t.volume = &effects.Volume{Streamer: t.tap, Base: 2}
	applyGain(t.volume, t.gain)
	t.ctrl = &beep.Ctrl{Streamer: t.volume, Paused: true}

	t.logger.Debug("loaded source",
		zap.String("source", source),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Duration("length", format.SampleRate.D(stream.Len())))
	return nil
}

// Play starts or resumes output. A track that already ran to its end is
// handed back to the speaker.
func (t *Transport) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctrl == nil {
		return fmt.Errorf("%w: nothing loaded", grooveerrors.ErrTransportFailure)
	}
	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()

	if !t.onSpeaker {
		t.attached++
		id := t.attached
		t.onSpeaker = true
		speaker.Play(beep.Seq(t.ctrl, beep.Callback(func() {
			// Runs on the speaker goroutine with the speaker lock held.
			go t.ended(id)
		})))
	}
	return nil
}

// Pause holds output at the current position.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ctrl == nil {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
}

// Seek moves to position, clamped to the track.
func (t *Transport) Seek(position time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stream == nil {
		return
	}

	n := t.format.SampleRate.N(position)
	if n < 0 {
		n = 0
	}
	if last := t.stream.Len() - 1; n > last {
		n = max(last, 0)
	}
	speaker.Lock()
	err := t.stream.Seek(n)
	speaker.Unlock()
	if err != nil {
		t.logger.Warn("seek failed", zap.Duration("position", position), zap.Error(err))
	}
}

// SetVolume sets the linear output gain.
func (t *Transport) SetVolume(volume float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gain = volume
	if t.volume == nil {
		return
	}
	speaker.Lock()
	applyGain(t.volume, volume)
	speaker.Unlock()
}

// SetRate changes the playback speed. Pitch follows the rate.
func (t *Transport) SetRate(rate float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rate <= 0 {
		return
	}
	t.speed = rate
	if t.resampler == nil {
		return
	}
	speaker.Lock()
	t.resampler.SetRatio(t.ratio())
	speaker.Unlock()
}

// SetBand sets the gain of one equalizer band.
func (t *Transport) SetBand(index int, gainDB float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= core.NumBands {
		return
	}
	t.bands[index] = gainDB
	if t.eq == nil {
		return
	}
	speaker.Lock()
	t.eq.set(t.bands)
	speaker.Unlock()
}

// FrequencyData fills dst with the spectrum of the most recent output.
func (t *Transport) FrequencyData(dst []uint8) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tap == nil || !t.onSpeaker {
		return false
	}
	speaker.Lock()
	samples := t.tap.snapshot()
	speaker.Unlock()
	t.analyser.spectrum(samples, dst)
	return true
}

// Close stops output and releases the loaded track. The speaker itself
// stays initialised for the life of the process.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() { close(t.done) })

	t.mu.Lock()
	defer t.mu.Unlock()
	speaker.Clear()
	t.onSpeaker = false
	t.ctrl = nil
	t.tap = nil
	if t.stream == nil {
		return nil
	}
	err := t.stream.Close()
	t.stream = nil
	return err
}

func (t *Transport) ratio() float64 {
	return float64(t.format.SampleRate) / float64(t.rate) * t.speed
}

func (t *Transport) ended(id int) {
	t.mu.Lock()
	if id != t.attached || !t.onSpeaker {
		t.mu.Unlock()
		return
	}
	t.onSpeaker = false
	l := t.listener
	t.mu.Unlock()

	if l != nil {
		l.HandleEnded()
	}
}

// monitor reports the position of the loaded track while it is on the
// speaker. The listener is called without t.mu held.
func (t *Transport) monitor() {
	ticker := time.NewTicker(t.cfg.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.stream == nil || !t.onSpeaker || t.listener == nil {
				t.mu.Unlock()
				continue
			}
			speaker.Lock()
			position := t.format.SampleRate.D(t.stream.Position())
			length := t.format.SampleRate.D(t.stream.Len())
			speaker.Unlock()
			l := t.listener
			t.mu.Unlock()

			l.HandleTimeUpdate(position, length)
		}
	}
}

// applyGain maps a linear gain onto an exponential volume effect.
func applyGain(v *effects.Volume, gain float64) {
	v.Volume, v.Silent = volumeLevel(gain)
}

func volumeLevel(gain float64) (level float64, silent bool) {
	if gain <= 0 {
		return 0, true
	}
	return math.Log2(gain), false
}

// open decodes a local audio file by extension.
func open(source string) (beep.StreamSeekCloser, beep.Format, error) {
	if err := checkSource(source); err != nil {
		return nil, beep.Format{}, err
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %v", grooveerrors.ErrTransportFailure, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(source)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: decode %s: %v", grooveerrors.ErrTransportFailure, source, err)
	}
	return stream, format, nil
}

func checkSource(source string) error {
	if source == "" {
		return fmt.Errorf("%w: empty source", grooveerrors.ErrUnsupportedSource)
	}
	if strings.Contains(source, "://") {
		return fmt.Errorf("%w: %s (only local files can be played)", grooveerrors.ErrUnsupportedSource, source)
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".mp3", ".wav":
		return nil
	}
	return fmt.Errorf("%w: %s", grooveerrors.ErrUnsupportedSource, source)
}
