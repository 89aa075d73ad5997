package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/tessro/groove/internal/core"
)

// SetVolume sets the nominal volume, clamped to [0,1].
func (e *Engine) SetVolume(v float64) {
	e.run(func() {
		e.setVolumeLocked(v)
	})
}

// AdjustVolume changes the nominal volume by delta.
func (e *Engine) AdjustVolume(delta float64) {
	e.run(func() {
		e.setVolumeLocked(e.volume + delta)
	})
}

func (e *Engine) setVolumeLocked(v float64) {
	if math.IsNaN(v) {
		e.warn("volume: not a number")
		return
	}
	e.volume = math.Max(0, math.Min(1, v))
	e.transport.SetVolume(e.outputVolumeLocked())
	e.emit(core.Event{Type: core.EventSettingsChanged})
}

// SetSpeed sets the playback rate. Non-positive rates are ignored.
func (e *Engine) SetSpeed(rate float64) {
	e.run(func() {
		if !(rate > 0) || math.IsInf(rate, 0) {
			e.warn("speed: rate must be positive", zap.Float64("rate", rate))
			return
		}
		e.speed = rate
		e.transport.SetRate(rate)
		e.emit(core.Event{Type: core.EventSettingsChanged})
	})
}

// SetRepeatMode sets the end-of-track behavior.
func (e *Engine) SetRepeatMode(m core.RepeatMode) {
	e.run(func() {
		if m < core.RepeatOff || m > core.RepeatOne {
			e.warn("repeat: invalid mode", zap.Int("mode", int(m)))
			return
		}
		e.repeat = m
		e.emit(core.Event{Type: core.EventSettingsChanged})
	})
}

// SetShuffle toggles random advancement when the queue is empty.
func (e *Engine) SetShuffle(enabled bool) {
	e.run(func() {
		e.shuffled = enabled
		e.emit(core.Event{Type: core.EventSettingsChanged})
	})
}

// SetEqualizerBand sets the gain of one band in dB, clamped to the
// configured range. Indices outside the band layout are ignored.
func (e *Engine) SetEqualizerBand(index int, gainDB float64) {
	e.run(func() {
		if index < 0 || index >= core.NumBands {
			e.warn("equalizer: band out of range", zap.Int("band", index))
			return
		}
		if math.IsNaN(gainDB) {
			e.warn("equalizer: gain not a number", zap.Int("band", index))
			return
		}
		gainDB = math.Max(e.minGain, math.Min(e.maxGain, gainDB))
		e.bands[index] = gainDB
		e.transport.SetBand(index, gainDB)
		e.emit(core.Event{Type: core.EventSettingsChanged})
	})
}

// ResetEqualizer sets every band to 0 dB.
func (e *Engine) ResetEqualizer() {
	e.run(func() {
		for i := range e.bands {
			e.bands[i] = 0
			e.transport.SetBand(i, 0)
		}
		e.emit(core.Event{Type: core.EventSettingsChanged})
	})
}

// FrequencyData returns the current spectrum. All bins are zero when
// the transport has no analysis signal.
func (e *Engine) FrequencyData() [core.FrequencyBins]uint8 {
	var bins [core.FrequencyBins]uint8
	if !e.transport.FrequencyData(bins[:]) {
		return [core.FrequencyBins]uint8{}
	}
	return bins
}
