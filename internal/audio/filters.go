package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/tessro/groove/internal/core"
)

// equalizerStage runs its source through a peaking filter per non-flat
// band. Any gain change rebuilds the whole filter bank, which drops the
// filters' history and can click while a band is being dragged; a set
// with unchanged gains keeps the running bank. Callers hold the speaker
// lock.
type equalizerStage struct {
	source beep.Streamer
	rate   beep.SampleRate
	active beep.Streamer
	gains  [core.NumBands]float64
}

func newEqualizerStage(source beep.Streamer, rate beep.SampleRate) *equalizerStage {
	return &equalizerStage{source: source, rate: rate, active: source}
}

// set applies gains and reports whether the filter bank was rebuilt.
func (s *equalizerStage) set(gains [core.NumBands]float64) bool {
	if gains == s.gains {
		return false
	}
	s.gains = gains
	sections := equalizerSections(gains)
	if len(sections) == 0 {
		s.active = s.source
		return true
	}
	s.active = effects.NewEqualizer(s.source, s.rate, sections)
	return true
}

func (s *equalizerStage) Stream(samples [][2]float64) (int, bool) {
	return s.active.Stream(samples)
}

func (s *equalizerStage) Err() error {
	return s.source.Err()
}

// equalizerSections builds one section per band with a non-zero gain.
// Bandwidth is one octave around the band frequency.
func equalizerSections(gains [core.NumBands]float64) effects.MonoEqualizerSections {
	var sections effects.MonoEqualizerSections
	for i, g := range gains {
		if g == 0 {
			continue
		}
		f := core.BandFrequencies[i]
		sections = append(sections, effects.MonoEqualizerSection{
			F0: f,
			Bf: f / 1.414,
			GB: g / 2,
			G0: 0,
			G:  g,
		})
	}
	return sections
}

// tap keeps the last size mono samples that passed through it.
type tap struct {
	source beep.Streamer
	ring   []float64
	next   int
}

func newTap(source beep.Streamer, size int) *tap {
	return &tap{source: source, ring: make([]float64, size)}
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	start := 0
	if n > len(t.ring) {
		start = n - len(t.ring)
	}
	for _, s := range samples[start:n] {
		t.ring[t.next] = (s[0] + s[1]) / 2
		t.next = (t.next + 1) % len(t.ring)
	}
	return n, ok
}

func (t *tap) Err() error {
	return t.source.Err()
}

// snapshot returns the ring in chronological order.
func (t *tap) snapshot() []float64 {
	out := make([]float64, 0, len(t.ring))
	out = append(out, t.ring[t.next:]...)
	return append(out, t.ring[:t.next]...)
}
