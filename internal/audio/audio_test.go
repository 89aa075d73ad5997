package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/tessro/groove/internal/core"
	grooveerrors "github.com/tessro/groove/internal/errors"
)

func TestCheckSource(t *testing.T) {
	tests := []struct {
		source string
		ok     bool
	}{
		{"music/song.mp3", true},
		{"/abs/path/SONG.MP3", true},
		{"take.wav", true},
		{"", false},
		{"https://example.com/song.mp3", false},
		{"notes.txt", false},
		{"track.flac", false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			err := checkSource(tt.source)
			if tt.ok && err != nil {
				t.Errorf("checkSource(%q) error = %v", tt.source, err)
			}
			if !tt.ok && !errors.Is(err, grooveerrors.ErrUnsupportedSource) {
				t.Errorf("checkSource(%q) error = %v, want ErrUnsupportedSource", tt.source, err)
			}
		})
	}
}

func TestVolumeLevel(t *testing.T) {
	tests := []struct {
		gain   float64
		level  float64
		silent bool
	}{
		{1, 0, false},
		{0.5, -1, false},
		{0.25, -2, false},
		{0, 0, true},
		{-1, 0, true},
	}

	for _, tt := range tests {
		level, silent := volumeLevel(tt.gain)
		if level != tt.level || silent != tt.silent {
			t.Errorf("volumeLevel(%v) = %v, %v, want %v, %v", tt.gain, level, silent, tt.level, tt.silent)
		}
	}
}

func TestEqualizerSectionsSkipFlatBands(t *testing.T) {
	var gains [core.NumBands]float64
	if got := equalizerSections(gains); len(got) != 0 {
		t.Errorf("flat equalizer has %d sections, want 0", len(got))
	}

	gains[0] = 6
	gains[3] = -4
	got := equalizerSections(gains)
	if len(got) != 2 {
		t.Fatalf("got %d sections, want 2", len(got))
	}
	if got[0].F0 != 60 || got[0].G != 6 {
		t.Errorf("section 0 = %+v, want 60 Hz at +6 dB", got[0])
	}
	if got[1].F0 != 4000 || got[1].G != -4 {
		t.Errorf("section 1 = %+v, want 4000 Hz at -4 dB", got[1])
	}
}

func TestEqualizerStageRebuildsOnlyOnChange(t *testing.T) {
	src := &counter{}
	eq := newEqualizerStage(src, 44100)

	var gains [core.NumBands]float64
	if eq.set(gains) {
		t.Error("set(flat) on a fresh stage rebuilt the bank")
	}
	if eq.active != beep.Streamer(src) {
		t.Error("flat stage does not pass the source through")
	}

	gains[2] = 3
	if !eq.set(gains) {
		t.Error("set() with a new gain did not rebuild")
	}
	if eq.active == beep.Streamer(src) {
		t.Error("boosted stage still bypasses the filters")
	}
	if eq.set(gains) {
		t.Error("set() with unchanged gains rebuilt the bank")
	}

	if !eq.set([core.NumBands]float64{}) || eq.active != beep.Streamer(src) {
		t.Error("reset to flat did not restore the bypass")
	}
}

// counter streams 1, 2, 3, ... on both channels.
type counter struct{ n float64 }

func (c *counter) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		c.n++
		samples[i] = [2]float64{c.n, c.n}
	}
	return len(samples), true
}

func (c *counter) Err() error { return nil }

func TestTapKeepsLatestSamples(t *testing.T) {
	tp := newTap(&counter{}, 4)
	buf := make([][2]float64, 3)
	tp.Stream(buf)
	tp.Stream(buf)

	got := tp.snapshot()
	want := []float64{3, 4, 5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot() = %v, want %v", got, want)
		}
	}

	big := make([][2]float64, 10)
	tp.Stream(big)
	if got := tp.snapshot(); got[0] != 13 || got[3] != 16 {
		t.Errorf("snapshot() after long buffer = %v, want [13 14 15 16]", got)
	}
}

func TestAnalyserSilence(t *testing.T) {
	a := newAnalyser(core.FrequencyBins * 2)
	dst := make([]uint8, core.FrequencyBins)
	a.spectrum(make([]float64, core.FrequencyBins*2), dst)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("bin %d = %d on silence, want 0", i, v)
		}
	}
}

func TestAnalyserFindsTone(t *testing.T) {
	const size = core.FrequencyBins * 2
	a := newAnalyser(size)
	samples := make([]float64, size)
	for n := range samples {
		samples[n] = math.Sin(2 * math.Pi * 8 * float64(n) / size)
	}

	dst := make([]uint8, core.FrequencyBins)
	a.spectrum(samples, dst)
	if dst[8] != 255 {
		t.Errorf("bin 8 = %d, want 255", dst[8])
	}
	if dst[20] >= 50 {
		t.Errorf("bin 20 = %d, want well below the tone", dst[20])
	}
}

func TestAnalyserShortWindow(t *testing.T) {
	a := newAnalyser(8)
	dst := []uint8{9, 9, 9, 9}
	a.spectrum([]float64{1, 1}, dst)
	for i, v := range dst {
		if v != 0 {
			t.Errorf("bin %d = %d, want 0 for a short window", i, v)
		}
	}
}
