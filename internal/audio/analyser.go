package audio

import "math"

// Byte scaling range of the spectrum, in dBFS.
const (
	minDecibels = -100.0
	maxDecibels = -30.0
	smoothing   = 0.8
)

// analyser turns a window of samples into byte-scaled magnitudes, one
// bin per pair of samples, smoothed over successive calls.
type analyser struct {
	window []float64
	last   []float64
}

func newAnalyser(size int) *analyser {
	a := &analyser{
		window: make([]float64, size),
		last:   make([]float64, size/2),
	}
	// Blackman window.
	const alpha = 0.16
	for i := range a.window {
		x := 2 * math.Pi * float64(i) / float64(size)
		a.window[i] = (1-alpha)/2 - 0.5*math.Cos(x) + alpha/2*math.Cos(2*x)
	}
	return a
}

// spectrum writes up to len(dst) bins computed from samples, which must
// hold at least len(a.window) values.
func (a *analyser) spectrum(samples []float64, dst []uint8) {
	size := len(a.window)
	if len(samples) < size {
		clear(dst)
		return
	}
	samples = samples[len(samples)-size:]

	for k := 0; k < len(a.last) && k < len(dst); k++ {
		var re, im float64
		for n, s := range samples {
			v := s * a.window[n]
			angle := 2 * math.Pi * float64(k*n) / float64(size)
			re += v * math.Cos(angle)
			im -= v * math.Sin(angle)
		}
		mag := math.Hypot(re, im) / float64(size)
		a.last[k] = smoothing*a.last[k] + (1-smoothing)*mag
		dst[k] = scaleDecibels(a.last[k])
	}
}

func scaleDecibels(mag float64) uint8 {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := (db - minDecibels) / (maxDecibels - minDecibels) * 255
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
