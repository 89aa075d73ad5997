package engine

import "time"

// startCrossfadeLocked ramps the output down to silence over the
// crossfade window in fadeSteps equal steps. The nominal volume is left
// untouched; each step scales whatever it is at that moment, so a volume
// change during the fade is kept.
func (e *Engine) startCrossfadeLocked() {
	e.fadeStarted = true
	e.fadeGen++
	e.fadeLevel = 1
	step := e.crossfade / fadeSteps
	e.scheduleFade(e.seq, e.fadeGen, 1, step)
}

// cancelFadeLocked stops a running fade and restores the nominal volume.
// Steps already scheduled see the new generation and do nothing.
func (e *Engine) cancelFadeLocked() {
	e.fadeStarted = false
	e.fadeGen++
	e.fadeLevel = 1
	e.transport.SetVolume(e.volume)
}

func (e *Engine) scheduleFade(seq, gen uint64, n int, step time.Duration) {
	e.scheduler.AfterFunc(step, func() {
		e.fadeStep(seq, gen, n, step)
	})
}

func (e *Engine) fadeStep(seq, gen uint64, n int, step time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq || gen != e.fadeGen || !e.fadeStarted {
		return
	}
	e.fadeLevel = 1 - float64(n)/fadeSteps
	e.transport.SetVolume(e.outputVolumeLocked())
	if n < fadeSteps {
		e.scheduleFade(seq, gen, n+1, step)
	}
}

// outputVolumeLocked is the volume the transport should play at: the
// nominal volume, scaled down while a fade is running.
func (e *Engine) outputVolumeLocked() float64 {
	if e.fadeStarted {
		return e.volume * e.fadeLevel
	}
	return e.volume
}
