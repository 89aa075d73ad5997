package engine

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/groove/internal/core"
)

// Play loads and starts the track with the given ID. Unknown IDs are
// ignored with a warning.
func (e *Engine) Play(id int) {
	e.run(func() {
		e.playLocked(id)
	})
}

func (e *Engine) playLocked(id int) {
	track := e.catalog.ByID(id)
	if track == nil {
		e.warn("play: unknown track", zap.Int("track", id))
		return
	}

	e.seq++
	seq := e.seq
	e.currentID, e.hasCurrent = id, true
	e.cancelFadeLocked()
	e.position, e.lastTick = 0, 0
	e.duration = track.Duration

	e.setState(core.StateLoading)
	e.emit(core.Event{Type: core.EventTrackChanged, Track: track, Duration: track.Duration})

	e.scheduler.AfterFunc(e.creditDelay, func() {
		e.credit(seq, id)
	})

	if err := e.transport.Load(track.Source); err != nil {
		e.transportFailed("load", err, id)
		return
	}
	if err := e.transport.Play(); err != nil {
		e.transportFailed("play", err, id)
		return
	}
	e.setState(core.StatePlaying)
}

func (e *Engine) transportFailed(op string, err error, id int) {
	e.logger.Warn("transport failure", zap.String("op", op), zap.Int("track", id), zap.Error(err))
	e.emit(core.Event{Type: core.EventWarning, Message: op + ": " + err.Error()})
	e.setState(core.StatePaused)
}

// credit counts a play if the play that scheduled it is still current
// and still playing.
func (e *Engine) credit(seq uint64, id int) {
	e.run(func() {
		if seq != e.seq || !e.hasCurrent || e.currentID != id || e.state != core.StatePlaying {
			return
		}
		if _, ok := e.catalog.IncrementPlayCount(id); !ok {
			return
		}
		e.logger.Debug("play credited", zap.Int("track", id))
		e.emit(core.Event{
			Type:  core.EventPlayCredited,
			Track: e.catalog.ByID(id),
			Delta: e.creditDelay,
		})
	})
}

// Pause halts output.
func (e *Engine) Pause() {
	e.run(func() {
		if e.state != core.StatePlaying && e.state != core.StateLoading {
			return
		}
		e.transport.Pause()
		e.setState(core.StatePaused)
	})
}

// Resume continues the current track. A track that has finished starts
// again from the beginning.
func (e *Engine) Resume() {
	e.run(e.resumeLocked)
}

func (e *Engine) resumeLocked() {
	if !e.hasCurrent {
		e.warn("resume: nothing loaded")
		return
	}
	if e.state == core.StatePlaying {
		return
	}
	if e.state == core.StateIdle || e.state == core.StateEnded {
		e.cancelFadeLocked()
		e.seekLocked(0)
	}
	if err := e.transport.Play(); err != nil {
		e.transportFailed("resume", err, e.currentID)
		return
	}
	e.setState(core.StatePlaying)
}

// TogglePlayPause pauses when playing and resumes otherwise.
func (e *Engine) TogglePlayPause() {
	e.run(func() {
		if e.state == core.StatePlaying {
			e.transport.Pause()
			e.setState(core.StatePaused)
			return
		}
		e.resumeLocked()
	})
}

// Seek jumps to percent (0-100) of the track. It does nothing while the
// duration is unknown.
func (e *Engine) Seek(percent float64) {
	e.run(func() {
		if !e.hasCurrent {
			return
		}
		if e.duration <= 0 || math.IsNaN(percent) {
			e.warn("seek: duration unknown")
			return
		}
		percent = math.Max(0, math.Min(100, percent))
		e.seekLocked(time.Duration(percent / 100 * float64(e.duration)))
	})
}

// SeekBy moves the position by delta, clamped to the track bounds.
func (e *Engine) SeekBy(delta time.Duration) {
	e.run(func() {
		if !e.hasCurrent || e.duration <= 0 {
			return
		}
		pos := e.position + delta
		if pos < 0 {
			pos = 0
		}
		if pos > e.duration {
			pos = e.duration
		}
		e.seekLocked(pos)
	})
}

func (e *Engine) seekLocked(pos time.Duration) {
	if e.fadeStarted && e.duration-pos > e.crossfade {
		e.cancelFadeLocked()
	}
	e.transport.Seek(pos)
	e.position, e.lastTick = pos, pos
	e.emit(core.Event{Type: core.EventProgress, Position: pos, Duration: e.duration})
}

// Next plays the queue head, or a random track when shuffling. With
// neither available it does nothing.
func (e *Engine) Next() {
	e.run(func() {
		if id, ok := e.nextLocked(); ok {
			e.playLocked(id)
		}
	})
}

// Previous restarts the current track when it is past the restart
// threshold, and otherwise plays the previous history entry.
func (e *Engine) Previous() {
	e.run(func() {
		if e.hasCurrent && e.position > RestartThreshold {
			e.seekLocked(0)
			return
		}
		id, ok := e.history.Previous()
		if !ok {
			return
		}
		e.emit(core.Event{Type: core.EventHistoryChanged})
		e.playLocked(id)
	})
}

// nextLocked picks the track to advance to. Queue entries that no
// longer resolve are dropped.
func (e *Engine) nextLocked() (int, bool) {
	for {
		id, ok := e.queue.DequeueFront()
		if !ok {
			break
		}
		e.emit(core.Event{Type: core.EventQueueChanged})
		if e.catalog.Contains(id) {
			return id, true
		}
		e.logger.Warn("dropping unknown queued track", zap.Int("track", id))
	}

	if e.shuffled {
		var exclude []int
		if e.hasCurrent {
			exclude = append(exclude, e.currentID)
		}
		if picks := e.catalog.RandomExcluding(1, exclude...); len(picks) > 0 {
			return picks[0].ID, true
		}
	}
	return 0, false
}

// HandleTimeUpdate receives transport progress.
func (e *Engine) HandleTimeUpdate(position, duration time.Duration) {
	e.run(func() {
		if !e.hasCurrent || duration <= 0 {
			return
		}
		e.duration = duration

		if e.state == core.StatePlaying {
			if delta := position - e.lastTick; delta > 0 && delta <= maxListenDelta {
				e.emit(core.Event{Type: core.EventListened, Delta: delta})
			}
		}
		e.lastTick = position
		e.position = position
		e.emit(core.Event{Type: core.EventProgress, Position: position, Duration: duration})

		if e.crossfade > 0 && !e.fadeStarted && duration-position <= e.crossfade {
			e.startCrossfadeLocked()
		}
	})
}

// HandleEnded receives the transport's end-of-track notification and
// applies the repeat, queue and shuffle rules.
func (e *Engine) HandleEnded() {
	e.run(func() {
		if !e.hasCurrent || e.state != core.StatePlaying {
			return
		}
		id := e.currentID

		e.cancelFadeLocked()
		e.position = e.duration
		e.setState(core.StateEnded)
		e.emit(core.Event{Type: core.EventEnded, Track: e.catalog.ByID(id)})

		e.history.Record(id)
		e.emit(core.Event{Type: core.EventHistoryChanged})

		switch {
		case e.repeat == core.RepeatOne:
			e.playLocked(id)
		case e.repeat == core.RepeatAll || !e.queue.IsEmpty() || e.shuffled:
			if next, ok := e.nextLocked(); ok {
				e.playLocked(next)
				return
			}
			e.setState(core.StateIdle)
		default:
			e.setState(core.StateIdle)
		}
	})
}
