package core

import "time"

// Transport is the audio output driven by the playback engine.
type Transport interface {
	// Load prepares source for playback from the beginning.
	Load(source string) error
	Play() error
	Pause()
	Seek(position time.Duration)

	// SetVolume sets the output gain in [0,1].
	SetVolume(volume float64)
	SetRate(rate float64)
	SetBand(index int, gainDB float64)

	// FrequencyData fills dst with byte-scaled magnitudes. It returns
	// false when no analysis signal is available.
	FrequencyData(dst []uint8) bool

	// Bind registers the listener that receives progress and end
	// notifications.
	Bind(listener TransportListener)
	Close() error
}

// TransportListener receives notifications from a Transport.
type TransportListener interface {
	HandleTimeUpdate(position, duration time.Duration)
	HandleEnded()
}

// Scheduler runs deferred work. Implementations call f on their own
// goroutine once d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}
