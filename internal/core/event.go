package core

import "time"

// EventType identifies a change reported to observers.
type EventType int

const (
	EventTrackChanged EventType = iota
	EventStateChanged
	EventProgress
	EventListened
	EventPlayCredited
	EventEnded
	EventQueueChanged
	EventHistoryChanged
	EventLikedChanged
	EventStatsChanged
	EventPlaylistsChanged
	EventSettingsChanged
	EventWarning
)

func (t EventType) String() string {
	switch t {
	case EventTrackChanged:
		return "track"
	case EventStateChanged:
		return "state"
	case EventProgress:
		return "progress"
	case EventListened:
		return "listened"
	case EventPlayCredited:
		return "credited"
	case EventEnded:
		return "ended"
	case EventQueueChanged:
		return "queue"
	case EventHistoryChanged:
		return "history"
	case EventLikedChanged:
		return "liked"
	case EventStatsChanged:
		return "stats"
	case EventPlaylistsChanged:
		return "playlists"
	case EventSettingsChanged:
		return "settings"
	case EventWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Event describes a single state change. Only the fields relevant to
// Type are set.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Track     *Track
	State     PlayerState
	Position  time.Duration
	Duration  time.Duration
	Delta     time.Duration
	Message   string
}

// Observer receives events. OnEvent is never called while the emitter
// holds its own locks, so observers may call back into it.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) {
	f(e)
}
