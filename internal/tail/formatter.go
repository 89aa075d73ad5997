package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/groove/internal/core"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template. Templates that fail to
// parse are ignored.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e))
	}
	parts = append(parts, describe(e))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      e.Type.String(),
		Emoji:     eventEmoji(e),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
		State:     e.State.State.String(),
		Volume:    int(e.State.Volume*100 + 0.5),
		Speed:     e.State.Speed,
		Repeat:    e.State.Repeat.String(),
		Shuffle:   e.State.Shuffled,
		Message:   e.Message,
	}

	if t := e.subject(); t != nil {
		data.Title = t.Title
		data.Artist = t.Artist
		data.Album = t.Album
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Artist    string
	Album     string
	State     string
	Volume    int
	Speed     float64
	Repeat    string
	Shuffle   bool
	Message   string
}

// describe returns a human-readable description of the event.
func describe(e Event) string {
	t := e.subject()
	switch e.Type {
	case core.EventTrackChanged:
		if t != nil {
			return fmt.Sprintf("Now playing: %s - %s", t.Artist, t.Title)
		}
		return "Track changed"

	case core.EventStateChanged:
		switch e.Event.State {
		case core.StatePlaying:
			return "Playing"
		case core.StatePaused:
			return "Paused"
		case core.StateLoading:
			return "Loading"
		case core.StateEnded:
			return "Ended"
		default:
			return "Stopped"
		}

	case core.EventProgress:
		return fmt.Sprintf("Progress: %s / %s", formatDuration(e.Position), formatDuration(e.Duration))

	case core.EventListened:
		return fmt.Sprintf("Listened: +%s", e.Delta)

	case core.EventPlayCredited:
		if t != nil {
			return fmt.Sprintf("Counted play: %s - %s", t.Artist, t.Title)
		}
		return "Counted play"

	case core.EventEnded:
		if t != nil {
			return fmt.Sprintf("Finished: %s - %s", t.Artist, t.Title)
		}
		return "Track finished"

	case core.EventQueueChanged:
		return "Queue updated"

	case core.EventHistoryChanged:
		return "History updated"

	case core.EventLikedChanged:
		if t == nil {
			return "Likes changed"
		}
		if t.Liked {
			return fmt.Sprintf("Liked: %s - %s", t.Artist, t.Title)
		}
		return fmt.Sprintf("Unliked: %s - %s", t.Artist, t.Title)

	case core.EventStatsChanged:
		return "Stats updated"

	case core.EventPlaylistsChanged:
		return "Playlists updated"

	case core.EventSettingsChanged:
		s := e.State
		shuffle := "off"
		if s.Shuffled {
			shuffle = "on"
		}
		return fmt.Sprintf("Volume: %d%% | Speed: %gx | Repeat: %s | Shuffle: %s",
			int(s.Volume*100+0.5), s.Speed, s.Repeat, shuffle)

	case core.EventWarning:
		return "Warning: " + e.Message

	default:
		return "Unknown event"
	}
}

func eventEmoji(e Event) string {
	switch e.Type {
	case core.EventTrackChanged:
		return "🎵"
	case core.EventStateChanged:
		if e.Event.State == core.StatePaused {
			return "⏸️"
		}
		if e.Event.State == core.StatePlaying {
			return "▶️"
		}
		return "⏹️"
	case core.EventProgress, core.EventListened:
		return "⏱️"
	case core.EventPlayCredited:
		return "💯"
	case core.EventEnded:
		return "✅"
	case core.EventQueueChanged:
		return "📋"
	case core.EventHistoryChanged:
		return "🕘"
	case core.EventLikedChanged:
		return "❤️"
	case core.EventStatsChanged:
		return "📊"
	case core.EventPlaylistsChanged:
		return "🗂️"
	case core.EventSettingsChanged:
		return "🎛️"
	case core.EventWarning:
		return "⚠️"
	default:
		return "❓"
	}
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
