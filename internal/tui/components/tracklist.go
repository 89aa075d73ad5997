package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/tui/styles"
)

// TrackList displays a scrollable, selectable list of tracks. It backs
// the tracks and queue panels.
type TrackList struct {
	title    string
	empty    string
	selected int
	offset   int
	cache    renderCache
}

// NewTrackList creates a list panel with the given title and the text
// shown when it has no tracks.
func NewTrackList(title, empty string) *TrackList {
	return &TrackList{title: title, empty: empty}
}

// SelectNext moves the selection down.
func (l *TrackList) SelectNext() {
	l.selected++
}

// SelectPrev moves the selection up.
func (l *TrackList) SelectPrev() {
	if l.selected > 0 {
		l.selected--
	}
}

// Selected returns the selected index
func (l *TrackList) Selected() int {
	return l.selected
}

// Clamp keeps the selection inside a list of n entries.
func (l *TrackList) Clamp(n int) {
	if l.selected >= n {
		l.selected = n - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

type trackRow struct {
	ID     int
	Title  string
	Artist string
	Liked  bool
}

type trackListKey struct {
	Title    string
	Rows     []trackRow
	Current  int
	Width    int
	Height   int
	Focused  bool
	Selected int
	Offset   int
}

// Render renders the panel. The track with ID current is marked as
// playing.
func (l *TrackList) Render(tracks []*core.Track, current, width, height int, focused bool) string {
	l.Clamp(len(tracks))
	l.scroll(height - 4)

	key := trackListKey{
		Title:    l.title,
		Current:  current,
		Width:    width,
		Height:   height,
		Focused:  focused,
		Selected: l.selected,
		Offset:   l.offset,
	}
	for _, t := range tracks {
		key.Rows = append(key.Rows, trackRow{ID: t.ID, Title: t.Title, Artist: t.Artist, Liked: t.Liked})
	}

	return l.cache.get(key, func() string {
		title := styles.PanelTitle(fmt.Sprintf("%s (%d)", l.title, len(tracks)), focused)

		var content string
		if len(tracks) == 0 {
			content = styles.Muted.Render(l.empty)
		} else {
			content = l.renderTracks(tracks, current, width-4, height-4, focused)
		}

		panel := styles.Panel(focused).
			Width(width).
			Height(height)

		return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			content,
		))
	})
}

// scroll keeps the selection inside the visible window.
func (l *TrackList) scroll(visible int) {
	visible = max(visible-1, 1)
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+visible {
		l.offset = l.selected - visible + 1
	}
}

func (l *TrackList) renderTracks(tracks []*core.Track, current, width, maxLines int, focused bool) string {
	visibleCount := max(maxLines-1, 1) // leave room for "more" indicator

	start := l.offset
	end := min(start+visibleCount, len(tracks))

	lines := make([]string, 0, end-start+1)

	// "XX. " (4) + marker (2) + " — " (3) + heart (2)
	const overhead = 11

	for i := start; i < end; i++ {
		track := tracks[i]
		num := fmt.Sprintf("%2d.", i+1)
		title, artist := fitTitleArtist(track.Title, track.Artist, width-overhead)

		marker := "  "
		if track.ID == current {
			marker = styles.Playing.Render("▶ ")
		}

		line := fmt.Sprintf("%s %s%s — %s %s",
			styles.Dim.Render(num),
			marker,
			title,
			styles.Muted.Render(artist),
			styles.LikeIcon(track.Liked))

		if focused && i == l.selected {
			line = styles.Selected.Render(line)
		}
		lines = append(lines, line)
	}

	if end < len(tracks) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fitTitleArtist truncates title and artist to share available columns,
// giving the artist at least a third.
func fitTitleArtist(title, artist string, available int) (string, string) {
	if len(title)+len(artist) <= available {
		return title, artist
	}

	minArtist := max(available/3, 8)
	if minArtist > available-8 {
		minArtist = available - 8
	}
	artistSpace := min(len(artist), minArtist)
	titleSpace := available - artistSpace

	return truncate(title, titleSpace), truncate(artist, artistSpace)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
