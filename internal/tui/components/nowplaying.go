package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/tui/styles"
)

// NowPlaying displays the current track, its progress and the spectrum.
type NowPlaying struct {
	bar progress.Model
}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(state core.PlaybackState, bars []uint8, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if !state.HasTrack() {
		content = styles.Muted.Render("Nothing playing. Press space to start.")
	} else {
		content = n.renderTrack(state, bars, width-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (n *NowPlaying) renderTrack(state core.PlaybackState, bars []uint8, width int) string {
	track := state.Track

	icon := styles.StatusIcon(state.IsPlaying())
	title := styles.Title.Width(max(width-6, 1)).Render(track.Title)
	artist := styles.Subtitle.Render(track.Artist)
	album := styles.Dim.Render(fmt.Sprintf("%s (%d) · %s", track.Album, track.Year, track.Genre))

	progressWidth := max(width-14, 10)
	n.bar.Width = progressWidth
	progressLine := fmt.Sprintf("%s %s %s",
		FormatDuration(state.Progress),
		n.bar.ViewAs(state.ProgressPercent()/100),
		FormatDuration(state.Duration))

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title+" "+styles.LikeIcon(track.Liked),
		"  "+artist,
		"  "+album,
		"",
		progressLine,
		"",
		"  "+styles.Bars(bars),
		"",
		renderSettings(state),
	)
}

func renderSettings(state core.PlaybackState) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("🔊 %d%%", int(state.Volume*100+0.5)))
	parts = append(parts, fmt.Sprintf("%gx", state.Speed))

	repeat := "repeat off"
	switch state.Repeat {
	case core.RepeatAll:
		repeat = "repeat all"
	case core.RepeatOne:
		repeat = "repeat one"
	}
	parts = append(parts, repeat)

	if state.Shuffled {
		parts = append(parts, "shuffle")
	}
	if state.FadeStarted {
		parts = append(parts, "fading")
	}
	return styles.Muted.Render(strings.Join(parts, " · "))
}

// FormatDuration renders d as m:ss.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
