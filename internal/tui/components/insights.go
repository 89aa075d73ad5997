package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/stats"
	"github.com/tessro/groove/internal/tui/styles"
)

// InsightTab selects what the insights panel shows.
type InsightTab int

const (
	TabHistory InsightTab = iota
	TabRecommended
	TabStats
)

var tabNames = []string{"History", "For You", "Stats"}

// Insights shows recently played tracks, recommendations or listening
// statistics.
type Insights struct {
	tab InsightTab
}

// NewInsights creates a new Insights component
func NewInsights() *Insights {
	return &Insights{tab: TabHistory}
}

// NextTab cycles the visible tab.
func (in *Insights) NextTab() {
	in.tab = (in.tab + 1) % InsightTab(len(tabNames))
}

// Tab returns the visible tab.
func (in *Insights) Tab() InsightTab {
	return in.tab
}

// InsightData is everything the panel can show.
type InsightData struct {
	History         []*core.Track
	Recommendations []*core.Track
	Stats           stats.Summary
	Started         time.Time
}

// Render renders the insights panel
func (in *Insights) Render(data InsightData, width, height int, focused bool) string {
	var tabs []string
	for i, name := range tabNames {
		if InsightTab(i) == in.tab {
			tabs = append(tabs, styles.PanelTitle(name, true))
		} else {
			tabs = append(tabs, styles.Dim.Render(" "+name+" "))
		}
	}
	title := strings.Join(tabs, styles.Dim.Render("|"))

	maxLines := height - 4
	var content string
	switch in.tab {
	case TabHistory:
		content = renderNumbered(data.History, "No history yet", width-4, maxLines)
	case TabRecommended:
		content = renderNumbered(data.Recommendations, "Nothing to recommend", width-4, maxLines)
	case TabStats:
		content = renderStats(data.Stats, data.Started, width-4, maxLines)
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

func renderNumbered(tracks []*core.Track, empty string, width, maxLines int) string {
	if len(tracks) == 0 {
		return styles.Muted.Render(empty)
	}

	// "XX. " (4) + " — " (3)
	const overhead = 7

	lines := make([]string, 0, maxLines)
	for i, track := range tracks {
		if i >= maxLines {
			break
		}
		title, artist := fitTitleArtist(track.Title, track.Artist, width-overhead)
		lines = append(lines, fmt.Sprintf("%s %s — %s",
			styles.Dim.Render(fmt.Sprintf("%2d.", i+1)),
			title,
			styles.Muted.Render(artist)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStats(s stats.Summary, started time.Time, width, maxLines int) string {
	lines := []string{
		fmt.Sprintf("%s %s", styles.Label.Render("Plays:    "), humanize.Comma(int64(s.TotalPlays))),
		fmt.Sprintf("%s %s", styles.Label.Render("Listened: "), FormatListening(s.ListeningTime)),
		fmt.Sprintf("%s %s", styles.Label.Render("Liked:    "), humanize.Comma(int64(s.LikedCount))),
		fmt.Sprintf("%s %s", styles.Label.Render("Playlists:"), humanize.Comma(int64(s.PlaylistCount))),
	}
	if !started.IsZero() {
		lines = append(lines, fmt.Sprintf("%s %s", styles.Label.Render("Session:  "), humanize.Time(started)))
	}

	if len(s.MostPlayed) > 0 {
		lines = append(lines, "", styles.Subtitle.Render("Most played"))
		for i, t := range s.MostPlayed {
			if len(lines) >= maxLines {
				break
			}
			title, _ := fitTitleArtist(t.Title, "", width-20)
			lines = append(lines, fmt.Sprintf("%s %s %s",
				styles.Dim.Render(fmt.Sprintf("%4s", humanize.Ordinal(i+1))),
				title,
				styles.Muted.Render(fmt.Sprintf("(%s plays)", humanize.Comma(int64(t.PlayCount))))))
		}
	}

	if len(lines) > maxLines && maxLines > 0 {
		lines = lines[:maxLines]
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// FormatListening renders a listening total as hours and minutes.
func FormatListening(d time.Duration) string {
	d = d.Truncate(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
