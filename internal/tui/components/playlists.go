package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/tui/styles"
)

// Playlists displays the playlists with the loaded one marked.
type Playlists struct {
	selected int
}

// NewPlaylists creates a new Playlists component
func NewPlaylists() *Playlists {
	return &Playlists{selected: 0}
}

// SelectNext selects the next playlist
func (p *Playlists) SelectNext() {
	p.selected++
}

// SelectPrev selects the previous playlist
func (p *Playlists) SelectPrev() {
	if p.selected > 0 {
		p.selected--
	}
}

// Selected returns the selected playlist index
func (p *Playlists) Selected() int {
	return p.selected
}

// Render renders the playlists panel
func (p *Playlists) Render(playlists []*core.Playlist, current string, width, height int, focused bool) string {
	title := styles.PanelTitle("Playlists", focused)

	var content string
	if len(playlists) == 0 {
		content = styles.Muted.Render("No playlists")
	} else {
		content = p.renderPlaylists(playlists, current, height-4, focused)
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

func (p *Playlists) renderPlaylists(playlists []*core.Playlist, current string, maxLines int, focused bool) string {
	if p.selected >= len(playlists) {
		p.selected = len(playlists) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}

	// Keep the selection visible
	start := 0
	if maxLines > 0 && p.selected >= maxLines {
		start = p.selected - maxLines + 1
	}

	lines := make([]string, 0, len(playlists))
	for i := start; i < len(playlists); i++ {
		pl := playlists[i]

		selector := "  "
		if focused && i == p.selected {
			selector = "▸ "
		}

		icon := "♪"
		switch pl.ID {
		case core.PlaylistAll:
			icon = "≡"
		case core.PlaylistLiked:
			icon = "♥"
		}

		active := ""
		if pl.ID == current {
			active = styles.Playing.Render(" ●")
		}

		name := pl.Name
		if focused && i == p.selected {
			name = styles.Highlight.Render(name)
		}

		line := fmt.Sprintf("%s%s %s %s%s", selector, icon, name, styles.Dim.Render(fmt.Sprintf("(%d)", pl.Len())), active)
		lines = append(lines, line)

		if len(lines) >= maxLines {
			break
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
