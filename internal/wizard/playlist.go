package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/tui/styles"
)

// PlaylistModel is the bubbletea model for the playlist picker.
type PlaylistModel struct {
	playlists []*core.Playlist
	cursor    int
	selected  *core.Playlist
	width     int
	height    int
}

var playlistItemStyle = lipgloss.NewStyle().PaddingLeft(2)

// NewPlaylistModel creates a new playlist picker model.
func NewPlaylistModel(playlists []*core.Playlist) PlaylistModel {
	return PlaylistModel{
		playlists: playlists,
		width:     80,
		height:    20,
	}
}

// Init initializes the model.
func (m PlaylistModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PlaylistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if len(m.playlists) > 0 && m.cursor < len(m.playlists) {
				m.selected = m.playlists[m.cursor]
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.playlists)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = max(len(m.playlists)-1, 0)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m PlaylistModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("🎶 Select Playlist"))
	b.WriteString("\n\n")

	if len(m.playlists) == 0 {
		b.WriteString(styles.Dim.Render("No playlists found"))
		b.WriteString("\n\n")
		b.WriteString(styles.Dim.Render("Create one with: groove playlist create NAME"))
	} else {
		for i, p := range m.playlists {
			var line strings.Builder

			if p.Editable {
				line.WriteString(styles.Playing.Render("● "))
			} else {
				line.WriteString(styles.Dim.Render("○ "))
			}
			line.WriteString(p.Name)
			line.WriteString(" " + styles.Dim.Render(fmt.Sprintf("(%d tracks)", p.Len())))

			if i == m.cursor {
				b.WriteString(styles.Selected.PaddingLeft(2).Render("▸ " + line.String()))
			} else {
				b.WriteString(playlistItemStyle.Render("  " + line.String()))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Dim.Render("↑/↓ navigate • enter select • esc quit"))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render("● editable  ○ built-in"))

	return b.String()
}

// Selected returns the selected playlist, or nil if none.
func (m PlaylistModel) Selected() *core.Playlist {
	return m.selected
}

// RunPlaylistPicker runs the playlist picker and returns the selection.
func RunPlaylistPicker(playlists []*core.Playlist) (*core.Playlist, error) {
	model := NewPlaylistModel(playlists)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(PlaylistModel).Selected(), nil
}
