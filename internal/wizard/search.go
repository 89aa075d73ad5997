package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/groove/internal/tui/styles"
)

// SearchType narrows which track fields a query is matched against.
type SearchType int

const (
	SearchAll SearchType = iota
	SearchTitle
	SearchArtist
	SearchAlbum
	SearchGenre
	searchTypeCount
)

var searchTabs = []string{"All", "Title", "Artist", "Album", "Genre"}

// SearchResult is one track offered by the search wizard.
type SearchResult struct {
	ID       int
	Title    string
	Subtitle string
	Liked    bool
	Duration time.Duration
}

// SearchFunc is a function that performs a search.
type SearchFunc func(query string, searchType SearchType) ([]SearchResult, error)

// SearchModel is the bubbletea model for the search wizard.
type SearchModel struct {
	input      textinput.Model
	results    []SearchResult
	cursor     int
	offset     int
	searchType SearchType
	searchFunc SearchFunc
	selected   *SearchResult
	err        error
	debounce   time.Duration
	lastQuery  string
	searching  bool
	width      int
	height     int
}

// NewSearchModel creates a new search wizard model.
func NewSearchModel(searchFunc SearchFunc) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search by title, artist, album or genre..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return SearchModel{
		input:      ti,
		searchFunc: searchFunc,
		debounce:   200 * time.Millisecond,
		searchType: SearchAll,
		width:      80,
		height:     20,
	}
}

// Init initializes the model.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

type debounceMsg struct {
	query string
}

type searchResultsMsg struct {
	results []SearchResult
	err     error
}

// visibleRows is how many results fit under the input and tabs.
func (m SearchModel) visibleRows() int {
	return max(m.height-9, 3)
}

// moveCursor moves the cursor by delta and scrolls to keep it visible.
func (m *SearchModel) moveCursor(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.results)-1)
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.cursor < len(m.results) {
				m.selected = &m.results[m.cursor]
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil

		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil

		case "pgup":
			m.moveCursor(-m.visibleRows())
			return m, nil

		case "pgdown":
			m.moveCursor(m.visibleRows())
			return m, nil

		case "tab", "shift+tab":
			step := SearchType(1)
			if msg.String() == "shift+tab" {
				step = searchTypeCount - 1
			}
			m.searchType = (m.searchType + step) % searchTypeCount
			if m.input.Value() == "" {
				return m, nil
			}
			m.searching = true
			return m, m.doSearch(m.input.Value())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.moveCursor(0)

	case debounceMsg:
		if msg.query == m.input.Value() && msg.query != m.lastQuery {
			m.lastQuery = msg.query
			m.searching = true
			return m, m.doSearch(msg.query)
		}
		return m, nil

	case searchResultsMsg:
		m.searching = false
		m.results = msg.results
		m.err = msg.err
		m.cursor, m.offset = 0, 0
		return m, nil
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	if q := m.input.Value(); q != m.lastQuery {
		cmds = append(cmds, tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceMsg{query: q}
		}))
	}

	return m, tea.Batch(cmds...)
}

func (m SearchModel) doSearch(query string) tea.Cmd {
	search, searchType := m.searchFunc, m.searchType
	return func() tea.Msg {
		if query == "" {
			return searchResultsMsg{}
		}
		results, err := search(query, searchType)
		return searchResultsMsg{results: results, err: err}
	}
}

// View renders the model.
func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("🔍 Find a track"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	activeTab := lipgloss.NewStyle().Padding(0, 2).
		Background(styles.Primary).
		Foreground(lipgloss.Color("0"))
	tab := lipgloss.NewStyle().Padding(0, 2)
	for i, name := range searchTabs {
		if SearchType(i) == m.searchType {
			b.WriteString(activeTab.Render(name))
		} else {
			b.WriteString(tab.Render(name))
		}
	}
	if len(m.results) > 0 {
		b.WriteString(styles.Dim.Render(fmt.Sprintf("  %d of %d", m.cursor+1, len(m.results))))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.Warning.Render("Error: " + m.err.Error()))
	case m.searching:
		b.WriteString(styles.Muted.Render("Searching..."))
	case len(m.results) == 0 && m.input.Value() != "":
		b.WriteString(styles.Muted.Render("No tracks match"))
	default:
		end := min(m.offset+m.visibleRows(), len(m.results))
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderResult(i))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Dim.Render("↑/↓ navigate • tab field • enter play • esc cancel"))

	return b.String()
}

func (m SearchModel) renderResult(i int) string {
	r := m.results[i]
	heart := "  "
	if r.Liked {
		heart = styles.Liked.Render("♥ ")
	}
	line := heart + r.Title
	if r.Subtitle != "" {
		line += " " + styles.Muted.Render(r.Subtitle)
	}
	if r.Duration > 0 {
		secs := int(r.Duration.Seconds())
		line += " " + styles.Dim.Render(fmt.Sprintf("%d:%02d", secs/60, secs%60))
	}

	if i == m.cursor {
		return styles.Selected.Render("▸ " + line)
	}
	return "  " + line
}

// Selected returns the selected result, or nil if none.
func (m SearchModel) Selected() *SearchResult {
	return m.selected
}

// RunSearch runs the search wizard and returns the selected result.
func RunSearch(searchFunc SearchFunc) (*SearchResult, error) {
	p := tea.NewProgram(NewSearchModel(searchFunc), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(SearchModel).Selected(), nil
}
