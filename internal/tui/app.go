// Package tui implements the interactive dashboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/recommend"
	"github.com/tessro/groove/internal/session"
	"github.com/tessro/groove/internal/stats"
	"github.com/tessro/groove/internal/tail"
	"github.com/tessro/groove/internal/tui/components"
	"github.com/tessro/groove/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelTracks Panel = iota
	PanelQueue
	PanelPlaylists
	PanelInsights
	panelCount
)

const (
	searchDebounce = 300 * time.Millisecond
	seekStep       = 10 * time.Second
	volumeStep     = 0.1
	eqStep         = 1.0
	flashDuration  = 5 * time.Second
)

// Options configures the dashboard.
type Options struct {
	RefreshInterval time.Duration
	VisualizerBars  int
	Theme           string
}

// Model is the main TUI model
type Model struct {
	session *session.Session
	watcher *tail.Watcher
	opts    Options
	started time.Time

	width        int
	height       int
	focusedPanel Panel

	// Snapshots taken from the session
	state      core.PlaybackState
	bars       []uint8
	tracks     []*core.Track
	queue      []*core.Track
	playlists  []*core.Playlist
	playlistID string
	history    []*core.Track
	recs       []*core.Track
	stats      stats.Summary

	// Components
	nowPlaying    *components.NowPlaying
	tracksView    *components.TrackList
	queueView     *components.TrackList
	playlistsView *components.Playlists
	insightsView  *components.Insights
	help          help.Model

	// Overlays
	showHelp bool
	showEQ   bool
	eqBand   int

	showSearch    bool
	searchInput   textinput.Model
	searchResults []*core.Track
	searchCursor  int
	lastQuery     string

	// Status line message
	flash       string
	flashIsErr  bool
	flashExpiry time.Time

	quitting bool
}

// NewModel creates a new TUI model over a session. The model registers
// an event watcher with the session.
func NewModel(s *session.Session, opts Options) Model {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 250 * time.Millisecond
	}
	if opts.VisualizerBars <= 0 || opts.VisualizerBars > core.FrequencyBins {
		opts.VisualizerBars = core.FrequencyBins
	}
	styles.Use(opts.Theme)

	ti := textinput.New()
	ti.Placeholder = "Search title, artist, album..."
	ti.CharLimit = 100
	ti.Width = 50

	w := tail.NewWatcher(s.State, tail.WithBuffer(64))
	s.Subscribe(w)

	m := Model{
		session:       s,
		watcher:       w,
		opts:          opts,
		started:       time.Now(),
		focusedPanel:  PanelTracks,
		nowPlaying:    components.NewNowPlaying(),
		tracksView:    components.NewTrackList("Tracks", "This playlist is empty"),
		queueView:     components.NewTrackList("Up Next", "Queue is empty"),
		playlistsView: components.NewPlaylists(),
		insightsView:  components.NewInsights(),
		help:          help.New(),
		searchInput:   ti,
	}
	m.refresh()
	return m
}

// Messages
type tickMsg time.Time
type eventMsg tail.Event
type searchDebounceMsg struct{ query string }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.watcher.Events()
	return func() tea.Msg {
		return eventMsg(<-events)
	}
}

// refresh re-reads everything shown on screen from the session.
func (m *Model) refresh() {
	s := m.session
	m.state = s.State()
	m.tracks = s.CurrentTracks()
	m.queue = s.Queue()
	m.playlists = s.Playlists()
	if p := s.CurrentPlaylist(); p != nil {
		m.playlistID = p.ID
	}
	m.history = s.History()
	m.recs = s.Recommendations(recommend.DefaultCount)
	m.stats = s.Stats()
	m.refreshBars()
}

func (m *Model) refreshBars() {
	bins := m.session.Engine().FrequencyData()
	n := m.opts.VisualizerBars
	bars := make([]uint8, n)
	for i := range bars {
		bars[i] = bins[i*len(bins)/n]
	}
	m.bars = bars
}

func (m *Model) setFlash(msg string, isErr bool) {
	m.flash = msg
	m.flashIsErr = isErr
	m.flashExpiry = time.Now().Add(flashDuration)
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForEvent())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.state = m.session.State()
		m.refreshBars()
		if !m.flashExpiry.IsZero() && time.Now().After(m.flashExpiry) {
			m.flash = ""
		}
		return m, m.tick()

	case eventMsg:
		switch msg.Type {
		case core.EventProgress, core.EventListened:
			m.state = msg.State
		case core.EventWarning:
			m.setFlash(msg.Message, true)
			m.refresh()
		default:
			m.refresh()
		}
		return m, m.waitForEvent()

	case searchDebounceMsg:
		if msg.query == m.searchInput.Value() && msg.query != m.lastQuery {
			m.lastQuery = msg.query
			m.searchResults = m.session.Search(catalog.Filter{Query: msg.query})
			m.searchCursor = 0
		}
		return m, nil
	}

	// Forward other messages to textinput when search is active
	if m.showSearch {
		var inputCmd tea.Cmd
		m.searchInput, inputCmd = m.searchInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	if m.showSearch {
		return m.handleSearchKeyPress(msg)
	}

	if m.showEQ {
		return m.handleEQKeyPress(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, keys.Search):
		m.showSearch = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.searchResults = nil
		m.searchCursor = 0
		m.lastQuery = ""
		return m, textinput.Blink

	case key.Matches(msg, keys.Equalizer):
		m.showEQ = true
		return m, nil

	case key.Matches(msg, keys.NextPanel):
		m.focusedPanel = (m.focusedPanel + 1) % panelCount
		return m, nil

	case key.Matches(msg, keys.PrevPanel):
		m.focusedPanel = (m.focusedPanel + panelCount - 1) % panelCount
		return m, nil
	}

	// Playback controls. The session reports changes as events, which
	// trigger a refresh.
	s := m.session
	switch {
	case key.Matches(msg, keys.PlayPause):
		s.TogglePlayPause()
	case key.Matches(msg, keys.SeekFwd):
		s.Engine().SeekBy(seekStep)
	case key.Matches(msg, keys.SeekBack):
		s.Engine().SeekBy(-seekStep)
	case key.Matches(msg, keys.Next):
		s.Next()
	case key.Matches(msg, keys.Prev):
		s.Previous()
	case key.Matches(msg, keys.VolumeUp):
		s.Engine().AdjustVolume(volumeStep)
	case key.Matches(msg, keys.VolumeDown):
		s.Engine().AdjustVolume(-volumeStep)
	case key.Matches(msg, keys.Like):
		if liked, ok := s.ToggleLike(); ok && liked {
			m.setFlash("Added to Liked", false)
		} else if ok {
			m.setFlash("Removed from Liked", false)
		}
	case key.Matches(msg, keys.Shuffle):
		s.ToggleShuffle()
	case key.Matches(msg, keys.Repeat):
		mode := s.CycleRepeat()
		m.setFlash("Repeat: "+mode.String(), false)
	case key.Matches(msg, keys.Speed):
		speed := s.CycleSpeed()
		m.setFlash(fmt.Sprintf("Speed: %gx", speed), false)
	case key.Matches(msg, keys.Copy):
		m.copyNowPlaying()
	case key.Matches(msg, keys.Insights):
		m.insightsView.NextTab()
	default:
		m.handlePanelKey(msg)
	}
	return m, nil
}

func (m *Model) handlePanelKey(msg tea.KeyMsg) {
	s := m.session
	switch m.focusedPanel {
	case PanelTracks:
		switch {
		case key.Matches(msg, keys.Down):
			m.tracksView.SelectNext()
		case key.Matches(msg, keys.Up):
			m.tracksView.SelectPrev()
		case key.Matches(msg, keys.Select):
			if t := pick(m.tracks, m.tracksView.Selected()); t != nil {
				m.report(s.PlayFromList(t.ID))
			}
		case key.Matches(msg, keys.Enqueue):
			if t := pick(m.tracks, m.tracksView.Selected()); t != nil {
				if err := s.Enqueue(t.ID); err == nil {
					m.setFlash("Queued "+t.Title, false)
				} else {
					m.report(err)
				}
			}
		}

	case PanelQueue:
		switch {
		case key.Matches(msg, keys.Down):
			m.queueView.SelectNext()
		case key.Matches(msg, keys.Up):
			m.queueView.SelectPrev()
		case key.Matches(msg, keys.Remove):
			s.RemoveFromQueue(m.queueView.Selected())
		case key.Matches(msg, keys.Select):
			// Jump to the selected entry, dropping everything before it.
			idx := m.queueView.Selected()
			if t := pick(m.queue, idx); t != nil {
				for range idx + 1 {
					s.RemoveFromQueue(0)
				}
				s.Play(t.ID)
			}
		}

	case PanelPlaylists:
		switch {
		case key.Matches(msg, keys.Down):
			m.playlistsView.SelectNext()
		case key.Matches(msg, keys.Up):
			m.playlistsView.SelectPrev()
		case key.Matches(msg, keys.Select):
			if p := pickPlaylist(m.playlists, m.playlistsView.Selected()); p != nil {
				if m.report(s.LoadPlaylist(p.ID)) {
					m.focusedPanel = PanelTracks
					m.refresh()
				}
			}
		case key.Matches(msg, keys.AddTo):
			p := pickPlaylist(m.playlists, m.playlistsView.Selected())
			id, ok := s.Engine().CurrentID()
			if p != nil && ok && m.report(s.AddToPlaylist(p.ID, id)) {
				m.setFlash("Added to "+p.Name, false)
			}
		}
	}
}

// report shows err in the status line and reports whether it was nil.
func (m *Model) report(err error) bool {
	if err != nil {
		m.setFlash(err.Error(), true)
		return false
	}
	return true
}

func (m *Model) copyNowPlaying() {
	t := m.state.Track
	if t == nil {
		return
	}
	text := fmt.Sprintf("%s - %s", t.Artist, t.Title)
	if err := clipboard.WriteAll(text); err != nil {
		m.setFlash("Clipboard unavailable: "+err.Error(), true)
		return
	}
	m.setFlash("Copied: "+text, false)
}

func (m Model) handleSearchKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "esc":
		m.showSearch = false
		m.searchInput.Blur()
		return m, nil

	case "enter":
		if t := pick(m.searchResults, m.searchCursor); t != nil {
			m.showSearch = false
			m.searchInput.Blur()
			m.session.Play(t.ID)
		}
		return m, nil

	case "up", "ctrl+p":
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil

	case "ctrl+q":
		if t := pick(m.searchResults, m.searchCursor); t != nil {
			m.showSearch = false
			m.searchInput.Blur()
			if m.report(m.session.Enqueue(t.ID)) {
				m.setFlash("Queued "+t.Title, false)
			}
		}
		return m, nil
	}

	var inputCmd tea.Cmd
	m.searchInput, inputCmd = m.searchInput.Update(msg)
	cmds = append(cmds, inputCmd)

	if m.searchInput.Value() != m.lastQuery {
		query := m.searchInput.Value()
		cmds = append(cmds, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{query: query}
		}))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleEQKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.session.Engine()
	switch msg.String() {
	case "esc", "e", "q":
		m.showEQ = false
	case "left", "h":
		if m.eqBand > 0 {
			m.eqBand--
		}
	case "right", "l":
		if m.eqBand < core.NumBands-1 {
			m.eqBand++
		}
	case "up", "k":
		e.SetEqualizerBand(m.eqBand, m.state.Bands[m.eqBand]+eqStep)
	case "down", "j":
		e.SetEqualizerBand(m.eqBand, m.state.Bands[m.eqBand]-eqStep)
	case "0":
		e.ResetEqualizer()
	}
	m.state = m.session.State()
	return m, nil
}

func pick(tracks []*core.Track, i int) *core.Track {
	if i < 0 || i >= len(tracks) {
		return nil
	}
	return tracks[i]
}

func pickPlaylist(playlists []*core.Playlist, i int) *core.Playlist {
	if i < 0 || i >= len(playlists) {
		return nil
	}
	return playlists[i]
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.showSearch {
		return m.renderSearch()
	}
	if m.showEQ {
		return m.renderEqualizer()
	}

	// Left: Now Playing (top), Tracks (bottom)
	// Right: Queue, Playlists, Insights
	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	height := m.height - 1
	topHeight := height * 45 / 100
	bottomHeight := height - topHeight - 2
	rightTop := height / 3
	rightMid := height / 3
	rightBottom := height - rightTop - rightMid - 4

	current := 0
	if m.state.Track != nil {
		current = m.state.Track.ID
	}

	nowPlaying := m.nowPlaying.Render(m.state, m.bars, leftWidth-2, topHeight-2, false)
	tracks := m.tracksView.Render(m.tracks, current, leftWidth-2, bottomHeight, m.focusedPanel == PanelTracks)
	queue := m.queueView.Render(m.queue, current, rightWidth-2, rightTop-2, m.focusedPanel == PanelQueue)
	playlists := m.playlistsView.Render(m.playlists, m.playlistID, rightWidth-2, rightMid-2, m.focusedPanel == PanelPlaylists)
	insights := m.insightsView.Render(components.InsightData{
		History:         m.history,
		Recommendations: m.recs,
		Stats:           m.stats,
		Started:         m.started,
	}, rightWidth-2, rightBottom, m.focusedPanel == PanelInsights)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, tracks)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, queue, playlists, insights)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(keys.ShortHelp())

	if m.flash != "" {
		if m.flashIsErr {
			status = styles.Warning.Render("Error: " + m.flash)
		} else {
			status = styles.Playing.Render(m.flash)
		}
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := styles.Highlight.Render("Groove - Keyboard Shortcuts")
	h := m.help
	h.ShowAll = true
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		h.FullHelpView(keys.FullHelp()),
		"",
		styles.Dim.Render("Equalizer: ←/→ band  ↑/↓ gain  0 reset  esc close"),
		styles.Dim.Render("Search: ↑/↓ move  enter play  ctrl+q queue  esc close"),
		"",
		styles.Dim.Render("Press ? or Esc to close"),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Padding(1, 2).Render(body))
}

func (m Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(styles.Highlight.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	const maxResults = 10
	switch {
	case len(m.searchResults) == 0 && m.lastQuery != "":
		b.WriteString(styles.Muted.Render("No results found"))
	default:
		for i, t := range m.searchResults {
			if i >= maxResults {
				b.WriteString(styles.Muted.Render(fmt.Sprintf("  ...and %d more", len(m.searchResults)-maxResults)))
				break
			}
			line := t.Title + " " + styles.Muted.Render(fmt.Sprintf("%s · %s (%d)", t.Artist, t.Album, t.Year))
			if i == m.searchCursor {
				b.WriteString(styles.Selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Dim.Render("↑/↓:nav  Enter:play  Ctrl+q:queue  Esc:close"))

	content := lipgloss.NewStyle().
		Width(64).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Render(content))
}

func (m Model) renderEqualizer() string {
	var rows []string
	rows = append(rows, styles.Highlight.Render("Equalizer"), "")

	const half = 12
	for i, name := range core.BandNames {
		gain := m.state.Bands[i]
		cells := int(gain)
		bar := strings.Repeat(" ", half+min(cells, 0)) +
			strings.Repeat("█", abs(cells)) +
			strings.Repeat(" ", half-max(cells, 0))
		label := fmt.Sprintf("%-8s %6.0f Hz", name, core.BandFrequencies[i])
		line := fmt.Sprintf("%s │%s│ %+3.0f dB", label, bar, gain)
		if i == m.eqBand {
			line = styles.Selected.Render(line)
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", styles.Dim.Render("←/→:band  ↑/↓:gain  0:reset  Esc:close"))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Run starts the TUI application
func Run(s *session.Session, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
