package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/session"
)

type silentTransport struct{}

func (silentTransport) Load(string) error           { return nil }
func (silentTransport) Play() error                 { return nil }
func (silentTransport) Pause()                      {}
func (silentTransport) Seek(time.Duration)          {}
func (silentTransport) SetVolume(float64)           {}
func (silentTransport) SetRate(float64)             {}
func (silentTransport) SetBand(int, float64)        {}
func (silentTransport) FrequencyData([]uint8) bool  { return false }
func (silentTransport) Bind(core.TransportListener) {}
func (silentTransport) Close() error                { return nil }

func newTestModel(t *testing.T) Model {
	t.Helper()
	cat := catalog.New([]core.Track{
		{ID: 1, Title: "First", Artist: "A", Genre: "Pop", Duration: 3 * time.Minute},
		{ID: 2, Title: "Second", Artist: "B", Genre: "Pop", Duration: 4 * time.Minute},
		{ID: 3, Title: "Third", Artist: "C", Genre: "Rock", Duration: 5 * time.Minute},
	}, nil)
	s := session.New(cat, silentTransport{})
	t.Cleanup(func() { _ = s.Close() })
	return NewModel(s, Options{RefreshInterval: time.Second, VisualizerBars: 16})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	return model.(Model)
}

func TestNewModelSnapshots(t *testing.T) {
	m := newTestModel(t)
	if len(m.tracks) != 3 {
		t.Errorf("tracks = %d, want 3", len(m.tracks))
	}
	if m.playlistID != core.PlaylistAll {
		t.Errorf("playlistID = %q, want %q", m.playlistID, core.PlaylistAll)
	}
	if len(m.bars) != 16 {
		t.Errorf("bars = %d, want 16", len(m.bars))
	}
}

func TestSpaceStartsPlayback(t *testing.T) {
	m := press(t, newTestModel(t), tea.KeyMsg{Type: tea.KeySpace}, tickMsg(time.Now()))
	if !m.state.IsPlaying() || m.state.Track.ID != 1 {
		t.Errorf("state = %+v, want track 1 playing", m.state)
	}
}

func TestEnterPlaysSelectedTrack(t *testing.T) {
	m := press(t, newTestModel(t),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	m.refresh()
	if m.state.Track == nil || m.state.Track.ID != 2 {
		t.Fatalf("current = %v, want track 2", m.state.Track)
	}
	if len(m.queue) != 1 || m.queue[0].ID != 3 {
		t.Errorf("queue = %v, want [3]", m.queue)
	}
}

func TestSettingsKeys(t *testing.T) {
	m := press(t, newTestModel(t), runes("s"), runes("r"), runes("x"), runes("-"))
	st := m.session.State()
	if !st.Shuffled {
		t.Error("shuffle not enabled")
	}
	if st.Repeat != core.RepeatAll {
		t.Errorf("Repeat = %v, want all", st.Repeat)
	}
	if st.Speed != 1.25 {
		t.Errorf("Speed = %v, want 1.25", st.Speed)
	}
	if st.Volume > 0.61 || st.Volume < 0.59 {
		t.Errorf("Volume = %v, want 0.6", st.Volume)
	}
	if !strings.Contains(m.flash, "Speed") {
		t.Errorf("flash = %q, want speed message", m.flash)
	}
}

func TestPanelCycling(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedPanel != PanelPlaylists {
		t.Errorf("focusedPanel = %d, want playlists", m.focusedPanel)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedPanel != PanelInsights {
		t.Errorf("focusedPanel = %d, want insights", m.focusedPanel)
	}
}

func TestLoadPlaylistFromPanel(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, runes("l"))

	// Playlists are all, liked; select liked and open it.
	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.playlistID != core.PlaylistLiked {
		t.Errorf("playlistID = %q, want liked", m.playlistID)
	}
	if len(m.tracks) != 1 || m.tracks[0].ID != 1 {
		t.Errorf("tracks = %v, want [1]", m.tracks)
	}
	if m.focusedPanel != PanelTracks {
		t.Errorf("focusedPanel = %d, want tracks", m.focusedPanel)
	}
}

func TestEqualizerOverlay(t *testing.T) {
	m := press(t, newTestModel(t), runes("e"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if !m.showEQ {
		t.Fatal("equalizer overlay not shown")
	}
	if got := m.session.State().Bands[1]; got != 2 {
		t.Errorf("band 1 = %v, want 2", got)
	}
	m = press(t, m, runes("0"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.showEQ {
		t.Error("equalizer overlay still shown")
	}
	if got := m.session.State().Bands[1]; got != 0 {
		t.Errorf("band 1 after reset = %v, want 0", got)
	}
}

func TestSearch(t *testing.T) {
	m := press(t, newTestModel(t), runes("/"))
	if !m.showSearch {
		t.Fatal("search overlay not shown")
	}
	m.searchInput.SetValue("third")
	m = press(t, m, searchDebounceMsg{query: "third"})
	if len(m.searchResults) != 1 || m.searchResults[0].ID != 3 {
		t.Fatalf("searchResults = %v, want [3]", m.searchResults)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.showSearch {
		t.Error("search overlay still shown after enter")
	}
	if id, _ := m.session.Engine().CurrentID(); id != 3 {
		t.Errorf("current = %d, want 3", id)
	}
}

func TestViewRenders(t *testing.T) {
	m := press(t, newTestModel(t), tea.WindowSizeMsg{Width: 120, Height: 40}, tea.KeyMsg{Type: tea.KeySpace})
	m.refresh()
	view := m.View()
	for _, want := range []string{"Now Playing", "First", "Playlists"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
