package wizard

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]core.Track{
		{ID: 1, Title: "Morning Light", Artist: "Dawn", Album: "Sunrise", Genre: "Ambient", Year: 2019},
		{ID: 2, Title: "Night Drive", Artist: "Neon", Album: "Afterglow", Genre: "Synthwave", Year: 2021},
		{ID: 3, Title: "Dusk", Artist: "Dawn", Album: "Evening", Genre: "Ambient", Year: 2020},
	}, []core.Playlist{
		{ID: "road", Name: "Road", TrackIDs: []int{2}, Editable: true},
	})
}

func TestCatalogSearch(t *testing.T) {
	search := CatalogSearch(testCatalog())

	tests := []struct {
		query string
		typ   SearchType
		want  []int
	}{
		{"dawn", SearchAll, []int{1, 3}},
		{"dawn", SearchTitle, nil},
		{"dawn", SearchArtist, []int{1, 3}},
		{"after", SearchAlbum, []int{2}},
		{"synth", SearchGenre, []int{2}},
		{"  ", SearchAll, nil},
	}

	for _, tt := range tests {
		got, err := search(tt.query, tt.typ)
		if err != nil {
			t.Fatalf("search(%q) error = %v", tt.query, err)
		}
		if len(got) != len(tt.want) {
			t.Errorf("search(%q, %d) = %d results, want %d", tt.query, tt.typ, len(got), len(tt.want))
			continue
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("search(%q, %d)[%d] = %d, want %d", tt.query, tt.typ, i, got[i].ID, id)
			}
		}
	}
}

func TestEditable(t *testing.T) {
	got := Editable(testCatalog().Playlists())
	if len(got) != 1 || got[0].ID != "road" {
		t.Errorf("Editable() = %v, want [road]", got)
	}
}

func TestNeedsTrack(t *testing.T) {
	if !NeedsTrack(nil) {
		t.Error("NeedsTrack(nil) = false, want true")
	}
	if NeedsTrack([]string{"3"}) {
		t.Error("NeedsTrack([3]) = true, want false")
	}
}

func TestPlaylistModelSelection(t *testing.T) {
	var m tea.Model = NewPlaylistModel(testCatalog().Playlists())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown}) // past the end
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Error("enter did not quit")
	}
	got := m.(PlaylistModel).Selected()
	if got == nil || got.ID != "road" {
		t.Errorf("Selected() = %v, want road", got)
	}
}

func TestPlaylistModelCancel(t *testing.T) {
	var m tea.Model = NewPlaylistModel(testCatalog().Playlists())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(PlaylistModel).Selected() != nil {
		t.Error("Selected() after esc is not nil")
	}
}

func TestSearchModelTabsWrap(t *testing.T) {
	var m tea.Model = NewSearchModel(CatalogSearch(testCatalog()))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.(SearchModel).searchType; got != SearchGenre {
		t.Errorf("searchType = %d, want %d", got, SearchGenre)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.(SearchModel).searchType; got != SearchAll {
		t.Errorf("searchType = %d, want %d", got, SearchAll)
	}
}

func TestSearchModelResults(t *testing.T) {
	var m tea.Model = NewSearchModel(CatalogSearch(testCatalog()))
	results, _ := CatalogSearch(testCatalog())("dawn", SearchAll)
	m, _ = m.Update(searchResultsMsg{results: results})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := m.(SearchModel).Selected()
	if got == nil || got.ID != 3 {
		t.Errorf("Selected() = %v, want track 3", got)
	}
}

func TestSearchModelScrolls(t *testing.T) {
	var results []SearchResult
	for i := 1; i <= 10; i++ {
		results = append(results, SearchResult{ID: i, Title: fmt.Sprintf("Track %02d", i)})
	}

	var m tea.Model = NewSearchModel(CatalogSearch(testCatalog()))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 12}) // three rows
	m, _ = m.Update(searchResultsMsg{results: results})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})

	sm := m.(SearchModel)
	if sm.cursor != 6 || sm.offset != 4 {
		t.Errorf("cursor, offset = %d, %d, want 6, 4", sm.cursor, sm.offset)
	}

	view := sm.View()
	for _, want := range []string{"Track 05", "Track 07", "7 of 10"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if strings.Contains(view, "Track 01") || strings.Contains(view, "Track 08") {
		t.Error("View() shows rows outside the window")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if sm := m.(SearchModel); sm.cursor != 0 || sm.offset != 0 {
		t.Errorf("after pgup: cursor, offset = %d, %d, want 0, 0", sm.cursor, sm.offset)
	}
}
