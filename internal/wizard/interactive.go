package wizard

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled    bool
	searchFunc SearchFunc
	playlists  []*core.Playlist
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// SetSearchFunc sets the search function for the search wizard.
func (i *Interactive) SetSearchFunc(fn SearchFunc) {
	i.searchFunc = fn
}

// SetPlaylists sets the playlists offered by the playlist picker.
func (i *Interactive) SetPlaylists(playlists []*core.Playlist) {
	i.playlists = playlists
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptSearch launches the search wizard if interactive mode is available.
// Returns the selected result, or nil if cancelled or not interactive.
func (i *Interactive) PromptSearch() (*SearchResult, error) {
	if !i.CanInteract() || i.searchFunc == nil {
		return nil, nil
	}
	return RunSearch(i.searchFunc)
}

// PromptPlaylist launches the playlist picker if interactive mode is
// available. Returns the selected playlist, or nil if cancelled or not
// interactive.
func (i *Interactive) PromptPlaylist() (*core.Playlist, error) {
	if !i.CanInteract() || len(i.playlists) == 0 {
		return nil, nil
	}
	return RunPlaylistPicker(i.playlists)
}

// NeedsTrack returns true if a track argument is required but missing.
func NeedsTrack(args []string) bool {
	return len(args) == 0
}

// Editable filters playlists down to the ones that accept edits.
func Editable(playlists []*core.Playlist) []*core.Playlist {
	var out []*core.Playlist
	for _, p := range playlists {
		if p.Editable {
			out = append(out, p)
		}
	}
	return out
}

// CatalogSearch returns a SearchFunc over cat.
func CatalogSearch(cat *catalog.Catalog) SearchFunc {
	return func(query string, searchType SearchType) ([]SearchResult, error) {
		query = strings.ToLower(strings.TrimSpace(query))
		if query == "" {
			return nil, nil
		}

		var results []SearchResult
		for _, t := range cat.All() {
			if !matches(t, query, searchType) {
				continue
			}
			results = append(results, SearchResult{
				ID:       t.ID,
				Title:    t.Title,
				Subtitle: fmt.Sprintf("%s · %s (%d)", t.Artist, t.Album, t.Year),
				Liked:    t.Liked,
				Duration: t.Duration,
			})
		}
		return results, nil
	}
}

func matches(t *core.Track, query string, searchType SearchType) bool {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), query)
	}
	switch searchType {
	case SearchTitle:
		return contains(t.Title)
	case SearchArtist:
		return contains(t.Artist)
	case SearchAlbum:
		return contains(t.Album)
	case SearchGenre:
		return contains(t.Genre)
	default:
		return contains(t.Title) || contains(t.Artist) || contains(t.Album) || contains(t.Genre)
	}
}
