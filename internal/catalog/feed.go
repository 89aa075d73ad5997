package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tessro/groove/internal/core"
	grooveerrors "github.com/tessro/groove/internal/errors"
)

//go:embed default.toml
var defaultFeed []byte

// Feed is the on-disk catalog format, readable as TOML or YAML.
type Feed struct {
	Tracks    []FeedTrack    `toml:"tracks" yaml:"tracks" json:"tracks"`
	Playlists []FeedPlaylist `toml:"playlists,omitempty" yaml:"playlists,omitempty" json:"playlists,omitempty"`
}

// FeedTrack describes one track in a feed. Length is in seconds.
type FeedTrack struct {
	ID          int    `toml:"id" yaml:"id" json:"id"`
	Title       string `toml:"title" yaml:"title" json:"title"`
	Artist      string `toml:"artist" yaml:"artist" json:"artist"`
	Album       string `toml:"album" yaml:"album" json:"album"`
	Genre       string `toml:"genre" yaml:"genre" json:"genre"`
	Year        int    `toml:"year" yaml:"year" json:"year"`
	Length      int    `toml:"length" yaml:"length" json:"length"`
	Source      string `toml:"source" yaml:"source" json:"source"`
	Art         string `toml:"art,omitempty" yaml:"art,omitempty" json:"art,omitempty"`
	ReleaseDate string `toml:"release_date,omitempty" yaml:"release_date,omitempty" json:"release_date,omitempty"`
	Explicit    bool   `toml:"explicit,omitempty" yaml:"explicit,omitempty" json:"explicit,omitempty"`
	Liked       bool   `toml:"liked,omitempty" yaml:"liked,omitempty" json:"liked,omitempty"`
}

// FeedPlaylist describes an editable playlist in a feed.
type FeedPlaylist struct {
	ID     string `toml:"id" yaml:"id" json:"id"`
	Name   string `toml:"name" yaml:"name" json:"name"`
	Tracks []int  `toml:"tracks" yaml:"tracks" json:"tracks"`
}

// Default returns the built-in demo catalog.
func Default(opts ...Option) (*Catalog, error) {
	var feed Feed
	if _, err := toml.NewDecoder(bytes.NewReader(defaultFeed)).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: built-in catalog: %v", grooveerrors.ErrInvalidCatalog, err)
	}
	return FromFeed(&feed, "", opts...)
}

// Load reads a TOML or YAML catalog. Relative sources are resolved
// against the catalog's directory.
func Load(path string, opts ...Option) (*Catalog, error) {
	feed, err := ReadFeed(path)
	if err != nil {
		return nil, err
	}
	return FromFeed(feed, filepath.Dir(expandHome(path)), opts...)
}

// ReadFeed decodes a feed file without building a catalog.
func ReadFeed(path string) (*Feed, error) {
	path = expandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var feed Feed
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &feed); err != nil {
			return nil, fmt.Errorf("%w: %v", grooveerrors.ErrInvalidCatalog, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &feed); err != nil {
			return nil, fmt.Errorf("%w: %v", grooveerrors.ErrInvalidCatalog, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q (use .toml, .yaml or .yml)",
			grooveerrors.ErrInvalidCatalog, filepath.Ext(path))
	}
	return &feed, nil
}

// WriteFeed encodes feed to path, choosing the format by extension.
func WriteFeed(path string, feed *Feed) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(feed); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
	default:
		_, _ = fmt.Fprintln(&buf, "# groove catalog")
		_, _ = fmt.Fprintln(&buf, "")
		enc := toml.NewEncoder(&buf)
		enc.Indent = "  "
		if err := enc.Encode(feed); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
	}
	return os.WriteFile(expandHome(path), buf.Bytes(), 0644)
}

// Sync copies liked flags and editable playlists from c into f so edits
// made through the catalog can be written back with WriteFeed.
func (f *Feed) Sync(c *Catalog) {
	for i := range f.Tracks {
		if t := c.ByID(f.Tracks[i].ID); t != nil {
			f.Tracks[i].Liked = t.Liked
		}
	}

	f.Playlists = nil
	for _, p := range c.Playlists() {
		if !p.Editable {
			continue
		}
		f.Playlists = append(f.Playlists, FeedPlaylist{ID: p.ID, Name: p.Name, Tracks: p.TrackIDs})
	}
}

// FromFeed validates a feed and builds a catalog from it. Track IDs
// must be positive and unique. Playlist entries that do not resolve
// are kept and skipped when the playlist is read.
func FromFeed(feed *Feed, baseDir string, opts ...Option) (*Catalog, error) {
	seen := make(map[int]bool, len(feed.Tracks))
	tracks := make([]core.Track, 0, len(feed.Tracks))

	for i, ft := range feed.Tracks {
		if ft.ID <= 0 {
			return nil, fmt.Errorf("%w: track %d has non-positive id %d", grooveerrors.ErrInvalidCatalog, i+1, ft.ID)
		}
		if seen[ft.ID] {
			return nil, fmt.Errorf("%w: duplicate track id %d", grooveerrors.ErrInvalidCatalog, ft.ID)
		}
		seen[ft.ID] = true
		tracks = append(tracks, ft.toTrack(baseDir))
	}

	var playlists []core.Playlist
	for _, fp := range feed.Playlists {
		if fp.ID == "" {
			return nil, fmt.Errorf("%w: playlist %q has no id", grooveerrors.ErrInvalidCatalog, fp.Name)
		}
		playlists = append(playlists, core.Playlist{ID: fp.ID, Name: fp.Name, TrackIDs: fp.Tracks})
	}

	return New(tracks, playlists, opts...), nil
}

func (ft FeedTrack) toTrack(baseDir string) core.Track {
	return core.Track{
		ID:          ft.ID,
		Title:       ft.Title,
		Artist:      ft.Artist,
		Album:       ft.Album,
		Genre:       ft.Genre,
		Year:        ft.Year,
		Duration:    time.Duration(ft.Length) * time.Second,
		Source:      resolveSource(ft.Source, baseDir),
		ArtURL:      ft.Art,
		ReleaseDate: ft.ReleaseDate,
		Explicit:    ft.Explicit,
		Liked:       ft.Liked,
	}
}

func resolveSource(source, baseDir string) string {
	if source == "" || strings.Contains(source, "://") {
		return source
	}
	source = expandHome(source)
	if baseDir != "" && !filepath.IsAbs(source) {
		return filepath.Join(baseDir, source)
	}
	return source
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
