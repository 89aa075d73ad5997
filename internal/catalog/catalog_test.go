package catalog

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/tessro/groove/internal/core"
	grooveerrors "github.com/tessro/groove/internal/errors"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	tracks := []core.Track{
		{ID: 1, Title: "Blinding Lights", Artist: "The Weeknd", Album: "After Hours", Genre: "Synthwave", Year: 2019},
		{ID: 2, Title: "Good as Hell", Artist: "Lizzo", Album: "Cuz I Love You", Genre: "Pop", Year: 2019},
		{ID: 3, Title: "Electric Feel", Artist: "MGMT", Album: "Oracular Spectacular", Genre: "Indie Pop", Year: 2007},
		{ID: 4, Title: "Midnight City", Artist: "M83", Album: "Hurry Up", Genre: "Synthpop", Year: 2011},
		{ID: 8, Title: "As It Was", Artist: "Harry Styles", Album: "Harry's House", Genre: "Pop", Year: 2022},
	}
	playlists := []core.Playlist{{ID: "chill", Name: "Chill", TrackIDs: []int{2, 8, 4}}}
	return New(tracks, playlists, WithRand(rand.New(rand.NewPCG(1, 2))))
}

func ids(tracks []*core.Track) []int {
	out := make([]int, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func TestByID(t *testing.T) {
	c := testCatalog(t)

	got := c.ByID(2)
	if got == nil || got.Title != "Good as Hell" {
		t.Fatalf("ByID(2) = %v, want Good as Hell", got)
	}
	if c.ByID(99) != nil {
		t.Error("ByID(99) != nil, want nil")
	}

	// Returned tracks are copies
	got.Liked = true
	if c.ByID(2).Liked {
		t.Error("mutating a returned track changed the catalog")
	}
}

func TestByIDs(t *testing.T) {
	c := testCatalog(t)
	got := ids(c.ByIDs([]int{8, 99, 1, 2}))
	want := []int{8, 1, 2}
	if !slices.Equal(got, want) {
		t.Errorf("ByIDs() = %v, want %v", got, want)
	}
}

func TestByGenre(t *testing.T) {
	c := testCatalog(t)
	if got := ids(c.ByGenre("Pop")); !slices.Equal(got, []int{2, 8}) {
		t.Errorf("ByGenre(Pop) = %v, want [2 8]", got)
	}
	if got := c.ByGenre("pop"); len(got) != 0 {
		t.Errorf("ByGenre(pop) = %v, want empty (exact match)", ids(got))
	}
}

func TestGenresAndYears(t *testing.T) {
	c := testCatalog(t)

	genres := c.Genres()
	wantGenres := []string{"Indie Pop", "Pop", "Synthpop", "Synthwave"}
	if !slices.Equal(genres, wantGenres) {
		t.Errorf("Genres() = %v, want %v", genres, wantGenres)
	}

	years := c.Years()
	wantYears := []int{2022, 2019, 2011, 2007}
	if !slices.Equal(years, wantYears) {
		t.Errorf("Years() = %v, want %v", years, wantYears)
	}
}

func TestRandomExcluding(t *testing.T) {
	c := testCatalog(t)

	got := c.RandomExcluding(3, 1)
	if len(got) != 3 {
		t.Fatalf("RandomExcluding(3) returned %d tracks, want 3", len(got))
	}
	seen := map[int]bool{}
	for _, tr := range got {
		if tr.ID == 1 {
			t.Error("RandomExcluding returned excluded id 1")
		}
		if seen[tr.ID] {
			t.Errorf("RandomExcluding returned duplicate id %d", tr.ID)
		}
		seen[tr.ID] = true
	}

	// Never pads
	if got := c.RandomExcluding(10, 1, 2); len(got) != 3 {
		t.Errorf("RandomExcluding(10) returned %d tracks, want 3", len(got))
	}
	if got := c.RandomExcluding(0); got != nil {
		t.Errorf("RandomExcluding(0) = %v, want nil", ids(got))
	}
}

func TestSearch(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"empty", Filter{}, []int{1, 2, 3, 4, 8}},
		{"title", Filter{Query: "city"}, []int{4}},
		{"artist case-insensitive", Filter{Query: "LIZZO"}, []int{2}},
		{"album", Filter{Query: "house"}, []int{8}},
		{"genre", Filter{Genre: "Pop"}, []int{2, 8}},
		{"year", Filter{Year: 2019}, []int{1, 2}},
		{"combined", Filter{Query: "a", Genre: "Pop", Year: 2022}, []int{8}},
		{"no match", Filter{Query: "zzz"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(c.Search(tt.filter))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Search(%+v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestLikes(t *testing.T) {
	c := testCatalog(t)

	liked, ok := c.ToggleLiked(4)
	if !ok || !liked {
		t.Fatalf("ToggleLiked(4) = %v, %v, want true, true", liked, ok)
	}
	c.SetLiked(1, true)

	if got := ids(c.Liked()); !slices.Equal(got, []int{1, 4}) {
		t.Errorf("Liked() = %v, want [1 4]", got)
	}

	p, err := c.Playlist(core.PlaylistLiked)
	if err != nil {
		t.Fatalf("Playlist(liked) error = %v", err)
	}
	if !slices.Equal(p.TrackIDs, []int{1, 4}) {
		t.Errorf("liked playlist = %v, want [1 4]", p.TrackIDs)
	}

	if _, ok := c.ToggleLiked(99); ok {
		t.Error("ToggleLiked(99) ok = true, want false")
	}
}

func TestIncrementPlayCount(t *testing.T) {
	c := testCatalog(t)
	c.IncrementPlayCount(3)
	n, ok := c.IncrementPlayCount(3)
	if !ok || n != 2 {
		t.Errorf("IncrementPlayCount(3) = %d, %v, want 2, true", n, ok)
	}
	if c.ByID(3).PlayCount != 2 {
		t.Errorf("PlayCount = %d, want 2", c.ByID(3).PlayCount)
	}
}

func TestPlaylists(t *testing.T) {
	c := testCatalogWith(t, WithIDGenerator(func() string { return "abc" }))

	all := c.Playlists()
	if len(all) != 3 {
		t.Fatalf("Playlists() returned %d, want 3", len(all))
	}
	if all[0].ID != core.PlaylistAll || all[1].ID != core.PlaylistLiked || all[2].ID != "chill" {
		t.Errorf("Playlists() order = %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}
	if !slices.Equal(all[0].TrackIDs, []int{1, 2, 3, 4, 8}) {
		t.Errorf("all playlist = %v", all[0].TrackIDs)
	}

	p, err := c.CreatePlaylist("  Road Trip ")
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}
	if p.ID != "custom_abc" || p.Name != "Road Trip" || !p.Editable {
		t.Errorf("CreatePlaylist() = %+v", p)
	}

	if err := c.AddToPlaylist(p.ID, 3); err != nil {
		t.Fatalf("AddToPlaylist() error = %v", err)
	}
	_ = c.AddToPlaylist(p.ID, 3)
	if err := c.AddToPlaylist(p.ID, 99); !errors.Is(err, grooveerrors.ErrTrackNotFound) {
		t.Errorf("AddToPlaylist(99) error = %v, want ErrTrackNotFound", err)
	}

	got, _ := c.Playlist(p.ID)
	if !slices.Equal(got.TrackIDs, []int{3}) {
		t.Errorf("TrackIDs = %v, want [3]", got.TrackIDs)
	}

	if err := c.RenamePlaylist(p.ID, "Drive"); err != nil {
		t.Fatalf("RenamePlaylist() error = %v", err)
	}
	got, _ = c.Playlist(p.ID)
	if got.Name != "Drive" {
		t.Errorf("Name = %q, want %q", got.Name, "Drive")
	}

	if err := c.RemoveFromPlaylist(p.ID, 3); err != nil {
		t.Fatalf("RemoveFromPlaylist() error = %v", err)
	}
	if err := c.DeletePlaylist(p.ID); err != nil {
		t.Fatalf("DeletePlaylist() error = %v", err)
	}
	if _, err := c.Playlist(p.ID); !errors.Is(err, grooveerrors.ErrPlaylistNotFound) {
		t.Errorf("Playlist() after delete error = %v, want ErrPlaylistNotFound", err)
	}
}

func TestPlaylistErrors(t *testing.T) {
	c := testCatalog(t)

	if _, err := c.CreatePlaylist("   "); !errors.Is(err, grooveerrors.ErrEmptyName) {
		t.Errorf("CreatePlaylist(blank) error = %v, want ErrEmptyName", err)
	}
	if err := c.DeletePlaylist(core.PlaylistAll); !errors.Is(err, grooveerrors.ErrPlaylistReadOnly) {
		t.Errorf("DeletePlaylist(all) error = %v, want ErrPlaylistReadOnly", err)
	}
	if err := c.RenamePlaylist(core.PlaylistLiked, "x"); !errors.Is(err, grooveerrors.ErrPlaylistReadOnly) {
		t.Errorf("RenamePlaylist(liked) error = %v, want ErrPlaylistReadOnly", err)
	}
	if err := c.AddToPlaylist("nope", 1); !errors.Is(err, grooveerrors.ErrPlaylistNotFound) {
		t.Errorf("AddToPlaylist(nope) error = %v, want ErrPlaylistNotFound", err)
	}
}

func testCatalogWith(t *testing.T, opts ...Option) *Catalog {
	t.Helper()
	base := testCatalog(t)
	tracks := make([]core.Track, 0, base.Len())
	for _, tr := range base.All() {
		tracks = append(tracks, *tr)
	}
	var playlists []core.Playlist
	for _, p := range base.Playlists()[2:] {
		playlists = append(playlists, *p)
	}
	return New(tracks, playlists, opts...)
}
