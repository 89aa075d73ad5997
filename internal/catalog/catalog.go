// Package catalog holds the static track and playlist store.
//
// The catalog owns the one mutable copy of every track. Everything
// else refers to tracks by ID and receives clones from the accessors,
// so callers never race with like or play-count updates.
package catalog

import (
	"math/rand/v2"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tessro/groove/internal/core"
)

// Catalog is a concurrency-safe track and playlist store.
type Catalog struct {
	mu        sync.RWMutex
	tracks    []*core.Track
	index     map[int]*core.Track
	playlists []*core.Playlist
	rng       *rand.Rand
	newID     func() string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRand sets the random source used for sampling.
func WithRand(r *rand.Rand) Option {
	return func(c *Catalog) {
		c.rng = r
	}
}

// WithIDGenerator sets the function that names new custom playlists.
func WithIDGenerator(fn func() string) Option {
	return func(c *Catalog) {
		c.newID = fn
	}
}

// New creates a catalog from tracks and editable playlists. Track order
// is preserved and defines catalog order.
func New(tracks []core.Track, playlists []core.Playlist, opts ...Option) *Catalog {
	c := &Catalog{
		index: make(map[int]*core.Track, len(tracks)),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	for i := range tracks {
		t := tracks[i]
		if _, dup := c.index[t.ID]; dup {
			continue
		}
		c.tracks = append(c.tracks, &t)
		c.index[t.ID] = &t
	}

	for _, p := range playlists {
		if p.ID == core.PlaylistAll || p.ID == core.PlaylistLiked {
			continue
		}
		c.playlists = append(c.playlists, &core.Playlist{
			ID:       p.ID,
			Name:     p.Name,
			TrackIDs: slices.Clone(p.TrackIDs),
			Editable: true,
		})
	}

	return c
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tracks)
}

// Contains reports whether id resolves to a track.
func (c *Catalog) Contains(id int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[id]
	return ok
}

// All returns every track in catalog order.
func (c *Catalog) All() []*core.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*core.Track, len(c.tracks))
	for i, t := range c.tracks {
		out[i] = t.Clone()
	}
	return out
}

// ByID returns the track with the given ID, or nil.
func (c *Catalog) ByID(id int) *core.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index[id].Clone()
}

// ByIDs resolves ids in order, dropping those that do not resolve.
func (c *Catalog) ByIDs(ids []int) []*core.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*core.Track, 0, len(ids))
	for _, id := range ids {
		if t, ok := c.index[id]; ok {
			out = append(out, t.Clone())
		}
	}
	return out
}

// ByGenre returns the tracks whose genre equals genre exactly.
func (c *Catalog) ByGenre(genre string) []*core.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*core.Track
	for _, t := range c.tracks {
		if t.Genre == genre {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Genres returns the distinct genres in ascending order.
func (c *Catalog) Genres() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, t := range c.tracks {
		if !seen[t.Genre] {
			seen[t.Genre] = true
			out = append(out, t.Genre)
		}
	}
	sort.Strings(out)
	return out
}

// Years returns the distinct release years, newest first.
func (c *Catalog) Years() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[int]bool)
	var out []int
	for _, t := range c.tracks {
		if !seen[t.Year] {
			seen[t.Year] = true
			out = append(out, t.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// RandomExcluding returns up to count distinct tracks chosen uniformly
// without replacement from those not in exclude. It never pads: when
// fewer tracks are available, all of them are returned in random order.
func (c *Catalog) RandomExcluding(count int, exclude ...int) []*core.Track {
	if count <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	skip := make(map[int]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	pool := make([]*core.Track, 0, len(c.tracks))
	for _, t := range c.tracks {
		if !skip[t.ID] {
			pool = append(pool, t)
		}
	}

	c.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if count > len(pool) {
		count = len(pool)
	}
	out := make([]*core.Track, count)
	for i := range out {
		out[i] = pool[i].Clone()
	}
	return out
}

// Filter narrows the catalog for search views. Zero fields match all.
type Filter struct {
	Query string
	Genre string
	Year  int
}

// IsZero reports whether the filter matches every track.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && f.Genre == "" && f.Year == 0
}

// Search returns the tracks matching f in catalog order. The query is a
// case-insensitive substring match on title, artist and album.
func (c *Catalog) Search(f Filter) []*core.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(f.Query))
	var out []*core.Track
	for _, t := range c.tracks {
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Artist), query) &&
			!strings.Contains(strings.ToLower(t.Album), query) {
			continue
		}
		if f.Genre != "" && t.Genre != f.Genre {
			continue
		}
		if f.Year != 0 && t.Year != f.Year {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

// SetLiked sets the liked flag of a track. It returns false when the ID
// does not resolve.
func (c *Catalog) SetLiked(id int, liked bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.index[id]
	if !ok {
		return false
	}
	t.Liked = liked
	return true
}

// ToggleLiked flips the liked flag of a track and returns the new value.
func (c *Catalog) ToggleLiked(id int) (liked bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.index[id]
	if !ok {
		return false, false
	}
	t.Liked = !t.Liked
	return t.Liked, true
}

// Liked returns the liked tracks in catalog order.
func (c *Catalog) Liked() []*core.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*core.Track
	for _, t := range c.tracks {
		if t.Liked {
			out = append(out, t.Clone())
		}
	}
	return out
}

// IncrementPlayCount credits one play to a track and returns the new count.
func (c *Catalog) IncrementPlayCount(id int) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.index[id]
	if !ok {
		return 0, false
	}
	t.PlayCount++
	return t.PlayCount, true
}
