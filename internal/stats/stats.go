// Package stats accumulates listening statistics for a session.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
)

// DefaultTopN is the length of the most-played list.
const DefaultTopN = 10

// Accumulator tracks totals from engine events. Per-track play counts
// live on the catalog tracks themselves.
type Accumulator struct {
	mu            sync.Mutex
	catalog       *catalog.Catalog
	totalPlays    int
	listeningTime time.Duration
}

// New creates an accumulator reading play counts from cat.
func New(cat *catalog.Catalog) *Accumulator {
	return &Accumulator{catalog: cat}
}

// OnEvent implements core.Observer.
func (a *Accumulator) OnEvent(e core.Event) {
	a.Apply(e)
}

// Apply folds an event into the totals and reports whether they changed.
func (a *Accumulator) Apply(e core.Event) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch e.Type {
	case core.EventPlayCredited:
		a.totalPlays++
		a.listeningTime += e.Delta
		return true
	case core.EventListened:
		if e.Delta > 0 {
			a.listeningTime += e.Delta
			return true
		}
	}
	return false
}

// TotalPlays returns the number of credited plays.
func (a *Accumulator) TotalPlays() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalPlays
}

// TotalListeningTime returns the accumulated listening time.
func (a *Accumulator) TotalListeningTime() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listeningTime
}

// MostPlayed returns up to n tracks with at least one play, by play
// count descending. Ties keep catalog order.
func (a *Accumulator) MostPlayed(n int) []*core.Track {
	if n <= 0 {
		return nil
	}
	var played []*core.Track
	for _, t := range a.catalog.All() {
		if t.PlayCount > 0 {
			played = append(played, t)
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].PlayCount > played[j].PlayCount
	})
	if len(played) > n {
		played = played[:n]
	}
	return played
}

// Summary is a point-in-time view of the statistics.
type Summary struct {
	TotalPlays    int           `json:"total_plays"`
	ListeningTime time.Duration `json:"listening_time"`
	LikedCount    int           `json:"liked_count"`
	PlaylistCount int           `json:"playlist_count"`
	MostPlayed    []*core.Track `json:"most_played"`
}

// Snapshot returns the current statistics.
func (a *Accumulator) Snapshot() Summary {
	a.mu.Lock()
	s := Summary{TotalPlays: a.totalPlays, ListeningTime: a.listeningTime}
	a.mu.Unlock()

	s.LikedCount = len(a.catalog.Liked())
	s.PlaylistCount = len(a.catalog.Playlists())
	s.MostPlayed = a.MostPlayed(DefaultTopN)
	return s
}
