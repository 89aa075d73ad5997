// Package recommend suggests tracks related to a base track.
package recommend

import (
	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
)

// DefaultCount is the number of suggestions shown by the front ends.
const DefaultCount = 5

// Recommender draws suggestions from a catalog.
type Recommender struct {
	catalog *catalog.Catalog
}

// New creates a recommender over cat.
func New(cat *catalog.Catalog) *Recommender {
	return &Recommender{catalog: cat}
}

// Recommend returns up to count tracks related to base. Tracks sharing
// base's genre come first in catalog order; the rest is filled with
// random tracks that are neither base nor already chosen. With a nil
// base the result is purely random.
func (r *Recommender) Recommend(base *core.Track, count int) []*core.Track {
	if count <= 0 {
		return nil
	}
	if base == nil {
		return r.catalog.RandomExcluding(count)
	}

	var out []*core.Track
	exclude := []int{base.ID}
	for _, t := range r.catalog.ByGenre(base.Genre) {
		if t.ID == base.ID {
			continue
		}
		if len(out) == count {
			return out
		}
		out = append(out, t)
		exclude = append(exclude, t.ID)
	}

	if missing := count - len(out); missing > 0 {
		out = append(out, r.catalog.RandomExcluding(missing, exclude...)...)
	}
	return out
}
