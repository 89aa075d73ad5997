package recommend

import (
	"math/rand/v2"
	"testing"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
)

func testCatalog() *catalog.Catalog {
	tracks := []core.Track{
		{ID: 1, Genre: "Pop"},
		{ID: 2, Genre: "Rock"},
		{ID: 3, Genre: "Pop"},
		{ID: 4, Genre: "Jazz"},
		{ID: 5, Genre: "Pop"},
		{ID: 6, Genre: "Rock"},
	}
	return catalog.New(tracks, nil, catalog.WithRand(rand.New(rand.NewPCG(3, 4))))
}

func TestRecommendSameGenreFirst(t *testing.T) {
	cat := testCatalog()
	r := New(cat)

	got := r.Recommend(cat.ByID(1), 4)
	if len(got) != 4 {
		t.Fatalf("Recommend() returned %d, want 4", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 5 {
		t.Errorf("first picks = %d, %d, want 3, 5", got[0].ID, got[1].ID)
	}

	seen := map[int]bool{}
	for _, tr := range got {
		if tr.ID == 1 {
			t.Error("Recommend() included the base track")
		}
		if seen[tr.ID] {
			t.Errorf("Recommend() repeated track %d", tr.ID)
		}
		seen[tr.ID] = true
	}
}

func TestRecommendTruncatesGenre(t *testing.T) {
	cat := testCatalog()
	got := New(cat).Recommend(cat.ByID(1), 1)
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("Recommend(count=1) = %v, want [3]", got)
	}
}

func TestRecommendLength(t *testing.T) {
	cat := testCatalog()
	r := New(cat)

	tests := []struct {
		base  int
		count int
		want  int
	}{
		{4, 3, 3},
		{4, 5, 5},
		{4, 10, 5}, // catalog size - 1
		{2, 0, 0},
	}
	for _, tt := range tests {
		if got := r.Recommend(cat.ByID(tt.base), tt.count); len(got) != tt.want {
			t.Errorf("Recommend(%d, %d) returned %d, want %d", tt.base, tt.count, len(got), tt.want)
		}
	}
}

func TestRecommendNoBase(t *testing.T) {
	r := New(testCatalog())
	if got := r.Recommend(nil, 3); len(got) != 3 {
		t.Errorf("Recommend(nil, 3) returned %d, want 3", len(got))
	}
	if got := r.Recommend(nil, 20); len(got) != 6 {
		t.Errorf("Recommend(nil, 20) returned %d, want 6", len(got))
	}
}
