package stats

import (
	"testing"
	"time"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
)

func TestApply(t *testing.T) {
	a := New(catalog.New(nil, nil))

	if !a.Apply(core.Event{Type: core.EventPlayCredited, Delta: 30 * time.Second}) {
		t.Error("Apply(PlayCredited) = false, want true")
	}
	a.Apply(core.Event{Type: core.EventListened, Delta: 250 * time.Millisecond})
	if a.Apply(core.Event{Type: core.EventProgress}) {
		t.Error("Apply(Progress) = true, want false")
	}

	if a.TotalPlays() != 1 {
		t.Errorf("TotalPlays() = %d, want 1", a.TotalPlays())
	}
	if got := a.TotalListeningTime(); got != 30250*time.Millisecond {
		t.Errorf("TotalListeningTime() = %v, want 30.25s", got)
	}
}

func TestMostPlayed(t *testing.T) {
	cat := catalog.New([]core.Track{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4},
	}, nil)
	for _, id := range []int{2, 3, 3, 4, 2} {
		cat.IncrementPlayCount(id)
	}
	a := New(cat)

	got := a.MostPlayed(10)
	want := []int{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("MostPlayed() returned %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("MostPlayed()[%d] = %d, want %d", i, got[i].ID, id)
		}
	}

	if got := a.MostPlayed(1); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("MostPlayed(1) = %v, want [2]", got)
	}
	if got := a.MostPlayed(0); got != nil {
		t.Errorf("MostPlayed(0) = %v, want nil", got)
	}
}

func TestSnapshot(t *testing.T) {
	cat := catalog.New([]core.Track{{ID: 1, Liked: true}, {ID: 2}}, []core.Playlist{{ID: "p", Name: "P"}})
	a := New(cat)
	a.OnEvent(core.Event{Type: core.EventPlayCredited, Delta: 30 * time.Second})

	s := a.Snapshot()
	if s.TotalPlays != 1 || s.ListeningTime != 30*time.Second {
		t.Errorf("Snapshot() totals = %d, %v", s.TotalPlays, s.ListeningTime)
	}
	if s.LikedCount != 1 {
		t.Errorf("LikedCount = %d, want 1", s.LikedCount)
	}
	if s.PlaylistCount != 3 {
		t.Errorf("PlaylistCount = %d, want 3", s.PlaylistCount)
	}
}
