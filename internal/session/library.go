package session

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/tessro/groove/internal/core"
	grooveerrors "github.com/tessro/groove/internal/errors"
)

// Enqueue appends a track to the queue.
func (s *Session) Enqueue(id int) error {
	if !s.catalog.Contains(id) {
		s.logger.Warn("enqueue: unknown track", zap.Int("track", id))
		return fmt.Errorf("%w: %d", grooveerrors.ErrTrackNotFound, id)
	}
	s.queue.Enqueue(id)
	s.notify(core.Event{Type: core.EventQueueChanged})
	return nil
}

// RemoveFromQueue deletes the queue entry at index. Out-of-range
// indices are ignored and report false.
func (s *Session) RemoveFromQueue(index int) bool {
	if !s.queue.RemoveAt(index) {
		s.logger.Debug("remove from queue: index out of range", zap.Int("index", index))
		return false
	}
	s.notify(core.Event{Type: core.EventQueueChanged})
	return true
}

// ReorderQueue moves the entry at from to index to.
func (s *Session) ReorderQueue(from, to int) bool {
	if !s.queue.Reorder(from, to) {
		return false
	}
	s.notify(core.Event{Type: core.EventQueueChanged})
	return true
}

// ClearQueue empties the queue.
func (s *Session) ClearQueue() {
	s.queue.Clear()
	s.notify(core.Event{Type: core.EventQueueChanged})
}

// Queue returns the queued tracks in play order. Entries that no longer
// resolve are skipped.
func (s *Session) Queue() []*core.Track {
	return s.catalog.ByIDs(s.queue.Snapshot())
}

// History returns finished tracks, most recent first.
func (s *Session) History() []*core.Track {
	ids := s.history.Snapshot()
	slices.Reverse(ids)
	return s.catalog.ByIDs(ids)
}

// LoadPlaylist makes a playlist the current list.
func (s *Session) LoadPlaylist(id string) error {
	p, err := s.catalog.Playlist(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.playlistID = p.ID
	s.list = slices.Clone(p.TrackIDs)
	s.mu.Unlock()
	return nil
}

// CurrentPlaylist returns the playlist backing the current list.
func (s *Session) CurrentPlaylist() *core.Playlist {
	s.mu.Lock()
	id := s.playlistID
	s.mu.Unlock()

	p, err := s.catalog.Playlist(id)
	if err != nil {
		return nil
	}
	return p
}

// CurrentTracks resolves the current list.
func (s *Session) CurrentTracks() []*core.Track {
	s.mu.Lock()
	ids := slices.Clone(s.list)
	s.mu.Unlock()
	return s.catalog.ByIDs(ids)
}

// ToggleLike flips the liked flag of the current track.
func (s *Session) ToggleLike() (liked bool, ok bool) {
	id, ok := s.engine.CurrentID()
	if !ok {
		return false, false
	}
	return s.ToggleLikeTrack(id)
}

// ToggleLikeTrack flips the liked flag of any track.
func (s *Session) ToggleLikeTrack(id int) (liked bool, ok bool) {
	liked, ok = s.catalog.ToggleLiked(id)
	if !ok {
		return false, false
	}
	s.refreshIfCurrent(core.PlaylistLiked)
	s.notify(core.Event{Type: core.EventLikedChanged, Track: s.catalog.ByID(id)})
	return liked, true
}

// Playlists lists every playlist.
func (s *Session) Playlists() []*core.Playlist {
	return s.catalog.Playlists()
}

// CreatePlaylist adds an empty playlist and makes it current.
func (s *Session) CreatePlaylist(name string) (*core.Playlist, error) {
	p, err := s.catalog.CreatePlaylist(name)
	if err != nil {
		return nil, err
	}
	_ = s.LoadPlaylist(p.ID)
	s.notify(core.Event{Type: core.EventPlaylistsChanged})
	return p, nil
}

// RenamePlaylist renames an editable playlist.
func (s *Session) RenamePlaylist(id, name string) error {
	if err := s.catalog.RenamePlaylist(id, name); err != nil {
		return err
	}
	s.notify(core.Event{Type: core.EventPlaylistsChanged})
	return nil
}

// DeletePlaylist removes an editable playlist. Deleting the current
// playlist switches back to all tracks.
func (s *Session) DeletePlaylist(id string) error {
	if err := s.catalog.DeletePlaylist(id); err != nil {
		return err
	}
	s.mu.Lock()
	current := s.playlistID == id
	s.mu.Unlock()
	if current {
		_ = s.LoadPlaylist(core.PlaylistAll)
	}
	s.notify(core.Event{Type: core.EventPlaylistsChanged})
	return nil
}

// AddToPlaylist appends a track to an editable playlist.
func (s *Session) AddToPlaylist(id string, trackID int) error {
	if err := s.catalog.AddToPlaylist(id, trackID); err != nil {
		return err
	}
	s.refreshIfCurrent(id)
	s.notify(core.Event{Type: core.EventPlaylistsChanged})
	return nil
}

// RemoveFromPlaylist drops a track from an editable playlist.
func (s *Session) RemoveFromPlaylist(id string, trackID int) error {
	if err := s.catalog.RemoveFromPlaylist(id, trackID); err != nil {
		return err
	}
	s.refreshIfCurrent(id)
	s.notify(core.Event{Type: core.EventPlaylistsChanged})
	return nil
}

func (s *Session) refreshIfCurrent(id string) {
	s.mu.Lock()
	current := s.playlistID == id
	s.mu.Unlock()
	if current {
		_ = s.LoadPlaylist(id)
	}
}
