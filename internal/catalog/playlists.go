package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tessro/groove/internal/core"
	grooveerrors "github.com/tessro/groove/internal/errors"
)

// Playlists returns the built-in playlists followed by the editable ones.
// The built-ins are computed on every call.
func (c *Catalog) Playlists() []*core.Playlist {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []*core.Playlist{c.allLocked(), c.likedLocked()}
	for _, p := range c.playlists {
		out = append(out, clonePlaylist(p))
	}
	return out
}

// Playlist returns the playlist with the given ID.
func (c *Catalog) Playlist(id string) (*core.Playlist, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch id {
	case core.PlaylistAll:
		return c.allLocked(), nil
	case core.PlaylistLiked:
		return c.likedLocked(), nil
	}
	if p := c.findLocked(id); p != nil {
		return clonePlaylist(p), nil
	}
	return nil, fmt.Errorf("%w: %s", grooveerrors.ErrPlaylistNotFound, id)
}

// CreatePlaylist adds an empty editable playlist.
func (c *Catalog) CreatePlaylist(name string) (*core.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, grooveerrors.ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := &core.Playlist{
		ID:       core.CustomPlaylistPrefix + c.newID(),
		Name:     name,
		TrackIDs: []int{},
		Editable: true,
	}
	c.playlists = append(c.playlists, p)
	return clonePlaylist(p), nil
}

// RenamePlaylist changes the name of an editable playlist.
func (c *Catalog) RenamePlaylist(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return grooveerrors.ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.editableLocked(id)
	if err != nil {
		return err
	}
	p.Name = name
	return nil
}

// DeletePlaylist removes an editable playlist.
func (c *Catalog) DeletePlaylist(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.editableLocked(id); err != nil {
		return err
	}
	c.playlists = slices.DeleteFunc(c.playlists, func(p *core.Playlist) bool {
		return p.ID == id
	})
	return nil
}

// AddToPlaylist appends a track to an editable playlist. Adding a track
// that is already present is a no-op.
func (c *Catalog) AddToPlaylist(id string, trackID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[trackID]; !ok {
		return fmt.Errorf("%w: %d", grooveerrors.ErrTrackNotFound, trackID)
	}
	p, err := c.editableLocked(id)
	if err != nil {
		return err
	}
	if !p.Contains(trackID) {
		p.TrackIDs = append(p.TrackIDs, trackID)
	}
	return nil
}

// RemoveFromPlaylist drops a track from an editable playlist.
func (c *Catalog) RemoveFromPlaylist(id string, trackID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.editableLocked(id)
	if err != nil {
		return err
	}
	p.TrackIDs = slices.DeleteFunc(p.TrackIDs, func(tid int) bool {
		return tid == trackID
	})
	return nil
}

func (c *Catalog) allLocked() *core.Playlist {
	ids := make([]int, len(c.tracks))
	for i, t := range c.tracks {
		ids[i] = t.ID
	}
	return &core.Playlist{ID: core.PlaylistAll, Name: "All Songs", TrackIDs: ids}
}

func (c *Catalog) likedLocked() *core.Playlist {
	ids := []int{}
	for _, t := range c.tracks {
		if t.Liked {
			ids = append(ids, t.ID)
		}
	}
	return &core.Playlist{ID: core.PlaylistLiked, Name: "Liked Songs", TrackIDs: ids}
}

func (c *Catalog) findLocked(id string) *core.Playlist {
	for _, p := range c.playlists {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (c *Catalog) editableLocked(id string) (*core.Playlist, error) {
	if id == core.PlaylistAll || id == core.PlaylistLiked {
		return nil, fmt.Errorf("%w: %s", grooveerrors.ErrPlaylistReadOnly, id)
	}
	p := c.findLocked(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", grooveerrors.ErrPlaylistNotFound, id)
	}
	return p, nil
}

func clonePlaylist(p *core.Playlist) *core.Playlist {
	c := *p
	c.TrackIDs = slices.Clone(p.TrackIDs)
	return &c
}
