package core

import "time"

// Track represents a playable audio track in the catalog.
type Track struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Artist      string        `json:"artist"`
	Album       string        `json:"album"`
	Genre       string        `json:"genre"`
	Year        int           `json:"year"`
	Duration    time.Duration `json:"duration"`
	Source      string        `json:"source"`
	ArtURL      string        `json:"art_url,omitempty"`
	ReleaseDate string        `json:"release_date,omitempty"`
	Explicit    bool          `json:"explicit"`
	Liked       bool          `json:"liked"`
	PlayCount   int           `json:"play_count"`
}

// Clone returns a copy of the track that is safe to hand out.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Built-in playlist IDs.
const (
	PlaylistAll   = "all"
	PlaylistLiked = "liked"
)

// CustomPlaylistPrefix prefixes the IDs of user-created playlists.
const CustomPlaylistPrefix = "custom_"

// Playlist is a named, ordered list of track IDs.
type Playlist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TrackIDs []int  `json:"tracks"`
	Editable bool   `json:"editable"`
}

// Len returns the number of track IDs in the playlist.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.TrackIDs)
}

// Contains reports whether the playlist references the given track.
func (p *Playlist) Contains(id int) bool {
	if p == nil {
		return false
	}
	for _, tid := range p.TrackIDs {
		if tid == id {
			return true
		}
	}
	return false
}

// IndexOf returns the position of id in the playlist, or -1.
func (p *Playlist) IndexOf(id int) int {
	if p == nil {
		return -1
	}
	for i, tid := range p.TrackIDs {
		if tid == id {
			return i
		}
	}
	return -1
}
