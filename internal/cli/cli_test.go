package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/config"
	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/session"
	"github.com/tessro/groove/internal/tail"
)

type silentTransport struct{}

func (silentTransport) Load(string) error           { return nil }
func (silentTransport) Play() error                 { return nil }
func (silentTransport) Pause()                      {}
func (silentTransport) Seek(time.Duration)          {}
func (silentTransport) SetVolume(float64)           {}
func (silentTransport) SetRate(float64)             {}
func (silentTransport) SetBand(int, float64)        {}
func (silentTransport) FrequencyData([]uint8) bool  { return false }
func (silentTransport) Bind(core.TransportListener) {}
func (silentTransport) Close() error                { return nil }

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title", 9, "a long..."},
		{"abcdef", 3, "abc"},
		{"héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-5 * time.Second, "0:00"},
		{0, "0:00"},
		{65*time.Second + 900*time.Millisecond, "1:05"},
		{time.Hour, "1:00:00"},
		{3725 * time.Second, "1:02:05"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		current, total time.Duration
		want           string
	}{
		{0, 0, "────"},
		{time.Second, 4 * time.Second, "━───"},
		{2 * time.Second, 4 * time.Second, "━━──"},
		{8 * time.Second, 4 * time.Second, "━━━━"},
	}
	for _, tt := range tests {
		if got := FormatProgress(tt.current, tt.total, 4); got != tt.want {
			t.Errorf("FormatProgress(%v, %v) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		key, value string
		want       any
		wantErr    bool
	}{
		{"player.volume", "50", 50, false},
		{"player.volume", "loud", nil, true},
		{"player.speed", "1.5", 1.5, false},
		{"player.shuffle", "true", true, false},
		{"player.shuffle", "maybe", nil, true},
		{"tui.theme", "mocha", "mocha", false},
		{"player.bitrate", "320", nil, true},
	}
	for _, tt := range tests {
		got, err := parseValue(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseValue(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseValue(%q, %q) = %v, want %v", tt.key, tt.value, got, tt.want)
		}
	}
}

func TestValidateRaw(t *testing.T) {
	ok := map[string]any{"player": map[string]any{"volume": 40}}
	if err := validateRaw(ok); err != nil {
		t.Errorf("validateRaw(volume 40) error = %v", err)
	}
	bad := map[string]any{"player": map[string]any{"volume": 140}}
	if err := validateRaw(bad); err == nil {
		t.Error("validateRaw(volume 140) error = nil, want error")
	}
}

func TestRawWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &rawWriter{w: &buf}
	n, err := w.Write([]byte("one\ntwo\n"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 8 {
		t.Errorf("Write() n = %d, want 8", n)
	}
	if got := buf.String(); got != "one\r\ntwo\r\n" {
		t.Errorf("output = %q, want %q", got, "one\r\ntwo\r\n")
	}
}

func TestPlaybackDone(t *testing.T) {
	idle := tail.Event{Event: core.Event{Type: core.EventStateChanged, State: core.StateIdle}}
	paused := tail.Event{Event: core.Event{Type: core.EventStateChanged, State: core.StatePaused}}
	warning := tail.Event{
		Event: core.Event{Type: core.EventWarning, Message: "load: missing file"},
		State: core.PlaybackState{State: core.StatePaused},
	}

	tests := []struct {
		name        string
		e           tail.Event
		interactive bool
		want        bool
	}{
		{"idle", idle, true, true},
		{"paused", paused, false, false},
		{"warning with keys", warning, true, false},
		{"warning without keys", warning, false, true},
	}
	for _, tt := range tests {
		if got := playbackDone(tt.e, tt.interactive); got != tt.want {
			t.Errorf("%s: playbackDone() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func newKeySession(t *testing.T) *session.Session {
	t.Helper()
	cat := catalog.New([]core.Track{
		{ID: 1, Title: "First", Artist: "A", Duration: 3 * time.Minute},
		{ID: 2, Title: "Second", Artist: "B", Duration: 4 * time.Minute},
	}, nil)
	s := session.New(cat, silentTransport{})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestHandleKey(t *testing.T) {
	s := newKeySession(t)
	var out bytes.Buffer

	if !handleKey(s, []byte(" "), &out) {
		t.Fatal("space asked to quit")
	}
	if st := s.State(); !st.IsPlaying() || st.Track.ID != 1 {
		t.Fatalf("after space: state %v track %v, want playing track 1", st.State, st.Track)
	}

	if err := s.Enqueue(2); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	handleKey(s, []byte("n"), &out)
	if st := s.State(); st.Track.ID != 2 {
		t.Errorf("after n: track %d, want 2", st.Track.ID)
	}

	handleKey(s, []byte("-"), &out)
	if v := s.State().Volume; v < 0.59 || v > 0.61 {
		t.Errorf("after -: volume %v, want 0.6", v)
	}

	handleKey(s, []byte("l"), &out)
	if !s.Catalog().ByID(2).Liked {
		t.Error("after l: track 2 not liked")
	}

	handleKey(s, []byte("r"), &out)
	if got := s.State().Repeat; got != core.RepeatAll {
		t.Errorf("after r: repeat %v, want all", got)
	}

	handleKey(s, []byte("i"), &out)
	if !strings.Contains(out.String(), "B - Second") {
		t.Errorf("status line = %q, want it to name the track", out.String())
	}

	if handleKey(s, []byte("q"), &out) {
		t.Error("q did not ask to quit")
	}
	if handleKey(s, []byte{0x03}, &out) {
		t.Error("Ctrl+C did not ask to quit")
	}
}

func writeTestCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groove.toml")
	feed := &catalog.Feed{
		Tracks: []catalog.FeedTrack{
			{ID: 1, Title: "First", Artist: "A", Genre: "Pop", Length: 180},
			{ID: 2, Title: "Second", Artist: "B", Genre: "Rock", Length: 200},
		},
	}
	if err := catalog.WriteFeed(path, feed); err != nil {
		t.Fatalf("WriteFeed() error = %v", err)
	}

	cfg = config.Default()
	cfg.Catalog.Path = path
	t.Cleanup(func() { cfg = nil })
	return path
}

func TestLikePersists(t *testing.T) {
	path := writeTestCatalog(t)

	if err := runLike(nil, []string{"2"}); err != nil {
		t.Fatalf("runLike() error = %v", err)
	}

	feed, err := catalog.ReadFeed(path)
	if err != nil {
		t.Fatalf("ReadFeed() error = %v", err)
	}
	if feed.Tracks[0].Liked || !feed.Tracks[1].Liked {
		t.Errorf("liked flags = %v, %v, want false, true", feed.Tracks[0].Liked, feed.Tracks[1].Liked)
	}
}

func TestPlaylistEditsPersist(t *testing.T) {
	path := writeTestCatalog(t)

	if err := runPlaylistCreate(nil, []string{"Road trip"}); err != nil {
		t.Fatalf("runPlaylistCreate() error = %v", err)
	}
	feed, err := catalog.ReadFeed(path)
	if err != nil {
		t.Fatalf("ReadFeed() error = %v", err)
	}
	if len(feed.Playlists) != 1 || feed.Playlists[0].Name != "Road trip" {
		t.Fatalf("playlists = %+v, want one named Road trip", feed.Playlists)
	}
	id := feed.Playlists[0].ID

	if err := runPlaylistAdd(nil, []string{id, "2"}); err != nil {
		t.Fatalf("runPlaylistAdd() error = %v", err)
	}
	if err := runPlaylistAdd(nil, []string{id, "1"}); err != nil {
		t.Fatalf("runPlaylistAdd() error = %v", err)
	}
	if err := runPlaylistRemove(nil, []string{id, "2"}); err != nil {
		t.Fatalf("runPlaylistRemove() error = %v", err)
	}

	feed, err = catalog.ReadFeed(path)
	if err != nil {
		t.Fatalf("ReadFeed() error = %v", err)
	}
	if got := feed.Playlists[0].Tracks; len(got) != 1 || got[0] != 1 {
		t.Errorf("playlist tracks = %v, want [1]", got)
	}

	if err := runPlaylistAdd(nil, []string{core.PlaylistLiked, "1"}); err == nil {
		t.Error("adding to the liked playlist succeeded, want read-only error")
	}
}

func TestEditBuiltInCatalogFails(t *testing.T) {
	cfg = config.Default()
	t.Cleanup(func() { cfg = nil })

	if err := runLike(nil, []string{"1"}); err == nil {
		t.Error("runLike() on the built-in catalog succeeded, want error")
	}
}
