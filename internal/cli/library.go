package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tessro/groove/internal/audio"
	"github.com/tessro/groove/internal/catalog"
	"github.com/tessro/groove/internal/core"
	"github.com/tessro/groove/internal/engine"
	grooveerrors "github.com/tessro/groove/internal/errors"
	"github.com/tessro/groove/internal/session"
)

// loadCatalog opens the configured catalog, or the built-in one when no
// path is set.
func loadCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		log.Debug("using built-in catalog")
		return catalog.Default()
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	log.Debug("catalog loaded")
	return cat, nil
}

// saveCatalog writes likes and editable playlists back to the catalog
// file. Track entries are left as they were.
func saveCatalog(cat *catalog.Catalog) error {
	if cfg.Catalog.Path == "" {
		return grooveerrors.WithSuggestion(
			errors.New("the built-in catalog is read-only"),
			"Pass --catalog FILE or set catalog.path, e.g. to a file made by 'groove scan DIR'",
		)
	}
	feed, err := catalog.ReadFeed(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	feed.Sync(cat)
	if err := catalog.WriteFeed(cfg.Catalog.Path, feed); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// openSession opens the audio device and builds a session with the
// configured player defaults applied.
func openSession(cat *catalog.Catalog) (*session.Session, error) {
	transport, err := audio.New(audio.Config{
		SampleRate: cfg.Audio.SampleRate,
		BufferMS:   cfg.Audio.BufferMS,
		Quality:    cfg.Audio.Quality,
	}, log.Named("audio"))
	if err != nil {
		return nil, err
	}

	p := cfg.Player
	s := session.New(cat, transport,
		session.WithLogger(log),
		session.WithEngineOptions(
			engine.WithCreditDelay(time.Duration(p.CreditSeconds)*time.Second),
			engine.WithCrossfade(time.Duration(p.CrossfadeSeconds*float64(time.Second))),
			engine.WithGainRange(p.EQMinDB, p.EQMaxDB),
		),
	)

	e := s.Engine()
	e.SetVolume(float64(p.Volume) / 100)
	e.SetSpeed(p.Speed)
	e.SetShuffle(p.Shuffle)
	if mode, err := core.ParseRepeatMode(p.Repeat); err == nil {
		e.SetRepeatMode(mode)
	}
	return s, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTracks renders tracks as a table, or JSON with --json.
func printTracks(tracks []*core.Track) error {
	if JSONOutput() {
		if tracks == nil {
			tracks = []*core.Track{}
		}
		return printJSON(tracks)
	}
	if len(tracks) == 0 {
		fmt.Println("No tracks")
		return nil
	}

	table := NewTable("ID", "", "TITLE", "ARTIST", "ALBUM", "GENRE", "YEAR", "TIME")
	for _, t := range tracks {
		table.Row(
			fmt.Sprint(t.ID),
			LikeIcon(t.Liked),
			TruncateString(t.Title, 32),
			TruncateString(t.Artist, 24),
			TruncateString(t.Album, 24),
			t.Genre,
			fmt.Sprint(t.Year),
			FormatDuration(t.Duration),
		)
	}
	table.Flush()
	return nil
}
