package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	grooveerrors "github.com/tessro/groove/internal/errors"
)

// Scan walks dir for audio files and builds a feed from their tags.
// Files that cannot be read are reported in the result's errors and
// left out of the feed. IDs are assigned in lexical path order.
func Scan(dir string) *grooveerrors.PartialResult[*Feed] {
	result := &grooveerrors.PartialResult[*Feed]{Data: &Feed{}}

	root, err := filepath.Abs(expandHome(dir))
	if err != nil {
		result.AddError(err)
		return result
	}

	nextID := 1
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.AddError(err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isAudioFile(path) {
			return nil
		}

		ft, err := scanFile(path)
		if err != nil {
			result.AddError(fmt.Errorf("%s: %w", path, err))
			return nil
		}
		ft.ID = nextID
		nextID++
		result.Data.Tracks = append(result.Data.Tracks, ft)
		return nil
	})
	result.AddError(err)

	return result
}

func isAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav":
		return true
	}
	return false
}

func scanFile(path string) (FeedTrack, error) {
	ft := metadataFromName(path)
	ft.Source = path

	f, err := os.Open(path)
	if err != nil {
		return ft, err
	}
	defer f.Close()

	if m, err := tag.ReadFrom(f); err == nil {
		if m.Title() != "" {
			ft.Title = m.Title()
		}
		if m.Artist() != "" {
			ft.Artist = m.Artist()
		}
		ft.Album = m.Album()
		ft.Genre = m.Genre()
		ft.Year = m.Year()
	}

	length, err := probeLength(path)
	if err != nil {
		return ft, err
	}
	ft.Length = int(length.Round(time.Second) / time.Second)

	if ft.Genre == "" {
		ft.Genre = "Unknown"
	}
	return ft, nil
}

// probeLength decodes the stream header to measure its duration.
func probeLength(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		streamer, format, err = wav.Decode(f)
	} else {
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("failed to decode audio: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// metadataFromName derives a title and artist from "Artist - Title.ext".
func metadataFromName(path string) FeedTrack {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(name, " - ")
	if len(parts) >= 2 {
		return FeedTrack{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}
	return FeedTrack{Artist: "Unknown Artist", Title: name}
}
