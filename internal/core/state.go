package core

import (
	"fmt"
	"strings"
	"time"
)

// PlayerState is the transport state of the playback engine.
type PlayerState int

const (
	StateIdle PlayerState = iota
	StateLoading
	StatePlaying
	StatePaused
	StateEnded
)

func (s PlayerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// RepeatMode controls what happens when a track ends.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "off"
	}
}

// Next returns the mode that follows m in the off, all, one cycle.
func (m RepeatMode) Next() RepeatMode {
	return (m + 1) % 3
}

// ParseRepeatMode parses "off", "all" or "one".
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off":
		return RepeatOff, nil
	case "all", "context":
		return RepeatAll, nil
	case "one", "track":
		return RepeatOne, nil
	default:
		return RepeatOff, fmt.Errorf("invalid repeat mode %q (must be off, all, or one)", s)
	}
}

// Equalizer band layout. Gains are in decibels.
const NumBands = 5

// BandFrequencies are the center frequencies of the equalizer bands in Hz.
var BandFrequencies = [NumBands]float64{60, 250, 1000, 4000, 12000}

// BandNames labels the equalizer bands for display.
var BandNames = [NumBands]string{"Bass", "Low-Mid", "Mid", "High-Mid", "Treble"}

// FrequencyBins is the number of analyser bins reported per frame.
const FrequencyBins = 32

// AllowedSpeeds are the playback rates offered by the front ends.
var AllowedSpeeds = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

// NextSpeed returns the allowed speed after current, wrapping around.
// Speeds not in the list snap back to normal speed.
func NextSpeed(current float64) float64 {
	for i, s := range AllowedSpeeds {
		if s == current {
			return AllowedSpeeds[(i+1)%len(AllowedSpeeds)]
		}
	}
	return 1
}

// PlaybackState is a point-in-time snapshot of the engine.
type PlaybackState struct {
	Track       *Track            `json:"track"`
	State       PlayerState       `json:"-"`
	StateName   string            `json:"state"`
	Progress    time.Duration     `json:"progress"`
	Duration    time.Duration     `json:"duration"`
	Volume      float64           `json:"volume"`
	Speed       float64           `json:"speed"`
	Repeat      RepeatMode        `json:"-"`
	RepeatName  string            `json:"repeat"`
	Shuffled    bool              `json:"shuffled"`
	Bands       [NumBands]float64 `json:"bands"`
	FadeStarted bool              `json:"-"`
}

// HasTrack returns true if there is a current track.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && s.Track != nil
}

// IsPlaying returns true if audio is currently advancing.
func (s *PlaybackState) IsPlaying() bool {
	return s != nil && s.State == StatePlaying
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil || s.Duration <= 0 {
		return 0
	}
	p := float64(s.Progress) / float64(s.Duration) * 100
	if p > 100 {
		return 100
	}
	return p
}
