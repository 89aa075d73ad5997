package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrTrackNotFound      = errors.New("track not found")
	ErrOutOfRange         = errors.New("value out of range")
	ErrBackendUnavailable = errors.New("audio backend unavailable")
	ErrTransportFailure   = errors.New("transport failure")
	ErrUnsupportedSource  = errors.New("unsupported audio source")
	ErrPlaylistNotFound   = errors.New("playlist not found")
	ErrPlaylistReadOnly   = errors.New("playlist is read-only")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrInvalidCatalog     = errors.New("invalid catalog")
	ErrConfigNotFound     = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// GrooveError wraps an error with a user-friendly suggestion.
type GrooveError struct {
	Err        error
	Suggestion string
}

func (e *GrooveError) Error() string {
	return e.Err.Error()
}

func (e *GrooveError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &GrooveError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var grooveErr *GrooveError
	if errors.As(err, &grooveErr) && grooveErr.Suggestion != "" {
		return grooveErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Catalog lookups
	if errors.Is(err, ErrTrackNotFound) || strings.Contains(errStr, "track not found") {
		return "Run 'groove list' to see track IDs"
	}
	if errors.Is(err, ErrPlaylistNotFound) {
		return "Run 'groove playlist list' to see playlists"
	}
	if errors.Is(err, ErrPlaylistReadOnly) {
		return "Built-in playlists cannot be changed. Create one with 'groove playlist create'"
	}
	if errors.Is(err, ErrInvalidCatalog) {
		return "Check the catalog file, or regenerate it with 'groove scan DIR'"
	}

	// Audio errors
	if errors.Is(err, ErrBackendUnavailable) || strings.Contains(errStr, "speaker") {
		return "No audio output is available. Check your sound device"
	}
	if errors.Is(err, ErrUnsupportedSource) {
		return "Only local .mp3 and .wav files can be played"
	}
	if errors.Is(err, ErrTransportFailure) {
		return "Check that the track's source file exists and is readable"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'groove config init' to create a configuration file"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
