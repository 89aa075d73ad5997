package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tessro/groove/internal/core"
)

// PromptPlaylistName asks for the name of a new playlist.
func PromptPlaylistName() (string, error) {
	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Playlist name").
				Placeholder("Road trip").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

// PromptEditablePlaylist asks which editable playlist to change.
func PromptEditablePlaylist(playlists []*core.Playlist) (string, error) {
	editable := Editable(playlists)
	if len(editable) == 0 {
		return "", fmt.Errorf("no editable playlists")
	}

	var options []huh.Option[string]
	for _, p := range editable {
		label := fmt.Sprintf("%s (%d tracks)", p.Name, p.Len())
		options = append(options, huh.NewOption(label, p.ID))
	}

	var id string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Playlist").
				Options(options...).
				Value(&id),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return id, nil
}

// Confirm asks a yes/no question.
func Confirm(question string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
