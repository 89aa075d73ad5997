// Package styles holds the lipgloss styles shared by the dashboard,
// built from a catppuccin flavor.
package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Colors of the active theme.
var (
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Accent    lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Love      lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Text      lipgloss.TerminalColor
	TextMuted lipgloss.TerminalColor
	TextDim   lipgloss.TerminalColor
	Selection lipgloss.TerminalColor
)

// Text and border styles of the active theme.
var (
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Label         lipgloss.Style
	Highlight     lipgloss.Style
	Muted         lipgloss.Style
	Dim           lipgloss.Style
	Playing       lipgloss.Style
	Paused        lipgloss.Style
	Liked         lipgloss.Style
	Warning       lipgloss.Style
	Selected      lipgloss.Style
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

func init() {
	Use("auto")
}

// Use switches the theme. "auto" follows the terminal background with
// latte on light terminals and mocha on dark ones; unknown names fall
// back to it.
func Use(theme string) {
	dark := catppuccin.Mocha
	light := catppuccin.Latte
	switch strings.ToLower(theme) {
	case "mocha":
		light = catppuccin.Mocha
	case "macchiato":
		dark, light = catppuccin.Macchiato, catppuccin.Macchiato
	case "frappe":
		dark, light = catppuccin.Frappe, catppuccin.Frappe
	case "latte":
		dark = catppuccin.Latte
	}

	pick := func(l, d string) lipgloss.TerminalColor {
		return lipgloss.AdaptiveColor{Light: l, Dark: d}
	}
	Primary = pick(light.Mauve().Hex, dark.Mauve().Hex)
	Secondary = pick(light.Green().Hex, dark.Green().Hex)
	Accent = pick(light.Peach().Hex, dark.Peach().Hex)
	Error = pick(light.Red().Hex, dark.Red().Hex)
	Love = pick(light.Pink().Hex, dark.Pink().Hex)
	Border = pick(light.Surface2().Hex, dark.Surface2().Hex)
	Text = pick(light.Text().Hex, dark.Text().Hex)
	TextMuted = pick(light.Subtext0().Hex, dark.Subtext0().Hex)
	TextDim = pick(light.Overlay0().Hex, dark.Overlay0().Hex)
	Selection = pick(light.Surface0().Hex, dark.Surface0().Hex)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Playing = lipgloss.NewStyle().Foreground(Secondary)
	Paused = lipgloss.NewStyle().Foreground(Accent)
	Liked = lipgloss.NewStyle().Foreground(Love)
	Warning = lipgloss.NewStyle().Foreground(Error)
	Selected = lipgloss.NewStyle().Background(Selection)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}

// LikeIcon returns a heart for liked tracks
func LikeIcon(liked bool) string {
	if liked {
		return Liked.Render("♥")
	}
	return Dim.Render("♡")
}

var levels = []rune("▁▂▃▄▅▆▇█")

// Bars renders byte magnitudes as one block character each.
func Bars(values []uint8) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteRune(levels[int(v)*len(levels)/256])
	}
	return lipgloss.NewStyle().Foreground(Primary).Render(b.String())
}
