package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Search     key.Binding
	NextPanel  key.Binding
	PrevPanel  key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Enqueue    key.Binding
	Remove     key.Binding
	AddTo      key.Binding
	PlayPause  key.Binding
	Next       key.Binding
	Prev       key.Binding
	SeekFwd    key.Binding
	SeekBack   key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Like       key.Binding
	Shuffle    key.Binding
	Repeat     key.Binding
	Speed      key.Binding
	Equalizer  key.Binding
	Copy       key.Binding
	Insights   key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	NextPanel:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
	PrevPanel:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous panel")),
	Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play/open")),
	Enqueue:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to queue")),
	Remove:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove from queue")),
	AddTo:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add current to playlist")),
	PlayPause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
	Next:       key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("→/n", "next")),
	Prev:       key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("←/p", "previous")),
	SeekFwd:    key.NewBinding(key.WithKeys("shift+right", "]"), key.WithHelp("]", "seek +10s")),
	SeekBack:   key.NewBinding(key.WithKeys("shift+left", "["), key.WithHelp("[", "seek -10s")),
	VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
	VolumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
	Like:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
	Shuffle:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
	Repeat:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
	Speed:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "speed")),
	Equalizer:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "equalizer")),
	Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy track")),
	Insights:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "history/for you/stats")),
}

// ShortHelp is shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help, k.Search, k.PlayPause, k.Next, k.Prev, k.Like, k.NextPanel}
}

// FullHelp is shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Help, k.Search, k.NextPanel, k.PrevPanel, k.Insights, k.Copy},
		{k.PlayPause, k.Next, k.Prev, k.SeekFwd, k.SeekBack, k.VolumeUp, k.VolumeDown},
		{k.Like, k.Shuffle, k.Repeat, k.Speed, k.Equalizer},
		{k.Up, k.Down, k.Select, k.Enqueue, k.Remove, k.AddTo},
	}
}
