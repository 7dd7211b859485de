package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings. Printable keys go to the query input,
// so every action sits on a control or navigation key.
type keyMap struct {
	Quit       key.Binding
	SwitchView key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Refresh    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "search/favourites"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle favourite"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload favourites"),
		),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Toggle, k.SwitchView, k.Up, k.Down, k.Refresh, k.Quit}
}
