package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the index explorer.
type KeyMap struct {
	Quit   key.Binding
	Lookup key.Binding
	Clear  key.Binding
	Up     key.Binding
	Down   key.Binding
	Width  key.Binding
}

// DefaultKeyMap returns the default bindings. Letter keys are left to the
// index input.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Lookup: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "look up"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "count+1"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "count-1"),
		),
		Width: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next width"),
		),
	}
}

// footerBindings lists the bindings shown in the footer, in display order.
func (k KeyMap) footerBindings() []key.Binding {
	return []key.Binding{k.Lookup, k.Up, k.Down, k.Width, k.Clear, k.Quit}
}
