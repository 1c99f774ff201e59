package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Send     key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Quit},
		{k.PageUp, k.PageDown},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}
