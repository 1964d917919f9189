package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the non-letter bindings of the game screen. Every letter
// key is a guess, so none of these use a plain letter.
type KeyMap struct {
	Language key.Binding
	Restart  key.Binding
	Daily    key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Language, k.Restart, k.Daily, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Language, k.Restart, k.Daily, k.Quit}}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Language: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch language"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restart"),
		),
		Daily: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "word of the day"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}
