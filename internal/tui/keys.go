package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	NextFile key.Binding
	PrevFile key.Binding
	Filter   key.Binding
	Preview  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", " "),
		key.WithHelp("pgdn/space", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "b"),
		key.WithHelp("pgup/b", "page up"),
	),
	NextFile: key.NewBinding(
		key.WithKeys("n", "tab"),
		key.WithHelp("n/tab", "next file"),
	),
	PrevFile: key.NewBinding(
		key.WithKeys("N", "shift+tab"),
		key.WithHelp("N/S-tab", "prev file"),
	),
	Filter: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cycle category"),
	),
	Preview: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "toggle source"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// helpKeys lists the bindings shown on the help screen, in order.
func helpKeys() []key.Binding {
	return []key.Binding{
		keys.Up, keys.Down, keys.PageDown, keys.PageUp,
		keys.NextFile, keys.PrevFile, keys.Filter, keys.Preview,
		keys.Help, keys.Quit,
	}
}
