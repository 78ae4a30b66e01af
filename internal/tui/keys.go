package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Ledger   key.Binding
	Enforce  key.Binding
	Violate  key.Binding
	Up       key.Binding
	Down     key.Binding
	Strategy key.Binding
	Mode     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous view")),
		Ledger:   key.NewBinding(key.WithKeys("1", "l"), key.WithHelp("1/l", "ledger")),
		Enforce:  key.NewBinding(key.WithKeys("2", "e"), key.WithHelp("2/e", "enforcement")),
		Violate:  key.NewBinding(key.WithKeys("3", "v"), key.WithHelp("3/v", "violations")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Strategy: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle allocation")),
		Mode:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle full projection")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Strategy, k.Mode, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Ledger, k.Enforce, k.Violate},
		{k.Up, k.Down},
		{k.Strategy, k.Mode, k.Help, k.Quit},
	}
}
