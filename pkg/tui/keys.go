package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Remove   key.Binding
	Search   key.Binding
	Accept   key.Binding
	Cancel   key.Binding
	Earlier  key.Binding
	Later    key.Binding
	HourBack key.Binding
	HourFwd  key.Binding
	Now      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("⇧↑/K", "move up")),
	MoveDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("⇧↓/J", "move down")),
	Remove:   key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "remove")),
	Search:   key.NewBinding(key.WithKeys("/", "a"), key.WithHelp("/", "add city")),
	Accept:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Earlier:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "-15m")),
	Later:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "+15m")),
	HourBack: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "-1h")),
	HourFwd:  key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "+1h")),
	Now:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "now")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Earlier, k.Later, k.Search, k.Remove, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Earlier, k.Later, k.HourBack, k.HourFwd, k.Now},
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Search, k.Accept, k.Cancel, k.Remove},
		{k.Help, k.Quit},
	}
}
