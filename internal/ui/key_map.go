package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	search key.Binding
	add    key.Binding
	focus  key.Binding
	tab    key.Binding
	remove key.Binding
	reload key.Binding
	quit   key.Binding
	abort  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		search: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add favorite")),
		focus:  key.NewBinding(key.WithKeys("esc", "/"), key.WithHelp("esc", "edit search")),
		tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		remove: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		abort:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.tab, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.search, k.add},
		{k.focus, k.tab, k.remove, k.reload},
		{k.quit, k.abort},
	}
}
