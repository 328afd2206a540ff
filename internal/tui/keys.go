package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding

	// Movement
	Next key.Binding
	Prev key.Binding

	// Editing
	Edit   key.Binding
	Commit key.Binding
	Cancel key.Binding

	// Items
	Add    key.Binding
	Delete key.Binding

	// Actions
	Export   key.Binding
	CopyLink key.Binding
	Reset    key.Binding
	Theme    key.Binding

	// Reset confirmation
	Confirm key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Next:     key.NewBinding(key.WithKeys("tab", "down", "j"), key.WithHelp("tab/↓", "next")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "up", "k"), key.WithHelp("shift+tab/↑", "prev")),
	Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	Commit:   key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "done")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete item")),
	Export:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pdf")),
	CopyLink: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
	Reset:    key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Confirm:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
}
