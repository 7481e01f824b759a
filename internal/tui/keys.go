package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	enter   key.Binding
	esc     key.Binding
	next    key.Binding
	prev    key.Binding
	toggle  key.Binding
	quit    key.Binding
	version key.Binding
	copy    key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	left:    key.NewBinding(key.WithKeys("left")),
	right:   key.NewBinding(key.WithKeys("right")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	next:    key.NewBinding(key.WithKeys("tab", "down")),
	prev:    key.NewBinding(key.WithKeys("shift+tab", "up")),
	toggle:  key.NewBinding(key.WithKeys(" ")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	version: key.NewBinding(key.WithKeys("v")),
	copy:    key.NewBinding(key.WithKeys("c")),
}
