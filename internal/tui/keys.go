package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	logout    key.Binding
	newItem   key.Binding
	search    key.Binding
	edit      key.Binding
	delete    key.Binding
	copy      key.Binding
	copyUser  key.Binding
	reveal    key.Binding
	revealPwd key.Binding
	clearClip key.Binding
	generate  key.Binding
	version   key.Binding
	yes       key.Binding
	no        key.Binding
}

// quit is only checked on screens without text inputs; ctrl+c is handled
// globally by appModel.
var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab", "down")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab", "up")),
	quit:      key.NewBinding(key.WithKeys("q")),
	logout:    key.NewBinding(key.WithKeys("l")),
	newItem:   key.NewBinding(key.WithKeys("n")),
	search:    key.NewBinding(key.WithKeys("/")),
	edit:      key.NewBinding(key.WithKeys("e")),
	delete:    key.NewBinding(key.WithKeys("d")),
	copy:      key.NewBinding(key.WithKeys("c")),
	copyUser:  key.NewBinding(key.WithKeys("u")),
	reveal:    key.NewBinding(key.WithKeys(" ")),
	revealPwd: key.NewBinding(key.WithKeys("ctrl+r")),
	clearClip: key.NewBinding(key.WithKeys("x")),
	generate:  key.NewBinding(key.WithKeys("ctrl+g")),
	version:   key.NewBinding(key.WithKeys("v")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n")),
}
