package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap covers the list and overlay screens. The form screens (feedback,
// records) read raw runes so text inputs keep working and are not routed
// through these bindings.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	forceQuit key.Binding
	logout    key.Binding
	refresh   key.Binding
	accept    key.Binding
	reject    key.Binding
	copyMenu  key.Binding
	yes       key.Binding
	no        key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q")),
	forceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	logout:    key.NewBinding(key.WithKeys("L")),
	refresh:   key.NewBinding(key.WithKeys("r")),
	accept:    key.NewBinding(key.WithKeys("a")),
	reject:    key.NewBinding(key.WithKeys("x")),
	copyMenu:  key.NewBinding(key.WithKeys("c")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n")),
}
