package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap binds every application key.
type keyMap struct {
	Quit       key.Binding
	NextPlane  key.Binding
	PrevPlane  key.Binding
	Cargo      key.Binding
	Docked     key.Binding
	Navigated  key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Grow       key.Binding
	Shrink     key.Binding

	Follow key.Binding
	Freeze key.Binding
	Clear  key.Binding

	Choose   key.Binding
	Cancel   key.Binding
	Paste    key.Binding
	Current  key.Binding
	Next     key.Binding
	Route    key.Binding
	OpenSite key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		NextPlane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		PrevPlane:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Cargo:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "cargo")),
		Docked:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "docked")),
		Navigated:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "navigated")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll")),
		Grow:       key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "height")),
		Shrink:     key.NewBinding(key.WithKeys("-")),

		Follow: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "follow dock")),
		Freeze: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "freeze")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),

		Choose:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Paste:    key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Current:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "current")),
		Next:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next")),
		Route:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "route")),
		OpenSite: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "inara")),
	}
}

func (k keyMap) cargoHelp() []key.Binding {
	return []key.Binding{k.NextPlane, k.ScrollUp, k.Grow, k.Quit}
}

func (k keyMap) dockedHelp() []key.Binding {
	return []key.Binding{k.NextPlane, k.Follow, k.Freeze, k.Clear, k.Quit}
}

func (k keyMap) navigatedHelp() []key.Binding {
	return []key.Binding{k.NextPlane, k.Choose, k.Paste, k.Current, k.Next, k.Route, k.OpenSite}
}
