package listview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected is true for the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// SelectableFunc reports whether an item can hold the selection.
type SelectableFunc[T any] func(item T) bool

// KeyMap binds the picker's navigation keys.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns arrow, page and vim-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	}
}

// Model is a scrolling picker over a fixed item slice. The zero selection
// is -1 when nothing is selectable.
type Model[T any] struct {
	items      []T
	render     RenderFunc[T]
	selectable SelectableFunc[T]
	keys       KeyMap

	selected int
	top      int
	height   int
}

// New returns a picker showing height rows. A nil selectable makes every
// item selectable.
func New[T any](height int, render RenderFunc[T], selectable SelectableFunc[T]) *Model[T] {
	if selectable == nil {
		selectable = func(T) bool { return true }
	}
	return &Model[T]{
		render:     render,
		selectable: selectable,
		keys:       DefaultKeyMap(),
		selected:   -1,
		height:     max(height, 1),
	}
}

// SetItems replaces the items and selects the first selectable one.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.top = 0
	m.selected = m.seek(0, 1)
	m.follow()
}

// Items returns the items.
func (m *Model[T]) Items() []T { return m.items }

// Len returns the number of items.
func (m *Model[T]) Len() int { return len(m.items) }

// SetHeight changes the number of visible rows.
func (m *Model[T]) SetHeight(h int) {
	m.height = max(h, 1)
	m.follow()
}

// Height returns the number of visible rows.
func (m *Model[T]) Height() int { return m.height }

// Top returns the index of the first visible item.
func (m *Model[T]) Top() int { return m.top }

// Index returns the selected index, or -1.
func (m *Model[T]) Index() int { return m.selected }

// Selected returns the selected item.
func (m *Model[T]) Selected() (T, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.selected], true
}

// Move moves the selection by delta selectable items and reports whether
// it changed.
func (m *Model[T]) Move(delta int) bool {
	if m.selected < 0 || delta == 0 {
		return false
	}
	dir := 1
	if delta < 0 {
		dir, delta = -1, -delta
	}
	prev := m.selected
	for ; delta > 0; delta-- {
		next := m.seek(m.selected+dir, dir)
		if next < 0 {
			break
		}
		m.selected = next
	}
	m.follow()
	return m.selected != prev
}

// Select selects item i when it is selectable.
func (m *Model[T]) Select(i int) bool {
	if i < 0 || i >= len(m.items) || !m.selectable(m.items[i]) {
		return false
	}
	m.selected = i
	m.follow()
	return true
}

// ItemAt maps a visible row to an item index.
func (m *Model[T]) ItemAt(row int) (int, bool) {
	i := m.top + row
	if row < 0 || row >= m.height || i >= len(m.items) {
		return 0, false
	}
	return i, true
}

// Update handles navigation keys.
func (m *Model[T]) Update(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Up):
		return m.Move(-1)
	case key.Matches(msg, m.keys.Down):
		return m.Move(1)
	case key.Matches(msg, m.keys.PageUp):
		return m.Move(-m.height)
	case key.Matches(msg, m.keys.PageDown):
		return m.Move(m.height)
	case key.Matches(msg, m.keys.Home):
		return m.Select(m.seek(0, 1))
	case key.Matches(msg, m.keys.End):
		return m.Select(m.seek(len(m.items)-1, -1))
	}
	return false
}

// seek returns the first selectable index from i in direction dir, or -1.
func (m *Model[T]) seek(i, dir int) int {
	for ; i >= 0 && i < len(m.items); i += dir {
		if m.selectable(m.items[i]) {
			return i
		}
	}
	return -1
}

// follow scrolls so the selection is visible.
func (m *Model[T]) follow() {
	if m.selected >= 0 {
		if m.selected < m.top {
			m.top = m.selected
		}
		if m.selected >= m.top+m.height {
			m.top = m.selected - m.height + 1
		}
	}
	m.top = min(m.top, max(len(m.items)-m.height, 0))
	m.top = max(m.top, 0)
}

// View renders the visible rows.
func (m *Model[T]) View() string {
	end := min(m.top+m.height, len(m.items))
	lines := make([]string, 0, end-m.top)
	for i := m.top; i < end; i++ {
		lines = append(lines, m.render(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}
