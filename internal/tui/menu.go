package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
)

type menuAction int

const (
	actionCopy menuAction = iota
	actionInara
	actionSeparator
	actionClose
)

const (
	menuInara     = "Check on Inara"
	menuClose     = "Close"
	menuSeparator = "────────"
)

// contextMenu is the popup opened by a right click on a cargo row.
type contextMenu struct {
	row      cargo.Row
	items    []menuAction
	selected int
}

func newContextMenu(row cargo.Row) *contextMenu {
	return &contextMenu{
		row:   row,
		items: []menuAction{actionCopy, actionInara, actionSeparator, actionClose},
	}
}

func (c *contextMenu) label(a menuAction) string {
	switch a {
	case actionCopy:
		return "Copy: " + c.row.Name
	case actionInara:
		return menuInara
	case actionSeparator:
		return menuSeparator
	default:
		return menuClose
	}
}

func (c *contextMenu) move(delta int) {
	n := len(c.items)
	for i := c.selected + delta; i >= 0 && i < n; i += delta {
		if c.items[i] != actionSeparator {
			c.selected = i
			return
		}
	}
}

// View renders the menu in a box.
func (c *contextMenu) View() string {
	lines := make([]string, len(c.items))
	for i, a := range c.items {
		label := c.label(a)
		switch {
		case a == actionSeparator:
			lines[i] = SubtleStyle.Render(label)
		case i == c.selected:
			lines[i] = TableSelectedStyle.Render("> " + label)
		default:
			lines[i] = ValueStyle.Render("  " + label)
		}
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

// menuTop is the screen line of the first menu item: below the table, the
// status line and the box border.
func (m *App) menuTop() int {
	return tableTop + m.view.Height() + 1 + 1
}

func (m *App) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ScrollUp):
		m.menu.move(-1)
	case key.Matches(msg, m.keys.ScrollDown):
		m.menu.move(1)
	case key.Matches(msg, m.keys.Choose):
		return m.activate(m.menu.items[m.menu.selected])
	case key.Matches(msg, m.keys.Cancel):
		m.menu = nil
	}
	return nil
}

// handleMenuClick runs the clicked item; a click anywhere else closes the
// menu.
func (m *App) handleMenuClick(msg tea.MouseMsg) tea.Cmd {
	i := msg.Y - m.menuTop()
	if msg.Button != tea.MouseButtonLeft || i < 0 || i >= len(m.menu.items) {
		m.menu = nil
		return nil
	}
	return m.activate(m.menu.items[i])
}

func (m *App) activate(a menuAction) tea.Cmd {
	row := m.menu.row
	switch a {
	case actionSeparator:
		return nil
	case actionCopy:
		m.menu = nil
		return m.copyToClipboard(row)
	case actionInara:
		m.menu = nil
		return m.checkOnInara(row)
	default:
		m.menu = nil
		return nil
	}
}
