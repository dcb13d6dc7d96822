package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/tui/input"
)

// Glyphs of the scroll bar and the resize grip.
const (
	glyphTrack = "│"
	glyphThumb = "┃"
	glyphGrip  = "◢"
)

// tableTop is the screen line of the first table line.
const tableTop = tabsHeight

func (m *App) handleCargoKey(msg tea.KeyMsg) tea.Cmd {
	if m.menu != nil {
		return m.handleMenuKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.ScrollUp):
		m.scroller.Handle(input.ButtonWheel(input.ButtonUp))
	case key.Matches(msg, m.keys.ScrollDown):
		m.scroller.Handle(input.ButtonWheel(input.ButtonDown))
	case key.Matches(msg, m.keys.Grow):
		m.view.SetHeight(m.view.Height() + 1)
	case key.Matches(msg, m.keys.Shrink):
		m.view.SetHeight(m.view.Height() - 1)
	}
	return nil
}

// gripAt reports whether a screen point is on the resize grip.
func (m *App) gripAt(x, y int) bool {
	return y == tableTop+m.view.Height() && x == m.width-1
}

func (m *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.plane == PlaneNavigated {
		return m.handleNavigatedMouse(msg)
	}
	if m.plane != PlaneCargo {
		return nil
	}

	// Drags continue even when the pointer leaves the grip.
	if m.resizer.Dragging() {
		switch msg.Action { //nolint:exhaustive // a second press is impossible while dragging
		case tea.MouseActionMotion:
			m.resizer.Motion(msg.Y)
		case tea.MouseActionRelease:
			m.resizer.Release()
		}
		return nil
	}

	if w, ok := input.FromMouse(msg); ok {
		m.scroller.Handle(w)
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	if m.menu != nil {
		return m.handleMenuClick(msg)
	}

	switch msg.Button { //nolint:exhaustive // other buttons are ignored
	case tea.MouseButtonLeft:
		if m.gripAt(msg.X, msg.Y) {
			m.resizer.Press(msg.Y)
			return nil
		}
		if c, ok := m.view.CellAt(msg.X, msg.Y-tableTop); ok {
			m.logger.Debug().Int("row", c.Row).Int("col", c.Col).Msg("cell clicked")
		}
	case tea.MouseButtonRight:
		if msg.Y-tableTop >= m.view.Height() {
			return nil
		}
		if row, _, ok := m.view.RowAt(msg.X, msg.Y-tableTop); ok {
			m.menu = newContextMenu(row)
		}
	}
	return nil
}

func (m *App) renderCargo() string {
	st := m.view.State()
	h := m.view.Height()
	lines := make([]string, 0, h+1)

	if m.view.Width() < 0 {
		lines = append(lines, SubtleStyle.Render("Waiting for the terminal size..."))
	} else {
		layout := m.view.Layout()
		rows := m.surface.RenderCols(m.view.Scroll(), h, layout.Total())
		bar := scrollbar(m.view.ContentHeight(), h, m.view.Scroll())
		pad := strings.Repeat(" ", max(layout.Pad()-1, 0))
		for i, row := range rows {
			if layout.Pad() > 0 {
				row += SubtleStyle.Render(bar[i]) + pad
			}
			lines = append(lines, row)
		}
	}

	lines = append(lines, m.cargoStatus(st.Owner))
	if m.menu != nil {
		lines = append(lines, m.menu.View())
	}
	return strings.Join(lines, "\n")
}

// cargoStatus is the line under the table with the grip at its end.
func (m *App) cargoStatus(owner string) string {
	var left string
	if owner == "" {
		left = WarningStyle.Render("No carrier cargo known yet")
	} else {
		left = LabelStyle.Render("Highlight: ") + ValueStyle.Render(describeFilter(m.view.Filter()))
	}
	grip := SubtleStyle.Render(glyphGrip)
	if m.width <= 0 {
		return left + " " + grip
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(grip), 1)
	return left + strings.Repeat(" ", gap) + grip
}

// scrollbar returns one glyph per visible line.
func scrollbar(content, height, scroll int) []string {
	bar := make([]string, max(height, 0))
	for i := range bar {
		bar[i] = glyphTrack
	}
	if content <= height || height <= 0 {
		return bar
	}
	size := max(height*height/content, 1)
	start := min(scroll*height/content, height-size)
	for i := start; i < start+size; i++ {
		bar[i] = glyphThumb
	}
	return bar
}

func (m *App) copyToClipboard(row cargo.Row) tea.Cmd {
	cb, logger := m.deps.Clipboard, m.logger
	return func() tea.Msg {
		if err := cb.WriteAll(row.Name); err != nil {
			logger.Warn().Err(err).Str("commodity", row.Name).Msg("clipboard copy failed")
		}
		return nil
	}
}

func (m *App) openURL(url string) tea.Cmd {
	open, logger := m.deps.OpenURL, m.logger
	return func() tea.Msg {
		if err := open(url); err != nil {
			logger.Warn().Err(err).Str("url", url).Msg("opening browser failed")
		}
		return nil
	}
}

// checkOnInara resolves the commodity page in the background.
func (m *App) checkOnInara(row cargo.Row) tea.Cmd {
	h := m.links.Submit(m.ctx, row.Name)
	return pollAfter(m.links.Config().Interval, linkPollMsg{handle: h})
}

func (m *App) handleLinkPoll(msg linkPollMsg) tea.Cmd {
	out := m.links.Poll(msg.handle)
	switch {
	case !out.Done():
		return pollAfter(m.links.Config().Interval, msg)
	case out.OK && out.Value != "":
		return m.openURL(out.Value)
	default:
		m.logger.Debug().Str("commodity", msg.handle.Key).Str("status", out.Status.String()).
			Msg("no inara link")
		return nil
	}
}
