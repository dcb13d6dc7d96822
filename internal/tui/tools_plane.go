package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/highlight"
	"github.com/alexzk1/ed-fc-companion/internal/lookup"
	"github.com/alexzk1/ed-fc-companion/internal/remote"
)

// pickerHeight is the number of station rows shown at once.
const pickerHeight = 10

// pickerTop is the screen line of the first station row: below the tabs,
// the system input, the quick fills and the status line.
const pickerTop = tabsHeight + 3

// pasteMsg carries clipboard text for the system input.
type pasteMsg struct {
	text string
}

// stationItem is a picker row: a station type title or a station.
type stationItem struct {
	title   string
	station remote.Station
}

func (s stationItem) selectable() bool { return s.title == "" }

func renderStationItem(s stationItem, selected bool) string {
	if s.title != "" {
		return HeaderStyle.Render(s.title)
	}
	label := s.station.Name
	if s.station.Pads != "" {
		label += " [" + s.station.Pads + "]"
	}
	if selected {
		return TableSelectedStyle.Render("> " + label)
	}
	return ValueStyle.Render("  " + label)
}

// stationItems flattens stations into titled groups, names sorted.
func stationItems(stations remote.Stations) []stationItem {
	items := make([]stationItem, 0, stations.Len()+len(stations))
	for _, typ := range stations.Types() {
		list := append([]remote.Station(nil), stations[typ]...)
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		items = append(items, stationItem{title: typ})
		for _, st := range list {
			items = append(items, stationItem{station: st})
		}
	}
	return items
}

// Docked plane.

func (m *App) handleDockedKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Follow):
		m.controller.SetFollow(!m.controller.Follow())
	case key.Matches(msg, m.keys.Freeze):
		station, carrier := m.controller.Station(), cargo.CarrierName(m.deps.Source)
		if !highlight.CanFreeze(station, carrier) {
			m.logger.Debug().Str("station", station).Msg("freeze refused at this station")
			return
		}
		m.controller.Freeze()
	case key.Matches(msg, m.keys.Clear):
		m.controller.Target(nil)
	}
}

func (m *App) renderDocked() string {
	station, carrier := m.controller.Station(), cargo.CarrierName(m.deps.Source)

	var lines []string
	if station == "" {
		lines = append(lines, LabelStyle.Render("Not docked"))
	} else {
		lines = append(lines, LabelStyle.Render("Docked at: ")+ValueStyle.Render(station))
	}
	if m.systems.Current != "" {
		lines = append(lines, LabelStyle.Render("System: ")+ValueStyle.Render(m.systems.Current))
	}

	follow := "[ ]"
	if m.controller.Follow() {
		follow = "[x]"
	}
	lines = append(lines, "", fmt.Sprintf("f %s %s", follow, highlight.LabelFollow))

	freeze := "h " + highlight.FreezeLabel(station, carrier)
	if highlight.CanFreeze(station, carrier) {
		lines = append(lines, freeze)
	} else {
		lines = append(lines, SubtleStyle.Render(freeze))
	}
	lines = append(lines, "c Clear highlight", "",
		LabelStyle.Render("Highlight: ")+ValueStyle.Render(describeFilter(m.controller.Active())))
	return strings.Join(lines, "\n")
}

// Navigated plane.

func (m *App) handleNavigatedKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.system.Blur()
		return nil
	case key.Matches(msg, m.keys.Choose):
		if item, ok := m.picker.Selected(); ok {
			return m.chooseStation(item.station)
		}
		return m.searchStations()
	case key.Matches(msg, m.keys.Paste):
		return m.pasteSystem()
	case key.Matches(msg, m.keys.Current):
		return m.fillSystem(m.systems.Current)
	case key.Matches(msg, m.keys.Next):
		return m.fillSystem(m.systems.Target)
	case key.Matches(msg, m.keys.Route):
		return m.fillSystem(m.systems.RouteDestination)
	case key.Matches(msg, m.keys.OpenSite):
		if item, ok := m.picker.Selected(); ok {
			h := m.siteLinks.Submit(m.ctx, item.station)
			return pollAfter(m.siteLinks.Config().Interval, stationLinkPollMsg{handle: h})
		}
		return nil
	}

	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace && m.picker.Update(msg) {
		return nil
	}
	if !m.system.Focused() {
		if msg.Type == tea.KeyRunes {
			return m.system.Focus()
		}
		return nil
	}

	before := m.system.Value()
	var cmd tea.Cmd
	m.system, cmd = m.system.Update(msg)
	if m.system.Value() != before {
		return tea.Batch(cmd, m.debounceSystem())
	}
	return cmd
}

func (m *App) handleNavigatedMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button { //nolint:exhaustive // other buttons are ignored
	case tea.MouseButtonWheelUp:
		m.picker.Move(-1)
	case tea.MouseButtonWheelDown:
		m.picker.Move(1)
	case tea.MouseButtonLeft:
		i, ok := m.picker.ItemAt(msg.Y - pickerTop)
		if !ok {
			return nil
		}
		if i == m.picker.Index() {
			item, _ := m.picker.Selected()
			return m.chooseStation(item.station)
		}
		m.picker.Select(i)
	}
	return nil
}

func (m *App) pasteSystem() tea.Cmd {
	cb, logger := m.deps.Clipboard, m.logger
	return func() tea.Msg {
		text, err := cb.ReadAll()
		if err != nil {
			logger.Warn().Err(err).Msg("clipboard paste failed")
			return nil
		}
		return pasteMsg{text: text}
	}
}

// fillSystem puts a known system name in the input and searches at once.
func (m *App) fillSystem(name string) tea.Cmd {
	if name == "" {
		return nil
	}
	m.system.SetValue(name)
	m.system.CursorEnd()
	m.debounceSeq++
	return m.searchStations()
}

// debounceSystem restarts the quiet period after an edit.
func (m *App) debounceSystem() tea.Cmd {
	m.debounceSeq++
	return pollAfter(systemDebounce, systemDebounceMsg{seq: m.debounceSeq})
}

func (m *App) handleSystemDebounce(msg systemDebounceMsg) tea.Cmd {
	if msg.seq != m.debounceSeq {
		return nil
	}
	return m.searchStations()
}

func (m *App) searchStations() tea.Cmd {
	name := strings.TrimSpace(m.system.Value())
	m.picker.SetItems(nil)
	m.setStatus("", false)
	if name == "" {
		m.searching.Stop()
		return nil
	}
	h := m.stations.Submit(m.ctx, name)
	return tea.Batch(
		m.searching.Start("Searching stations in "+name),
		pollAfter(m.stations.Config().Interval, stationsPollMsg{handle: h}),
	)
}

func (m *App) handleStationsPoll(msg stationsPollMsg) tea.Cmd {
	out := m.stations.Poll(msg.handle)
	if !out.Done() {
		return pollAfter(m.stations.Config().Interval, msg)
	}
	if out.Status == lookup.Stale {
		return nil
	}
	m.searching.Stop()

	switch {
	case out.Status == lookup.TimedOut:
		m.setStatus("Station lookup timed out", true)
	case !out.OK:
		m.setStatus("Station lookup failed", true)
	case out.Value.Len() == 0:
		m.setStatus("No stations with a market in "+msg.handle.Key, false)
	default:
		m.picker.SetItems(stationItems(out.Value))
		m.setStatus(fmt.Sprintf("%d stations with a market in %s", out.Value.Len(), msg.handle.Key), false)
	}
	return nil
}

// chooseStation fetches the buy list of st; on delivery st becomes the
// highlight target.
func (m *App) chooseStation(st remote.Station) tea.Cmd {
	h := m.buys.Submit(m.ctx, st.MarketID)
	return tea.Batch(
		m.fetching.Start("Loading market of "+st.Name),
		pollAfter(m.buys.Config().Interval, buysPollMsg{handle: h, station: st}),
	)
}

func (m *App) handleBuysPoll(msg buysPollMsg) tea.Cmd {
	out := m.buys.Poll(msg.handle)
	if !out.Done() {
		return pollAfter(m.buys.Config().Interval, msg)
	}
	if out.Status == lookup.Stale {
		return nil
	}
	m.fetching.Stop()

	switch {
	case out.Status == lookup.TimedOut:
		m.setStatus("Market lookup timed out", true)
	case !out.OK:
		m.setStatus("Market lookup failed", true)
	default:
		f := highlight.NewRemoteStation(msg.station, out.Value)
		m.controller.Target(f)
		m.setStatus("Highlighting buyers at "+f.String(), false)
	}
	return nil
}

func (m *App) setStatus(text string, failed bool) {
	m.status, m.failed = text, failed
}

func (m *App) handleStationLinkPoll(msg stationLinkPollMsg) tea.Cmd {
	out := m.siteLinks.Poll(msg.handle)
	switch {
	case !out.Done():
		return pollAfter(m.siteLinks.Config().Interval, msg)
	case out.OK && out.Value != "":
		return m.openURL(out.Value)
	default:
		m.logger.Debug().Str("station", msg.handle.Key.Name).Str("status", out.Status.String()).
			Msg("no inara link")
		return nil
	}
}

func (m *App) renderNavigated() string {
	lines := []string{m.system.View()}

	var fills []string
	for _, f := range []struct{ label, value string }{
		{"current", m.systems.Current},
		{"next", m.systems.Target},
		{"route", m.systems.RouteDestination},
	} {
		if f.value != "" {
			fills = append(fills, LabelStyle.Render(f.label+": ")+ValueStyle.Render(f.value))
		}
	}
	lines = append(lines, strings.Join(fills, "  "))

	var spinners []string
	for _, l := range []*LoadingState{m.searching, m.fetching} {
		if l.Active() {
			spinners = append(spinners, l.View())
		}
	}
	switch {
	case len(spinners) > 0:
		lines = append(lines, strings.Join(spinners, "  "))
	case m.failed:
		lines = append(lines, CriticalStyle.Render(m.status))
	case m.status != "":
		lines = append(lines, InfoStyle.Render(m.status))
	default:
		lines = append(lines, "")
	}

	if m.picker.Len() > 0 {
		lines = append(lines, m.picker.View())
	}
	lines = append(lines, "", LabelStyle.Render("Highlight: ")+ValueStyle.Render(describeFilter(m.controller.Active())))
	return strings.Join(lines, "\n")
}
