package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/highlight"
	"github.com/alexzk1/ed-fc-companion/internal/journal"
	"github.com/alexzk1/ed-fc-companion/internal/lookup"
	"github.com/alexzk1/ed-fc-companion/internal/remote"
	"github.com/alexzk1/ed-fc-companion/internal/tui/canvas"
	"github.com/alexzk1/ed-fc-companion/internal/tui/input"
	listview "github.com/alexzk1/ed-fc-companion/internal/tui/list"
	"github.com/alexzk1/ed-fc-companion/internal/tui/table"
)

// Plane is one screen of the application.
type Plane int

// Planes in tab order.
const (
	PlaneCargo Plane = iota
	PlaneDocked
	PlaneNavigated
	numPlanes
)

// String returns the tab title.
func (p Plane) String() string {
	switch p {
	case PlaneCargo:
		return "Cargo"
	case PlaneDocked:
		return "Docked"
	case PlaneNavigated:
		return "Navigated"
	default:
		return "?"
	}
}

// tabsHeight is the number of screen lines above a plane.
const tabsHeight = 1

// cargoSignal is the weakly held owner of the cargo subscription.
type cargoSignal struct {
	ch chan struct{}
}

// App is the root Bubble Tea model.
type App struct {
	ctx    context.Context
	deps   Deps
	logger zerolog.Logger
	keys   keyMap
	help   help.Model

	plane  Plane
	width  int
	height int

	// Cargo plane.
	surface  *canvas.Buffer
	view     *table.View
	scroller *input.ScrollController
	resizer  *input.ResizeController
	menu     *contextMenu
	signal   *cargoSignal
	unwatch  func()

	// Highlight state shared by the tools planes.
	controller *highlight.Controller
	systems    journal.Systems
	dockSeq    int

	// Navigated plane.
	system      textinput.Model
	debounceSeq int
	stations    *lookup.Requester[string, remote.Stations]
	buys        *lookup.Requester[int64, remote.ItemSet]
	links       *lookup.Requester[string, string]
	siteLinks   *lookup.Requester[remote.Station, string]
	picker      *listview.Model[stationItem]
	searching   *LoadingState
	fetching    *LoadingState
	status      string
	failed      bool
}

// NewApp builds the application. ctx bounds every background lookup.
func NewApp(ctx context.Context, deps Deps) *App {
	deps = deps.withDefaults()
	logger := deps.Logger.With().Str("component", "tui").Logger()

	m := &App{
		ctx:       ctx,
		deps:      deps,
		logger:    logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     -1,
		surface:   canvas.NewBuffer(0),
		signal:    &cargoSignal{ch: make(chan struct{}, 1)},
		searching: NewLoadingState(),
		fetching:  NewLoadingState(),
	}

	m.view = table.NewView(deps.Source, deps.Catalogue, m.surface, deps.Table, TablePalette(), deps.Logger)
	m.scroller = input.NewScrollController(m.view)
	minH, maxH := m.view.HeightBounds()
	m.resizer = input.NewResizeController(m.view, minH, maxH)
	m.controller = highlight.NewController(m.view.SetFilter, deps.Logger)
	m.unwatch = cargo.Watch(deps.Source, m.signal, func(s *cargoSignal) {
		select {
		case s.ch <- struct{}{}:
		default:
		}
	})

	m.system = textinput.New()
	m.system.Placeholder = "System name"
	m.system.Prompt = "System: "
	m.system.CharLimit = 64

	m.stations = lookup.NewRequester(deps.Remote.StationsInSystem, deps.Poll, deps.Logger)
	m.buys = lookup.NewRequester(deps.Remote.BuyList, deps.Poll, deps.Logger)
	m.links = lookup.NewRequester(deps.Remote.CommodityURL, deps.Poll, deps.Logger)
	m.siteLinks = lookup.NewRequester(deps.Remote.StationURL, deps.Poll, deps.Logger)
	m.picker = listview.New(pickerHeight, renderStationItem, stationItem.selectable)

	m.view.Redraw()
	return m
}

// Close drops the cargo subscription.
func (m *App) Close() {
	if m.unwatch != nil {
		m.unwatch()
		m.unwatch = nil
	}
}

// Plane returns the shown plane.
func (m *App) Plane() Plane { return m.plane }

// Table returns the cargo table view.
func (m *App) Table() *table.View { return m.view }

// Controller returns the highlight controller.
func (m *App) Controller() *highlight.Controller { return m.controller }

// Status returns the last status line of the tools planes.
func (m *App) Status() string { return m.status }

// Init starts the cargo and journal listeners.
func (m *App) Init() tea.Cmd {
	return tea.Batch(waitForCargo(m.signal.ch), waitForJournal(m.deps.Events))
}

// Update handles messages (Bubble Tea interface).
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleWindowSize(msg)
	case layoutIdleMsg:
		m.view.Idle()
		return m, nil
	case CargoChangedMsg:
		m.view.Redraw()
		return m, waitForCargo(m.signal.ch)
	case JournalEventMsg:
		return m, tea.Batch(m.handleJournal(msg.Event), waitForJournal(m.deps.Events))
	case journalClosedMsg:
		m.logger.Debug().Msg("journal closed")
		return m, nil
	case dockedMsg:
		if msg.seq != m.dockSeq {
			m.logger.Debug().Str("station", msg.station).Msg("dropping stale market snapshot")
			return m, nil
		}
		m.controller.Docked(msg.station, msg.filter)
		return m, nil
	case pasteMsg:
		m.system.SetValue(strings.TrimSpace(msg.text))
		m.system.CursorEnd()
		return m, m.debounceSystem()
	case systemDebounceMsg:
		return m, m.handleSystemDebounce(msg)
	case stationsPollMsg:
		return m, m.handleStationsPoll(msg)
	case buysPollMsg:
		return m, m.handleBuysPoll(msg)
	case linkPollMsg:
		return m, m.handleLinkPoll(msg)
	case stationLinkPollMsg:
		return m, m.handleStationLinkPoll(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if _, ok := msg.(spinner.TickMsg); ok {
		return m, tea.Batch(m.searching.Update(msg), m.fetching.Update(msg))
	}
	var cmd tea.Cmd
	m.system, cmd = m.system.Update(msg)
	return m, cmd
}

func (m *App) handleWindowSize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width
	m.system.Width = max(msg.Width-len(m.system.Prompt)-1, 1)
	if m.view.Resize(msg.Width) {
		return pollAfter(layoutIdleDelay, layoutIdleMsg{})
	}
	return nil
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return m, tea.Quit
	}
	typing := m.plane == PlaneNavigated && m.system.Focused()
	switch {
	case key.Matches(msg, m.keys.NextPlane):
		return m, m.setPlane((m.plane + 1) % numPlanes)
	case key.Matches(msg, m.keys.PrevPlane):
		return m, m.setPlane((m.plane + numPlanes - 1) % numPlanes)
	case !typing && key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case !typing && key.Matches(msg, m.keys.Cargo):
		return m, m.setPlane(PlaneCargo)
	case !typing && key.Matches(msg, m.keys.Docked):
		return m, m.setPlane(PlaneDocked)
	case !typing && key.Matches(msg, m.keys.Navigated):
		return m, m.setPlane(PlaneNavigated)
	}

	switch m.plane {
	case PlaneCargo:
		return m, m.handleCargoKey(msg)
	case PlaneDocked:
		m.handleDockedKey(msg)
		return m, nil
	case PlaneNavigated:
		return m, m.handleNavigatedKey(msg)
	default:
		return m, nil
	}
}

func (m *App) setPlane(p Plane) tea.Cmd {
	m.plane = p
	m.menu = nil
	if p == PlaneNavigated {
		return m.system.Focus()
	}
	m.system.Blur()
	return nil
}

// handleJournal applies a journal entry. Docking loads the market snapshot
// off the update goroutine; every dock change invalidates snapshots still
// being loaded.
func (m *App) handleJournal(ev journal.Event) tea.Cmd {
	m.systems.Apply(ev)
	switch {
	case ev.IsDocked():
		m.dockSeq++
		return m.loadMarket(ev.StationName, m.dockSeq)
	case ev.Name == journal.EventUndocked:
		m.dockSeq++
		m.controller.Undocked()
	}
	return nil
}

func (m *App) loadMarket(station string, seq int) tea.Cmd {
	dir, catalogue, logger := m.deps.JournalDir, m.deps.Catalogue, m.deps.Logger
	return func() tea.Msg {
		msg := dockedMsg{station: station, seq: seq}
		if dir == "" {
			return msg
		}
		snap, err := highlight.LoadMarketSnapshot(journal.MarketFile(dir), station, catalogue, logger)
		if err != nil {
			logger.Warn().Err(err).Str("station", station).Msg("market snapshot unavailable")
			return msg
		}
		msg.filter = snap
		return msg
	}
}

// View renders the active plane (Bubble Tea interface).
func (m *App) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	var bindings []key.Binding
	switch m.plane {
	case PlaneCargo:
		b.WriteString(m.renderCargo())
		bindings = m.keys.cargoHelp()
	case PlaneDocked:
		b.WriteString(m.renderDocked())
		bindings = m.keys.dockedHelp()
	case PlaneNavigated:
		b.WriteString(m.renderNavigated())
		bindings = m.keys.navigatedHelp()
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(bindings))
	return b.String()
}

func (m *App) renderTabs() string {
	tabs := make([]string, 0, numPlanes+1)
	for p := PlaneCargo; p < numPlanes; p++ {
		title := fmt.Sprintf("%d %s", p+1, p)
		if p == m.plane {
			tabs = append(tabs, ActiveTabStyle.Render(title))
		} else {
			tabs = append(tabs, TabStyle.Render(title))
		}
	}
	if carrier := cargo.CarrierName(m.deps.Source); carrier != "" {
		tabs = append(tabs, SubtleStyle.Render(" "+carrier))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// describeFilter names the active filter for status lines.
func describeFilter(f highlight.Filter) string {
	if f == nil {
		return "none"
	}
	if s, ok := f.(fmt.Stringer); ok {
		return s.String()
	}
	return "active"
}
