package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/config"
	"github.com/alexzk1/ed-fc-companion/internal/highlight"
	"github.com/alexzk1/ed-fc-companion/internal/journal"
	"github.com/alexzk1/ed-fc-companion/internal/lookup"
	"github.com/alexzk1/ed-fc-companion/internal/remote"
)

const (
	testCarrier = "K7Q-BQL"
	goldID      = 128049154
	inaraGold   = "https://inara.cz/elite/commodity/42/"
)

type fakeRemote struct {
	stations remote.Stations
	buys     map[int64]remote.ItemSet
	block    chan struct{}
}

func (f *fakeRemote) StationsInSystem(ctx context.Context, system string) (remote.Stations, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
		}
		return nil, errors.New("released")
	}
	return f.stations, nil
}

func (f *fakeRemote) BuyList(_ context.Context, marketID int64) (remote.ItemSet, error) {
	set, ok := f.buys[marketID]
	if !ok {
		return nil, remote.ErrNotFound
	}
	return set, nil
}

func (f *fakeRemote) CommodityURL(_ context.Context, name string) (string, error) {
	if name == "Gold" {
		return inaraGold, nil
	}
	return "", remote.ErrNotFound
}

func (f *fakeRemote) StationURL(_ context.Context, st remote.Station) (string, error) {
	return "https://inara.cz/elite/station/" + st.Name, nil
}

type fakeClipboard struct {
	mu      sync.Mutex
	content string
	err     error
}

func (c *fakeClipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content, c.err
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.content = text
	return nil
}

func (c *fakeClipboard) get() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

type opener struct {
	mu   sync.Mutex
	urls []string
}

func (o *opener) open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return nil
}

func (o *opener) opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.urls...)
}

type harness struct {
	app       *App
	src       *cargo.MemorySource
	remote    *fakeRemote
	clipboard *fakeClipboard
	opener    *opener
	dir       string
}

func testStations() remote.Stations {
	return remote.Stations{
		"Coriolis": {{Name: "Abraham Lincoln", MarketID: 1, Type: "Coriolis", System: "Sol"}},
		"Outpost":  {{Name: "Daedalus", MarketID: 2, Type: "Outpost", Pads: "outpost", System: "Sol"}},
	}
}

func newHarness(t *testing.T, poll lookup.PollConfig) *harness {
	t.Helper()
	src := cargo.NewMemorySource()
	src.Set(testCarrier, cargo.Tally{
		{Commodity: "gold"}:  1200,
		{Commodity: "water"}: 5,
	})
	h := &harness{
		src: src,
		remote: &fakeRemote{
			stations: testStations(),
			buys:     map[int64]remote.ItemSet{1: {goldID: {}}},
		},
		clipboard: &fakeClipboard{},
		opener:    &opener{},
		dir:       t.TempDir(),
	}
	h.app = NewApp(context.Background(), Deps{
		Source: src,
		Remote: h.remote,
		Table: config.TableConfig{
			CategoryWidth: 12,
			AmountWidth:   10,
			ScrollbarPad:  1,
			MinHeight:     3,
			MaxHeight:     40,
			Height:        5,
		},
		Poll:       poll,
		JournalDir: h.dir,
		Clipboard:  h.clipboard,
		OpenURL:    h.opener.open,
		Logger:     zerolog.Nop(),
	})
	t.Cleanup(h.app.Close)
	return h
}

func fastPoll() lookup.PollConfig {
	return lookup.PollConfig{Interval: time.Millisecond, MaxAttempts: 5000, Buffer: 5}
}

// sized returns a harness whose layout is fitted to an 80x30 terminal.
func sized(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, fastPoll())
	h.app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	h.app.Update(layoutIdleMsg{})
	require.Equal(t, 80, h.app.Table().Width())
	return h
}

// runCmd runs c, giving up on commands that block (listeners, blinks).
func runCmd(c tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// settle runs cmd and feeds lookup, docking and paste messages back into
// the app until no work is left.
func settle(t *testing.T, m *App, cmd tea.Cmd) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		require.True(t, time.Now().Before(deadline), "app did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := runCmd(c).(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case stationsPollMsg, buysPollMsg, linkPollMsg, stationLinkPollMsg, dockedMsg, pasteMsg, layoutIdleMsg:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(m *App, x, y int, button tea.MouseButton) tea.Cmd {
	_, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
	return cmd
}

func typeKey(m *App, k tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(k)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func goldRow(t *testing.T) cargo.Row {
	t.Helper()
	rows := cargo.RowsFromTally(cargo.Tally{{Commodity: "gold"}: 1}, cargo.DefaultCatalogue())
	require.Len(t, rows, 1)
	return rows[0]
}

func TestApp_ResizeIsDebounced(t *testing.T) {
	h := newHarness(t, fastPoll())

	_, first := h.app.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	_, second := h.app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.NotNil(t, first)
	assert.Nil(t, second, "one idle tick per burst")
	assert.Equal(t, -1, h.app.Table().Width())

	settle(t, h.app, first)
	assert.Equal(t, 80, h.app.Table().Width())
	assert.Equal(t, 79-22, h.app.Table().Layout().Width(2))

	view := h.app.View()
	assert.Contains(t, view, "Water")
	assert.Contains(t, view, "1,205")
	assert.Contains(t, view, "Highlight: ")
	assert.Contains(t, view, "none")
	assert.Contains(t, view, glyphGrip)
}

func TestApp_CargoChangeRedraws(t *testing.T) {
	h := sized(t)
	require.Len(t, h.app.Table().State().Rows, 2)

	h.src.Set(testCarrier, cargo.Tally{{Commodity: "water"}: 7})
	select {
	case <-h.app.signal.ch:
	case <-time.After(time.Second):
		t.Fatal("cargo change was not signalled")
	}

	_, cmd := h.app.Update(CargoChangedMsg{})
	assert.NotNil(t, cmd, "listener is re-armed")
	assert.Len(t, h.app.Table().State().Rows, 1)
	assert.Equal(t, 7, h.app.Table().State().Total)
}

func TestApp_NoCarrier(t *testing.T) {
	m := NewApp(context.Background(), Deps{Logger: zerolog.Nop(), Clipboard: &fakeClipboard{}})
	t.Cleanup(m.Close)
	assert.Contains(t, m.View(), "Waiting for the terminal size")

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m.Update(layoutIdleMsg{})
	assert.Contains(t, m.View(), "No carrier cargo known yet")
	assert.Zero(t, m.Table().State().TotalRows)
}

func TestApp_WheelScrolls(t *testing.T) {
	h := sized(t)
	tally := cargo.Tally{}
	for _, sym := range []string{"gold", "silver", "water", "platinum", "palladium", "cobalt", "bauxite", "indite", "gallite", "coltan"} {
		tally[cargo.Key{Commodity: sym}] = 1
	}
	h.src.Set(testCarrier, tally)
	h.app.Update(CargoChangedMsg{})

	press(h.app, 10, 3, tea.MouseButtonWheelDown)
	assert.Equal(t, 1, h.app.Table().Scroll())
	press(h.app, 10, 3, tea.MouseButtonWheelUp)
	press(h.app, 10, 3, tea.MouseButtonWheelUp)
	assert.Equal(t, 0, h.app.Table().Scroll())

	typeKey(h.app, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, h.app.Table().Scroll())
}

func TestApp_GripResizes(t *testing.T) {
	h := sized(t)
	gripY := tableTop + h.app.Table().Height()

	press(h.app, 10, gripY, tea.MouseButtonLeft)
	assert.False(t, h.app.resizer.Dragging(), "only the grip starts a drag")

	press(h.app, 79, gripY, tea.MouseButtonLeft)
	require.True(t, h.app.resizer.Dragging())
	h.app.Update(tea.MouseMsg{X: 79, Y: gripY + 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, 8, h.app.Table().Height())
	h.app.Update(tea.MouseMsg{X: 79, Y: gripY - 50, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, 3, h.app.Table().Height(), "clamped to the minimum")
	h.app.Update(tea.MouseMsg{X: 79, Y: gripY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, h.app.resizer.Dragging())

	h.app.Update(tea.MouseMsg{X: 79, Y: gripY + 10, Action: tea.MouseActionMotion})
	assert.Equal(t, 3, h.app.Table().Height())

	typeKey(h.app, runes("+"))
	assert.Equal(t, 4, h.app.Table().Height())
}

func TestApp_ContextMenuCopy(t *testing.T) {
	h := sized(t)

	press(h.app, 30, tableTop, tea.MouseButtonRight)
	assert.Nil(t, h.app.menu, "header row has no menu")

	press(h.app, 30, tableTop+1, tea.MouseButtonRight)
	require.NotNil(t, h.app.menu)
	assert.Equal(t, "Water", h.app.menu.row.Name)
	assert.Contains(t, h.app.View(), "Copy: Water")

	cmd := typeKey(h.app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Nil(t, h.app.menu)
	assert.Nil(t, cmd())
	assert.Equal(t, "Water", h.clipboard.get())
}

func TestApp_ContextMenuClipboardFailure(t *testing.T) {
	h := sized(t)
	h.clipboard.err = errors.New("no display")

	press(h.app, 30, tableTop+1, tea.MouseButtonRight)
	cmd := typeKey(h.app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.NotPanics(t, func() { assert.Nil(t, cmd()) })
}

func TestApp_ContextMenuInara(t *testing.T) {
	h := sized(t)

	press(h.app, 30, tableTop+2, tea.MouseButtonRight)
	require.NotNil(t, h.app.menu)
	require.Equal(t, "Gold", h.app.menu.row.Name)

	// Items are one line below the box border.
	cmd := press(h.app, 5, h.app.menuTop()+1, tea.MouseButtonLeft)
	settle(t, h.app, cmd)
	assert.Equal(t, []string{inaraGold}, h.opener.opened())

	// An unresolved link does nothing.
	press(h.app, 30, tableTop+1, tea.MouseButtonRight)
	typeKey(h.app, tea.KeyMsg{Type: tea.KeyDown})
	settle(t, h.app, typeKey(h.app, tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Len(t, h.opener.opened(), 1)
}

func TestApp_ContextMenuClosesOnOutsideClick(t *testing.T) {
	h := sized(t)
	press(h.app, 30, tableTop+1, tea.MouseButtonRight)
	require.NotNil(t, h.app.menu)

	// The separator is skipped by keys.
	typeKey(h.app, tea.KeyMsg{Type: tea.KeyDown})
	typeKey(h.app, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 3, h.app.menu.selected)

	press(h.app, 30, 0, tea.MouseButtonLeft)
	assert.Nil(t, h.app.menu)
}

func writeMarket(t *testing.T, dir, station string) {
	t.Helper()
	data := `{"event":"Market","MarketID":3228342528,"StationName":"` + station + `","StarSystem":"Shinrarta Dezhra",
		"Items":[{"id":128049154,"Name":"$gold_name;","Demand":1500,"Stock":0}]}`
	require.NoError(t, os.WriteFile(journal.MarketFile(dir), []byte(data), 0600))
}

func journalEvent(m *App, ev journal.Event) tea.Cmd {
	_, cmd := m.Update(JournalEventMsg{Event: ev})
	return cmd
}

func TestApp_FollowDock(t *testing.T) {
	h := sized(t)
	writeMarket(t, h.dir, "Jameson Memorial")

	typeKey(h.app, runes("2"))
	require.Equal(t, PlaneDocked, h.app.Plane())
	typeKey(h.app, runes("f"))
	require.True(t, h.app.Controller().Follow())

	settle(t, h.app, journalEvent(h.app, journal.Event{
		Name: journal.EventDocked, StationName: "Jameson Memorial", StarSystem: "Shinrarta Dezhra",
	}))
	f := h.app.Table().Filter()
	require.NotNil(t, f)
	assert.True(t, highlight.Highlights(f, testCarrier, goldRow(t)))
	assert.Contains(t, h.app.View(), "Jameson Memorial (Shinrarta Dezhra)")

	journalEvent(h.app, journal.Event{Name: journal.EventUndocked, StationName: "Jameson Memorial"})
	assert.Nil(t, h.app.Table().Filter())
	assert.Contains(t, h.app.View(), "Not docked")
}

// dockedFrom runs the command of a docking entry and returns its snapshot.
func dockedFrom(t *testing.T, cmd tea.Cmd) dockedMsg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := runCmd(c).(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case dockedMsg:
			return msg
		}
	}
	require.FailNow(t, "docking loaded no market snapshot")
	return dockedMsg{}
}

func TestApp_LateSnapshotAfterUndock(t *testing.T) {
	h := sized(t)
	writeMarket(t, h.dir, "Jameson Memorial")
	typeKey(h.app, runes("2"))
	typeKey(h.app, runes("f"))
	require.True(t, h.app.Controller().Follow())

	docked := journalEvent(h.app, journal.Event{Name: journal.EventDocked, StationName: "Jameson Memorial"})
	journalEvent(h.app, journal.Event{Name: journal.EventUndocked})

	_, cmd := h.app.Update(dockedFrom(t, docked))
	assert.Nil(t, cmd)
	assert.Empty(t, h.app.Controller().Station())
	assert.Nil(t, h.app.Table().Filter())
	assert.Contains(t, h.app.View(), "Not docked")
}

func TestApp_OnlyLatestDockApplies(t *testing.T) {
	h := sized(t)
	writeMarket(t, h.dir, "Jameson Memorial")
	typeKey(h.app, runes("2"))
	typeKey(h.app, runes("f"))

	first := dockedFrom(t, journalEvent(h.app, journal.Event{Name: journal.EventDocked, StationName: "Jameson Memorial"}))
	second := dockedFrom(t, journalEvent(h.app, journal.Event{Name: journal.EventMarket, StationName: "Jameson Memorial"}))

	h.app.Update(second)
	require.Equal(t, "Jameson Memorial", h.app.Controller().Station())
	h.app.Update(first)
	assert.Equal(t, "Jameson Memorial", h.app.Controller().Station())
	assert.NotNil(t, h.app.Table().Filter())
}

func TestApp_FreezeAndClear(t *testing.T) {
	h := sized(t)
	writeMarket(t, h.dir, "Jameson Memorial")
	typeKey(h.app, runes("2"))

	settle(t, h.app, journalEvent(h.app, journal.Event{Name: journal.EventDocked, StationName: "Jameson Memorial"}))
	assert.Nil(t, h.app.Table().Filter(), "follow is off")

	typeKey(h.app, runes("h"))
	assert.True(t, h.app.Controller().Frozen())
	journalEvent(h.app, journal.Event{Name: journal.EventUndocked})
	assert.NotNil(t, h.app.Table().Filter(), "frozen filter survives undocking")

	typeKey(h.app, runes("c"))
	assert.Nil(t, h.app.Table().Filter())
}

func TestApp_FreezeRefusedAtCarrier(t *testing.T) {
	h := sized(t)
	typeKey(h.app, runes("2"))

	settle(t, h.app, journalEvent(h.app, journal.Event{Name: journal.EventDocked, StationName: testCarrier}))
	assert.Contains(t, h.app.View(), highlight.LabelWrongStation)
	typeKey(h.app, runes("h"))
	assert.False(t, h.app.Controller().Frozen())
}

func TestApp_NavigatedStationLookup(t *testing.T) {
	h := sized(t)
	typeKey(h.app, runes("3"))
	require.Equal(t, PlaneNavigated, h.app.Plane())

	for _, r := range "Sol" {
		typeKey(h.app, runes(string(r)))
	}
	assert.Equal(t, "Sol", h.app.system.Value())
	assert.Equal(t, PlaneNavigated, h.app.Plane(), "digits and letters go to the input")

	// Only the last edit's debounce searches.
	_, cmd := h.app.Update(systemDebounceMsg{seq: h.app.debounceSeq - 1})
	assert.Nil(t, cmd)
	_, cmd = h.app.Update(systemDebounceMsg{seq: h.app.debounceSeq})
	require.NotNil(t, cmd)
	assert.True(t, h.app.searching.Active())

	settle(t, h.app, cmd)
	assert.False(t, h.app.searching.Active())
	assert.Equal(t, "2 stations with a market in Sol", h.app.Status())
	require.Equal(t, 4, h.app.picker.Len())
	item, ok := h.app.picker.Selected()
	require.True(t, ok)
	assert.Equal(t, "Abraham Lincoln", item.station.Name)
	assert.Contains(t, h.app.View(), "Daedalus [outpost]")

	settle(t, h.app, typeKey(h.app, tea.KeyMsg{Type: tea.KeyEnter}))
	active, ok := h.app.Controller().Active().(*highlight.RemoteStation)
	require.True(t, ok)
	assert.Equal(t, "Abraham Lincoln", active.Station.Name)
	assert.True(t, highlight.Highlights(h.app.Table().Filter(), testCarrier, goldRow(t)))
	assert.Equal(t, "Highlighting buyers at Abraham Lincoln (Sol)", h.app.Status())

	settle(t, h.app, typeKey(h.app, tea.KeyMsg{Type: tea.KeyCtrlO}))
	assert.Equal(t, []string{"https://inara.cz/elite/station/Abraham Lincoln"}, h.opener.opened())
}

func TestApp_NavigatedMarketFailure(t *testing.T) {
	h := sized(t)
	typeKey(h.app, runes("3"))
	h.app.system.SetValue("Sol")
	settle(t, h.app, typeKey(h.app, tea.KeyMsg{Type: tea.KeyEnter}))

	// Daedalus has no buy list.
	i, ok := h.app.picker.ItemAt(3)
	require.True(t, ok)
	require.Equal(t, 3, i)
	press(h.app, 2, pickerTop+3, tea.MouseButtonLeft)
	item, _ := h.app.picker.Selected()
	require.Equal(t, "Daedalus", item.station.Name)

	settle(t, h.app, press(h.app, 2, pickerTop+3, tea.MouseButtonLeft))
	assert.Equal(t, "Market lookup failed", h.app.Status())
	assert.Nil(t, h.app.Controller().Active())
}

func TestApp_StationLookupTimesOut(t *testing.T) {
	h := newHarness(t, lookup.PollConfig{Interval: time.Millisecond, MaxAttempts: 3, Buffer: 1})
	h.remote.block = make(chan struct{})
	t.Cleanup(func() { close(h.remote.block) })

	typeKey(h.app, runes("3"))
	h.app.system.SetValue("Sol")
	settle(t, h.app, typeKey(h.app, tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "Station lookup timed out", h.app.Status())
	assert.True(t, h.app.failed)
	assert.Equal(t, 0, h.app.picker.Len())
	assert.False(t, h.app.searching.Active())
}

func TestApp_SearchAndFetchSpinnersAreIndependent(t *testing.T) {
	h := newHarness(t, fastPoll())
	h.remote.block = make(chan struct{})
	t.Cleanup(func() { close(h.remote.block) })

	typeKey(h.app, runes("3"))
	h.app.system.SetValue("Sol")
	typeKey(h.app, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, h.app.searching.Active())

	settle(t, h.app, h.app.chooseStation(remote.Station{Name: "Abraham Lincoln", MarketID: 1, System: "Sol"}))
	assert.False(t, h.app.fetching.Active())
	assert.True(t, h.app.searching.Active(), "a finished fetch leaves the search spinner")
	assert.Contains(t, h.app.View(), "Searching stations in Sol")
	assert.NotNil(t, h.app.Controller().Active())
}

func TestApp_QuickFillsAndPaste(t *testing.T) {
	h := sized(t)
	journalEvent(h.app, journal.Event{Name: journal.EventLocation, StarSystem: "Sol"})
	journalEvent(h.app, journal.Event{Name: journal.EventFSDTarget, Target: "Alpha Centauri"})
	journalEvent(h.app, journal.Event{Name: journal.EventNavRoute, RouteDestination: "Colonia"})

	typeKey(h.app, runes("3"))
	view := h.app.View()
	assert.Contains(t, view, "Alpha Centauri")
	assert.Contains(t, view, "Colonia")

	cmd := typeKey(h.app, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, "Alpha Centauri", h.app.system.Value())
	assert.True(t, h.app.searching.Active(), "quick fills search at once")
	settle(t, h.app, cmd)

	typeKey(h.app, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, "Colonia", h.app.system.Value())
	typeKey(h.app, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Sol", h.app.system.Value())

	h.clipboard.content = "  Achenar \n"
	seq := h.app.debounceSeq
	settle(t, h.app, typeKey(h.app, tea.KeyMsg{Type: tea.KeyCtrlV}))
	assert.Equal(t, "Achenar", h.app.system.Value())
	assert.Equal(t, seq+1, h.app.debounceSeq, "paste restarts the debounce")
}

func TestApp_PlaneKeys(t *testing.T) {
	h := sized(t)
	typeKey(h.app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PlaneDocked, h.app.Plane())
	typeKey(h.app, tea.KeyMsg{Type: tea.KeyShiftTab})
	typeKey(h.app, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, PlaneNavigated, h.app.Plane())
	assert.True(t, h.app.system.Focused())

	typeKey(h.app, runes("q"))
	assert.Equal(t, "q", h.app.system.Value(), "q is typed, not quit")
	typeKey(h.app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.app.system.Focused())
	typeKey(h.app, runes("1"))
	assert.Equal(t, PlaneCargo, h.app.Plane())

	cmd := typeKey(h.app, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestScrollbar(t *testing.T) {
	assert.Equal(t, []string{"│", "│", "│"}, scrollbar(3, 3, 0))
	assert.Equal(t, []string{"┃", "│", "│", "│"}, scrollbar(16, 4, 0))
	assert.Equal(t, []string{"│", "│", "│", "┃"}, scrollbar(16, 4, 12))
	assert.Equal(t, "┃┃││", strings.Join(scrollbar(8, 4, 0), ""))
	assert.Empty(t, scrollbar(10, 0, 0))
}

func TestStationItems(t *testing.T) {
	items := stationItems(remote.Stations{
		"Outpost":  {{Name: "Zeta"}, {Name: "Alpha"}},
		"Coriolis": {{Name: "Mid"}},
	})
	var got []string
	for _, it := range items {
		if it.title != "" {
			got = append(got, "#"+it.title)
		} else {
			got = append(got, it.station.Name)
		}
	}
	assert.Equal(t, []string{"#Coriolis", "Mid", "#Outpost", "Alpha", "Zeta"}, got)
}
