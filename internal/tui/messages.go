package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexzk1/ed-fc-companion/internal/highlight"
	"github.com/alexzk1/ed-fc-companion/internal/journal"
	"github.com/alexzk1/ed-fc-companion/internal/lookup"
	"github.com/alexzk1/ed-fc-companion/internal/remote"
)

// layoutIdleDelay is how long a burst of resizes may last before the
// layout is refitted.
const layoutIdleDelay = 50 * time.Millisecond

// systemDebounce is the quiet time after typing a system name before it is
// looked up.
const systemDebounce = 1500 * time.Millisecond

// CargoChangedMsg is sent when the cargo source reports a change.
type CargoChangedMsg struct{}

type layoutIdleMsg struct{}

// JournalEventMsg carries one followed journal entry.
type JournalEventMsg struct {
	Event journal.Event
}

type journalClosedMsg struct{}

// dockedMsg carries the filter loaded for the station docked at. seq is
// the dock change that started the load.
type dockedMsg struct {
	station string
	filter  highlight.Filter
	seq     int
}

type systemDebounceMsg struct {
	seq int
}

type stationsPollMsg struct {
	handle lookup.Handle[string]
}

type buysPollMsg struct {
	handle  lookup.Handle[int64]
	station remote.Station
}

type linkPollMsg struct {
	handle lookup.Handle[string]
}

type stationLinkPollMsg struct {
	handle lookup.Handle[remote.Station]
}

// pollAfter schedules msg one poll interval from now.
func pollAfter(interval time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return msg })
}

// waitForCargo blocks until the cargo source signals a change.
func waitForCargo(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return CargoChangedMsg{}
	}
}

// waitForJournal blocks until the next journal entry.
func waitForJournal(ch <-chan journal.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return journalClosedMsg{}
		}
		return JournalEventMsg{Event: ev}
	}
}
