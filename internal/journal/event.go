package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// Event names edfc reacts to.
const (
	EventDocked      = "Docked"
	EventUndocked    = "Undocked"
	EventMarket      = "Market"
	EventLocation    = "Location"
	EventFSDJump     = "FSDJump"
	EventCarrierJump = "CarrierJump"
	EventFSDTarget   = "FSDTarget"
	EventNavRoute    = "NavRoute"
	EventStartUp     = "StartUp"
)

// Side files written next to the journals.
const (
	MarketFileName   = "Market.json"
	NavRouteFileName = "NavRoute.json"
	journalGlob      = "Journal.*.log"
)

// ErrNoEvent is returned for a line without an event name.
var ErrNoEvent = errors.New("journal: line has no event")

// Event is the subset of a journal entry edfc uses.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Name        string    `json:"event"`
	StarSystem  string    `json:"StarSystem"`
	StationName string    `json:"StationName"`
	StationType string    `json:"StationType"`
	MarketID    int64     `json:"MarketID"`
	// Docked is set by Location events when the game starts docked.
	Docked bool `json:"Docked"`
	// Target is the system of an FSDTarget event.
	Target string `json:"Name"`
	// RouteDestination is filled from NavRoute.json for NavRoute events.
	RouteDestination string `json:"-"`
}

// IsDocked reports whether the event leaves the player docked at
// StationName.
func (e Event) IsDocked() bool {
	switch e.Name {
	case EventDocked, EventMarket:
		return e.StationName != ""
	case EventLocation:
		return e.Docked && e.StationName != ""
	default:
		return false
	}
}

// Parse decodes one journal line.
func Parse(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, fmt.Errorf("parsing journal line: %w", err)
	}
	if ev.Name == "" {
		return Event{}, ErrNoEvent
	}
	if ev.Name != EventFSDTarget {
		ev.Target = ""
	}
	return ev, nil
}

// MarketFile returns the Market.json path in dir.
func MarketFile(dir string) string {
	return filepath.Join(dir, MarketFileName)
}

// NavRouteFile returns the NavRoute.json path in dir.
func NavRouteFile(dir string) string {
	return filepath.Join(dir, NavRouteFileName)
}
