package journal

import (
	"encoding/json"
	"fmt"
	"os"
)

// Systems tracks the system names offered as quick fills when picking a
// navigation target.
type Systems struct {
	Current          string
	Target           string
	RouteDestination string
}

// Apply updates s from ev and reports whether anything changed.
func (s *Systems) Apply(ev Event) bool {
	prev := *s
	switch ev.Name {
	case EventLocation, EventFSDJump, EventCarrierJump, EventDocked:
		if ev.StarSystem != "" {
			s.Current = ev.StarSystem
		}
		if ev.Name == EventFSDJump && ev.StarSystem == s.Target {
			s.Target = ""
		}
	case EventFSDTarget:
		s.Target = ev.Target
	case EventNavRoute:
		s.RouteDestination = ev.RouteDestination
	}
	return *s != prev
}

type navRoute struct {
	Route []struct {
		StarSystem string `json:"StarSystem"`
	} `json:"Route"`
}

// LoadRouteDestination returns the last system of the plotted route in
// NavRoute.json at path, or "" for an empty route.
func LoadRouteDestination(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading nav route: %w", err)
	}
	var r navRoute
	if err = json.Unmarshal(data, &r); err != nil {
		return "", fmt.Errorf("parsing nav route: %w", err)
	}
	if len(r.Route) == 0 {
		return "", nil
	}
	return r.Route[len(r.Route)-1].StarSystem, nil
}
