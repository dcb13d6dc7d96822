package highlight

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/remote"
)

type marketItem struct {
	ID     int    `json:"id"`
	Name   string `json:"Name"`
	Demand int    `json:"Demand"`
	Stock  int    `json:"Stock"`
}

type marketFile struct {
	MarketID    int64        `json:"MarketID"`
	StationName string       `json:"StationName"`
	StarSystem  string       `json:"StarSystem"`
	Items       []marketItem `json:"Items"`
}

// MarketSnapshot is a Filter over the game's Market.json for the station
// the player is docked at. A commodity is bought when its demand is above
// zero.
type MarketSnapshot struct {
	Station  string
	System   string
	MarketID int64

	buys remote.ItemSet
}

// ParseMarketSnapshot builds a snapshot for station from Market.json
// contents. When the file describes another station, which happens right
// after docking before the market is opened, the snapshot buys nothing.
func ParseMarketSnapshot(
	data []byte,
	station string,
	catalogue *cargo.Catalogue,
	logger zerolog.Logger,
) (*MarketSnapshot, error) {
	var f marketFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing market snapshot: %w", err)
	}

	snap := &MarketSnapshot{Station: station, System: f.StarSystem, MarketID: f.MarketID, buys: remote.ItemSet{}}
	if station == "" {
		snap.Station = f.StationName
	}
	if f.StationName != snap.Station {
		logger.Debug().
			Str("docked", snap.Station).
			Str("market", f.StationName).
			Msg("market snapshot belongs to another station")
		return snap, nil
	}

	for _, item := range f.Items {
		if item.Demand <= 0 {
			continue
		}
		info, ok := catalogue.ExplainID(item.ID)
		if !ok {
			logger.Warn().Int("id", item.ID).Str("name", item.Name).Msg("skipping unknown item in market snapshot")
			continue
		}
		snap.buys[info.ID] = struct{}{}
	}
	return snap, nil
}

// LoadMarketSnapshot reads the Market.json at path.
func LoadMarketSnapshot(
	path, station string,
	catalogue *cargo.Catalogue,
	logger zerolog.Logger,
) (*MarketSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading market snapshot: %w", err)
	}
	return ParseMarketSnapshot(data, station, catalogue, logger)
}

// Excludes reports whether context is the snapshot's station.
func (m *MarketSnapshot) Excludes(context string) bool { return m.Station == context }

// Buys reports whether the station has demand for row.
func (m *MarketSnapshot) Buys(row cargo.Row) bool { return m.buys.Has(row.ID) }

// Len returns the number of commodities the station buys.
func (m *MarketSnapshot) Len() int { return len(m.buys) }

func (m *MarketSnapshot) String() string {
	return describe(m.Station, m.System)
}

// RemoteStation is a Filter over a station's buy list fetched from EDSM.
type RemoteStation struct {
	Station remote.Station
	buys    remote.ItemSet
}

// NewRemoteStation returns a filter for st buying the commodities in buys.
func NewRemoteStation(st remote.Station, buys remote.ItemSet) *RemoteStation {
	if buys == nil {
		buys = remote.ItemSet{}
	}
	return &RemoteStation{Station: st, buys: buys}
}

// Excludes reports whether context is the station itself.
func (r *RemoteStation) Excludes(context string) bool { return r.Station.Name == context }

// Buys reports whether the station has demand for row.
func (r *RemoteStation) Buys(row cargo.Row) bool { return r.buys.Has(row.ID) }

func (r *RemoteStation) String() string {
	return describe(r.Station.Name, r.Station.System)
}

func describe(station, system string) string {
	if system == "" {
		return station
	}
	return station + " (" + system + ")"
}
