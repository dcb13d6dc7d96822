package remote

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
)

const (
	edsmStationsPath = "/api-system-v1/stations"
	edsmMarketPath   = "/api-system-v1/stations/market"

	stationTypeOutpost = "Outpost"
	stationTypeUnknown = "Unknown"
	padsOutpost        = "outpost"
)

// Station is a station with a market, as reported by EDSM.
type Station struct {
	Name     string
	ID       int64
	MarketID int64
	Type     string
	// Pads is a short landing pad note; "outpost" for outposts.
	Pads   string
	System string
}

// Key returns the "station | system" form used by Inara search results.
func (s Station) Key() string {
	return s.Name + " | " + s.System
}

// Stations groups stations by station type.
type Stations map[string][]Station

// Types returns the station types in sorted order.
func (s Stations) Types() []string {
	types := make([]string, 0, len(s))
	for t := range s {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Len returns the total number of stations.
func (s Stations) Len() int {
	n := 0
	for _, list := range s {
		n += len(list)
	}
	return n
}

// ItemSet is a set of commodity market ids.
type ItemSet map[int]struct{}

// Has reports whether id is in the set.
func (s ItemSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

type edsmStation struct {
	ID         int64  `json:"id"`
	MarketID   int64  `json:"marketId"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	HaveMarket bool   `json:"haveMarket"`
}

type edsmStationsResponse struct {
	Name     string        `json:"name"`
	Stations []edsmStation `json:"stations"`
}

type edsmCommodity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Stock  int    `json:"stock"`
	Demand int    `json:"demand"`
}

type edsmMarketResponse struct {
	MarketID    int64           `json:"marketId"`
	Commodities []edsmCommodity `json:"commodities"`
}

// EDSM is a client for the EDSM system API.
type EDSM struct {
	BaseURL    string
	HTTPClient *http.Client

	catalogue *cargo.Catalogue
	carrier   func() string
	logger    zerolog.Logger
}

// NewEDSM returns an EDSM client. carrier returns the call sign of the
// user's own carrier, which is left out of station lists; it may be nil.
func NewEDSM(
	baseURL string,
	client *http.Client,
	catalogue *cargo.Catalogue,
	carrier func() string,
	logger zerolog.Logger,
) *EDSM {
	if carrier == nil {
		carrier = func() string { return "" }
	}
	return &EDSM{
		BaseURL:    baseURL,
		HTTPClient: client,
		catalogue:  catalogue,
		carrier:    carrier,
		logger:     logger.With().Str("component", "edsm").Logger(),
	}
}

// StationsInSystem returns the stations with a market in system, grouped
// by station type.
func (e *EDSM) StationsInSystem(ctx context.Context, system string) (Stations, error) {
	if system == "" {
		return nil, ErrEmptyName
	}

	var resp edsmStationsResponse
	err := getJSON(ctx, e.HTTPClient, e.BaseURL, edsmStationsPath,
		url.Values{"systemName": {system}}, nil, &resp)
	if err != nil {
		return nil, err
	}

	carrier := e.carrier()
	grouped := Stations{}
	for _, st := range resp.Stations {
		if !st.HaveMarket || st.Name == carrier {
			continue
		}
		typ := st.Type
		if typ == "" {
			typ = stationTypeUnknown
		}
		station := Station{
			Name:     st.Name,
			ID:       st.ID,
			MarketID: st.MarketID,
			Type:     typ,
			System:   system,
		}
		if typ == stationTypeOutpost {
			station.Pads = padsOutpost
		}
		grouped[typ] = append(grouped[typ], station)
	}

	e.logger.Debug().
		Str("system", system).
		Int("received", len(resp.Stations)).
		Int("kept", grouped.Len()).
		Msg("stations resolved")
	return grouped, nil
}

// BuyList returns the commodities market marketID has demand for. Stock
// is ignored. Commodities unknown to the catalogue are skipped.
func (e *EDSM) BuyList(ctx context.Context, marketID int64) (ItemSet, error) {
	var resp edsmMarketResponse
	err := getJSON(ctx, e.HTTPClient, e.BaseURL, edsmMarketPath,
		url.Values{"marketId": {strconv.FormatInt(marketID, 10)}}, nil, &resp)
	if err != nil {
		return nil, err
	}

	buys := ItemSet{}
	for _, c := range resp.Commodities {
		if c.Demand <= 0 || c.ID == "" {
			continue
		}
		info, ok := e.catalogue.Explain(c.ID)
		if !ok {
			e.logger.Debug().Str("commodity", c.ID).Msg("unknown commodity in market")
			continue
		}
		buys[info.ID] = struct{}{}
	}

	e.logger.Debug().
		Int64("market_id", marketID).
		Int("buys", len(buys)).
		Msg("buy list resolved")
	return buys, nil
}
