package remote

import (
	"context"

	"github.com/alexzk1/ed-fc-companion/internal/lookup"
)

// Directory resolves remote data through shared lookup caches. One
// Directory is built per process and passed to whoever needs it.
type Directory struct {
	edsm  *EDSM
	inara *Inara

	stations *lookup.Cache[string, Stations]
	buys     *lookup.Cache[int64, ItemSet]
	links    *lookup.Cache[string, string]
}

// NewDirectory returns a directory with empty caches.
func NewDirectory(edsm *EDSM, inara *Inara) *Directory {
	return &Directory{
		edsm:     edsm,
		inara:    inara,
		stations: lookup.NewCache[string, Stations](),
		buys:     lookup.NewCache[int64, ItemSet](),
		links:    lookup.NewCache[string, string](),
	}
}

// StationsInSystem returns the cached or freshly fetched stations of system.
func (d *Directory) StationsInSystem(ctx context.Context, system string) (Stations, error) {
	return lookup.Cached(ctx, d.stations, system, d.edsm.StationsInSystem)
}

// BuyList returns the cached or freshly fetched buy list of a market.
func (d *Directory) BuyList(ctx context.Context, marketID int64) (ItemSet, error) {
	return lookup.Cached(ctx, d.buys, marketID, d.edsm.BuyList)
}

// StationURL returns the cached or freshly resolved Inara link of st.
func (d *Directory) StationURL(ctx context.Context, st Station) (string, error) {
	return lookup.Cached(ctx, d.links, st.Key(), func(ctx context.Context, _ string) (string, error) {
		return d.inara.StationURL(ctx, st.Name, st.System)
	})
}

// CommodityURL resolves the Inara link of a commodity. It is not cached.
func (d *Directory) CommodityURL(ctx context.Context, name string) (string, error) {
	return d.inara.CommodityURL(ctx, name)
}

// CachedStations returns the number of systems with cached station lists.
func (d *Directory) CachedStations() int { return d.stations.Len() }

// CachedBuyLists returns the number of markets with cached buy lists.
func (d *Directory) CachedBuyLists() int { return d.buys.Len() }
