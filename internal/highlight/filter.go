// Package highlight decides which cargo rows are sellable at a reference
// station and tracks which station that is.
package highlight

import "github.com/alexzk1/ed-fc-companion/internal/cargo"

// Filter decides per row whether the reference station would buy it.
type Filter interface {
	// Excludes reports whether the filter's station is context itself,
	// for example the carrier whose cargo is shown.
	Excludes(context string) bool
	// Buys reports whether the station has demand for the row's commodity.
	Buys(row cargo.Row) bool
}

// Highlights reports whether row should be drawn highlighted for the
// carrier owner. A nil filter highlights nothing.
func Highlights(f Filter, owner string, row cargo.Row) bool {
	return f != nil && !f.Excludes(owner) && f.Buys(row)
}
