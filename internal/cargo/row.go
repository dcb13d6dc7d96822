package cargo

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoCarrier is returned when a source has no carrier inventory yet.
var ErrNoCarrier = errors.New("no carrier inventory known")

// Key identifies one tally entry by its commodity symbol.
type Key struct {
	Commodity string
}

// Tally maps commodities to quantities for one owner.
type Tally map[Key]int

// Total returns the sum of all quantities.
func (t Tally) Total() int {
	total := 0
	for _, q := range t {
		total += q
	}
	return total
}

// Row is one displayed cargo position. Rows are value snapshots and are never
// mutated after Snapshot builds them.
type Row struct {
	ID        int
	Commodity string // symbol as used by remote APIs
	Name      string // trade name as shown to the user
	Category  string
	Quantity  int
}

func (r Row) String() string {
	return fmt.Sprintf("Row(name=%q, quantity=%d, category=%q, commodity=%q)",
		r.Name, r.Quantity, r.Category, r.Commodity)
}

// RowsFromTally explains every tally entry and returns rows stable-sorted by
// category, then name. Negative quantities are clamped to zero.
func RowsFromTally(tally Tally, catalogue *Catalogue) []Row {
	rows := make([]Row, 0, len(tally))
	for key, quantity := range tally {
		info := catalogue.ExplainOrFallback(key.Commodity)
		rows = append(rows, Row{
			ID:        info.ID,
			Commodity: key.Commodity,
			Name:      info.TradeName,
			Category:  info.Category,
			Quantity:  max(quantity, 0),
		})
	}

	// Map iteration order is random; sort by name first so the category sort
	// below is deterministic.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

// Snapshot reads the first owner's inventory from src and returns it as rows.
// owner is "" when the source knows no carrier yet.
func Snapshot(src Source, catalogue *Catalogue) (string, []Row) {
	var (
		owner string
		rows  []Row
	)
	src.Inventory(func(callSign string, tally Tally) bool {
		owner = callSign
		rows = RowsFromTally(tally, catalogue)
		return false
	})
	return owner, rows
}

// CarrierName returns the carrier call sign known to src, or "".
func CarrierName(src Source) string {
	name := ""
	src.Inventory(func(callSign string, _ Tally) bool {
		name = callSign
		return false
	})
	return name
}
