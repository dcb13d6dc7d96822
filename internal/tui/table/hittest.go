package table

// headerRows is the number of bands above the first data row.
const headerRows = 1

// Cell is a logical (row, column) position.
type Cell struct {
	Row int
	Col int
}

// HitTester maps canvas coordinates to cells of the last drawn table.
type HitTester struct {
	layout    *Layout
	rowHeight func() int
	totalRows int
}

// NewHitTester returns a hit tester over layout. rowHeight is consulted on
// every lookup so padding or font changes are picked up.
func NewHitTester(layout *Layout, rowHeight func() int) *HitTester {
	return &HitTester{layout: layout, rowHeight: rowHeight}
}

// SetTotalRows records how many rows, bands included, were drawn.
func (h *HitTester) SetTotalRows(n int) { h.totalRows = max(n, 0) }

// TotalRows returns the row count set by the last draw.
func (h *HitTester) TotalRows() int { return h.totalRows }

// CellAt returns the cell under canvas point (x, y), header and footer
// bands included.
func (h *HitTester) CellAt(x, y int) (Cell, bool) {
	if x < 0 || y < 0 {
		return Cell{}, false
	}
	col := -1
	for i := range h.layout.Len() {
		off := h.layout.Offset(i)
		if off <= x && x < off+h.layout.Width(i) {
			col = i
			break
		}
	}
	if col < 0 {
		return Cell{}, false
	}

	rh := h.rowHeight()
	if rh <= 0 {
		return Cell{}, false
	}
	row := y / rh
	if row >= h.totalRows {
		return Cell{}, false
	}
	return Cell{Row: row, Col: col}, true
}

// DataCellAt is CellAt with the header removed: Row is an index into the
// data rows. Points on the header, the footer or past dataRows are
// rejected, never clamped.
func (h *HitTester) DataCellAt(x, y, dataRows int) (Cell, bool) {
	c, ok := h.CellAt(x, y)
	if !ok || c.Row < headerRows {
		return Cell{}, false
	}
	c.Row -= headerRows
	if c.Row >= dataRows {
		return Cell{}, false
	}
	return c, true
}
