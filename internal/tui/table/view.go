package table

import (
	"github.com/rs/zerolog"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/config"
	"github.com/alexzk1/ed-fc-companion/internal/highlight"
	"github.com/alexzk1/ed-fc-companion/internal/tui/canvas"
)

// Column names of the cargo table, left to right.
const (
	ColCategory = "category"
	ColAmount   = "amount"
	ColName     = "name"
)

// Labels drawn in the header and footer bands.
const (
	LabelCategory  = "Category"
	LabelAmount    = "Amount"
	LabelCommodity = "Commodity"
	LabelTotal     = "Total Used:"
)

// initialNameWidth is used for the derived column until the first Fit.
const initialNameWidth = 100

// State is the table as last drawn. It is replaced wholesale on every
// redraw.
type State struct {
	Owner     string
	Rows      []cargo.Row
	TotalRows int
	Total     int
	Filter    highlight.Filter
}

// View owns the surface and the table collaborators and exposes the
// operations the UI needs. It is confined to the UI goroutine.
type View struct {
	source    cargo.Source
	catalogue *cargo.Catalogue
	surface   canvas.Surface
	cfg       config.TableConfig
	logger    zerolog.Logger

	layout   *Layout
	renderer *Renderer
	hits     *HitTester

	filter highlight.Filter
	state  State

	width         int
	pendingWidth  int
	resizePending bool
	height        int
	scroll        int
}

// NewView builds a cargo table view over source, drawn on surface.
func NewView(
	source cargo.Source,
	catalogue *cargo.Catalogue,
	surface canvas.Surface,
	cfg config.TableConfig,
	palette Palette,
	logger zerolog.Logger,
) *View {
	layout := NewLayout([]Column{
		{Name: ColCategory, Width: cfg.CategoryWidth},
		{Name: ColAmount, Width: cfg.AmountWidth},
		{Name: ColName, Width: initialNameWidth},
	}, cfg.ScrollbarPad)
	anchors := []canvas.Anchor{canvas.NW, canvas.NW, canvas.NW}
	renderer := NewRenderer(surface, layout, RendererConfig{
		HeaderAnchors: anchors,
		DataAnchors:   anchors,
		Palette:       palette,
		RowPadding:    cfg.RowPadding,
	})

	return &View{
		source:    source,
		catalogue: catalogue,
		surface:   surface,
		cfg:       cfg,
		logger:    logger.With().Str("component", "table").Logger(),
		layout:    layout,
		renderer:  renderer,
		hits:      NewHitTester(layout, renderer.RowHeight),
		width:     -1,
		height:    cfg.ClampHeight(cfg.Height),
	}
}

// Layout returns the column layout.
func (v *View) Layout() *Layout { return v.layout }

// State returns the last drawn state.
func (v *View) State() State { return v.state }

// Filter returns the active highlight filter, or nil.
func (v *View) Filter() highlight.Filter { return v.filter }

// SetFilter replaces the active filter and redraws. Passing nil clears it.
func (v *View) SetFilter(f highlight.Filter) {
	v.filter = f
	v.Redraw()
}

// Redraw pulls a fresh snapshot from the source and draws the whole table.
// Nothing is drawn until the source reports a carrier.
func (v *View) Redraw() {
	v.surface.Clear()

	owner, rows := cargo.Snapshot(v.source, v.catalogue)
	st := State{Owner: owner, Rows: rows, Filter: v.filter}
	if owner == "" {
		v.state = st
		v.hits.SetTotalRows(0)
		v.clampScroll()
		return
	}

	// Header and footer bands around the data rows.
	st.TotalRows = headerRows + len(rows) + 1

	cat, amt, name := v.layout.Index(ColCategory), v.layout.Index(ColAmount), v.layout.Index(ColName)
	v.renderer.DrawCell(0, name, Text(LabelCommodity), CellOpts{})
	v.renderer.DrawCell(0, amt, Text(LabelAmount), CellOpts{})
	v.renderer.DrawCell(0, cat, Text(LabelCategory), CellOpts{})

	row := headerRows
	for _, r := range rows {
		st.Total += r.Quantity
		v.renderer.DrawCell(row, name, Text(r.Name), CellOpts{
			Crop:      true,
			Highlight: highlight.Highlights(v.filter, owner, r),
		})
		v.renderer.DrawCell(row, amt, Number(r.Quantity), CellOpts{Crop: true})
		v.renderer.DrawCell(row, cat, Text(r.Category), CellOpts{Crop: true})
		row++
	}
	v.renderer.DrawCell(row, cat, Text(LabelTotal), CellOpts{Crop: true})
	v.renderer.DrawCell(row, amt, Number(st.Total), CellOpts{Crop: true})

	v.state = st
	v.hits.SetTotalRows(st.TotalRows)
	v.clampScroll()

	v.logger.Debug().
		Str("carrier", owner).
		Int("rows", st.TotalRows).
		Int("total", st.Total).
		Msg("table redrawn")
}

// Resize records a new viewport width. The layout is recomputed by the
// next Idle call. It returns true when the caller must schedule that call,
// which happens once per burst of resizes.
func (v *View) Resize(width int) bool {
	v.pendingWidth = width
	if v.resizePending {
		return false
	}
	v.resizePending = true
	return true
}

// Idle applies a pending resize. The layout is refitted and the table
// redrawn only when the width actually changed; it reports whether that
// happened.
func (v *View) Idle() bool {
	if !v.resizePending {
		return false
	}
	v.resizePending = false
	if v.pendingWidth == v.width {
		return false
	}
	v.width = v.pendingWidth

	if s, ok := v.surface.(interface{ SetWidth(int) }); ok {
		s.SetWidth(v.width)
	}
	last := v.layout.Fit(v.width)
	v.logger.Debug().
		Int("width", v.width).
		Int("table_width", v.layout.Total()).
		Int("derived_width", last).
		Msg("column widths updated")

	v.Redraw()
	return true
}

// Width returns the viewport width the layout was last fitted to, or -1.
func (v *View) Width() int { return v.width }

// Height returns the viewport height in surface units.
func (v *View) Height() int { return v.height }

// SetHeight clamps h into the configured bounds, applies it and returns
// the applied height.
func (v *View) SetHeight(h int) int {
	v.height = v.cfg.ClampHeight(h)
	v.clampScroll()
	return v.height
}

// HeightBounds returns the configured minimum and maximum height.
func (v *View) HeightBounds() (int, int) { return v.cfg.MinHeight, v.cfg.MaxHeight }

// Scroll returns the vertical scroll offset in surface units.
func (v *View) Scroll() int { return v.scroll }

// ContentHeight returns the height of everything drawn.
func (v *View) ContentHeight() int {
	return v.state.TotalRows * v.renderer.RowHeight()
}

// ScrollUnits scrolls by n rows, negative is up, and reports whether the
// offset changed.
func (v *View) ScrollUnits(n int) bool {
	prev := v.scroll
	v.scroll += n * v.renderer.RowHeight()
	v.clampScroll()
	return v.scroll != prev
}

func (v *View) clampScroll() {
	maxScroll := max(0, v.ContentHeight()-v.height)
	v.scroll = min(max(v.scroll, 0), maxScroll)
}

// CellAt maps a viewport point to a cell, bands included.
func (v *View) CellAt(screenX, screenY int) (Cell, bool) {
	if screenX < 0 || screenY < 0 {
		return Cell{}, false
	}
	return v.hits.CellAt(screenX, screenY+v.scroll)
}

// RowAt maps a viewport point to the data row under it. Header, footer and
// points outside the table yield false.
func (v *View) RowAt(screenX, screenY int) (cargo.Row, Cell, bool) {
	if screenX < 0 || screenY < 0 {
		return cargo.Row{}, Cell{}, false
	}
	c, ok := v.hits.DataCellAt(screenX, screenY+v.scroll, len(v.state.Rows))
	if !ok {
		return cargo.Row{}, Cell{}, false
	}
	return v.state.Rows[c.Row], c, true
}
