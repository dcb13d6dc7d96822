package table

import (
	"fmt"

	"github.com/alexzk1/ed-fc-companion/internal/tui/canvas"
)

// Palette holds the foreground colors by cell role.
type Palette struct {
	Header    canvas.Color
	Text      canvas.Color
	Highlight canvas.Color
}

// RendererConfig configures per-column anchors and row spacing. Header
// and data rows are anchored independently.
type RendererConfig struct {
	HeaderAnchors []canvas.Anchor
	DataAnchors   []canvas.Anchor
	Palette       Palette
	RowPadding    int
}

// CellOpts are per-call drawing flags.
type CellOpts struct {
	Crop      bool
	Highlight bool
}

// Renderer draws single cells. Row 0 is the header band.
type Renderer struct {
	surface canvas.Surface
	layout  *Layout
	cfg     RendererConfig
}

// NewRenderer returns a renderer drawing onto surface. It panics when the
// anchor lists do not match the layout's column count.
func NewRenderer(surface canvas.Surface, layout *Layout, cfg RendererConfig) *Renderer {
	if len(cfg.HeaderAnchors) != layout.Len() || len(cfg.DataAnchors) != layout.Len() {
		panic(fmt.Sprintf("table: %d columns but %d header and %d data anchors",
			layout.Len(), len(cfg.HeaderAnchors), len(cfg.DataAnchors)))
	}
	cfg.RowPadding = max(cfg.RowPadding, 0)
	return &Renderer{surface: surface, layout: layout, cfg: cfg}
}

// RowHeight returns the height of one table row in surface units.
func (r *Renderer) RowHeight() int {
	return r.surface.LineHeight() + r.cfg.RowPadding
}

// DrawCell draws v at (row, col) and reports whether anything was drawn.
// Empty values and text cropped away entirely draw nothing.
func (r *Renderer) DrawCell(row, col int, v Value, opts CellOpts) bool {
	if v.IsEmpty() {
		return false
	}
	text := v.String()
	if opts.Crop {
		text = Crop(text, r.layout.Width(col), r.surface.Measure)
		if text == "" {
			return false
		}
	}

	var (
		fg     canvas.Color
		anchor canvas.Anchor
	)
	switch {
	case row == 0:
		fg, anchor = r.cfg.Palette.Header, r.cfg.HeaderAnchors[col]
	case opts.Highlight:
		fg, anchor = r.cfg.Palette.Highlight, r.cfg.DataAnchors[col]
	default:
		fg, anchor = r.cfg.Palette.Text, r.cfg.DataAnchors[col]
	}

	r.surface.DrawText(r.textX(col, anchor), row*r.RowHeight(), text, fg, anchor)
	return true
}

func (r *Renderer) textX(col int, anchor canvas.Anchor) int {
	x := r.layout.Offset(col)
	switch anchor {
	case canvas.NE:
		x += r.layout.Width(col)
	case canvas.N:
		x += r.layout.Width(col) / 2
	case canvas.NW:
	}
	return x
}
