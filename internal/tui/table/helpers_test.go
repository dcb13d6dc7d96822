package table

import (
	"unicode/utf8"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/tui/canvas"
)

type drawCall struct {
	x, y   int
	text   string
	fg     canvas.Color
	anchor canvas.Anchor
}

// recordingSurface measures every rune as unit wide and records draws.
type recordingSurface struct {
	unit       int
	lineHeight int
	calls      []drawCall
}

func newRecordingSurface(unit, lineHeight int) *recordingSurface {
	return &recordingSurface{unit: unit, lineHeight: lineHeight}
}

func (s *recordingSurface) DrawText(x, y int, text string, fg canvas.Color, anchor canvas.Anchor) {
	s.calls = append(s.calls, drawCall{x: x, y: y, text: text, fg: fg, anchor: anchor})
}

func (s *recordingSurface) Measure(text string) int { return utf8.RuneCountInString(text) * s.unit }
func (s *recordingSurface) LineHeight() int         { return s.lineHeight }
func (s *recordingSurface) Clear()                  { s.calls = nil }

func (s *recordingSurface) find(text string) (drawCall, bool) {
	for _, c := range s.calls {
		if c.text == text {
			return c, true
		}
	}
	return drawCall{}, false
}

func runeCount(s string) int { return utf8.RuneCountInString(s) }

// stationFilter buys a fixed set of commodities and excludes one station.
type stationFilter struct {
	station string
	buys    map[string]bool
}

func (f stationFilter) Excludes(context string) bool { return context == f.station }
func (f stationFilter) Buys(row cargo.Row) bool      { return f.buys[row.Commodity] }
