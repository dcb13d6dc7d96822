package canvas

// Anchor selects which point of a text run is placed at the given x.
type Anchor uint8

const (
	// NW places the left edge of the text at x.
	NW Anchor = iota
	// N centres the text on x.
	N
	// NE places the right edge of the text at x.
	NE
)

// String returns the compass name of the anchor.
func (a Anchor) String() string {
	switch a {
	case NW:
		return "nw"
	case N:
		return "n"
	case NE:
		return "ne"
	default:
		return "unknown"
	}
}

// Color is a lipgloss color string ("12", "#ff8800"). The empty color draws
// with the terminal's default foreground.
type Color string

// Surface is the drawing primitive consumed by the table renderer.
type Surface interface {
	// DrawText draws text with its top edge at y, anchored horizontally at x.
	DrawText(x, y int, text string, fg Color, anchor Anchor)
	// Measure returns the width of text in surface units.
	Measure(text string) int
	// LineHeight returns the height of one text line in surface units.
	LineHeight() int
	// Clear removes everything drawn so far.
	Clear()
}
