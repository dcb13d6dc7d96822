package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	glyph string
	fg    Color
	// cont marks the second column of a wide glyph.
	cont bool
}

// Buffer is a Surface backed by a grid of terminal cells. It is not safe
// for concurrent use; it belongs to the UI goroutine.
type Buffer struct {
	width int
	lines [][]cell
}

// NewBuffer returns an empty buffer that clips at width columns.
func NewBuffer(width int) *Buffer {
	return &Buffer{width: max(width, 0)}
}

// Width returns the clip width.
func (b *Buffer) Width() int { return b.width }

// SetWidth changes the clip width and clears the buffer.
func (b *Buffer) SetWidth(width int) {
	b.width = max(width, 0)
	b.Clear()
}

// Lines returns the number of lines drawn so far.
func (b *Buffer) Lines() int { return len(b.lines) }

// LineHeight is always one cell.
func (b *Buffer) LineHeight() int { return 1 }

// Measure returns the display width of text in cells.
func (b *Buffer) Measure(text string) int {
	return runewidth.StringWidth(text)
}

// Clear drops all drawn lines.
func (b *Buffer) Clear() {
	b.lines = b.lines[:0]
}

// DrawText writes text on line y. Glyphs falling outside [0, width) are
// clipped; a wide glyph that does not fit entirely is dropped.
func (b *Buffer) DrawText(x, y int, text string, fg Color, anchor Anchor) {
	if y < 0 || text == "" {
		return
	}
	switch anchor {
	case N:
		x -= b.Measure(text) / 2
	case NE:
		x -= b.Measure(text)
	case NW:
	}

	line := b.line(y)
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= b.width {
			line[x] = cell{glyph: string(r), fg: fg}
			if w == 2 {
				line[x+1] = cell{cont: true, fg: fg}
			}
		}
		x += w
	}
}

func (b *Buffer) line(y int) []cell {
	for len(b.lines) <= y {
		b.lines = append(b.lines, make([]cell, b.width))
	}
	return b.lines[y]
}

// Render returns height lines starting at top, each styled by foreground
// runs and padded to the buffer width. Lines past the drawn area are blank.
func (b *Buffer) Render(top, height int) []string {
	return b.RenderCols(top, height, b.width)
}

// RenderCols is Render limited to the first cols cells of each line.
func (b *Buffer) RenderCols(top, height, cols int) []string {
	cols = min(max(cols, 0), b.width)
	out := make([]string, 0, max(height, 0))
	for y := top; y < top+height; y++ {
		if y < 0 || y >= len(b.lines) {
			out = append(out, strings.Repeat(" ", cols))
			continue
		}
		line := b.lines[y][:cols]
		if cols > 0 && cols < b.width && b.lines[y][cols].cont {
			// A wide glyph cut in half is blanked.
			line = append(append([]cell(nil), line[:cols-1]...), cell{})
		}
		out = append(out, renderLine(line))
	}
	return out
}

// PlainLines returns every drawn line without styling and with trailing
// blanks trimmed.
func (b *Buffer) PlainLines() []string {
	out := make([]string, 0, len(b.lines))
	for _, line := range b.lines {
		var sb strings.Builder
		for _, c := range line {
			sb.WriteString(c.text())
		}
		out = append(out, strings.TrimRight(sb.String(), " "))
	}
	return out
}

func (c cell) text() string {
	switch {
	case c.cont:
		return ""
	case c.glyph == "":
		return " "
	default:
		return c.glyph
	}
}

func renderLine(line []cell) string {
	var (
		sb  strings.Builder
		run strings.Builder
		fg  Color
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if fg == "" {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Render(run.String()))
		}
		run.Reset()
	}
	for _, c := range line {
		cfg := c.fg
		if c.glyph == "" && !c.cont {
			cfg = ""
		}
		if cfg != fg {
			flush()
			fg = cfg
		}
		run.WriteString(c.text())
	}
	flush()
	return sb.String()
}
