package table

import "fmt"

// Column is a named table column. Width is ignored for the last column,
// which always takes the remaining space.
type Column struct {
	Name  string
	Width int
}

// Layout holds the column geometry. Offsets are fixed at construction;
// only the derived last width changes on Fit.
type Layout struct {
	columns []Column
	offsets []int
	widths  []int
	pad     int
	total   int
}

// NewLayout builds a layout. pad is reserved on the right for the scroll
// bar. It panics when columns is empty, a name repeats or a width is
// negative.
func NewLayout(columns []Column, pad int) *Layout {
	if len(columns) == 0 {
		panic("table: layout needs at least one column")
	}
	seen := make(map[string]struct{}, len(columns))
	l := &Layout{
		columns: append([]Column(nil), columns...),
		offsets: make([]int, len(columns)),
		widths:  make([]int, len(columns)),
		pad:     max(pad, 0),
	}
	acc := 0
	for i, c := range columns {
		if _, dup := seen[c.Name]; dup {
			panic(fmt.Sprintf("table: duplicate column %q", c.Name))
		}
		seen[c.Name] = struct{}{}
		if c.Width < 0 {
			panic(fmt.Sprintf("table: column %q has negative width %d", c.Name, c.Width))
		}
		l.offsets[i] = acc
		l.widths[i] = c.Width
		acc += c.Width
	}
	l.total = acc
	return l
}

// Fit derives the last column's width from the available width and
// returns it. The result floors at 0.
func (l *Layout) Fit(available int) int {
	last := len(l.widths) - 1
	l.widths[last] = max(0, available-l.pad-l.offsets[last])
	l.total = l.offsets[last] + l.widths[last]
	return l.widths[last]
}

// Len returns the number of columns.
func (l *Layout) Len() int { return len(l.columns) }

// Index returns the position of the named column. It panics for an
// unknown name.
func (l *Layout) Index(name string) int {
	for i, c := range l.columns {
		if c.Name == name {
			return i
		}
	}
	panic(fmt.Sprintf("table: unknown column %q", name))
}

// Offset returns the left edge of column i.
func (l *Layout) Offset(i int) int { return l.offsets[i] }

// Width returns the current width of column i.
func (l *Layout) Width(i int) int { return l.widths[i] }

// Offsets returns a copy of the column offsets.
func (l *Layout) Offsets() []int { return append([]int(nil), l.offsets...) }

// Widths returns a copy of the current column widths.
func (l *Layout) Widths() []int { return append([]int(nil), l.widths...) }

// Total returns the table width, the sum of all widths.
func (l *Layout) Total() int { return l.total }

// Pad returns the space reserved for the scroll bar.
func (l *Layout) Pad() int { return l.pad }
