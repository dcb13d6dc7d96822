package table

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// numberWidth is the cell width numbers are right-aligned to.
const numberWidth = 8

//nolint:gochecknoglobals // printer is immutable after construction
var numbers = message.NewPrinter(language.English)

// Kind tags a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

// Value is one cell's content, tagged at the data boundary.
type Value struct {
	kind Kind
	text string
	num  int
}

// Text returns a text value. The empty string is an empty value.
func Text(s string) Value {
	if s == "" {
		return Empty()
	}
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(n int) Value { return Value{kind: KindNumber, num: n} }

// Empty returns a value that draws nothing.
func Empty() Value { return Value{} }

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether drawing v is a no-op.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// String formats the value for display. Numbers get thousands separators
// and are right-aligned.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return FormatNumber(v.num)
	default:
		return ""
	}
}

// FormatNumber renders n with English thousands separators, right-aligned
// to eight cells.
func FormatNumber(n int) string {
	return fmt.Sprintf("%*s", numberWidth, numbers.Sprintf("%d", n))
}
