package input

import tea "github.com/charmbracelet/bubbletea"

// wheelStep is the delta of one wheel notch on delta-based platforms.
const wheelStep = 120

// X11-style wheel buttons.
const (
	ButtonUp   = 4
	ButtonDown = 5
)

type wheelShape uint8

const (
	shapeDelta wheelShape = iota + 1
	shapeButton
)

// Wheel is a wheel event in either of the two shapes platforms deliver.
type Wheel struct {
	shape  wheelShape
	delta  int
	button int
}

// DeltaWheel returns a delta-shaped event. A positive delta scrolls up.
func DeltaWheel(delta int) Wheel {
	return Wheel{shape: shapeDelta, delta: delta}
}

// ButtonWheel returns a button-shaped event; ButtonUp and ButtonDown scroll
// one unit, other buttons nothing.
func ButtonWheel(button int) Wheel {
	return Wheel{shape: shapeButton, button: button}
}

// FromMouse converts a Bubble Tea wheel press into a button-shaped event.
func FromMouse(msg tea.MouseMsg) (Wheel, bool) {
	if msg.Action != tea.MouseActionPress {
		return Wheel{}, false
	}
	switch msg.Button { //nolint:exhaustive // only vertical wheel buttons scroll
	case tea.MouseButtonWheelUp:
		return ButtonWheel(ButtonUp), true
	case tea.MouseButtonWheelDown:
		return ButtonWheel(ButtonDown), true
	default:
		return Wheel{}, false
	}
}

// Units returns the signed scroll step, negative is up. Unlike floor
// division of the delta by one notch, a non-zero delta smaller than a notch
// still moves one unit in its direction.
func (w Wheel) Units() int {
	switch w.shape {
	case shapeDelta:
		n := -w.delta / wheelStep
		switch {
		case n != 0:
			return n
		case w.delta > 0:
			return -1
		case w.delta < 0:
			return 1
		}
	case shapeButton:
		switch w.button {
		case ButtonUp:
			return -1
		case ButtonDown:
			return 1
		}
	}
	return 0
}

// Scroller is scrolled in whole units.
type Scroller interface {
	ScrollUnits(n int) bool
}

// ScrollController forwards each wheel event as one scroll command.
type ScrollController struct {
	target Scroller
}

// NewScrollController returns a controller scrolling target.
func NewScrollController(target Scroller) *ScrollController {
	return &ScrollController{target: target}
}

// Handle issues exactly one ScrollUnits call for w and reports whether the
// event carried any motion.
func (c *ScrollController) Handle(w Wheel) bool {
	n := w.Units()
	if n == 0 {
		return false
	}
	c.target.ScrollUnits(n)
	return true
}
