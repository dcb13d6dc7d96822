package highlight

import "github.com/rs/zerolog"

// Button labels of the freeze action.
const (
	LabelFreeze       = "Highlight for Current Station"
	LabelWrongStation = "Wrong Station"
	LabelFollow       = "Highlight on Dock"
)

// CanFreeze reports whether highlighting can be frozen on station: the
// player must be docked, and not at their own carrier.
func CanFreeze(station, carrier string) bool {
	return station != "" && station != carrier
}

// FreezeLabel returns the freeze action label for station.
func FreezeLabel(station, carrier string) string {
	if CanFreeze(station, carrier) {
		return LabelFreeze
	}
	return LabelWrongStation
}

// Controller decides which filter is active. Docking produces a current
// filter; in follow mode it becomes active on every dock. Freezing pins a
// filter until follow mode is turned back on or another target is chosen.
// It is confined to the UI goroutine.
type Controller struct {
	follow  bool
	frozen  bool
	station string
	current Filter
	active  Filter

	onChange func(Filter)
	logger   zerolog.Logger
}

// NewController returns a controller with no active filter. onChange is
// called with the new active filter, possibly nil, whenever it is replaced.
func NewController(onChange func(Filter), logger zerolog.Logger) *Controller {
	if onChange == nil {
		onChange = func(Filter) {}
	}
	return &Controller{
		onChange: onChange,
		logger:   logger.With().Str("component", "highlight").Logger(),
	}
}

func (c *Controller) activate(f Filter) {
	c.active = f
	c.onChange(f)
}

// Active returns the active filter, or nil.
func (c *Controller) Active() Filter { return c.active }

// Current returns the filter of the station docked at, or nil.
func (c *Controller) Current() Filter { return c.current }

// Station returns the station docked at, or "".
func (c *Controller) Station() string { return c.station }

// Follow reports whether follow-dock mode is on.
func (c *Controller) Follow() bool { return c.follow }

// Frozen reports whether a filter is pinned.
func (c *Controller) Frozen() bool { return c.frozen }

// SetFollow turns follow-dock mode on or off. Turning it on while docked
// activates the current filter.
func (c *Controller) SetFollow(on bool) {
	c.follow = on
	if on {
		c.frozen = false
		if c.current != nil {
			c.activate(c.current)
		}
	}
}

// Docked records docking at station with its filter f. An empty station
// is ignored.
func (c *Controller) Docked(station string, f Filter) {
	if station == "" {
		c.logger.Debug().Msg("docked without station name")
		return
	}
	c.station = station
	c.current = f
	if c.follow {
		c.frozen = false
		c.activate(f)
	}
}

// Undocked forgets the current station. The active filter is cleared
// unless it is frozen outside follow mode.
func (c *Controller) Undocked() {
	c.station = ""
	c.current = nil
	if c.follow || !c.frozen {
		c.activate(nil)
	}
}

// Freeze pins the current filter and leaves follow mode. It reports false
// when not docked.
func (c *Controller) Freeze() bool {
	c.follow = false
	if c.current == nil {
		c.logger.Warn().Msg("freeze requested without a current station")
		return false
	}
	c.frozen = true
	c.activate(c.current)
	return true
}

// Target pins f, chosen by the user outside of docking, as a new freeze
// target.
func (c *Controller) Target(f Filter) {
	c.follow = false
	c.frozen = f != nil
	c.activate(f)
}
