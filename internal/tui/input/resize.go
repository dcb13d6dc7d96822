package input

// Sizer is something whose height can be read and set.
type Sizer interface {
	Height() int
	SetHeight(h int) int
}

// ResizeController implements drag-to-resize on a grip. It is Idle until
// Press, Dragging until Release; motion while dragging resizes the target
// immediately.
type ResizeController struct {
	target    Sizer
	minSize   int
	maxSize   int
	dragging  bool
	startY    int
	startSize int
}

// NewResizeController returns a controller resizing target within
// [minSize, maxSize].
func NewResizeController(target Sizer, minSize, maxSize int) *ResizeController {
	return &ResizeController{target: target, minSize: minSize, maxSize: max(minSize, maxSize)}
}

// Bounds returns the size limits.
func (c *ResizeController) Bounds() (int, int) { return c.minSize, c.maxSize }

// Dragging reports whether a drag is in progress.
func (c *ResizeController) Dragging() bool { return c.dragging }

// Press starts a drag at pointer y.
func (c *ResizeController) Press(y int) {
	c.dragging = true
	c.startY = y
	c.startSize = c.target.Height()
}

// Motion resizes the target for pointer y and returns the applied size.
// It does nothing unless dragging.
func (c *ResizeController) Motion(y int) (int, bool) {
	if !c.dragging {
		return 0, false
	}
	size := c.startSize - (c.startY - y)
	size = min(max(size, c.minSize), c.maxSize)
	return c.target.SetHeight(size), true
}

// Release ends the drag and forgets the captured state.
func (c *ResizeController) Release() {
	c.dragging = false
	c.startY = 0
	c.startSize = 0
}
