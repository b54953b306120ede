package grid

// Layout exposes the measured geometry of a rendered table.
type Layout interface {
	// HeaderCells returns the widths of the header cells.
	HeaderCells() []int
	// FirstRowCells returns the widths of the cells of the first rendered
	// body row, or false when there is no data row.
	FirstRowCells() ([]int, bool)
}

// NeedsSync reports whether columns, rows or the viewport changed since the
// last width sync.
func (c *Controller[T]) NeedsSync() bool {
	return c.syncNeeded
}

// SyncWidths copies the widths of the first body row onto the header. When
// the cell counts differ, or the first row is the sentinel, the header widths
// stay as they are. Returns true when widths were applied.
func (c *Controller[T]) SyncWidths(l Layout) bool {
	c.syncNeeded = false
	if len(c.rows) == 0 {
		return false
	}
	body, ok := l.FirstRowCells()
	if !ok {
		return false
	}
	if len(body) != len(l.HeaderCells()) {
		return false
	}
	c.widths = append(c.widths[:0], body...)
	return true
}

// HeaderWidths returns the synced header cell widths, or nil before the
// first successful sync.
func (c *Controller[T]) HeaderWidths() []int {
	if len(c.widths) == 0 {
		return nil
	}
	out := make([]int, len(c.widths))
	copy(out, c.widths)
	return out
}

// Resize records a new viewport width and schedules a width sync.
func (c *Controller[T]) Resize(width int) {
	if width == c.width {
		return
	}
	c.width = width
	c.syncNeeded = true
}

// Width returns the last viewport width.
func (c *Controller[T]) Width() int {
	return c.width
}

// ScrollBody scrolls the body horizontally and mirrors the offset onto the header.
func (c *Controller[T]) ScrollBody(x int) {
	if x < 0 {
		x = 0
	}
	c.bodyX = x
	c.headerX = x
}

// ScrollBy scrolls the body horizontally by dx.
func (c *Controller[T]) ScrollBy(dx int) {
	c.ScrollBody(c.bodyX + dx)
}

// BodyOffset returns the horizontal scroll of the body.
func (c *Controller[T]) BodyOffset() int { return c.bodyX }

// HeaderOffset returns the horizontal scroll of the header.
func (c *Controller[T]) HeaderOffset() int { return c.headerX }
