package grid

import (
	"fmt"
	"slices"

	"github.com/yarlson/taskdesk/internal/query"
)

// PageCount returns ceil(TotalRows / PageSize).
func (c *Controller[T]) PageCount() int {
	if c.opts.PageSize <= 0 || c.opts.TotalRows <= 0 {
		return 0
	}
	return (c.opts.TotalRows + c.opts.PageSize - 1) / c.opts.PageSize
}

// Page returns the current 1-based page window.
func (c *Controller[T]) Page() query.Page {
	return query.Page{Number: c.opts.Page, Size: c.opts.PageSize}
}

// CanPrev reports whether a previous page exists.
func (c *Controller[T]) CanPrev() bool {
	return c.opts.Page > 1
}

// CanNext reports whether a next page exists.
func (c *Controller[T]) CanNext() bool {
	return c.opts.Page < c.PageCount()
}

// NextPage advances one page. Returns false on the last page.
func (c *Controller[T]) NextPage() bool {
	if !c.CanNext() {
		return false
	}
	c.setPage(c.opts.Page+1, c.opts.PageSize)
	return true
}

// PrevPage goes back one page. Returns false on the first page.
func (c *Controller[T]) PrevPage() bool {
	if !c.CanPrev() {
		return false
	}
	c.setPage(c.opts.Page-1, c.opts.PageSize)
	return true
}

// SetPageSize switches to one of query.PageSizes and returns to page 1.
func (c *Controller[T]) SetPageSize(n int) error {
	if !slices.Contains(query.PageSizes, n) {
		return fmt.Errorf("page size %d not in %v", n, query.PageSizes)
	}
	c.setPage(1, n)
	return nil
}

// StepPageSize moves to the next larger (delta > 0) or smaller page size.
// Returns false at either end of the menu.
func (c *Controller[T]) StepPageSize(delta int) bool {
	i := slices.Index(query.PageSizes, c.opts.PageSize)
	switch {
	case i < 0:
		i = 0
	case delta > 0 && i < len(query.PageSizes)-1:
		i++
	case delta < 0 && i > 0:
		i--
	default:
		return false
	}
	return c.SetPageSize(query.PageSizes[i]) == nil
}

func (c *Controller[T]) setPage(page, size int) {
	c.opts.Page, c.opts.PageSize = page, size
	if c.onPage != nil {
		c.onPage(query.Page{Number: page, Size: size})
	}
}

// PageLabel renders "Page n of m".
func (c *Controller[T]) PageLabel() string {
	return fmt.Sprintf("Page %d of %d", c.opts.Page, c.PageCount())
}
