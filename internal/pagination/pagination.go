// Package pagination derives page navigation from the metadata of the last
// loaded page.
package pagination

import "github.com/mmcdole/vitrine/internal/domain"

// DefaultWindowSize is the number of numbered page buttons shown at once.
const DefaultWindowSize = 5

// VisibleWindow returns up to size page numbers around the current page,
// starting two before it and re-anchored at the last page so the window stays
// full whenever there are enough pages.
func VisibleWindow(meta domain.PageMeta, size int) []int {
	if meta.TotalPages <= 0 || size <= 0 {
		return nil
	}

	// Two buttons before the current page; fewer when the window
	// is too narrow to show them and the current page.
	lead := min(2, size-1)
	start := max(meta.CurrentPage-lead, 1)
	end := start + size - 1
	if end > meta.TotalPages {
		end = meta.TotalPages
		start = max(end-size+1, 1)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Range returns the 1-based positions of the first and last rows on the page
// and the dataset total, for "Showing X to Y of Z entries".
func Range(meta domain.PageMeta) (start, end, total int) {
	if meta.Total <= 0 || meta.Limit <= 0 {
		return 0, 0, max(meta.Total, 0)
	}
	cur := max(meta.CurrentPage, 1)
	start = (cur-1)*meta.Limit + 1
	end = min(cur*meta.Limit, meta.Total)
	if start > end {
		start = end
	}
	return start, end, meta.Total
}

// Controller decides which page to request next. It only trusts metadata from
// a successful load, so a failed request leaves navigation where it was.
type Controller struct {
	meta       domain.PageMeta
	loaded     bool
	windowSize int
}

// NewController creates a controller with the given window size
func NewController(windowSize int) *Controller {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Controller{windowSize: windowSize}
}

// Commit records the metadata of a page that loaded successfully.
func (c *Controller) Commit(meta domain.PageMeta) {
	c.meta = meta
	c.loaded = true
}

// Meta returns the committed metadata and whether any page has loaded.
func (c *Controller) Meta() (domain.PageMeta, bool) {
	return c.meta, c.loaded
}

// Current returns the committed page number, 0 before the first load.
func (c *Controller) Current() int {
	if !c.loaded {
		return 0
	}
	return c.meta.CurrentPage
}

// TotalPages returns the committed page count.
func (c *Controller) TotalPages() int {
	return c.meta.TotalPages
}

// Window returns the numbered buttons to show.
func (c *Controller) Window() []int {
	if !c.loaded {
		return nil
	}
	return VisibleWindow(c.meta, c.windowSize)
}

// HasPrevious reports whether Previous would request a page.
func (c *Controller) HasPrevious() bool {
	return c.loaded && c.meta.CurrentPage > 1
}

// HasNext reports whether Next would request a page.
func (c *Controller) HasNext() bool {
	return c.loaded && c.meta.CurrentPage < c.meta.TotalPages
}

// GoTo returns the page to request and whether a request is needed.
// Before the first load only page 1 can be requested.
func (c *Controller) GoTo(page int) (int, bool) {
	if !c.loaded {
		return 1, page == 1
	}
	if page < 1 || page > c.meta.TotalPages || page == c.meta.CurrentPage {
		return c.meta.CurrentPage, false
	}
	return page, true
}

// Next requests the following page; a no-op on the last page.
func (c *Controller) Next() (int, bool) {
	if !c.HasNext() {
		return c.Current(), false
	}
	return c.GoTo(c.meta.CurrentPage + 1)
}

// Previous requests the preceding page; a no-op on page 1.
func (c *Controller) Previous() (int, bool) {
	if !c.HasPrevious() {
		return c.Current(), false
	}
	return c.GoTo(c.meta.CurrentPage - 1)
}

// First requests page 1.
func (c *Controller) First() (int, bool) {
	return c.GoTo(1)
}

// Last requests the final page.
func (c *Controller) Last() (int, bool) {
	return c.GoTo(c.meta.TotalPages)
}

// Slot requests the i-th (0-based) page of the current window.
func (c *Controller) Slot(i int) (int, bool) {
	window := c.Window()
	if i < 0 || i >= len(window) {
		return c.Current(), false
	}
	return c.GoTo(window[i])
}
