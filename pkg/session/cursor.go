package session

// Cursor is the selection state over the ranked view: either empty or
// selecting one index. Every transition takes the current view length so a
// stale index can never escape.
type Cursor struct {
	index    int
	selected bool
}

// Index returns the selected index, if any
func (c Cursor) Index() (int, bool) {
	return c.index, c.selected
}

// Empty reports whether nothing is selected
func (c Cursor) Empty() bool {
	return !c.selected
}

// Sync re-validates the cursor against a view of length n. An empty view
// clears the selection, a fresh non-empty view selects the first row and an
// index past the end is clamped to the last row.
func (c *Cursor) Sync(n int) {
	switch {
	case n <= 0:
		*c = Cursor{}
	case !c.selected:
		*c = Cursor{index: 0, selected: true}
	case c.index >= n:
		c.index = n - 1
	case c.index < 0:
		c.index = 0
	}
}

// Reset selects the first row of a view of length n, or nothing
func (c *Cursor) Reset(n int) {
	*c = Cursor{}
	c.Sync(n)
}

// Down moves to the next row, wrapping to the top
func (c *Cursor) Down(n int) {
	c.Sync(n)
	if c.selected {
		c.index = (c.index + 1) % n
	}
}

// Up moves to the previous row, wrapping to the bottom
func (c *Cursor) Up(n int) {
	c.Sync(n)
	if !c.selected {
		return
	}
	if c.index == 0 {
		c.index = n - 1
	} else {
		c.index--
	}
}
