package paging

// Cursor is the page counter of one list. The zero value points at page 0.
type Cursor struct {
	page int
}

// Next advances the cursor and returns the page to request
func (c *Cursor) Next() int {
	c.page++
	return c.page
}

// Reset moves the cursor back to page 0. Call it whenever the query changes.
func (c *Cursor) Reset() int {
	c.page = 0
	return c.page
}

// Rollback undoes one Next, never going below 0
func (c *Cursor) Rollback() int {
	if c.page > 0 {
		c.page--
	}
	return c.page
}

// Value returns the current page without moving
func (c *Cursor) Value() int {
	return c.page
}
