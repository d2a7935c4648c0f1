package adn

// cursor walks a read-only slice and can never be advanced past its end.
type cursor[T any] struct {
	buf []T
	pos int
}

func (c *cursor[T]) done() bool {
	return c.pos >= len(c.buf)
}

// peek returns the item under the cursor without consuming it.
func (c *cursor[T]) peek() (v T, ok bool) {
	if c.done() {
		return
	}
	return c.buf[c.pos], true
}

// next consumes one item.
func (c *cursor[T]) next() (v T, ok bool) {
	v, ok = c.peek()
	if ok {
		c.pos++
	}
	return
}
