package tui

// listCursor is a cursor over a list of n rows that may be taller than the
// screen.
type listCursor struct {
	pos int
	// visible is the number of rows drawn at once; 0 draws them all.
	visible int
}

func (c *listCursor) move(delta, n int) {
	c.pos = min(max(c.pos+delta, 0), max(n-1, 0))
}

func (c *listCursor) clamp(n int) {
	c.move(0, n)
}

// window returns the [start, end) rows to draw so the cursor stays on screen.
func (c listCursor) window(n int) (int, int) {
	if c.visible <= 0 || n <= c.visible {
		return 0, n
	}
	start := max(c.pos-c.visible+1, 0)
	return start, min(start+c.visible, n)
}
