package canvas

// Canvas is one full frame of palette indices, row-major.
type Canvas struct {
	Width, Height int
	Pix           []byte
}

func New(w, h int) *Canvas {
	return &Canvas{
		Width:  w,
		Height: h,
		Pix:    make([]byte, w*h),
	}
}

// Set writes idx at (x, y). Coordinates outside the frame are ignored.
func (c *Canvas) Set(x, y int, idx uint8) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Pix[y*c.Width+x] = idx
}

// At returns the index at (x, y), or 0 outside the frame.
func (c *Canvas) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0
	}
	return c.Pix[y*c.Width+x]
}

// Clear resets every pixel to index 0.
func (c *Canvas) Clear() {
	clear(c.Pix)
}

// Bytes exposes the backing buffer. Callers must not retain it across
// frames; use Snapshot for that.
func (c *Canvas) Bytes() []byte { return c.Pix }

// Snapshot returns a copy of the current frame.
func (c *Canvas) Snapshot() []byte {
	out := make([]byte, len(c.Pix))
	copy(out, c.Pix)
	return out
}

// Lit counts pixels that are not index 0.
func (c *Canvas) Lit() int {
	n := 0
	for _, p := range c.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}
