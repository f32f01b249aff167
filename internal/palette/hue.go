package palette

// HueCycle hands out hues 1..n round robin. It never yields EraseHue.
type HueCycle struct {
	current int
	hues    int
}

func NewHueCycle(hues int) *HueCycle {
	if hues < 1 {
		hues = 1
	}
	return &HueCycle{current: 1, hues: hues}
}

// Next returns the current hue and advances, wrapping from n back to 1.
func (c *HueCycle) Next() int {
	h := c.current
	c.current++
	if c.current > c.hues {
		c.current = 1
	}
	return h
}

// Peek returns the hue the next call to Next will yield.
func (c *HueCycle) Peek() int { return c.current }

func (c *HueCycle) Reset() { c.current = 1 }
