package metrics

import "github.com/san-kum/linesaver/internal/session"

// Coverage is the mean fraction of the frame that is lit.
type Coverage struct {
	name    string
	pixels  int
	sum     float64
	samples int
}

func NewCoverage(pixels int) *Coverage {
	return &Coverage{
		name:   "coverage",
		pixels: pixels,
	}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) Observe(f session.Frame) {
	if c.pixels > 0 {
		c.sum += float64(f.Lit) / float64(c.pixels)
	}
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.sum = 0
	c.samples = 0
}

type PeakLit struct {
	name string
	peak int
}

func NewPeakLit() *PeakLit {
	return &PeakLit{name: "peak_lit"}
}

func (p *PeakLit) Name() string { return p.name }

func (p *PeakLit) Observe(f session.Frame) {
	p.peak = max(p.peak, f.Lit)
}

func (p *PeakLit) Value() float64 { return float64(p.peak) }
func (p *PeakLit) Reset()         { p.peak = 0 }
