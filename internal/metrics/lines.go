package metrics

import (
	"math"

	"github.com/san-kum/linesaver/internal/session"
)

// LineLength averages the Euclidean length of every produced line.
type LineLength struct {
	name    string
	sum     float64
	samples int
}

func NewLineLength() *LineLength {
	return &LineLength{name: "line_length"}
}

func (l *LineLength) Name() string {
	return l.name
}

func (l *LineLength) Observe(f session.Frame) {
	d := f.Line.End.Sub(f.Line.Beginning)
	l.sum += math.Hypot(float64(d.X), float64(d.Y))
	l.samples++
}

func (l *LineLength) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return l.sum / float64(l.samples)
}

func (l *LineLength) Reset() {
	l.sum = 0
	l.samples = 0
}

// Collapsed is the fraction of lines whose endpoints were within threshold
// pixels of each other on both axes.
type Collapsed struct {
	name      string
	threshold int
	collapsed int
	samples   int
}

func NewCollapsed(threshold int) *Collapsed {
	return &Collapsed{
		name:      "collapsed",
		threshold: threshold,
	}
}

func (c *Collapsed) Name() string {
	return c.name
}

func (c *Collapsed) Observe(f session.Frame) {
	c.samples++
	d := f.Line.End.Sub(f.Line.Beginning)
	if abs(d.X) <= c.threshold && abs(d.Y) <= c.threshold {
		c.collapsed++
	}
}

func (c *Collapsed) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.collapsed) / float64(c.samples)
}

func (c *Collapsed) Reset() {
	c.collapsed = 0
	c.samples = 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Default is the set the CLI reports for a frame of the given size.
func Default(pixels int) []session.Metric {
	return []session.Metric{
		NewCoverage(pixels),
		NewPeakLit(),
		NewLineLength(),
		NewCollapsed(1),
	}
}
