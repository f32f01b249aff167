package raster

import (
	"image"

	"github.com/san-kum/linesaver/internal/palette"
)

// accumulatorBits is the width of the fixed-point error register used by
// the anti-aliased case.
const accumulatorBits = 16

// Target receives plotted pixels. *canvas.Canvas satisfies it.
type Target interface {
	Set(x, y int, idx uint8)
}

// Shader turns a hue and brightness level into a canvas byte.
// *palette.Palette satisfies it.
type Shader interface {
	Index(hue, brightness int) uint8
	Shades() int
	Bits() uint
}

type Rasterizer struct {
	dst Target
	sh  Shader
}

func New(dst Target, sh Shader) *Rasterizer {
	return &Rasterizer{dst: dst, sh: sh}
}

// Erase draws the segment with the erase hue, blacking out every pixel a
// draw of the same segment would have touched, complements included.
func (r *Rasterizer) Erase(p0, p1 image.Point) {
	r.DrawSegment(p0, p1, palette.EraseHue)
}

// DrawSegment plots the segment from p0 to p1 in hue. Vertical, horizontal
// and 45-degree segments are filled exactly at full brightness; any other
// slope goes through the anti-aliased path.
func (r *Rasterizer) DrawSegment(p0, p1 image.Point, hue int) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	solid := r.sh.Index(hue, 0)

	switch {
	case dx == 0:
		r.vertical(p0.X, p0.Y, p1.Y, solid)
	case dy == 0:
		r.horizontal(p0.X, p1.X, p0.Y, solid)
	case abs(dx) == abs(dy):
		r.diagonal(p0, p1, solid)
	default:
		r.arbitrary(p0, p1, hue)
	}
}

func (r *Rasterizer) vertical(x, y0, y1 int, idx uint8) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		r.dst.Set(x, y, idx)
	}
}

func (r *Rasterizer) horizontal(x0, x1, y int, idx uint8) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		r.dst.Set(x, y, idx)
	}
}

// diagonal handles both slopes +1 and -1.
func (r *Rasterizer) diagonal(p0, p1 image.Point, idx uint8) {
	if p0.X > p1.X {
		p0, p1 = p1, p0
	}
	ystep := 1
	if p1.Y < p0.Y {
		ystep = -1
	}
	for x, y := p0.X, p0.Y; x <= p1.X; x, y = x+1, y+ystep {
		r.dst.Set(x, y, idx)
	}
}

// arbitrary is Wu's anti-aliased line. The segment is walked top to bottom
// along its major axis while a 16-bit error accumulator tracks the
// fractional position on the minor axis. Its top Bits() bits are the
// brightness of the primary pixel; the neighbour one step further along the
// minor axis gets the complementary level.
func (r *Rasterizer) arbitrary(p0, p1 image.Point, hue int) {
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
	}
	x, y := p0.X, p0.Y
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	xinc := 1
	if dx < 0 {
		xinc = -1
		dx = -dx
	}

	bits := r.sh.Bits()
	shades := r.sh.Shades()

	r.dst.Set(x, y, r.sh.Index(hue, 0))

	var acc uint16
	if dx > dy {
		inc := step(dy, dx)
		for i := dx - 1; i > 0; i-- {
			prev := acc
			acc += inc
			if acc < prev {
				y++
			}
			x += xinc
			b := Brightness(acc, bits)
			r.dst.Set(x, y, r.sh.Index(hue, b))
			r.dst.Set(x, y+1, r.sh.Index(hue, Complement(b, shades)))
		}
	} else {
		inc := step(dx, dy)
		for i := dy - 1; i > 0; i-- {
			prev := acc
			acc += inc
			if acc < prev {
				x += xinc
			}
			y++
			b := Brightness(acc, bits)
			r.dst.Set(x, y, r.sh.Index(hue, b))
			r.dst.Set(x+xinc, y, r.sh.Index(hue, Complement(b, shades)))
		}
	}

	r.dst.Set(p1.X, p1.Y, r.sh.Index(hue, 0))
}

// step is minor/major as a 16-bit fraction. minor < major here, so the
// result always fits.
func step(minor, major int) uint16 {
	return uint16((uint32(minor) << accumulatorBits) / uint32(major))
}

// Brightness extracts the top bits of the accumulator as a level in
// [0, 1<<bits).
func Brightness(acc uint16, bits uint) int {
	return int(acc >> (accumulatorBits - bits))
}

// Complement returns the level of the pixel that shares coverage with b.
func Complement(b, shades int) int {
	return b ^ (shades - 1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
