package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/bits"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultHues   = 24
	DefaultShades = 8

	// EraseHue is reserved: every brightness of family 0 is black.
	EraseHue = 0

	// MaxEntries is the size of an 8-bit indexed palette.
	MaxEntries = 256

	gamma = 2.5
)

var (
	ErrShades   = errors.New("palette: shades must be a power of two >= 2")
	ErrHues     = errors.New("palette: at least one hue family is required")
	ErrTooLarge = errors.New("palette: (hues+1)*shades exceeds 256 entries")
)

// RGB is one 8-bit-per-channel palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette maps (hue, brightness) pairs to canvas byte values. It is
// immutable once built.
type Palette struct {
	hues    int
	shades  int
	bits    uint
	entries []RGB
}

// Classic returns the compiled-in 24-hue, 8-shade palette.
func Classic() *Palette {
	entries := make([]RGB, len(classic))
	copy(entries, classic[:])
	return &Palette{
		hues:    DefaultHues,
		shades:  DefaultShades,
		bits:    3,
		entries: entries,
	}
}

// New returns the classic table for the default tunables and a generated
// table otherwise.
func New(hues, shades int) (*Palette, error) {
	if err := Validate(hues, shades); err != nil {
		return nil, err
	}
	if hues == DefaultHues && shades == DefaultShades {
		return Classic(), nil
	}
	return generate(hues, shades), nil
}

// Validate checks that hues and shades fit an 8-bit indexed palette and
// that shades can be carried by the anti-aliasing accumulator.
func Validate(hues, shades int) error {
	if hues < 1 {
		return ErrHues
	}
	if shades < 2 || shades&(shades-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrShades, shades)
	}
	if (hues+1)*shades > MaxEntries {
		return fmt.Errorf("%w: %d hues x %d shades", ErrTooLarge, hues, shades)
	}
	return nil
}

// generate builds hue families evenly spaced around the HSV wheel, with the
// same gamma-corrected ramp as the classic table: level 0 is full
// brightness and the last level is black.
func generate(hues, shades int) *Palette {
	entries := make([]RGB, (hues+1)*shades)
	for h := 1; h <= hues; h++ {
		base := colorful.Hsv(float64(h-1)*360/float64(hues), 1, 1)
		r, g, b := corrected(base.R), corrected(base.G), corrected(base.B)
		for level := 0; level < shades; level++ {
			k := ramp(level, shades)
			entries[h*shades+level] = RGB{
				R: channel(r * k),
				G: channel(g * k),
				B: channel(b * k),
			}
		}
	}
	return &Palette{
		hues:    hues,
		shades:  shades,
		bits:    uint(bits.TrailingZeros(uint(shades))),
		entries: entries,
	}
}

func ramp(level, shades int) float64 {
	return corrected(float64(shades-1-level) / float64(shades-1))
}

func corrected(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Pow(v, 1/gamma)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func (p *Palette) Hues() int   { return p.hues }
func (p *Palette) Shades() int { return p.shades }

// Bits is log2(Shades): how many high accumulator bits become brightness.
func (p *Palette) Bits() uint { return p.bits }

// Len is the number of meaningful entries, (hues+1)*shades.
func (p *Palette) Len() int { return len(p.entries) }

// Base returns the index of full brightness for hue; erase maps to 0.
func (p *Palette) Base(hue int) int {
	return p.clampHue(hue) * p.shades
}

// Index returns the byte written to the canvas for hue at brightness, where
// brightness 0 is the brightest. Out-of-range arguments are clamped.
func (p *Palette) Index(hue, brightness int) uint8 {
	hue = p.clampHue(hue)
	if hue == EraseHue {
		return 0
	}
	if brightness < 0 {
		brightness = 0
	} else if brightness >= p.shades {
		brightness = p.shades - 1
	}
	return uint8(p.Base(hue) + brightness)
}

func (p *Palette) clampHue(hue int) int {
	if hue < 0 {
		return 0
	}
	if hue > p.hues {
		return p.hues
	}
	return hue
}

// At returns the RGB for a canvas byte. Bytes past the table are black.
func (p *Palette) At(idx uint8) RGB {
	if int(idx) >= len(p.entries) {
		return RGB{}
	}
	return p.entries[idx]
}

// Color returns a full 256-entry color.Palette, padded with opaque black,
// suitable for image.Paletted and GIF encoding.
func (p *Palette) Color() color.Palette {
	out := make(color.Palette, MaxEntries)
	for i := range out {
		c := p.At(uint8(i))
		out[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return out
}

// RGBA is like Color but returns concrete values for pixel conversion loops.
func (p *Palette) RGBA() [MaxEntries]color.RGBA {
	var out [MaxEntries]color.RGBA
	for i := range out {
		c := p.At(uint8(i))
		out[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return out
}

// Hex returns the "#rrggbb" form of a canvas byte.
func (p *Palette) Hex(idx uint8) string {
	return p.At(idx).Hex()
}

func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
