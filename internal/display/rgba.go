package display

import (
	"fmt"
	"image/color"

	"github.com/san-kum/linesaver/internal/palette"
)

// RGBA expands each published frame into true color through the uploaded
// palette, for hosts that draw into an RGBA texture. It accepts only the
// one mode it was sized for.
type RGBA struct {
	mode   Mode
	colors [palette.MaxEntries]color.RGBA
	pixels []color.RGBA
	dirty  bool
}

func NewRGBA(mode Mode) *RGBA {
	return &RGBA{mode: mode, pixels: make([]color.RGBA, mode.Pixels())}
}

func (r *RGBA) ConfigureDisplay(mode Mode) error {
	if mode != r.mode {
		return fmt.Errorf("%w: %s, surface is %s", ErrUnsupportedMode, mode, r.mode)
	}
	return nil
}

func (r *RGBA) UploadPalette(p *palette.Palette) {
	r.colors = p.RGBA()
}

func (r *RGBA) PublishFrame(pix []byte) {
	for i, idx := range pix[:min(len(pix), len(r.pixels))] {
		r.pixels[i] = r.colors[idx]
	}
	r.dirty = true
}

func (r *RGBA) Mode() Mode { return r.mode }

// Pixels returns the converted frame and whether it changed since the last
// call. The slice is reused by the next publish.
func (r *RGBA) Pixels() ([]color.RGBA, bool) {
	dirty := r.dirty
	r.dirty = false
	return r.pixels, dirty
}
