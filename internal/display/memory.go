package display

import (
	"fmt"
	"image"
	"slices"

	"github.com/san-kum/linesaver/internal/palette"
)

// Memory is a headless surface that keeps the last published frame.
type Memory struct {
	supported  []Mode
	mode       Mode
	pal        *palette.Palette
	frame      []byte
	published  int
	configured int
}

// NewMemory accepts any mode unless a list of supported modes is given.
func NewMemory(supported ...Mode) *Memory {
	return &Memory{supported: supported}
}

func (m *Memory) ConfigureDisplay(mode Mode) error {
	if len(m.supported) > 0 && !slices.Contains(m.supported, mode) {
		return fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}
	m.mode = mode
	m.configured++
	if len(m.frame) != mode.Pixels() {
		m.frame = make([]byte, mode.Pixels())
	}
	return nil
}

func (m *Memory) UploadPalette(p *palette.Palette) { m.pal = p }

func (m *Memory) PublishFrame(pix []byte) {
	copy(m.frame, pix)
	m.published++
}

func (m *Memory) Mode() Mode                { return m.mode }
func (m *Memory) Palette() *palette.Palette { return m.pal }
func (m *Memory) Frame() []byte             { return m.frame }
func (m *Memory) Published() int            { return m.published }
func (m *Memory) Configured() int           { return m.configured }

// Image returns the last frame through the uploaded palette, or nil before
// the first upload.
func (m *Memory) Image() *image.Paletted {
	if m.pal == nil {
		return nil
	}
	img := image.NewPaletted(image.Rect(0, 0, m.mode.Width, m.mode.Height), m.pal.Color())
	copy(img.Pix, m.frame)
	return img
}
