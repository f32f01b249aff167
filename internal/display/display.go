package display

import (
	"errors"
	"fmt"

	"github.com/san-kum/linesaver/internal/palette"
)

// ErrUnsupportedMode is returned by ConfigureDisplay when a surface cannot
// show the requested indexed mode.
var ErrUnsupportedMode = errors.New("display: unsupported video mode")

// Mode describes an 8-bit indexed frame of Width x Height pixels.
type Mode struct {
	Width, Height int
}

func (m Mode) String() string {
	return fmt.Sprintf("%dx%dx%d", m.Width, m.Height, palette.MaxEntries)
}

// Pixels is the frame size in bytes.
func (m Mode) Pixels() int { return m.Width * m.Height }

// Surface is where the effect's frames end up. The engine calls
// ConfigureDisplay and UploadPalette once per activation, then
// PublishFrame once per tick. PublishFrame must not retain pix.
type Surface interface {
	ConfigureDisplay(mode Mode) error
	UploadPalette(p *palette.Palette)
	PublishFrame(pix []byte)
}

type multi []Surface

// Multi fans every call out to each surface in order. Configuration stops
// at the first surface that rejects the mode.
func Multi(surfaces ...Surface) Surface {
	return multi(surfaces)
}

func (m multi) ConfigureDisplay(mode Mode) error {
	for _, s := range m {
		if err := s.ConfigureDisplay(mode); err != nil {
			return err
		}
	}
	return nil
}

func (m multi) UploadPalette(p *palette.Palette) {
	for _, s := range m {
		s.UploadPalette(p)
	}
}

func (m multi) PublishFrame(pix []byte) {
	for _, s := range m {
		s.PublishFrame(pix)
	}
}
