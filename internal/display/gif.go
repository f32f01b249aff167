package display

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/linesaver/internal/palette"
)

var ErrNoFrames = errors.New("display: no frames recorded")

// GIFRecorder collects published frames as an animated GIF. The canvas is
// already palette-indexed, so frames are stored without quantization.
type GIFRecorder struct {
	mode      Mode
	pal       color.Palette
	frames    []*image.Paletted
	delay     int
	every     int
	maxFrames int
	seen      int
}

// NewGIFRecorder records every n-th frame (n >= 1) shown for delay
// hundredths of a second each, keeping at most maxFrames (0 = unlimited).
func NewGIFRecorder(every, delay, maxFrames int) *GIFRecorder {
	if every < 1 {
		every = 1
	}
	if delay < 1 {
		delay = 1
	}
	return &GIFRecorder{every: every, delay: delay, maxFrames: maxFrames}
}

// DelayForFPS converts a frame rate into GIF delay units.
func DelayForFPS(fps int) int {
	if fps <= 0 {
		return 2
	}
	d := 100 / fps
	if d < 1 {
		d = 1
	}
	return d
}

func (g *GIFRecorder) ConfigureDisplay(mode Mode) error {
	g.mode = mode
	return nil
}

func (g *GIFRecorder) UploadPalette(p *palette.Palette) {
	g.pal = p.Color()
}

func (g *GIFRecorder) PublishFrame(pix []byte) {
	g.seen++
	if (g.seen-1)%g.every != 0 || g.pal == nil {
		return
	}
	if g.maxFrames > 0 && len(g.frames) >= g.maxFrames {
		return
	}
	img := image.NewPaletted(image.Rect(0, 0, g.mode.Width, g.mode.Height), g.pal)
	copy(img.Pix, pix)
	g.frames = append(g.frames, img)
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

// Reset drops recorded frames but keeps mode and palette.
func (g *GIFRecorder) Reset() {
	g.frames = nil
	g.seen = 0
}

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (g *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
