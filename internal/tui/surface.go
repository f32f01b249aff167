package tui

import (
	"image/color"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/linesaver/internal/display"
	"github.com/san-kum/linesaver/internal/palette"
)

const upperHalf = "▀"

// Surface is a display.Surface that keeps the latest frame for the
// terminal. Each text cell shows two rows of the downsampled frame with an
// upper half block: foreground is the top row, background the bottom.
type Surface struct {
	mu     sync.Mutex
	mode   display.Mode
	colors [palette.MaxEntries]color.RGBA
	weight [palette.MaxEntries]int
	hex    [palette.MaxEntries]string
	frame  []byte
	styles map[[2]uint8]lipgloss.Style
}

func NewSurface() *Surface {
	return &Surface{styles: make(map[[2]uint8]lipgloss.Style)}
}

// ConfigureDisplay accepts any mode; the frame is scaled to the terminal.
func (s *Surface) ConfigureDisplay(mode display.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.frame = make([]byte, mode.Pixels())
	return nil
}

func (s *Surface) UploadPalette(p *palette.Palette) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colors = p.RGBA()
	for i, c := range s.colors {
		s.weight[i] = int(c.R) + int(c.G) + int(c.B)
		s.hex[i] = p.Hex(uint8(i))
	}
	clear(s.styles)
}

func (s *Surface) PublishFrame(pix []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.frame, pix)
}

func (s *Surface) Mode() display.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// sample returns the brightest palette index in the block of source pixels
// that maps to cell (cx, cy) of a cols x rows grid.
func (s *Surface) sample(cx, cy, cols, rows int) uint8 {
	w, h := s.mode.Width, s.mode.Height
	x0, x1 := cx*w/cols, (cx+1)*w/cols
	y0, y1 := cy*h/rows, (cy+1)*h/rows
	if x1 == x0 {
		x1 = x0 + 1
	}
	if y1 == y0 {
		y1 = y0 + 1
	}

	var best uint8
	for y := y0; y < y1 && y < h; y++ {
		row := s.frame[y*w : (y+1)*w]
		for x := x0; x < x1 && x < w; x++ {
			if idx := row[x]; s.weight[idx] > s.weight[best] {
				best = idx
			}
		}
	}
	return best
}

func (s *Surface) style(top, bottom uint8) lipgloss.Style {
	key := [2]uint8{top, bottom}
	if st, ok := s.styles[key]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.hex[top])).
		Background(lipgloss.Color(s.hex[bottom]))
	s.styles[key] = st
	return st
}

// Render draws the frame into cols x rows text cells. The frame is never
// upscaled: the grid shrinks to the frame size when the terminal is larger.
func (s *Surface) Render(cols, rows int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode.Pixels() == 0 || cols <= 0 || rows <= 0 {
		return ""
	}
	cols = min(cols, s.mode.Width)
	rows = min(rows, (s.mode.Height+1)/2)

	var b strings.Builder
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := s.sample(cx, 2*cy, cols, 2*rows)
			bottom := s.sample(cx, 2*cy+1, cols, 2*rows)
			if top == 0 && bottom == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(s.style(top, bottom).Render(upperHalf))
		}
		if cy < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
