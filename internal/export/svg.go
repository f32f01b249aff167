package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/linesaver/internal/canvas"
	"github.com/san-kum/linesaver/internal/motion"
	"github.com/san-kum/linesaver/internal/palette"
)

const background = "#000000"

func header(sb *strings.Builder, width, height int, scale float64) {
	w := float64(width) * scale
	h := float64(height) * scale
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, width, height, background))
}

// LinesToSVG draws every written ring slot as a vector line, oldest first,
// in its family's brightest color. Empty slots (hue 0) are skipped.
func LinesToSVG(lines []motion.Line, pal *palette.Palette, width, height int, scale float64) string {
	if scale <= 0 {
		scale = 1
	}

	var sb strings.Builder
	header(&sb, width, height, scale)

	sb.WriteString(`<g stroke-width="1" stroke-linecap="square">
`)
	for _, l := range lines {
		if l.Hue == palette.EraseHue {
			continue
		}
		color := pal.Hex(pal.Index(l.Hue, 0))
		// pixel centers
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, float64(l.Beginning.X)+0.5, float64(l.Beginning.Y)+0.5,
			float64(l.End.X)+0.5, float64(l.End.Y)+0.5, color))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CanvasToSVG renders the frame itself, one square per lit pixel.
func CanvasToSVG(c *canvas.Canvas, pal *palette.Palette, scale float64) string {
	if c == nil {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	var sb strings.Builder
	header(&sb, c.Width, c.Height, scale)

	sb.WriteString("<g shape-rendering=\"crispEdges\">\n")
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			idx := c.At(x, y)
			if idx == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="1" height="1" fill="%s"/>
`, x, y, pal.Hex(idx)))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
