package export

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/linesaver/internal/canvas"
	"github.com/san-kum/linesaver/internal/motion"
	"github.com/san-kum/linesaver/internal/palette"
)

func TestLinesToSVG(t *testing.T) {
	pal := palette.Classic()
	lines := []motion.Line{
		{},
		{Beginning: image.Pt(0, 0), End: image.Pt(10, 5), Hue: 1},
		{Beginning: image.Pt(3, 3), End: image.Pt(3, 9), Hue: 2},
	}

	svg := LinesToSVG(lines, pal, 320, 200, 2)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("svg is not a complete document")
	}
	if n := strings.Count(svg, "<line "); n != 2 {
		t.Errorf("expected one line per written slot (2), got %d", n)
	}
	if !strings.Contains(svg, `width="640" height="400"`) {
		t.Errorf("scale not applied")
	}
	if !strings.Contains(svg, pal.Hex(pal.Index(1, 0))) {
		t.Errorf("missing family color %s", pal.Hex(pal.Index(1, 0)))
	}
	first := strings.Index(svg, pal.Hex(pal.Index(1, 0)))
	second := strings.Index(svg, pal.Hex(pal.Index(2, 0)))
	if first > second {
		t.Errorf("lines should be emitted oldest first")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, palette.Classic(), 1) != "" {
		t.Error("nil canvas should render nothing")
	}

	c := canvas.New(4, 4)
	c.Set(1, 1, 8)
	c.Set(2, 3, 9)

	svg := CanvasToSVG(c, palette.Classic(), 0)
	if n := strings.Count(svg, "<rect x="); n != 2 {
		t.Errorf("expected 2 pixel rects, got %d", n)
	}

	path := filepath.Join(t.TempDir(), "frame.svg")
	if err := WriteFile(path, svg); err != nil {
		t.Fatal(err)
	}
	if data, err := os.ReadFile(path); err != nil || string(data) != svg {
		t.Errorf("file contents differ: %v", err)
	}
}
