package canvas

import "testing"

func TestSetAndAt(t *testing.T) {
	c := New(320, 200)

	c.Set(5, 10, 42)
	if got := c.At(5, 10); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := c.Pix[10*320+5]; got != 42 {
		t.Errorf("expected row-major layout, got %d at offset", got)
	}
}

func TestSetOutOfBounds(t *testing.T) {
	c := New(4, 3)

	points := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}}
	for _, p := range points {
		c.Set(p[0], p[1], 9)
		if c.At(p[0], p[1]) != 0 {
			t.Errorf("At(%d, %d) outside frame should be 0", p[0], p[1])
		}
	}
	if c.Lit() != 0 {
		t.Errorf("out-of-bounds writes should not touch the frame, lit=%d", c.Lit())
	}
}

func TestClearAndLit(t *testing.T) {
	c := New(10, 10)
	c.Set(1, 1, 8)
	c.Set(2, 2, 9)
	c.Set(3, 3, 0)

	if c.Lit() != 2 {
		t.Errorf("expected 2 lit pixels, got %d", c.Lit())
	}
	c.Clear()
	if c.Lit() != 0 {
		t.Errorf("expected empty canvas after clear, got %d", c.Lit())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	c := New(2, 2)
	c.Set(0, 0, 7)
	snap := c.Snapshot()
	c.Set(0, 0, 1)
	if snap[0] != 7 {
		t.Errorf("snapshot should not alias the canvas")
	}
}
