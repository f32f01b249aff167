package motion

import (
	"image"
	"math"
	"math/rand"
	"testing"
)

// fixedRand replays values in order, wrapping around.
type fixedRand struct {
	values []int
	i      int
}

func (f *fixedRand) Intn(n int) int {
	v := f.values[f.i%len(f.values)] % n
	f.i++
	return v
}

func TestReflectFormula(t *testing.T) {
	tests := []struct {
		name string
		p    int
		size int
		want int
		wall Wall
	}{
		{"inside", 10, 320, 10, WallNone},
		{"zero", 0, 320, 0, WallNone},
		{"last", 319, 320, 319, WallNone},
		{"just below", -1, 320, 1, WallLow},
		{"below", -5, 320, 5, WallLow},
		{"at size", 320, 320, 319, WallHigh},
		{"overshoot", 324, 320, 315, WallHigh},
		{"height overshoot", 203, 200, 196, WallHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, wall := Reflect(tt.p, tt.size)
			if got != tt.want {
				t.Errorf("Reflect(%d, %d) = %d, want %d", tt.p, tt.size, got, tt.want)
			}
			if wall != tt.wall {
				t.Errorf("Reflect(%d, %d) wall = %v, want %v", tt.p, tt.size, wall, tt.wall)
			}
		})
	}
}

// foldSteps mirrors one wall at a time until p is inside the axis.
func foldSteps(p, size int) (int, Wall) {
	wall := WallNone
	for p < 0 || p >= size {
		if p < 0 {
			p, wall = -p, WallLow
			continue
		}
		p, wall = size-1-(p-size), WallHigh
	}
	return p, wall
}

func TestReflectMatchesStepwiseFold(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 200, 320} {
		for p := -5 * size; p <= 6*size; p++ {
			got, wall := Reflect(p, size)
			want, wantWall := foldSteps(p, size)
			if got != want || wall != wantWall {
				t.Fatalf("Reflect(%d, %d) = %d/%v, want %d/%v", p, size, got, wall, want, wantWall)
			}
		}
	}
}

func TestReflectAlwaysInRange(t *testing.T) {
	for _, size := range []int{1, 2, 7, 200, 320} {
		for p := -3 * size; p <= 4*size; p++ {
			got, _ := Reflect(p, size)
			if got < 0 || got >= size {
				t.Fatalf("Reflect(%d, %d) = %d out of range", p, size, got)
			}
		}
	}
	extremes := []int{-1 << 20, 1 << 20, -999999, 999999, 1 << 36, math.MaxInt, math.MinInt, math.MinInt + 1}
	for _, size := range []int{1, 200, 4096} {
		for _, p := range extremes {
			got, wall := Reflect(p, size)
			if got < 0 || got >= size {
				t.Fatalf("Reflect(%d, %d) = %d out of range", p, size, got)
			}
			if wall == WallNone {
				t.Errorf("Reflect(%d, %d) should report a wall", p, size)
			}
		}
	}
}

func TestRandomSpeedRange(t *testing.T) {
	m := New(rand.New(rand.NewSource(1)), 6, 320, 200)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		s := m.RandomSpeed()
		if s < 3 || s > 6 {
			t.Fatalf("speed %d outside [3, 6]", s)
		}
		seen[s] = true
	}
	for s := 3; s <= 6; s++ {
		if !seen[s] {
			t.Errorf("speed %d never drawn", s)
		}
	}
}

func TestRandomComponentSign(t *testing.T) {
	m := New(rand.New(rand.NewSource(7)), 6, 320, 200)
	neg, pos := 0, 0
	for i := 0; i < 2000; i++ {
		if m.RandomComponent() < 0 {
			neg++
		} else {
			pos++
		}
	}
	if neg < 800 || pos < 800 {
		t.Errorf("sign flip looks biased: %d negative, %d positive", neg, pos)
	}
}

func TestAdvanceEndpointWalls(t *testing.T) {
	m := New(&fixedRand{values: []int{1}}, 6, 320, 200)

	pos, vel := m.AdvanceEndpoint(2, -5, 320)
	if pos != 3 {
		t.Errorf("expected reflection to 3, got %d", pos)
	}
	if vel != 4 {
		t.Errorf("expected positive redrawn speed 4, got %d", vel)
	}

	pos, vel = m.AdvanceEndpoint(317, 5, 320)
	if pos != 317 {
		t.Errorf("expected 320-1-2=317, got %d", pos)
	}
	if vel != -4 {
		t.Errorf("expected negative redrawn speed -4, got %d", vel)
	}

	pos, vel = m.AdvanceEndpoint(100, 5, 320)
	if pos != 105 || vel != 5 {
		t.Errorf("free motion should keep velocity: pos=%d vel=%d", pos, vel)
	}
}

func TestAdvanceIndependentEndpoints(t *testing.T) {
	m := New(&fixedRand{values: []int{0}}, 6, 320, 200)
	v := Velocities{
		Beginning: Velocity{DX: -5, DY: 3},
		End:       Velocity{DX: 4, DY: 4},
	}
	prev := Line{Beginning: image.Pt(1, 50), End: image.Pt(100, 100), Hue: 3}

	next := m.Advance(prev, &v)

	if next.Beginning != image.Pt(4, 53) {
		t.Errorf("unexpected beginning %v", next.Beginning)
	}
	if next.End != image.Pt(104, 104) {
		t.Errorf("unexpected end %v", next.End)
	}
	if v.Beginning.DX != 3 {
		t.Errorf("beginning x velocity should be redrawn positive, got %d", v.Beginning.DX)
	}
	if v.End != (Velocity{4, 4}) {
		t.Errorf("end velocity should be untouched, got %+v", v.End)
	}
	if next.Hue != 0 {
		t.Errorf("advance should not assign a hue, got %d", next.Hue)
	}
}

func inFrame(l Line, w, h int) bool {
	r := image.Rect(0, 0, w, h)
	return l.Beginning.In(r) && l.End.In(r)
}

func TestAdvanceStaysInBounds(t *testing.T) {
	m := New(rand.New(rand.NewSource(42)), 6, 320, 200)
	l, v := m.Seed()
	if !inFrame(l, 320, 200) {
		t.Fatalf("seeded line out of bounds: %+v", l)
	}
	for i := 0; i < 10000; i++ {
		l = m.Advance(l, &v)
		if !inFrame(l, 320, 200) {
			t.Fatalf("tick %d: line out of bounds: %+v", i, l)
		}
	}
}

func TestSeedVelocitiesNonZero(t *testing.T) {
	m := New(rand.New(rand.NewSource(3)), 6, 320, 200)
	_, v := m.Seed()
	for _, c := range []int{v.Beginning.DX, v.Beginning.DY, v.End.DX, v.End.DY} {
		if c == 0 || c < -6 || c > 6 {
			t.Errorf("seeded velocity component %d outside 3..6 magnitude", c)
		}
	}
}
