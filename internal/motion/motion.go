package motion

import "image"

// Rand is the subset of *rand.Rand the model draws from.
type Rand interface {
	Intn(n int) int
}

// Velocity is the per-tick displacement of one endpoint.
type Velocity struct {
	DX, DY int
}

// Line is one frame of the moving segment.
type Line struct {
	Beginning image.Point
	End       image.Point
	Hue       int
}

// Velocities is the motion state shared by every line the model produces:
// a new line inherits whatever the previous collision left behind.
type Velocities struct {
	Beginning Velocity
	End       Velocity
}

// Wall reports which boundary a coordinate bounced off.
type Wall int

const (
	WallNone Wall = iota
	WallLow
	WallHigh
)

func (w Wall) String() string {
	switch w {
	case WallLow:
		return "low"
	case WallHigh:
		return "high"
	default:
		return "none"
	}
}

type Model struct {
	rng           Rand
	averageSpeed  int
	width, height int
}

func New(rng Rand, averageSpeed, width, height int) *Model {
	return &Model{
		rng:          rng,
		averageSpeed: averageSpeed,
		width:        width,
		height:       height,
	}
}

// RandomSpeed returns a speed drawn uniformly from the upper half of
// [0, averageSpeed], both ends included.
func (m *Model) RandomSpeed() int {
	lo := m.averageSpeed / 2
	return lo + m.rng.Intn(m.averageSpeed-lo+1)
}

// RandomComponent is a RandomSpeed with a fair coin for its sign.
func (m *Model) RandomComponent() int {
	s := m.RandomSpeed()
	if m.rng.Intn(2) == 1 {
		s = -s
	}
	return s
}

func (m *Model) RandomVelocity() Velocity {
	return Velocity{DX: m.RandomComponent(), DY: m.RandomComponent()}
}

// Reflect folds p into [0, size). Below zero it mirrors about 0; at or
// past size it mirrors by the overshoot, size-1-(p-size). Positions more
// than one axis length away keep folding until they land in range; a low
// mirror followed by a high one is a shift by 2*size-1, so the fold is
// taken modulo that period. The wall is the one the last mirror used.
func Reflect(p, size int) (int, Wall) {
	if size <= 0 {
		return 0, WallNone
	}
	if p >= 0 && p < size {
		return p, WallNone
	}

	period := 2*size - 1
	q := p % period
	if q < 0 {
		q += period
	}
	folded := q
	if q >= size {
		folded = period - q
	}

	// The last mirror is low only when |p|, taken modulo the period, sits
	// strictly inside the axis.
	dist := q
	if p < 0 {
		dist = (period - q) % period
	}
	if dist > 0 && dist < size {
		return folded, WallLow
	}
	return folded, WallHigh
}

// AdvanceEndpoint moves one coordinate by vel inside an axis of length
// size. On a collision the velocity is redrawn pointing away from the wall
// that was hit.
func (m *Model) AdvanceEndpoint(pos, vel, size int) (int, int) {
	p, wall := Reflect(pos+vel, size)
	switch wall {
	case WallLow:
		vel = m.RandomSpeed()
	case WallHigh:
		vel = -m.RandomSpeed()
	}
	return p, vel
}

func (m *Model) advancePoint(p image.Point, v Velocity) (image.Point, Velocity) {
	p.X, v.DX = m.AdvanceEndpoint(p.X, v.DX, m.width)
	p.Y, v.DY = m.AdvanceEndpoint(p.Y, v.DY, m.height)
	return p, v
}

// Advance returns the line that follows prev, updating v in place. The two
// endpoints move and bounce independently. The returned line has no hue.
func (m *Model) Advance(prev Line, v *Velocities) Line {
	var next Line
	next.Beginning, v.Beginning = m.advancePoint(prev.Beginning, v.Beginning)
	next.End, v.End = m.advancePoint(prev.End, v.End)
	return next
}

// Seed places a line at random inside the frame and draws fresh
// velocities for both endpoints.
func (m *Model) Seed() (Line, Velocities) {
	var (
		l Line
		v Velocities
	)
	l.Beginning = image.Pt(m.rng.Intn(m.width), m.rng.Intn(m.height))
	v.Beginning = m.RandomVelocity()
	l.End = image.Pt(m.rng.Intn(m.width), m.rng.Intn(m.height))
	v.End = m.RandomVelocity()
	return l, v
}
