package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/linesaver/internal/canvas"
	"github.com/san-kum/linesaver/internal/config"
	"github.com/san-kum/linesaver/internal/display"
	"github.com/san-kum/linesaver/internal/motion"
	"github.com/san-kum/linesaver/internal/palette"
	"github.com/san-kum/linesaver/internal/raster"
)

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Stats is a point-in-time view of the engine for hosts and tests.
type Stats struct {
	State   State
	Frames  uint64
	Head    int
	Live    int
	Lit     int
	NextHue int
}

// Engine owns the frame, the line ring and the shared motion state. It is
// not safe for concurrent use; hosts call it from a single loop.
type Engine struct {
	cfg     config.Config
	surface display.Surface
	pal     *palette.Palette
	motion  *motion.Model
	seed    int64

	state  State
	canvas *canvas.Canvas
	raster *raster.Rasterizer
	ring   *Ring
	vel    motion.Velocities
	hues   *palette.HueCycle
	frames uint64
}

// New builds an idle engine. A nil rng is replaced by a source seeded from
// cfg.Seed, or from the clock when that is zero.
func New(cfg *config.Config, surface display.Surface, rng motion.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	pal, err := cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	seed := cfg.Seed
	if rng == nil {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	return &Engine{
		cfg:     *cfg,
		surface: surface,
		pal:     pal,
		motion:  motion.New(rng, cfg.AverageSpeed, cfg.Width, cfg.Height),
		seed:    seed,
	}, nil
}

func (e *Engine) Mode() display.Mode {
	return display.Mode{Width: e.cfg.Width, Height: e.cfg.Height}
}

func (e *Engine) State() State                  { return e.state }
func (e *Engine) Running() bool                 { return e.state == Running }
func (e *Engine) Palette() *palette.Palette     { return e.pal }
func (e *Engine) Config() config.Config         { return e.cfg }
func (e *Engine) Seed() int64                   { return e.seed }
func (e *Engine) Canvas() *canvas.Canvas        { return e.canvas }
func (e *Engine) Velocities() motion.Velocities { return e.vel }

// Activate moves the engine from Idle to Running. The surface is put into
// the effect's mode and given the palette; a refusal leaves the engine
// idle with nothing allocated. Calling Activate while running does nothing.
func (e *Engine) Activate() error {
	return e.activate(e.cfg.Resume())
}

func (e *Engine) activate(resume bool) error {
	if e.state == Running {
		return nil
	}
	mode := e.Mode()
	log := Logger()

	if err := e.surface.ConfigureDisplay(mode); err != nil {
		log.Warn("display refused mode", "mode", mode.String(), "err", err)
		return &ActivationError{Mode: mode, Err: err}
	}
	e.surface.UploadPalette(e.pal)

	resumed := resume && e.canvas != nil
	if !resumed {
		e.reset()
	}
	e.state = Running

	if resumed {
		e.surface.PublishFrame(e.canvas.Bytes())
	}
	log.Info("effect activated", "mode", mode.String(), "lines", e.ring.Len(), "resumed", resumed)
	log.Debug("motion state", "seed", e.seed, "head", e.ring.Head(), "velocities", fmt.Sprintf("%+v", e.vel))
	return nil
}

// reset leaves a cleared frame and an empty ring whose head slot holds a
// freshly seeded line. A context kept for resuming is reused in place.
func (e *Engine) reset() {
	if e.canvas == nil {
		e.canvas = canvas.New(e.cfg.Width, e.cfg.Height)
		e.raster = raster.New(e.canvas, e.pal)
		e.ring = NewRing(e.cfg.Lines)
		e.hues = palette.NewHueCycle(e.pal.Hues())
	} else {
		e.canvas.Clear()
		e.ring.Reset()
		e.hues.Reset()
	}
	e.frames = 0

	line, vel := e.motion.Seed()
	line.Hue = e.hues.Next()
	e.vel = vel
	e.ring.Put(e.ring.Head(), line)
}

// Deactivate returns to Idle. Unless the restart policy is resume, the
// frame and ring are released.
func (e *Engine) Deactivate() {
	if e.state == Idle {
		return
	}
	e.state = Idle
	if !e.cfg.Resume() {
		e.release()
	}
	Logger().Info("effect deactivated", "frames", e.frames)
}

func (e *Engine) release() {
	e.canvas = nil
	e.raster = nil
	e.ring = nil
	e.hues = nil
}

// Restart reseeds the effect from scratch whatever the restart policy.
func (e *Engine) Restart() error {
	e.Deactivate()
	return e.activate(false)
}

// Tick produces one frame: erase the oldest line, derive the next line from
// the newest, redraw every line oldest first and publish the frame.
func (e *Engine) Tick() error {
	if e.state != Running {
		return ErrNotRunning
	}

	next := e.ring.Next()
	if old := e.ring.At(next); old.Hue != palette.EraseHue {
		e.raster.Erase(old.Beginning, old.End)
	}

	line := e.motion.Advance(e.ring.Newest(), &e.vel)
	line.Hue = e.hues.Next()
	e.ring.Put(next, line)
	e.ring.Rotate()

	e.ring.Walk(func(_ int, l motion.Line) {
		if l.Hue != palette.EraseHue {
			e.raster.DrawSegment(l.Beginning, l.End, l.Hue)
		}
	})

	e.surface.PublishFrame(e.canvas.Bytes())
	e.frames++
	return nil
}

// Blank is the single host callback: true activates if needed and draws
// one frame, false deactivates.
func (e *Engine) Blank(blank bool) error {
	if !blank {
		e.Deactivate()
		return nil
	}
	if err := e.Activate(); err != nil {
		return err
	}
	return e.Tick()
}

// Lines returns the ring from oldest to newest, including slots that have
// not been written yet (hue 0). Nil when no ring is allocated.
func (e *Engine) Lines() []motion.Line {
	if e.ring == nil {
		return nil
	}
	return e.ring.Lines()
}

// Newest returns the most recently produced line.
func (e *Engine) Newest() (motion.Line, bool) {
	if e.ring == nil {
		return motion.Line{}, false
	}
	return e.ring.Newest(), true
}

func (e *Engine) Stats() Stats {
	s := Stats{State: e.state, Frames: e.frames}
	if e.ring != nil {
		s.Head = e.ring.Head()
		e.ring.Walk(func(_ int, l motion.Line) {
			if l.Hue != palette.EraseHue {
				s.Live++
			}
		})
	}
	if e.canvas != nil {
		s.Lit = e.canvas.Lit()
	}
	if e.hues != nil {
		s.NextHue = e.hues.Peek()
	}
	return s
}
