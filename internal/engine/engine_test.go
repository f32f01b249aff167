package engine_test

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linesaver/internal/canvas"
	"github.com/san-kum/linesaver/internal/config"
	"github.com/san-kum/linesaver/internal/display"
	"github.com/san-kum/linesaver/internal/engine"
	"github.com/san-kum/linesaver/internal/motion"
	"github.com/san-kum/linesaver/internal/palette"
	"github.com/san-kum/linesaver/internal/raster"
)

// constRand always draws zero: every seeded point is (0,0) and every speed
// is the smallest positive one.
type constRand struct{}

func (constRand) Intn(int) int { return 0 }

func newEngine(cfg *config.Config, surface display.Surface, seed int64) *engine.Engine {
	e, err := engine.New(cfg, surface, rand.New(rand.NewSource(seed)))
	Expect(err).NotTo(HaveOccurred())
	return e
}

var _ = Describe("Engine", func() {
	var (
		cfg     *config.Config
		surface *display.Memory
		e       *engine.Engine
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		surface = display.NewMemory()
		e = newEngine(cfg, surface, 42)
	})

	Describe("construction", func() {
		It("starts idle", func() {
			Expect(e.State()).To(Equal(engine.Idle))
			Expect(e.Canvas()).To(BeNil())
			Expect(e.Lines()).To(BeNil())
		})

		It("rejects invalid tunables", func() {
			cfg.Shades = 6
			_, err := engine.New(cfg, surface, nil)
			Expect(err).To(MatchError(engine.ErrInvalidConfig))
			Expect(errors.Is(err, palette.ErrShades)).To(BeTrue())
		})

		It("seeds its own source when none is given", func() {
			cfg.Seed = 1234
			own, err := engine.New(cfg, surface, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(own.Seed()).To(Equal(int64(1234)))
		})
	})

	Describe("activation", func() {
		It("configures the display and uploads the palette", func() {
			Expect(e.Activate()).To(Succeed())

			Expect(e.State()).To(Equal(engine.Running))
			Expect(surface.Mode()).To(Equal(display.Mode{Width: 320, Height: 200}))
			Expect(surface.Palette()).To(BeIdenticalTo(e.Palette()))
			Expect(e.Canvas().Lit()).To(BeZero())
		})

		It("seeds exactly one line at the head", func() {
			Expect(e.Activate()).To(Succeed())

			stats := e.Stats()
			Expect(stats.Live).To(Equal(1))
			Expect(stats.Head).To(Equal(0))
			Expect(stats.NextHue).To(Equal(2))

			newest, ok := e.Newest()
			Expect(ok).To(BeTrue())
			Expect(newest.Hue).To(Equal(1))
		})

		It("is idempotent while running", func() {
			Expect(e.Activate()).To(Succeed())
			before, _ := e.Newest()

			Expect(e.Activate()).To(Succeed())
			after, _ := e.Newest()

			Expect(after).To(Equal(before))
			Expect(surface.Configured()).To(Equal(1))
			Expect(surface.Published()).To(BeZero())
		})

		It("stays idle with nothing allocated when the mode is refused", func() {
			refusing := display.NewMemory(display.Mode{Width: 640, Height: 480})
			e = newEngine(cfg, refusing, 1)

			err := e.Activate()
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, display.ErrUnsupportedMode)).To(BeTrue())

			var actErr *engine.ActivationError
			Expect(errors.As(err, &actErr)).To(BeTrue())
			Expect(actErr.Mode).To(Equal(display.Mode{Width: 320, Height: 200}))

			Expect(e.State()).To(Equal(engine.Idle))
			Expect(e.Canvas()).To(BeNil())
			Expect(refusing.Published()).To(BeZero())
		})

		It("logs lifecycle transitions", func() {
			var buf bytes.Buffer
			engine.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
			DeferCleanup(func() { engine.SetLogger(nil) })

			Expect(e.Activate()).To(Succeed())
			e.Deactivate()

			Expect(buf.String()).To(ContainSubstring("effect activated"))
			Expect(buf.String()).To(ContainSubstring("effect deactivated"))
		})
	})

	Describe("ticking", func() {
		It("refuses to tick while idle", func() {
			Expect(e.Tick()).To(MatchError(engine.ErrNotRunning))
		})

		It("publishes one frame per tick", func() {
			Expect(e.Activate()).To(Succeed())
			for i := 0; i < 5; i++ {
				Expect(e.Tick()).To(Succeed())
			}
			Expect(surface.Published()).To(Equal(5))
			Expect(e.Stats().Frames).To(Equal(uint64(5)))
			Expect(surface.Frame()).To(Equal(e.Canvas().Bytes()))
		})

		It("returns the head to its starting slot after N ticks", func() {
			Expect(e.Activate()).To(Succeed())
			start := e.Stats().Head

			for i := 0; i < cfg.Lines; i++ {
				Expect(e.Tick()).To(Succeed())
			}

			stats := e.Stats()
			Expect(stats.Head).To(Equal(start))
			Expect(stats.Lit).To(BeNumerically(">", 0))
			Expect(stats.Live).To(Equal(cfg.Lines))
		})

		It("keeps exactly N live lines once the ring is full", func() {
			Expect(e.Activate()).To(Succeed())
			for i := 0; i < 3*cfg.Lines+7; i++ {
				Expect(e.Tick()).To(Succeed())
				Expect(len(e.Lines())).To(Equal(cfg.Lines))
			}
			Expect(e.Stats().Live).To(Equal(cfg.Lines))
		})

		It("assigns hues round robin, never erase", func() {
			Expect(e.Activate()).To(Succeed())
			prev, _ := e.Newest()
			for i := 0; i < 60; i++ {
				Expect(e.Tick()).To(Succeed())
				cur, _ := e.Newest()
				Expect(cur.Hue).NotTo(Equal(palette.EraseHue))
				Expect(cur.Hue).To(Equal(prev.Hue%palette.DefaultHues + 1))
				prev = cur
			}
		})

		It("paints the newest line's endpoints at full brightness", func() {
			Expect(e.Activate()).To(Succeed())
			for i := 0; i < 2*cfg.Lines; i++ {
				Expect(e.Tick()).To(Succeed())

				newest, _ := e.Newest()
				want := e.Palette().Index(newest.Hue, 0)
				c := e.Canvas()
				Expect(c.At(newest.Beginning.X, newest.Beginning.Y)).To(Equal(want))
				Expect(c.At(newest.End.X, newest.End.Y)).To(Equal(want))
			}
		})

		It("never lets an endpoint leave the frame", func() {
			bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
			Expect(e.Activate()).To(Succeed())
			for i := 0; i < 5000; i++ {
				Expect(e.Tick()).To(Succeed())
				newest, _ := e.Newest()
				Expect(newest.Beginning.In(bounds)).To(BeTrue())
				Expect(newest.End.In(bounds)).To(BeTrue())
			}
		})

		It("erases the oldest line before overwriting it", func() {
			cfg.Lines = 1
			e = newEngine(cfg, surface, 5)
			Expect(e.Activate()).To(Succeed())

			for i := 0; i < 20; i++ {
				Expect(e.Tick()).To(Succeed())
				newest, _ := e.Newest()

				// with one slot the frame holds exactly the newest line
				want := canvas.New(cfg.Width, cfg.Height)
				raster.New(want, e.Palette()).DrawSegment(newest.Beginning, newest.End, newest.Hue)
				Expect(e.Canvas().Bytes()).To(Equal(want.Bytes()))
			}
		})

		It("survives a degenerate line with coincident endpoints", func() {
			e, err := engine.New(cfg, surface, constRand{})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Activate()).To(Succeed())

			newest, _ := e.Newest()
			Expect(newest.Beginning).To(Equal(newest.End))

			for i := 0; i < 3*cfg.Lines; i++ {
				Expect(e.Tick()).To(Succeed())
			}
			newest, _ = e.Newest()
			Expect(newest.Beginning).To(Equal(newest.End))
			Expect(e.Canvas().Lit()).To(BeNumerically(">", 0))
		})

		It("is reproducible from a seed", func() {
			other := newEngine(cfg, display.NewMemory(), 42)
			Expect(e.Activate()).To(Succeed())
			Expect(other.Activate()).To(Succeed())
			for i := 0; i < 100; i++ {
				Expect(e.Tick()).To(Succeed())
				Expect(other.Tick()).To(Succeed())
			}
			Expect(other.Canvas().Bytes()).To(Equal(e.Canvas().Bytes()))
			Expect(other.Velocities()).To(Equal(e.Velocities()))
		})
	})

	Describe("deactivation", func() {
		It("starts over on reactivation by default", func() {
			Expect(e.Activate()).To(Succeed())
			for i := 0; i < 10; i++ {
				Expect(e.Tick()).To(Succeed())
			}
			e.Deactivate()
			Expect(e.State()).To(Equal(engine.Idle))
			Expect(e.Canvas()).To(BeNil())

			Expect(e.Activate()).To(Succeed())
			stats := e.Stats()
			Expect(stats.Frames).To(BeZero())
			Expect(stats.Head).To(BeZero())
			Expect(stats.Live).To(Equal(1))
			Expect(stats.Lit).To(BeZero())
		})

		It("resumes mid-trajectory when configured to", func() {
			cfg.Restart = config.RestartResume
			e = newEngine(cfg, surface, 9)

			Expect(e.Activate()).To(Succeed())
			for i := 0; i < 10; i++ {
				Expect(e.Tick()).To(Succeed())
			}
			before := e.Stats()
			frame := e.Canvas().Snapshot()
			newest, _ := e.Newest()

			e.Deactivate()
			Expect(e.Activate()).To(Succeed())

			after := e.Stats()
			Expect(after.Head).To(Equal(before.Head))
			Expect(after.Frames).To(Equal(before.Frames))
			Expect(e.Canvas().Bytes()).To(Equal(frame))
			again, _ := e.Newest()
			Expect(again).To(Equal(newest))
			Expect(surface.Frame()).To(Equal(frame))
		})

		It("restarts from scratch even when resuming", func() {
			cfg.Restart = config.RestartResume
			e = newEngine(cfg, surface, 9)

			Expect(e.Activate()).To(Succeed())
			for i := 0; i < 10; i++ {
				Expect(e.Tick()).To(Succeed())
			}
			kept := e.Canvas()
			Expect(e.Restart()).To(Succeed())

			stats := e.Stats()
			Expect(stats.State).To(Equal(engine.Running))
			Expect(stats.Frames).To(BeZero())
			Expect(stats.Head).To(BeZero())
			Expect(stats.Live).To(Equal(1))
			Expect(stats.Lit).To(BeZero())
			Expect(stats.NextHue).To(Equal(2))
			Expect(e.Canvas()).To(BeIdenticalTo(kept))

			Expect(e.Tick()).To(Succeed())
			Expect(e.Stats().Live).To(Equal(2))
			newest, _ := e.Newest()
			Expect(newest.Hue).To(Equal(2))
		})

		It("ignores a second deactivate", func() {
			e.Deactivate()
			Expect(e.State()).To(Equal(engine.Idle))
		})
	})

	Describe("Blank", func() {
		It("activates and draws on the first call", func() {
			Expect(e.Blank(true)).To(Succeed())
			Expect(e.State()).To(Equal(engine.Running))
			Expect(surface.Published()).To(Equal(1))

			Expect(e.Blank(true)).To(Succeed())
			Expect(surface.Published()).To(Equal(2))
			Expect(surface.Configured()).To(Equal(1))
		})

		It("deactivates on false", func() {
			Expect(e.Blank(true)).To(Succeed())
			Expect(e.Blank(false)).To(Succeed())
			Expect(e.State()).To(Equal(engine.Idle))
		})

		It("reports activation failures", func() {
			e = newEngine(cfg, display.NewMemory(display.Mode{Width: 1, Height: 1}), 3)
			Expect(errors.Is(e.Blank(true), display.ErrUnsupportedMode)).To(BeTrue())
		})
	})
})

var _ = Describe("motion state", func() {
	It("is shared by every new line", func() {
		cfg := config.DefaultConfig()
		e := newEngine(cfg, display.NewMemory(), 11)
		Expect(e.Activate()).To(Succeed())

		for i := 0; i < 200; i++ {
			prev, _ := e.Newest()
			v := e.Velocities()
			Expect(e.Tick()).To(Succeed())
			cur, _ := e.Newest()

			// without a bounce the new line is the old one moved by the shared velocity
			free := func(p image.Point, vel motion.Velocity, q image.Point) bool {
				n := p.Add(image.Pt(vel.DX, vel.DY))
				return !n.In(image.Rect(0, 0, cfg.Width, cfg.Height)) || n == q
			}
			Expect(free(prev.Beginning, v.Beginning, cur.Beginning)).To(BeTrue())
			Expect(free(prev.End, v.End, cur.End)).To(BeTrue())
		}
	})
})
