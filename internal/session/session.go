package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/linesaver/internal/engine"
	"github.com/san-kum/linesaver/internal/motion"
)

var ErrFrames = errors.New("session: frame count must be positive")

// Frame records what one tick produced.
type Frame struct {
	Index int
	Line  motion.Line
	Lit   int
}

type Observer interface {
	OnFrame(f Frame)
}

// Metric summarizes a run into one number, reported under Name.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Result struct {
	Seed    int64
	Frames  []Frame
	Lines   []motion.Line
	Stats   engine.Stats
	Metrics map[string]float64
	Elapsed time.Duration
}

// LitSeries returns the lit pixel count of every frame, for plotting.
func (r *Result) LitSeries() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = float64(f.Lit)
	}
	return out
}

// FPS is the rate the frames were produced at, not a display rate.
func (r *Result) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(len(r.Frames)) / r.Elapsed.Seconds()
}

// Runner drives an engine through Blank(true) the way a host would, one
// frame per call, without pacing.
type Runner struct {
	eng       *engine.Engine
	metrics   []Metric
	observers []Observer
}

func New(eng *engine.Engine) *Runner {
	return &Runner{
		eng:       eng,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }
func (r *Runner) Engine() *engine.Engine { return r.eng }

// Run produces frames frames. The engine is left running so callers can
// inspect or export its final state; Blank(false) releases it. On
// cancellation the partial result is returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, frames int) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrFrames, frames)
	}

	result := &Result{
		Seed:    r.eng.Seed(),
		Frames:  make([]Frame, 0, frames),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
		result.Lines = r.eng.Lines()
		result.Stats = r.eng.Stats()
		for _, m := range r.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f, err := r.step(i)
		if err != nil {
			return result, err
		}
		result.Frames = append(result.Frames, f)
	}
	return result, nil
}

// RunWithCallback produces frames until ctx is done or fn returns false.
func (r *Runner) RunWithCallback(ctx context.Context, fn func(Frame) bool) error {
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f, err := r.step(i)
		if err != nil {
			return err
		}
		if !fn(f) {
			return nil
		}
	}
}

func (r *Runner) step(i int) (Frame, error) {
	if err := r.eng.Blank(true); err != nil {
		return Frame{}, err
	}
	line, _ := r.eng.Newest()
	f := Frame{Index: i, Line: line, Lit: r.eng.Canvas().Lit()}
	for _, m := range r.metrics {
		m.Observe(f)
	}
	for _, o := range r.observers {
		o.OnFrame(f)
	}
	return f, nil
}
