package session

import (
	"context"
	"sync"

	"github.com/san-kum/linesaver/internal/config"
	"github.com/san-kum/linesaver/internal/display"
	"github.com/san-kum/linesaver/internal/engine"
)

// Ensemble runs one configuration over consecutive seeds, each on its own
// engine and memory surface.
type Ensemble struct {
	cfg        config.Config
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: *cfg, numRuns: numRuns, seedStart: seedStart}
}

// Seed returns the seed of run idx. Seed 0 would ask the engine for a
// clock seed, so the sequence steps over it.
func (e *Ensemble) Seed(idx int) int64 {
	s := e.seedStart + int64(idx)
	if e.seedStart <= 0 && s >= 0 {
		s++
	}
	return s
}

// SetMetrics gives every run its own metrics, built by factory.
func (e *Ensemble) SetMetrics(factory func() []Metric) { e.newMetrics = factory }

// Run returns one result per seed, in seed order. The first error wins.
func (e *Ensemble) Run(ctx context.Context, frames int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.Seed(idx)

			eng, err := engine.New(&cfgCopy, display.NewMemory(), nil)
			if err != nil {
				errs[idx] = err
				return
			}
			defer eng.Deactivate()

			runner := New(eng)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					runner.AddMetric(m)
				}
			}
			results[idx], errs[idx] = runner.Run(ctx, frames)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
