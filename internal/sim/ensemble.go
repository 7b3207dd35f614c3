package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Factory builds an independent world for one ensemble member.
type Factory func(seed int64) (*World, error)

// Ensemble runs worlds with consecutive seeds in parallel.
type Ensemble struct {
	build     Factory
	numRuns   int
	seedStart int64
	limit     int
}

func NewEnsemble(build Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

// SetLimit caps the number of worlds running at once. n <= 0 means no cap.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

type EnsembleResult struct {
	Seed int64
	*Result
}

func (e *Ensemble) Run(ctx context.Context, frames int) ([]EnsembleResult, error) {
	results := make([]EnsembleResult, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i := 0; i < e.numRuns; i++ {
		seed := e.seedStart + int64(i)
		g.Go(func() error {
			w, err := e.build(seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			res, err := w.Run(ctx, frames)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = EnsembleResult{Seed: seed, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
