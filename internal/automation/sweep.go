package automation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

// ParameterSweep runs one world per value of a physics parameter, evenly
// spaced over [Min, Max].
type ParameterSweep struct {
	Param    string
	Min, Max float64
	NumSteps int
	Frames   int
}

// SweepResult holds the run result for one parameter value.
type SweepResult struct {
	Value     float64
	MaxEnergy float64
	MinEnergy float64
	*sim.Result
}

// Builder creates a world with the given parameters.
type Builder func(params physics.Params) (*sim.World, error)

// Values returns the parameter values the sweep visits.
func (s ParameterSweep) Values() []float64 {
	if s.NumSteps == 1 {
		return []float64{s.Min}
	}
	out := make([]float64, s.NumSteps)
	step := (s.Max - s.Min) / float64(s.NumSteps-1)
	for i := range out {
		out[i] = s.Min + float64(i)*step
	}
	return out
}

// RunSweep executes a parameter sweep starting from base.
func RunSweep(ctx context.Context, sweep ParameterSweep, base physics.Params, build Builder, logger *zap.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 || sweep.Frames < 1 {
		return nil, fmt.Errorf("sweep needs at least one step and one frame: %w", dynamo.ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))

	for i, v := range values {
		params := base
		if err := params.Set(sweep.Param, v); err != nil {
			return nil, err
		}

		w, err := build(params)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}

		res, err := w.Run(ctx, sweep.Frames)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}

		r := SweepResult{Value: v, Result: res}
		if len(res.Energy) > 0 {
			r.MinEnergy, r.MaxEnergy = res.Energy[0], res.Energy[0]
			for _, e := range res.Energy {
				r.MinEnergy = min(r.MinEnergy, e)
				r.MaxEnergy = max(r.MaxEnergy, e)
			}
		}
		results = append(results, r)

		logger.Info("sweep step",
			zap.Int("step", i+1),
			zap.Int("of", len(values)),
			zap.String("param", sweep.Param),
			zap.Float64("value", v))
	}

	return results, nil
}
