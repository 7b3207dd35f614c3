package sim

import "github.com/san-kum/ballpit/internal/physics"

// Metric accumulates a scalar over the sub-steps of a run.
type Metric interface {
	Name() string
	Observe(bodies []*physics.Body, t float64)
	Value() float64
	Reset()
}

// Observer is called after every sub-step. Observers must not mutate the
// bodies.
type Observer interface {
	OnStep(bodies []*physics.Body, dt float64)
}

type Config struct {
	FrameDt  float64 `mapstructure:"frame_dt" yaml:"frame_dt"`
	Substeps int     `mapstructure:"substeps" yaml:"substeps"`
}

func DefaultConfig() Config {
	return Config{FrameDt: 0.02, Substeps: 4}
}

// Result summarizes a headless run.
type Result struct {
	Frames  int
	Time    float64
	Bodies  int
	Energy  []float64
	Metrics map[string]float64
}
