package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballpit/internal/physics"
)

// Metric has the same method set as sim.Metric.
type Metric interface {
	Name() string
	Observe(bodies []*physics.Body, t float64)
	Value() float64
	Reset()
}

// DefaultStabilityThreshold is the speed above which a step counts as
// unsettled.
const DefaultStabilityThreshold = 50.0

var constructors = map[string]func() Metric{
	"energy":      func() Metric { return NewEnergy() },
	"peak_energy": func() Metric { return NewPeakEnergy() },
	"stability":   func() Metric { return NewStability(DefaultStabilityThreshold) },
	"population":  func() Metric { return NewPopulation() },
}

// ByName builds the named metric.
func ByName(name string) (Metric, error) {
	c, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", name)
	}
	return c(), nil
}

// Names lists the registered metrics in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
