package metrics

import "github.com/san-kum/ballpit/internal/physics"

// Population is the mean number of bodies per step.
type Population struct {
	name    string
	sum     int
	samples int
}

func NewPopulation() *Population {
	return &Population{
		name: "population",
	}
}

func (p *Population) Name() string {
	return p.name
}

func (p *Population) Observe(bodies []*physics.Body, t float64) {
	p.sum += len(bodies)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.sum) / float64(p.samples)
}

func (p *Population) Reset() {
	p.sum = 0
	p.samples = 0
}
