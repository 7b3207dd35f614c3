// Package particles is the decorative background: dust that appears near
// heavy bodies and sinks away. Nothing here feeds back into the physics.
package particles

import (
	"math"
	"math/rand"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

const DefaultMaxDepth = 5.0

type Particle struct {
	Pos   dynamo.Vec2
	Depth float64
}

// DrawPos is the position after depth perspective.
func (p Particle) DrawPos() dynamo.Vec2 {
	return p.Pos.Div(1 + p.Depth)
}

// Field adds one particle per step and ages the rest. It implements
// sim.Observer.
type Field struct {
	bounds   physics.Bounds
	rng      *rand.Rand
	maxDepth float64
	items    []Particle
}

func NewField(bounds physics.Bounds, seed int64) *Field {
	return &Field{
		bounds:   bounds,
		rng:      rand.New(rand.NewSource(seed)),
		maxDepth: DefaultMaxDepth,
	}
}

func (f *Field) SetBounds(b physics.Bounds) { f.bounds = b }
func (f *Field) MaxDepth() float64          { return f.maxDepth }
func (f *Field) Len() int                   { return len(f.items) }

// Particles returns a copy of the live particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Field) OnStep(bodies []*physics.Body, dt float64) {
	f.items = append(f.items, Particle{Pos: f.place(bodies)})

	kept := f.items[:0]
	for _, p := range f.items {
		p.Depth += dt
		if p.Depth < f.maxDepth {
			kept = append(kept, p)
		}
	}
	f.items = kept
}

// place picks a uniform point in the bounds, with a probability that falls
// off as bodies are added, and otherwise a Gaussian point around a body
// chosen by mass.
func (f *Field) place(bodies []*physics.Body) dynamo.Vec2 {
	n := float64(len(bodies))
	if len(bodies) == 0 || f.rng.Float64() < 0.3+0.7*math.Exp(-0.4*n) {
		lo, hi := physics.MinMax(f.bounds)
		u := dynamo.V2(f.rng.Float64(), f.rng.Float64())
		return lo.Add(u.Mul(hi.Sub(lo)))
	}

	b := pickByMass(bodies, f.rng.Float64())
	return b.Pos.Add(f.gaussian().Scale(b.Radius()))
}

// gaussian returns a standard normal 2D sample (Box-Muller).
func (f *Field) gaussian() dynamo.Vec2 {
	r := math.Sqrt(-2 * math.Log(1-f.rng.Float64()))
	return dynamo.Rot2(2 * math.Pi * f.rng.Float64()).Scale(r)
}

func pickByMass(bodies []*physics.Body, u float64) *physics.Body {
	total := 0.0
	for _, b := range bodies {
		total += b.Mass()
	}
	acc := 0.0
	for _, b := range bodies {
		acc += b.Mass() / total
		if u <= acc {
			return b
		}
	}
	return bodies[len(bodies)-1]
}

// Style returns the fill colour channels in [0, 1], the alpha and the world
// size for a particle.
func (f *Field) Style(p Particle) (r, g, b, alpha, size float64) {
	return StyleAt(p, f.maxDepth)
}

// StyleAt is Style for a field whose particles sink to maxDepth.
func StyleAt(p Particle, maxDepth float64) (r, g, b, alpha, size float64) {
	t := clamp01(p.Depth / maxDepth)
	r = 0.5 * math.Sqrt(clamp01(0.1-t))
	g = 0.5 * math.Sqrt(clamp01(0.15-t))
	b = 0.7 * math.Pow(clamp01(0.2-0.7*t), 0.25)
	alpha = 1 - math.Pow(t, 1.5)
	size = 2.5 / (1 + p.Depth)
	return r, g, b, alpha, size
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
