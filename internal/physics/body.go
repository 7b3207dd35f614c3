package physics

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// Body is a circular ball. Radius and mass are kept private so that mass
// always matches the radius.
type Body struct {
	Pos dynamo.Vec2
	Vel dynamo.Vec2

	radius float64
	mass   float64
	trail  []dynamo.Vec2
}

// NewBody returns a body at rest.
func NewBody(radius float64, pos dynamo.Vec2) *Body {
	b := &Body{Pos: pos}
	b.setRadius(radius)
	return b
}

func (b *Body) Radius() float64 { return b.radius }
func (b *Body) Mass() float64   { return b.mass }

// Area returns π·r².
func (b *Body) Area() float64 {
	return math.Pi * b.radius * b.radius
}

func (b *Body) setRadius(r float64) {
	b.radius = r
	b.mass = b.Area()
}

// SetRadius clamps r to [lo, hi] and recomputes the mass.
func (b *Body) SetRadius(r, lo, hi float64) {
	b.setRadius(math.Max(lo, math.Min(hi, r)))
}

// Grow changes the radius by delta within [lo, hi].
func (b *Body) Grow(delta, lo, hi float64) {
	b.SetRadius(b.radius+delta, lo, hi)
}

// ContainsPoint reports whether p lies strictly inside the body.
func (b *Body) ContainsPoint(p dynamo.Vec2) bool {
	return p.Sub(b.Pos).Len2() < b.radius*b.radius
}

// RecordTrail appends the current position, dropping the oldest entries
// beyond capacity.
func (b *Body) RecordTrail(capacity int) {
	if capacity <= 0 {
		b.trail = b.trail[:0]
		return
	}
	b.trail = append(b.trail, b.Pos)
	if len(b.trail) > capacity {
		b.trail = b.trail[len(b.trail)-capacity:]
	}
}

// Trail returns the recent positions, oldest first.
func (b *Body) Trail() []dynamo.Vec2 {
	out := make([]dynamo.Vec2, len(b.trail))
	copy(out, b.trail)
	return out
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.mass * b.Vel.Len2()
}

func (b *Body) IsFinite() bool {
	return b.Pos.IsFinite() && b.Vel.IsFinite()
}

// Clone returns a deep copy.
func (b *Body) Clone() Body {
	c := *b
	c.trail = b.Trail()
	return c
}
