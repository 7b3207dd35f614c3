package physics

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// Bounds is an axis-aligned box described by its center and half extent.
type Bounds interface {
	Center() dynamo.Vec2
	HalfExtent() dynamo.Vec2
}

// Box is a fixed Bounds value.
type Box struct {
	C    dynamo.Vec2
	Half dynamo.Vec2
}

func (b Box) Center() dynamo.Vec2     { return b.C }
func (b Box) HalfExtent() dynamo.Vec2 { return b.Half }

// MinMax returns the corners of bounds.
func MinMax(bounds Bounds) (lo, hi dynamo.Vec2) {
	c, h := bounds.Center(), bounds.HalfExtent()
	return c.Sub(h), c.Add(h)
}

// ResolveBoundary clamps bodies inside bounds and turns the velocity
// component of every crossed axis back inward. It returns the number of
// clamped axes.
func ResolveBoundary(bodies []*Body, bounds Bounds) int {
	lo, hi := MinMax(bounds)
	hits := 0
	for _, b := range bodies {
		r := b.radius
		if b.Pos.X < lo.X+r {
			b.Pos.X = lo.X + r
			b.Vel.X = math.Abs(b.Vel.X)
			hits++
		}
		if hi.X-r < b.Pos.X {
			b.Pos.X = hi.X - r
			b.Vel.X = -math.Abs(b.Vel.X)
			hits++
		}
		if b.Pos.Y < lo.Y+r {
			b.Pos.Y = lo.Y + r
			b.Vel.Y = math.Abs(b.Vel.Y)
			hits++
		}
		if hi.Y-r < b.Pos.Y {
			b.Pos.Y = hi.Y - r
			b.Vel.Y = -math.Abs(b.Vel.Y)
			hits++
		}
	}
	return hits
}

// Inside reports whether b lies fully within bounds.
func Inside(b *Body, bounds Bounds) bool {
	lo, hi := MinMax(bounds)
	r := b.radius
	return lo.X+r <= b.Pos.X && b.Pos.X <= hi.X-r &&
		lo.Y+r <= b.Pos.Y && b.Pos.Y <= hi.Y-r
}
