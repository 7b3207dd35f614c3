package physics

import "github.com/san-kum/ballpit/internal/dynamo"

// fallbackNormal is the direction used when two points coincide.
var fallbackNormal = dynamo.V2(1, 0)

// Collision stores the contact normal (from the first body toward the
// second) and the penetration depth.
type Collision struct {
	Normal      dynamo.Vec2
	Penetration float64
}

// Collide tests two bodies for overlap. Touching bodies collide with zero
// penetration.
func Collide(a, b *Body) (Collision, bool) {
	diff := b.Pos.Sub(a.Pos)
	dist := diff.Len()
	gap := dist - (a.radius + b.radius)
	if gap > 0 {
		return Collision{}, false
	}
	normal := diff.Div(dist)
	if !normal.IsFinite() {
		normal = fallbackNormal
	}
	return Collision{Normal: normal, Penetration: -gap}, true
}

// ResolvePair separates a and b along c.Normal, the lighter body moving
// further, then applies the restitution-scaled impulse.
func ResolvePair(a, b *Body, c Collision, restitution float64) {
	total := a.mass + b.mass
	a.Pos = a.Pos.Sub(c.Normal.Scale(c.Penetration * b.mass / total))
	b.Pos = b.Pos.Add(c.Normal.Scale(c.Penetration * a.mass / total))

	vrel := a.Vel.Sub(b.Vel)
	impulse := -2 * vrel.Dot(c.Normal) / (1/a.mass + 1/b.mass)
	a.Vel = a.Vel.Add(c.Normal.Scale(impulse * restitution / a.mass))
	b.Vel = b.Vel.Sub(c.Normal.Scale(impulse * restitution / b.mass))
}

// ResolveCollisions resolves every overlapping unordered pair once and
// returns the number of contacts.
func ResolveCollisions(bodies []*Body, restitution float64) int {
	contacts := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			c, ok := Collide(bodies[i], bodies[j])
			if !ok {
				continue
			}
			ResolvePair(bodies[i], bodies[j], c, restitution)
			contacts++
		}
	}
	return contacts
}
