package physics

import "github.com/san-kum/ballpit/internal/dynamo"

// Tether pins bodies to circles around an anchor. Capture records the
// radii, Enforce projects bodies back onto them.
type Tether struct {
	dists []float64
}

// Capture records the distance from anchor to each body.
func (t *Tether) Capture(bodies []*Body, anchor dynamo.Vec2) {
	t.dists = t.dists[:0]
	for _, b := range bodies {
		t.dists = append(t.dists, b.Pos.Dist(anchor))
	}
}

// Len returns the number of captured distances.
func (t *Tether) Len() int { return len(t.dists) }

// Enforce moves each body back to its captured distance from anchor and
// removes the radial part of its velocity. bodies must be the slice passed
// to Capture.
func (t *Tether) Enforce(bodies []*Body, anchor dynamo.Vec2) {
	for i, b := range bodies {
		n := b.Pos.Sub(anchor).NormalizeOr(fallbackNormal)
		b.Pos = anchor.Add(n.Scale(t.dists[i]))
		b.Vel = b.Vel.Reject(n)
	}
}

// Reset drops the captured distances.
func (t *Tether) Reset() {
	t.dists = t.dists[:0]
}
