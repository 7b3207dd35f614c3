package physics

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

var quarterTurn = dynamo.Rot2(dynamo.Eta)

// ApplySwirl applies the pairwise force: the separation vector scaled by
// 1/|d|^2.5 and turned a quarter turn, weighted by the other body's mass.
// The turn makes neighbours circle each other instead of falling together.
// Coincident pairs are skipped.
func ApplySwirl(bodies []*Body, factor, dt float64) {
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			d := b.Pos.Sub(a.Pos)
			l := d.Len()
			if l == 0 {
				continue
			}
			acc := d.Div(math.Pow(l, 2.5)).CMul(quarterTurn)
			a.Vel = a.Vel.Add(acc.Scale(+factor * b.mass * dt))
			b.Vel = b.Vel.Add(acc.Scale(-factor * a.mass * dt))
		}
	}
}

// ApplyPull accelerates every body toward target at a constant rate.
func ApplyPull(bodies []*Body, target dynamo.Vec2, rate, dt float64) {
	for _, b := range bodies {
		dir := target.Sub(b.Pos).NormalizeOr(fallbackNormal)
		b.Vel = b.Vel.Add(dir.Scale(rate * dt))
	}
}

// ApplyPush accelerates every body away from source at a constant rate.
func ApplyPush(bodies []*Body, source dynamo.Vec2, rate, dt float64) {
	for _, b := range bodies {
		dir := b.Pos.Sub(source).NormalizeOr(fallbackNormal)
		b.Vel = b.Vel.Add(dir.Scale(rate * dt))
	}
}

// DampVelocities decays every velocity toward zero at rate lambda.
func DampVelocities(bodies []*Body, lambda, dt float64) {
	for _, b := range bodies {
		b.Vel = b.Vel.Damp(dynamo.Vec2{}, lambda, dt)
	}
}

// Nudge blends every velocity toward speed·dir(source → body).
func Nudge(bodies []*Body, source dynamo.Vec2, speed, blend float64) {
	for _, b := range bodies {
		dir := b.Pos.Sub(source).NormalizeOr(fallbackNormal)
		b.Vel = b.Vel.Lerp(dir.Scale(speed), blend)
	}
}

// Integrate advances positions with the current velocities.
func Integrate(bodies []*Body, dt float64) {
	for _, b := range bodies {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}
}
