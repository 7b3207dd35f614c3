package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestApplySwirl_PerpendicularAndOpposite(t *testing.T) {
	a := NewBody(3, dynamo.V2(0, 0))
	b := NewBody(3, dynamo.V2(2, 0))
	bodies := []*Body{a, b}

	ApplySwirl(bodies, DefaultForceFactor, 0.01)

	want := DefaultForceFactor * b.Mass() * 0.01 * 2 / math.Pow(2, 2.5)
	assert.InDelta(t, 0, a.Vel.X, 1e-9)
	assert.InDelta(t, want, a.Vel.Y, 1e-9)
	assert.InDelta(t, -want, b.Vel.Y, 1e-9)
	assert.Equal(t, a.Vel, b.Vel.Neg())
}

func TestApplySwirl_SkipsCoincident(t *testing.T) {
	a := NewBody(3, dynamo.V2(1, 1))
	b := NewBody(3, dynamo.V2(1, 1))

	ApplySwirl([]*Body{a, b}, DefaultForceFactor, 0.01)

	assert.Equal(t, dynamo.Vec2{}, a.Vel)
	assert.Equal(t, dynamo.Vec2{}, b.Vel)
}

func TestApplyPullPush(t *testing.T) {
	dt := 0.02
	tests := []struct {
		name  string
		apply func([]*Body)
		pos   dynamo.Vec2
		want  dynamo.Vec2
	}{
		{
			name:  "pull toward cursor",
			apply: func(bs []*Body) { ApplyPull(bs, dynamo.Vec2{}, DefaultPullRate, dt) },
			pos:   dynamo.V2(10, 0),
			want:  dynamo.V2(-DefaultPullRate*dt, 0),
		},
		{
			name:  "push away from cursor",
			apply: func(bs []*Body) { ApplyPush(bs, dynamo.Vec2{}, DefaultPushRate, dt) },
			pos:   dynamo.V2(0, -4),
			want:  dynamo.V2(0, -DefaultPushRate*dt),
		},
		{
			name:  "pull at cursor uses fallback",
			apply: func(bs []*Body) { ApplyPull(bs, dynamo.Vec2{}, DefaultPullRate, dt) },
			pos:   dynamo.Vec2{},
			want:  fallbackNormal.Scale(DefaultPullRate * dt),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(3, tt.pos)
			tt.apply([]*Body{b})
			assert.InDelta(t, tt.want.X, b.Vel.X, 1e-12)
			assert.InDelta(t, tt.want.Y, b.Vel.Y, 1e-12)
		})
	}
}

func TestDampVelocities(t *testing.T) {
	b := NewBody(3, dynamo.Vec2{})
	b.Vel = dynamo.V2(10, -5)

	DampVelocities([]*Body{b}, DefaultBoundaryDamp, 0.1)

	k := math.Exp(-1)
	assert.InDelta(t, 10*k, b.Vel.X, 1e-12)
	assert.InDelta(t, -5*k, b.Vel.Y, 1e-12)
}

func TestNudge(t *testing.T) {
	b := NewBody(3, dynamo.V2(0, 20))
	b.Vel = dynamo.V2(4, 0)

	Nudge([]*Body{b}, dynamo.Vec2{}, DefaultNudgeSpeed, DefaultNudgeBlend)

	assert.InDelta(t, 2, b.Vel.X, 1e-12)
	assert.InDelta(t, 25, b.Vel.Y, 1e-12)
}

func TestIntegrate(t *testing.T) {
	b := NewBody(3, dynamo.V2(1, 1))
	b.Vel = dynamo.V2(2, -4)

	Integrate([]*Body{b}, 0.5)

	assert.Equal(t, dynamo.V2(2, -1), b.Pos)
}
