package physics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestCollide(t *testing.T) {
	tests := []struct {
		name        string
		a, b        *Body
		hit         bool
		normal      dynamo.Vec2
		penetration float64
	}{
		{
			name:        "overlapping",
			a:           NewBody(3, dynamo.V2(0, 0)),
			b:           NewBody(3, dynamo.V2(4, 0)),
			hit:         true,
			normal:      dynamo.V2(1, 0),
			penetration: 2,
		},
		{
			name:        "touching",
			a:           NewBody(1, dynamo.V2(0, 0)),
			b:           NewBody(2, dynamo.V2(0, 3)),
			hit:         true,
			normal:      dynamo.V2(0, 1),
			penetration: 0,
		},
		{
			name: "apart",
			a:    NewBody(1, dynamo.V2(0, 0)),
			b:    NewBody(1, dynamo.V2(5, 0)),
		},
		{
			name:        "coincident",
			a:           NewBody(2, dynamo.V2(3, 3)),
			b:           NewBody(1, dynamo.V2(3, 3)),
			hit:         true,
			normal:      fallbackNormal,
			penetration: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Collide(tt.a, tt.b)
			require.Equal(t, tt.hit, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.normal.X, c.Normal.X, 1e-12)
			assert.InDelta(t, tt.normal.Y, c.Normal.Y, 1e-12)
			assert.InDelta(t, tt.penetration, c.Penetration, 1e-12)
			assert.True(t, c.Normal.IsFinite())
		})
	}
}

func TestCollide_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := NewBody(1+rng.Float64()*5, dynamo.V2(rng.Float64()*10, rng.Float64()*10))
		b := NewBody(1+rng.Float64()*5, dynamo.V2(rng.Float64()*10, rng.Float64()*10))

		ab, okAB := Collide(a, b)
		ba, okBA := Collide(b, a)
		require.Equal(t, okAB, okBA)
		if !okAB {
			continue
		}
		assert.Equal(t, ab.Normal, ba.Normal.Neg())
		assert.Equal(t, ab.Penetration, ba.Penetration)
		assert.GreaterOrEqual(t, ab.Penetration, 0.0)
	}
}

func TestResolvePair_SeparatesAndFlipsApproach(t *testing.T) {
	a := NewBody(3, dynamo.V2(0, 0))
	b := NewBody(3, dynamo.V2(5, 0))
	a.Vel = dynamo.V2(1, 0)
	b.Vel = dynamo.V2(-1, 0)

	c, ok := Collide(a, b)
	require.True(t, ok)
	before := a.Vel.Sub(b.Vel).Dot(c.Normal)

	ResolvePair(a, b, c, DefaultRestitution)

	after := a.Vel.Sub(b.Vel).Dot(c.Normal)
	assert.Greater(t, before, 0.0)
	assert.Less(t, after, 0.0)
	assert.InDelta(t, -0.6, a.Vel.X, 1e-12)
	assert.InDelta(t, 0.6, b.Vel.X, 1e-12)
	assert.InDelta(t, 6.0, a.Pos.Dist(b.Pos), 1e-12)
}

func TestResolvePair_HeavierMovesLess(t *testing.T) {
	light := NewBody(1, dynamo.V2(0, 0))
	heavy := NewBody(4, dynamo.V2(4, 0))

	c, ok := Collide(light, heavy)
	require.True(t, ok)
	ResolvePair(light, heavy, c, DefaultRestitution)

	lightShift := light.Pos.Len()
	heavyShift := heavy.Pos.Dist(dynamo.V2(4, 0))
	assert.Greater(t, lightShift, heavyShift)
	assert.InDelta(t, 5.0, light.Pos.Dist(heavy.Pos), 1e-12)
}

func TestResolveCollisions_CountsPairs(t *testing.T) {
	bodies := []*Body{
		NewBody(2, dynamo.V2(0, 0)),
		NewBody(2, dynamo.V2(3, 0)),
		NewBody(2, dynamo.V2(50, 50)),
	}
	assert.Equal(t, 1, ResolveCollisions(bodies, DefaultRestitution))
	assert.InDelta(t, 4.0, bodies[0].Pos.Dist(bodies[1].Pos), 1e-12)
	assert.Equal(t, dynamo.V2(50, 50), bodies[2].Pos)
}
