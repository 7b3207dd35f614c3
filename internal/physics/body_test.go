package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestBody_MassFollowsRadius(t *testing.T) {
	b := NewBody(3, dynamo.V2(0, 0))
	assert.Equal(t, math.Pi*b.Radius()*b.Radius(), b.Mass())

	steps := []float64{0.8, 0.8, -0.8, 12.5, -3.3}
	for _, d := range steps {
		b.Grow(d, DefaultRadiusMin, DefaultRadiusMax)
		assert.Equal(t, math.Pi*b.Radius()*b.Radius(), b.Mass())
	}

	b.SetRadius(7, DefaultRadiusMin, DefaultRadiusMax)
	assert.Equal(t, 7.0, b.Radius())
	assert.Equal(t, math.Pi*b.Radius()*b.Radius(), b.Mass())
}

func TestBody_RadiusClamp(t *testing.T) {
	b := NewBody(3, dynamo.Vec2{})
	for i := 0; i < 100; i++ {
		b.Grow(DefaultResizeStep, DefaultRadiusMin, DefaultRadiusMax)
		require.LessOrEqual(t, b.Radius(), DefaultRadiusMax)
	}
	assert.Equal(t, DefaultRadiusMax, b.Radius())

	for i := 0; i < 100; i++ {
		b.Grow(-DefaultResizeStep, DefaultRadiusMin, DefaultRadiusMax)
		require.GreaterOrEqual(t, b.Radius(), DefaultRadiusMin)
	}
	assert.Equal(t, DefaultRadiusMin, b.Radius())
	assert.Equal(t, math.Pi, b.Mass())
}

func TestBody_ContainsPoint(t *testing.T) {
	b := NewBody(2, dynamo.V2(1, 1))

	tests := []struct {
		name string
		p    dynamo.Vec2
		want bool
	}{
		{"center", dynamo.V2(1, 1), true},
		{"inside", dynamo.V2(2.5, 1), true},
		{"on edge", dynamo.V2(3, 1), false},
		{"outside", dynamo.V2(4, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.ContainsPoint(tt.p))
		})
	}
}

func TestBody_TrailBound(t *testing.T) {
	b := NewBody(3, dynamo.Vec2{})
	for i := 0; i < 57; i++ {
		b.Pos = dynamo.V2(float64(i), 0)
		b.RecordTrail(DefaultTrailCapacity)
		require.LessOrEqual(t, len(b.Trail()), DefaultTrailCapacity)
	}

	trail := b.Trail()
	require.Len(t, trail, DefaultTrailCapacity)
	assert.Equal(t, dynamo.V2(47, 0), trail[0])
	assert.Equal(t, dynamo.V2(56, 0), trail[len(trail)-1])

	b.RecordTrail(0)
	assert.Empty(t, b.Trail())
}

func TestBody_CloneIsIndependent(t *testing.T) {
	b := NewBody(3, dynamo.V2(1, 2))
	b.RecordTrail(4)

	c := b.Clone()
	b.Pos = dynamo.V2(9, 9)
	b.RecordTrail(4)

	assert.Equal(t, dynamo.V2(1, 2), c.Pos)
	assert.Len(t, c.Trail(), 1)
	assert.Equal(t, b.Mass(), c.Mass())
}
