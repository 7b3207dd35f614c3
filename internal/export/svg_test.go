package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/viz"
)

var bounds = physics.Box{Half: dynamo.V2(100, 50)}

func scene() viz.Scene {
	a := physics.NewBody(3, dynamo.V2(10, 0))
	b := physics.NewBody(5, dynamo.V2(-20, 10))
	return viz.Scene{
		Bodies:        []physics.Body{a.Clone(), b.Clone()},
		TrailCapacity: physics.DefaultTrailCapacity,
	}
}

func TestSceneToSVG(t *testing.T) {
	svg := SceneToSVG(scene(), bounds, 400)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `width="400" height="200"`)
	assert.Contains(t, svg, `viewBox="-100.00 -50.00 200.00 100.00"`)
	assert.Contains(t, svg, `<circle cx="10.00" cy="0.00" r="3.00"/>`)
	assert.Contains(t, svg, `<circle cx="-20.00" cy="10.00" r="5.00"/>`)
	// two bodies and the cursor
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
}

func TestSceneToSVG_Tethers(t *testing.T) {
	s := scene()
	s.Input.Mode = input.Mode{Constrained: true}

	svg := SceneToSVG(s, bounds, 400)
	assert.Contains(t, svg, viz.ConstraintColor.Hex())
	assert.Contains(t, svg, `<circle cx="0.00" cy="0.00" r="10.00"/>`)
	assert.Equal(t, 5, strings.Count(svg, "<circle"))
}

func TestSceneToSVG_EmptyBounds(t *testing.T) {
	assert.Empty(t, SceneToSVG(scene(), physics.Box{}, 400))
	assert.Empty(t, SceneToSVG(scene(), bounds, 0))
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	require.NoError(t, WriteSVG(path, scene(), bounds, 200))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	assert.Error(t, WriteSVG(path, scene(), physics.Box{}, 200))
}
