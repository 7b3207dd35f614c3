package viz

import (
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/particles"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viewport"
)

// CursorRadius is the radius of the cursor disc in world units.
const CursorRadius = 5.0

// Particles deeper than this are too faint to show on a braille canvas.
const brailleParticleDepth = 1.0

// Scene is the drawable state of one frame.
type Scene struct {
	Bodies        []physics.Body
	Input         input.State
	TrailCapacity int
	Particles     []particles.Particle
	MaxDepth      float64
}

// SceneOf captures w and, when non-nil, field.
func SceneOf(w *sim.World, field *particles.Field) Scene {
	s := Scene{
		Bodies:        w.Snapshot(),
		Input:         w.Input(),
		TrailCapacity: w.Params().TrailCapacity,
	}
	if field != nil {
		s.Particles = field.Particles()
		s.MaxDepth = field.MaxDepth()
	}
	return s
}

// DrawScene clears c and draws s as seen through view.
func (c *Canvas) DrawScene(view *viewport.Viewport, s Scene) {
	c.Clear()

	cw, ch := c.Size()
	fw, fh := float64(cw), float64(ch)
	scale := view.Scale(fh)
	px := func(p dynamo.Vec2) dynamo.Vec2 { return view.WorldToScreen(p, fw, fh) }

	c.Rect(0, 0, cw-1, ch-1)

	for _, p := range s.Particles {
		if p.Depth > brailleParticleDepth {
			continue
		}
		q := px(p.DrawPos())
		c.Set(int(q.X), int(q.Y))
	}

	cursor := px(s.Input.Pointer.Pos)
	if s.Input.Mode.Constrained {
		for _, b := range s.Bodies {
			c.Circle(cursor.X, cursor.Y, b.Pos.Dist(s.Input.Pointer.Pos)*scale)
		}
	}

	for _, b := range s.Bodies {
		for i, p := range b.Trail() {
			// older entries vanish at braille resolution
			if i < s.TrailCapacity/2 {
				continue
			}
			q := px(p)
			c.Set(int(q.X), int(q.Y))
		}
	}

	for _, b := range s.Bodies {
		q := px(b.Pos)
		c.Disc(q.X, q.Y, b.Radius()*scale)
	}

	c.Circle(cursor.X, cursor.Y, CursorRadius*scale)
}
