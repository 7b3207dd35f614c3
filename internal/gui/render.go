package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/particles"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/viz"
)

func vec(v dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func color(c viz.RGB, alpha float64) rl.Color {
	return rl.ColorAlpha(rl.NewColor(c.R, c.G, c.B, 255), float32(alpha))
}

// camera maps world units onto the window so that the viewport height
// fills the screen.
func (a *App) camera() rl.Camera2D {
	sw, sh := a.screen()
	return rl.Camera2D{
		Offset: rl.NewVector2(float32(sw/2), float32(sh/2)),
		Target: vec(a.View.Center()),
		Zoom:   float32(a.View.Scale(sh)),
	}
}

func (a *App) drawWorld() {
	cam := a.camera()
	rl.BeginMode2D(cam)

	s := viz.SceneOf(a.World, a.Field)
	a.RenderParticles(s)

	st := s.Input
	if st.Mode.Constrained {
		a.RenderTethers(s.Bodies, st.Pointer.Pos)
	}
	a.RenderTrails(s)
	for _, b := range s.Bodies {
		rl.DrawCircleV(vec(b.Pos), float32(b.Radius()), color(viz.BallColor, 1))
	}
	rl.DrawCircleV(vec(st.Pointer.Pos), viz.CursorRadius, color(viz.CursorColor(st), viz.CursorAlpha))

	lo, hi := physics.MinMax(a.View)
	rect := rl.NewRectangle(float32(lo.X), float32(lo.Y), float32(hi.X-lo.X), float32(hi.Y-lo.Y))
	rl.DrawRectangleLinesEx(rect, 1/cam.Zoom, color(viz.BoundsColor, 1))

	rl.EndMode2D()
}

func (a *App) RenderParticles(s viz.Scene) {
	for _, p := range s.Particles {
		r, g, b, alpha, size := particles.StyleAt(p, s.MaxDepth)
		col := rl.ColorFromNormalized(rl.NewVector4(float32(r), float32(g), float32(b), float32(alpha)))
		rl.DrawCircleV(vec(p.DrawPos()), float32(size), col)
	}
}

// RenderTethers draws the circle each body is held on.
func (a *App) RenderTethers(bodies []physics.Body, anchor dynamo.Vec2) {
	col := color(viz.ConstraintColor, viz.ConstraintAlpha)
	for _, b := range bodies {
		d := float32(b.Pos.Dist(anchor))
		rl.DrawRing(vec(anchor), max(d-0.5, 0), d+0.5, 0, 360, 96, col)
	}
}

func (a *App) RenderTrails(s viz.Scene) {
	for _, b := range s.Bodies {
		for i, p := range b.Trail() {
			c, alpha, scale := viz.TrailStyle(i, s.TrailCapacity)
			rl.DrawCircleV(vec(p), float32(b.Radius()*scale), color(c, alpha))
		}
	}
}
