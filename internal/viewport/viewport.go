// Package viewport maps the window onto world coordinates and provides the
// simulation bounds.
package viewport

import "github.com/san-kum/ballpit/internal/dynamo"

const DefaultHeight = 150.0

// Viewport shows a fixed world height; the width follows the aspect ratio.
type Viewport struct {
	center dynamo.Vec2
	height float64
	aspect float64
}

func New(height, aspect float64) *Viewport {
	if height <= 0 {
		height = DefaultHeight
	}
	if aspect <= 0 {
		aspect = 1
	}
	return &Viewport{height: height, aspect: aspect}
}

// Resize updates the aspect ratio from a window size in pixels.
func (v *Viewport) Resize(pxW, pxH float64) {
	if pxW <= 0 || pxH <= 0 {
		return
	}
	v.aspect = pxW / pxH
}

func (v *Viewport) SetCenter(c dynamo.Vec2) { v.center = c }

func (v *Viewport) Center() dynamo.Vec2 { return v.center }
func (v *Viewport) Height() float64     { return v.height }
func (v *Viewport) Aspect() float64     { return v.aspect }

func (v *Viewport) HalfExtent() dynamo.Vec2 {
	return dynamo.V2(v.aspect, 1).Scale(0.5 * v.height)
}

// Scale returns pixels per world unit for a window pxH pixels tall.
func (v *Viewport) Scale(pxH float64) float64 {
	return pxH / v.height
}

// ScreenToWorld converts a pixel position (origin top-left, y down) in a
// pxW × pxH window to world coordinates. The world y axis also points down.
func (v *Viewport) ScreenToWorld(px dynamo.Vec2, pxW, pxH float64) dynamo.Vec2 {
	mid := dynamo.V2(pxW/2, pxH/2)
	return px.Sub(mid).Div(v.Scale(pxH)).Add(v.center)
}

// WorldToScreen is the inverse of ScreenToWorld.
func (v *Viewport) WorldToScreen(p dynamo.Vec2, pxW, pxH float64) dynamo.Vec2 {
	mid := dynamo.V2(pxW/2, pxH/2)
	return p.Sub(v.center).Scale(v.Scale(pxH)).Add(mid)
}
