package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/ballpit/internal/particles"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/viz"
)

const background = "#0a0a0a"

// SceneToSVG renders s in world coordinates. The image covers bounds and is
// width pixels wide; the height follows the aspect ratio of bounds.
func SceneToSVG(s viz.Scene, bounds physics.Bounds, width int) string {
	lo, hi := physics.MinMax(bounds)
	size := hi.Sub(lo)
	if size.X <= 0 || size.Y <= 0 || width <= 0 {
		return ""
	}
	height := int(float64(width) * size.Y / size.X)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%.2f %.2f %.2f %.2f">
<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, width, height, lo.X, lo.Y, size.X, size.Y, lo.X, lo.Y, size.X, size.Y, background))

	sb.WriteString("<g>\n")
	for _, p := range s.Particles {
		r, g, b, alpha, sz := particles.StyleAt(p, s.MaxDepth)
		pos := p.DrawPos()
		circle(&sb, pos.X, pos.Y, sz, fmt.Sprintf(`fill="rgb(%.0f,%.0f,%.0f)" fill-opacity="%.3f"`, 255*r, 255*g, 255*b, alpha))
	}
	sb.WriteString("</g>\n")

	anchor := s.Input.Pointer.Pos
	if s.Input.Mode.Constrained {
		sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-opacity="%.2f">`+"\n", viz.ConstraintColor.Hex(), viz.ConstraintAlpha))
		for _, b := range s.Bodies {
			circle(&sb, anchor.X, anchor.Y, b.Pos.Dist(anchor), "")
		}
		sb.WriteString("</g>\n")
	}

	for _, b := range s.Bodies {
		for i, p := range b.Trail() {
			c, alpha, scale := viz.TrailStyle(i, s.TrailCapacity)
			circle(&sb, p.X, p.Y, b.Radius()*scale, fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, c.Hex(), alpha))
		}
	}

	sb.WriteString(fmt.Sprintf(`<g fill="%s">`+"\n", viz.BallColor.Hex()))
	for _, b := range s.Bodies {
		circle(&sb, b.Pos.X, b.Pos.Y, b.Radius(), "")
	}
	sb.WriteString("</g>\n")

	circle(&sb, anchor.X, anchor.Y, viz.CursorRadius,
		fmt.Sprintf(`fill="%s" fill-opacity="%.2f"`, viz.CursorColor(s.Input).Hex(), viz.CursorAlpha))

	sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s"/>`+"\n",
		lo.X, lo.Y, size.X, size.Y, viz.BoundsColor.Hex()))

	sb.WriteString("</svg>")
	return sb.String()
}

func circle(sb *strings.Builder, x, y, r float64, attrs string) {
	if attrs != "" {
		attrs = " " + attrs
	}
	sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n", x, y, r, attrs))
}

// WriteSVG renders s and writes it to path.
func WriteSVG(path string, s viz.Scene, bounds physics.Bounds, width int) error {
	svg := SceneToSVG(s, bounds, width)
	if svg == "" {
		return fmt.Errorf("empty image for bounds %v", bounds.HalfExtent())
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
