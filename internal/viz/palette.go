package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/ballpit/internal/input"
)

// RGB is an 8-bit colour shared by the frontends.
type RGB struct {
	R, G, B uint8
}

func rgb(r, g, b float64) RGB {
	return RGB{channel(r), channel(g), channel(b)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	BallColor       = RGB{255, 255, 255}
	ConstraintColor = RGB{200, 200, 255}
	BoundsColor     = RGB{60, 60, 80}
)

// ConstraintAlpha is the opacity of constraint circles.
const ConstraintAlpha = 0.2

// CursorAlpha is the opacity of the cursor disc.
const CursorAlpha = 0.3

// TrailStyle returns the colour, opacity and radius scale of trail entry i
// of a trail with the given capacity. Older entries are darker, smaller and
// more transparent.
func TrailStyle(i, capacity int) (c RGB, alpha, scale float64) {
	if capacity <= 0 {
		return RGB{}, 0, 0
	}
	t := float64(i) / float64(capacity)
	t3 := t * t * t
	c = rgb(t3, 0.4+0.3*t3, 0.5+0.3*t)
	return c, t3, 0.8 + 0.2*t
}

// CursorColor picks the cursor colour from the button and mode state.
// A held button wins, then fixed, constrained, pushing and pulling.
func CursorColor(s input.State) RGB {
	m := s.Mode
	switch {
	case s.Pointer.Down || s.Pointer.RightDown:
		return RGB{255, 240, 240}
	case m.Fixed:
		return RGB{20, 20, 20}
	case m.Constrained:
		return RGB{20, 50, 255}
	case m.Pushing:
		return RGB{200, 50, 20}
	case m.Pulling:
		return RGB{20, 0, 250}
	}
	return RGB{50, 80, 80}
}

// ModeLabel is a short description of the active modes.
func ModeLabel(m input.Mode) string {
	label := ""
	add := func(s string) {
		if label != "" {
			label += "+"
		}
		label += s
	}
	if m.Fixed {
		add("fixed")
	}
	if m.Constrained {
		add("constrained")
	}
	if m.Pulling {
		add("pulling")
	}
	if m.Pushing {
		add("pushing")
	}
	if label == "" {
		return "free"
	}
	return label
}
