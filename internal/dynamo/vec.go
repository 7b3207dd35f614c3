package dynamo

import "math"

// Eta is a quarter turn in radians.
const Eta = math.Pi / 2

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Rot2 returns the unit vector (cos θ, sin θ). Multiplying by it with CMul
// rotates a vector by θ.
func Rot2(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{X: c, Y: s}
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

func (a Vec2) Div(s float64) Vec2 {
	return Vec2{a.X / s, a.Y / s}
}

func (a Vec2) Neg() Vec2 {
	return Vec2{-a.X, -a.Y}
}

// Mul returns the component-wise product.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// CMul returns the complex product of a and b.
func (a Vec2) CMul(b Vec2) Vec2 {
	return Vec2{a.X*b.X - a.Y*b.Y, a.X*b.Y + a.Y*b.X}
}

func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func (a Vec2) Len2() float64 {
	return a.X*a.X + a.Y*a.Y
}

func (a Vec2) Len() float64 {
	return math.Sqrt(a.Len2())
}

func (a Vec2) Dist(b Vec2) float64 {
	return b.Sub(a).Len()
}

// Normalize returns a/|a|. The result is non-finite when a is zero.
func (a Vec2) Normalize() Vec2 {
	return a.Div(a.Len())
}

// NormalizeOr returns a/|a|, or fallback when that is not finite.
func (a Vec2) NormalizeOr(fallback Vec2) Vec2 {
	n := a.Normalize()
	if !n.IsFinite() {
		return fallback
	}
	return n
}

func (a Vec2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) && !math.IsNaN(a.Y) && !math.IsInf(a.Y, 0)
}

// Rotate rotates the vector by theta radians.
func (a Vec2) Rotate(theta float64) Vec2 {
	return a.CMul(Rot2(theta))
}

// Lerp moves a toward b by factor t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{
		a.X*(1-t) + b.X*t,
		a.Y*(1-t) + b.Y*t,
	}
}

// Damp is a framerate independent Lerp toward b at rate lambda.
func (a Vec2) Damp(b Vec2, lambda, dt float64) Vec2 {
	return a.Lerp(b, 1-math.Exp(-lambda*dt))
}

// Project keeps the component of a parallel to dir.
func (a Vec2) Project(dir Vec2) Vec2 {
	d2 := dir.Len2()
	if d2 == 0 {
		return Vec2{}
	}
	return dir.Scale(a.Dot(dir) / d2)
}

// Reject keeps the component of a perpendicular to dir.
func (a Vec2) Reject(dir Vec2) Vec2 {
	return a.Sub(a.Project(dir))
}
