package densitymesh

import "math"

// Vector2 is a 2D point or direction in scaled field coordinates.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec2 creates a new vector.
func Vec2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Mul(s float64) Vector2 { return Vector2{v.X * s, v.Y * s} }
func (v Vector2) Div(s float64) Vector2 { return Vector2{v.X / s, v.Y / s} }
func (v Vector2) Neg() Vector2          { return Vector2{-v.X, -v.Y} }

// Dot returns the dot product of two vectors.
func (v Vector2) Dot(o Vector2) float64 { return v.X*o.X + v.Y*o.Y }

// Right returns the right-perpendicular of the vector:
//
//	     ^
//	   v |
//	     *---> right
func (v Vector2) Right() Vector2 { return Vector2{v.Y, -v.X} }

// SqrMagnitude returns the squared length of the vector.
func (v Vector2) SqrMagnitude() float64 { return v.X*v.X + v.Y*v.Y }

// Magnitude returns the length of the vector.
func (v Vector2) Magnitude() float64 { return math.Sqrt(v.SqrMagnitude()) }

// Normalized returns a unit-length vector, or the zero vector when the
// length is too small to divide by.
func (v Vector2) Normalized() Vector2 {
	m := v.Magnitude()
	if m < 1e-12 {
		return Vector2{}
	}
	return v.Div(m)
}
