// Package geom provides 2D geometry types for map and viewport math.
package geom

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// V is shorthand for constructing a Vec2.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Min returns the component-wise minimum of v and other.
func (v Vec2) Min(other Vec2) Vec2 {
	return Vec2{minf(v.X, other.X), minf(v.Y, other.Y)}
}

// Max returns the component-wise maximum of v and other.
func (v Vec2) Max(other Vec2) Vec2 {
	return Vec2{maxf(v.X, other.X), maxf(v.Y, other.Y)}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
