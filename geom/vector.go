// Package geom provides 2D vector math and toroidal world helpers.
package geom

import "math"

// Vec2 is a position or displacement on the plane.
// All methods return new values.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LengthSq returns the squared length (avoids sqrt in hot paths).
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the Euclidean length.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// zeroEpsilon is the length below which a vector has no usable direction.
const zeroEpsilon = 1e-12

// IsZero reports whether v is too short to carry a direction.
func (v Vec2) IsZero() bool {
	return v.LengthSq() < zeroEpsilon*zeroEpsilon
}

// Unit returns v scaled to length 1, or the zero vector if v has no direction.
func (v Vec2) Unit() Vec2 {
	if v.IsZero() {
		return Vec2{}
	}
	l := v.Length()
	return Vec2{v.X / l, v.Y / l}
}

// Direction returns the unit vector pointing along angle.
func Direction(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{c, s}
}

// AngleOf returns the angle of v in (-Pi, Pi].
func AngleOf(v Vec2) float64 {
	return NormalizeAngle(math.Atan2(v.Y, v.X))
}

// NormalizeAngle wraps an angle to (-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	r := math.Remainder(a, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// SignedAngleDiff returns the smallest signed rotation taking from to to,
// in (-Pi, Pi].
func SignedAngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
