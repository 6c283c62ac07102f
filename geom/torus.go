package geom

import "math"

// Bounds defines the torus: both edges wrap to the opposite side.
type Bounds struct {
	Width, Height float64
}

// Wrap reduces p into [0,Width) x [0,Height).
func (b Bounds) Wrap(p Vec2) Vec2 {
	return Vec2{wrapAxis(p.X, b.Width), wrapAxis(p.Y, b.Height)}
}

// Contains reports whether p already lies inside the torus.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// ShortestDelta returns the minimal displacement from a to b across the wrap.
// ShortestDelta(a, b) == -ShortestDelta(b, a).
func (b Bounds) ShortestDelta(from, to Vec2) Vec2 {
	return Vec2{deltaAxis(to.X-from.X, b.Width), deltaAxis(to.Y-from.Y, b.Height)}
}

// Distance returns the length of the shortest displacement between a and b.
func (b Bounds) Distance(from, to Vec2) float64 {
	return b.ShortestDelta(from, to).Length()
}

// Center returns the middle of the torus.
func (b Bounds) Center() Vec2 {
	return Vec2{b.Width / 2, b.Height / 2}
}

func wrapAxis(v, size float64) float64 {
	m := math.Mod(v, size)
	if m < 0 {
		m += size
	}
	// m+size can round up to size for tiny negative inputs
	if m >= size {
		m = 0
	}
	return m
}

func deltaAxis(d, size float64) float64 {
	half := size / 2
	if d > half {
		d -= size
	} else if d < -half {
		d += size
	}
	return d
}
