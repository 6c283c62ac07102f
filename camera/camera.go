// Package camera provides a 2D camera system for viewport control.
package camera

import (
	"math"

	"github.com/pthm-cable/flocking/geom"
)

// Camera controls the viewport into the simulation world.
// Supports pan and zoom with toroidal world wrapping.
type Camera struct {
	// Center is the camera position in world coordinates
	Center geom.Vec2

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// World is the torus being viewed
	World geom.Bounds

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the world with 1:1 zoom.
func New(viewportW, viewportH float64, world geom.Bounds) *Camera {
	c := &Camera{
		Center:    world.Center(),
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		World:     world,
		MaxZoom:   4.0,
	}
	c.MinZoom = c.fitZoom()
	return c
}

// fitZoom is the smallest zoom at which the viewport never shows more than
// one copy of the world.
func (c *Camera) fitZoom() float64 {
	return math.Max(c.ViewportW/c.World.Width, c.ViewportH/c.World.Height)
}

// WorldToScreen converts a world position to screen coordinates using the
// shortest toroidal path from the camera center.
func (c *Camera) WorldToScreen(p geom.Vec2) geom.Vec2 {
	d := c.World.ShortestDelta(c.Center, p)
	return c.offsetToScreen(d)
}

func (c *Camera) offsetToScreen(d geom.Vec2) geom.Vec2 {
	return geom.Vec2{
		X: c.ViewportW/2 + d.X*c.Zoom,
		Y: c.ViewportH/2 + d.Y*c.Zoom,
	}
}

// ScreenToWorld converts screen coordinates to a wrapped world position.
func (c *Camera) ScreenToWorld(s geom.Vec2) geom.Vec2 {
	d := geom.Vec2{
		X: (s.X - c.ViewportW/2) / c.Zoom,
		Y: (s.Y - c.ViewportH/2) / c.Zoom,
	}
	return c.World.Wrap(c.Center.Add(d))
}

// IsVisible returns true if a circle at p with the given radius could be
// visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p geom.Vec2, radius float64) bool {
	d := c.World.ShortestDelta(c.Center, p)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(d.X) <= halfW && math.Abs(d.Y) <= halfH
}

// GhostPositions returns extra screen positions for a creature straddling
// the edge of the view, so it appears on both sides while wrapping.
// Returns at most 3 positions.
func (c *Camera) GhostPositions(p geom.Vec2, radius float64) []geom.Vec2 {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	d := c.World.ShortestDelta(c.Center, p)

	var shiftX, shiftY float64
	switch {
	case d.X > halfW-radius && d.X < halfW+radius:
		shiftX = -c.World.Width
	case d.X < -halfW+radius && d.X > -halfW-radius:
		shiftX = c.World.Width
	}
	switch {
	case d.Y > halfH-radius && d.Y < halfH+radius:
		shiftY = -c.World.Height
	case d.Y < -halfH+radius && d.Y > -halfH-radius:
		shiftY = c.World.Height
	}

	var ghosts []geom.Vec2
	if shiftX != 0 {
		ghosts = append(ghosts, c.offsetToScreen(geom.Vec2{X: d.X + shiftX, Y: d.Y}))
	}
	if shiftY != 0 {
		ghosts = append(ghosts, c.offsetToScreen(geom.Vec2{X: d.X, Y: d.Y + shiftY}))
	}
	if shiftX != 0 && shiftY != 0 {
		ghosts = append(ghosts, c.offsetToScreen(geom.Vec2{X: d.X + shiftX, Y: d.Y + shiftY}))
	}
	return ghosts
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center = c.World.Wrap(geom.Vec2{X: c.Center.X + dx/c.Zoom, Y: c.Center.Y + dy/c.Zoom})
}

// Follow recenters the camera on p.
func (c *Camera) Follow(p geom.Vec2) {
	c.Center = c.World.Wrap(p)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = geom.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.Center = c.World.Center()
	c.SetZoom(1.0)
}
