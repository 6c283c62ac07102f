package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flocking/camera"
	"github.com/pthm-cable/flocking/geom"
)

// BackgroundRenderer draws the world backdrop and optional debug overlays:
// the seam of the torus, the spatial grid and perception radii.
type BackgroundRenderer struct {
	Base rl.Color
	Seam rl.Color
	Grid rl.Color
}

// NewBackgroundRenderer creates a renderer with the given base color.
func NewBackgroundRenderer(baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		Base: rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
		Seam: rl.Color{R: 255, G: 255, B: 255, A: 40},
		Grid: rl.Color{R: 120, G: 160, B: 255, A: 30},
	}
}

// Draw clears the screen and marks where the world wraps.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(b.Base)
	b.drawLines(cam, cam.World.Width, cam.World.Height, b.Seam)
}

// DrawGrid overlays spatial grid cell boundaries of the given size.
func (b *BackgroundRenderer) DrawGrid(cam *camera.Camera, cellW, cellH float64) {
	if cellW <= 0 || cellH <= 0 || cellW*cam.Zoom < 4 || cellH*cam.Zoom < 4 {
		return
	}
	b.drawLines(cam, cellW, cellH, b.Grid)
}

// drawLines draws vertical lines at world x multiples of stepX and
// horizontal lines at multiples of stepY across the visible area.
func (b *BackgroundRenderer) drawLines(cam *camera.Camera, stepX, stepY float64, color rl.Color) {
	halfW := cam.ViewportW / (2 * cam.Zoom)
	halfH := cam.ViewportH / (2 * cam.Zoom)

	// Unwrapped world coordinates of the view edges
	left, right := cam.Center.X-halfW, cam.Center.X+halfW
	top, bottom := cam.Center.Y-halfH, cam.Center.Y+halfH

	for x := math.Ceil(left/stepX) * stepX; x <= right; x += stepX {
		sx := float32(cam.ViewportW/2 + (x-cam.Center.X)*cam.Zoom)
		rl.DrawLineV(rl.Vector2{X: sx, Y: 0}, rl.Vector2{X: sx, Y: float32(cam.ViewportH)}, color)
	}
	for y := math.Ceil(top/stepY) * stepY; y <= bottom; y += stepY {
		sy := float32(cam.ViewportH/2 + (y-cam.Center.Y)*cam.Zoom)
		rl.DrawLineV(rl.Vector2{X: 0, Y: sy}, rl.Vector2{X: float32(cam.ViewportW), Y: sy}, color)
	}
}

// DrawRadius outlines a perception radius around a world position.
func DrawRadius(cam *camera.Camera, center geom.Vec2, radius float64, color rl.Color) {
	if radius <= 0 {
		return
	}
	s := cam.WorldToScreen(center)
	rl.DrawCircleLinesV(toRL(s), float32(radius*cam.Zoom), color)
}
