// Package renderer draws the simulation with raylib. It only reads
// completed-tick state; nothing here mutates the world.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flocking/camera"
	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
)

// Style holds creature colors and sizes in world units.
type Style struct {
	Prey       rl.Color
	Controlled rl.Color
	Predator   rl.Color
	Outline    rl.Color
	Pursuit    rl.Color

	PreySize     float64
	PredatorSize float64
}

// DefaultStyle matches the original palette: light prey, red predators,
// and a highlighted controllable prey.
func DefaultStyle() Style {
	return Style{
		Prey:         rl.Color{R: 200, G: 220, B: 255, A: 255},
		Controlled:   rl.Color{R: 255, G: 210, B: 60, A: 255},
		Predator:     rl.Color{R: 230, G: 60, B: 50, A: 255},
		Outline:      rl.Color{R: 255, G: 255, B: 255, A: 90},
		Pursuit:      rl.Color{R: 230, G: 60, B: 50, A: 60},
		PreySize:     6,
		PredatorSize: 9,
	}
}

// FlockRenderer draws creatures as oriented triangles.
type FlockRenderer struct {
	Style Style

	// ShowPursuit draws a faint line from each predator to its target.
	ShowPursuit bool
}

// NewFlockRenderer creates a renderer with the default style.
func NewFlockRenderer() *FlockRenderer {
	return &FlockRenderer{Style: DefaultStyle()}
}

// Draw renders every view, plus ghost copies of creatures straddling the
// edge of the visible area. targets maps predator ID to the pursued prey
// position and may be nil.
func (r *FlockRenderer) Draw(cam *camera.Camera, views []systems.View, targets map[uint32]geom.Vec2) {
	for i := range views {
		v := &views[i]
		size := r.size(v.Kind)
		if !cam.IsVisible(v.Pos, size*1.5) {
			continue
		}
		color := r.color(v)
		radius := size * cam.Zoom

		if r.ShowPursuit && v.Kind == systems.KindPredator {
			if t, ok := targets[v.ID]; ok {
				from := cam.WorldToScreen(v.Pos)
				to := cam.WorldToScreen(t)
				// Skip lines that would cross the whole screen through the wrap
				if math.Abs(from.X-to.X) < cam.ViewportW/2 && math.Abs(from.Y-to.Y) < cam.ViewportH/2 {
					rl.DrawLineV(toRL(from), toRL(to), r.Style.Pursuit)
				}
			}
		}

		drawOrientedTriangle(cam.WorldToScreen(v.Pos), v.Heading, radius, color, r.Style.Outline)
		for _, ghost := range cam.GhostPositions(v.Pos, size*1.5) {
			drawOrientedTriangle(ghost, v.Heading, radius, color, r.Style.Outline)
		}
	}
}

func (r *FlockRenderer) size(k systems.Kind) float64 {
	if k == systems.KindPredator {
		return r.Style.PredatorSize
	}
	return r.Style.PreySize
}

func (r *FlockRenderer) color(v *systems.View) rl.Color {
	switch {
	case v.Kind == systems.KindPredator:
		return r.Style.Predator
	case v.Controlled:
		return r.Style.Controlled
	default:
		return r.Style.Prey
	}
}

// drawOrientedTriangle draws a triangle at screen position p pointing along heading.
func drawOrientedTriangle(p geom.Vec2, heading, radius float64, fill, outline rl.Color) {
	front := p.Add(geom.Direction(heading).Scale(radius * 1.5))
	backLeft := p.Add(geom.Direction(heading + math.Pi*0.8).Scale(radius))
	backRight := p.Add(geom.Direction(heading - math.Pi*0.8).Scale(radius))

	v1, v2, v3 := toRL(front), toRL(backLeft), toRL(backRight)

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, fill)
	rl.DrawTriangleLines(v1, v2, v3, outline)
}

func toRL(v geom.Vec2) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
