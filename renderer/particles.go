package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flocking/camera"
	"github.com/pthm-cable/flocking/geom"
)

// captureRing is one fading marker at a capture site.
type captureRing struct {
	Pos     geom.Vec2
	Life    int32
	MaxLife int32
}

// CaptureEffects renders expanding rings where prey were taken.
type CaptureEffects struct {
	rings   []captureRing
	maxLife int32
	color   rl.Color
}

// NewCaptureEffects creates an effect list whose rings last maxLife frames.
func NewCaptureEffects(maxLife int32) *CaptureEffects {
	return &CaptureEffects{
		maxLife: max(maxLife, 1),
		color:   rl.Color{R: 255, G: 120, B: 80, A: 255},
	}
}

// Add starts a ring at pos.
func (e *CaptureEffects) Add(pos geom.Vec2) {
	e.rings = append(e.rings, captureRing{Pos: pos, Life: e.maxLife, MaxLife: e.maxLife})
}

// Update ages every ring by one frame and drops expired ones.
func (e *CaptureEffects) Update() {
	kept := e.rings[:0]
	for _, r := range e.rings {
		r.Life--
		if r.Life > 0 {
			kept = append(kept, r)
		}
	}
	e.rings = kept
}

// Len returns the number of live rings.
func (e *CaptureEffects) Len() int {
	return len(e.rings)
}

// Clear removes all rings.
func (e *CaptureEffects) Clear() {
	e.rings = e.rings[:0]
}

// Draw renders all rings.
func (e *CaptureEffects) Draw(cam *camera.Camera) {
	for i := range e.rings {
		r := &e.rings[i]

		// Calculate life ratio for fade
		lifeRatio := float32(r.Life) / float32(r.MaxLife)
		radius := (4 + 16*(1-lifeRatio)) * float32(cam.Zoom)
		if !cam.IsVisible(r.Pos, float64(radius)) {
			continue
		}

		color := e.color
		color.A = uint8(lifeRatio * 200)
		rl.DrawCircleLinesV(toRL(cam.WorldToScreen(r.Pos)), radius, color)
	}
}
