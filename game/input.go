package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
)

// handleInput processes keyboard and mouse input and returns the manual
// steering command held this frame.
func (g *Game) handleInput() systems.Command {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Relaunch(g.cfg.Prey.Count, g.cfg.Predator.Count)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.SaveSnapshot()
	}

	if key := rl.GetKeyPressed(); key != 0 {
		g.overlays.HandleKeyPress(key)
	}

	g.handleCameraInput()

	mouse := rl.GetMousePosition()
	if !g.controls.Contains(mouse.X, mouse.Y) {
		g.inspector.HandleInput(mouse.X, mouse.Y, g.camera, g.Snapshot(), g.flockRenderer.Style.PredatorSize)
	}

	return readCommand()
}

// readCommand maps the held steering keys to a command. Holding both
// directions cancels out.
func readCommand() systems.Command {
	left := rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft)
	right := rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight)
	switch {
	case left && !right:
		return systems.CommandTurnLeft
	case right && !left:
		return systems.CommandTurnRight
	default:
		return systems.CommandNone
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.inspector.Resize(int32(w), int32(h))
}

// handleCameraInput processes camera pan/zoom controls. Arrow keys steer
// the controllable prey, so panning is on the right mouse button.
func (g *Game) handleCameraInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-float64(d.X), -float64(d.Y))
		g.following = false
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.following = !g.following
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.following = false
		g.camera.Reset()
	}

	if g.following {
		if p, ok := g.followTarget(); ok {
			g.camera.Follow(p)
		}
	}
}

// followTarget returns the position the camera should track: the
// inspected creature, else the controllable prey.
func (g *Game) followTarget() (geom.Vec2, bool) {
	selected, hasSelected := g.inspector.Selected()
	var controlled *systems.View
	views := g.Snapshot()
	for i := range views {
		v := &views[i]
		if hasSelected && v.ID == selected {
			return v.Pos, true
		}
		if v.Controlled && controlled == nil {
			controlled = v
		}
	}
	if controlled != nil {
		return controlled.Pos, true
	}
	return geom.Vec2{}, false
}
