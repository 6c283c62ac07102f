// Package inspector shows the ECS components of one selected creature.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flocking/camera"
	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
)

// Panel dimensions
const (
	PanelWidth    = 280
	PanelPadding  = 10
	HeaderHeight  = 30
	SectionHeight = 20
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorHighlight   = rl.Yellow
)

// clickTolerance is the extra pick distance in screen pixels.
const clickTolerance = 5.0

// Radius is a perception circle drawn around the selected creature.
type Radius struct {
	R     float64
	Color rl.Color
}

// Inspector manages creature selection and panel rendering.
// Selection is by creature ID so it survives ECS storage moves.
type Inspector struct {
	selectedID  uint32
	hasSelected bool

	panelX, panelY            int32
	screenWidth, screenHeight int32
}

// NewInspector creates a new inspector anchored to the top right.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{panelY: 10}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize re-anchors the panel after a window resize.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
}

// Selected returns the selected creature ID.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selectedID, ins.hasSelected
}

// Select marks id as selected.
func (ins *Inspector) Select(id uint32) {
	ins.selectedID = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Forget deselects id if it is the current selection (e.g. after capture).
func (ins *Inspector) Forget(id uint32) {
	if ins.hasSelected && ins.selectedID == id {
		ins.Deselect()
	}
}

// Pick returns the creature nearest to the world point p within hitRadius,
// measured on the torus. Ties go to the lowest ID.
func Pick(views []systems.View, p geom.Vec2, b geom.Bounds, hitRadius float64) (uint32, bool) {
	var bestID uint32
	bestSq := math.Inf(1)
	found := false
	for i := range views {
		dsq := b.ShortestDelta(p, views[i].Pos).LengthSq()
		if dsq >= hitRadius*hitRadius {
			continue
		}
		if dsq < bestSq || (dsq == bestSq && views[i].ID < bestID) {
			bestID = views[i].ID
			bestSq = dsq
			found = true
		}
	}
	return bestID, found
}

// HandleInput processes click detection for creature selection.
// It reports whether the click was consumed by the panel or a selection.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, cam *camera.Camera, views []systems.View, size float64) bool {
	if rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return false
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return true
		}

		// Clicks inside the panel are ignored
		if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
			int32(mouseY) >= ins.panelY {
			return true
		}
	}

	world := cam.ScreenToWorld(geom.Vec2{X: float64(mouseX), Y: float64(mouseY)})
	hit := size + clickTolerance/cam.Zoom
	if id, ok := Pick(views, world, cam.World, hit); ok {
		ins.Select(id)
		return true
	}
	return false
}

// Draw renders one section per component of the selected creature.
// Nil components are skipped.
func (ins *Inspector) Draw(comps ...any) {
	if !ins.hasSelected {
		return
	}

	sections := make([][]Field, 0, len(comps))
	names := make([]string, 0, len(comps))
	height := int32(HeaderHeight + PanelPadding*2)
	for _, c := range comps {
		fields := ExtractFields(c)
		if fields == nil {
			continue
		}
		sections = append(sections, fields)
		names = append(names, ComponentName(c))
		height += SectionHeight + 4
		for _, f := range fields {
			height += FieldHeight(f)
		}
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("INSPECTOR #%d", ins.selectedID), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for i, fields := range sections {
		ins.drawSectionHeader(x, y, names[i])
		y += SectionHeight + 4
		for _, f := range fields {
			y += DrawField(x, y, f)
		}
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// DrawSelectionHighlight circles the selected creature at world position p
// and outlines its perception radii.
func (ins *Inspector) DrawSelectionHighlight(cam *camera.Camera, p geom.Vec2, size float64, radii ...Radius) {
	if !ins.hasSelected {
		return
	}

	s := cam.WorldToScreen(p)
	center := rl.Vector2{X: float32(s.X), Y: float32(s.Y)}
	rl.DrawCircleLinesV(center, float32(size*1.8*cam.Zoom), ColorHighlight)

	for _, r := range radii {
		if r.R <= 0 {
			continue
		}
		rl.DrawCircleLinesV(center, float32(r.R*cam.Zoom), r.Color)
	}
}
