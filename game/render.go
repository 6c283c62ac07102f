package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/inspector"
	"github.com/pthm-cable/flocking/systems"
	"github.com/pthm-cable/flocking/telemetry"
	"github.com/pthm-cable/flocking/ui"
)

var (
	radiusSeparation = rl.Color{R: 255, G: 200, B: 80, A: 90}
	radiusFlock      = rl.Color{R: 100, G: 200, B: 255, A: 70}
	radiusThreat     = rl.Color{R: 255, G: 90, B: 90, A: 70}
)

// Draw renders the last completed tick and the UI.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	defer rl.EndDrawing()

	views := g.Snapshot()

	g.frameTimer.measure("background", g.drawBackground)

	g.frameTimer.measure("creatures", func() {
		if g.overlays.IsEnabled(ui.OverlayCaptureRings) {
			g.effects.Draw(g.camera)
		}
		g.flockRenderer.ShowPursuit = g.overlays.IsEnabled(ui.OverlayPursuit)
		var targets map[uint32]geom.Vec2
		if g.flockRenderer.ShowPursuit {
			targets = g.pursuitTargets(views)
		}
		g.flockRenderer.Draw(g.camera, views, targets)
	})

	g.frameTimer.measure("inspector", g.drawInspector)
	g.frameTimer.measure("ui", g.drawUI)
}

func (g *Game) drawBackground() {
	g.background.Draw(g.camera)
	if !g.overlays.IsEnabled(ui.OverlaySpatialGrid) {
		return
	}
	cell := g.params.GridCellSize
	if cell <= 0 {
		cell = g.params.Thresholds.FlockRadius
	}
	w, h := systems.NewSpatialGrid(g.bounds, cell).CellSize()
	g.background.DrawGrid(g.camera, w, h)
}

// pursuitTargets maps each predator with a target to that prey's position.
func (g *Game) pursuitTargets(views []systems.View) map[uint32]geom.Vec2 {
	pos := make(map[uint32]geom.Vec2, len(views))
	for _, v := range views {
		if v.Kind == systems.KindPrey {
			pos[v.ID] = v.Pos
		}
	}

	targets := make(map[uint32]geom.Vec2)
	query := g.creatureFilter.Query()
	for query.Next() {
		_, _, _, org, pursuit := query.Get()
		if !pursuit.HasTarget {
			continue
		}
		if p, ok := pos[pursuit.TargetID]; ok {
			targets[org.ID] = p
		}
	}
	return targets
}

func (g *Game) drawInspector() {
	id, ok := g.inspector.Selected()
	if !ok {
		return
	}
	e, alive := g.entities[id]
	if !alive {
		g.inspector.Deselect()
		return
	}

	pos := g.posMap.Get(e)
	org := g.orgMap.Get(e)
	p := geom.Vec2{X: pos.X, Y: pos.Y}

	size := g.flockRenderer.Style.PreySize
	var radii []inspector.Radius
	if g.overlays.IsEnabled(ui.OverlayRadii) {
		th := g.params.Thresholds
		if org.Kind == systems.KindPredator {
			size = g.flockRenderer.Style.PredatorSize
			radii = []inspector.Radius{
				{R: th.KillDistance, Color: radiusThreat},
				{R: th.PursuitRadius, Color: radiusFlock},
			}
		} else {
			radii = []inspector.Radius{
				{R: th.MinSeparation, Color: radiusSeparation},
				{R: th.FlockRadius, Color: radiusFlock},
				{R: th.PredatorSightRadius, Color: radiusThreat},
			}
		}
	}
	g.inspector.DrawSelectionHighlight(g.camera, p, size, radii...)

	comps := []any{pos, g.rotMap.Get(e), g.motionMap.Get(e), org}
	if org.Kind == systems.KindPredator {
		comps = append(comps, g.pursuitMap.Get(e))
	}
	g.inspector.Draw(comps...)
}

func (g *Game) drawUI() {
	actions := g.controls.Draw(g.cfg, g.paused)
	if actions.Changed {
		g.ApplyConfig()
	}
	if actions.TogglePause {
		g.TogglePause()
	}
	if actions.Launch {
		g.Relaunch(g.cfg.Prey.Count, g.cfg.Predator.Count)
	}

	screenH := int32(g.screenHeight)
	g.hud.Draw(10, screenH-90, ui.HUDData{
		Tick:      g.tick,
		Prey:      g.numPrey,
		Predators: g.numPred,
		Captures:  g.totalCaptures,
		TickDelay: time.Duration(g.cfg.Sim.TickDelayMS) * time.Millisecond,
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
		Manual:    g.hasControlled(),
	})

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.drawPerfPanel()
	}
	g.hud.DrawControls(screenH, g.overlays)
}

func (g *Game) drawPerfPanel() {
	if g.controls.IsVisible() {
		g.perfPanel.SetPosition(280, 10)
	} else {
		g.perfPanel.SetPosition(10, 10)
	}

	stats := g.perfCollector.Stats()
	tickRows := make([]ui.PhaseTime, 0, len(telemetry.Phases))
	for _, ps := range stats.Phases {
		tickRows = append(tickRows, ui.PhaseTime{Name: ps.Phase.String(), Avg: ps.Avg})
	}
	g.perfPanel.Draw(ui.PerfPanelData{
		Phases:      tickRows,
		Render:      g.frameTimer.rows(),
		TickAvg:     stats.AvgTick,
		TicksPerSec: stats.TicksPerSecond,
	})
}

// hasControlled reports whether the keyboard-driven prey is still alive.
func (g *Game) hasControlled() bool {
	for _, e := range g.entities {
		if g.orgMap.Get(e).Controlled {
			return true
		}
	}
	return false
}
