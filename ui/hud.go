package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick      int32
	Prey      int
	Predators int
	Captures  int // total since launch
	TickDelay time.Duration
	FPS       int32
	Paused    bool
	Manual    bool // a controllable prey is alive
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD at the bottom-left above the control legend.
func (h *HUD) Draw(x, y int32, data HUDData) {
	rl.DrawText(
		fmt.Sprintf("Prey: %d | Predators: %d | Captured: %d", data.Prey, data.Predators, data.Captures),
		x, y, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Period: %s | FPS: %d", data.Tick, data.TickDelay, data.FPS),
		x, y+20, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Manual {
		status += "  [A/D steer]"
	}
	rl.DrawText(status, x, y+40, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, overlays *OverlayRegistry) {
	legend := "[Space] pause  [R] relaunch  [Tab] controls  [Wheel] zoom  [RMB] pan  [F] follow  [Home] reset view"
	for _, d := range overlays.All() {
		if d.KeyLabel != "" {
			legend += fmt.Sprintf("  [%s] %s", d.KeyLabel, d.Name)
		}
	}
	rl.DrawText(legend, 10, screenHeight-20, 12, rl.Gray)
}

// PhaseTime is one row of the performance panel.
type PhaseTime struct {
	Name string
	Avg  time.Duration
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Phases      []PhaseTime // tick phases in execution order
	Render      []PhaseTime // frame sections, slowest first
	TickAvg     time.Duration
	TicksPerSec float64
}

// PerfPanel renders the phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y

	rl.DrawText("Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s  (%.0f/s max)", data.TickAvg.Round(time.Microsecond), data.TicksPerSec), x, y, 14, rl.Yellow)
	y += 16

	y = p.drawRows(x, y, data.Phases, data.TickAvg)
	if len(data.Render) > 0 {
		y += 4
		rl.DrawText("Frame", x, y, 14, rl.Yellow)
		y += 16
		var total time.Duration
		for _, r := range data.Render {
			total += r.Avg
		}
		p.drawRows(x, y, data.Render, total)
	}
}

func (p *PerfPanel) drawRows(x, y int32, rows []PhaseTime, total time.Duration) int32 {
	for _, row := range rows {
		pct := float64(0)
		if total > 0 {
			pct = float64(row.Avg) / float64(total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", row.Name, row.Avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
	return y
}
