package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flocking/config"
)

// Control panel layout
const (
	sliderHeight  = 14
	sliderSpacing = 20
	buttonHeight  = 26
)

// Actions reports what the user did in the controls panel this frame.
type Actions struct {
	Launch      bool // rebuild the population from the current config
	TogglePause bool
	Changed     bool // a live tunable changed; re-read params
}

// ControlsPanel renders the raygui sliders and launch/pause buttons.
type ControlsPanel struct {
	renderer *Renderer
	sliders  []SliderDescriptor
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		sliders:  ConfigSliders(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Height returns the panel height for the current slider set.
func (c *ControlsPanel) Height() int32 {
	r := c.renderer
	h := r.Theme.Padding*2 + r.Theme.LineHeight + 4 // title
	for _, section := range Sections {
		n := int32(len(c.bySection(section)))
		if n == 0 {
			continue
		}
		h += r.Theme.LineHeight + n*sliderSpacing + 4
	}
	return h + buttonHeight + r.Theme.Padding
}

// Contains reports whether a screen point lies on the panel, so clicks
// there are not treated as world clicks.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return int32(x) >= c.x && int32(x) <= c.x+c.width &&
		int32(y) >= c.y && int32(y) <= c.y+c.Height()
}

// Draw renders the panel and applies slider changes to cfg.
func (c *ControlsPanel) Draw(cfg *config.Config, paused bool) Actions {
	var act Actions
	if !c.visible {
		return act
	}
	applied := false

	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	x := c.x + padding
	y := c.y + padding
	rl.DrawText("Controls [Tab]", x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	sliderX := float32(x + r.Theme.LabelWidth)
	sliderW := float32(c.width - padding*2 - r.Theme.LabelWidth - 48)

	for _, section := range Sections {
		sliders := c.bySection(section)
		if len(sliders) == 0 {
			continue
		}
		y = r.DrawSectionHeader(x, y, section)

		for _, d := range sliders {
			rl.DrawText(d.Label, x, y+1, r.Theme.FontSize, r.Theme.LabelColor)

			v := d.Get(cfg)
			nv := gui.SliderBar(
				rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: sliderHeight},
				"", "",
				float32(v), float32(d.Min), float32(d.Max),
			)
			if nv != float32(v) && d.Apply(cfg, float64(nv)) {
				applied = true
				act.Changed = act.Changed || !d.Relaunch
			}

			color := r.Theme.ValueColor
			if d.Relaunch {
				color = r.Theme.DimColor
			}
			rl.DrawText(fmt.Sprintf(d.Format, d.Get(cfg)), int32(sliderX+sliderW)+6, y+1, r.Theme.FontSize, color)
			y += sliderSpacing
		}
		y += 4
	}

	half := float32(c.width-padding*3) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: buttonHeight}, "Launch") {
		act.Launch = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + float32(padding), Y: float32(y), Width: half, Height: buttonHeight}, toggleText(paused, "Play", "Pause")) {
		act.TogglePause = true
	}

	if applied {
		cfg.Clamp()
	}
	return act
}

func (c *ControlsPanel) bySection(section string) []SliderDescriptor {
	var out []SliderDescriptor
	for _, d := range c.sliders {
		if d.Section == section {
			out = append(out, d)
		}
	}
	return out
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
