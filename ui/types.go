// Package ui provides a descriptor-driven UI for the simulation.
// Instead of hard-coding a widget per tunable, the control panel is built
// from slider descriptors that read and write config fields.
package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flocking/config"
)

// SliderDescriptor binds a slider to one config value.
type SliderDescriptor struct {
	ID       string
	Label    string
	Section  string
	Min, Max float64
	Format   string // Printf format for the value readout
	Integer  bool   // round to whole numbers

	// Relaunch marks values read only when creatures are created,
	// so changes take effect on the next launch.
	Relaunch bool

	Get func(*config.Config) float64
	Set func(*config.Config, float64)
}

// Apply writes v (clamped to the slider range) into cfg.
// Returns true if the stored value changed.
func (d SliderDescriptor) Apply(cfg *config.Config, v float64) bool {
	v = math.Max(d.Min, math.Min(d.Max, v))
	if d.Integer {
		v = math.Round(v)
	}
	if v == d.Get(cfg) {
		return false
	}
	d.Set(cfg, v)
	return true
}

// Section names in display order.
const (
	SectionWeights  = "Weights"
	SectionPrey     = "Prey"
	SectionPredator = "Predator"
	SectionSim      = "Simulation"
)

// Sections lists slider sections in display order.
var Sections = []string{SectionWeights, SectionPrey, SectionPredator, SectionSim}

// ConfigSliders returns the sliders for every adjustable tunable.
func ConfigSliders() []SliderDescriptor {
	w := config.Limits.Weight
	s := config.Limits.Speed

	return []SliderDescriptor{
		{
			ID: "separation", Label: "Separation", Section: SectionWeights, Min: w.Min, Max: w.Max, Format: "%.2f",
			Get: func(c *config.Config) float64 { return c.Weights.Separation },
			Set: func(c *config.Config, v float64) { c.Weights.Separation = v },
		},
		{
			ID: "alignment", Label: "Alignment", Section: SectionWeights, Min: w.Min, Max: w.Max, Format: "%.2f",
			Get: func(c *config.Config) float64 { return c.Weights.Alignment },
			Set: func(c *config.Config, v float64) { c.Weights.Alignment = v },
		},
		{
			ID: "cohesion", Label: "Cohesion", Section: SectionWeights, Min: w.Min, Max: w.Max, Format: "%.2f",
			Get: func(c *config.Config) float64 { return c.Weights.Cohesion },
			Set: func(c *config.Config, v float64) { c.Weights.Cohesion = v },
		},
		{
			ID: "flee", Label: "Flee", Section: SectionWeights, Min: w.Min, Max: w.Max, Format: "%.2f",
			Get: func(c *config.Config) float64 { return c.Weights.Flee },
			Set: func(c *config.Config, v float64) { c.Weights.Flee = v },
		},

		{
			ID: "prey_count", Label: "Count", Section: SectionPrey, Min: 0, Max: 500, Format: "%.0f", Integer: true, Relaunch: true,
			Get: func(c *config.Config) float64 { return float64(c.Prey.Count) },
			Set: func(c *config.Config, v float64) { c.Prey.Count = int(v) },
		},
		{
			ID: "prey_speed", Label: "Speed", Section: SectionPrey, Min: s.Min, Max: s.Max, Format: "%.2f", Relaunch: true,
			Get: func(c *config.Config) float64 { return c.Prey.Speed },
			Set: func(c *config.Config, v float64) { c.Prey.Speed = v },
		},
		{
			ID: "prey_turn", Label: "Max turn", Section: SectionPrey, Min: 0, Max: 1, Format: "%.3f", Relaunch: true,
			Get: func(c *config.Config) float64 { return c.Prey.MaxTurnAngle },
			Set: func(c *config.Config, v float64) { c.Prey.MaxTurnAngle = v },
		},
		{
			ID: "min_separation", Label: "Min sep", Section: SectionPrey, Min: 0, Max: 200, Format: "%.0f",
			Get: func(c *config.Config) float64 { return c.Prey.MinSeparation },
			Set: func(c *config.Config, v float64) { c.Prey.MinSeparation = v },
		},
		{
			ID: "flock_radius", Label: "Flock rad", Section: SectionPrey, Min: 0, Max: 300, Format: "%.0f",
			Get: func(c *config.Config) float64 { return c.Prey.FlockRadius },
			Set: func(c *config.Config, v float64) { c.Prey.FlockRadius = v },
		},
		{
			ID: "predator_sight", Label: "Sight", Section: SectionPrey, Min: 0, Max: 500, Format: "%.0f",
			Get: func(c *config.Config) float64 { return c.Prey.PredatorSightRadius },
			Set: func(c *config.Config, v float64) { c.Prey.PredatorSightRadius = v },
		},

		{
			ID: "predator_count", Label: "Count", Section: SectionPredator, Min: 0, Max: 20, Format: "%.0f", Integer: true, Relaunch: true,
			Get: func(c *config.Config) float64 { return float64(c.Predator.Count) },
			Set: func(c *config.Config, v float64) { c.Predator.Count = int(v) },
		},
		{
			ID: "predator_speed", Label: "Speed", Section: SectionPredator, Min: s.Min, Max: s.Max, Format: "%.2f", Relaunch: true,
			Get: func(c *config.Config) float64 { return c.Predator.Speed },
			Set: func(c *config.Config, v float64) { c.Predator.Speed = v },
		},
		{
			ID: "predator_turn", Label: "Max turn", Section: SectionPredator, Min: 0, Max: 1, Format: "%.3f", Relaunch: true,
			Get: func(c *config.Config) float64 { return c.Predator.MaxTurnAngle },
			Set: func(c *config.Config, v float64) { c.Predator.MaxTurnAngle = v },
		},
		{
			ID: "kill_distance", Label: "Kill dist", Section: SectionPredator, Min: 0, Max: 50, Format: "%.1f",
			Get: func(c *config.Config) float64 { return c.Predator.KillDistance },
			Set: func(c *config.Config, v float64) { c.Predator.KillDistance = v },
		},
		{
			ID: "pursuit_radius", Label: "Pursuit", Section: SectionPredator, Min: 0, Max: 500, Format: "%.0f",
			Get: func(c *config.Config) float64 { return c.Predator.SightRadius },
			Set: func(c *config.Config, v float64) { c.Predator.SightRadius = v },
		},

		{
			ID: "tick_delay", Label: "Tick ms", Section: SectionSim, Min: 1, Max: 200, Format: "%.0f", Integer: true,
			Get: func(c *config.Config) float64 { return float64(c.Sim.TickDelayMS) },
			Set: func(c *config.Config, v float64) { c.Sim.TickDelayMS = int(v) },
		},
		{
			ID: "turn_increment", Label: "Key turn", Section: SectionSim, Min: 0, Max: 1, Format: "%.2f",
			Get: func(c *config.Config) float64 { return c.Manual.TurnIncrement },
			Set: func(c *config.Config, v float64) { c.Manual.TurnIncrement = v },
		},
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	DimColor       rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		DimColor:       rl.Gray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
