// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Weights   WeightsConfig   `yaml:"weights"`
	Prey      PreyConfig      `yaml:"prey"`
	Predator  PredatorConfig  `yaml:"predator"`
	Manual    ManualConfig    `yaml:"manual"`
	Spatial   SpatialConfig   `yaml:"spatial"`
	Sim       SimConfig       `yaml:"sim"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the torus dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// WeightsConfig holds the steering weights applied to each prey.
type WeightsConfig struct {
	Separation float64 `yaml:"separation"`
	Alignment  float64 `yaml:"alignment"`
	Cohesion   float64 `yaml:"cohesion"`
	Flee       float64 `yaml:"flee"`
}

// PreyConfig holds prey creation and perception parameters.
type PreyConfig struct {
	Count               int     `yaml:"count"`
	Speed               float64 `yaml:"speed"`                 // fixed at creation
	MaxTurnAngle        float64 `yaml:"max_turn_angle"`        // radians per tick, fixed at creation
	MinSeparation       float64 `yaml:"min_separation"`        // separation gate
	FlockRadius         float64 `yaml:"flock_radius"`          // alignment/cohesion gate
	PredatorSightRadius float64 `yaml:"predator_sight_radius"` // flee gate
}

// PredatorConfig holds predator creation and pursuit parameters.
type PredatorConfig struct {
	Count        int     `yaml:"count"`
	Speed        float64 `yaml:"speed"`
	MaxTurnAngle float64 `yaml:"max_turn_angle"`
	KillDistance float64 `yaml:"kill_distance"`
	SightRadius  float64 `yaml:"sight_radius"` // pursuit cap (0 = unbounded)
}

// ManualConfig holds the keyboard override for one prey.
type ManualConfig struct {
	Enabled       bool    `yaml:"enabled"`
	TurnIncrement float64 `yaml:"turn_increment"` // desired heading offset per command
}

// SpatialConfig selects the neighbor index implementation.
type SpatialConfig struct {
	GridCellSize float64 `yaml:"grid_cell_size"` // 0 = naive pairwise scan
}

// SimConfig holds scheduling parameters.
type SimConfig struct {
	TickDelayMS int `yaml:"tick_delay_ms"` // period of the external tick timer
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW float64 // Effective world width
	WorldH float64 // Effective world height
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Clamp()
	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.Clamp()
	return cfg, nil
}

// MustDefaults is like Defaults but panics on error.
func MustDefaults() *Config {
	cfg, err := Defaults()
	if err != nil {
		panic(fmt.Sprintf("config: failed to load defaults: %v", err))
	}
	return cfg
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Clamp forces every tunable into its documented range and recomputes
// derived values. Out-of-range input is corrected, never rejected.
func (c *Config) Clamp() {
	c.Screen.Width = max(c.Screen.Width, 1)
	c.Screen.Height = max(c.Screen.Height, 1)
	c.Screen.TargetFPS = max(c.Screen.TargetFPS, 1)
	c.World.Width = max(c.World.Width, 0)
	c.World.Height = max(c.World.Height, 0)

	c.Weights.Separation = Limits.Weight.clamp(c.Weights.Separation)
	c.Weights.Alignment = Limits.Weight.clamp(c.Weights.Alignment)
	c.Weights.Cohesion = Limits.Weight.clamp(c.Weights.Cohesion)
	c.Weights.Flee = Limits.Weight.clamp(c.Weights.Flee)

	c.Prey.Count = max(c.Prey.Count, 0)
	c.Prey.Speed = Limits.Speed.clamp(c.Prey.Speed)
	c.Prey.MaxTurnAngle = Limits.TurnAngle.clamp(c.Prey.MaxTurnAngle)
	c.Prey.MinSeparation = Limits.Distance.clamp(c.Prey.MinSeparation)
	c.Prey.FlockRadius = Limits.Distance.clamp(c.Prey.FlockRadius)
	c.Prey.PredatorSightRadius = Limits.Distance.clamp(c.Prey.PredatorSightRadius)

	c.Predator.Count = max(c.Predator.Count, 0)
	c.Predator.Speed = Limits.Speed.clamp(c.Predator.Speed)
	c.Predator.MaxTurnAngle = Limits.TurnAngle.clamp(c.Predator.MaxTurnAngle)
	c.Predator.KillDistance = Limits.Distance.clamp(c.Predator.KillDistance)
	c.Predator.SightRadius = Limits.Distance.clamp(c.Predator.SightRadius)

	c.Manual.TurnIncrement = Limits.TurnAngle.clamp(c.Manual.TurnIncrement)
	c.Spatial.GridCellSize = Limits.Distance.clamp(c.Spatial.GridCellSize)
	c.Sim.TickDelayMS = max(c.Sim.TickDelayMS, 1)
	c.Telemetry.StatsWindow = max(c.Telemetry.StatsWindow, 1)
	c.Telemetry.PerfCollectorWindow = max(c.Telemetry.PerfCollectorWindow, 1)

	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)
}

// Range is an inclusive [Min, Max] limit for a tunable.
type Range struct {
	Min, Max float64
}

func (r Range) clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Limits are the documented bounds of every adjustable value.
var Limits = struct {
	Weight    Range
	Speed     Range
	TurnAngle Range
	Distance  Range
}{
	Weight:    Range{0, 10},
	Speed:     Range{0, 10},
	TurnAngle: Range{0, math.Pi},
	Distance:  Range{0, math.MaxFloat64},
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
