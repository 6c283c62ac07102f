// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/flocking/systems"

// Position represents an entity's world position.
type Position struct {
	X float64 `inspect:"label,fmt:%.1f"`
	Y float64 `inspect:"label,fmt:%.1f"`
}

// Rotation holds an entity's heading in radians, (-Pi, Pi].
type Rotation struct {
	Heading float64 `inspect:"angle"`
}

// Motion holds the movement limits fixed when the entity is created.
type Motion struct {
	Speed   float64 `inspect:"bar,max:10"`    // distance per tick
	MaxTurn float64 `inspect:"label,fmt:%.3f"` // radians per tick
}

// Organism bundles identity and role.
type Organism struct {
	ID         uint32       `inspect:"label"`
	Kind       systems.Kind `inspect:"label"`
	Controlled bool         `inspect:"bool"` // driven by keyboard commands
}

// Pursuit records the prey a predator chased on the last tick.
type Pursuit struct {
	TargetID  uint32 `inspect:"label"`
	HasTarget bool   `inspect:"bool"`
}
