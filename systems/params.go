package systems

import "github.com/pthm-cable/flocking/config"

// Weights scale the four steering contributions.
type Weights struct {
	Separation float64
	Alignment  float64
	Cohesion   float64
	Flee       float64
}

// Thresholds gate neighbor classification and capture.
type Thresholds struct {
	MinSeparation       float64 // separation set radius
	FlockRadius         float64 // alignment/cohesion set radius
	PredatorSightRadius float64 // prey sees predators closer than this
	KillDistance        float64 // capture radius
	PursuitRadius       float64 // predators ignore prey beyond this (0 = unbounded)
}

// Params is everything a tick reads from configuration.
type Params struct {
	Weights    Weights
	Thresholds Thresholds

	// ManualTurn is the desired-heading offset for one manual command.
	ManualTurn float64

	// GridCellSize selects the spatial grid index when > 0.
	GridCellSize float64
}

// ParamsFromConfig copies the tick-relevant values out of cfg.
// cfg is expected to be clamped already.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Weights: Weights{
			Separation: cfg.Weights.Separation,
			Alignment:  cfg.Weights.Alignment,
			Cohesion:   cfg.Weights.Cohesion,
			Flee:       cfg.Weights.Flee,
		},
		Thresholds: Thresholds{
			MinSeparation:       cfg.Prey.MinSeparation,
			FlockRadius:         cfg.Prey.FlockRadius,
			PredatorSightRadius: cfg.Prey.PredatorSightRadius,
			KillDistance:        cfg.Predator.KillDistance,
			PursuitRadius:       cfg.Predator.SightRadius,
		},
		ManualTurn:   cfg.Manual.TurnIncrement,
		GridCellSize: cfg.Spatial.GridCellSize,
	}
}
