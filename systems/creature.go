// Package systems is the per-tick simulation kernel: neighbor classification,
// steering, heading integration and predation on a toroidal plane.
//
// Nothing in this package performs I/O or holds global state. Callers pass
// the flock, the predator roster and a Params value into Advance once per tick.
package systems

import "github.com/pthm-cable/flocking/geom"

// Kind distinguishes prey from predators.
type Kind uint8

const (
	KindPrey Kind = iota
	KindPredator
)

// String returns the kind name used in logs and CSV output.
func (k Kind) String() string {
	if k == KindPredator {
		return "predator"
	}
	return "prey"
}

// Creature is the state shared by prey and predators.
// Speed and MaxTurn are fixed when the creature is created.
type Creature struct {
	ID      uint32
	Pos     geom.Vec2
	Heading float64 // radians, (-Pi, Pi]
	Speed   float64
	MaxTurn float64 // radians per tick
}

// Velocity returns the displacement applied each tick.
func (c Creature) Velocity() geom.Vec2 {
	return geom.Direction(c.Heading).Scale(c.Speed)
}

// ApplyHeading turns toward desired (limited by MaxTurn) and moves one tick.
func (c *Creature) ApplyHeading(desired float64, b geom.Bounds) {
	c.Heading, c.Pos = Integrate(c.Heading, desired, c.MaxTurn, c.Speed, c.Pos, b)
}

// Prey is a flocking creature. At most one prey carries Controlled.
type Prey struct {
	Creature
	Controlled bool
}

// Predator pursues the nearest prey.
type Predator struct {
	Creature

	// Target is the prey chosen this tick. It is a copy of the prey's
	// pre-tick state and is recomputed every tick.
	Target *Creature
}

// Flock is the ordered prey population. Order affects rendering only.
type Flock []Prey

// Roster is the ordered predator population.
type Roster []Predator

// SteerContext is the read-only input to a steering decision.
type SteerContext struct {
	Hood    *Neighborhood // prey only
	Weights Weights
	Bounds  geom.Bounds
}

// Steerer computes the heading a creature wants this tick.
type Steerer interface {
	DesiredHeading(ctx SteerContext) float64
}

// Mover applies a desired heading to a creature's position and heading.
type Mover interface {
	ApplyHeading(desired float64, b geom.Bounds)
}

// DesiredHeading runs the weighted flocking rules.
func (p *Prey) DesiredHeading(ctx SteerContext) float64 {
	if ctx.Hood == nil {
		return p.Heading
	}
	return Steer(p.Creature, *ctx.Hood, ctx.Weights)
}

// DesiredHeading points at the current target, or holds course without one.
func (p *Predator) DesiredHeading(ctx SteerContext) float64 {
	if p.Target == nil {
		return p.Heading
	}
	d := ctx.Bounds.ShortestDelta(p.Pos, p.Target.Pos)
	if d.IsZero() {
		return p.Heading
	}
	return geom.AngleOf(d)
}

var (
	_ Steerer = (*Prey)(nil)
	_ Steerer = (*Predator)(nil)
	_ Mover   = (*Prey)(nil)
	_ Mover   = (*Predator)(nil)
)

// View is the read-only state a renderer needs for one creature.
type View struct {
	ID         uint32
	Kind       Kind
	Pos        geom.Vec2
	Heading    float64
	Controlled bool
}

// Views returns render views of the flock followed by the roster.
func Views(flock Flock, roster Roster) []View {
	out := make([]View, 0, len(flock)+len(roster))
	for i := range flock {
		p := &flock[i]
		out = append(out, View{ID: p.ID, Kind: KindPrey, Pos: p.Pos, Heading: p.Heading, Controlled: p.Controlled})
	}
	for i := range roster {
		p := &roster[i]
		out = append(out, View{ID: p.ID, Kind: KindPredator, Pos: p.Pos, Heading: p.Heading})
	}
	return out
}
