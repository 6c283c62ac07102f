package systems

import "github.com/pthm-cable/flocking/geom"

// Forces holds the four unweighted steering contributions for one prey.
type Forces struct {
	Separation geom.Vec2
	Alignment  geom.Vec2
	Cohesion   geom.Vec2
	Flee       geom.Vec2
}

// ComputeForces derives the steering contributions from a neighborhood.
// Empty sets contribute the zero vector.
func ComputeForces(hood Neighborhood) Forces {
	var f Forces

	// Separation: one unit push away from each crowding neighbor
	for _, n := range hood.Close {
		f.Separation = f.Separation.Add(n.Away.Unit())
	}

	if k := len(hood.Flock); k > 0 {
		var headings, offsets geom.Vec2
		for _, n := range hood.Flock {
			headings = headings.Add(geom.Direction(n.Heading))
			offsets = offsets.Add(n.Offset)
		}
		inv := 1 / float64(k)
		f.Alignment = headings.Scale(inv)
		// Offsets are toroidal, so their mean is the wrap-aware centroid
		f.Cohesion = offsets.Scale(inv).Unit()
	}

	if hood.Threat != nil {
		f.Flee = hood.Threat.Offset.Neg().Unit()
	}

	return f
}

// Combine returns the weighted sum of the contributions.
func (f Forces) Combine(w Weights) geom.Vec2 {
	return f.Separation.Scale(w.Separation).
		Add(f.Alignment.Scale(w.Alignment)).
		Add(f.Cohesion.Scale(w.Cohesion)).
		Add(f.Flee.Scale(w.Flee))
}

// Steer returns the heading self wants given its neighborhood.
// With no net contribution the current heading is kept.
func Steer(self Creature, hood Neighborhood, w Weights) float64 {
	desired := ComputeForces(hood).Combine(w)
	if desired.IsZero() {
		return self.Heading
	}
	return geom.AngleOf(desired)
}
