package systems

import (
	"cmp"
	"slices"

	"github.com/pthm-cable/flocking/geom"
)

// CloseNeighbor is a prey inside the separation radius.
type CloseNeighbor struct {
	ID   uint32
	Away geom.Vec2 // from the neighbor toward self
}

// FlockNeighbor is a prey inside the flock radius.
type FlockNeighbor struct {
	ID      uint32
	Offset  geom.Vec2 // from self toward the neighbor
	Heading float64
}

// Threat is the nearest predator a prey can see.
type Threat struct {
	ID     uint32
	Offset geom.Vec2 // from self toward the predator
	DistSq float64
}

// Neighborhood is the classification of one prey against the pre-tick state.
// Sets are ordered by neighbor ID.
type Neighborhood struct {
	Close  []CloseNeighbor
	Flock  []FlockNeighbor
	Threat *Threat
}

// BuildNeighborhoods classifies every prey in flock. The result is indexed
// like flock. A cellSize > 0 uses a SpatialGrid instead of a pairwise scan;
// both produce identical sets.
func BuildNeighborhoods(flock Flock, roster Roster, th Thresholds, b geom.Bounds, cellSize float64) []Neighborhood {
	return buildNeighborhoods(nil, flock, roster, th, b, cellSize)
}

func buildNeighborhoods(pool *Pool, flock Flock, roster Roster, th Thresholds, b geom.Bounds, cellSize float64) []Neighborhood {
	hoods := make([]Neighborhood, len(flock))
	if len(flock) == 0 {
		return hoods
	}

	c := classifier{
		flock:    flock,
		roster:   roster,
		bounds:   b,
		radius:   max(th.MinSeparation, th.FlockRadius),
		minSepSq: th.MinSeparation * th.MinSeparation,
		flockSq:  th.FlockRadius * th.FlockRadius,
		sight:    th.PredatorSightRadius,
	}
	if cellSize > 0 {
		c.grid = NewSpatialGrid(b, cellSize)
		for i := range flock {
			c.grid.Insert(i, flock[i].Pos)
		}
	}

	// The grid is read-only from here on, so chunks can run concurrently.
	pool.Run(len(flock), func(start, end int) {
		var candidates []int
		for i := start; i < end; i++ {
			candidates = c.classify(i, &hoods[i], candidates[:0])
		}
	})

	return hoods
}

// classifier holds the read-only inputs shared by every prey's classification.
type classifier struct {
	flock    Flock
	roster   Roster
	bounds   geom.Bounds
	grid     *SpatialGrid
	radius   float64
	minSepSq float64
	flockSq  float64
	sight    float64
}

// classify fills hood for prey i and returns the candidate buffer for reuse.
func (c *classifier) classify(i int, hood *Neighborhood, candidates []int) []int {
	self := &c.flock[i]

	if c.grid != nil {
		candidates = c.grid.CandidatesInto(candidates, self.Pos, c.radius, i)
	} else {
		for j := range c.flock {
			if j != i {
				candidates = append(candidates, j)
			}
		}
	}

	for _, j := range candidates {
		other := &c.flock[j]
		d := c.bounds.ShortestDelta(self.Pos, other.Pos)
		dsq := d.LengthSq()
		if dsq < c.minSepSq {
			hood.Close = append(hood.Close, CloseNeighbor{ID: other.ID, Away: d.Neg()})
		}
		if dsq < c.flockSq {
			hood.Flock = append(hood.Flock, FlockNeighbor{ID: other.ID, Offset: d, Heading: other.Heading})
		}
	}

	slices.SortFunc(hood.Close, func(a, b CloseNeighbor) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(hood.Flock, func(a, b FlockNeighbor) int { return cmp.Compare(a.ID, b.ID) })

	hood.Threat = nearestThreat(self.Pos, c.roster, c.sight, c.bounds)
	return candidates
}

// nearestThreat returns the closest predator strictly within sight,
// breaking distance ties by lower ID.
func nearestThreat(pos geom.Vec2, roster Roster, sight float64, b geom.Bounds) *Threat {
	sightSq := sight * sight
	var best *Threat
	for k := range roster {
		pred := &roster[k]
		d := b.ShortestDelta(pos, pred.Pos)
		dsq := d.LengthSq()
		if dsq >= sightSq {
			continue
		}
		if best == nil || dsq < best.DistSq || (dsq == best.DistSq && pred.ID < best.ID) {
			best = &Threat{ID: pred.ID, Offset: d, DistSq: dsq}
		}
	}
	return best
}
