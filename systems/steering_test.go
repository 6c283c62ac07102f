package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flocking/geom"
)

func TestSteerNoContributionKeepsHeading(t *testing.T) {
	self := newPrey(1, 50, 50, 1.25).Creature
	w := Weights{Separation: 2, Alignment: 1, Cohesion: 1, Flee: 5}

	got := Steer(self, Neighborhood{}, w)
	if got != 1.25 {
		t.Errorf("Steer with empty neighborhood = %v, want current heading 1.25", got)
	}
}

func TestSteerZeroWeightsKeepsHeading(t *testing.T) {
	self := newPrey(1, 50, 50, -2).Creature
	hood := Neighborhood{
		Close:  []CloseNeighbor{{ID: 2, Away: geom.Vec2{X: -3}}},
		Threat: &Threat{ID: 9, Offset: geom.Vec2{X: 10}, DistSq: 100},
	}

	got := Steer(self, hood, Weights{})
	if got != -2 {
		t.Errorf("Steer with zero weights = %v, want -2", got)
	}
}

func TestSeparationSumsUnitVectors(t *testing.T) {
	hood := Neighborhood{Close: []CloseNeighbor{
		{ID: 2, Away: geom.Vec2{X: -0.5}},
		{ID: 3, Away: geom.Vec2{X: -8}},
		{ID: 4, Away: geom.Vec2{}}, // coincident neighbor has no direction
	}}

	f := ComputeForces(hood)
	if math.Abs(f.Separation.X+2) > 1e-9 || f.Separation.Y != 0 {
		t.Errorf("separation = %v, want (-2,0)", f.Separation)
	}
}

func TestAlignmentIsMeanHeading(t *testing.T) {
	hood := Neighborhood{Flock: []FlockNeighbor{
		{ID: 2, Heading: 0},
		{ID: 3, Heading: math.Pi / 2},
	}}

	f := ComputeForces(hood)
	if math.Abs(f.Alignment.X-0.5) > 1e-9 || math.Abs(f.Alignment.Y-0.5) > 1e-9 {
		t.Errorf("alignment = %v, want (0.5,0.5)", f.Alignment)
	}
}

func TestCohesionUsesToroidalOffsets(t *testing.T) {
	// Self near the left edge, neighbors just across it on the right edge.
	flock := Flock{
		newPrey(1, 2, 100, 0),
		newPrey(2, 195, 98, 0),
		newPrey(3, 195, 102, 0),
	}
	hoods := BuildNeighborhoods(flock, nil, testThresholds(), testBounds, 0)

	f := ComputeForces(hoods[0])
	if f.Cohesion.X >= 0 {
		t.Errorf("cohesion = %v, want pull toward -X across the wrap", f.Cohesion)
	}
	if math.Abs(f.Cohesion.Length()-1) > 1e-9 {
		t.Errorf("cohesion length = %v, want 1", f.Cohesion.Length())
	}
}

func TestFleePointsAwayFromThreat(t *testing.T) {
	hood := Neighborhood{Threat: &Threat{ID: 9, Offset: geom.Vec2{X: 0, Y: 30}, DistSq: 900}}

	f := ComputeForces(hood)
	if math.Abs(f.Flee.Y+1) > 1e-9 || math.Abs(f.Flee.X) > 1e-9 {
		t.Errorf("flee = %v, want (0,-1)", f.Flee)
	}

	got := Steer(newPrey(1, 0, 0, 0).Creature, hood, Weights{Flee: 1})
	if math.Abs(got+math.Pi/2) > 1e-9 {
		t.Errorf("desired heading = %v, want -Pi/2", got)
	}
}

func TestCombineWeights(t *testing.T) {
	f := Forces{
		Separation: geom.Vec2{X: 1},
		Alignment:  geom.Vec2{Y: 1},
		Cohesion:   geom.Vec2{X: -1},
		Flee:       geom.Vec2{Y: -1},
	}
	got := f.Combine(Weights{Separation: 2, Alignment: 3, Cohesion: 0.5, Flee: 1})
	if got != (geom.Vec2{X: 1.5, Y: 2}) {
		t.Errorf("Combine = %v, want (1.5,2)", got)
	}
}
