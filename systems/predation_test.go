package systems

import (
	"testing"

	"github.com/pthm-cable/flocking/geom"
)

func TestSelectTargetNearest(t *testing.T) {
	pred := newPredator(100, 100, 100, 0).Creature
	flock := Flock{
		newPrey(7, 150, 100, 0),
		newPrey(3, 100, 120, 0),
		newPrey(9, 5, 100, 0), // 95 away directly, 105 through the wrap
	}

	idx, ok := SelectTarget(pred, flock, 0, testBounds)
	if !ok || flock[idx].ID != 3 {
		t.Errorf("target = %v (ok=%v), want prey 3", idx, ok)
	}
}

func TestSelectTargetTieBreaksByID(t *testing.T) {
	pred := newPredator(100, 100, 100, 0).Creature
	flock := Flock{
		newPrey(8, 110, 100, 0),
		newPrey(4, 90, 100, 0),
		newPrey(6, 100, 110, 0),
	}

	idx, ok := SelectTarget(pred, flock, 0, testBounds)
	if !ok || flock[idx].ID != 4 {
		t.Errorf("tie should go to lowest ID 4, got index %d", idx)
	}
}

func TestSelectTargetRadiusAndEmpty(t *testing.T) {
	pred := newPredator(100, 100, 100, 0).Creature

	if _, ok := SelectTarget(pred, nil, 0, testBounds); ok {
		t.Error("empty flock should have no target")
	}

	flock := Flock{newPrey(1, 150, 100, 0)}
	if _, ok := SelectTarget(pred, flock, 40, testBounds); ok {
		t.Error("prey beyond pursuit radius should be ignored")
	}
	if _, ok := SelectTarget(pred, flock, 60, testBounds); !ok {
		t.Error("prey inside pursuit radius should be targeted")
	}
}

func TestPredatorWithoutTargetHoldsHeading(t *testing.T) {
	p := newPredator(1, 10, 10, 0.7)
	if got := p.DesiredHeading(SteerContext{Bounds: testBounds}); got != 0.7 {
		t.Errorf("desired = %v, want 0.7", got)
	}

	target := newPrey(2, 10, 40, 0).Creature
	p.Target = &target
	got := p.DesiredHeading(SteerContext{Bounds: testBounds})
	if d := geom.SignedAngleDiff(got, 1.5707963267948966); d > 1e-9 || d < -1e-9 {
		t.Errorf("desired = %v, want Pi/2", got)
	}
}

func TestCaptured(t *testing.T) {
	if !Captured(geom.Vec2{X: 1, Y: 1}, geom.Vec2{X: 198, Y: 1}, 6, testBounds) {
		t.Error("capture should respect the wrap")
	}
	if Captured(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 6, Y: 0}, 6, testBounds) {
		t.Error("capture at exactly kill distance should not count")
	}
}

func TestCaptureMarksKeepLowestPredator(t *testing.T) {
	m := captureMarks{}
	m.mark(Capture{PreyID: 5, PredatorID: 30})
	m.mark(Capture{PreyID: 5, PredatorID: 12})
	m.mark(Capture{PreyID: 5, PredatorID: 20})

	if len(m) != 1 {
		t.Fatalf("expected one mark, got %d", len(m))
	}
	if m[5].PredatorID != 12 {
		t.Errorf("credited predator = %d, want 12", m[5].PredatorID)
	}
}
