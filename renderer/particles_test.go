package renderer

import (
	"testing"

	"github.com/pthm-cable/flocking/geom"
)

func TestCaptureEffectsExpire(t *testing.T) {
	e := NewCaptureEffects(3)
	e.Add(geom.Vec2{X: 1, Y: 2})
	e.Update()
	e.Add(geom.Vec2{X: 3, Y: 4})

	e.Update()
	if e.Len() != 2 {
		t.Fatalf("after 2 frames Len = %d, want 2", e.Len())
	}
	e.Update()
	if e.Len() != 1 {
		t.Errorf("after 3 frames Len = %d, want 1", e.Len())
	}
	e.Update()
	if e.Len() != 0 {
		t.Errorf("after 4 frames Len = %d, want 0", e.Len())
	}
}

func TestCaptureEffectsMinimumLife(t *testing.T) {
	e := NewCaptureEffects(0)
	e.Add(geom.Vec2{})
	if e.Len() != 1 {
		t.Fatal("ring not added")
	}
	e.Update()
	if e.Len() != 0 {
		t.Errorf("Len = %d, want 0", e.Len())
	}
}
