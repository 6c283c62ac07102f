package inspector

import (
	"testing"

	"github.com/pthm-cable/flocking/components"
	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
)

func TestPickNearestOnTorus(t *testing.T) {
	b := geom.Bounds{Width: 100, Height: 100}
	views := []systems.View{
		{ID: 5, Pos: geom.Vec2{X: 50, Y: 50}},
		{ID: 9, Pos: geom.Vec2{X: 98, Y: 50}}, // 3 away through the wrap
		{ID: 2, Pos: geom.Vec2{X: 5, Y: 50}},  // 4 away
	}

	id, ok := Pick(views, geom.Vec2{X: 1, Y: 50}, b, 10)
	if !ok || id != 9 {
		t.Errorf("Pick = %d, %v; want 9, true", id, ok)
	}

	if _, ok := Pick(views, geom.Vec2{X: 25, Y: 20}, b, 10); ok {
		t.Error("expected no hit far from all creatures")
	}
}

func TestPickTieGoesToLowestID(t *testing.T) {
	b := geom.Bounds{Width: 100, Height: 100}
	views := []systems.View{
		{ID: 8, Pos: geom.Vec2{X: 12, Y: 10}},
		{ID: 3, Pos: geom.Vec2{X: 8, Y: 10}},
	}
	if id, _ := Pick(views, geom.Vec2{X: 10, Y: 10}, b, 5); id != 3 {
		t.Errorf("Pick = %d, want 3", id)
	}
}

func TestSelectionLifecycle(t *testing.T) {
	ins := NewInspector(1280, 720)
	if _, ok := ins.Selected(); ok {
		t.Fatal("new inspector should have no selection")
	}

	ins.Select(4)
	ins.Forget(5)
	if id, ok := ins.Selected(); !ok || id != 4 {
		t.Errorf("Selected = %d, %v; want 4, true", id, ok)
	}

	ins.Forget(4)
	if _, ok := ins.Selected(); ok {
		t.Error("Forget of the selected ID should deselect")
	}
}

func TestFieldHeightMatchesWidgets(t *testing.T) {
	fields := ExtractFields(components.Rotation{Heading: 1})
	if got := FieldHeight(fields[0]); got != angleHeight {
		t.Errorf("angle height = %d, want %d", got, angleHeight)
	}
	fields = ExtractFields(components.Pursuit{})
	if got := FieldHeight(fields[1]); got != boolHeight {
		t.Errorf("bool height = %d, want %d", got, boolHeight)
	}
}
