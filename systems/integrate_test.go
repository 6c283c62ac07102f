package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flocking/geom"
)

func TestIntegrateClampsTurn(t *testing.T) {
	tests := []struct {
		name             string
		heading, desired float64
		maxTurn          float64
		want             float64
	}{
		{"within limit", 0, 0.05, 0.1, 0.05},
		{"clamped ccw", 0, 1, 0.1, 0.1},
		{"clamped cw", 0, -1, 0.1, -0.1},
		{"opposite turns positive", 0, math.Pi, 0.1, 0.1},
		{"short way across pi", 3.1, -3.1, 0.5, 3.1 + (2*math.Pi - 6.2)},
		{"wraps past pi", 3.1, -3.0, 0.1, geom.NormalizeAngle(3.2)},
		{"zero turn rate", 1, 2, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Integrate(tt.heading, tt.desired, tt.maxTurn, 1, geom.Vec2{}, testBounds)
			if math.Abs(geom.SignedAngleDiff(tt.want, got)) > 1e-9 {
				t.Errorf("heading = %v, want %v", got, tt.want)
			}
			if got <= -math.Pi || got > math.Pi {
				t.Errorf("heading %v not normalized", got)
			}
		})
	}
}

func TestIntegrateMovesAtSpeedAndWraps(t *testing.T) {
	heading, pos := Integrate(0, 0, 0.1, 3, geom.Vec2{X: 199, Y: 50}, testBounds)
	if heading != 0 {
		t.Errorf("heading = %v, want 0", heading)
	}
	if math.Abs(pos.X-2) > 1e-9 || pos.Y != 50 {
		t.Errorf("pos = %v, want (2,50)", pos)
	}

	start := geom.Vec2{X: 10, Y: 10}
	_, pos = Integrate(-2, -2, 0.1, 2.5, start, testBounds)
	if d := testBounds.Distance(start, pos); math.Abs(d-2.5) > 1e-9 {
		t.Errorf("moved %v, want 2.5", d)
	}
}

func TestManualHeading(t *testing.T) {
	if got := ManualHeading(1, CommandNone, 0.2); got != 1 {
		t.Errorf("none = %v, want 1", got)
	}
	if got := ManualHeading(1, CommandTurnLeft, 0.2); math.Abs(got-0.8) > 1e-12 {
		t.Errorf("left = %v, want 0.8", got)
	}
	if got := ManualHeading(1, CommandTurnRight, 0.2); math.Abs(got-1.2) > 1e-12 {
		t.Errorf("right = %v, want 1.2", got)
	}
}

func TestManualCommandRespectsTurnLimit(t *testing.T) {
	p := newPrey(1, 100, 100, 0)
	p.MaxTurn = 0.05
	desired := ManualHeading(p.Heading, CommandTurnRight, 1.0)

	p.ApplyHeading(desired, testBounds)
	if math.Abs(p.Heading-0.05) > 1e-12 {
		t.Errorf("heading = %v, want turn limited to 0.05", p.Heading)
	}
}
