package geom

import (
	"math"
	"math/rand"
	"testing"
)

const eps = 1e-9

func TestShortestDeltaWrapsAcrossEdges(t *testing.T) {
	b := Bounds{Width: 100, Height: 100}

	got := b.ShortestDelta(Vec2{5, 5}, Vec2{95, 95})
	if math.Abs(got.X+10) > eps || math.Abs(got.Y+10) > eps {
		t.Errorf("ShortestDelta((5,5),(95,95)) = %v, want (-10,-10)", got)
	}

	got = b.ShortestDelta(Vec2{95, 50}, Vec2{5, 50})
	if math.Abs(got.X-10) > eps || got.Y != 0 {
		t.Errorf("ShortestDelta((95,50),(5,50)) = %v, want (10,0)", got)
	}

	got = b.ShortestDelta(Vec2{10, 10}, Vec2{30, 20})
	if got != (Vec2{20, 10}) {
		t.Errorf("ShortestDelta without wrap = %v, want (20,10)", got)
	}
}

func TestShortestDeltaAntisymmetric(t *testing.T) {
	b := Bounds{Width: 640, Height: 480}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		p := Vec2{rng.Float64() * b.Width, rng.Float64() * b.Height}
		q := Vec2{rng.Float64() * b.Width, rng.Float64() * b.Height}
		ab := b.ShortestDelta(p, q)
		ba := b.ShortestDelta(q, p)
		if ab != ba.Neg() {
			t.Fatalf("ShortestDelta(%v,%v)=%v but reverse=%v", p, q, ab, ba)
		}
		if math.Abs(ab.X) > b.Width/2 || math.Abs(ab.Y) > b.Height/2 {
			t.Fatalf("delta %v exceeds half bounds", ab)
		}
	}

	// Exactly half way is the tie case.
	half := b.ShortestDelta(Vec2{0, 0}, Vec2{320, 240})
	back := b.ShortestDelta(Vec2{320, 240}, Vec2{0, 0})
	if half != back.Neg() {
		t.Errorf("half-way delta not antisymmetric: %v vs %v", half, back)
	}
}

func TestWrap(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"inside", Vec2{10, 20}, Vec2{10, 20}},
		{"past right", Vec2{105, 20}, Vec2{5, 20}},
		{"negative", Vec2{-5, -10}, Vec2{95, 40}},
		{"far negative", Vec2{-250, -125}, Vec2{50, 25}},
		{"exact edge", Vec2{100, 50}, Vec2{0, 0}},
		{"tiny negative", Vec2{-1e-18, 0}, Vec2{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Wrap(tt.in)
			if math.Abs(got.X-tt.want.X) > eps || math.Abs(got.Y-tt.want.Y) > eps {
				t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if !b.Contains(got) {
				t.Errorf("Wrap(%v) = %v is outside bounds", tt.in, got)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi / 2, math.Pi / 2},
		{2*math.Pi + 0.25, 0.25},
		{-0.25, -0.25},
	}

	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(got-tt.want) > eps {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("NormalizeAngle(%v) = %v out of (-Pi, Pi]", tt.in, got)
		}
	}
}

func TestSignedAngleDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"small ccw", 0, 0.5, 0.5},
		{"small cw", 0.5, 0, -0.5},
		{"across pi", 3, -3, 2*math.Pi - 6},
		{"across -pi", -3, 3, 6 - 2*math.Pi},
		{"opposite", 0, math.Pi, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SignedAngleDiff(tt.from, tt.to)
			if math.Abs(got-tt.want) > eps {
				t.Errorf("SignedAngleDiff(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDirectionAndAngleOf(t *testing.T) {
	for _, a := range []float64{0, 0.3, math.Pi / 2, 2.5, math.Pi, -1.2, -math.Pi / 2} {
		d := Direction(a)
		if math.Abs(d.Length()-1) > eps {
			t.Errorf("Direction(%v) length = %v, want 1", a, d.Length())
		}
		if got := AngleOf(d); math.Abs(SignedAngleDiff(a, got)) > eps {
			t.Errorf("AngleOf(Direction(%v)) = %v", a, got)
		}
	}
}

func TestUnitOfZeroVector(t *testing.T) {
	if got := (Vec2{}).Unit(); got != (Vec2{}) {
		t.Errorf("Unit of zero = %v, want zero", got)
	}
	u := Vec2{3, 4}.Unit()
	if math.Abs(u.X-0.6) > eps || math.Abs(u.Y-0.8) > eps {
		t.Errorf("Unit((3,4)) = %v, want (0.6,0.8)", u)
	}
}
