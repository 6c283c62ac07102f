package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
)

func prey(id uint32, x, y, heading float64) systems.Prey {
	return systems.Prey{Creature: systems.Creature{ID: id, Pos: geom.Vec2{X: x, Y: y}, Heading: heading, Speed: 2, MaxTurn: 0.1}}
}

func TestDistribution(t *testing.T) {
	tests := []struct {
		name               string
		values             []float64
		mean, p10, p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{4}, 4, 4, 4, 4},
		{"ten unsorted", []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}, 5.5, 1, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p10, p50, p90 := Distribution(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if p10 != tt.p10 || p50 != tt.p50 || p90 != tt.p90 {
				t.Errorf("percentiles = %v/%v/%v, want %v/%v/%v", p10, p50, p90, tt.p10, tt.p50, tt.p90)
			}
		})
	}
}

func TestDistributionLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	Distribution(values)
	if values[0] != 3 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestPolarization(t *testing.T) {
	aligned := systems.Flock{prey(1, 0, 0, 0.5), prey(2, 10, 10, 0.5), prey(3, 20, 20, 0.5)}
	if got := Polarization(aligned); math.Abs(got-1) > 1e-9 {
		t.Errorf("aligned polarization = %v, want 1", got)
	}

	opposed := systems.Flock{prey(1, 0, 0, 0), prey(2, 10, 10, math.Pi)}
	if got := Polarization(opposed); got > 1e-9 {
		t.Errorf("opposed polarization = %v, want 0", got)
	}

	if got := Polarization(nil); got != 0 {
		t.Errorf("empty polarization = %v, want 0", got)
	}
}

func TestNearestNeighborDistancesWrap(t *testing.T) {
	b := geom.Bounds{Width: 100, Height: 100}
	flock := systems.Flock{
		prey(1, 1, 50, 0),
		prey(2, 97, 50, 0), // 4 away through the edge
		prey(3, 50, 50, 0),
	}

	got := NearestNeighborDistances(flock, b)
	want := []float64{4, 4, 47}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("nnd[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if d := NearestNeighborDistances(flock[:1], b); d != nil {
		t.Errorf("single prey nnd = %v, want nil", d)
	}
}

func TestComputeFlockMetricsEmpty(t *testing.T) {
	m := ComputeFlockMetrics(nil, geom.Bounds{Width: 10, Height: 10})
	if m != (FlockMetrics{}) {
		t.Errorf("metrics for empty flock = %+v, want zero", m)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(100)

	if c.ShouldFlush(99) {
		t.Error("should not flush before window ends")
	}
	if !c.ShouldFlush(100) {
		t.Error("should flush at window end")
	}

	c.RecordCapture()
	c.RecordCapture()
	c.RecordTick(5, 10)
	c.RecordTick(0, 10)
	c.RecordTick(0, 0) // empty flock counts as no threat

	stats := c.Flush(100, 8, 2, FlockMetrics{Polarization: 0.7})
	if stats.Captures != 2 {
		t.Errorf("captures = %d, want 2", stats.Captures)
	}
	if math.Abs(stats.CaptureRate-20) > 1e-9 {
		t.Errorf("capture rate = %v, want 20 per 1000 ticks", stats.CaptureRate)
	}
	if math.Abs(stats.ThreatenedFrac-0.5/3) > 1e-9 {
		t.Errorf("threatened = %v, want %v", stats.ThreatenedFrac, 0.5/3)
	}
	if stats.PreyCount != 8 || stats.PredCount != 2 || stats.Polarization != 0.7 {
		t.Errorf("unexpected stats %+v", stats)
	}

	next := c.Flush(200, 8, 2, FlockMetrics{})
	if next.WindowStartTick != 100 || next.Captures != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
