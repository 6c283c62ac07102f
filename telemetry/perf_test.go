package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time      { return c.t }
func (c *fakeClock) add(d time.Duration) { c.t = c.t.Add(d) }

var testWorld = geom.Bounds{Width: 100, Height: 100}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

// runTick records one step spending us[i] microseconds in Phases[i].
func runTick(pc *PerfCollector, clk *fakeClock, us [numPhases]int) {
	pc.StartTick()
	for i, p := range Phases {
		pc.Begin(p)
		clk.add(time.Duration(us[i]) * time.Microsecond)
	}
	pc.EndTick()
}

func TestPerfCollectorPhaseShares(t *testing.T) {
	pc, clk := newTestCollector(10)
	for i := 0; i < 4; i++ {
		runTick(pc, clk, [numPhases]int{10, 40, 20, 5, 15, 5, 5})
	}

	s := pc.Stats()
	if s.Ticks != 4 || s.AvgTick != 100*time.Microsecond {
		t.Fatalf("ticks=%d avg=%v, want 4 and 100us", s.Ticks, s.AvgTick)
	}
	if !near(s.Phases[PhaseNeighbors].Pct, 40) || s.Phases[PhaseSteering].Avg != 20*time.Microsecond {
		t.Errorf("neighbors=%+v steering=%+v", s.Phases[PhaseNeighbors], s.Phases[PhaseSteering])
	}
	var total float64
	for _, ps := range s.Phases {
		total += ps.Pct
	}
	if !near(total, 100) {
		t.Errorf("phase shares sum to %v, want 100", total)
	}
	if !near(s.TicksPerSecond, 10000) {
		t.Errorf("ticks/sec = %v, want 10000", s.TicksPerSecond)
	}
}

func TestPerfCollectorWindowDropsOldTicks(t *testing.T) {
	pc, clk := newTestCollector(3)
	runTick(pc, clk, [numPhases]int{1000})
	for i := 0; i < 3; i++ {
		runTick(pc, clk, [numPhases]int{10, 10, 10, 10, 10, 10, 10})
	}

	s := pc.Stats()
	if s.Ticks != 3 {
		t.Fatalf("ticks = %d, want window size 3", s.Ticks)
	}
	if s.MaxTick != 70*time.Microsecond || s.MinTick != 70*time.Microsecond {
		t.Errorf("min/max = %v/%v, the 1ms tick should have left the window", s.MinTick, s.MaxTick)
	}
}

func TestPerfCollectorMinMax(t *testing.T) {
	pc, clk := newTestCollector(8)
	runTick(pc, clk, [numPhases]int{0, 30})
	runTick(pc, clk, [numPhases]int{0, 90})
	runTick(pc, clk, [numPhases]int{0, 60})

	s := pc.Stats()
	if s.MinTick != 30*time.Microsecond || s.MaxTick != 90*time.Microsecond || s.AvgTick != 60*time.Microsecond {
		t.Errorf("min/avg/max = %v/%v/%v", s.MinTick, s.AvgTick, s.MaxTick)
	}
}

func TestPerfCollectorKernelStages(t *testing.T) {
	pc, clk := newTestCollector(4)
	pc.StartTick()
	pc.Begin(PhaseSnapshot)
	clk.add(5 * time.Microsecond)

	var flock systems.Flock
	systems.AdvanceObserved(nil, &flock, nil, systems.Params{}, testWorld, systems.CommandNone, func(s systems.Stage) {
		pc.EnterStage(s)
		clk.add(10 * time.Microsecond)
	})

	pc.Begin(PhaseWriteback)
	clk.add(5 * time.Microsecond)
	pc.EndTick()

	s := pc.Stats()
	for _, p := range []Phase{PhaseNeighbors, PhaseSteering, PhasePursuit, PhaseIntegrate} {
		if s.Phases[p].Avg != 10*time.Microsecond {
			t.Errorf("%v avg = %v, want 10us", p, s.Phases[p].Avg)
		}
	}
	if s.AvgTick != 50*time.Microsecond {
		t.Errorf("tick = %v, want 50us", s.AvgTick)
	}
	if s.Phases[PhaseTelemetry].Avg != 0 {
		t.Error("telemetry phase never began")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	s := NewPerfCollector(10).Stats()
	if s.Ticks != 0 || s.AvgTick != 0 || s.TicksPerSecond != 0 || s.FPS != 0 {
		t.Errorf("empty stats = %+v", s)
	}
	if s.Phases[PhaseIntegrate].Phase != PhaseIntegrate {
		t.Error("phase rows should be labelled even when empty")
	}
}

func TestPerfCollectorFrames(t *testing.T) {
	pc, clk := newTestCollector(4)
	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("a single frame has no interval")
	}
	for i := 0; i < 3; i++ {
		clk.add(20 * time.Millisecond)
		pc.RecordFrame()
	}

	s := pc.Stats()
	if s.FrameDuration != 20*time.Millisecond || !near(s.FPS, 50) {
		t.Errorf("frame=%v fps=%v, want 20ms and 50", s.FrameDuration, s.FPS)
	}
}

func TestPhaseNames(t *testing.T) {
	if PhaseNeighbors.String() != "neighbors" || PhaseTelemetry.String() != "telemetry" {
		t.Error("phase names")
	}
	if numPhases.String() != "unknown" {
		t.Error("out-of-range phase should be unknown")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	pc, clk := newTestCollector(2)
	runTick(pc, clk, [numPhases]int{10, 40, 20, 5, 15, 5, 5})

	row := pc.Stats().ToCSV(400)
	if row.WindowEnd != 400 || row.AvgTickUS != 100 {
		t.Errorf("row = %+v", row)
	}
	if !near(row.NeighborsPct, 40) || !near(row.IntegratePct, 15) || !near(row.TelemetryPct, 5) {
		t.Errorf("phase columns = %+v", row)
	}
}
