package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flocking/systems"
)

// Phase is a timed section of one simulation step.
type Phase uint8

const (
	PhaseSnapshot  Phase = iota // ECS -> kernel flock/roster
	PhaseNeighbors              // kernel neighbor classification
	PhaseSteering               // kernel prey headings
	PhasePursuit                // kernel predator targeting
	PhaseIntegrate              // kernel movement and captures
	PhaseWriteback              // kernel -> ECS, capture removal
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{
	"snapshot", "neighbors", "steering", "pursuit", "integrate", "writeback", "telemetry",
}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases lists the step phases in execution order.
var Phases = [numPhases]Phase{
	PhaseSnapshot, PhaseNeighbors, PhaseSteering, PhasePursuit,
	PhaseIntegrate, PhaseWriteback, PhaseTelemetry,
}

// kernelPhases maps kernel stages onto step phases.
var kernelPhases = [systems.NumStages]Phase{
	systems.StageNeighbors: PhaseNeighbors,
	systems.StageSteering:  PhaseSteering,
	systems.StagePursuit:   PhasePursuit,
	systems.StageIntegrate: PhaseIntegrate,
}

type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps per-phase step timings over a rolling window of ticks.
// It is not safe for concurrent use.
type PerfCollector struct {
	ticks     []tickSample
	tickNext  int
	tickCount int

	frames     []time.Duration
	frameNext  int
	frameCount int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	open       bool

	lastFrame time.Time
	now       func() time.Time
}

// NewPerfCollector returns a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	window = max(window, 1)
	return &PerfCollector{
		ticks:  make([]tickSample, window),
		frames: make([]time.Duration, window),
		now:    time.Now,
	}
}

// StartTick begins timing a step.
func (pc *PerfCollector) StartTick() {
	pc.cur = tickSample{}
	pc.open = false
	pc.tickStart = pc.now()
}

// Begin closes the running phase, if any, and starts timing p.
func (pc *PerfCollector) Begin(p Phase) {
	t := pc.now()
	pc.closePhase(t)
	pc.phase, pc.phaseStart, pc.open = p, t, true
}

// EnterStage starts the phase for a kernel stage. It matches the observer
// signature of systems.AdvanceObserved.
func (pc *PerfCollector) EnterStage(s systems.Stage) {
	if s < systems.NumStages {
		pc.Begin(kernelPhases[s])
	}
}

func (pc *PerfCollector) closePhase(t time.Time) {
	if pc.open {
		pc.cur.phases[pc.phase] += t.Sub(pc.phaseStart)
		pc.open = false
	}
}

// EndTick stores the finished step in the window.
func (pc *PerfCollector) EndTick() {
	t := pc.now()
	pc.closePhase(t)
	pc.cur.total = t.Sub(pc.tickStart)

	pc.ticks[pc.tickNext] = pc.cur
	pc.tickNext = (pc.tickNext + 1) % len(pc.ticks)
	pc.tickCount = min(pc.tickCount+1, len(pc.ticks))
}

// RecordFrame marks the end of a rendered frame.
func (pc *PerfCollector) RecordFrame() {
	t := pc.now()
	if !pc.lastFrame.IsZero() {
		pc.frames[pc.frameNext] = t.Sub(pc.lastFrame)
		pc.frameNext = (pc.frameNext + 1) % len(pc.frames)
		pc.frameCount = min(pc.frameCount+1, len(pc.frames))
	}
	pc.lastFrame = t
}

// PhaseStat is the average cost of one phase over the window.
type PhaseStat struct {
	Phase Phase
	Avg   time.Duration
	Pct   float64 // share of the average tick, 0-100
}

// PerfStats summarizes the current window.
type PerfStats struct {
	Ticks          int
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	Phases         [numPhases]PhaseStat
	TicksPerSecond float64
	FrameDuration  time.Duration
	FPS            float64
}

// Stats computes window averages. An empty window yields zero values.
func (pc *PerfCollector) Stats() PerfStats {
	var s PerfStats
	for _, p := range Phases {
		s.Phases[p].Phase = p
	}

	if n := pc.tickCount; n > 0 {
		totals := make([]float64, n)
		column := make([]float64, n)
		for i := range totals {
			totals[i] = float64(pc.ticks[i].total)
		}
		avg := stat.Mean(totals, nil)

		s.Ticks = n
		s.AvgTick = time.Duration(avg)
		s.MinTick = time.Duration(floats.Min(totals))
		s.MaxTick = time.Duration(floats.Max(totals))
		if avg > 0 {
			s.TicksPerSecond = float64(time.Second) / avg
		}

		for _, p := range Phases {
			for i := range column {
				column[i] = float64(pc.ticks[i].phases[p])
			}
			pavg := stat.Mean(column, nil)
			s.Phases[p].Avg = time.Duration(pavg)
			if avg > 0 {
				s.Phases[p].Pct = pavg / avg * 100
			}
		}
	}

	if m := pc.frameCount; m > 0 {
		frames := make([]float64, m)
		for i := range frames {
			frames[i] = float64(pc.frames[i])
		}
		mean := stat.Mean(frames, nil)
		s.FrameDuration = time.Duration(mean)
		if mean > 0 {
			s.FPS = float64(time.Second) / mean
		}
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 5+len(Phases))
	attrs = append(attrs,
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("min_tick_us", s.MinTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	)
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, ps := range s.Phases {
		attrs = append(attrs, slog.Float64(ps.Phase.String()+"_pct", ps.Pct))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the perf window using slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	SnapshotPct  float64 `csv:"snapshot_pct"`
	NeighborsPct float64 `csv:"neighbors_pct"`
	SteeringPct  float64 `csv:"steering_pct"`
	PursuitPct   float64 `csv:"pursuit_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	WritebackPct float64 `csv:"writeback_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MinTickUS:    s.MinTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		SnapshotPct:  s.Phases[PhaseSnapshot].Pct,
		NeighborsPct: s.Phases[PhaseNeighbors].Pct,
		SteeringPct:  s.Phases[PhaseSteering].Pct,
		PursuitPct:   s.Phases[PhasePursuit].Pct,
		IntegratePct: s.Phases[PhaseIntegrate].Pct,
		WritebackPct: s.Phases[PhaseWriteback].Pct,
		TelemetryPct: s.Phases[PhaseTelemetry].Pct,
	}
}
