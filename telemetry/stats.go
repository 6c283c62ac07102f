package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population counts at window end
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Hunting during window
	Captures    int     `csv:"captures"`
	CaptureRate float64 `csv:"capture_rate"` // captures per 1000 ticks

	// Mean fraction of prey with a predator in sight, averaged over ticks
	ThreatenedFrac float64 `csv:"threatened_frac"`

	// Flock shape (sampled at window end)
	Polarization float64 `csv:"polarization"`
	NNDMean      float64 `csv:"nnd_mean"`
	NNDP10       float64 `csv:"nnd_p10"`
	NNDP50       float64 `csv:"nnd_p50"`
	NNDP90       float64 `csv:"nnd_p90"`
}

// FlockMetrics describes the shape of the flock at one instant.
type FlockMetrics struct {
	Polarization float64
	NNDMean      float64
	NNDP10       float64
	NNDP50       float64
	NNDP90       float64
}

// Distribution returns the mean and empirical 10th/50th/90th percentiles.
// Returns zeros for an empty slice.
func Distribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// Polarization is the length of the mean unit heading vector: 1 when every
// prey faces the same way, near 0 for random headings.
func Polarization(flock systems.Flock) float64 {
	if len(flock) == 0 {
		return 0
	}
	xs := make([]float64, len(flock))
	ys := make([]float64, len(flock))
	for i, p := range flock {
		xs[i], ys[i] = math.Cos(p.Heading), math.Sin(p.Heading)
	}
	return math.Hypot(stat.Mean(xs, nil), stat.Mean(ys, nil))
}

// NearestNeighborDistances returns, for every prey, the toroidal distance to
// its closest flockmate. Empty when fewer than two prey exist.
func NearestNeighborDistances(flock systems.Flock, b geom.Bounds) []float64 {
	if len(flock) < 2 {
		return nil
	}
	out := make([]float64, len(flock))
	for i := range flock {
		best := math.Inf(1)
		for j := range flock {
			if i == j {
				continue
			}
			if d := b.ShortestDelta(flock[i].Pos, flock[j].Pos).LengthSq(); d < best {
				best = d
			}
		}
		out[i] = math.Sqrt(best)
	}
	return out
}

// ComputeFlockMetrics samples polarization and nearest-neighbor spacing.
func ComputeFlockMetrics(flock systems.Flock, b geom.Bounds) FlockMetrics {
	mean, p10, p50, p90 := Distribution(NearestNeighborDistances(flock, b))
	return FlockMetrics{
		Polarization: Polarization(flock),
		NNDMean:      mean,
		NNDP10:       p10,
		NNDP50:       p50,
		NNDP90:       p90,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("captures", s.Captures),
		slog.Float64("capture_rate", s.CaptureRate),
		slog.Float64("threatened_frac", s.ThreatenedFrac),
		slog.Float64("polarization", s.Polarization),
		slog.Float64("nnd_mean", s.NNDMean),
		slog.Float64("nnd_p10", s.NNDP10),
		slog.Float64("nnd_p50", s.NNDP50),
		slog.Float64("nnd_p90", s.NNDP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
