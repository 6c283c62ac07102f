package game

import (
	"log/slog"

	"github.com/pthm-cable/flocking/systems"
	"github.com/pthm-cable/flocking/telemetry"
)

// recordTick feeds one tick's result to the window collector.
func (g *Game) recordTick(res systems.Result) {
	for range res.Captures {
		g.collector.RecordCapture()
	}
	// Threatened counts prey before removal
	g.collector.RecordTick(res.Threatened, len(g.flock)+len(res.Captures))

	if g.logStats {
		for _, c := range res.Captures {
			slog.Info("capture", "event", telemetry.NewCaptureEvent(g.tick, c))
		}
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	// Capture events are batched per window
	if err := g.outputManager.WriteCaptures(g.pendingCaptures); err != nil {
		slog.Error("failed to write captures", "error", err)
	}
	g.pendingCaptures = g.pendingCaptures[:0]

	// Flock shape is sampled from the post-tick flock
	metrics := telemetry.ComputeFlockMetrics(g.flock, g.bounds)
	stats := g.collector.Flush(g.tick, g.numPrey, g.numPred, metrics)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		bm.LogBookmark()

		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}

		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// SaveSnapshot writes the current state to the snapshot directory.
// It returns the file path, or "" when no directory is configured.
func (g *Game) SaveSnapshot() string {
	if g.snapshotDir == "" {
		return ""
	}
	return g.saveSnapshot(nil)
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) string {
	path, err := telemetry.SaveSnapshot(g.createSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return ""
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
	return path
}
