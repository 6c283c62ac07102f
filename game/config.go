package game

import "github.com/pthm-cable/flocking/telemetry"

// Options holds configuration for game initialization that is not part of
// the simulation config.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool   // log each telemetry window via slog
	OutputDir      string // CSV logs and config copy (empty = disabled)
	SnapshotDir    string // JSON snapshots on bookmarks (empty = disabled)
	StepsPerUpdate int    // headless ticks per UpdateHeadless call
	Workers        int    // kernel worker goroutines (0 = GOMAXPROCS, 1 = sequential)

	// Restore starts from a saved snapshot instead of a seeded population.
	Restore *telemetry.Snapshot

	// StatsCallback receives every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// DefaultOptions returns options for an interactive run.
func DefaultOptions() Options {
	return Options{
		Seed:           1,
		StepsPerUpdate: 1,
	}
}
