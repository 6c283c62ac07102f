// Package telemetry provides flock health tracking, bookmarking, and snapshots.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/flocking/systems"
)

// CaptureEvent is one row of captures.csv.
type CaptureEvent struct {
	Tick       int32   `csv:"tick"`
	PreyID     uint32  `csv:"prey_id"`
	PredatorID uint32  `csv:"predator_id"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
}

// NewCaptureEvent converts a kernel capture into an event at tick.
func NewCaptureEvent(tick int32, c systems.Capture) CaptureEvent {
	return CaptureEvent{
		Tick:       tick,
		PreyID:     c.PreyID,
		PredatorID: c.PredatorID,
		X:          c.Pos.X,
		Y:          c.Pos.Y,
	}
}

// LogValue implements slog.LogValuer.
func (e CaptureEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(e.Tick)),
		slog.Any("prey", e.PreyID),
		slog.Any("predator", e.PredatorID),
		slog.Float64("x", e.X),
		slog.Float64("y", e.Y),
	)
}
