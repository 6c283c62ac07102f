package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	captures       int
	ticks          int
	threatenedFrac float64 // running sum of per-tick fractions
}

// NewCollector creates a new stats collector that flushes every
// windowTicks ticks.
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: windowTicks}
}

// RecordCapture records one prey capture.
func (c *Collector) RecordCapture() {
	c.captures++
}

// RecordTick records how many of the prey had a predator in sight.
func (c *Collector) RecordTick(threatened, preyCount int) {
	c.ticks++
	if preyCount > 0 {
		c.threatenedFrac += float64(threatened) / float64(preyCount)
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, preyCount, predCount int, m FlockMetrics) WindowStats {
	var captureRate, threatened float64
	if elapsed := currentTick - c.windowStartTick; elapsed > 0 {
		captureRate = float64(c.captures) * 1000 / float64(elapsed)
	}
	if c.ticks > 0 {
		threatened = c.threatenedFrac / float64(c.ticks)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		PreyCount:       preyCount,
		PredCount:       predCount,
		Captures:        c.captures,
		CaptureRate:     captureRate,
		ThreatenedFrac:  threatened,
		Polarization:    m.Polarization,
		NNDMean:         m.NNDMean,
		NNDP10:          m.NNDP10,
		NNDP50:          m.NNDP50,
		NNDP90:          m.NNDP90,
	}

	c.Reset(currentTick)
	return stats
}

// Reset discards the current window and starts a new one at tick.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	c.captures = 0
	c.ticks = 0
	c.threatenedFrac = 0
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
