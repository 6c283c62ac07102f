package game

import (
	"sort"
	"time"

	"github.com/pthm-cable/flocking/ui"
)

// frameTimer tracks how long each named section of a frame takes.
type frameTimer struct {
	samples    map[string][]time.Duration
	maxSamples int
}

func newFrameTimer() *frameTimer {
	return &frameTimer{
		samples:    make(map[string][]time.Duration),
		maxSamples: 120, // ~2 seconds of samples at 60fps
	}
}

// measure runs fn and records its duration under name.
func (p *frameTimer) measure(name string, fn func()) {
	start := time.Now()
	fn()
	p.record(name, time.Since(start))
}

func (p *frameTimer) record(name string, d time.Duration) {
	s := append(p.samples[name], d)
	if len(s) > p.maxSamples {
		s = s[1:]
	}
	p.samples[name] = s
}

// avg returns the average duration for the named section.
func (p *frameTimer) avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// rows returns section averages sorted slowest first.
func (p *frameTimer) rows() []ui.PhaseTime {
	rows := make([]ui.PhaseTime, 0, len(p.samples))
	for name := range p.samples {
		rows = append(rows, ui.PhaseTime{Name: name, Avg: p.avg(name)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Avg != rows[j].Avg {
			return rows[i].Avg > rows[j].Avg
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
