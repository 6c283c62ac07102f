package systems

import "github.com/pthm-cable/flocking/geom"

// SelectTarget returns the index in flock of the prey nearest to pred.
// Ties go to the lowest prey ID. A radius > 0 ignores prey at or beyond it.
func SelectTarget(pred Creature, flock Flock, radius float64, b geom.Bounds) (int, bool) {
	best := -1
	var bestSq float64
	for i := range flock {
		dsq := b.ShortestDelta(pred.Pos, flock[i].Pos).LengthSq()
		if radius > 0 && dsq >= radius*radius {
			continue
		}
		if best < 0 || dsq < bestSq || (dsq == bestSq && flock[i].ID < flock[best].ID) {
			best = i
			bestSq = dsq
		}
	}
	return best, best >= 0
}

// Captured reports whether a predator at pos is close enough to take a prey
// whose pre-tick position is target.
func Captured(pos, target geom.Vec2, killDistance float64, b geom.Bounds) bool {
	return b.ShortestDelta(pos, target).LengthSq() < killDistance*killDistance
}

// Capture records one prey taken during a tick.
type Capture struct {
	PreyID     uint32
	PredatorID uint32    // lowest predator ID that marked the prey
	Pos        geom.Vec2 // prey position before the tick
}

// captureMarks collects capture marks; a prey marked more than once is
// recorded once.
type captureMarks map[uint32]Capture

func (m captureMarks) mark(c Capture) {
	if prev, ok := m[c.PreyID]; ok && prev.PredatorID <= c.PredatorID {
		return
	}
	m[c.PreyID] = c
}
