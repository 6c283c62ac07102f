package systems

import (
	"cmp"
	"slices"

	"github.com/pthm-cable/flocking/geom"
)

// Result summarizes one tick.
type Result struct {
	Captures   []Capture // ordered by prey ID
	Threatened int       // prey that saw a predator this tick
}

// Advance runs one simulation tick in place.
//
// Every desired heading and predator target is computed from the pre-tick
// state first; integration is then applied to all creatures, and captured
// prey are removed last. The outcome does not depend on slice order.
// cmd steers the controlled prey, if any; CommandNone leaves it on autopilot.
func Advance(flock *Flock, roster Roster, p Params, b geom.Bounds, cmd Command) Result {
	return AdvanceWith(nil, flock, roster, p, b, cmd)
}

// AdvanceWith is Advance with the read-only phase spread over pool.
// The result is identical to Advance for any pool, including nil.
func AdvanceWith(pool *Pool, flock *Flock, roster Roster, p Params, b geom.Bounds, cmd Command) Result {
	return AdvanceObserved(pool, flock, roster, p, b, cmd, nil)
}

// Stage is a section of one kernel tick, in execution order.
type Stage uint8

const (
	StageNeighbors Stage = iota // neighbor classification
	StageSteering               // prey desired headings
	StagePursuit                // predator target selection
	StageIntegrate              // movement and capture removal
	NumStages
)

// AdvanceObserved is AdvanceWith calling enter as each stage begins.
// enter may be nil and must not touch the flock or roster.
func AdvanceObserved(pool *Pool, flock *Flock, roster Roster, p Params, b geom.Bounds, cmd Command, enter func(Stage)) Result {
	if enter == nil {
		enter = func(Stage) {}
	}

	var res Result
	prey := *flock

	// Snapshot phase: read-only
	enter(StageNeighbors)
	hoods := buildNeighborhoods(pool, prey, roster, p.Thresholds, b, p.GridCellSize)

	enter(StageSteering)

	preyDesired := make([]float64, len(prey))
	pool.Run(len(prey), func(start, end int) {
		for i := start; i < end; i++ {
			pr := &prey[i]
			if pr.Controlled && cmd != CommandNone {
				preyDesired[i] = ManualHeading(pr.Heading, cmd, p.ManualTurn)
				continue
			}
			preyDesired[i] = pr.DesiredHeading(SteerContext{Hood: &hoods[i], Weights: p.Weights, Bounds: b})
		}
	})
	for i := range hoods {
		if hoods[i].Threat != nil {
			res.Threatened++
		}
	}

	enter(StagePursuit)
	predDesired := make([]float64, len(roster))
	for k := range roster {
		pred := &roster[k]
		pred.Target = nil
		if idx, ok := SelectTarget(pred.Creature, prey, p.Thresholds.PursuitRadius, b); ok {
			target := prey[idx].Creature
			pred.Target = &target
		}
		predDesired[k] = pred.DesiredHeading(SteerContext{Bounds: b})
	}

	// Write phase: integrate everything, then remove
	enter(StageIntegrate)
	for i := range prey {
		prey[i].ApplyHeading(preyDesired[i], b)
	}

	marks := captureMarks{}
	for k := range roster {
		pred := &roster[k]
		pred.ApplyHeading(predDesired[k], b)
		if pred.Target != nil && Captured(pred.Pos, pred.Target.Pos, p.Thresholds.KillDistance, b) {
			marks.mark(Capture{PreyID: pred.Target.ID, PredatorID: pred.ID, Pos: pred.Target.Pos})
		}
	}

	if len(marks) > 0 {
		*flock = slices.DeleteFunc(prey, func(pr Prey) bool {
			_, hit := marks[pr.ID]
			return hit
		})
		res.Captures = make([]Capture, 0, len(marks))
		for _, c := range marks {
			res.Captures = append(res.Captures, c)
		}
		slices.SortFunc(res.Captures, func(a, b Capture) int { return cmp.Compare(a.PreyID, b.PreyID) })
	}

	return res
}
