package game

import (
	"cmp"
	"slices"
	"time"

	"github.com/pthm-cable/flocking/components"
	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
	"github.com/pthm-cable/flocking/telemetry"
)

// Step runs exactly one simulation tick, whether or not the game is paused.
// cmd steers the controllable prey for this tick.
func (g *Game) Step(cmd systems.Command) systems.Result {
	g.perfCollector.StartTick()

	// 1. Copy ECS state into the kernel's flock and roster
	g.perfCollector.Begin(telemetry.PhaseSnapshot)
	g.loadKernelState()

	// 2. Advance the kernel, timing each of its stages
	res := systems.AdvanceObserved(g.pool, &g.flock, g.roster, g.params, g.bounds, cmd, g.perfCollector.EnterStage)
	g.tick++

	// 3. Write results back and remove captured prey
	g.perfCollector.Begin(telemetry.PhaseWriteback)
	g.storeKernelState()
	g.applyCaptures(res.Captures)

	// 4. Telemetry
	g.perfCollector.Begin(telemetry.PhaseTelemetry)
	g.recordTick(res)
	g.flushTelemetry()

	g.perfCollector.EndTick()
	return res
}

// loadKernelState fills the reused flock and roster buffers from the ECS,
// ordered by ID so results do not depend on archetype storage order.
func (g *Game) loadKernelState() {
	g.flock = g.flock[:0]
	g.roster = g.roster[:0]

	query := g.creatureFilter.Query()
	for query.Next() {
		pos, rot, mot, org, _ := query.Get()
		c := systems.Creature{
			ID:      org.ID,
			Pos:     geom.Vec2{X: pos.X, Y: pos.Y},
			Heading: rot.Heading,
			Speed:   mot.Speed,
			MaxTurn: mot.MaxTurn,
		}
		if org.Kind == systems.KindPredator {
			g.roster = append(g.roster, systems.Predator{Creature: c})
		} else {
			g.flock = append(g.flock, systems.Prey{Creature: c, Controlled: org.Controlled})
		}
	}

	slices.SortFunc(g.flock, func(a, b systems.Prey) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(g.roster, func(a, b systems.Predator) int { return cmp.Compare(a.ID, b.ID) })
}

// storeKernelState copies positions, headings and pursuit targets back
// into the ECS. Captured prey are already gone from the flock and are
// left untouched here.
func (g *Game) storeKernelState() {
	for i := range g.flock {
		g.writeCreature(&g.flock[i].Creature)
	}
	for i := range g.roster {
		pred := &g.roster[i]
		g.writeCreature(&pred.Creature)

		pur := g.pursuitMap.Get(g.entities[pred.ID])
		if pred.Target != nil {
			*pur = components.Pursuit{TargetID: pred.Target.ID, HasTarget: true}
		} else {
			*pur = components.Pursuit{}
		}
	}
}

func (g *Game) writeCreature(c *systems.Creature) {
	entity := g.entities[c.ID]
	pos := g.posMap.Get(entity)
	pos.X, pos.Y = c.Pos.X, c.Pos.Y
	g.rotMap.Get(entity).Heading = c.Heading
}

// applyCaptures removes captured prey entities and queues capture events.
func (g *Game) applyCaptures(captures []systems.Capture) {
	for _, c := range captures {
		g.removeCreature(c.PreyID)
		g.totalCaptures++
		g.pendingCaptures = append(g.pendingCaptures, telemetry.NewCaptureEvent(g.tick, c))
		if g.effects != nil {
			g.effects.Add(c.Pos)
		}
	}
}

// UpdateHeadless runs stepsPerUpdate ticks back to back without graphics
// or wall-clock pacing.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(systems.CommandNone)
	}
}

// Update handles input and runs the ticks due since the last frame.
// A tick is never split: leftover time carries into the next frame.
func (g *Game) Update() {
	now := time.Now()
	elapsed := time.Duration(0)
	if !g.lastUpdate.IsZero() {
		elapsed = now.Sub(g.lastUpdate)
	}
	g.lastUpdate = now

	cmd := g.handleInput()

	if g.effects != nil {
		g.effects.Update()
	}

	if g.paused {
		return
	}

	due := g.ticker.Advance(elapsed)
	for i := 0; i < due; i++ {
		g.Step(cmd)
	}
}
