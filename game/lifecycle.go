package game

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flocking/components"
	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
	"github.com/pthm-cable/flocking/telemetry"
)

// spawnPopulation creates prey first, then predators, at uniformly random
// positions and headings. IDs follow creation order. With manual control
// enabled the first prey is the controllable one.
func (g *Game) spawnPopulation(preyCount, predCount int) {
	for i := 0; i < preyCount; i++ {
		controlled := i == 0 && g.cfg.Manual.Enabled
		g.spawnCreature(systems.KindPrey, g.randomPosition(), g.randomHeading(),
			g.cfg.Prey.Speed, g.cfg.Prey.MaxTurnAngle, controlled)
	}
	for i := 0; i < predCount; i++ {
		g.spawnCreature(systems.KindPredator, g.randomPosition(), g.randomHeading(),
			g.cfg.Predator.Speed, g.cfg.Predator.MaxTurnAngle, false)
	}
}

func (g *Game) randomPosition() geom.Vec2 {
	return geom.Vec2{
		X: g.rng.Float64() * g.bounds.Width,
		Y: g.rng.Float64() * g.bounds.Height,
	}
}

// randomHeading returns a heading in (-Pi, Pi].
func (g *Game) randomHeading() float64 {
	return geom.NormalizeAngle(g.rng.Float64()*2*math.Pi - math.Pi)
}

// spawnCreature creates a new entity with the next ID.
func (g *Game) spawnCreature(kind systems.Kind, p geom.Vec2, heading, speed, maxTurn float64, controlled bool) ecs.Entity {
	id := g.nextID
	g.nextID++
	return g.addCreature(id, kind, p, heading, speed, maxTurn, controlled)
}

func (g *Game) addCreature(id uint32, kind systems.Kind, p geom.Vec2, heading, speed, maxTurn float64, controlled bool) ecs.Entity {
	pos := components.Position{X: p.X, Y: p.Y}
	rot := components.Rotation{Heading: heading}
	mot := components.Motion{Speed: speed, MaxTurn: maxTurn}
	org := components.Organism{ID: id, Kind: kind, Controlled: controlled}
	pur := components.Pursuit{}

	entity := g.creatureMapper.NewEntity(&pos, &rot, &mot, &org, &pur)
	g.entities[id] = entity

	if kind == systems.KindPrey {
		g.numPrey++
	} else {
		g.numPred++
	}
	return entity
}

// removeCreature destroys the entity for id. Must not be called during a query.
func (g *Game) removeCreature(id uint32) {
	entity, ok := g.entities[id]
	if !ok {
		return
	}
	kind := g.orgMap.Get(entity).Kind

	g.world.RemoveEntity(entity)
	delete(g.entities, id)

	if kind == systems.KindPrey {
		g.numPrey--
	} else {
		g.numPred--
	}
	if g.inspector != nil {
		g.inspector.Forget(id)
	}
}

// clearCreatures removes every creature entity.
func (g *Game) clearCreatures() {
	// Collect first; entities cannot be removed while a query is open
	ids := make([]uint32, 0, len(g.entities))
	query := g.creatureFilter.Query()
	for query.Next() {
		_, _, _, org, _ := query.Get()
		ids = append(ids, org.ID)
	}

	for _, id := range ids {
		g.removeCreature(id)
	}
}

// Relaunch discards every creature and creates a fresh population with
// speed and turn limits from the current config. The tick counter keeps
// running so telemetry windows stay ordered.
func (g *Game) Relaunch(preyCount, predCount int) {
	g.clearCreatures()
	g.nextID = 0
	g.totalCaptures = 0

	g.cfg.Prey.Count = max(preyCount, 0)
	g.cfg.Predator.Count = max(predCount, 0)
	g.ApplyConfig()
	g.spawnPopulation(g.cfg.Prey.Count, g.cfg.Predator.Count)

	g.collector.Reset(g.tick)
	g.bookmarkDetector.Reset()
	g.pendingCaptures = g.pendingCaptures[:0]
	g.ticker.Reset()
	if g.effects != nil {
		g.effects.Clear()
	}

	slog.Info("relaunch", "tick", g.tick, "prey", g.numPrey, "predators", g.numPred)
}

// restore recreates creatures from a snapshot. The snapshot's world size
// and tick replace the configured ones.
func (g *Game) restore(snap *telemetry.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	if snap.WorldWidth != g.bounds.Width || snap.WorldHeight != g.bounds.Height {
		slog.Warn("snapshot world size differs from config",
			"snapshot_w", snap.WorldWidth, "snapshot_h", snap.WorldHeight,
			"config_w", g.bounds.Width, "config_h", g.bounds.Height,
		)
	}
	g.bounds = geom.Bounds{Width: snap.WorldWidth, Height: snap.WorldHeight}
	g.tick = snap.Tick

	controlled := 0
	for _, e := range snap.Entities {
		p := geom.Vec2{X: e.X, Y: e.Y}
		if !g.bounds.Contains(p) {
			return fmt.Errorf("entity %d at (%.2f, %.2f) outside world", e.ID, e.X, e.Y)
		}
		if e.Controlled {
			controlled++
		}
		g.addCreature(e.ID, e.Kind, p, geom.NormalizeAngle(e.Heading), e.Speed, e.MaxTurn, e.Controlled)
		g.nextID = max(g.nextID, e.ID+1)
	}
	if controlled > 1 {
		return fmt.Errorf("snapshot has %d controllable prey, want at most 1", controlled)
	}

	slog.Info("snapshot restored", "tick", g.tick, "prey", g.numPrey, "predators", g.numPred)
	return nil
}

// createSnapshot builds a snapshot from the current state, ordered by ID.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.rngSeed,
		WorldWidth:  g.bounds.Width,
		WorldHeight: g.bounds.Height,
		Tick:        g.tick,
		Bookmark:    bookmark,
	}

	g.loadKernelState()
	for _, p := range g.flock {
		snap.Entities = append(snap.Entities, entityState(p.Creature, systems.KindPrey, p.Controlled))
	}
	for _, p := range g.roster {
		snap.Entities = append(snap.Entities, entityState(p.Creature, systems.KindPredator, false))
	}
	slices.SortFunc(snap.Entities, func(a, b telemetry.EntityState) int { return cmp.Compare(a.ID, b.ID) })

	return snap
}

func entityState(c systems.Creature, kind systems.Kind, controlled bool) telemetry.EntityState {
	return telemetry.EntityState{
		ID:         c.ID,
		Kind:       kind,
		X:          c.Pos.X,
		Y:          c.Pos.Y,
		Heading:    c.Heading,
		Speed:      c.Speed,
		MaxTurn:    c.MaxTurn,
		Controlled: controlled,
	}
}
