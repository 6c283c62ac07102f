// Package game is the application shell around the simulation kernel.
// Live creatures are ark ECS entities; each tick they are copied into the
// kernel's flock and roster, advanced, and written back.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flocking/camera"
	"github.com/pthm-cable/flocking/components"
	"github.com/pthm-cable/flocking/config"
	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/inspector"
	"github.com/pthm-cable/flocking/renderer"
	"github.com/pthm-cable/flocking/systems"
	"github.com/pthm-cable/flocking/telemetry"
	"github.com/pthm-cable/flocking/ui"
)

// captureRingFrames is how long a capture marker stays on screen.
const captureRingFrames = 45

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	creatureMapper *ecs.Map5[
		components.Position,
		components.Rotation,
		components.Motion,
		components.Organism,
		components.Pursuit,
	]
	creatureFilter *ecs.Filter5[
		components.Position,
		components.Rotation,
		components.Motion,
		components.Organism,
		components.Pursuit,
	]

	// Individual component mappers for lookups
	posMap     *ecs.Map1[components.Position]
	rotMap     *ecs.Map1[components.Rotation]
	motionMap  *ecs.Map1[components.Motion]
	orgMap     *ecs.Map1[components.Organism]
	pursuitMap *ecs.Map1[components.Pursuit]

	// Creature ID -> entity
	entities map[uint32]ecs.Entity

	// Kernel inputs
	bounds geom.Bounds
	params systems.Params
	pool   *systems.Pool

	// Reused kernel buffers
	flock  systems.Flock
	roster systems.Roster

	// State
	tick          int32
	paused        bool
	nextID        uint32
	numPrey       int
	numPred       int
	totalCaptures int
	ticker        *Ticker
	lastUpdate    time.Time

	stepsPerUpdate int

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)
	pendingCaptures  []telemetry.CaptureEvent

	// Graphics (nil when headless)
	headless      bool
	camera        *camera.Camera
	background    *renderer.BackgroundRenderer
	flockRenderer *renderer.FlockRenderer
	effects       *renderer.CaptureEffects
	controls      *ui.ControlsPanel
	hud           *ui.HUD
	perfPanel     *ui.PerfPanel
	overlays      *ui.OverlayRegistry
	inspector     *inspector.Inspector
	frameTimer    *frameTimer
	following     bool

	screenWidth, screenHeight float64
}

// NewGame creates an interactive game with default options.
func NewGame(cfg *config.Config) (*Game, error) {
	return NewGameWithOptions(cfg, DefaultOptions())
}

// NewGameWithOptions creates a new game instance. cfg is copied; later
// changes to the caller's value do not affect the game. In graphical mode
// it must be called after the raylib window exists.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	cfg = cfg.Clone()
	cfg.Clamp()

	world := ecs.NewWorld()

	g := &Game{
		cfg:     cfg,
		world:   world,
		rngSeed: opts.Seed,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		creatureMapper: ecs.NewMap5[
			components.Position,
			components.Rotation,
			components.Motion,
			components.Organism,
			components.Pursuit,
		](world),
		creatureFilter: ecs.NewFilter5[
			components.Position,
			components.Rotation,
			components.Motion,
			components.Organism,
			components.Pursuit,
		](world),
		posMap:     ecs.NewMap1[components.Position](world),
		rotMap:     ecs.NewMap1[components.Rotation](world),
		motionMap:  ecs.NewMap1[components.Motion](world),
		orgMap:     ecs.NewMap1[components.Organism](world),
		pursuitMap: ecs.NewMap1[components.Pursuit](world),
		entities:   make(map[uint32]ecs.Entity),

		bounds: geom.Bounds{Width: cfg.Derived.WorldW, Height: cfg.Derived.WorldH},
		params: systems.ParamsFromConfig(cfg),
		pool:   systems.NewPool(opts.Workers),
		ticker: NewTicker(time.Duration(cfg.Sim.TickDelayMS) * time.Millisecond),

		stepsPerUpdate: max(opts.StepsPerUpdate, 1),

		collector:        telemetry.NewCollector(int32(cfg.Telemetry.StatsWindow)),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(5),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		statsCallback:    opts.StatsCallback,
		headless:         opts.Headless,
	}

	if opts.Restore != nil {
		if err := g.restore(opts.Restore); err != nil {
			return nil, fmt.Errorf("restoring snapshot: %w", err)
		}
	} else {
		g.spawnPopulation(cfg.Prey.Count, cfg.Predator.Count)
	}
	g.collector.Reset(g.tick)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	if !g.headless {
		g.initGraphics()
	}

	slog.Info("game created",
		"seed", g.rngSeed,
		"world_w", g.bounds.Width,
		"world_h", g.bounds.Height,
		"prey", g.numPrey,
		"predators", g.numPred,
		"workers", g.pool.Workers(),
		"grid_cell", g.params.GridCellSize,
	)

	return g, nil
}

// initGraphics creates the camera, renderers and UI panels.
func (g *Game) initGraphics() {
	g.screenWidth = float64(g.cfg.Screen.Width)
	g.screenHeight = float64(g.cfg.Screen.Height)

	g.camera = camera.New(g.screenWidth, g.screenHeight, g.bounds)
	g.background = renderer.NewBackgroundRenderer(12, 16, 28)
	g.flockRenderer = renderer.NewFlockRenderer()
	g.effects = renderer.NewCaptureEffects(captureRingFrames)
	g.controls = ui.NewControlsPanel(10, 10, 260)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(290, 10)
	g.overlays = ui.NewOverlayRegistry()
	g.inspector = inspector.NewInspector(int32(g.screenWidth), int32(g.screenHeight))
	g.frameTimer = newFrameTimer()
}

// Config returns the live configuration. Callers that modify it must call
// ApplyConfig for the change to take effect.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// ApplyConfig re-reads tick parameters and the tick period from the
// config. Creature speed and turn limits are fixed at creation and only
// change on Relaunch.
func (g *Game) ApplyConfig() {
	g.cfg.Clamp()
	g.params = systems.ParamsFromConfig(g.cfg)
	g.ticker.SetPeriod(time.Duration(g.cfg.Sim.TickDelayMS) * time.Millisecond)
}

// Bounds returns the world torus.
func (g *Game) Bounds() geom.Bounds {
	return g.bounds
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Counts returns the live prey and predator populations.
func (g *Game) Counts() (prey, predators int) {
	return g.numPrey, g.numPred
}

// TotalCaptures returns the captures since the last launch.
func (g *Game) TotalCaptures() int {
	return g.totalCaptures
}

// Paused reports whether ticking is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// TogglePause suspends or resumes ticking.
func (g *Game) TogglePause() {
	g.paused = !g.paused
	g.ticker.Reset()
	slog.Info("pause toggled", "paused", g.paused, "tick", g.tick)
}

// Snapshot returns the read-only render view of the last completed tick:
// prey first, then predators.
func (g *Game) Snapshot() []systems.View {
	g.loadKernelState()
	return systems.Views(g.flock, g.roster)
}

// Unload releases all resources.
func (g *Game) Unload() {
	g.pool.Stop()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
