package main

import (
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flocking/config"
	"github.com/pthm-cable/flocking/game"
	"github.com/pthm-cable/flocking/systems"
	"github.com/pthm-cable/flocking/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu   sync.Mutex
	last evalSummary // most recent Evaluate call
}

// evalSummary aggregates the runs of one evaluation.
type evalSummary struct {
	Survivors    float64 // mean prey left at the end
	Polarization float64 // mean flock polarization over all windows
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivors int
	windows   []telemetry.WindowStats
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// Last returns the summary of the most recent evaluation.
func (fe *FitnessEvaluator) Last() evalSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a raw parameter vector (lower = better):
// the negated mean number of surviving prey across all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Seeds run in parallel; each game is independent
	results := make([]runResult, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = fe.runSimulation(cfg, seed)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}

	survivors := make([]float64, len(results))
	var polarization []float64
	for i, r := range results {
		survivors[i] = float64(r.survivors)
		for _, w := range r.windows {
			polarization = append(polarization, w.Polarization)
		}
	}

	summary := evalSummary{Survivors: stat.Mean(survivors, nil)}
	if len(polarization) > 0 {
		summary.Polarization = stat.Mean(polarization, nil)
	}

	fe.mu.Lock()
	fe.last = summary
	fe.mu.Unlock()

	return -summary.Survivors, nil
}

// runSimulation runs one headless game for maxTicks or until the prey are gone.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (runResult, error) {
	var res runResult
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:     seed,
		Headless: true,
		Workers:  1, // seeds already run in parallel
		StatsCallback: func(s telemetry.WindowStats) {
			res.windows = append(res.windows, s)
		},
	})
	if err != nil {
		return res, err
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.Step(systems.CommandNone)
		if prey, _ := g.Counts(); prey == 0 {
			break
		}
	}
	res.survivors, _ = g.Counts()
	return res, nil
}
