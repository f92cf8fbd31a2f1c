// Package gridpath provides a fully inspectable weighted A* search
// engine over two-cost terrain grids.
//
// The engine exposes every expansion as a snapshot (current node,
// frontier, closed set, diagnostics), so callers can drive a run step
// by step for visualization and teaching, or let it run to completion:
//
//	ctx := context.Background()
//
//	g, err := grid.New(10, 10, model.Loc(0, 0), model.Loc(9, 9), func(o *grid.Options) {
//	    o.MudProbability = 0.3
//	    o.Seed = 42
//	})
//	if err != nil {
//	    panic(err)
//	}
//
//	pf := gridpath.New(gridpath.WithLogLevel(slog.LevelDebug))
//	result, err := pf.Solve(ctx, g)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(result.Found, result.Cost, result.Diagnostics.Efficiency)
//
// Manual stepping:
//
//	e, _ := pf.Stepper(g)
//	for snap := e.Step(); !snap.Done(); snap = e.Step() {
//	    render(snap)
//	}
//
// Terrain is frozen at construction and runs are single-use: state
// lives in the Engine and is discarded with it. Exhaustion (no path)
// is a well-formed outcome, not an error.
package gridpath

import (
	"context"
	"time"

	"github.com/hupe1980/gridpath/engine"
)

// StepRecorder receives every snapshot of a run, in step order. Trace
// writers implement this; see the trace package.
type StepRecorder interface {
	Record(ctx context.Context, snap engine.StepSnapshot) error
}

// Pathfinder is the front door: it builds engines, drives runs, and
// fans snapshots out to logging, metrics and trace recording. A
// Pathfinder is immutable after New and safe for concurrent Solve
// calls; each call owns its own Engine.
type Pathfinder struct {
	logger     *Logger
	metrics    MetricsCollector
	recorder   StepRecorder
	engineOpts []func(o *engine.Options)
}

// New creates a Pathfinder.
func New(optFns ...Option) *Pathfinder {
	opts := applyOptions(optFns)

	return &Pathfinder{
		logger:     opts.logger,
		metrics:    opts.metricsCollector,
		recorder:   opts.recorder,
		engineOpts: opts.engineOpts,
	}
}

// Stepper builds an engine for manual stepping. The caller owns the
// run; logging, metrics and recording are bypassed.
func (p *Pathfinder) Stepper(problem engine.Problem) (*engine.Engine, error) {
	e, err := engine.New(problem, p.engineOpts...)
	if err != nil {
		return nil, translateError(err)
	}
	return e, nil
}

// Solve runs the search to termination. The context is checked between
// expansions; cancellation abandons the run and returns the context's
// error. A recorder failure aborts the run, a finished run with no
// path does not.
func (p *Pathfinder) Solve(ctx context.Context, problem engine.Problem) (*engine.Result, error) {
	start := time.Now()

	e, err := engine.New(problem, p.engineOpts...)
	if err != nil {
		err = translateError(err)
		p.metrics.RecordSolve(engine.StatusRunning, 0, time.Since(start), err)
		p.logger.LogSolve(ctx, nil, err)

		return nil, err
	}

	for e.Status() == engine.StatusRunning {
		if err := ctx.Err(); err != nil {
			p.metrics.RecordSolve(e.Status(), e.StepIndex(), time.Since(start), err)
			p.logger.LogSolve(ctx, nil, err)

			return nil, err
		}

		snap := e.Step()

		p.metrics.RecordStep(snap.Stale)
		p.logger.LogStep(ctx, snap)

		if p.recorder != nil {
			if err := p.recorder.Record(ctx, snap); err != nil {
				p.metrics.RecordSolve(e.Status(), e.StepIndex(), time.Since(start), err)
				p.logger.LogSolve(ctx, nil, err)

				return nil, err
			}
		}
	}

	result, _ := e.Result()

	p.metrics.RecordSolve(e.Status(), e.StepIndex(), time.Since(start), nil)
	p.logger.LogSolve(ctx, result, nil)

	return result, nil
}
