package gridpath

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gridpath/engine"
)

// BatchOptions configures SolveBatch.
type BatchOptions struct {
	// Concurrency bounds the number of runs in flight.
	// Defaults to runtime.GOMAXPROCS(0).
	Concurrency int
}

// BatchResult pairs a problem's position in the input with its outcome.
type BatchResult struct {
	Index  int
	Result *engine.Result
	Err    error
}

// SolveBatch runs independent searches concurrently and returns one
// result per problem, in input order. Per-problem failures are reported
// in the corresponding BatchResult and do not cancel the batch; only
// context cancellation aborts it.
//
// Batch runs bypass the step recorder: interleaving snapshots from
// concurrent runs into one trace is not meaningful. Attach a recorder
// and use Solve for runs that need tracing.
func (p *Pathfinder) SolveBatch(ctx context.Context, problems []engine.Problem, optFns ...func(o *BatchOptions)) ([]BatchResult, error) {
	opts := BatchOptions{
		Concurrency: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	start := time.Now()
	results := make([]BatchResult, len(problems))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, problem := range problems {
		g.Go(func() error {
			e, err := engine.New(problem, p.engineOpts...)
			if err != nil {
				results[i] = BatchResult{Index: i, Err: translateError(err)}
				return nil
			}

			res, err := e.Run(gctx)
			if err != nil {
				// Cancellation: stop scheduling further runs.
				results[i] = BatchResult{Index: i, Err: err}
				return err
			}

			results[i] = BatchResult{Index: i, Result: res}
			return nil
		})
	}

	err := g.Wait()

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}

	p.metrics.RecordBatchSolve(len(problems), failed, time.Since(start))
	p.logger.LogBatchSolve(ctx, len(problems), failed)

	return results, err
}
