package gridpath

import (
	"log/slog"

	"github.com/hupe1980/gridpath/engine"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	recorder         StepRecorder
	engineOpts       []func(o *engine.Options)
}

// Option configures Pathfinder behavior.
type Option func(*options)

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := gridpath.NewJSONLogger(slog.LevelDebug)
//	pf := gridpath.New(gridpath.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
//
// Example with BasicMetricsCollector:
//
//	metrics := &gridpath.BasicMetricsCollector{}
//	pf := gridpath.New(gridpath.WithMetricsCollector(metrics))
//	// ... solve ...
//	stats := metrics.GetStats()
//	fmt.Printf("Solves: %d, Steps: %d\n", stats.SolveCount, stats.StepCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithRecorder attaches a step recorder; every snapshot of a Solve run
// is forwarded to it in step order. Pass nil to disable recording.
func WithRecorder(r StepRecorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithOrdering overrides the frontier ordering. The default is
// engine.AStarOrdering; engine.GreedyOrdering trades optimality for
// speed.
func WithOrdering(ordering engine.Ordering) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, func(eo *engine.Options) {
			eo.Ordering = ordering
		})
	}
}

// WithFrontierCapacity pre-sizes the frontier heap for large grids.
func WithFrontierCapacity(capacity int) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, func(eo *engine.Options) {
			eo.FrontierCapacity = capacity
		})
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
