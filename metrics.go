package gridpath

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/gridpath/engine"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    solveCounter   prometheus.Counter
//	    solveHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSolve(status engine.Status, steps int, duration time.Duration, err error) {
//	    p.solveCounter.Inc()
//	    // ... record status, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSolve is called after each solve operation.
	// status is the terminal run state, steps is the number of
	// expansions, duration is the total time taken, err is nil unless
	// the run was abandoned.
	RecordSolve(status engine.Status, steps int, duration time.Duration, err error)

	// RecordStep is called after each expansion step.
	// stale marks a step that drained an outdated duplicate.
	RecordStep(stale bool)

	// RecordBatchSolve is called after each batch solve operation.
	// count is the number of problems attempted, failed is the number
	// that errored, duration is the total time taken.
	RecordBatchSolve(count, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSolve(engine.Status, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordStep(bool)                                      {}
func (NoopMetricsCollector) RecordBatchSolve(int, int, time.Duration)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SolveCount      atomic.Int64
	SolveSucceeded  atomic.Int64
	SolveExhausted  atomic.Int64
	SolveErrors     atomic.Int64
	SolveTotalNanos atomic.Int64
	StepCount       atomic.Int64
	StaleSteps      atomic.Int64
	BatchSolveCount atomic.Int64
	BatchSolveItems atomic.Int64
	BatchFailed     atomic.Int64
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(status engine.Status, steps int, duration time.Duration, err error) {
	b.SolveCount.Add(1)
	b.SolveTotalNanos.Add(duration.Nanoseconds())

	if err != nil {
		b.SolveErrors.Add(1)
		return
	}

	switch status {
	case engine.StatusSucceeded:
		b.SolveSucceeded.Add(1)
	case engine.StatusExhausted:
		b.SolveExhausted.Add(1)
	}
}

// RecordStep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStep(stale bool) {
	b.StepCount.Add(1)
	if stale {
		b.StaleSteps.Add(1)
	}
}

// RecordBatchSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchSolve(count, failed int, duration time.Duration) {
	b.BatchSolveCount.Add(1)
	b.BatchSolveItems.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SolveCount:      b.SolveCount.Load(),
		SolveSucceeded:  b.SolveSucceeded.Load(),
		SolveExhausted:  b.SolveExhausted.Load(),
		SolveErrors:     b.SolveErrors.Load(),
		SolveAvgNanos:   b.getAvgSolveNanos(),
		StepCount:       b.StepCount.Load(),
		StaleSteps:      b.StaleSteps.Load(),
		BatchSolveCount: b.BatchSolveCount.Load(),
		BatchSolveItems: b.BatchSolveItems.Load(),
		BatchFailed:     b.BatchFailed.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSolveNanos() int64 {
	count := b.SolveCount.Load()
	if count == 0 {
		return 0
	}
	return b.SolveTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SolveCount      int64
	SolveSucceeded  int64
	SolveExhausted  int64
	SolveErrors     int64
	SolveAvgNanos   int64
	StepCount       int64
	StaleSteps      int64
	BatchSolveCount int64
	BatchSolveItems int64
	BatchFailed     int64
}
