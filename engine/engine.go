package engine

import (
	"context"
	"errors"

	"github.com/hupe1980/gridpath/internal/closedset"
	"github.com/hupe1980/gridpath/model"
	"github.com/hupe1980/gridpath/queue"
)

// ErrNilProblem is returned when an Engine is constructed without a problem.
var ErrNilProblem = errors.New("engine: problem must not be nil")

// Problem is the contract a search domain satisfies. All operations are
// pure with respect to the domain's static cost map.
//
// Heuristic MUST be admissible (never overestimate the true remaining
// cost) and consistent for the optimality and no-reopening guarantees
// to hold. Violations are not detectable at runtime; they silently
// degrade the result from optimal to merely valid.
type Problem interface {
	// Start returns the initial location.
	Start() model.Location

	// IsGoal reports whether the location satisfies the goal test.
	IsGoal(loc model.Location) bool

	// Heuristic estimates the remaining cost from loc to the goal.
	// Must be non-negative.
	Heuristic(loc model.Location) float64

	// Successors returns the outgoing edges of loc with positive costs.
	// The order of the returned slice is implementation-defined and
	// affects only tie-break order among equal-cost candidates.
	Successors(loc model.Location) []model.Successor
}

// Status is the run state of an Engine.
type Status uint8

const (
	// StatusRunning means the frontier still holds candidates and no
	// goal has been popped.
	StatusRunning Status = iota
	// StatusSucceeded means a goal node was popped and a path exists.
	StatusSucceeded
	// StatusExhausted means the frontier drained without reaching a
	// goal: no path exists. This is a well-formed outcome, not an error.
	StatusExhausted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusExhausted:
		return "exhausted"
	default:
		return "running"
	}
}

// Diagnostics summarizes a finished run.
type Diagnostics struct {
	// PathLength is the number of actions in the reconstructed path.
	// Zero when no path was found or when start equals goal.
	PathLength int

	// TotalExplored is the size of the closed set at termination.
	TotalExplored uint64

	// Efficiency is PathLength / TotalExplored as a percentage.
	// Reported as 0 when TotalExplored is 0.
	Efficiency float64
}

// Result is the terminal outcome of a run.
type Result struct {
	// Found reports whether a path to the goal exists.
	Found bool

	// Path is the action sequence from start to goal; nil when !Found.
	Path []model.Action

	// Cost is the g-cost of the goal node; 0 when !Found.
	Cost float64

	// Diagnostics holds the run summary, computed once at termination.
	Diagnostics Diagnostics
}

// Options configures an Engine.
type Options struct {
	// Ordering ranks frontier nodes. Defaults to AStarOrdering.
	Ordering Ordering

	// FrontierCapacity pre-sizes the frontier heap.
	FrontierCapacity int
}

// DefaultOptions are the options used when none are supplied.
var DefaultOptions = Options{
	Ordering:         AStarOrdering,
	FrontierCapacity: 64,
}

// Engine drives a single search run. It is not safe for concurrent use;
// one goroutine owns the run from construction to termination, and all
// run state is discarded together when the Engine is dropped.
type Engine struct {
	problem  Problem
	frontier *queue.MinHeap[*Node]
	best     map[uint32]float64
	closed   *closedset.Set

	status    Status
	stepIndex int
	result    *Result
}

// New seeds a run: a root node at the problem's start location with
// g = 0, the best-cost table seeded with the start, and an empty
// closed set.
func New(problem Problem, optFns ...func(o *Options)) (*Engine, error) {
	if problem == nil {
		return nil, ErrNilProblem
	}

	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Ordering == nil {
		opts.Ordering = AStarOrdering
	}
	if opts.FrontierCapacity <= 0 {
		opts.FrontierCapacity = DefaultOptions.FrontierCapacity
	}

	start := problem.Start()
	root := &Node{
		Location: start,
		G:        0,
		H:        problem.Heuristic(start),
	}

	e := &Engine{
		problem:  problem,
		frontier: queue.New(queue.LessFunc[*Node](opts.Ordering), opts.FrontierCapacity),
		best:     map[uint32]float64{start.Key(): 0},
		closed:   closedset.New(),
		status:   StatusRunning,
	}
	e.frontier.Push(root)

	return e, nil
}

// Status returns the current run state.
func (e *Engine) Status() Status { return e.status }

// StepIndex returns the number of completed expansion steps.
func (e *Engine) StepIndex() int { return e.stepIndex }

// Result returns the terminal outcome, or false while still running.
func (e *Engine) Result() (*Result, bool) {
	if e.status == StatusRunning {
		return nil, false
	}
	return e.result, true
}

// Step advances the run by one expansion and returns a snapshot of the
// state after that expansion. Calling Step on a terminated run returns
// the terminal snapshot again without side effects.
func (e *Engine) Step() StepSnapshot {
	if e.status != StatusRunning {
		return e.snapshot(nil, nil, false)
	}

	curr, ok := e.frontier.Pop()
	if !ok {
		// Frontier drained: no path exists.
		e.status = StatusExhausted
		e.result = &Result{
			Found: false,
			Diagnostics: Diagnostics{
				TotalExplored: e.closed.Cardinality(),
			},
		}
		return e.snapshot(nil, nil, false)
	}

	e.stepIndex++

	// Close before the goal check. The ordering matters: it makes the
	// start==goal run report TotalExplored == 1, so the efficiency
	// ratio stays well defined.
	e.closed.Add(curr.Location)

	if e.problem.IsGoal(curr.Location) {
		path := curr.Path()
		explored := e.closed.Cardinality()
		e.status = StatusSucceeded
		e.result = &Result{
			Found: true,
			Path:  path,
			Cost:  curr.G,
			Diagnostics: Diagnostics{
				PathLength:    len(path),
				TotalExplored: explored,
				Efficiency:    efficiency(len(path), explored),
			},
		}
		return e.snapshot(curr, path, false)
	}

	// Staleness guard: a cheaper node for this location was already
	// scheduled after this one was pushed. Skip expansion but still
	// surface the pop as a step, so observers see the duplicate drain.
	if bestG, seen := e.best[curr.Location.Key()]; seen && curr.G > bestG {
		return e.snapshot(curr, curr.Path(), true)
	}

	for _, succ := range e.problem.Successors(curr.Location) {
		newG := curr.G + succ.Cost
		key := succ.Location.Key()
		// Strict improvement only: equal-cost rediscoveries keep the
		// earlier path and are not pushed.
		if bestG, seen := e.best[key]; seen && newG >= bestG {
			continue
		}
		e.best[key] = newG
		e.frontier.Push(&Node{
			Location: succ.Location,
			Parent:   curr,
			Action:   succ.Action,
			G:        newG,
			H:        e.problem.Heuristic(succ.Location),
		})
	}

	return e.snapshot(curr, curr.Path(), false)
}

// Run drives Step to termination. The context is checked between
// expansions; cancellation abandons the run and returns ctx.Err().
// Exhaustion is not an error: the returned Result reports Found=false.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	for e.status == StatusRunning {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.Step()
	}
	return e.result, nil
}

func (e *Engine) snapshot(curr *Node, path []model.Action, stale bool) StepSnapshot {
	return StepSnapshot{
		Current:   curr,
		Path:      path,
		Frontier:  e.frontier.Snapshot(),
		Closed:    e.closed.Clone(),
		StepIndex: e.stepIndex,
		Status:    e.status,
		Stale:     stale,
		Result:    e.result,
	}
}

func efficiency(pathLength int, explored uint64) float64 {
	if explored == 0 {
		return 0
	}
	return float64(pathLength) / float64(explored) * 100
}
