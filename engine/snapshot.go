package engine

import (
	"github.com/hupe1980/gridpath/internal/closedset"
	"github.com/hupe1980/gridpath/model"
)

// StepSnapshot exposes the run state after one expansion, for
// presentation layers and trace recorders. All fields are copies or
// clones; holding a snapshot never blocks or aliases the live run.
type StepSnapshot struct {
	// Current is the node popped this step. Nil when the step signalled
	// exhaustion or when Step was called on a terminated run.
	Current *Node

	// Path is the action sequence from the start to Current,
	// reconstructed via parent links. Nil when Current is nil.
	Path []model.Action

	// Frontier is a copy of the open set's backing storage. It is
	// heap-ordered, not sorted; consumers must not assume any order.
	Frontier []*Node

	// Closed is an immutable clone of the expanded-location set.
	Closed *closedset.Set

	// StepIndex is the number of completed expansions, 1-based for the
	// first productive step.
	StepIndex int

	// Status is the run state after this step.
	Status Status

	// Stale marks a step that popped an outdated duplicate entry and
	// skipped expansion.
	Stale bool

	// Result is the terminal outcome; non-nil once Status is
	// StatusSucceeded or StatusExhausted.
	Result *Result
}

// Done reports whether the run has terminated.
func (s StepSnapshot) Done() bool { return s.Status != StatusRunning }
