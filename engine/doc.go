// Package engine implements the expansion loop of the search core.
//
// An Engine owns exactly one run: a frontier heap of candidate nodes, a
// best-known-cost table, and an append-only closed set. Each Step pops
// the best-ranked node, closes it, checks the goal, and expands its
// successors, emitting a fully inspectable snapshot of the run state.
// The engine performs no I/O and never blocks; pacing and rendering
// belong to the callers driving Step.
package engine
