package engine

// Ordering ranks frontier nodes. It must implement a strict total order
// consistent with the intended search semantics; for A* optimality it
// must order by f-cost ascending.
//
// Among nodes of equal rank, pop order falls back to the heap's
// structural tie-break (left child preferred during sift-down,
// insertion order otherwise). That order is NOT stable across
// equivalent-cost alternatives and must not be relied on for path
// uniqueness. Callers that need reproducible step sequences should
// encode a deterministic secondary key in their Ordering.
type Ordering func(a, b *Node) bool

// AStarOrdering ranks by f = g + h ascending. This is the default and
// the only ordering covered by the optimality guarantee.
func AStarOrdering(a, b *Node) bool { return a.F() < b.F() }

// GreedyOrdering ranks by h alone, giving greedy best-first search.
// Faster to a goal on friendly terrain, with no optimality guarantee.
func GreedyOrdering(a, b *Node) bool { return a.H < b.H }
