package engine

import (
	"fmt"

	"github.com/hupe1980/gridpath/model"
)

// Node is a record in the search tree. All fields are fixed at
// construction; a cheaper route to the same location is expressed by
// pushing a fresh node, never by mutating an existing one. Parent links
// therefore form a forest and path reconstruction is a finite walk.
type Node struct {
	// Location is the grid cell this node schedules for expansion.
	Location model.Location

	// Parent is the node whose expansion generated this one.
	// It is nil for the root.
	Parent *Node

	// Action is the edge label that produced this node from Parent.
	// It is ActionNone for the root.
	Action model.Action

	// G is the cost of the cheapest known path from start to Location
	// along the edges recorded by the parent chain.
	G float64

	// H is the heuristic estimate from Location to the goal.
	H float64
}

// F returns the estimated total cost of a path through the node.
func (n *Node) F() float64 { return n.G + n.H }

// Depth returns the number of edges between the node and its root.
func (n *Node) Depth() int {
	d := 0
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		d++
	}
	return d
}

// Path reconstructs the action sequence from the root to the node by
// walking parent links and reversing. The root yields an empty path.
func (n *Node) Path() []model.Action {
	var actions []model.Action
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		actions = append(actions, cur.Action)
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return actions
}

// String returns a compact representation for logs and test failures.
func (n *Node) String() string {
	return fmt.Sprintf("Node(%s g=%.1f h=%.1f f=%.1f)", n.Location, n.G, n.H, n.F())
}
