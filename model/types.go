package model

import (
	"fmt"
)

// Location is an immutable 2D grid coordinate.
// Equality is component-wise; Location is comparable and safe as a map key.
type Location struct {
	X int32
	Y int32
}

// Loc is a convenience constructor.
func Loc(x, y int32) Location {
	return Location{X: x, Y: y}
}

// String returns a string representation of the Location.
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// Key packs the coordinate into an injective uint32 (x:16 | y:16).
// Grid construction guarantees coordinates fit in 16 bits, so the packing
// is collision-free over the valid domain.
func (l Location) Key() uint32 {
	return uint32(uint16(l.X))<<16 | uint32(uint16(l.Y))
}

// LocationFromKey is the inverse of Key over the valid coordinate
// domain [0, 65536).
func LocationFromKey(key uint32) Location {
	return Location{
		X: int32(key >> 16),
		Y: int32(key & 0xFFFF),
	}
}

// Manhattan returns the Manhattan distance between two locations
// (sum of absolute coordinate differences). It is admissible and
// consistent for 4-connected movement with per-step cost >= 1.
func Manhattan(a, b Location) float64 {
	dx := int64(a.X) - int64(b.X)
	if dx < 0 {
		dx = -dx
	}
	dy := int64(a.Y) - int64(b.Y)
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// Action is the edge label of a grid move.
type Action uint8

const (
	// ActionNone is the zero Action, carried only by root nodes.
	ActionNone Action = iota
	// ActionUp decreases Y by one.
	ActionUp
	// ActionDown increases Y by one.
	ActionDown
	// ActionLeft decreases X by one.
	ActionLeft
	// ActionRight increases X by one.
	ActionRight
)

// String returns the human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	default:
		return "None"
	}
}

// Delta returns the coordinate offset the action applies.
// ActionNone returns (0, 0).
func (a Action) Delta() (dx, dy int32) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Apply returns the location reached by taking the action from l.
func (a Action) Apply(l Location) Location {
	dx, dy := a.Delta()
	return Location{X: l.X + dx, Y: l.Y + dy}
}

// Successor is one outgoing edge of a search state: the action label,
// the neighbor it leads to, and the positive edge cost.
type Successor struct {
	Action   Action
	Location Location
	Cost     float64
}
