package grid

import (
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/gridpath/model"
)

const (
	// GrassCost is the cost of entering a grass cell.
	GrassCost = 1.0
	// MudCost is the cost of entering a mud cell.
	MudCost = 10.0

	// maxDimension keeps packed location keys injective (16 bits per axis).
	maxDimension = 1 << 16
)

// Options configures grid construction.
type Options struct {
	// MudProbability is the independent chance that a non-start,
	// non-goal, non-wall cell is mud. Must be in [0, 1].
	MudProbability float64

	// Seed seeds the terrain generator. The same inputs and seed always
	// produce the same terrain.
	Seed int64

	// Mud forces the listed cells to mud regardless of the generator.
	Mud []model.Location

	// Walls marks the listed cells impassable. Wall cells are excluded
	// from terrain assignment and never appear as successors.
	Walls []model.Location
}

// DefaultOptions are the options used when none are supplied.
var DefaultOptions = Options{
	MudProbability: 0.25,
	Seed:           1,
}

// Grid is a weighted terrain map. Terrain is frozen at construction;
// all read methods are pure and safe for concurrent use.
type Grid struct {
	width  int32
	height int32
	start  model.Location
	goal   model.Location
	mud    *roaring.Bitmap
	walls  *roaring.Bitmap
}

// New builds a grid and assigns terrain. Start or goal outside the
// coordinate range, invalid dimensions, and probabilities outside
// [0, 1] fail fast with typed errors; nothing is clamped.
func New(width, height int32, start, goal model.Location, optFns ...func(o *Options)) (*Grid, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if width <= 0 || height <= 0 || width >= maxDimension || height >= maxDimension {
		return nil, &ErrInvalidDimension{Width: width, Height: height}
	}
	if opts.MudProbability < 0 || opts.MudProbability > 1 {
		return nil, &ErrInvalidProbability{P: opts.MudProbability}
	}

	g := &Grid{
		width:  width,
		height: height,
		start:  start,
		goal:   goal,
		mud:    roaring.New(),
		walls:  roaring.New(),
	}

	if !g.Contains(start) {
		return nil, &ErrOutOfBounds{Loc: start, Width: width, Height: height}
	}
	if !g.Contains(goal) {
		return nil, &ErrOutOfBounds{Loc: goal, Width: width, Height: height}
	}

	for _, w := range opts.Walls {
		if !g.Contains(w) {
			return nil, &ErrOutOfBounds{Loc: w, Width: width, Height: height}
		}
		g.walls.Add(w.Key())
	}

	// Row-major generation keeps the layout a pure function of
	// (dimensions, start, goal, walls, probability, seed).
	rng := rand.New(rand.NewSource(opts.Seed))
	for y := int32(0); y < height; y++ {
		for x := int32(0); x < width; x++ {
			loc := model.Loc(x, y)
			if loc == start || loc == goal || g.walls.Contains(loc.Key()) {
				continue
			}
			if rng.Float64() < opts.MudProbability {
				g.mud.Add(loc.Key())
			}
		}
	}

	for _, m := range opts.Mud {
		if !g.Contains(m) {
			return nil, &ErrOutOfBounds{Loc: m, Width: width, Height: height}
		}
		g.mud.Add(m.Key())
	}

	return g, nil
}

// Width returns the horizontal cell count.
func (g *Grid) Width() int32 { return g.width }

// Height returns the vertical cell count.
func (g *Grid) Height() int32 { return g.height }

// Goal returns the goal location.
func (g *Grid) Goal() model.Location { return g.goal }

// Contains reports whether the location lies within the grid.
func (g *Grid) Contains(loc model.Location) bool {
	return loc.X >= 0 && loc.X < g.width && loc.Y >= 0 && loc.Y < g.height
}

// IsMud reports whether the cell carries the high terrain cost.
func (g *Grid) IsMud(loc model.Location) bool {
	return g.mud.Contains(loc.Key())
}

// IsWall reports whether the cell is impassable.
func (g *Grid) IsWall(loc model.Location) bool {
	return g.walls.Contains(loc.Key())
}

// Cost returns the cost of entering the cell.
func (g *Grid) Cost(loc model.Location) float64 {
	if g.IsMud(loc) {
		return MudCost
	}
	return GrassCost
}

// Start implements engine.Problem.
func (g *Grid) Start() model.Location { return g.start }

// IsGoal implements engine.Problem.
func (g *Grid) IsGoal(loc model.Location) bool { return loc == g.goal }

// Heuristic implements engine.Problem with the Manhattan distance to
// the goal, which is admissible and consistent for this cost model.
func (g *Grid) Heuristic(loc model.Location) float64 {
	return model.Manhattan(loc, g.goal)
}

// moves is the successor generation order. It is implementation-defined
// and only influences tie-break order among equal-cost candidates.
var moves = [4]model.Action{
	model.ActionUp,
	model.ActionDown,
	model.ActionLeft,
	model.ActionRight,
}

// Successors implements engine.Problem: the in-bounds, non-wall
// 4-neighborhood, each edge costing the terrain of the entered cell.
func (g *Grid) Successors(loc model.Location) []model.Successor {
	succs := make([]model.Successor, 0, 4)
	for _, a := range moves {
		next := a.Apply(loc)
		if !g.Contains(next) || g.IsWall(next) {
			continue
		}
		succs = append(succs, model.Successor{
			Action:   a,
			Location: next,
			Cost:     g.Cost(next),
		})
	}
	return succs
}

// Reachable flood-fills from the given location and returns the bitmap
// of packed keys reachable through non-wall cells. Useful for checking
// whether an exhausted run explored exactly the connected component.
func (g *Grid) Reachable(from model.Location) *roaring.Bitmap {
	seen := roaring.New()
	if !g.Contains(from) || g.IsWall(from) {
		return seen
	}

	stack := []model.Location{from}
	seen.Add(from.Key())
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range g.Successors(cur) {
			if seen.Contains(s.Location.Key()) {
				continue
			}
			seen.Add(s.Location.Key())
			stack = append(stack, s.Location)
		}
	}
	return seen
}
