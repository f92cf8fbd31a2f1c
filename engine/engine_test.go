package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gridpath/engine"
	"github.com/hupe1980/gridpath/grid"
	"github.com/hupe1980/gridpath/model"
	"github.com/hupe1980/gridpath/testutil"
)

func mustGrid(t *testing.T, w, h int32, start, goal model.Location, optFns ...func(o *grid.Options)) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h, start, goal, optFns...)
	require.NoError(t, err)
	return g
}

func allGrass(o *grid.Options) { o.MudProbability = 0 }

func TestNewRejectsNilProblem(t *testing.T) {
	_, err := engine.New(nil)
	assert.ErrorIs(t, err, engine.ErrNilProblem)
}

// 3x3 all-grass grid, corner to corner: any Manhattan-optimal path has
// 4 actions and total cost 4.
func TestAllGrassScenario(t *testing.T) {
	g := mustGrid(t, 3, 3, model.Loc(0, 0), model.Loc(2, 2), allGrass)

	e, err := engine.New(g)
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.NoError(t, err)

	require.True(t, res.Found)
	assert.Len(t, res.Path, 4)
	assert.Equal(t, 4.0, res.Cost)
	assert.Equal(t, 4, res.Diagnostics.PathLength)
	assert.Equal(t, engine.StatusSucceeded, e.Status())

	assertPathValid(t, g, res.Path)
}

// 2x1 grid with the goal forced to mud: one Right action, goal g-cost
// 10, h-cost 0.
func TestMudGoalScenario(t *testing.T) {
	g := mustGrid(t, 2, 1, model.Loc(0, 0), model.Loc(1, 0), allGrass, func(o *grid.Options) {
		o.Mud = []model.Location{model.Loc(1, 0)}
	})

	e, err := engine.New(g)
	require.NoError(t, err)

	var final engine.StepSnapshot
	for !final.Done() {
		final = e.Step()
	}

	require.Equal(t, engine.StatusSucceeded, final.Status)
	require.NotNil(t, final.Current)
	assert.Equal(t, []model.Action{model.ActionRight}, final.Result.Path)
	assert.Equal(t, 10.0, final.Current.G)
	assert.Equal(t, 0.0, final.Current.H)
	assert.Equal(t, 10.0, final.Current.F())
}

// Start equals goal: immediate success on the first step, with the
// root closed before the goal check so TotalExplored is 1 and the
// efficiency ratio is a well-defined 0%.
func TestStartEqualsGoal(t *testing.T) {
	g := mustGrid(t, 3, 3, model.Loc(1, 1), model.Loc(1, 1), allGrass)

	e, err := engine.New(g)
	require.NoError(t, err)

	snap := e.Step()
	require.True(t, snap.Done())
	require.NotNil(t, snap.Result)
	assert.True(t, snap.Result.Found)
	assert.Equal(t, 0, snap.Result.Diagnostics.PathLength)
	assert.Equal(t, uint64(1), snap.Result.Diagnostics.TotalExplored)
	assert.Equal(t, 0.0, snap.Result.Diagnostics.Efficiency)
	assert.True(t, snap.Closed.Contains(model.Loc(1, 1)))
}

// Goal walled off: the run exhausts after exploring exactly the
// reachable component, and exhaustion is an outcome, not an error.
func TestExhaustion(t *testing.T) {
	g := mustGrid(t, 4, 3, model.Loc(0, 0), model.Loc(3, 0), allGrass, func(o *grid.Options) {
		o.Walls = []model.Location{model.Loc(2, 0), model.Loc(2, 1), model.Loc(2, 2)}
	})

	e, err := engine.New(g)
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Nil(t, res.Path)
	assert.Equal(t, engine.StatusExhausted, e.Status())

	reachable := g.Reachable(model.Loc(0, 0)).GetCardinality()
	assert.Equal(t, reachable, res.Diagnostics.TotalExplored)
}

// With an admissible, consistent heuristic the returned path must be
// minimum-cost. Compare against exact Dijkstra over many seeded grids.
func TestOptimalityAgainstDijkstra(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		g := mustGrid(t, 9, 9, model.Loc(0, 0), model.Loc(8, 8), func(o *grid.Options) {
			o.MudProbability = 0.35
			o.Seed = seed
		})

		e, err := engine.New(g)
		require.NoError(t, err)
		res, err := e.Run(context.Background())
		require.NoError(t, err)
		require.True(t, res.Found, "seed %d", seed)

		want, ok := testutil.ShortestPathCost(g)
		require.True(t, ok)
		assert.Equal(t, want, res.Cost, "seed %d: A* cost must match Dijkstra", seed)
		assert.Equal(t, want, testutil.PathCost(g, res.Path), "seed %d: path must cost what the result claims", seed)
		assertPathValid(t, g, res.Path)
	}
}

// The best-cost table only ever improves: every pushed node carries a
// g-cost that strictly improved on the table at push time, so frontier
// snapshots never contain a node cheaper than the table's entry.
func TestMonotonicBest(t *testing.T) {
	g := mustGrid(t, 7, 7, model.Loc(0, 0), model.Loc(6, 6), func(o *grid.Options) {
		o.MudProbability = 0.4
		o.Seed = 11
	})

	e, err := engine.New(g)
	require.NoError(t, err)

	bestSeen := map[uint32]float64{}
	for {
		snap := e.Step()
		for _, n := range snap.Frontier {
			key := n.Location.Key()
			if prev, ok := bestSeen[key]; !ok || n.G < prev {
				bestSeen[key] = n.G
			}
		}
		// No node may undercut a previously observed best without the
		// engine having exposed that improvement first.
		for _, n := range snap.Frontier {
			assert.GreaterOrEqual(t, n.G, bestSeen[n.Location.Key()])
		}
		if snap.Done() {
			break
		}
	}
}

func TestStepSnapshots(t *testing.T) {
	g := mustGrid(t, 3, 3, model.Loc(0, 0), model.Loc(2, 2), allGrass)

	e, err := engine.New(g)
	require.NoError(t, err)

	snap := e.Step()
	require.NotNil(t, snap.Current)
	assert.Equal(t, model.Loc(0, 0), snap.Current.Location)
	assert.Equal(t, 1, snap.StepIndex)
	assert.Empty(t, snap.Path)
	assert.True(t, snap.Closed.Contains(model.Loc(0, 0)))
	assert.NotEmpty(t, snap.Frontier)
	assert.Equal(t, engine.StatusRunning, snap.Status)

	// The parent chain of every frontier node terminates at the root.
	for _, n := range snap.Frontier {
		cur := n
		for cur.Parent != nil {
			cur = cur.Parent
		}
		assert.Equal(t, model.Loc(0, 0), cur.Location)
	}
}

func TestStepAfterTerminationIsIdempotent(t *testing.T) {
	g := mustGrid(t, 2, 2, model.Loc(0, 0), model.Loc(1, 1), allGrass)

	e, err := engine.New(g)
	require.NoError(t, err)
	_, err = e.Run(context.Background())
	require.NoError(t, err)

	before := e.StepIndex()
	snap := e.Step()
	assert.True(t, snap.Done())
	assert.Equal(t, before, e.StepIndex())
	res, ok := e.Result()
	require.True(t, ok)
	assert.True(t, res.Found)
}

func TestRunHonorsContext(t *testing.T) {
	g := mustGrid(t, 16, 16, model.Loc(0, 0), model.Loc(15, 15))

	e, err := engine.New(g)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGreedyOrderingFindsAPath(t *testing.T) {
	g := mustGrid(t, 6, 6, model.Loc(0, 0), model.Loc(5, 5), func(o *grid.Options) {
		o.MudProbability = 0.3
		o.Seed = 3
	})

	e, err := engine.New(g, func(o *engine.Options) {
		o.Ordering = engine.GreedyOrdering
	})
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.NoError(t, err)
	require.True(t, res.Found)
	assertPathValid(t, g, res.Path)
}

// Termination on a finite grid: the step count is bounded even on
// terrain that produces many rediscoveries.
func TestTermination(t *testing.T) {
	g := mustGrid(t, 12, 12, model.Loc(0, 0), model.Loc(11, 11), func(o *grid.Options) {
		o.MudProbability = 0.5
		o.Seed = 99
	})

	e, err := engine.New(g)
	require.NoError(t, err)

	const maxSteps = 12 * 12 * 8
	for i := 0; i < maxSteps; i++ {
		if e.Step().Done() {
			return
		}
	}
	t.Fatalf("engine did not terminate within %d steps", maxSteps)
}

// assertPathValid replays the action sequence from the start and
// requires it to land exactly on the goal.
func assertPathValid(t *testing.T, g *grid.Grid, path []model.Action) {
	t.Helper()
	cur := g.Start()
	for _, a := range path {
		cur = a.Apply(cur)
		require.True(t, g.Contains(cur), "path leaves the grid at %s", cur)
		require.False(t, g.IsWall(cur), "path crosses a wall at %s", cur)
	}
	assert.True(t, g.IsGoal(cur), "path ends at %s, not the goal", cur)
}

// Optimality also holds on grids with random shapes, not just the
// square fixtures above.
func TestOptimalityOnRandomGrids(t *testing.T) {
	rng := testutil.NewRNG(2026)

	for i := 0; i < 20; i++ {
		g, err := rng.RandomGrid(12, 12, 0.3)
		require.NoError(t, err)

		e, err := engine.New(g)
		require.NoError(t, err)
		res, err := e.Run(context.Background())
		require.NoError(t, err)
		require.True(t, res.Found)

		want, ok := testutil.ShortestPathCost(g)
		require.True(t, ok)
		assert.Equal(t, want, res.Cost)
		assert.Equal(t, g.Goal(), testutil.ApplyActions(g.Start(), res.Path))
	}
}
