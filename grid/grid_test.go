package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gridpath/model"
)

func TestNewValidation(t *testing.T) {
	t.Run("invalid dimensions", func(t *testing.T) {
		_, err := New(0, 5, model.Loc(0, 0), model.Loc(0, 1))
		var dim *ErrInvalidDimension
		require.ErrorAs(t, err, &dim)
		assert.Equal(t, int32(0), dim.Width)
	})

	t.Run("start out of bounds", func(t *testing.T) {
		_, err := New(3, 3, model.Loc(3, 0), model.Loc(2, 2))
		var oob *ErrOutOfBounds
		require.ErrorAs(t, err, &oob)
		assert.Equal(t, model.Loc(3, 0), oob.Loc)
	})

	t.Run("goal out of bounds", func(t *testing.T) {
		_, err := New(3, 3, model.Loc(0, 0), model.Loc(0, -1))
		var oob *ErrOutOfBounds
		require.ErrorAs(t, err, &oob)
	})

	t.Run("invalid probability", func(t *testing.T) {
		_, err := New(3, 3, model.Loc(0, 0), model.Loc(2, 2), func(o *Options) {
			o.MudProbability = 1.5
		})
		var p *ErrInvalidProbability
		require.ErrorAs(t, err, &p)
	})

	t.Run("forced mud out of bounds", func(t *testing.T) {
		_, err := New(3, 3, model.Loc(0, 0), model.Loc(2, 2), func(o *Options) {
			o.Mud = []model.Location{model.Loc(9, 9)}
		})
		var oob *ErrOutOfBounds
		require.ErrorAs(t, err, &oob)
	})
}

func TestTerrainDeterministicBySeed(t *testing.T) {
	mk := func(seed int64) *Grid {
		g, err := New(16, 16, model.Loc(0, 0), model.Loc(15, 15), func(o *Options) {
			o.MudProbability = 0.5
			o.Seed = seed
		})
		require.NoError(t, err)
		return g
	}

	a, b := mk(42), mk(42)
	c := mk(43)

	same := true
	differs := false
	for y := int32(0); y < 16; y++ {
		for x := int32(0); x < 16; x++ {
			loc := model.Loc(x, y)
			if a.IsMud(loc) != b.IsMud(loc) {
				same = false
			}
			if a.IsMud(loc) != c.IsMud(loc) {
				differs = true
			}
		}
	}
	assert.True(t, same, "same seed must reproduce the same terrain")
	assert.True(t, differs, "different seeds should produce different terrain")
}

func TestTerrainProbabilityExtremes(t *testing.T) {
	allMud, err := New(8, 8, model.Loc(0, 0), model.Loc(7, 7), func(o *Options) {
		o.MudProbability = 1
	})
	require.NoError(t, err)
	noMud, err := New(8, 8, model.Loc(0, 0), model.Loc(7, 7), func(o *Options) {
		o.MudProbability = 0
	})
	require.NoError(t, err)

	for y := int32(0); y < 8; y++ {
		for x := int32(0); x < 8; x++ {
			loc := model.Loc(x, y)
			if loc == allMud.Start() || loc == allMud.Goal() {
				// Start and goal are never assigned by the generator.
				assert.False(t, allMud.IsMud(loc))
				continue
			}
			assert.True(t, allMud.IsMud(loc), "p=1 must mud %s", loc)
			assert.False(t, noMud.IsMud(loc), "p=0 must not mud %s", loc)
		}
	}
}

func TestForcedMudAndCost(t *testing.T) {
	g, err := New(2, 1, model.Loc(0, 0), model.Loc(1, 0), func(o *Options) {
		o.MudProbability = 0
		o.Mud = []model.Location{model.Loc(1, 0)}
	})
	require.NoError(t, err)

	assert.True(t, g.IsMud(model.Loc(1, 0)))
	assert.Equal(t, MudCost, g.Cost(model.Loc(1, 0)))
	assert.Equal(t, GrassCost, g.Cost(model.Loc(0, 0)))
}

func TestSuccessors(t *testing.T) {
	g, err := New(3, 3, model.Loc(0, 0), model.Loc(2, 2), func(o *Options) {
		o.MudProbability = 0
	})
	require.NoError(t, err)

	t.Run("corner", func(t *testing.T) {
		succs := g.Successors(model.Loc(0, 0))
		require.Len(t, succs, 2)
		// Generation order among the in-bounds moves: Down before Right.
		assert.Equal(t, model.ActionDown, succs[0].Action)
		assert.Equal(t, model.Loc(0, 1), succs[0].Location)
		assert.Equal(t, model.ActionRight, succs[1].Action)
		assert.Equal(t, model.Loc(1, 0), succs[1].Location)
	})

	t.Run("center", func(t *testing.T) {
		succs := g.Successors(model.Loc(1, 1))
		require.Len(t, succs, 4)
		for _, s := range succs {
			assert.True(t, g.Contains(s.Location))
			assert.Equal(t, GrassCost, s.Cost)
			assert.Equal(t, s.Location, s.Action.Apply(model.Loc(1, 1)))
		}
	})
}

func TestWallsBlockSuccessors(t *testing.T) {
	g, err := New(3, 1, model.Loc(0, 0), model.Loc(2, 0), func(o *Options) {
		o.MudProbability = 0
		o.Walls = []model.Location{model.Loc(1, 0)}
	})
	require.NoError(t, err)

	assert.True(t, g.IsWall(model.Loc(1, 0)))
	succs := g.Successors(model.Loc(0, 0))
	assert.Empty(t, succs, "the only neighbor is a wall")
}

func TestReachable(t *testing.T) {
	t.Run("open grid", func(t *testing.T) {
		g, err := New(4, 4, model.Loc(0, 0), model.Loc(3, 3))
		require.NoError(t, err)
		assert.Equal(t, uint64(16), g.Reachable(model.Loc(0, 0)).GetCardinality())
	})

	t.Run("walled off goal", func(t *testing.T) {
		// Vertical wall at x=1 isolates the left column.
		g, err := New(3, 2, model.Loc(0, 0), model.Loc(2, 0), func(o *Options) {
			o.Walls = []model.Location{model.Loc(1, 0), model.Loc(1, 1)}
		})
		require.NoError(t, err)

		reach := g.Reachable(model.Loc(0, 0))
		assert.Equal(t, uint64(2), reach.GetCardinality())
		assert.False(t, reach.Contains(g.Goal().Key()))
	})
}
