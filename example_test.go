package gridpath_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/gridpath"
	"github.com/hupe1980/gridpath/grid"
	"github.com/hupe1980/gridpath/model"
)

// Example_solve demonstrates a complete corner-to-corner search.
func Example_solve() {
	ctx := context.Background()

	// All-grass 5x5 grid, start top-left, goal bottom-right
	g, err := gridpath.NewGrid(5, 5, model.Loc(0, 0), model.Loc(4, 4), func(o *grid.Options) {
		o.MudProbability = 0
	})
	if err != nil {
		log.Fatal(err)
	}

	pf := gridpath.New()
	result, err := pf.Solve(ctx, g)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("found=%v length=%d cost=%.0f\n", result.Found, result.Diagnostics.PathLength, result.Cost)
	// Output: found=true length=8 cost=8
}

// Example_stepping demonstrates driving the engine one expansion at a time.
func Example_stepping() {
	g, err := gridpath.NewGrid(3, 3, model.Loc(0, 0), model.Loc(2, 2), func(o *grid.Options) {
		o.MudProbability = 0
	})
	if err != nil {
		log.Fatal(err)
	}

	e, err := gridpath.New().Stepper(g)
	if err != nil {
		log.Fatal(err)
	}

	for snap := e.Step(); ; snap = e.Step() {
		if snap.Done() {
			fmt.Printf("terminated: %s\n", snap.Status)
			break
		}
	}
	// Output: terminated: succeeded
}

// Example_exhaustion shows that an unreachable goal is an outcome, not an error.
func Example_exhaustion() {
	// A wall cuts the 3x1 corridor in half.
	g, err := gridpath.NewGrid(3, 1, model.Loc(0, 0), model.Loc(2, 0), func(o *grid.Options) {
		o.Walls = []model.Location{model.Loc(1, 0)}
	})
	if err != nil {
		log.Fatal(err)
	}

	result, err := gridpath.New().Solve(context.Background(), g)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("found=%v explored=%d\n", result.Found, result.Diagnostics.TotalExplored)
	// Output: found=false explored=1
}
