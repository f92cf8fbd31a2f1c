package gridpath

import (
	"errors"
	"fmt"

	"github.com/hupe1980/gridpath/engine"
	"github.com/hupe1980/gridpath/grid"
	"github.com/hupe1980/gridpath/model"
)

var (
	// ErrNilProblem is returned when a run is started without a problem.
	ErrNilProblem = errors.New("problem must not be nil")

	// ErrInvalidGrid is returned when grid construction is rejected.
	// The specific cause (dimensions, bounds, probability) can be
	// accessed via errors.As against the grid package's typed errors.
	ErrInvalidGrid = errors.New("invalid grid")
)

// NewGrid builds a terrain grid, normalizing construction errors to the
// package-level sentinels. It is a convenience wrapper around grid.New.
func NewGrid(width, height int32, start, goal model.Location, optFns ...func(o *grid.Options)) (*grid.Grid, error) {
	g, err := grid.New(width, height, start, goal, optFns...)
	if err != nil {
		return nil, translateError(err)
	}
	return g, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, engine.ErrNilProblem) {
		return fmt.Errorf("%w: %w", ErrNilProblem, err)
	}

	// Grid construction normalization.
	var dim *grid.ErrInvalidDimension
	if errors.As(err, &dim) {
		return fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}
	var oob *grid.ErrOutOfBounds
	if errors.As(err, &oob) {
		return fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}
	var prob *grid.ErrInvalidProbability
	if errors.As(err, &prob) {
		return fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}

	return err
}
