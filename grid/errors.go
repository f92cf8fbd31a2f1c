package grid

import (
	"fmt"

	"github.com/hupe1980/gridpath/model"
)

// ErrInvalidDimension indicates a non-positive or too-large grid size.
type ErrInvalidDimension struct {
	Width  int32
	Height int32
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid grid dimensions: %dx%d (must be within 1..%d)", e.Width, e.Height, maxDimension)
}

// ErrOutOfBounds indicates a location outside the grid's coordinate range.
// Construction fails fast on out-of-bounds start/goal; locations are
// never silently clamped.
type ErrOutOfBounds struct {
	Loc    model.Location
	Width  int32
	Height int32
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("location %s out of bounds for %dx%d grid", e.Loc, e.Width, e.Height)
}

// ErrInvalidProbability indicates a mud probability outside [0, 1].
type ErrInvalidProbability struct {
	P float64
}

func (e *ErrInvalidProbability) Error() string {
	return fmt.Sprintf("invalid mud probability: %v (must be in [0,1])", e.P)
}
