package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when a dimension argument is negative.
	ErrInvalidDimensions = errors.New("dimensions must be non-negative")

	// ErrRaggedSlices is returned when a nested-slice payload is not
	// rectangular.
	ErrRaggedSlices = errors.New("ragged payload: slices must form a rectangular volume")

	// ErrFixedShape is returned when a shape override is requested on a
	// backing whose shape is fixed at construction.
	ErrFixedShape = errors.New("backing has a fixed shape")
)

// ErrOutOfBounds indicates a coordinate access outside the valid declared
// dimensions. Indices are never wrapped or clamped: every invalid access
// surfaces as this error so addressing bugs are caught early.
type ErrOutOfBounds struct {
	Index Index
	Dims  Dims
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("index %s out of bounds %s", e.Index, e.Dims)
}

// ErrDimensionMismatch indicates two grids whose shapes are incompatible
// for an operation requiring equal shape. It is distinct from
// ErrOutOfBounds so callers can discriminate shape errors from addressing
// errors.
type ErrDimensionMismatch struct {
	Want Dims
	Got  Dims
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: want %s, got %s", e.Want, e.Got)
}

// ErrLengthMismatch indicates a flat payload whose length does not equal
// the declared volume.
type ErrLengthMismatch struct {
	Want int
	Got  int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: want %d elements, got %d", e.Want, e.Got)
}
