package subspace

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRange is returned when a leaf is asked to summarize zero points.
	ErrEmptyRange = errors.New("leaf range must contain at least one point")

	// ErrRangeOutOfBounds is returned when a leaf range does not fit the point matrix.
	ErrRangeOutOfBounds = errors.New("leaf range out of bounds")

	// ErrNilStat is returned when a merge is attempted before both children exist.
	ErrNilStat = errors.New("child stat is nil")

	// ErrNotAdjacent is returned when the right child's range does not
	// immediately follow the left child's range.
	ErrNotAdjacent = errors.New("child ranges are not adjacent")

	// ErrDecompositionFailed is the sentinel wrapped by every DecompositionError.
	ErrDecompositionFailed = errors.New("decomposition failed")

	// ErrInvalidTree is returned by Build for malformed index trees.
	ErrInvalidTree = errors.New("invalid tree")
)

// ErrDimensionMismatch indicates that two stats (or a stat and a point
// matrix) live in spaces of different dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// DecompositionError reports a failed SVD, eigendecomposition or QR step.
//
// errors.Is(err, ErrDecompositionFailed) holds for every DecompositionError.
// The underlying gonum-level error can be accessed via errors.Unwrap.
type DecompositionError struct {
	Op    string
	cause error
}

func (e *DecompositionError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s: %v", e.Op, ErrDecompositionFailed)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrDecompositionFailed, e.cause)
}

func (e *DecompositionError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrDecompositionFailed}
	}
	return []error{ErrDecompositionFailed, e.cause}
}
