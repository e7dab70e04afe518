package subspace

import (
	"context"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/subspace/internal/linalg"
)

// NewLeaf computes the subspace statistic of columns [start, start+count)
// of points, where each column of points is one point.
//
// A single point yields a KindTrivialLeaf stat: the point itself as the
// mean, one zero eigenvalue and a d×1 zero eigenvector. Two or more points
// are mean-centered and decomposed with a thin SVD; singular value σ is
// retained iff σ >= eps·σmax and stored as the eigenvalue σ²/count.
//
// Calling NewLeaf twice on the same input yields identical stats.
func NewLeaf(points mat.Matrix, start, count int, optFns ...Option) (*Stat, error) {
	o := applyOptions(optFns)
	return newLeaf(context.Background(), points, start, count, &o)
}

func newLeaf(ctx context.Context, points mat.Matrix, start, count int, o *options) (*Stat, error) {
	begin := time.Now()

	s, err := computeLeaf(points, start, count, o.epsilon)

	rank := 0
	if s != nil {
		rank = s.Rank()
	}
	o.metricsCollector.RecordLeaf(count, rank, time.Since(begin), err)
	o.logger.LogLeaf(ctx, start, count, rank, err)

	return s, err
}

func computeLeaf(points mat.Matrix, start, count int, eps float64) (*Stat, error) {
	if count < 1 {
		return nil, ErrEmptyRange
	}

	d, n := points.Dims()
	if start < 0 || start+count > n {
		return nil, ErrRangeOutOfBounds
	}

	if count == 1 {
		return trivialLeaf(points, start, d), nil
	}

	centered, means := centerColumns(points, start, count)

	sv, u, err := linalg.LeftSingular(centered)
	if err != nil {
		return nil, &DecompositionError{Op: "svd", cause: err}
	}

	keep := truncateByEnergy(sv, eps)

	s := &Stat{
		kind:         KindDecomposedLeaf,
		start:        start,
		count:        count,
		means:        means,
		eigenvalues:  make([]float64, len(keep)),
		eigenvectors: mat.NewDense(d, len(keep), nil),
	}
	for idx, i := range keep {
		s.eigenvalues[idx] = sv[i] * sv[i] / float64(count)
		s.eigenvectors.SetCol(idx, mat.Col(nil, i, u))
	}

	return s, nil
}

func trivialLeaf(points mat.Matrix, start, d int) *Stat {
	return &Stat{
		kind:         KindTrivialLeaf,
		start:        start,
		count:        1,
		means:        mat.Col(nil, start, points),
		eigenvalues:  []float64{0},
		eigenvectors: mat.NewDense(d, 1, nil),
	}
}

// centerColumns copies columns [start, start+count) of points into a fresh
// d×count matrix, subtracts their mean from every column and returns the
// centered matrix together with the mean.
func centerColumns(points mat.Matrix, start, count int) (*mat.Dense, []float64) {
	d, _ := points.Dims()

	centered := mat.NewDense(d, count, nil)
	for j := 0; j < count; j++ {
		centered.SetCol(j, mat.Col(nil, start+j, points))
	}

	means := make([]float64, d)
	for i := 0; i < d; i++ {
		row := centered.RawRowView(i)
		means[i] = floats.Sum(row) / float64(count)
		floats.AddConst(-means[i], row)
	}

	return centered, means
}
