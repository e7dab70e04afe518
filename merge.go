package subspace

import (
	"context"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/subspace/internal/linalg"
)

// Merge derives the subspace statistic of the union of two adjacent child
// ranges from the children's stats alone, without revisiting any point.
//
// right must cover the columns immediately after left. The children are
// only read; the result owns freshly allocated storage. Its mean is the
// exact count-weighted mean of the children; its eigenpairs approximate a
// full decomposition of the union and are truncated with the same energy
// rule as NewLeaf.
func Merge(left, right *Stat, optFns ...Option) (*Stat, error) {
	o := applyOptions(optFns)
	return merge(context.Background(), left, right, &o)
}

func merge(ctx context.Context, left, right *Stat, o *options) (*Stat, error) {
	begin := time.Now()

	s, nullRank, err := computeMerge(left, right, o.epsilon)

	start, count, rank := 0, 0, 0
	if left != nil && right != nil {
		start, count = left.start, left.count+right.count
	}
	if s != nil {
		rank = s.Rank()
	}
	o.metricsCollector.RecordMerge(count, rank, nullRank, time.Since(begin), err)
	o.logger.LogMerge(ctx, start, count, rank, nullRank, err)

	return s, err
}

func computeMerge(left, right *Stat, eps float64) (*Stat, int, error) {
	if err := validateChildren(left, right); err != nil {
		return nil, 0, err
	}

	ns := leftNullSpace(left, right, eps)
	w := newMergeWeights(left.count, right.count)

	s := &Stat{
		kind:  KindMerged,
		start: left.start,
		count: left.count + right.count,
		means: make([]float64, left.Dim()),
	}
	floats.ScaleTo(s.means, w.left, left.means)
	floats.AddScaled(s.means, w.right, right.means)

	sys := assembleEigensystem(left, right, ns, w)
	if sys == nil {
		return s, 0, nil
	}

	values, rotation, err := linalg.EigenSym(sys)
	if err != nil {
		return nil, 0, &DecompositionError{Op: "eigen", cause: err}
	}

	sanitizeEigenvalues(values)

	// Rotate [L | N] into the merged global eigenbasis.
	var global mat.Dense
	global.Mul(linalg.HCat(left.basis(), ns.basis), rotation)

	keep := truncateByEnergy(values, eps)
	s.eigenvalues = make([]float64, len(keep))
	s.eigenvectors = mat.NewDense(left.Dim(), len(keep), nil)
	for idx, i := range keep {
		s.eigenvalues[idx] = values[i]
		s.eigenvectors.SetCol(idx, mat.Col(nil, i, &global))
	}

	return s, linalg.Cols(ns.basis), nil
}

func validateChildren(left, right *Stat) error {
	if left == nil || right == nil {
		return ErrNilStat
	}
	if left.Dim() != right.Dim() {
		return &ErrDimensionMismatch{Expected: left.Dim(), Actual: right.Dim()}
	}
	if right.start != left.start+left.count {
		return ErrNotAdjacent
	}
	return nil
}
