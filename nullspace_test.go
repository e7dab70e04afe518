package subspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/subspace/internal/linalg"
	"github.com/hupe1980/subspace/testutil"
)

// planePoints returns n points that vary only along the given axes (unit
// standard deviation), shifted by offset.
func planePoints(rng *testutil.RNG, d, n int, axes []int, offset []float64) *mat.Dense {
	scales := make([]float64, d)
	for _, a := range axes {
		scales[a] = 1
	}
	p := rng.ScaledGaussianPoints(scales, n)
	for i, o := range offset {
		floats.AddConst(o, p.RawRowView(i))
	}
	return p
}

func mustLeaf(t *testing.T, points mat.Matrix, start, count int) *Stat {
	t.Helper()
	s, err := NewLeaf(points, start, count)
	require.NoError(t, err)
	return s
}

func TestLeftNullSpace_CapturedRightBasis(t *testing.T) {
	rng := testutil.NewRNG(1)
	points := rng.GaussianPoints(3, 60)

	left := mustLeaf(t, points, 0, 30)
	right := mustLeaf(t, points, 30, 30)
	require.Equal(t, 3, left.Rank())

	ns := leftNullSpace(left, right, DefaultEpsilon)

	assert.Nil(t, ns.basis)
	assert.Equal(t, 0, linalg.Cols(ns.basis))

	r, c := ns.rightProj.Dims()
	assert.Equal(t, left.Rank(), r)
	assert.Equal(t, right.Rank(), c)
	assert.Len(t, ns.meanProj, left.Rank())

	want := make([]float64, 3)
	for i := range want {
		want[i] = right.means[i] - left.means[i]
	}
	assert.InDeltaSlice(t, want, ns.meanDiff, 1e-15)
}

func TestLeftNullSpace_NewDirection(t *testing.T) {
	rng := testutil.NewRNG(2)
	a := planePoints(rng, 4, 30, []int{0, 1}, nil)
	b := planePoints(rng, 4, 30, []int{1, 2}, nil)
	points := linalg.HCat(a, b)

	left := mustLeaf(t, points, 0, 30)
	right := mustLeaf(t, points, 30, 30)
	require.Equal(t, 2, left.Rank())
	require.Equal(t, 2, right.Rank())

	ns := leftNullSpace(left, right, DefaultEpsilon)

	// Only the third axis is new; the residuals of both right columns
	// point along it, so the basis collapses to one column.
	require.Equal(t, 1, linalg.Cols(ns.basis))
	assert.InDelta(t, 1.0, math.Abs(ns.basis.At(2, 0)), 1e-8)
	assert.Less(t, testutil.OrthonormalityError(ns.basis), 1e-12)

	// N is orthogonal to L.
	var cross mat.Dense
	cross.Mul(left.basis().T(), ns.basis)
	for i := 0; i < left.Rank(); i++ {
		assert.InDelta(t, 0.0, cross.At(i, 0), 1e-12)
	}
}

func TestLeftNullSpace_MeanShiftOnly(t *testing.T) {
	rng := testutil.NewRNG(3)
	a := planePoints(rng, 3, 20, []int{0}, nil)
	b := planePoints(rng, 3, 20, []int{0}, []float64{0, 0, 5})
	points := linalg.HCat(a, b)

	left := mustLeaf(t, points, 0, 20)
	right := mustLeaf(t, points, 20, 20)

	ns := leftNullSpace(left, right, DefaultEpsilon)

	// The right basis is the left basis; only the mean shift is new and is
	// appended last.
	require.Equal(t, 1, linalg.Cols(ns.basis))
	assert.InDelta(t, 1.0, math.Abs(ns.basis.At(2, 0)), 1e-8)
	assert.InDelta(t, 5.0, math.Abs(ns.meanDiff[2]), 1e-12)
}

func TestLeftNullSpace_EmptyRightBasis(t *testing.T) {
	left := &Stat{
		kind:         KindDecomposedLeaf,
		count:        3,
		means:        []float64{0, 0},
		eigenvectors: mat.NewDense(2, 1, []float64{1, 0}),
		eigenvalues:  []float64{2},
	}
	right := &Stat{
		kind:  KindMerged,
		start: 3,
		count: 1,
		means: []float64{3, 0},
	}

	ns := leftNullSpace(left, right, DefaultEpsilon)

	assert.Nil(t, ns.basis)
	assert.Nil(t, ns.rightProj)
	assert.Equal(t, []float64{3}, ns.meanProj)
}
