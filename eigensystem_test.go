package subspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/subspace/internal/linalg"
	"github.com/hupe1980/subspace/testutil"
)

func TestNewMergeWeights(t *testing.T) {
	w := newMergeWeights(1, 3)

	assert.InDelta(t, 0.25, w.left, 1e-15)
	assert.InDelta(t, 0.75, w.right, 1e-15)
	assert.InDelta(t, 3.0/16, w.between, 1e-15)
}

// When neither child truncates anything, the eigensystem is exactly the
// union covariance expressed in the [L | N] coordinates.
func TestAssembleEigensystem_MatchesProjectedCovariance(t *testing.T) {
	rng := testutil.NewRNG(11)
	a := planePoints(rng, 3, 25, []int{0, 1}, []float64{1, -1, 0})
	b := rng.GaussianPoints(3, 15)
	points := linalg.HCat(a, b)

	left := mustLeaf(t, points, 0, 25)
	right := mustLeaf(t, points, 25, 15)
	require.Equal(t, 2, left.Rank())
	require.Equal(t, 3, right.Rank())

	ns := leftNullSpace(left, right, DefaultEpsilon)
	require.Equal(t, 1, linalg.Cols(ns.basis))

	sys := assembleEigensystem(left, right, ns, newMergeWeights(25, 15))
	require.NotNil(t, sys)
	assert.Equal(t, 3, sys.SymmetricDim())

	basis := linalg.HCat(left.basis(), ns.basis)
	cov := testutil.Covariance(points, 0, 40)

	var tmp, want mat.Dense
	tmp.Mul(cov, basis)
	want.Mul(basis.T(), &tmp)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, want.At(i, j), sys.At(i, j), 1e-9, "sys[%d][%d]", i, j)
		}
	}
}

func TestAssembleEigensystem_EmptyNullSpace(t *testing.T) {
	left := &Stat{
		kind:         KindDecomposedLeaf,
		count:        2,
		means:        []float64{0, 0},
		eigenvectors: mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		eigenvalues:  []float64{2, 1},
	}
	right := &Stat{
		kind:  KindMerged,
		start: 2,
		count: 2,
		means: []float64{1, 2},
	}

	ns := leftNullSpace(left, right, DefaultEpsilon)
	require.Nil(t, ns.basis)

	w := newMergeWeights(2, 2)
	sys := assembleEigensystem(left, right, ns, w)
	require.NotNil(t, sys)
	require.Equal(t, 2, sys.SymmetricDim())

	// w.left·diag(λ_L) + w.between·p·pᵀ with p = (1, 2)
	want := [][]float64{
		{0.5*2 + 0.25*1, 0.25 * 2},
		{0.25 * 2, 0.5*1 + 0.25*4},
	}
	for i := range want {
		for j := range want[i] {
			assert.InDelta(t, want[i][j], sys.At(i, j), 1e-12)
		}
	}
}

func TestAssembleEigensystem_RightBasisProjection(t *testing.T) {
	// Left spans e1, right spans e2 with equal counts and equal means.
	left := &Stat{
		kind:         KindDecomposedLeaf,
		count:        4,
		means:        []float64{0, 0},
		eigenvectors: mat.NewDense(2, 1, []float64{1, 0}),
		eigenvalues:  []float64{3},
	}
	right := &Stat{
		kind:         KindDecomposedLeaf,
		start:        4,
		count:        4,
		means:        []float64{0, 0},
		eigenvectors: mat.NewDense(2, 1, []float64{0, 1}),
		eigenvalues:  []float64{5},
	}

	ns := leftNullSpace(left, right, DefaultEpsilon)
	require.Equal(t, 1, linalg.Cols(ns.basis))

	sys := assembleEigensystem(left, right, ns, newMergeWeights(4, 4))

	assert.InDelta(t, 1.5, sys.At(0, 0), 1e-12)
	assert.InDelta(t, 0.0, sys.At(0, 1), 1e-12)
	assert.InDelta(t, 0.0, sys.At(1, 0), 1e-12)
	assert.InDelta(t, 2.5, sys.At(1, 1), 1e-12)
}

func TestAssembleEigensystem_NoCoordinates(t *testing.T) {
	left := &Stat{kind: KindMerged, count: 1, means: []float64{0}}
	right := &Stat{kind: KindMerged, start: 1, count: 1, means: []float64{0}}

	ns := leftNullSpace(left, right, DefaultEpsilon)
	assert.Nil(t, assembleEigensystem(left, right, ns, newMergeWeights(1, 1)))
}
