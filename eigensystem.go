package subspace

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/subspace/internal/linalg"
)

// mergeWeights are the count ratios of a two-group variance decomposition.
type mergeWeights struct {
	left    float64 // n_L / n
	right   float64 // n_R / n
	between float64 // n_L·n_R / n²
}

func newMergeWeights(nLeft, nRight int) mergeWeights {
	nl, nr := float64(nLeft), float64(nRight)
	n := nl + nr
	return mergeWeights{
		left:    nl / n,
		right:   nr / n,
		between: nl * nr / (n * n),
	}
}

// assembleEigensystem builds the covariance of the union of both children
// expressed in the coordinates of [L | N], where L is the left eigenbasis
// and N the leftside null-space basis:
//
//	Σ = w.left·diag(λ_L, 0) + w.right·C·diag(λ_R)·Cᵀ + w.between·g·gᵀ
//
// with C = [Lᵀ·R; Nᵀ·R] and g = [Lᵀ·Δ; Nᵀ·Δ]. The top-left k_L×k_L block
// is the left basis' own system; the remaining blocks only exist when N is
// non-empty. It returns nil when [L | N] has no columns.
func assembleEigensystem(left, right *Stat, ns nullSpace, w mergeWeights) *mat.SymDense {
	kl := left.basisCols()
	kn := linalg.Cols(ns.basis)
	m := kl + kn
	if m == 0 {
		return nil
	}

	// Null-space coordinates of the right basis and the mean shift.
	nullProj := linalg.MulTransA(ns.basis, right.basis())
	nullMean := linalg.MulVecTransA(ns.basis, ns.meanDiff)

	sys := mat.NewSymDense(m, nil)

	// within-left: the left basis diagonalizes its own covariance
	for i := 0; i < kl; i++ {
		sys.SetSym(i, i, w.left*left.eigenvalues[i])
	}

	// within-right, one rank-one term per right eigenpair
	c := mat.NewVecDense(m, nil)
	for j := 0; j < right.basisCols(); j++ {
		for i := 0; i < kl; i++ {
			c.SetVec(i, ns.rightProj.At(i, j))
		}
		for i := 0; i < kn; i++ {
			c.SetVec(kl+i, nullProj.At(i, j))
		}
		sys.SymRankOne(sys, w.right*right.eigenvalues[j], c)
	}

	// between-means
	g := mat.NewVecDense(m, nil)
	for i := 0; i < kl; i++ {
		g.SetVec(i, ns.meanProj[i])
	}
	for i := 0; i < kn; i++ {
		g.SetVec(kl+i, nullMean[i])
	}
	sys.SymRankOne(sys, w.between, g)

	return sys
}
