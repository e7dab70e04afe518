package subspace

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/subspace/internal/linalg"
)

// nullSpace holds the quantities shared by the eigensystem assembly and the
// final rotation of a merge. All matrices may be nil (zero columns).
type nullSpace struct {
	// meanDiff is right.means - left.means.
	meanDiff []float64
	// rightProj is Lᵀ·R (k_left×k_right).
	rightProj *mat.Dense
	// meanProj is Lᵀ·meanDiff (k_left).
	meanProj []float64
	// basis is the orthonormal leftside null-space basis N (d×c).
	basis *mat.Dense
}

// leftNullSpace computes the directions of the right eigenbasis and of the
// mean shift that the left eigenbasis does not already represent.
//
// A residual survives iff its Euclidean norm exceeds eps. Surviving
// right-basis residuals come first and the mean residual, if any, last;
// the set is then orthonormalized. No survivors yields a nil basis.
func leftNullSpace(left, right *Stat, eps float64) nullSpace {
	l, r := left.basis(), right.basis()
	d := left.Dim()

	ns := nullSpace{
		meanDiff: make([]float64, d),
	}
	floats.SubTo(ns.meanDiff, right.means, left.means)

	ns.rightProj = linalg.MulTransA(l, r)
	ns.meanProj = linalg.MulVecTransA(l, ns.meanDiff)

	var span [][]float64
	if r != nil {
		residue := linalg.Residual(r, l, ns.rightProj)
		for j := 0; j < right.basisCols(); j++ {
			col := mat.Col(nil, j, residue)
			if floats.Norm(col, 2) > eps {
				span = append(span, col)
			}
		}
	}

	meanResidue := linalg.VecResidual(ns.meanDiff, l, ns.meanProj)
	if floats.Norm(meanResidue, 2) > eps {
		span = append(span, meanResidue)
	}

	if len(span) == 0 {
		return ns
	}

	set := mat.NewDense(d, len(span), nil)
	for j, col := range span {
		set.SetCol(j, col)
	}
	ns.basis = linalg.OrthonormalBasis(set)

	return ns
}
