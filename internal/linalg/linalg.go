package linalg

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNotConverged is returned when a gonum factorization reports failure.
var ErrNotConverged = errors.New("factorization did not converge")

// rankTol is the relative column norm below which a column is treated as
// linearly dependent on the ones before it.
const rankTol = 1e-6

// Cols returns the number of columns of m, treating nil as d×0.
func Cols(m *mat.Dense) int {
	if m == nil {
		return 0
	}
	_, c := m.Dims()
	return c
}

// LeftSingular computes the thin SVD of a and returns its singular values
// together with the matching left singular vectors as columns.
// Right singular vectors are not computed.
func LeftSingular(a mat.Matrix) ([]float64, *mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThinU); !ok {
		return nil, nil, ErrNotConverged
	}

	var u mat.Dense
	svd.UTo(&u)

	return svd.Values(nil), &u, nil
}

// EigenSym computes the eigenvalues and orthonormal eigenvectors of the
// symmetric matrix a. Eigenvector i is column i of the returned matrix.
// Values are returned as produced by gonum and are not sanitized.
func EigenSym(a mat.Symmetric) ([]float64, *mat.Dense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(a, true); !ok {
		return nil, nil, ErrNotConverged
	}

	var v mat.Dense
	es.VectorsTo(&v)

	return es.Values(nil), &v, nil
}

// OrthonormalBasis returns an orthonormal basis for the column space of a.
// The result has at most as many columns as a. A nil or all-dependent input
// yields nil (a d×0 basis).
func OrthonormalBasis(a *mat.Dense) *mat.Dense {
	if a == nil {
		return nil
	}

	r, c := a.Dims()
	if c <= r {
		if q, ok := thinQR(a); ok {
			return q
		}
	}

	return gramSchmidt(a)
}

// thinQR factorizes a with Householder QR and returns the first c columns
// of Q. It reports false when R has a (numerically) zero diagonal entry,
// since the matching Q column then lies outside the span of a.
func thinQR(a *mat.Dense) (*mat.Dense, bool) {
	rows, c := a.Dims()

	var qr mat.QR
	qr.Factorize(a)

	var q, rr mat.Dense
	qr.QTo(&q)
	qr.RTo(&rr)

	maxDiag := 0.0
	for i := 0; i < c; i++ {
		maxDiag = math.Max(maxDiag, math.Abs(rr.At(i, i)))
	}
	if maxDiag == 0 {
		return nil, false
	}
	for i := 0; i < c; i++ {
		if math.Abs(rr.At(i, i)) <= rankTol*maxDiag {
			return nil, false
		}
	}

	return mat.DenseCopyOf(q.Slice(0, rows, 0, c)), true
}

// gramSchmidt orthonormalizes the columns of a with two passes of modified
// Gram-Schmidt, dropping columns whose remainder is negligible.
func gramSchmidt(a *mat.Dense) *mat.Dense {
	rows, c := a.Dims()

	basis := make([][]float64, 0, min(rows, c))
	for j := 0; j < c; j++ {
		v := mat.Col(nil, j, a)
		norm := floats.Norm(v, 2)
		if norm == 0 {
			continue
		}

		for range 2 {
			for _, q := range basis {
				floats.AddScaled(v, -floats.Dot(q, v), q)
			}
		}

		rem := floats.Norm(v, 2)
		if rem <= rankTol*norm {
			continue
		}
		floats.Scale(1/rem, v)
		basis = append(basis, v)

		if len(basis) == rows {
			break
		}
	}

	if len(basis) == 0 {
		return nil
	}

	out := mat.NewDense(rows, len(basis), nil)
	for j, v := range basis {
		out.SetCol(j, v)
	}
	return out
}

// HCat concatenates the columns of a and b, either of which may be nil.
func HCat(a, b *mat.Dense) *mat.Dense {
	switch {
	case a == nil && b == nil:
		return nil
	case b == nil:
		return mat.DenseCopyOf(a)
	case a == nil:
		return mat.DenseCopyOf(b)
	}

	ra, ca := a.Dims()
	_, cb := b.Dims()

	out := mat.NewDense(ra, ca+cb, nil)
	out.Augment(a, b)
	return out
}

// MulTransA returns aᵀ·b, or nil when either operand has no columns.
func MulTransA(a, b *mat.Dense) *mat.Dense {
	if a == nil || b == nil {
		return nil
	}

	var out mat.Dense
	out.Mul(a.T(), b)
	return &out
}

// MulVecTransA returns aᵀ·x, or nil when a has no columns.
func MulVecTransA(a *mat.Dense, x []float64) []float64 {
	if a == nil {
		return nil
	}

	var out mat.VecDense
	out.MulVec(a.T(), mat.NewVecDense(len(x), x))
	return out.RawVector().Data
}

// Residual returns m - basis·proj, the component of m left over after
// removing its projection proj = basisᵀ·m. A nil basis leaves m unchanged.
func Residual(m, basis, proj *mat.Dense) *mat.Dense {
	res := mat.DenseCopyOf(m)
	if basis == nil || proj == nil {
		return res
	}

	var p mat.Dense
	p.Mul(basis, proj)
	res.Sub(res, &p)
	return res
}

// VecResidual is the vector form of Residual.
func VecResidual(x []float64, basis *mat.Dense, proj []float64) []float64 {
	res := make([]float64, len(x))
	copy(res, x)
	if basis == nil || len(proj) == 0 {
		return res
	}

	var p mat.VecDense
	p.MulVec(basis, mat.NewVecDense(len(proj), proj))
	floats.Sub(res, p.RawVector().Data)
	return res
}
