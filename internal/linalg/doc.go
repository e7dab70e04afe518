// Package linalg adapts gonum's dense decompositions to the shapes used by
// subspace construction.
//
// gonum cannot allocate matrices with a zero dimension, so a d×0 matrix is
// represented here by a nil *mat.Dense. Every helper in this package accepts
// and returns nil in that sense; use Cols to query the column count of a
// possibly-empty matrix.
//
// The decompositions themselves are gonum's:
//
//   - LeftSingular wraps mat.SVD (thin U only)
//   - EigenSym wraps mat.EigenSym
//   - OrthonormalBasis wraps mat.QR, falling back to modified Gram-Schmidt
//     for wide or rank-deficient inputs
package linalg
