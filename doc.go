// Package subspace maintains a compact PCA summary at every node of a binary
// spatial partition tree.
//
// Each node of such a tree covers a contiguous column range of a d×N point
// matrix (one point per column). A Stat summarizes that range by its exact
// centroid and a truncated orthonormal eigenbasis of its covariance. Leaves
// are decomposed directly; internal nodes are merged from their two
// children without revisiting any point, at a cost that depends on the
// basis sizes instead of the point count.
//
// # Quick Start
//
//	points := mat.NewDense(d, n, data) // one point per column
//
//	left, _ := subspace.NewLeaf(points, 0, 64)
//	right, _ := subspace.NewLeaf(points, 64, 64)
//	parent, _ := subspace.Merge(left, right)
//
//	parent.Means()        // exact mean of all 128 points
//	parent.Eigenvectors() // d×k orthonormal basis
//	parent.Eigenvalues()  // variance along each basis column
//
// # Whole Trees
//
// Build reduces a caller-built tree bottom-up, constructing sibling
// subtrees concurrently:
//
//	root := &subspace.Node{Start: 0, Count: 128,
//	    Left:  &subspace.Node{Start: 0, Count: 64},
//	    Right: &subspace.Node{Start: 64, Count: 64},
//	}
//	err := subspace.Build(ctx, points, root)
//	root.Stat.Rank()
//
// # Truncation
//
// Both constructors keep only the eigenpairs whose value is at least ε
// times the largest value of the same decomposition (singular values for
// leaves, eigenvalues for merges), so the rank k varies per node. The merge
// also uses ε as the absolute residual norm above which a direction of the
// right child counts as new. ε defaults to DefaultEpsilon and can be set
// with WithEpsilon.
//
// Eigenpairs are kept in decomposition order. Callers must not assume they
// are sorted.
//
// # Single-Point Leaves
//
// A leaf over exactly one point has one zero eigenvalue and a single zero
// eigenvector. This is the only case in which an eigenvector is not of
// unit length.
//
// # Thread Safety
//
// A Stat is immutable after construction and safe for concurrent reads.
// NewLeaf and Merge have no shared state and may run concurrently on
// independent inputs.
package subspace
