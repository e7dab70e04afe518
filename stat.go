package subspace

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/subspace/internal/linalg"
)

// Kind tags how a Stat was constructed.
type Kind uint8

const (
	// KindTrivialLeaf is a leaf over exactly one point. Its basis is a single
	// zero column with eigenvalue zero; no decomposition was performed.
	KindTrivialLeaf Kind = iota + 1
	// KindDecomposedLeaf is a leaf over two or more points, summarized by a
	// truncated SVD of the mean-centered points.
	KindDecomposedLeaf
	// KindMerged is an internal node derived from two child stats.
	KindMerged
)

func (k Kind) String() string {
	switch k {
	case KindTrivialLeaf:
		return "trivial-leaf"
	case KindDecomposedLeaf:
		return "decomposed-leaf"
	case KindMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// Stat is the subspace statistic of a contiguous column range of a point
// matrix: the centroid plus a truncated orthonormal eigenbasis of the
// covariance of the points in the range.
//
// A Stat is immutable once returned by NewLeaf or Merge and is safe for
// concurrent reads. The eigenpairs are stored in decomposition order; no
// ordering by magnitude is implied.
type Stat struct {
	kind  Kind
	start int
	count int

	means        []float64
	eigenvectors *mat.Dense // d×k, nil when k = 0
	eigenvalues  []float64
}

// Kind reports which constructor produced s.
func (s *Stat) Kind() Kind { return s.kind }

// Start returns the first column index covered by s.
func (s *Stat) Start() int { return s.start }

// Count returns the number of points covered by s.
func (s *Stat) Count() int { return s.count }

// Dim returns the dimensionality of the point space.
func (s *Stat) Dim() int { return len(s.means) }

// Rank returns the number of retained eigenpairs.
func (s *Stat) Rank() int { return len(s.eigenvalues) }

// Means returns a copy of the centroid.
func (s *Stat) Means() []float64 {
	out := make([]float64, len(s.means))
	copy(out, s.means)
	return out
}

// Eigenvalues returns a copy of the retained eigenvalues. Entry i is the
// variance captured along column i of Eigenvectors.
func (s *Stat) Eigenvalues() []float64 {
	out := make([]float64, len(s.eigenvalues))
	copy(out, s.eigenvalues)
	return out
}

// Eigenvectors returns the d×k eigenbasis as a read-only matrix, or nil
// when the stat has no retained directions.
func (s *Stat) Eigenvectors() mat.Matrix {
	if s.eigenvectors == nil {
		return nil
	}
	return s.eigenvectors
}

// Eigenvector returns a copy of column i of the eigenbasis.
func (s *Stat) Eigenvector(i int) []float64 {
	return mat.Col(nil, i, s.eigenvectors)
}

// basis returns the eigenbasis for internal use, nil when k = 0.
func (s *Stat) basis() *mat.Dense { return s.eigenvectors }

func (s *Stat) basisCols() int { return linalg.Cols(s.eigenvectors) }
