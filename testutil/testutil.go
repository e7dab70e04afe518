package testutil

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// GaussianPoints returns a d×n matrix of standard normal points, one point
// per column.
func (r *RNG) GaussianPoints(d, n int) *mat.Dense {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, d*n)
	for i := range data {
		data[i] = r.rand.NormFloat64()
	}
	return mat.NewDense(d, n, data)
}

// ScaledGaussianPoints returns a len(scales)×n matrix of normal points
// whose coordinate i has standard deviation scales[i]. A zero scale pins
// the coordinate to zero.
func (r *RNG) ScaledGaussianPoints(scales []float64, n int) *mat.Dense {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := len(scales)
	m := mat.NewDense(d, n, nil)
	for i := range d {
		row := m.RawRowView(i)
		for j := range row {
			row[j] = r.rand.NormFloat64() * scales[i]
		}
	}
	return m
}

// ClusteredPoints returns a d×n matrix of points scattered with standard
// deviation spread around clusters centroids of unit length. Point j
// belongs to cluster j % clusters.
func (r *RNG) ClusteredPoints(d, n, clusters int, spread float64) *mat.Dense {
	centroids := r.RandomOrthonormal(d, 1)

	r.mu.Lock()
	defer r.mu.Unlock()

	offsets := make([][]float64, clusters)
	for c := range clusters {
		offsets[c] = make([]float64, d)
		for i := range d {
			offsets[c][i] = r.rand.NormFloat64()
		}
		floats.Scale(1/math.Max(floats.Norm(offsets[c], 2), 1e-12), offsets[c])
		floats.AddScaled(offsets[c], float64(c), mat.Col(nil, 0, centroids))
	}

	m := mat.NewDense(d, n, nil)
	col := make([]float64, d)
	for j := range n {
		copy(col, offsets[j%clusters])
		for i := range col {
			col[i] += r.rand.NormFloat64() * spread
		}
		m.SetCol(j, col)
	}
	return m
}

// RandomOrthonormal returns a d×k matrix with orthonormal columns drawn from
// the QR factorization of a Gaussian matrix. k must not exceed d.
func (r *RNG) RandomOrthonormal(d, k int) *mat.Dense {
	g := r.GaussianPoints(d, d)

	var qr mat.QR
	qr.Factorize(g)

	var q mat.Dense
	qr.QTo(&q)

	return mat.DenseCopyOf(q.Slice(0, d, 0, k))
}

// BruteForceMean returns the mean of columns [start, start+count).
func BruteForceMean(points mat.Matrix, start, count int) []float64 {
	d, _ := points.Dims()

	means := make([]float64, d)
	row := make([]float64, count)
	for i := range d {
		for j := range count {
			row[j] = points.At(i, start+j)
		}
		means[i] = stat.Mean(row, nil)
	}
	return means
}

// Covariance returns the population covariance (normalized by count, not
// count-1) of columns [start, start+count).
func Covariance(points mat.Matrix, start, count int) *mat.SymDense {
	d, _ := points.Dims()

	obs := mat.NewDense(count, d, nil)
	for j := range count {
		obs.SetRow(j, mat.Col(nil, start+j, points))
	}

	cov := mat.NewSymDense(d, nil)
	stat.CovarianceMatrix(cov, obs, nil)
	if count > 1 {
		cov.ScaleSym(float64(count-1)/float64(count), cov)
	}
	return cov
}

// OrthonormalityError returns max |QᵀQ - I| over all entries.
func OrthonormalityError(q mat.Matrix) float64 {
	_, k := q.Dims()

	var g mat.Dense
	g.Mul(q.T(), q)

	worst := 0.0
	for i := range k {
		for j := range k {
			want := 0.0
			if i == j {
				want = 1
			}
			worst = math.Max(worst, math.Abs(g.At(i, j)-want))
		}
	}
	return worst
}

// ProjectionResidual returns the norm of the component of v orthogonal to
// the column span of the orthonormal basis q.
func ProjectionResidual(q mat.Matrix, v []float64) float64 {
	x := mat.NewVecDense(len(v), v)

	var coef, proj mat.VecDense
	coef.MulVec(q.T(), x)
	proj.MulVec(q, &coef)
	proj.SubVec(x, &proj)

	return mat.Norm(&proj, 2)
}

// CapturedVariance returns the total variance of cov along the columns of
// the orthonormal basis q, i.e. trace(qᵀ·cov·q).
func CapturedVariance(cov mat.Symmetric, q mat.Matrix) float64 {
	var tmp, g mat.Dense
	tmp.Mul(cov, q)
	g.Mul(q.T(), &tmp)
	return mat.Trace(&g)
}
