package subspace

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// sanitizeEigenvalues clamps every non-finite or negative value to zero in
// place. gonum's symmetric eigensolver can return NaN or tiny negative
// values for near-singular systems; neither is a meaningful variance.
func sanitizeEigenvalues(values []float64) {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			values[i] = 0
		}
	}
}

// truncateByEnergy returns the indices i with values[i] >= eps*max(values),
// in their original order. values must already be sanitized.
func truncateByEnergy(values []float64, eps float64) []int {
	if len(values) == 0 {
		return nil
	}

	threshold := eps * math.Max(floats.Max(values), 0)

	keep := make([]int, 0, len(values))
	for i, v := range values {
		if v >= threshold {
			keep = append(keep, i)
		}
	}
	return keep
}
