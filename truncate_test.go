package subspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEigenvalues(t *testing.T) {
	values := []float64{1, math.NaN(), -1e-17, math.Inf(1), math.Inf(-1), 0.5}

	sanitizeEigenvalues(values)

	assert.Equal(t, []float64{1, 0, 0, 0, 0, 0.5}, values)
}

func TestTruncateByEnergy(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		eps    float64
		want   []int
	}{
		{"empty", nil, 0.1, nil},
		{"keeps order", []float64{0.5, 10, 0.05, 1}, 0.1, []int{1, 3}},
		{"threshold inclusive", []float64{1, 10}, 0.1, []int{0, 1}},
		{"all zero", []float64{0, 0}, 0.1, []int{0, 1}},
		{"ascending", []float64{0.01, 0.2, 2}, 0.1, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateByEnergy(tt.values, tt.eps)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
