package classify

import (
	"math"
)

// pivotEpsilon is the pivot-magnitude cutoff below which a covariance matrix
// is declared singular and consumers switch to the diagonal fallback.
const pivotEpsilon = 1e-12

// invertMatrix inverts a small dense matrix by Gauss-Jordan elimination with
// partial pivoting on the augmented [M|I] system. The second return value is
// false when any pivot's magnitude falls below pivotEpsilon, signalling a
// singular (or numerically singular) matrix. Singularity is an expected
// condition here, not an error: highly correlated measurement choices
// produce rank-deficient pooled covariance.
func invertMatrix(m [][]float64) ([][]float64, bool) {
	n := len(m)
	if n == 0 {
		return nil, false
	}

	// Build the augmented [M|I] system.
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], m[i])
		aug[i][n+i] = 1
	}

	for col := 0; col < n; col++ {
		// Partial pivoting: bring the largest remaining magnitude up.
		pivotRow := col
		for row := col + 1; row < n; row++ {
			if math.Abs(aug[row][col]) > math.Abs(aug[pivotRow][col]) {
				pivotRow = row
			}
		}
		if math.Abs(aug[pivotRow][col]) < pivotEpsilon {
			return nil, false
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		pivot := aug[col][col]
		for j := 0; j < 2*n; j++ {
			aug[col][j] /= pivot
		}

		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := aug[row][col]
			if factor == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug[row][j] -= factor * aug[col][j]
			}
		}
	}

	inverse := make([][]float64, n)
	for i := 0; i < n; i++ {
		inverse[i] = aug[i][n:]
	}
	return inverse, true
}

// matVec multiplies a square matrix by a vector.
func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i := range m {
		sum := 0.0
		for j := range v {
			sum += m[i][j] * v[j]
		}
		out[i] = sum
	}
	return out
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// quadraticForm computes vᵗ M v.
func quadraticForm(m [][]float64, v []float64) float64 {
	return dot(v, matVec(m, v))
}
