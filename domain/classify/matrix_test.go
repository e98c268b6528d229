package classify

import (
	"math"
	"testing"
)

func TestInvertMatrix_Identity(t *testing.T) {
	m := [][]float64{{1, 0}, {0, 1}}
	inv, ok := invertMatrix(m)
	if !ok {
		t.Fatal("identity reported singular")
	}
	for i := range inv {
		for j := range inv[i] {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(inv[i][j]-want) > 1e-12 {
				t.Errorf("inv[%d][%d] = %v, want %v", i, j, inv[i][j], want)
			}
		}
	}
}

func TestInvertMatrix_Known2x2(t *testing.T) {
	// [[4 2][2 3]] has determinant 8; inverse is [[3 -2][-2 4]]/8.
	m := [][]float64{{4, 2}, {2, 3}}
	inv, ok := invertMatrix(m)
	if !ok {
		t.Fatal("well-conditioned matrix reported singular")
	}
	want := [][]float64{{0.375, -0.25}, {-0.25, 0.5}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(inv[i][j]-want[i][j]) > 1e-12 {
				t.Errorf("inv[%d][%d] = %v, want %v", i, j, inv[i][j], want[i][j])
			}
		}
	}
}

func TestInvertMatrix_ProductIsIdentity(t *testing.T) {
	m := [][]float64{
		{2.5, 0.7, 0.1},
		{0.7, 1.9, -0.3},
		{0.1, -0.3, 3.2},
	}
	inv, ok := invertMatrix(m)
	if !ok {
		t.Fatal("matrix reported singular")
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += m[i][k] * inv[k][j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(sum-want) > 1e-9 {
				t.Errorf("(M·M⁻¹)[%d][%d] = %v, want %v", i, j, sum, want)
			}
		}
	}
}

func TestInvertMatrix_Singular(t *testing.T) {
	tests := []struct {
		name string
		m    [][]float64
	}{
		{"rank deficient", [][]float64{{1, 2}, {2, 4}}},
		{"zero matrix", [][]float64{{0, 0}, {0, 0}}},
		{"below pivot cutoff", [][]float64{{1e-13, 0}, {0, 1e-13}}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := invertMatrix(tt.m); ok {
				t.Error("expected singular result")
			}
		})
	}
}

func TestInvertMatrix_NeedsPivoting(t *testing.T) {
	// Zero leading entry; succeeds only with row exchange.
	m := [][]float64{{0, 1}, {1, 0}}
	inv, ok := invertMatrix(m)
	if !ok {
		t.Fatal("permutation matrix reported singular")
	}
	if math.Abs(inv[0][1]-1) > 1e-12 || math.Abs(inv[1][0]-1) > 1e-12 {
		t.Errorf("inverse of permutation wrong: %v", inv)
	}
}

func TestInvertMatrix_DoesNotMutateInput(t *testing.T) {
	m := [][]float64{{4, 2}, {2, 3}}
	if _, ok := invertMatrix(m); !ok {
		t.Fatal("unexpected singular")
	}
	if m[0][0] != 4 || m[0][1] != 2 || m[1][0] != 2 || m[1][1] != 3 {
		t.Errorf("input mutated: %v", m)
	}
}

func TestQuadraticForm(t *testing.T) {
	m := [][]float64{{2, 0}, {0, 3}}
	v := []float64{1, 2}
	if got := quadraticForm(m, v); got != 14 {
		t.Errorf("quadraticForm = %v, want 14", got)
	}
}
