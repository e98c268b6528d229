package analysis

import (
	"math"
	"testing"
)

func TestBivariateDensity_PeakAtMean(t *testing.T) {
	density := BivariateDensity(170, 80, 36, 25, 10)

	atMean := density(170, 80)
	if atMean <= 0 {
		t.Fatalf("density at the mean = %v, want > 0", atMean)
	}
	if off := density(180, 90); off >= atMean {
		t.Errorf("off-mean density %v not below peak %v", off, atMean)
	}

	// Peak of a bivariate Gaussian: 1/(2π√det).
	det := 36.0*25.0 - 10.0*10.0
	want := 1 / (2 * math.Pi * math.Sqrt(det))
	if math.Abs(atMean-want) > 1e-12 {
		t.Errorf("peak density = %v, want %v", atMean, want)
	}
}

func TestBivariateDensity_SingularFallsBackToProduct(t *testing.T) {
	// Perfect correlation: cov² = varX·varY, determinant 0. The density must
	// degrade to the independent marginal product, not blow up.
	density := BivariateDensity(0, 0, 4, 9, 6)

	got := density(0, 0)
	want := 1 / (2 * math.Pi * 2 * 3)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("fallback peak = %v, want marginal product %v", got, want)
	}
	if math.IsNaN(density(1, 1)) || math.IsInf(density(1, 1), 0) {
		t.Error("singular density produced non-finite value")
	}
}

func TestBivariateDensity_ZeroVariance(t *testing.T) {
	density := BivariateDensity(170, 80, 0, 25, 0)
	for _, p := range [][2]float64{{170, 80}, {0, 0}} {
		if got := density(p[0], p[1]); got != 0 {
			t.Errorf("density(%v, %v) = %v, want 0 for zero variance", p[0], p[1], got)
		}
	}
}

func TestBivariateGrid(t *testing.T) {
	grid := BivariateGrid(170, 80, 36, 25, 10, GridSpec{
		MinX: 150, MaxX: 190,
		MinY: 60, MaxY: 100,
		Size: 41,
	})
	if grid == nil {
		t.Fatal("nil grid for a valid spec")
	}
	if len(grid.X) != 41 || len(grid.Y) != 41 || len(grid.Z) != 41 {
		t.Fatalf("grid dims = %d/%d/%d, want 41 each", len(grid.X), len(grid.Y), len(grid.Z))
	}

	// The lattice point nearest the mean must carry the maximum.
	maxY, maxX := 0, 0
	for yi := range grid.Z {
		for xi := range grid.Z[yi] {
			if grid.Z[yi][xi] > grid.Z[maxY][maxX] {
				maxY, maxX = yi, xi
			}
		}
	}
	if math.Abs(grid.X[maxX]-170) > 1 || math.Abs(grid.Y[maxY]-80) > 1 {
		t.Errorf("peak at (%v, %v), want near (170, 80)", grid.X[maxX], grid.Y[maxY])
	}
}

func TestBivariateGrid_InvalidSpec(t *testing.T) {
	specs := []GridSpec{
		{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, Size: 1},
		{MinX: 10, MaxX: 0, MinY: 0, MaxY: 10, Size: 20},
		{MinX: 0, MaxX: 10, MinY: 10, MaxY: 10, Size: 20},
	}
	for _, spec := range specs {
		if BivariateGrid(0, 0, 1, 1, 0, spec) != nil {
			t.Errorf("expected nil grid for spec %+v", spec)
		}
	}
}
