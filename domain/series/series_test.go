package series

import (
	"math"
	"testing"

	"anthrostat/domain/core"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSeries_MeanAndStdDev(t *testing.T) {
	s := New(map[core.DimensionKey][]float64{
		"x": {170, 175, 180},
	})

	if got := s.Mean("x"); !almostEqual(got, 175, tolerance) {
		t.Errorf("Mean = %v, want 175", got)
	}
	want := math.Sqrt(50.0 / 3.0)
	if got := s.StdDev("x"); !almostEqual(got, want, 1e-9) {
		t.Errorf("StdDev = %v, want %v", got, want)
	}
}

func TestSeries_EmptyAndUnknownDimensions(t *testing.T) {
	s := New(map[core.DimensionKey][]float64{
		"empty": {},
	})

	for _, dim := range []core.DimensionKey{"empty", "missing"} {
		if got := s.Mean(dim); got != 0 {
			t.Errorf("Mean(%q) = %v, want 0", dim, got)
		}
		if got := s.StdDev(dim); got != 0 {
			t.Errorf("StdDev(%q) = %v, want 0", dim, got)
		}
		if got := s.Correlation(dim, dim); got != 0 {
			t.Errorf("Correlation(%q) = %v, want 0", dim, got)
		}
		if values := s.ValuesOf(dim); len(values) != 0 {
			t.Errorf("ValuesOf(%q) returned %d values, want 0", dim, len(values))
		}
	}
}

func TestSeries_StdDevZeroIffConstant(t *testing.T) {
	constant := New(map[core.DimensionKey][]float64{"x": {5, 5, 5, 5}})
	if got := constant.StdDev("x"); got != 0 {
		t.Errorf("constant StdDev = %v, want 0", got)
	}

	varied := New(map[core.DimensionKey][]float64{"x": {5, 5, 5, 6}})
	if got := varied.StdDev("x"); got <= 0 {
		t.Errorf("varied StdDev = %v, want > 0", got)
	}
}

func TestSeries_CovarianceMismatchedLengths(t *testing.T) {
	s := New(map[core.DimensionKey][]float64{
		"a": {1, 2, 3},
		"b": {1, 2},
	})
	if got := s.Covariance("a", "b"); got != 0 {
		t.Errorf("Covariance over mismatched lengths = %v, want 0", got)
	}
}

func TestSeries_CorrelationSymmetry(t *testing.T) {
	s := New(map[core.DimensionKey][]float64{
		"a": {1.2, 4.5, 2.2, 8.9, 3.1, 5.5},
		"b": {0.4, 3.3, 1.9, 7.2, 2.8, 4.1},
	})
	ab := s.Correlation("a", "b")
	ba := s.Correlation("b", "a")
	if !almostEqual(ab, ba, 1e-12) {
		t.Errorf("Correlation not symmetric: %v vs %v", ab, ba)
	}
	if ab <= 0.9 {
		t.Errorf("Correlation = %v, want strongly positive for near-linear data", ab)
	}
}

func TestSeries_CorrelationZeroVarianceGuard(t *testing.T) {
	s := New(map[core.DimensionKey][]float64{
		"flat": {3, 3, 3},
		"x":    {1, 2, 3},
	})
	if got := s.Correlation("flat", "x"); got != 0 {
		t.Errorf("Correlation with zero-variance dim = %v, want 0", got)
	}
}

func TestSeries_PDFIntegratesToOne(t *testing.T) {
	s := New(map[core.DimensionKey][]float64{
		"x": {160, 165, 170, 175, 180, 185},
	})
	pdf := s.PDF("x")

	mean := s.Mean("x")
	sd := s.StdDev("x")
	lo, hi := mean-8*sd, mean+8*sd
	steps := 4000
	step := (hi - lo) / float64(steps)

	integral := 0.0
	for i := 0; i < steps; i++ {
		x := lo + (float64(i)+0.5)*step
		integral += pdf(x) * step
	}
	if !almostEqual(integral, 1.0, 1e-3) {
		t.Errorf("PDF integral = %v, want ~1", integral)
	}
}

func TestSeries_PDFZeroStdDev(t *testing.T) {
	s := New(map[core.DimensionKey][]float64{"x": {7, 7, 7}})
	pdf := s.PDF("x")
	for _, x := range []float64{0, 7, 100} {
		if got := pdf(x); got != 0 {
			t.Errorf("pdf(%v) = %v, want 0 for zero-stddev dimension", x, got)
		}
	}
}

func TestSeries_ImmutableAfterConstruction(t *testing.T) {
	backing := []float64{1, 2, 3}
	s := New(map[core.DimensionKey][]float64{"x": backing})
	mean := s.Mean("x")

	backing[0] = 1000
	if got := s.Mean("x"); got != mean {
		t.Errorf("Mean changed after caller mutated input slice: %v vs %v", got, mean)
	}
}

func TestSeries_MemoizedStatisticsStable(t *testing.T) {
	s := New(map[core.DimensionKey][]float64{
		"a": {1, 2, 3, 4},
		"b": {2, 4, 6, 8},
	})
	first := s.Covariance("a", "b")
	second := s.Covariance("a", "b")
	if first != second {
		t.Errorf("memoized covariance unstable: %v vs %v", first, second)
	}
}
