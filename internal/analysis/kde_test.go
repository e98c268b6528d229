package analysis

import (
	"math"
	"testing"
)

func evenlySpaced(mean, sd float64, n int) []float64 {
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		u := -2.0 + 4.0*float64(i)/float64(n-1)
		values[i] = mean + sd*u
	}
	return values
}

func TestScottBandwidth(t *testing.T) {
	samples := evenlySpaced(170, 6, 100)
	h := ScottBandwidth(samples)
	if h <= 0 {
		t.Fatalf("bandwidth = %v, want > 0", h)
	}

	// h = 1.06·σ·n^(-1/5) exactly.
	sigma := populationStdDev(samples)
	want := 1.06 * sigma * math.Pow(100, -0.2)
	if math.Abs(h-want) > 1e-12 {
		t.Errorf("bandwidth = %v, want %v", h, want)
	}
}

func populationStdDev(samples []float64) float64 {
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))
	ss := 0.0
	for _, v := range samples {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(samples)))
}

func TestScottBandwidth_Degenerate(t *testing.T) {
	if h := ScottBandwidth(nil); h != 0 {
		t.Errorf("empty sample bandwidth = %v, want 0", h)
	}
	if h := ScottBandwidth([]float64{170}); h != 0 {
		t.Errorf("single sample bandwidth = %v, want 0", h)
	}
	if h := ScottBandwidth([]float64{5, 5, 5, 5}); h != 0 {
		t.Errorf("constant sample bandwidth = %v, want 0", h)
	}
}

func TestEstimateDensity(t *testing.T) {
	samples := evenlySpaced(170, 6, 100)
	h := ScottBandwidth(samples)

	near := EstimateDensity(samples, 170, h)
	far := EstimateDensity(samples, 1000, h)
	if near <= 0 {
		t.Errorf("density at the mean = %v, want > 0", near)
	}
	if far > 1e-12 {
		t.Errorf("density far from data = %v, want ~0", far)
	}
	if EstimateDensity(samples, 170, 0) != 0 {
		t.Error("zero bandwidth should yield zero density")
	}
	if EstimateDensity(nil, 170, 1) != 0 {
		t.Error("empty sample should yield zero density")
	}
}

func TestDensityCurve_IntegratesToOne(t *testing.T) {
	samples := evenlySpaced(170, 6, 100)
	curve := DensityCurve(samples, 800)
	if curve == nil {
		t.Fatal("no curve for a valid sample")
	}

	// Trapezoidal integral over the padded range; the tails taper to near
	// zero, so most of the mass sits inside the curve.
	integral := 0.0
	for i := 1; i < len(curve); i++ {
		dx := curve[i].X - curve[i-1].X
		integral += dx * (curve[i].Y + curve[i-1].Y) / 2
	}
	if math.Abs(integral-1) > 0.05 {
		t.Errorf("curve integral = %v, want ~1", integral)
	}
}

func TestDensityCurve_Degenerate(t *testing.T) {
	if curve := DensityCurve(nil, 100); curve != nil {
		t.Error("expected nil curve for empty sample")
	}
	if curve := DensityCurve([]float64{3, 3, 3}, 100); curve != nil {
		t.Error("expected nil curve for constant sample")
	}
	if curve := DensityCurve([]float64{1, 2, 3}, 1); curve != nil {
		t.Error("expected nil curve for a single evaluation point")
	}
}

func TestGaussianCurve(t *testing.T) {
	curve := GaussianCurve(170, 6, 140, 200, 200)
	if len(curve) != 200 {
		t.Fatalf("curve has %d points, want 200", len(curve))
	}

	// The peak must be at the point closest to the mean.
	peak := 0
	for i, p := range curve {
		if p.Y > curve[peak].Y {
			peak = i
		}
	}
	if math.Abs(curve[peak].X-170) > 1 {
		t.Errorf("peak at x = %v, want near 170", curve[peak].X)
	}

	wantPeak := 1 / (6 * math.Sqrt(2*math.Pi))
	if math.Abs(curve[peak].Y-wantPeak) > 1e-3 {
		t.Errorf("peak density = %v, want %v", curve[peak].Y, wantPeak)
	}
}

func TestGaussianCurve_Degenerate(t *testing.T) {
	if GaussianCurve(170, 0, 140, 200, 100) != nil {
		t.Error("expected nil curve for zero sd")
	}
	if GaussianCurve(170, 6, 200, 140, 100) != nil {
		t.Error("expected nil curve for inverted range")
	}
}
