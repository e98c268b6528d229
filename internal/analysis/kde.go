package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// CurvePoint is one evaluation of a density curve.
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScottBandwidth selects a kernel bandwidth via Scott's Rule:
// h = 1.06·σ·n^(−1/5). Returns 0 when the sample is too small or constant;
// callers treat that as "no curve to draw".
func ScottBandwidth(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	sigma, err := stats.StandardDeviationPopulation(samples)
	if err != nil || sigma == 0 {
		return 0
	}
	return 1.06 * sigma * math.Pow(float64(len(samples)), -0.2)
}

// EstimateDensity evaluates the Gaussian-kernel density estimate at x:
// (1/(n·h))·Σ K((x−xᵢ)/h) with the standard normal kernel. A non-positive
// bandwidth yields 0.
func EstimateDensity(samples []float64, x, bandwidth float64) float64 {
	n := len(samples)
	if n == 0 || bandwidth <= 0 {
		return 0
	}
	sum := 0.0
	for _, sample := range samples {
		sum += distuv.UnitNormal.Prob((x - sample) / bandwidth)
	}
	return sum / (float64(n) * bandwidth)
}

// DensityCurve evaluates the KDE at a fixed number of points across the
// sample range (padded by two bandwidths so the tails taper visibly).
// Recomputed on every call; no caching, which is fine at UI data sizes.
func DensityCurve(samples []float64, points int) []CurvePoint {
	if len(samples) == 0 || points < 2 {
		return nil
	}
	h := ScottBandwidth(samples)
	if h == 0 {
		return nil
	}

	min, _ := stats.Min(samples)
	max, _ := stats.Max(samples)
	lo := min - 2*h
	hi := max + 2*h
	step := (hi - lo) / float64(points-1)

	curve := make([]CurvePoint, points)
	for i := 0; i < points; i++ {
		x := lo + float64(i)*step
		curve[i] = CurvePoint{X: x, Y: EstimateDensity(samples, x, h)}
	}
	return curve
}

// GaussianCurve evaluates the fitted normal density over the same kind of
// fixed grid, for overlaying the parametric fit on the KDE curve.
func GaussianCurve(mean, sd float64, lo, hi float64, points int) []CurvePoint {
	if sd <= 0 || points < 2 || hi <= lo {
		return nil
	}
	normal := distuv.Normal{Mu: mean, Sigma: sd}
	step := (hi - lo) / float64(points-1)
	curve := make([]CurvePoint, points)
	for i := 0; i < points; i++ {
		x := lo + float64(i)*step
		curve[i] = CurvePoint{X: x, Y: normal.Prob(x)}
	}
	return curve
}
