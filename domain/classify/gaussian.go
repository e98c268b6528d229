package classify

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// gaussianPDF evaluates the normal density at x. A zero standard deviation
// (empty or constant column) yields 0 everywhere rather than dividing by zero.
func gaussianPDF(x, mean, sd float64) float64 {
	if sd == 0 {
		return 0
	}
	return distuv.Normal{Mu: mean, Sigma: sd}.Prob(x)
}

// logGaussianPDF evaluates the log normal density at x, with -Inf standing in
// for the zero density of a zero-stddev dimension.
func logGaussianPDF(x, mean, sd float64) float64 {
	if sd == 0 {
		return math.Inf(-1)
	}
	return distuv.Normal{Mu: mean, Sigma: sd}.LogProb(x)
}

// zScore standardizes x against (mean, sd); 0 when sd is 0.
func zScore(x, mean, sd float64) float64 {
	if sd == 0 {
		return 0
	}
	return (x - mean) / sd
}

// likelihoodRatio computes p0/p1 with the zero-density conventions used for
// per-dimension Bayes factors: both zero reads as no evidence (1), a single
// zero reads as infinitely strong evidence for the non-zero side.
func likelihoodRatio(p0, p1 float64) float64 {
	switch {
	case p0 > 0 && p1 > 0:
		return p0 / p1
	case p0 == 0 && p1 == 0:
		return 1
	case p1 == 0:
		return math.Inf(1)
	default:
		return 0
	}
}

// logLikelihoodRatio computes log(p0) - log(p1) with explicit zero-density
// handling: both zero is 0, a single zero is the appropriate infinity.
func logLikelihoodRatio(p0, p1 float64) float64 {
	switch {
	case p0 > 0 && p1 > 0:
		return math.Log(p0) - math.Log(p1)
	case p0 == 0 && p1 == 0:
		return 0
	case p0 == 0:
		return math.Inf(-1)
	default:
		return math.Inf(1)
	}
}

// clampBayesFactor resolves a non-finite or NaN Bayes factor deterministically
// from the raw log-posterior ordering: the larger side wins outright.
func clampBayesFactor(bf, logPost0, logPost1 float64) float64 {
	if !math.IsNaN(bf) && !math.IsInf(bf, 0) {
		return bf
	}
	switch {
	case logPost0 > logPost1:
		return math.Inf(1)
	case logPost0 < logPost1:
		return 0
	default:
		return 1
	}
}
