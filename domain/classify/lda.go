package classify

import (
	"math"

	"anthrostat/domain/core"
	"anthrostat/domain/series"
	"anthrostat/internal"
	"anthrostat/internal/errors"
)

// LDA is a linear discriminant classifier over exactly two classes. Each
// classification call pools the two classes' covariance over the query's
// dimension subset, inverts it, and scores the classic discriminant
//
//	score_k = xᵗΣ⁻¹μ_k − ½μ_kᵗΣ⁻¹μ_k + log(prior_k)
//
// The pooled matrix is rebuilt per call because the active dimension set
// varies by query. A singular covariance never fails a call: every consumer
// drops to a diagonal approximation instead.
type LDA struct {
	seriesList []*series.Series
	labels     []core.ClassLabel
	priors     []float64
	log        *internal.Logger
}

// NewLDA builds an LDA classifier. Exactly two Series are required.
func NewLDA(seriesList []*series.Series, labels ...core.ClassLabel) (*LDA, error) {
	if len(seriesList) != 2 {
		return nil, errors.InvalidArgument("LDA requires exactly 2 classes")
	}
	return &LDA{
		seriesList: seriesList,
		labels:     resolveLabels(2, labels),
		priors:     []float64{0.5, 0.5},
		log:        internal.DefaultLogger,
	}, nil
}

// Labels returns the two class labels.
func (c *LDA) Labels() []core.ClassLabel {
	return c.labels
}

// SetPriors replaces the prior probabilities; the vector must have length 2.
func (c *LDA) SetPriors(priors []float64) error {
	if len(priors) != 2 {
		return errors.InvalidArgument("LDA priors must have length 2")
	}
	c.priors = append([]float64(nil), priors...)
	return nil
}

// PooledCovariance builds the unbiased pooled within-class covariance matrix
// over the requested dimensions:
//
//	((n0−1)·cov0(i,j) + (n1−1)·cov1(i,j)) / (n0+n1−2)
//
// The second return value is false when the combined sample size makes the
// denominator non-positive (n0+n1 ≤ 2); that case is treated as singular so
// no Inf/NaN ever enters the discriminant math.
func (c *LDA) PooledCovariance(dims []core.DimensionKey) ([][]float64, bool) {
	s0, s1 := c.seriesList[0], c.seriesList[1]
	n0 := float64(sampleCount(s0, dims))
	n1 := float64(sampleCount(s1, dims))
	denom := n0 + n1 - 2
	if denom <= 0 {
		return nil, false
	}

	k := len(dims)
	pooled := make([][]float64, k)
	for i := 0; i < k; i++ {
		pooled[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			pooled[i][j] = ((n0-1)*s0.Covariance(dims[i], dims[j]) +
				(n1-1)*s1.Covariance(dims[i], dims[j])) / denom
		}
	}
	return pooled, true
}

// inverseCovariance resolves the pooled covariance inverse for a dimension
// set. The degraded flag reports that the diagonal fallback was taken
// (singular matrix or degenerate sample sizes).
func (c *LDA) inverseCovariance(dims []core.DimensionKey) (inv [][]float64, degraded bool) {
	pooled, ok := c.PooledCovariance(dims)
	if ok {
		if inverse, invertible := invertMatrix(pooled); invertible {
			return inverse, false
		}
		c.log.Warn("singular pooled covariance over %d dimension(s), using diagonal fallback", len(dims))
		return c.diagonalInverse(dims, pooled), true
	}
	c.log.Warn("degenerate sample sizes for pooled covariance, using diagonal fallback")
	return c.diagonalInverse(dims, nil), true
}

// diagonalInverse builds the independent-feature approximation: a diagonal
// matrix of reciprocal pooled variances. Zero-variance dimensions contribute
// nothing (entry 0) rather than dividing by zero.
func (c *LDA) diagonalInverse(dims []core.DimensionKey, pooled [][]float64) [][]float64 {
	k := len(dims)
	inv := make([][]float64, k)
	for i := 0; i < k; i++ {
		inv[i] = make([]float64, k)
		variance := 0.0
		if pooled != nil {
			variance = pooled[i][i]
		} else {
			variance = (c.seriesList[0].Variance(dims[i]) + c.seriesList[1].Variance(dims[i])) / 2
		}
		if variance > pivotEpsilon {
			inv[i][i] = 1 / variance
		}
	}
	return inv
}

// DiscriminantScores computes the per-class discriminant values for a point.
func (c *LDA) DiscriminantScores(point Point) (scores []float64, degraded bool) {
	dims := point.dimensions()
	inv, degraded := c.inverseCovariance(dims)
	x := c.vectorOf(point, dims)

	scores = make([]float64, 2)
	for k := 0; k < 2; k++ {
		mu := c.meanVector(k, dims)
		invMu := matVec(inv, mu)
		scores[k] = dot(x, invMu) - 0.5*dot(mu, invMu) + math.Log(c.priors[k])
	}
	return scores, degraded
}

// MahalanobisDistances computes each class's covariance-normalized distance
// from the point to its centroid. Under the diagonal fallback this reduces
// to a per-dimension standardized Euclidean distance.
func (c *LDA) MahalanobisDistances(point Point) []float64 {
	dims := point.dimensions()
	inv, _ := c.inverseCovariance(dims)
	x := c.vectorOf(point, dims)

	distances := make([]float64, 2)
	for k := 0; k < 2; k++ {
		mu := c.meanVector(k, dims)
		diff := make([]float64, len(dims))
		for i := range dims {
			diff[i] = x[i] - mu[i]
		}
		d2 := quadraticForm(inv, diff)
		if d2 < 0 {
			// Numerical round-off near singularity.
			d2 = 0
		}
		distances[k] = math.Sqrt(d2)
	}
	return distances
}

// PerDimensionEvidence derives the LDA weight vector w = Σ⁻¹(μ0−μ1) and
// reports each dimension's relative importance (|w| normalized to sum 1) and
// signed contribution w_i·(x_i − midpoint_i). The univariate Bayes factor
// per dimension is attached for display only; it does not enter the score.
// When the covariance is singular the weights fall back to uniform.
func (c *LDA) PerDimensionEvidence(point Point) map[core.DimensionKey]DimensionEvidence {
	dims := point.dimensions()
	s0, s1 := c.seriesList[0], c.seriesList[1]

	weights := make([]float64, len(dims))
	inv, degraded := c.inverseCovariance(dims)
	if degraded {
		for i := range weights {
			weights[i] = 1.0 / float64(len(dims))
		}
	} else {
		meanDiff := make([]float64, len(dims))
		for i, dim := range dims {
			meanDiff[i] = s0.Mean(dim) - s1.Mean(dim)
		}
		weights = matVec(inv, meanDiff)
	}

	totalMagnitude := 0.0
	for _, w := range weights {
		totalMagnitude += math.Abs(w)
	}

	evidence := make(map[core.DimensionKey]DimensionEvidence, len(dims))
	for i, dim := range dims {
		value := point[dim]
		midpoint := (s0.Mean(dim) + s1.Mean(dim)) / 2
		contribution := weights[i] * (value - midpoint)

		importance := 1.0 / float64(len(dims))
		if totalMagnitude > 0 {
			importance = math.Abs(weights[i]) / totalMagnitude
		}

		favored := c.labels[0]
		if contribution < 0 {
			favored = c.labels[1]
		}

		p0 := gaussianPDF(value, s0.Mean(dim), s0.StdDev(dim))
		p1 := gaussianPDF(value, s1.Mean(dim), s1.StdDev(dim))
		bf := likelihoodRatio(p0, p1)

		evidence[dim] = DimensionEvidence{
			Dimension:          dim,
			Density0:           p0,
			Density1:           p1,
			Z0:                 zScore(value, s0.Mean(dim), s0.StdDev(dim)),
			Z1:                 zScore(value, s1.Mean(dim), s1.StdDev(dim)),
			LogLikelihoodRatio: logLikelihoodRatio(p0, p1),
			BayesFactor:        bf,
			Evidence:           EvidenceFor(bf),
			Weight:             importance,
			Contribution:       contribution,
			FavorsClass:        favored,
		}
	}
	return evidence
}

// ClassifyWithDetails converts discriminant scores to posteriors via softmax
// and assembles the full result, including Mahalanobis distances and the
// per-dimension breakdown.
func (c *LDA) ClassifyWithDetails(point Point) (*Classification, error) {
	scores, degraded := c.DiscriminantScores(point)
	posteriors := softmax(scores)
	winnerIdx := argmax(scores)

	results := make([]ClassScore, 2)
	for i := 0; i < 2; i++ {
		results[i] = ClassScore{
			Index:        i,
			Label:        c.labels[i],
			LogPosterior: scores[i],
			Posterior:    posteriors[i],
		}
	}

	bf := clampBayesFactor(math.Exp(scores[0]-scores[1]), scores[0], scores[1])

	return &Classification{
		Method:       "lda",
		Winner:       results[winnerIdx],
		Results:      results,
		BayesFactor:  bf,
		Evidence:     EvidenceFor(bf),
		PerDimension: c.PerDimensionEvidence(point),
		Mahalanobis:  c.MahalanobisDistances(point),
		Degraded:     degraded,
	}, nil
}

// vectorOf extracts the point's values in dimension order.
func (c *LDA) vectorOf(point Point, dims []core.DimensionKey) []float64 {
	x := make([]float64, len(dims))
	for i, dim := range dims {
		x[i] = point[dim]
	}
	return x
}

// meanVector extracts one class's centroid over the given dimensions.
func (c *LDA) meanVector(class int, dims []core.DimensionKey) []float64 {
	mu := make([]float64, len(dims))
	for i, dim := range dims {
		mu[i] = c.seriesList[class].Mean(dim)
	}
	return mu
}

// sampleCount resolves a class's sample size over a dimension subset as the
// smallest non-empty column length.
func sampleCount(s *series.Series, dims []core.DimensionKey) int {
	n := 0
	for _, dim := range dims {
		if l := s.Len(dim); l > 0 && (n == 0 || l < n) {
			n = l
		}
	}
	return n
}

// softmax converts scores to probabilities, shifting by the max for
// numerical stability. All -Inf scores degrade to uniform.
func softmax(scores []float64) []float64 {
	return normalizeLogPosteriors(scores)
}
