package classify

import (
	"math"

	"anthrostat/domain/core"
	"anthrostat/domain/series"
	"anthrostat/internal/errors"
)

// NaiveBayes scores a query point against k >= 2 classes under the
// independence assumption: each dimension contributes its own Gaussian
// log-likelihood and no covariance terms enter the score.
type NaiveBayes struct {
	seriesList []*series.Series
	labels     []core.ClassLabel
	priors     []float64
}

// NewNaiveBayes builds a classifier over one Series per class. Labels default
// to Male/Female (then "Class N") and are truncated or extended to the class
// count. Priors default to uniform.
func NewNaiveBayes(seriesList []*series.Series, labels ...core.ClassLabel) (*NaiveBayes, error) {
	if len(seriesList) < 2 {
		return nil, errors.InvalidArgument("naive bayes requires at least 2 classes")
	}
	return &NaiveBayes{
		seriesList: seriesList,
		labels:     resolveLabels(len(seriesList), labels),
		priors:     uniformPriors(len(seriesList)),
	}, nil
}

// Labels returns the class labels in class order.
func (c *NaiveBayes) Labels() []core.ClassLabel {
	return c.labels
}

// SetPriors replaces the prior probabilities. The vector length must match
// the class count; summing to 1 is the caller's responsibility.
func (c *NaiveBayes) SetPriors(priors []float64) error {
	if len(priors) != len(c.seriesList) {
		return errors.InvalidArgument("priors length must match class count")
	}
	c.priors = append([]float64(nil), priors...)
	return nil
}

// LogPosteriors computes the unnormalized log-posterior of each class:
// log(prior) plus the summed per-dimension Gaussian log-densities. A zero
// density anywhere drives that class to -Inf and stops its accumulation;
// other classes are unaffected.
func (c *NaiveBayes) LogPosteriors(point Point) []float64 {
	logPosteriors := make([]float64, len(c.seriesList))
	for i, s := range c.seriesList {
		logPost := math.Log(c.priors[i])
		for _, dim := range point.dimensions() {
			density := logGaussianPDF(point[dim], s.Mean(dim), s.StdDev(dim))
			if math.IsInf(density, -1) {
				logPost = math.Inf(-1)
				break
			}
			logPost += density
		}
		logPosteriors[i] = logPost
	}
	return logPosteriors
}

// Classify returns the index of the class with the maximum log-posterior.
// Ties resolve to the earliest class in list order.
func (c *NaiveBayes) Classify(point Point) int {
	return argmax(c.LogPosteriors(point))
}

// PerDimensionEvidence breaks the evidence down per dimension for a
// two-class comparison: densities and z-scores under both classes, the
// log-likelihood ratio, and the dimension's own Bayes factor.
func (c *NaiveBayes) PerDimensionEvidence(point Point) (map[core.DimensionKey]DimensionEvidence, error) {
	if len(c.seriesList) != 2 {
		return nil, errors.InvalidState("per-dimension evidence requires exactly 2 classes")
	}

	s0, s1 := c.seriesList[0], c.seriesList[1]
	evidence := make(map[core.DimensionKey]DimensionEvidence, len(point))
	for _, dim := range point.dimensions() {
		value := point[dim]
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
		}
	}
	return evidence, nil
}

// ClassifyWithDetails normalizes the log-posteriors into probabilities via
// log-sum-exp and assembles the full classification result. The overall
// Bayes factor and per-dimension breakdown are attached only for the
// two-class case.
func (c *NaiveBayes) ClassifyWithDetails(point Point) (*Classification, error) {
	logPosteriors := c.LogPosteriors(point)
	posteriors := normalizeLogPosteriors(logPosteriors)
	winnerIdx := argmax(logPosteriors)

	results := make([]ClassScore, len(c.seriesList))
	for i := range c.seriesList {
		results[i] = ClassScore{
			Index:        i,
			Label:        c.labels[i],
			LogPosterior: logPosteriors[i],
			Posterior:    posteriors[i],
		}
	}

	result := &Classification{
		Method:  "bayes",
		Winner:  results[winnerIdx],
		Results: results,
	}

	if len(c.seriesList) == 2 {
		// Strip the priors back out so the factor compares likelihoods.
		rawBF := math.Exp((logPosteriors[0] - math.Log(c.priors[0])) -
			(logPosteriors[1] - math.Log(c.priors[1])))
		bf := clampBayesFactor(rawBF, logPosteriors[0], logPosteriors[1])
		result.BayesFactor = bf
		result.Evidence = EvidenceFor(bf)

		perDim, err := c.PerDimensionEvidence(point)
		if err != nil {
			return nil, err
		}
		result.PerDimension = perDim
	}

	return result, nil
}

// normalizeLogPosteriors converts log-posteriors to probabilities with the
// log-sum-exp trick. When every class is at -Inf the result degrades to a
// uniform distribution so a result can always be rendered.
func normalizeLogPosteriors(logPosteriors []float64) []float64 {
	posteriors := make([]float64, len(logPosteriors))
	max := logPosteriors[argmax(logPosteriors)]
	if math.IsInf(max, -1) {
		for i := range posteriors {
			posteriors[i] = 1.0 / float64(len(posteriors))
		}
		return posteriors
	}

	sum := 0.0
	for i, lp := range logPosteriors {
		posteriors[i] = math.Exp(lp - max)
		sum += posteriors[i]
	}
	for i := range posteriors {
		posteriors[i] /= sum
	}
	return posteriors
}

// argmax returns the index of the largest value, earliest index on ties.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
