package classify

import (
	"fmt"
	"sort"

	"anthrostat/domain/core"
)

// Point is a query point: measurement dimension -> observed value.
// Only the dimensions present in the point are scored.
type Point map[core.DimensionKey]float64

// dimensions returns the point's dimension keys in a deterministic order.
func (p Point) dimensions() []core.DimensionKey {
	keys := make([]core.DimensionKey, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Classifier is the shared contract of the statistical classifiers.
type Classifier interface {
	ClassifyWithDetails(point Point) (*Classification, error)
}

// ClassScore is one class's standing in a classification.
type ClassScore struct {
	Index        int             `json:"index"`
	Label        core.ClassLabel `json:"label"`
	LogPosterior float64         `json:"log_posterior"`
	Posterior    float64         `json:"posterior"`
}

// DimensionEvidence breaks a single dimension's evidential contribution out
// of a two-class comparison. Weight and Contribution are populated by LDA
// only; LogLikelihoodRatio is the Naive Bayes per-dimension reading.
type DimensionEvidence struct {
	Dimension core.DimensionKey `json:"dimension"`

	Density0 float64 `json:"density_0"`
	Density1 float64 `json:"density_1"`
	Z0       float64 `json:"z_0"`
	Z1       float64 `json:"z_1"`

	LogLikelihoodRatio float64  `json:"log_likelihood_ratio"`
	BayesFactor        float64  `json:"bayes_factor"`
	Evidence           Evidence `json:"evidence"`

	// LDA-only fields: relative importance (|w| normalized to sum 1),
	// signed contribution w*(x-midpoint), and the class the sign favors.
	Weight       float64         `json:"weight,omitempty"`
	Contribution float64         `json:"contribution,omitempty"`
	FavorsClass  core.ClassLabel `json:"favors_class,omitempty"`
}

// Classification is the full structured result of a classification call.
type Classification struct {
	Method  string       `json:"method"`
	Winner  ClassScore   `json:"winner"`
	Results []ClassScore `json:"results"`

	// BayesFactor is the class-0-over-class-1 likelihood ratio; populated
	// only for two-class classifications, along with Evidence/PerDimension.
	BayesFactor  float64                                 `json:"bayes_factor"`
	Evidence     Evidence                                `json:"evidence"`
	PerDimension map[core.DimensionKey]DimensionEvidence `json:"per_dimension,omitempty"`

	// Mahalanobis holds per-class distances to centroids (LDA only).
	Mahalanobis []float64 `json:"mahalanobis,omitempty"`

	// Degraded reports that a singular pooled covariance forced the
	// diagonal (independent-feature) fallback path.
	Degraded bool `json:"degraded,omitempty"`
}

// defaultLabels produces the conventional label list for k classes.
func defaultLabels(k int) []core.ClassLabel {
	base := []core.ClassLabel{"Male", "Female"}
	labels := make([]core.ClassLabel, k)
	for i := 0; i < k; i++ {
		if i < len(base) {
			labels[i] = base[i]
		} else {
			labels[i] = core.ClassLabel(fmt.Sprintf("Class %d", i+1))
		}
	}
	return labels
}

// resolveLabels truncates or extends the provided labels to k entries.
func resolveLabels(k int, labels []core.ClassLabel) []core.ClassLabel {
	resolved := defaultLabels(k)
	for i := 0; i < k && i < len(labels); i++ {
		resolved[i] = labels[i]
	}
	return resolved
}

// uniformPriors returns the default 1/k prior vector.
func uniformPriors(k int) []float64 {
	priors := make([]float64, k)
	for i := range priors {
		priors[i] = 1.0 / float64(k)
	}
	return priors
}
