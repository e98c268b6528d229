package series

import (
	"fmt"
	"sync"

	"anthrostat/domain/core"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Series wraps named numeric columns ("dimensions") and serves descriptive
// statistics over them. The backing arrays are copied at construction and
// never mutated afterwards; every statistic is computed at most once per
// Series and memoized.
//
// All statistics are population estimates (divide by N). Empty or unknown
// dimensions yield 0 for mean/stddev/covariance/correlation and an
// everywhere-zero PDF, so callers never have to guard lookups.
type Series struct {
	dims map[core.DimensionKey][]float64

	mu    sync.Mutex
	means map[core.DimensionKey]float64
	sds   map[core.DimensionKey]float64
	covs  map[string]float64
}

// New builds a Series from per-dimension value arrays. The arrays are copied;
// later mutation of the caller's slices does not affect the Series.
func New(columns map[core.DimensionKey][]float64) *Series {
	dims := make(map[core.DimensionKey][]float64, len(columns))
	for key, values := range columns {
		copied := make([]float64, len(values))
		copy(copied, values)
		dims[key] = copied
	}
	return &Series{
		dims:  dims,
		means: make(map[core.DimensionKey]float64),
		sds:   make(map[core.DimensionKey]float64),
		covs:  make(map[string]float64),
	}
}

// Dimensions returns the available dimension keys in unspecified order.
func (s *Series) Dimensions() []core.DimensionKey {
	keys := make([]core.DimensionKey, 0, len(s.dims))
	for key := range s.dims {
		keys = append(keys, key)
	}
	return keys
}

// Has reports whether the dimension exists.
func (s *Series) Has(dim core.DimensionKey) bool {
	_, ok := s.dims[dim]
	return ok
}

// ValuesOf returns the raw values for a dimension, or an empty slice for an
// unknown dimension. The returned slice must not be mutated.
func (s *Series) ValuesOf(dim core.DimensionKey) []float64 {
	if values, ok := s.dims[dim]; ok {
		return values
	}
	return nil
}

// Len returns the sample count for a dimension.
func (s *Series) Len(dim core.DimensionKey) int {
	return len(s.dims[dim])
}

// Mean returns the population mean of a dimension (0 when empty).
func (s *Series) Mean(dim core.DimensionKey) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mean, ok := s.means[dim]; ok {
		return mean
	}
	mean, err := stats.Mean(s.dims[dim])
	if err != nil {
		mean = 0
	}
	s.means[dim] = mean
	return mean
}

// StdDev returns the population standard deviation of a dimension
// (0 when empty).
func (s *Series) StdDev(dim core.DimensionKey) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sd, ok := s.sds[dim]; ok {
		return sd
	}
	sd, err := stats.StandardDeviationPopulation(s.dims[dim])
	if err != nil {
		sd = 0
	}
	s.sds[dim] = sd
	return sd
}

// Variance returns the population variance of a dimension.
func (s *Series) Variance(dim core.DimensionKey) float64 {
	sd := s.StdDev(dim)
	return sd * sd
}

// Covariance returns the population covariance of two dimensions.
// Returns 0 when the dimensions have different lengths or are empty.
// Memoized per ordered (a,b) key; Covariance(a,b) and Covariance(b,a)
// compute independently but agree numerically.
func (s *Series) Covariance(dimA, dimB core.DimensionKey) float64 {
	key := fmt.Sprintf("%s,%s", dimA, dimB)
	s.mu.Lock()
	defer s.mu.Unlock()
	if cov, ok := s.covs[key]; ok {
		return cov
	}
	cov, err := stats.CovariancePopulation(s.dims[dimA], s.dims[dimB])
	if err != nil {
		cov = 0
	}
	s.covs[key] = cov
	return cov
}

// Correlation returns the Pearson correlation of two dimensions, or 0 when
// either dimension has zero standard deviation.
func (s *Series) Correlation(dimA, dimB core.DimensionKey) float64 {
	sdA := s.StdDev(dimA)
	sdB := s.StdDev(dimB)
	if sdA == 0 || sdB == 0 {
		return 0
	}
	return s.Covariance(dimA, dimB) / (sdA * sdB)
}

// PDF returns a reusable Gaussian density function parameterized by the
// dimension's own mean and standard deviation. When the standard deviation
// is 0 (empty or constant column) the returned function is 0 everywhere.
func (s *Series) PDF(dim core.DimensionKey) func(float64) float64 {
	mean := s.Mean(dim)
	sd := s.StdDev(dim)
	if sd == 0 {
		return func(float64) float64 { return 0 }
	}
	normal := distuv.Normal{Mu: mean, Sigma: sd}
	return normal.Prob
}
