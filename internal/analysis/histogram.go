package analysis

import (
	"github.com/montanaflynn/stats"
)

// Bin is one histogram bucket. Upper is exclusive except for the last bin,
// which includes the sample maximum.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram buckets samples into equal-width bins across the sample range.
// A constant sample collapses to a single bin holding everything.
func Histogram(samples []float64, bins int) []Bin {
	if len(samples) == 0 || bins < 1 {
		return nil
	}

	min, _ := stats.Min(samples)
	max, _ := stats.Max(samples)
	if min == max {
		return []Bin{{Lower: min, Upper: max, Count: len(samples)}}
	}

	width := (max - min) / float64(bins)
	result := make([]Bin, bins)
	for i := range result {
		result[i] = Bin{
			Lower: min + float64(i)*width,
			Upper: min + float64(i+1)*width,
		}
	}

	for _, v := range samples {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}
