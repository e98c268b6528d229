package classify

import (
	"math"
	"testing"
)

func TestEvidenceFor(t *testing.T) {
	tests := []struct {
		name     string
		bf       float64
		category EvidenceCategory
		favors   FavoredSide
	}{
		{"exactly one is anecdotal favoring first", 1, EvidenceAnecdotal, FavorsFirst},
		{"just below moderate", 2.9, EvidenceAnecdotal, FavorsFirst},
		{"moderate lower bound inclusive", 3, EvidenceModerate, FavorsFirst},
		{"strong lower bound inclusive", 10, EvidenceStrong, FavorsFirst},
		{"very strong lower bound inclusive", 30, EvidenceVeryStrong, FavorsFirst},
		{"extreme lower bound inclusive", 100, EvidenceExtreme, FavorsFirst},
		{"large factor is extreme", 150, EvidenceExtreme, FavorsFirst},
		{"reciprocal large factor favors second", 1.0 / 150.0, EvidenceExtreme, FavorsSecond},
		{"reciprocal moderate favors second", 1.0 / 3.0, EvidenceModerate, FavorsSecond},
		{"zero factor is extreme for second", 0, EvidenceExtreme, FavorsSecond},
		{"infinite factor is extreme for first", math.Inf(1), EvidenceExtreme, FavorsFirst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvidenceFor(tt.bf)
			if got.Category != tt.category {
				t.Errorf("EvidenceFor(%v).Category = %v, want %v", tt.bf, got.Category, tt.category)
			}
			if got.Favors != tt.favors {
				t.Errorf("EvidenceFor(%v).Favors = %v, want %v", tt.bf, got.Favors, tt.favors)
			}
		})
	}
}
