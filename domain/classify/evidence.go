package classify

// EvidenceCategory labels the strength of a Bayes factor on the
// Lee & Wagenmakers (2013) qualitative scale.
type EvidenceCategory string

const (
	EvidenceAnecdotal  EvidenceCategory = "anecdotal"
	EvidenceModerate   EvidenceCategory = "moderate"
	EvidenceStrong     EvidenceCategory = "strong"
	EvidenceVeryStrong EvidenceCategory = "veryStrong"
	EvidenceExtreme    EvidenceCategory = "extreme"
)

// FavoredSide indicates which hypothesis a Bayes factor favors.
type FavoredSide string

const (
	FavorsFirst  FavoredSide = "first"
	FavorsSecond FavoredSide = "second"
)

// Evidence is the qualitative reading of a Bayes factor.
type Evidence struct {
	Category EvidenceCategory `json:"category"`
	Favors   FavoredSide      `json:"favors"`
}

// EvidenceFor maps a Bayes factor to a qualitative evidence category.
// Factors below 1 are folded to their reciprocal and reported as favoring
// the second hypothesis. A factor of exactly 1 is anecdotal evidence
// favoring the first hypothesis by convention.
func EvidenceFor(bayesFactor float64) Evidence {
	magnitude := bayesFactor
	favors := FavorsFirst
	if bayesFactor < 1 {
		magnitude = 1 / bayesFactor
		favors = FavorsSecond
	}

	category := EvidenceAnecdotal
	switch {
	case magnitude >= 100:
		category = EvidenceExtreme
	case magnitude >= 30:
		category = EvidenceVeryStrong
	case magnitude >= 10:
		category = EvidenceStrong
	case magnitude >= 3:
		category = EvidenceModerate
	}

	return Evidence{Category: category, Favors: favors}
}
