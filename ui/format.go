package ui

import (
	"fmt"
	"math"
)

// FormatBayesFactor renders a Bayes factor for display. Sub-unity ratios
// show as their reciprocal ("1/3.20") so the magnitude reads the same way
// in both directions; non-finite values get symbolic forms.
func FormatBayesFactor(bf float64) string {
	switch {
	case math.IsNaN(bf):
		return "—"
	case math.IsInf(bf, 1):
		return "∞"
	case bf == 0:
		return "0"
	case bf >= 1:
		return fmt.Sprintf("%.2f", bf)
	default:
		return fmt.Sprintf("1/%.2f", 1/bf)
	}
}

// FormatPercent renders a posterior probability as a percentage.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// finitePtr returns a pointer to f when it is finite, nil otherwise.
// JSON encoding rejects IEEE infinities, so non-finite values travel as
// null alongside their formatted display strings.
func finitePtr(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}
