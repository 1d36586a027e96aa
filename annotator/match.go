package annotator

import "strings"

// Scoring constants. The thresholds are strict: a score equal to the
// threshold is dropped.
const (
	drugNameScore     = 0.9
	drugAliasScore    = 0.8
	drugContextScore  = 0.1
	drugThreshold     = 0.5
	interactionBase   = 0.8
	interactionStep   = 0.1
	effectWordScore   = 0.6
	effectDrugScore   = 0.3
	effectAdverseBump = 0.1
	effectThreshold   = 0.4
	maxConfidence     = 1.0
)

var (
	contextKeywords = []string{"mg", "dose", "tablet", "prescribed", "administered", "treatment"}
	adverseKeywords = []string{"side effect", "adverse", "reaction", "toxicity", "complication"}
)

func normalize(text string) string {
	return strings.ToLower(text)
}

// fuzzyMatch reports whether either name contains the other, ignoring case
func fuzzyMatch(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// matchesAnyDrug reports whether name fuzzy-matches one of the detected drugs
func matchesAnyDrug(name string, drugs []DetectedDrug) bool {
	for _, d := range drugs {
		if fuzzyMatch(name, d.Name) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v > maxConfidence {
		return maxConfidence
	}
	if v < 0 {
		return 0
	}
	return v
}
