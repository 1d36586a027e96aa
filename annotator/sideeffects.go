package annotator

import (
	"strings"

	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// MatchSideEffects scores every side-effect rule against the text and the
// detected drugs.
//
// One word of the effect appearing anywhere in the text is worth 0.6, one of
// the rule's drugs being detected 0.3, and any adverse-event keyword in the
// text a flat 0.1. Rules scoring above 0.4 are kept.
func MatchSideEffects(text string, drugs []DetectedDrug, rules []entities.SideEffectRule) []DetectedSideEffect {
	normalized := normalize(text)
	found := []DetectedSideEffect{}
	if normalized == "" {
		return found
	}

	adverse := containsAny(normalized, adverseKeywords)

	for _, rule := range rules {
		var confidence float64

		if containsAny(normalized, strings.Fields(strings.ToLower(rule.Effect))) {
			confidence += effectWordScore
		}

		for _, name := range rule.Drugs {
			if name != "" && matchesAnyDrug(name, drugs) {
				confidence += effectDrugScore
				break
			}
		}

		if adverse {
			confidence += effectAdverseBump
		}

		confidence = clamp(confidence)
		if confidence > effectThreshold {
			found = append(found, DetectedSideEffect{
				Effect:     rule.Effect,
				Frequency:  rule.Frequency,
				Confidence: confidence,
			})
		}
	}

	sortSideEffects(found)
	return found
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}
