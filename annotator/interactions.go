package annotator

import "github.com/giygas/medtext-analyzer/referenceparser/entities"

// MatchInteractions fires every rule with at least two participants matching
// the detected drugs. Two matches give 0.8 and each extra match adds 0.1,
// capped at 1.0.
func MatchInteractions(drugs []DetectedDrug, rules []entities.InteractionRule) []DetectedInteraction {
	found := []DetectedInteraction{}
	if len(drugs) < 2 {
		return found
	}

	for _, rule := range rules {
		matched := 0
		for _, participant := range rule.Participants {
			if participant != "" && matchesAnyDrug(participant, drugs) {
				matched++
			}
		}
		if matched < 2 {
			continue
		}

		found = append(found, DetectedInteraction{
			Description:  rule.Description,
			Severity:     rule.Severity,
			Participants: append([]string(nil), rule.Participants...),
			Confidence:   clamp(interactionBase + interactionStep*float64(matched-2)),
		})
	}

	sortInteractions(found)
	return found
}
