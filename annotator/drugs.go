package annotator

import (
	"strings"

	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// DetectDrugs scans text for every entry of the drug table.
//
// A canonical name hit is worth 0.9 and every alias hit 0.8. When the canonical
// name is present, each context keyword found in the text adds 0.1. Scores are
// capped at 1.0 and only entries scoring above 0.5 are kept. Matching is plain
// case-insensitive substring search, so "aspirin" also matches inside
// "aspirinate".
func DetectDrugs(text string, table []entities.DrugEntry) []DetectedDrug {
	normalized := normalize(text)
	detected := []DetectedDrug{}
	if normalized == "" {
		return detected
	}

	for _, entry := range table {
		var confidence float64

		name := strings.ToLower(entry.Name)
		nameFound := name != "" && strings.Contains(normalized, name)
		if nameFound {
			confidence += drugNameScore
		}

		for _, alias := range entry.Aliases {
			alias = strings.ToLower(alias)
			if alias != "" && strings.Contains(normalized, alias) {
				confidence += drugAliasScore
			}
		}

		if nameFound {
			for _, keyword := range contextKeywords {
				if strings.Contains(normalized, keyword) {
					confidence += drugContextScore
				}
			}
		}

		confidence = clamp(confidence)
		if confidence > drugThreshold {
			detected = append(detected, DetectedDrug{
				Name:       entry.Name,
				Category:   entry.Category,
				Confidence: confidence,
			})
		}
	}

	sortDrugs(detected)
	return detected
}
