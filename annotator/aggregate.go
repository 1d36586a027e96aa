package annotator

import (
	"cmp"
	"slices"

	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// Summarize counts the findings of one analysis.
// Critical interactions are the high severity ones, major side effects the Common ones.
func Summarize(drugs []DetectedDrug, interactions []DetectedInteraction, sideEffects []DetectedSideEffect) Summary {
	summary := Summary{TotalDrugs: len(drugs)}
	for _, i := range interactions {
		if i.Severity == entities.SeverityHigh {
			summary.CriticalInteractions++
		}
	}
	for _, s := range sideEffects {
		if s.Frequency == entities.FrequencyCommon {
			summary.MajorSideEffects++
		}
	}
	return summary
}

// The sorts are stable so equal scores keep table order.

func sortDrugs(d []DetectedDrug) {
	slices.SortStableFunc(d, func(a, b DetectedDrug) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
}

func sortInteractions(i []DetectedInteraction) {
	slices.SortStableFunc(i, func(a, b DetectedInteraction) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
}

func sortSideEffects(s []DetectedSideEffect) {
	slices.SortStableFunc(s, func(a, b DetectedSideEffect) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
}

// NewResult sorts the three lists and attaches their summary.
// It is used by producers other than Analyze, such as the demo generator.
func NewResult(drugs []DetectedDrug, interactions []DetectedInteraction, sideEffects []DetectedSideEffect) AnalysisResult {
	result := emptyResult()
	if drugs != nil {
		result.Drugs = drugs
	}
	if interactions != nil {
		result.Interactions = interactions
	}
	if sideEffects != nil {
		result.SideEffects = sideEffects
	}
	sortDrugs(result.Drugs)
	sortInteractions(result.Interactions)
	sortSideEffects(result.SideEffects)
	result.Summary = Summarize(result.Drugs, result.Interactions, result.SideEffects)
	return result
}
