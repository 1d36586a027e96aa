// Package annotator holds the rule-based annotation pipeline: drug detection,
// interaction matching, side-effect matching and result aggregation.
// Every function here is pure. Reference tables are passed in by the caller
// and are only read.
package annotator

import (
	"errors"

	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// ErrEmptyInput is returned by CheckText for blank or whitespace-only text
var ErrEmptyInput = errors.New("empty input: text is blank")

// DetectedDrug is a drug found in the text
type DetectedDrug struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// DetectedInteraction is an interaction rule that fired for the detected drugs
type DetectedInteraction struct {
	Description  string            `json:"description"`
	Severity     entities.Severity `json:"severity"`
	Participants []string          `json:"participants"`
	Confidence   float64           `json:"confidence"`
}

type DetectedSideEffect struct {
	Effect     string             `json:"effect"`
	Frequency  entities.Frequency `json:"frequency"`
	Confidence float64            `json:"confidence"`
}

// Summary holds the headline counts of an analysis
type Summary struct {
	TotalDrugs           int `json:"totalDrugs"`
	CriticalInteractions int `json:"criticalInteractions"`
	MajorSideEffects     int `json:"majorSideEffects"`
}

// AnalysisResult is built fresh by every Analyze call and belongs to the caller.
// Each list is ordered by descending confidence.
type AnalysisResult struct {
	Drugs        []DetectedDrug        `json:"drugs"`
	Interactions []DetectedInteraction `json:"interactions"`
	SideEffects  []DetectedSideEffect  `json:"sideEffects"`
	Summary      Summary               `json:"summary"`
}

// emptyResult uses non-nil slices so JSON renders [] instead of null
func emptyResult() AnalysisResult {
	return AnalysisResult{
		Drugs:        []DetectedDrug{},
		Interactions: []DetectedInteraction{},
		SideEffects:  []DetectedSideEffect{},
	}
}
