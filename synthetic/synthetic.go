// Package synthetic produces randomised demo results. Nothing here reads
// user text: findings are sampled from the reference tables, so the output is
// always labelled synthetic and must never be mistaken for an analysis.
package synthetic

import (
	"math/rand/v2"

	"github.com/giygas/medtext-analyzer/annotator"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// Sampling thresholds: an entry is kept when its draw exceeds the threshold
const (
	drugThreshold        = 0.7
	interactionThreshold = 0.8
	sideEffectThreshold  = 0.7
)

// Demo is a sampled result with its provenance
type Demo struct {
	Synthetic bool                     `json:"synthetic"`
	Seed      uint64                   `json:"seed"`
	Result    annotator.AnalysisResult `json:"result"`
}

// Generate samples a demo result from tables. The same seed and tables
// give the same demo.
func Generate(tables entities.Tables, seed uint64) Demo {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var drugs []annotator.DetectedDrug
	for _, d := range tables.Drugs {
		if rng.Float64() > drugThreshold {
			drugs = append(drugs, annotator.DetectedDrug{
				Name:       d.Name,
				Category:   d.Category,
				Confidence: between(rng, 0.6, 1.0),
			})
		}
	}

	var interactions []annotator.DetectedInteraction
	for _, r := range tables.Interactions {
		if rng.Float64() > interactionThreshold {
			interactions = append(interactions, annotator.DetectedInteraction{
				Description:  r.Description,
				Severity:     r.Severity,
				Participants: append([]string(nil), r.Participants...),
				Confidence:   between(rng, 0.7, 1.0),
			})
		}
	}

	var sideEffects []annotator.DetectedSideEffect
	for _, r := range tables.SideEffects {
		if rng.Float64() > sideEffectThreshold {
			sideEffects = append(sideEffects, annotator.DetectedSideEffect{
				Effect:     r.Effect,
				Frequency:  r.Frequency,
				Confidence: between(rng, 0.5, 1.0),
			})
		}
	}

	return Demo{
		Synthetic: true,
		Seed:      seed,
		Result:    annotator.NewResult(drugs, interactions, sideEffects),
	}
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
