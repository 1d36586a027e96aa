package annotator

import (
	"strings"
	"sync"

	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// CheckText rejects text the pipeline would have nothing to say about
func CheckText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	return nil
}

// Analyze runs the three stages over text and aggregates their output.
// Blank text yields an empty result with zero counts. The call is
// deterministic: the same text and tables always give an equal result.
func Analyze(text string, tables entities.Tables) AnalysisResult {
	if CheckText(text) != nil {
		return emptyResult()
	}

	normalized := normalize(text)

	drugs := DetectDrugs(normalized, tables.Drugs)
	interactions := MatchInteractions(drugs, tables.Interactions)
	sideEffects := MatchSideEffects(normalized, drugs, tables.SideEffects)

	return AnalysisResult{
		Drugs:        drugs,
		Interactions: interactions,
		SideEffects:  sideEffects,
		Summary:      Summarize(drugs, interactions, sideEffects),
	}
}

// AnalyzeAll analyzes independent texts on up to workers goroutines.
// Results are returned in input order.
func AnalyzeAll(texts []string, tables entities.Tables, workers int) []AnalysisResult {
	results := make([]AnalysisResult, len(texts))
	if len(texts) == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(texts) {
		workers = len(texts)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = Analyze(texts[i], tables)
			}
		}()
	}

	for i := range texts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
