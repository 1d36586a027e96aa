package annotator

import (
	"math"
	"testing"

	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func assertConfidence(t *testing.T, label string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want) {
		t.Errorf("%s: expected confidence %.4f, got %.4f", label, want, got)
	}
}

func testDrugTable() []entities.DrugEntry {
	return []entities.DrugEntry{
		{Name: "Aspirin", Aliases: []string{"acetylsalicylic acid", "ecotrin"}, Category: "NSAIDs"},
		{Name: "Warfarin", Aliases: []string{"coumadin"}, Category: "Anticoagulants"},
		{Name: "Ibuprofen", Aliases: []string{"advil", "motrin"}, Category: "NSAIDs"},
		{Name: "Atorvastatin", Aliases: []string{"lipitor"}, Category: "Statins"},
	}
}

func detected(names ...string) []DetectedDrug {
	out := make([]DetectedDrug, len(names))
	for i, n := range names {
		out[i] = DetectedDrug{Name: n, Confidence: 0.9}
	}
	return out
}
