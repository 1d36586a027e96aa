package synthetic

import (
	"reflect"
	"testing"

	"github.com/giygas/medtext-analyzer/referenceparser"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

func TestGenerateIsLabelled(t *testing.T) {
	demo := Generate(referenceparser.DefaultTables(), 42)

	if !demo.Synthetic {
		t.Error("Expected demo to be labelled synthetic")
	}
	if demo.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", demo.Seed)
	}
}

func TestGenerateSameSeedSameDemo(t *testing.T) {
	tables := referenceparser.DefaultTables()

	a := Generate(tables, 7)
	b := Generate(tables, 7)

	if !reflect.DeepEqual(a, b) {
		t.Error("Expected equal demos for equal seeds")
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	tables := referenceparser.DefaultTables()
	first := Generate(tables, 1)

	for seed := uint64(2); seed < 20; seed++ {
		if !reflect.DeepEqual(first.Result, Generate(tables, seed).Result) {
			return
		}
	}
	t.Error("Expected different seeds to produce different demos")
}

func TestGenerateResultShape(t *testing.T) {
	tables := referenceparser.DefaultTables()
	known := make(map[string]bool)
	for _, d := range tables.Drugs {
		known[d.Name] = true
	}

	for seed := uint64(0); seed < 50; seed++ {
		result := Generate(tables, seed).Result

		for i, d := range result.Drugs {
			if !known[d.Name] {
				t.Fatalf("seed %d: unknown drug %q", seed, d.Name)
			}
			if d.Confidence < 0.6 || d.Confidence > 1 {
				t.Fatalf("seed %d: drug confidence %v out of range", seed, d.Confidence)
			}
			if i > 0 && result.Drugs[i-1].Confidence < d.Confidence {
				t.Fatalf("seed %d: drugs not sorted", seed)
			}
		}
		for i, it := range result.Interactions {
			if it.Confidence < 0.7 || it.Confidence > 1 {
				t.Fatalf("seed %d: interaction confidence %v out of range", seed, it.Confidence)
			}
			if i > 0 && result.Interactions[i-1].Confidence < it.Confidence {
				t.Fatalf("seed %d: interactions not sorted", seed)
			}
		}
		for i, s := range result.SideEffects {
			if s.Confidence < 0.5 || s.Confidence > 1 {
				t.Fatalf("seed %d: side effect confidence %v out of range", seed, s.Confidence)
			}
			if i > 0 && result.SideEffects[i-1].Confidence < s.Confidence {
				t.Fatalf("seed %d: side effects not sorted", seed)
			}
		}

		if result.Summary.TotalDrugs != len(result.Drugs) {
			t.Fatalf("seed %d: summary counts %d drugs, list has %d", seed, result.Summary.TotalDrugs, len(result.Drugs))
		}
	}
}

func TestGenerateDoesNotShareTableSlices(t *testing.T) {
	tables := referenceparser.DefaultTables()

	for seed := uint64(0); seed < 50; seed++ {
		result := Generate(tables, seed).Result
		if len(result.Interactions) == 0 {
			continue
		}
		result.Interactions[0].Participants[0] = "mutated"
		for _, r := range tables.Interactions {
			for _, p := range r.Participants {
				if p == "mutated" {
					t.Fatal("Demo result shares participant slices with the tables")
				}
			}
		}
		return
	}
}

func TestGenerateEmptyTables(t *testing.T) {
	empty := Generate(entities.Tables{}, 3)
	if len(empty.Result.Drugs) != 0 || len(empty.Result.Interactions) != 0 || len(empty.Result.SideEffects) != 0 {
		t.Error("Expected empty demo from empty tables")
	}
	if empty.Result.Drugs == nil {
		t.Error("Expected non-nil drug list")
	}
}
