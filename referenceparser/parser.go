package referenceparser

import (
	"fmt"
	"time"

	"github.com/giygas/medtext-analyzer/interfaces"
	"github.com/giygas/medtext-analyzer/logging"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// Compile-time check to ensure ReferenceParser implements Parser interface
var _ interfaces.Parser = (*ReferenceParser)(nil)

const (
	DrugsFile        = "drugs.tsv"
	InteractionsFile = "interactions.tsv"
	SideEffectsFile  = "side_effects.tsv"
)

// ReferenceParser loads tables from a directory of TSV files.
// A missing file, or an empty directory setting, falls back to the
// compiled-in table of the same kind.
type ReferenceParser struct {
	dir string
}

// NewReferenceParser creates a parser reading from dir
func NewReferenceParser(dir string) *ReferenceParser {
	return &ReferenceParser{dir: dir}
}

// ParseTables implements the Parser interface
func (p *ReferenceParser) ParseTables() (entities.Tables, error) {
	tables := DefaultTables()
	if p.dir == "" {
		logging.Debug("No reference directory configured, using compiled-in tables")
		return tables, nil
	}

	start := time.Now()

	if r, ok, err := openTableFile(p.dir, DrugsFile); err != nil {
		return entities.Tables{}, err
	} else if ok {
		drugs, err := parseDrugs(r)
		if err != nil {
			return entities.Tables{}, fmt.Errorf("failed to parse %s: %w", DrugsFile, err)
		}
		tables.Drugs = drugs
	}

	if r, ok, err := openTableFile(p.dir, InteractionsFile); err != nil {
		return entities.Tables{}, err
	} else if ok {
		rules, err := parseInteractions(r)
		if err != nil {
			return entities.Tables{}, fmt.Errorf("failed to parse %s: %w", InteractionsFile, err)
		}
		tables.Interactions = rules
	}

	if r, ok, err := openTableFile(p.dir, SideEffectsFile); err != nil {
		return entities.Tables{}, err
	} else if ok {
		rules, err := parseSideEffects(r)
		if err != nil {
			return entities.Tables{}, fmt.Errorf("failed to parse %s: %w", SideEffectsFile, err)
		}
		tables.SideEffects = rules
	}

	logging.Info("Reference tables parsed",
		"dir", p.dir,
		"drugs", len(tables.Drugs),
		"interactions", len(tables.Interactions),
		"side_effects", len(tables.SideEffects),
		"duration", time.Since(start).String(),
	)

	return tables, nil
}
