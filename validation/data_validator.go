// Package validation provides data validation functionality for the medical text analyzer.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/giygas/medtext-analyzer/annotator"
	"github.com/giygas/medtext-analyzer/interfaces"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

var (
	ErrTextTooLong     = errors.New("text exceeds the maximum length")
	ErrInvalidEncoding = errors.New("text is not valid UTF-8")
)

// DefaultMaxTextLength is used when the validator is built with a non-positive limit
const DefaultMaxTextLength = 512 * 1024

// aliases shorter than this hit ordinary words too easily
const minAliasLength = 4

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct {
	maxTextLength int
}

// NewDataValidator creates a new data validator accepting texts up to maxTextLength bytes
func NewDataValidator(maxTextLength int) interfaces.DataValidator {
	if maxTextLength <= 0 {
		maxTextLength = DefaultMaxTextLength
	}
	return &DataValidatorImpl{maxTextLength: maxTextLength}
}

// ValidateText checks text submitted for analysis.
// Blank text is reported with annotator.ErrEmptyInput.
func (v *DataValidatorImpl) ValidateText(text string) error {
	if err := annotator.CheckText(text); err != nil {
		return err
	}

	if len(text) > v.maxTextLength {
		return fmt.Errorf("%w: %d bytes, max %d", ErrTextTooLong, len(text), v.maxTextLength)
	}

	if !utf8.ValidString(text) {
		return ErrInvalidEncoding
	}

	return nil
}

// ValidateTables rejects tables the pipeline cannot work with
func (v *DataValidatorImpl) ValidateTables(tables entities.Tables) error {
	if len(tables.Drugs) == 0 {
		return fmt.Errorf("no drugs found")
	}

	for i, d := range tables.Drugs {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("empty name for drug at row %d", i+1)
		}
		for _, a := range d.Aliases {
			if strings.TrimSpace(a) == "" {
				return fmt.Errorf("empty alias for drug %s", d.Name)
			}
		}
	}

	for i, r := range tables.Interactions {
		if strings.TrimSpace(r.Description) == "" {
			return fmt.Errorf("empty description for interaction rule %d", i+1)
		}
		if !r.Severity.Valid() {
			return fmt.Errorf("invalid severity %q for interaction %q", r.Severity, r.Description)
		}
		for _, p := range r.Participants {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("empty participant in interaction %q", r.Description)
			}
		}
	}

	for i, r := range tables.SideEffects {
		if strings.TrimSpace(r.Effect) == "" {
			return fmt.Errorf("empty effect for side-effect rule %d", i+1)
		}
		if !r.Frequency.Valid() {
			return fmt.Errorf("invalid frequency %q for side effect %q", r.Frequency, r.Effect)
		}
	}

	return nil
}

// ReportDataQuality lists the issues of a table set that do not prevent its use
func (v *DataValidatorImpl) ReportDataQuality(tables entities.Tables) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		DuplicateDrugNames:      []string{},
		ShortAliases:            []string{},
		UnknownInteractionNames: []string{},
	}

	// Check 1: duplicate names, compared case-insensitively like the matcher does
	seen := make(map[string]bool)
	for _, d := range tables.Drugs {
		key := strings.ToLower(d.Name)
		if seen[key] {
			report.DuplicateDrugNames = append(report.DuplicateDrugNames, d.Name)
		}
		seen[key] = true
	}

	// Check 2: aliases
	for _, d := range tables.Drugs {
		if len(d.Aliases) == 0 {
			report.DrugsWithoutAliases++
		}
		for _, a := range d.Aliases {
			if utf8.RuneCountInString(strings.TrimSpace(a)) < minAliasLength {
				report.ShortAliases = append(report.ShortAliases, a)
			}
		}
	}

	// Check 3: interaction rules
	for _, r := range tables.Interactions {
		if len(r.Participants) < 2 {
			report.RulesWithFewParticipants++
		}
		if !r.Severity.Valid() {
			report.InvalidSeverities++
		}
		for _, p := range r.Participants {
			if !matchesAnyEntry(p, tables.Drugs) {
				report.UnknownInteractionNames = append(report.UnknownInteractionNames, p)
			}
		}
	}

	// Check 4: side-effect rules
	for _, r := range tables.SideEffects {
		if len(r.Drugs) == 0 {
			report.SideEffectsWithoutDrugs++
		}
		if !r.Frequency.Valid() {
			report.InvalidFrequencies++
		}
	}

	return report
}

func matchesAnyEntry(name string, drugs []entities.DrugEntry) bool {
	name = strings.ToLower(name)
	if name == "" {
		return false
	}
	for _, d := range drugs {
		drug := strings.ToLower(d.Name)
		if drug == "" {
			continue
		}
		if strings.Contains(drug, name) || strings.Contains(name, drug) {
			return true
		}
	}
	return false
}
