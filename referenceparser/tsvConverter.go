package referenceparser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/giygas/medtext-analyzer/logging"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// skipStats counts the lines a TSV parse ignored
type skipStats struct {
	empty          int
	missingColumns int
	formatErrors   int
}

func (s skipStats) log(table string, lines int) {
	if s.empty > 0 || s.missingColumns > 0 || s.formatErrors > 0 {
		logging.Warn(fmt.Sprintf("Skipped lines while parsing %s", table),
			"total_lines", lines,
			"empty_or_comment", s.empty,
			"missing_columns", s.missingColumns,
			"format_errors", s.formatErrors,
		)
	}
}

// scanFields calls fn with the tab separated fields of every non-empty,
// non-comment line that has at least minColumns fields.
func scanFields(r io.Reader, table string, minColumns int, fn func(fields []string) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1*1024*1024)

	var stats skipStats
	lineCount := 0

	for scanner.Scan() {
		lineCount++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			stats.empty++
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minColumns {
			stats.missingColumns++
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		if !fn(fields) {
			stats.formatErrors++
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error in %s: %w", table, err)
	}

	stats.log(table, lineCount)
	return nil
}

// splitList splits a comma separated cell, dropping blanks
func splitList(cell string) []string {
	list := []string{}
	for _, item := range strings.Split(cell, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// parseDrugs reads name, category and an optional alias list per line
func parseDrugs(r io.Reader) ([]entities.DrugEntry, error) {
	var drugs []entities.DrugEntry

	err := scanFields(r, "drugs", 2, func(f []string) bool {
		if f[0] == "" {
			return false
		}
		entry := entities.DrugEntry{Name: f[0], Category: f[1], Aliases: []string{}}
		if len(f) > 2 {
			entry.Aliases = splitList(f[2])
		}
		drugs = append(drugs, entry)
		return true
	})

	return drugs, err
}

// parseInteractions reads participants, severity and description per line
func parseInteractions(r io.Reader) ([]entities.InteractionRule, error) {
	var rules []entities.InteractionRule

	err := scanFields(r, "interactions", 3, func(f []string) bool {
		severity, ok := entities.ParseSeverity(f[1])
		participants := splitList(f[0])
		if !ok || len(participants) < 2 || f[2] == "" {
			return false
		}
		rules = append(rules, entities.InteractionRule{
			Participants: participants,
			Description:  f[2],
			Severity:     severity,
		})
		return true
	})

	return rules, err
}

// parseSideEffects reads effect, frequency and associated names per line
func parseSideEffects(r io.Reader) ([]entities.SideEffectRule, error) {
	var rules []entities.SideEffectRule

	err := scanFields(r, "side effects", 3, func(f []string) bool {
		frequency, ok := entities.ParseFrequency(f[1])
		if !ok || f[0] == "" {
			return false
		}
		rules = append(rules, entities.SideEffectRule{
			Effect:    f[0],
			Drugs:     splitList(f[2]),
			Frequency: frequency,
		})
		return true
	})

	return rules, err
}
