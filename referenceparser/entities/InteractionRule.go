package entities

import "strings"

// Severity is the risk level of a drug interaction
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity accepts any casing of low, medium or high
func ParseSeverity(s string) (Severity, bool) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return sev, true
	}
	return "", false
}

// InteractionRule fires when at least two of its participants are found in the text.
// Participants may be drug names or fragments shared by a family of drugs ("statin").
type InteractionRule struct {
	Participants []string `json:"participants"`
	Description  string   `json:"description"`
	Severity     Severity `json:"severity"`
}

// Valid reports whether s is one of the three exact severity values
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}
