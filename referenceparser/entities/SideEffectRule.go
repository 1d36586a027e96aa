package entities

import "strings"

// Frequency is how often a side effect is reported
type Frequency string

const (
	FrequencyRare     Frequency = "Rare"
	FrequencyUncommon Frequency = "Uncommon"
	FrequencyCommon   Frequency = "Common"
)

// ParseFrequency accepts any casing of Rare, Uncommon or Common
func ParseFrequency(s string) (Frequency, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rare":
		return FrequencyRare, true
	case "uncommon":
		return FrequencyUncommon, true
	case "common":
		return FrequencyCommon, true
	}
	return "", false
}

type SideEffectRule struct {
	Effect    string    `json:"effect"`
	Drugs     []string  `json:"drugs"`
	Frequency Frequency `json:"frequency"`
}

// Valid reports whether f is one of the three exact frequency labels
func (f Frequency) Valid() bool {
	return f == FrequencyRare || f == FrequencyUncommon || f == FrequencyCommon
}
