package entities

// Tables groups the three reference tables used by one analysis run.
// A Tables value is never modified once built; reloads build a new one.
type Tables struct {
	Drugs        []DrugEntry       `json:"drugs"`
	Interactions []InteractionRule `json:"interactions"`
	SideEffects  []SideEffectRule  `json:"side_effects"`
}

// IsEmpty reports whether no table holds any row
func (t Tables) IsEmpty() bool {
	return len(t.Drugs) == 0 && len(t.Interactions) == 0 && len(t.SideEffects) == 0
}
