package entities

// DrugEntry is one row of the drug reference table.
type DrugEntry struct {
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases"`
	Category string   `json:"category"`
}
