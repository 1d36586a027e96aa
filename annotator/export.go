package annotator

import (
	"fmt"
	"strings"
)

// Export renders a result as the plain-text report offered for download
func Export(result AnalysisResult) string {
	var b strings.Builder

	b.WriteString("SUMMARY:\n")
	fmt.Fprintf(&b, "Total Drugs: %d\n", result.Summary.TotalDrugs)
	fmt.Fprintf(&b, "Critical Interactions: %d\n", result.Summary.CriticalInteractions)
	fmt.Fprintf(&b, "Major Side Effects: %d\n", result.Summary.MajorSideEffects)

	b.WriteString("\nDRUGS IDENTIFIED:\n")
	if len(result.Drugs) == 0 {
		b.WriteString("None\n")
	}
	for _, d := range result.Drugs {
		fmt.Fprintf(&b, "%s (%.1f%% confidence)\n", d.Name, d.Confidence*100)
	}

	b.WriteString("\nDRUG INTERACTIONS:\n")
	if len(result.Interactions) == 0 {
		b.WriteString("None\n")
	}
	for _, i := range result.Interactions {
		fmt.Fprintf(&b, "%s (%s severity)\n", i.Description, strings.ToUpper(string(i.Severity)))
	}

	b.WriteString("\nSIDE EFFECTS:\n")
	if len(result.SideEffects) == 0 {
		b.WriteString("None\n")
	}
	for _, s := range result.SideEffects {
		fmt.Fprintf(&b, "%s (%s)\n", s.Effect, s.Frequency)
	}

	return b.String()
}
