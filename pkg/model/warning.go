package model

import "fmt"

// WarningKind categorizes a non-fatal anomaly found while building the catalog
type WarningKind string

const (
	// WarnSchema marks a <term> skipped for missing id or name, or an empty reference.
	WarnSchema WarningKind = "schema"
	// WarnDuplicateID marks a term whose id was already present; the later entry wins.
	WarnDuplicateID WarningKind = "duplicate_id"
)

// Warning is a non-fatal ingestion anomaly. Warnings are collected during the
// load step and reported together once it finishes.
type Warning struct {
	Kind    WarningKind
	TermID  string // empty when the id itself was missing
	Line    int    // 1-based source line of the <term> element, 0 if unknown
	Message string
}

func (w Warning) String() string {
	loc := ""
	if w.Line > 0 {
		loc = fmt.Sprintf("line %d: ", w.Line)
	}
	if w.TermID != "" {
		return fmt.Sprintf("%s: %s%s: %s", w.Kind, loc, w.TermID, w.Message)
	}
	return fmt.Sprintf("%s: %s%s", w.Kind, loc, w.Message)
}

// CountByKind tallies warnings per kind.
func CountByKind(warnings []Warning) map[WarningKind]int {
	counts := make(map[WarningKind]int)
	for _, w := range warnings {
		counts[w.Kind]++
	}
	return counts
}
