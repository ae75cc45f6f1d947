package model

import (
	"fmt"
	"strings"
)

// Term is a single Gene Ontology term as read from OBO-XML.
type Term struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Parents []string `json:"is_a,omitempty" yaml:"is_a,omitempty"` // direct is_a targets, source order
}

// Clone creates a deep copy of the term
func (t Term) Clone() Term {
	clone := t
	if t.Parents != nil {
		clone.Parents = make([]string, len(t.Parents))
		copy(clone.Parents, t.Parents)
	}
	return clone
}

// Validate checks that the term carries the fields the catalog keys on
func (t *Term) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("term id cannot be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("term %s: name cannot be empty", t.ID)
	}
	return nil
}

// HasParent reports whether id appears among the term's is_a references.
func (t Term) HasParent(id string) bool {
	for _, p := range t.Parents {
		if p == id {
			return true
		}
	}
	return false
}

// String renders a human-readable details block for the term.
func (t Term) String() string {
	var sb strings.Builder
	sb.WriteString("GO term Details:")
	sb.WriteString("\nID: " + t.ID)
	sb.WriteString("\nName: " + t.Name)
	for _, p := range t.Parents {
		sb.WriteString("\nIs a: " + p)
	}
	return sb.String()
}

// Markdown renders the term as a small markdown document for the details pane.
func (t Term) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", t.Name)
	fmt.Fprintf(&sb, "`%s`\n\n", t.ID)
	if len(t.Parents) == 0 {
		sb.WriteString("_No is_a references (root term)._\n")
		return sb.String()
	}
	sb.WriteString("## Is a\n\n")
	for _, p := range t.Parents {
		fmt.Fprintf(&sb, "- `%s`\n", p)
	}
	return sb.String()
}
