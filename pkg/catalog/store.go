// Package catalog holds the in-memory Gene Ontology term store.
//
// A Store is filled once during the load step and is read-only afterwards,
// so it carries no locking.
package catalog

import (
	"fmt"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/model"
)

// Store maps GO identifiers to terms and remembers insertion order.
type Store struct {
	terms    []model.Term
	index    map[string]int // id -> position in terms
	warnings []model.Warning
}

// NewStore creates an empty store with room for n terms.
func NewStore(n int) *Store {
	return &Store{
		terms: make([]model.Term, 0, n),
		index: make(map[string]int, n),
	}
}

// FromTerms builds a store from ingested records in document order and
// returns the duplicate-id warnings raised along the way.
func FromTerms(terms []model.Term) (*Store, []model.Warning) {
	s := NewStore(len(terms))
	for _, t := range terms {
		s.Put(t)
	}
	return s, s.Warnings()
}

// Put inserts a term. When the id is already present the later entry wins,
// keeps the original slot, and a duplicate-id warning is recorded.
func (s *Store) Put(term model.Term) (replaced bool) {
	term = term.Clone()
	if pos, ok := s.index[term.ID]; ok {
		prev := s.terms[pos]
		s.terms[pos] = term
		s.warnings = append(s.warnings, model.Warning{
			Kind:    model.WarnDuplicateID,
			TermID:  term.ID,
			Message: fmt.Sprintf("name %q replaced by %q", prev.Name, term.Name),
		})
		return true
	}
	s.index[term.ID] = len(s.terms)
	s.terms = append(s.terms, term)
	return false
}

// Get returns the term with the given id.
func (s *Store) Get(id string) (model.Term, bool) {
	pos, ok := s.index[id]
	if !ok {
		return model.Term{}, false
	}
	return s.terms[pos].Clone(), true
}

// Contains reports whether id is a known term.
func (s *Store) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// All returns every term in insertion order. The slice is a copy.
func (s *Store) All() []model.Term {
	out := make([]model.Term, len(s.terms))
	for i, t := range s.terms {
		out[i] = t.Clone()
	}
	return out
}

// Each calls fn for every term in insertion order until fn returns false.
// The term passed to fn must not be modified.
func (s *Store) Each(fn func(model.Term) bool) {
	for _, t := range s.terms {
		if !fn(t) {
			return
		}
	}
}

// Len returns the number of distinct ids.
func (s *Store) Len() int {
	return len(s.terms)
}

// Warnings returns the duplicate-id warnings recorded by Put.
func (s *Store) Warnings() []model.Warning {
	out := make([]model.Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// Dangling returns parent ids referenced by some term but not defined in
// the store, in first-seen order. GO dumps legitimately reference terms
// from other namespaces, so these are informational.
func (s *Store) Dangling() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range s.terms {
		for _, p := range t.Parents {
			if seen[p] {
				continue
			}
			seen[p] = true
			if !s.Contains(p) {
				out = append(out, p)
			}
		}
	}
	return out
}
