package ui

import (
	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/tree"
)

// nameSearch is a fuzzy index over the name nodes, including those of
// collapsed or off-screen rows.
type nameSearch struct {
	labels []string
	nodes  []*tree.Node

	query   string
	matches []*tree.Node
	index   int
}

func newNameSearch(tm *tree.Model) *nameSearch {
	names := tm.Names()
	s := &nameSearch{
		labels: make([]string, len(names)),
		nodes:  names,
	}
	for i, n := range names {
		s.labels[i] = n.Label()
	}
	return s
}

// Run replaces the match list with the best-scoring names for query and
// returns the first match. An empty query clears the matches.
func (s *nameSearch) Run(query string) *tree.Node {
	s.query = query
	s.matches = nil
	s.index = 0
	if query == "" {
		return nil
	}
	for _, m := range fuzzy.Find(query, s.labels) {
		s.matches = append(s.matches, s.nodes[m.Index])
	}
	return s.Current()
}

// Current returns the match the cursor is on.
func (s *nameSearch) Current() *tree.Node {
	if len(s.matches) == 0 {
		return nil
	}
	return s.matches[s.index]
}

// Next cycles forward through the matches.
func (s *nameSearch) Next() *tree.Node {
	if len(s.matches) == 0 {
		return nil
	}
	s.index = (s.index + 1) % len(s.matches)
	return s.matches[s.index]
}

// Prev cycles backward through the matches.
func (s *nameSearch) Prev() *tree.Node {
	if len(s.matches) == 0 {
		return nil
	}
	s.index--
	if s.index < 0 {
		s.index = len(s.matches) - 1
	}
	return s.matches[s.index]
}

// Clear drops the query and matches.
func (s *nameSearch) Clear() {
	s.query = ""
	s.matches = nil
	s.index = 0
}

func (s *nameSearch) Query() string { return s.query }

func (s *nameSearch) Matches() []*tree.Node { return s.matches }

// Position returns the 1-based index of the current match.
func (s *nameSearch) Position() int {
	if len(s.matches) == 0 {
		return 0
	}
	return s.index + 1
}
