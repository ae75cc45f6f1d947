package analysis

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/model"
)

// ============================================================================
// Catalog Statistics
// Read-only summary of the direct is_a graph. Nothing here expands ancestors
// transitively; cycles are detected, not followed.
// ============================================================================

// TermSource enumerates terms in a stable order
type TermSource interface {
	Each(fn func(model.Term) bool)
}

// CatalogStats summarizes a term catalog
type CatalogStats struct {
	Terms        int             `json:"terms"`                   // Distinct term ids
	References   int             `json:"references"`              // is_a entries, duplicates counted
	Edges        int             `json:"edges"`                   // Distinct is_a edges between known terms
	Dangling     int             `json:"dangling"`                // is_a entries pointing outside the catalog
	DanglingIDs  []string        `json:"dangling_ids,omitempty"`  // Distinct unknown targets, first-seen order
	Roots        []string        `json:"roots,omitempty"`         // Terms without is_a references
	Acyclic      bool            `json:"acyclic"`                 // No cycles among known terms
	Cycles       [][]string      `json:"cycles,omitempty"`        // Each cycle's member ids, sorted
	MostReferred []ReferredCount `json:"most_referred,omitempty"` // Top is_a targets by incoming count

	referred []ReferredCount // every known target, most referenced first
}

// ReferredCount pairs a term id with how many is_a entries point at it
type ReferredCount struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// DefaultTopReferred is how many entries MostReferred keeps.
const DefaultTopReferred = 10

// ComputeCatalogStats builds the direct is_a graph of src with gonum and
// summarizes it.
func ComputeCatalogStats(src TermSource) CatalogStats {
	var stats CatalogStats

	ids := make(map[string]int64)
	var order []model.Term
	src.Each(func(t model.Term) bool {
		if _, ok := ids[t.ID]; !ok {
			ids[t.ID] = int64(len(order))
			order = append(order, t)
		}
		return true
	})
	stats.Terms = len(order)

	g := simple.NewDirectedGraph()
	for _, id := range ids {
		g.AddNode(simple.Node(id))
	}

	names := make([]string, len(order))
	incoming := make(map[string]int)
	danglingSeen := make(map[string]bool)
	selfLoops := make(map[string]bool)

	for i, t := range order {
		names[i] = t.ID
		if len(t.Parents) == 0 {
			stats.Roots = append(stats.Roots, t.ID)
		}
		for _, pid := range t.Parents {
			stats.References++
			incoming[pid]++
			to, ok := ids[pid]
			if !ok {
				stats.Dangling++
				if !danglingSeen[pid] {
					danglingSeen[pid] = true
					stats.DanglingIDs = append(stats.DanglingIDs, pid)
				}
				continue
			}
			from := ids[t.ID]
			if from == to {
				// simple graphs reject self edges
				selfLoops[t.ID] = true
				continue
			}
			if !g.HasEdgeFromTo(from, to) {
				g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
				stats.Edges++
			}
		}
	}

	for _, comp := range topo.TarjanSCC(g) {
		if len(comp) < 2 {
			continue
		}
		stats.Cycles = append(stats.Cycles, componentIDs(comp, names))
	}
	for id := range selfLoops {
		stats.Cycles = append(stats.Cycles, []string{id})
	}
	sort.Slice(stats.Cycles, func(i, j int) bool {
		return stats.Cycles[i][0] < stats.Cycles[j][0]
	})
	stats.Acyclic = len(stats.Cycles) == 0

	stats.referred = topReferred(incoming, ids)
	stats.MostReferred = stats.TopReferred(DefaultTopReferred)
	return stats
}

// TopReferred returns the n most referenced known terms.
func (s CatalogStats) TopReferred(n int) []ReferredCount {
	if n <= 0 {
		return nil
	}
	if n > len(s.referred) {
		n = len(s.referred)
	}
	out := make([]ReferredCount, n)
	copy(out, s.referred[:n])
	return out
}

func componentIDs(comp []graph.Node, names []string) []string {
	out := make([]string, 0, len(comp))
	for _, n := range comp {
		out = append(out, names[n.ID()])
	}
	sort.Strings(out)
	return out
}

// topReferred returns known terms ordered by incoming count (descending),
// then by id for stable output.
func topReferred(incoming map[string]int, known map[string]int64) []ReferredCount {
	counts := make([]ReferredCount, 0, len(incoming))
	for id, c := range incoming {
		if _, ok := known[id]; ok {
			counts = append(counts, ReferredCount{ID: id, Count: c})
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].ID < counts[j].ID
	})
	return counts
}

// WriteText prints the stats as a short human-readable report.
func (s CatalogStats) WriteText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Terms:       %d\n", s.Terms)
	fmt.Fprintf(&sb, "References:  %d (%d distinct edges)\n", s.References, s.Edges)
	fmt.Fprintf(&sb, "Dangling:    %d (%d distinct ids)\n", s.Dangling, len(s.DanglingIDs))
	fmt.Fprintf(&sb, "Root terms:  %d\n", len(s.Roots))
	if s.Acyclic {
		sb.WriteString("is_a graph:  acyclic\n")
	} else {
		fmt.Fprintf(&sb, "is_a graph:  %d cycle(s)\n", len(s.Cycles))
		for _, c := range s.Cycles {
			fmt.Fprintf(&sb, "  - %s\n", strings.Join(c, " <-> "))
		}
	}
	if len(s.MostReferred) > 0 {
		sb.WriteString("Most referenced:\n")
		for _, rc := range s.MostReferred {
			fmt.Fprintf(&sb, "  %-12s %d\n", rc.ID, rc.Count)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
