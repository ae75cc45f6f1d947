package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/catalog"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/model"
)

func statsFor(terms ...model.Term) CatalogStats {
	store, _ := catalog.FromTerms(terms)
	return ComputeCatalogStats(store)
}

func TestCatalogStats_Basic(t *testing.T) {
	s := statsFor(
		model.Term{ID: "GO:1", Name: "alpha", Parents: []string{"GO:2", "GO:3", "GO:2"}},
		model.Term{ID: "GO:2", Name: "beta", Parents: []string{"GO:4"}},
		model.Term{ID: "GO:4", Name: "delta"},
	)

	if s.Terms != 3 {
		t.Errorf("Terms = %d, want 3", s.Terms)
	}
	if s.References != 4 {
		t.Errorf("References = %d, want 4", s.References)
	}
	if s.Edges != 2 {
		t.Errorf("Edges = %d, want 2 (GO:1->GO:2, GO:2->GO:4)", s.Edges)
	}
	if s.Dangling != 1 || len(s.DanglingIDs) != 1 || s.DanglingIDs[0] != "GO:3" {
		t.Errorf("Dangling = %d %v, want 1 [GO:3]", s.Dangling, s.DanglingIDs)
	}
	if len(s.Roots) != 1 || s.Roots[0] != "GO:4" {
		t.Errorf("Roots = %v, want [GO:4]", s.Roots)
	}
	if !s.Acyclic {
		t.Errorf("Expected acyclic graph, got cycles %v", s.Cycles)
	}
	if len(s.MostReferred) == 0 || s.MostReferred[0].ID != "GO:2" || s.MostReferred[0].Count != 2 {
		t.Errorf("MostReferred = %v, want GO:2 first with 2", s.MostReferred)
	}
}

func TestCatalogStats_Cycles(t *testing.T) {
	s := statsFor(
		model.Term{ID: "A", Name: "a", Parents: []string{"B"}},
		model.Term{ID: "B", Name: "b", Parents: []string{"C"}},
		model.Term{ID: "C", Name: "c", Parents: []string{"A"}},
		model.Term{ID: "D", Name: "d", Parents: []string{"D"}},
	)
	if s.Acyclic {
		t.Fatal("Expected cycles")
	}
	if len(s.Cycles) != 2 {
		t.Fatalf("Cycles = %v, want 2", s.Cycles)
	}
	if strings.Join(s.Cycles[0], ",") != "A,B,C" {
		t.Errorf("First cycle = %v, want [A B C]", s.Cycles[0])
	}
	if strings.Join(s.Cycles[1], ",") != "D" {
		t.Errorf("Second cycle = %v, want [D]", s.Cycles[1])
	}
}

func TestCatalogStats_Empty(t *testing.T) {
	s := statsFor()
	if s.Terms != 0 || !s.Acyclic || len(s.MostReferred) != 0 {
		t.Errorf("Unexpected stats for empty catalog: %+v", s)
	}
}

func TestCatalogStats_WriteText(t *testing.T) {
	s := statsFor(
		model.Term{ID: "A", Name: "a", Parents: []string{"B"}},
		model.Term{ID: "B", Name: "b", Parents: []string{"A"}},
	)
	var buf bytes.Buffer
	if err := s.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Terms:       2", "1 cycle(s)", "A <-> B"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogStats_TopReferred(t *testing.T) {
	s := statsFor(
		model.Term{ID: "GO:1", Name: "a", Parents: []string{"GO:3", "GO:2"}},
		model.Term{ID: "GO:2", Name: "b", Parents: []string{"GO:3"}},
		model.Term{ID: "GO:3", Name: "c"},
	)
	top := s.TopReferred(1)
	if len(top) != 1 || top[0].ID != "GO:3" || top[0].Count != 2 {
		t.Errorf("TopReferred(1) = %v, want [GO:3 2]", top)
	}
	if got := s.TopReferred(10); len(got) != 2 {
		t.Errorf("TopReferred(10) = %v, want 2 entries", got)
	}
	if s.TopReferred(0) != nil {
		t.Errorf("TopReferred(0) should be nil")
	}
}
