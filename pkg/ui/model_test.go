package ui

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/navigate"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/tree"
)

// keyMsg creates a tea.KeyMsg for testing
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func enterMsg() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func escMsg() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEsc} }

func newTestModel(t *testing.T, opts Options) (Model, *tree.Model) {
	t.Helper()
	store, tm := fixture(t)
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.NewRenderer(io.Discard)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = func(string) error { return nil }
	}
	return NewModel(store, tm, opts), tm
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func selectedLabel(m Model) string {
	if n := m.TreeView().Selected(); n != nil {
		return n.Label()
	}
	return ""
}

func TestActivateLeafFocusesReferencedTerm(t *testing.T) {
	m, tm := newTestModel(t, Options{})

	// j to alpha, enter expands it, j onto the GO:2 leaf.
	m = press(t, m, keyMsg("j"), enterMsg(), keyMsg("j"))
	if selectedLabel(m) != "GO:2" {
		t.Fatalf("expected cursor on GO:2 leaf, got %q", selectedLabel(m))
	}

	m = press(t, m, enterMsg())
	if got := m.TreeView().Selected(); got != tm.FindByID("GO:2") {
		t.Fatalf("expected beta focused, got %q", selectedLabel(m))
	}
	if !strings.Contains(m.Status(), "beta") {
		t.Errorf("expected status to mention beta, got %q", m.Status())
	}
	if m.HistoryLen() != 1 {
		t.Errorf("expected one history entry, got %d", m.HistoryLen())
	}

	// b returns to the originating leaf.
	m = press(t, m, keyMsg("b"))
	if selectedLabel(m) != "GO:2" || m.TreeView().Selected().Kind() != tree.KindReference {
		t.Errorf("expected back on GO:2 leaf, got %q", selectedLabel(m))
	}
	m = press(t, m, keyMsg("b"))
	if m.Status() != "history is empty" {
		t.Errorf("unexpected status %q", m.Status())
	}
}

func TestBrowsingDoesNotFocusWithoutFollow(t *testing.T) {
	m, tm := newTestModel(t, Options{})
	m = press(t, m, keyMsg("j"), keyMsg("l"), keyMsg("l"))
	if selectedLabel(m) != "GO:2" {
		t.Fatalf("expected GO:2 leaf, got %q", selectedLabel(m))
	}
	if tm.Focused() != nil {
		t.Errorf("cursor moves should not focus without follow mode")
	}
}

func TestFollowCursorFocusesOnMove(t *testing.T) {
	m, tm := newTestModel(t, Options{FollowCursor: true})

	// l on root steps to alpha, l expands, l steps onto GO:2 which jumps to beta.
	m = press(t, m, keyMsg("l"), keyMsg("l"), keyMsg("l"))
	if tm.Focused() != tm.FindByID("GO:2") {
		t.Fatalf("expected beta focused by cursor move")
	}
	if selectedLabel(m) != "beta" {
		t.Errorf("expected cursor on beta, got %q", selectedLabel(m))
	}
}

func TestDanglingLeafIsIgnored(t *testing.T) {
	m, tm := newTestModel(t, Options{})
	m.TreeView().Select(tm.FindByID("GO:2").Child(0))
	before := m.TreeView().Cursor()

	m = press(t, m, enterMsg())
	if m.TreeView().Cursor() != before {
		t.Errorf("dangling reference moved the cursor")
	}
	if m.Status() != "" {
		t.Errorf("dangling reference should not surface a message, got %q", m.Status())
	}
	if m.HistoryLen() != 0 {
		t.Errorf("dangling reference recorded history")
	}
}

func TestLabelStrategy(t *testing.T) {
	m, tm := newTestModel(t, Options{Strategy: navigate.ResolveByLabel})
	m.TreeView().Select(tm.FindByID("GO:1").Child(1))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if got := m.TreeView().Selected(); got != tm.FindByID("GO:3") {
		t.Errorf("expected gamma focused, got %q", selectedLabel(m))
	}
}

func TestSearchMode(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = press(t, m, keyMsg("/"))
	if m.mode != modeSearch {
		t.Fatalf("expected search mode")
	}
	// Navigation keys are text while the prompt is open.
	m = press(t, m, keyMsg("gam"))
	if selectedLabel(m) != "gamma" {
		t.Fatalf("expected search to select gamma, got %q", selectedLabel(m))
	}
	m = press(t, m, enterMsg())
	if m.mode != modeBrowse {
		t.Errorf("enter should close the prompt")
	}
	if !strings.Contains(m.Status(), `"gam"`) {
		t.Errorf("unexpected status %q", m.Status())
	}

	m = press(t, m, keyMsg("n"))
	if selectedLabel(m) != "gamma" || m.Status() != "match 1/1" {
		t.Errorf("n should stay on the only match, got %q / %q", selectedLabel(m), m.Status())
	}

	m = press(t, m, keyMsg("/"), escMsg())
	if m.search.Query() != "" || m.TreeView().hits != nil {
		t.Errorf("esc should clear the search")
	}
	m = press(t, m, keyMsg("N"))
	if m.Status() != "" {
		t.Errorf("N without a search should be silent, got %q", m.Status())
	}
}

func TestGoToID(t *testing.T) {
	m, tm := newTestModel(t, Options{})

	m = press(t, m, keyMsg(":"), keyMsg("GO:3"), enterMsg())
	if m.TreeView().Selected() != tm.FindByID("GO:3") {
		t.Fatalf("expected gamma selected, got %q", selectedLabel(m))
	}

	m = press(t, m, keyMsg(":"), keyMsg("beta"), enterMsg())
	if selectedLabel(m) != "beta" {
		t.Errorf("expected fallback to name lookup, got %q", selectedLabel(m))
	}

	m = press(t, m, keyMsg(":"), keyMsg("GO:77"), enterMsg())
	if m.Status() != "no term GO:77" {
		t.Errorf("unexpected status %q", m.Status())
	}

	m = press(t, m, keyMsg(":"), keyMsg("GO:1"), escMsg())
	if selectedLabel(m) != "beta" || m.mode != modeBrowse {
		t.Errorf("esc should cancel the jump")
	}
}

func TestCopyID(t *testing.T) {
	var copied string
	m, _ := newTestModel(t, Options{Clipboard: func(s string) error {
		copied = s
		return nil
	}})

	m = press(t, m, keyMsg("y"))
	if copied != "" {
		t.Errorf("root has no id to copy")
	}
	m = press(t, m, keyMsg("j"), keyMsg("y"))
	if copied != "GO:1" || m.Status() != "copied GO:1" {
		t.Errorf("copied %q, status %q", copied, m.Status())
	}

	failing, _ := newTestModel(t, Options{Clipboard: func(string) error { return errors.New("no display") }})
	failing = press(t, failing, keyMsg("j"), keyMsg("y"))
	if failing.Status() != "clipboard unavailable" {
		t.Errorf("unexpected status %q", failing.Status())
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40}, keyMsg("?"))
	if !strings.Contains(m.View(), "Gene Ontology Viewer Help") {
		t.Fatalf("expected help overlay")
	}
	// Keys are swallowed while the overlay is open.
	m = press(t, m, keyMsg("j"))
	if m.helpOverlay.IsVisible() || selectedLabel(m) != tree.RootLabel {
		t.Errorf("any key should only close the overlay")
	}
}

func TestViewLayout(t *testing.T) {
	m, _ := newTestModel(t, Options{Source: "sample.obo-xml", DetailsStyle: "notty"})
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})

	out := m.View()
	for _, want := range []string{"gtv", "sample.obo-xml", "3 terms", "Gene Ontology terms", "alpha", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in view:\n%s", want, out)
		}
	}

	m = press(t, m, keyMsg("j"), keyMsg("d"))
	out = m.View()
	if !strings.Contains(out, "Is a") {
		t.Errorf("expected details pane for alpha:\n%s", out)
	}
	if m.TreeView().width >= 100 {
		t.Errorf("tree should shrink when details are shown")
	}

	m = press(t, m, keyMsg("d"))
	if m.TreeView().width != 100 {
		t.Errorf("tree should use the full width again, got %d", m.TreeView().width)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Errorf("view should be empty after quitting")
	}
}
