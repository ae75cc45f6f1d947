package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/navigate"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/tree"
)

// TreeView is the windowed, single-selection widget over a tree.Model.
// The root is always expanded; name nodes toggle to show their reference
// leaves. It implements tree.Focuser.
type TreeView struct {
	tree  *tree.Model
	terms navigate.TermLookup
	theme Theme

	expanded map[*tree.Node]bool
	flatList []*tree.Node
	position map[*tree.Node]int
	hits     map[*tree.Node]bool

	cursor         int
	viewportOffset int
	width          int
	height         int
}

// NewTreeView flattens tm with every name node collapsed.
func NewTreeView(tm *tree.Model, terms navigate.TermLookup, theme Theme) *TreeView {
	v := &TreeView{
		tree:     tm,
		terms:    terms,
		theme:    theme,
		expanded: make(map[*tree.Node]bool),
		position: make(map[*tree.Node]int),
	}
	v.rebuildFlatList()
	return v
}

// SetSize sets the rows and columns available to the list.
func (v *TreeView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ensureCursorVisible()
}

// Select moves the cursor to n, expanding its ancestors and scrolling it
// into view. Nodes outside the tree are ignored.
func (v *TreeView) Select(n *tree.Node) {
	if n == nil {
		return
	}
	if v.expandPathToNode(n) {
		v.rebuildFlatList()
	}
	if i, ok := v.position[n]; ok {
		v.cursor = i
		v.ensureCursorVisible()
	}
}

// Selected returns the node under the cursor.
func (v *TreeView) Selected() *tree.Node {
	if v.cursor >= 0 && v.cursor < len(v.flatList) {
		return v.flatList[v.cursor]
	}
	return nil
}

// Cursor returns the cursor row in the flattened list.
func (v *TreeView) Cursor() int { return v.cursor }

// Len returns the number of visible rows.
func (v *TreeView) Len() int { return len(v.flatList) }

// ViewportOffset returns the first rendered row.
func (v *TreeView) ViewportOffset() int { return v.viewportOffset }

// IsExpanded reports whether n currently shows its children.
func (v *TreeView) IsExpanded(n *tree.Node) bool {
	return n != nil && (n.Kind() == tree.KindRoot || v.expanded[n])
}

// SetHits marks nodes to highlight as search matches.
func (v *TreeView) SetHits(nodes []*tree.Node) {
	if len(nodes) == 0 {
		v.hits = nil
		return
	}
	v.hits = make(map[*tree.Node]bool, len(nodes))
	for _, n := range nodes {
		v.hits[n] = true
	}
}

// ── Cursor movement ──
// Each method reports whether the cursor moved, so the caller knows
// whether a selection-changed event is due.

func (v *TreeView) MoveDown() bool { return v.moveTo(v.cursor + 1) }

func (v *TreeView) MoveUp() bool { return v.moveTo(v.cursor - 1) }

func (v *TreeView) JumpToTop() bool { return v.moveTo(0) }

func (v *TreeView) JumpToBottom() bool { return v.moveTo(len(v.flatList) - 1) }

// PageDown moves by the number of visible rows.
func (v *TreeView) PageDown() bool { return v.moveTo(v.cursor + v.visibleCount()) }

// PageUp moves back by the number of visible rows.
func (v *TreeView) PageUp() bool { return v.moveTo(v.cursor - v.visibleCount()) }

func (v *TreeView) moveTo(i int) bool {
	if len(v.flatList) == 0 {
		return false
	}
	if i >= len(v.flatList) {
		i = len(v.flatList) - 1
	}
	if i < 0 {
		i = 0
	}
	if i == v.cursor {
		return false
	}
	v.cursor = i
	v.ensureCursorVisible()
	return true
}

// ExpandOrMoveToChild expands a collapsed name node, or steps onto its first
// leaf when already expanded. It reports whether the cursor moved.
func (v *TreeView) ExpandOrMoveToChild() bool {
	node := v.Selected()
	if node == nil || node.Len() == 0 {
		return false
	}
	if !v.IsExpanded(node) {
		v.setExpanded(node, true)
		return false
	}
	return v.moveTo(v.position[node.Child(0)])
}

// CollapseOrJumpToParent collapses an expanded name node, otherwise moves
// to the parent row. It reports whether the cursor moved.
func (v *TreeView) CollapseOrJumpToParent() bool {
	node := v.Selected()
	if node == nil {
		return false
	}
	if node.Kind() == tree.KindName && v.expanded[node] {
		v.setExpanded(node, false)
		return false
	}
	parent := node.Parent()
	if parent == nil {
		return false
	}
	return v.moveTo(v.position[parent])
}

// Toggle flips the expansion of the selected name node.
func (v *TreeView) Toggle() {
	node := v.Selected()
	if node == nil || node.Kind() != tree.KindName || node.Len() == 0 {
		return
	}
	v.setExpanded(node, !v.expanded[node])
}

func (v *TreeView) setExpanded(n *tree.Node, on bool) {
	selected := v.Selected()
	if on {
		v.expanded[n] = true
	} else {
		delete(v.expanded, n)
	}
	v.rebuildFlatList()
	// A collapsed parent hides the selected leaf; keep the cursor on the parent.
	if i, ok := v.position[selected]; ok {
		v.cursor = i
	} else if i, ok := v.position[n]; ok {
		v.cursor = i
	}
	v.ensureCursorVisible()
}

// expandPathToNode expands every collapsed ancestor of n and reports
// whether anything changed.
func (v *TreeView) expandPathToNode(n *tree.Node) bool {
	changed := false
	for a := n.Parent(); a != nil; a = a.Parent() {
		if a.Kind() == tree.KindName && !v.expanded[a] {
			v.expanded[a] = true
			changed = true
		}
	}
	return changed
}

// rebuildFlatList rebuilds the flattened list of visible nodes.
func (v *TreeView) rebuildFlatList() {
	v.flatList = v.flatList[:0]
	clear(v.position)
	v.appendVisible(v.tree.Root())
	if v.cursor >= len(v.flatList) {
		v.cursor = len(v.flatList) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *TreeView) appendVisible(n *tree.Node) {
	v.position[n] = len(v.flatList)
	v.flatList = append(v.flatList, n)
	if !v.IsExpanded(n) {
		return
	}
	for i := 0; i < n.Len(); i++ {
		v.appendVisible(n.Child(i))
	}
}

// ── Viewport ──

func (v *TreeView) visibleCount() int {
	count := v.height
	if count <= 0 {
		count = 20
	}
	// Reserve a line for the position indicator when scrolling is needed
	if len(v.flatList) > count && count > 1 {
		count--
	}
	return count
}

// ensureCursorVisible scrolls just enough to keep the cursor on screen.
func (v *TreeView) ensureCursorVisible() {
	if len(v.flatList) == 0 {
		return
	}
	visible := v.visibleCount()
	if v.cursor < v.viewportOffset {
		v.viewportOffset = v.cursor
	}
	if v.cursor >= v.viewportOffset+visible {
		v.viewportOffset = v.cursor - visible + 1
	}
	maxOffset := len(v.flatList) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.viewportOffset > maxOffset {
		v.viewportOffset = maxOffset
	}
	if v.viewportOffset < 0 {
		v.viewportOffset = 0
	}
}

// visibleRange returns the [start, end) rows to render.
func (v *TreeView) visibleRange() (start, end int) {
	if len(v.flatList) == 0 {
		return 0, 0
	}
	visible := v.visibleCount()
	start = v.viewportOffset
	end = start + visible
	if end > len(v.flatList) {
		end = len(v.flatList)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// ── Rendering ──

// View renders only the rows inside the viewport.
func (v *TreeView) View() string {
	var sb strings.Builder
	start, end := v.visibleRange()
	for i := start; i < end; i++ {
		sb.WriteString(v.renderRow(v.flatList[i], i == v.cursor))
		sb.WriteString("\n")
	}
	if len(v.flatList) > v.visibleCount() {
		indicator := fmt.Sprintf(" %d-%d of %d", start+1, end, len(v.flatList))
		sb.WriteString(v.theme.Renderer.NewStyle().Foreground(v.theme.Muted).Render(indicator))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (v *TreeView) renderRow(n *tree.Node, selected bool) string {
	r := v.theme.Renderer
	prefix := treePrefix(n)
	indicator := v.indicator(n)

	label, note := n.Label(), ""
	labelStyle := r.NewStyle().Foreground(v.theme.Text)
	noteStyle := r.NewStyle().Foreground(v.theme.Muted)
	switch n.Kind() {
	case tree.KindRoot:
		labelStyle = v.theme.Header
		note = fmt.Sprintf("%d terms", n.Len())
	case tree.KindName:
		note = n.ID()
	case tree.KindReference:
		labelStyle = r.NewStyle().Foreground(v.theme.Secondary)
		if term, ok := v.terms.Get(n.ID()); ok {
			note = term.Name
		} else {
			labelStyle = r.NewStyle().Foreground(v.theme.Muted)
			note = "not in catalog"
		}
	}
	if v.hits[n] {
		labelStyle = labelStyle.Underline(true).Foreground(v.theme.Warning)
	}

	fixed := runewidth.StringWidth(prefix) + runewidth.StringWidth(indicator) + 1
	avail := v.width - fixed
	if v.width <= 0 {
		avail = 1 << 16
	}
	label = truncateLabel(label, avail)
	row := r.NewStyle().Foreground(v.theme.Muted).Render(prefix) + indicator + " " + labelStyle.Render(label)
	if rest := avail - runewidth.StringWidth(label) - 2; note != "" && rest > 3 {
		row += "  " + noteStyle.Render(truncateLabel(note, rest))
	}
	if v.width > 0 {
		row = truncate.String(row, uint(v.width))
	}
	if selected {
		row = v.theme.Selected.Render(row)
	}
	return row
}

func (v *TreeView) indicator(n *tree.Node) string {
	switch {
	case n.Kind() == tree.KindReference:
		return "→"
	case n.Len() == 0:
		return "•"
	case v.IsExpanded(n):
		return "▾"
	}
	return "▸"
}

// treePrefix builds the branch drawing for n in the two-level layout.
func treePrefix(n *tree.Node) string {
	switch n.Depth() {
	case 0:
		return ""
	case 1:
		return branch(n)
	}
	var sb strings.Builder
	for a := n.Parent(); a != nil && a.Depth() > 0; a = a.Parent() {
		if a.IsLast() {
			sb.WriteString("    ")
		} else {
			sb.WriteString("│   ")
		}
	}
	sb.WriteString(branch(n))
	return sb.String()
}

func branch(n *tree.Node) string {
	if n.IsLast() {
		return "└── "
	}
	return "├── "
}

// truncateLabel clips s to width cells with an ellipsis.
func truncateLabel(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
