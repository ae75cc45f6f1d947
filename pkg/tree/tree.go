// Package tree projects a term catalog into the two-level tree shown by the
// viewer: one name node per term, one reference leaf per is_a parent.
//
// The structure is built once and never mutated afterwards. Nodes expose
// read-only accessors; only presentation state (the focused node) changes.
package tree

import "github.com/Dicklesworthstone/goterm_viewer/pkg/model"

// RootLabel is the label of the synthetic root node.
const RootLabel = "Gene Ontology terms"

// NodeKind distinguishes the structural roles in the tree
type NodeKind int

const (
	KindRoot      NodeKind = iota
	KindName               // one per term, labeled by term name
	KindReference          // one per is_a entry, labeled by parent id
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindName:
		return "name"
	case KindReference:
		return "reference"
	}
	return "unknown"
}

// Node is a labeled tree node. For name nodes the payload ID is the owning
// term's id; for reference leaves it is the referenced parent id.
type Node struct {
	label    string
	id       string
	kind     NodeKind
	parent   *Node
	children []*Node
	index    int // position among parent's children
}

func (n *Node) Label() string  { return n.label }
func (n *Node) ID() string     { return n.id }
func (n *Node) Kind() NodeKind { return n.kind }
func (n *Node) Parent() *Node  { return n.parent }
func (n *Node) Len() int       { return len(n.children) }

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// IsLeaf reports whether the node is a reference leaf. A name node whose
// term has no parents is childless but is not a leaf in this sense.
func (n *Node) IsLeaf() bool {
	return n.kind == KindReference
}

// IsLast reports whether the node is the last child of its parent.
func (n *Node) IsLast() bool {
	return n.parent == nil || n.index == len(n.parent.children)-1
}

// Depth returns 0 for the root, 1 for name nodes and 2 for leaves.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Focuser is the view contract used by Focus: select the node and make sure
// it is visible.
type Focuser interface {
	Select(n *Node)
}

// TermSource is anything that can enumerate terms in a stable order.
// *catalog.Store satisfies it.
type TermSource interface {
	Each(fn func(model.Term) bool)
}

// Model is the two-level tree projection plus an id -> name node index.
type Model struct {
	root    *Node
	byID    map[string]*Node
	leaves  int
	focuser Focuser
	focused *Node
}

// Build walks src in order and creates one name node per term with one
// reference leaf per parent, in source order.
func Build(src TermSource) *Model {
	m := &Model{
		root: &Node{label: RootLabel, kind: KindRoot},
		byID: make(map[string]*Node),
	}
	src.Each(func(t model.Term) bool {
		name := &Node{
			label:  t.Name,
			id:     t.ID,
			kind:   KindName,
			parent: m.root,
			index:  len(m.root.children),
		}
		if len(t.Parents) > 0 {
			name.children = make([]*Node, 0, len(t.Parents))
		}
		for i, pid := range t.Parents {
			name.children = append(name.children, &Node{
				label:  pid,
				id:     pid,
				kind:   KindReference,
				parent: name,
				index:  i,
			})
		}
		m.leaves += len(t.Parents)
		m.root.children = append(m.root.children, name)
		if _, dup := m.byID[t.ID]; !dup {
			m.byID[t.ID] = name
		}
		return true
	})
	return m
}

// Root returns the synthetic root node.
func (m *Model) Root() *Node {
	return m.root
}

// Names returns the name nodes in order.
func (m *Model) Names() []*Node {
	return m.root.Children()
}

// NameCount returns the number of name nodes.
func (m *Model) NameCount() int {
	return len(m.root.children)
}

// LeafCount returns the number of reference leaves.
func (m *Model) LeafCount() int {
	return m.leaves
}

// FindByID returns the name node whose payload is id.
func (m *Model) FindByID(id string) *Node {
	return m.byID[id]
}

// FindByLabel returns the first node, in pre-order, whose label equals
// label. The traversal uses an explicit stack.
func (m *Model) FindByLabel(label string) *Node {
	var found *Node
	m.Walk(func(n *Node) bool {
		if n.label == label {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAllByLabel returns every node with the given label in pre-order.
func (m *Model) FindAllByLabel(label string) []*Node {
	var out []*Node
	m.Walk(func(n *Node) bool {
		if n.label == label {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Walk visits nodes in pre-order until fn returns false.
func (m *Model) Walk(fn func(*Node) bool) {
	stack := []*Node{m.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}

// SetFocuser attaches the view that carries out focus requests.
func (m *Model) SetFocuser(f Focuser) {
	m.focuser = f
}

// Focus asks the view to select and reveal n. Focusing the same node
// repeatedly has the same effect as focusing it once.
func (m *Model) Focus(n *Node) {
	if n == nil {
		return
	}
	m.focused = n
	if m.focuser != nil {
		m.focuser.Select(n)
	}
}

// Focused returns the node most recently passed to Focus.
func (m *Model) Focused() *Node {
	return m.focused
}
