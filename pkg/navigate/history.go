package navigate

import "github.com/Dicklesworthstone/goterm_viewer/pkg/tree"

// DefaultHistoryLimit bounds History when created with a non-positive limit.
const DefaultHistoryLimit = 64

// History records the leaves a focus jump started from, so a shell can
// offer a single-hop "back". Oldest entries are dropped past the limit.
type History struct {
	stack []*tree.Node
	limit int
}

// NewHistory returns an empty history holding at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records origin. Nil nodes and immediate repeats are ignored.
func (h *History) Push(origin *tree.Node) {
	if origin == nil {
		return
	}
	if n := len(h.stack); n > 0 && h.stack[n-1] == origin {
		return
	}
	if len(h.stack) == h.limit {
		copy(h.stack, h.stack[1:])
		h.stack = h.stack[:len(h.stack)-1]
	}
	h.stack = append(h.stack, origin)
}

// Pop removes and returns the most recent origin.
func (h *History) Pop() (*tree.Node, bool) {
	n := len(h.stack)
	if n == 0 {
		return nil, false
	}
	node := h.stack[n-1]
	h.stack[n-1] = nil
	h.stack = h.stack[:n-1]
	return node, true
}

// Len reports the number of recorded origins.
func (h *History) Len() int { return len(h.stack) }

// Clear drops every entry.
func (h *History) Clear() { h.stack = h.stack[:0] }
