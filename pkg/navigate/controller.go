// Package navigate turns selection events on reference leaves into focus
// requests on the name node of the referenced term.
package navigate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/model"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/tree"
)

// Strategy selects how a referenced id is turned into a name node.
type Strategy string

const (
	// ResolveByID uses the id -> name node index built with the tree.
	ResolveByID Strategy = "id"
	// ResolveByLabel looks the term's name up with a pre-order label search.
	// When two terms share a name the first one in the tree is focused.
	ResolveByLabel Strategy = "label"
)

// DefaultStrategy is used when none is configured.
const DefaultStrategy = ResolveByID

// ParseStrategy validates a strategy name. Empty means DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultStrategy, nil
	case ResolveByID:
		return ResolveByID, nil
	case ResolveByLabel:
		return ResolveByLabel, nil
	}
	return "", fmt.Errorf("unknown resolve strategy %q (want %q or %q)", s, ResolveByID, ResolveByLabel)
}

// Outcome describes what HandleSelection did with an event.
type Outcome int

const (
	OutcomeNoNode   Outcome = iota // event carried no node
	OutcomeNotLeaf                 // root or name node selected
	OutcomeDangling                // referenced id is not in the catalog
	OutcomeNotFound                // term known but no matching node in the tree
	OutcomeFocused                 // focus requested on the resolved node
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoNode:
		return "no-node"
	case OutcomeNotLeaf:
		return "not-leaf"
	case OutcomeDangling:
		return "dangling"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeFocused:
		return "focused"
	}
	return "unknown"
}

// TermLookup resolves term ids. *catalog.Store satisfies it.
type TermLookup interface {
	Get(id string) (model.Term, bool)
}

// Controller handles selection events. It keeps no state between events.
type Controller struct {
	terms    TermLookup
	tree     *tree.Model
	strategy Strategy
	logger   *zap.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithStrategy sets the resolution strategy.
func WithStrategy(s Strategy) Option {
	return func(c *Controller) {
		if s != "" {
			c.strategy = s
		}
	}
}

// WithLogger sets the logger used for debug tracing of events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController creates a controller over the given catalog and tree.
func NewController(terms TermLookup, tm *tree.Model, opts ...Option) *Controller {
	c := &Controller{
		terms:    terms,
		tree:     tm,
		strategy: DefaultStrategy,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strategy returns the configured resolution strategy.
func (c *Controller) Strategy() Strategy {
	return c.strategy
}

// HandleSelection processes one selection-changed event. Selecting a
// reference leaf focuses the name node of its term; anything else, and
// references to unknown terms, are ignored without surfacing an error.
func (c *Controller) HandleSelection(n *tree.Node) Outcome {
	out, target := c.Resolve(n)
	if out == OutcomeFocused {
		c.tree.Focus(target)
	}
	if n != nil {
		c.logger.Debug("selection handled",
			zap.String("label", n.Label()),
			zap.String("kind", n.Kind().String()),
			zap.Stringer("outcome", out))
	}
	return out
}

// Resolve performs the lookup of HandleSelection without issuing a focus
// request. The returned node is non-nil only with OutcomeFocused.
func (c *Controller) Resolve(n *tree.Node) (Outcome, *tree.Node) {
	if n == nil {
		return OutcomeNoNode, nil
	}
	if !n.IsLeaf() {
		return OutcomeNotLeaf, nil
	}
	pid := n.ID()
	term, ok := c.terms.Get(pid)
	if !ok {
		return OutcomeDangling, nil
	}

	var target *tree.Node
	switch c.strategy {
	case ResolveByLabel:
		target = c.tree.FindByLabel(term.Name)
	default:
		target = c.tree.FindByID(term.ID)
	}
	if target == nil {
		return OutcomeNotFound, nil
	}
	return OutcomeFocused, target
}
