package parser

import (
	"brine/internal/graph"
	"brine/internal/scope"
)

// returnSink accumulates every return node of the program, whichever branch
// produced it. All contexts derived during one parse share the same sink.
type returnSink struct {
	nodes []*graph.Node
}

// context bundles the state a grammar rule needs: the current value of each
// symbol, the region under construction, the innermost scope, and the two
// shared pieces (graph arena, return sink). Contexts have value semantics;
// a rule that branches derives new contexts instead of mutating its
// caller's, so sibling branches never see each other's bindings.
type context struct {
	values  map[*scope.Symbol]*graph.Node
	region  *graph.Region
	scope   *scope.Table
	returns *returnSink
	graph   *graph.Graph
}

func newContext(g *graph.Graph, start *graph.Region) context {
	return context{
		values:  make(map[*scope.Symbol]*graph.Node),
		region:  start,
		scope:   scope.NewTable(nil),
		returns: &returnSink{},
		graph:   g,
	}
}

// withValue returns a context that binds sym to node. The value map is
// copied, not shared, so the binding stays invisible to sibling contexts.
func (c context) withValue(sym *scope.Symbol, node *graph.Node) context {
	values := make(map[*scope.Symbol]*graph.Node, len(c.values)+1)
	for s, n := range c.values {
		values[s] = n
	}
	values[sym] = node
	c.values = values
	return c
}

func (c context) valueOf(sym *scope.Symbol) (*graph.Node, bool) {
	n, ok := c.values[sym]
	return n, ok
}

// withScope returns a context with a fresh child scope pushed.
func (c context) withScope() context {
	c.scope = scope.NewTable(c.scope)
	return c
}

// popScope returns a context with the innermost scope popped. The caller
// states which scope it expects to be back in; a mismatch means pushes and
// pops went unbalanced somewhere and is a scope discipline failure.
func (c context) popScope(expected *scope.Table) (context, error) {
	if c.scope == nil {
		return c, &ScopeDisciplineError{Reason: "no scope to pop"}
	}
	parent := c.scope.Parent()
	if parent != expected {
		return c, &ScopeDisciplineError{Reason: "block exit did not restore the enclosing scope"}
	}
	c.scope = parent
	return c, nil
}

// withRegion returns a context whose current region is r.
func (c context) withRegion(r *graph.Region) context {
	c.region = r
	return c
}

// newRegion returns a context in a freshly created region with the given
// predecessors. The region is not linked as anyone's successor here; the
// caller wires that when the construct completes.
func (c context) newRegion(label string, preds ...*graph.Region) context {
	return c.withRegion(c.graph.NewRegion(label, preds...))
}

// addReturn appends a return node to the shared sink.
func (c context) addReturn(n *graph.Node) {
	c.returns.nodes = append(c.returns.nodes, n)
}
