package graph

import (
	"fmt"
	"strings"
)

// Printer renders the reachable part of a graph. Traversal is depth-first
// from the End region: predecessor regions are visited before the region
// itself, and a node's inputs before the node, so definitions always print
// above their uses. Visited sets keep shared entities from printing twice.
type Printer struct {
	output  strings.Builder
	regions map[int]bool
	nodes   map[int]bool
}

func NewPrinter() *Printer {
	return &Printer{
		regions: make(map[int]bool),
		nodes:   make(map[int]bool),
	}
}

// Print returns the textual form of the graph rooted at the End region.
func Print(end *Region) string {
	p := NewPrinter()
	p.printRegion(end)
	return p.output.String()
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printRegion(r *Region) {
	if p.regions[r.ID] {
		return
	}
	p.regions[r.ID] = true

	for _, pred := range r.Preds {
		p.printRegion(pred)
	}

	label := ""
	if r.Label != "" {
		label = " [" + r.Label + "]"
	}
	if len(r.Preds) == 0 {
		p.writeLine("region r%d%s", r.ID, label)
	} else {
		preds := make([]string, len(r.Preds))
		for i, pred := range r.Preds {
			preds[i] = fmt.Sprintf("r%d", pred.ID)
		}
		p.writeLine("region r%d%s <- %s", r.ID, label, strings.Join(preds, ", "))
	}

	if nodes, ok := r.Nodes(); ok {
		for _, n := range nodes {
			p.printNode(n)
		}
	}
}

func (p *Printer) printNode(n *Node) {
	if p.nodes[n.ID] {
		return
	}
	p.nodes[n.ID] = true

	for _, in := range n.Inputs {
		p.printNode(in)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  n%d %s", n.ID, n.Op)
	if n.Const != nil {
		fmt.Fprintf(&b, " %s", n.Const)
	}
	if n.Symbol() != "" {
		fmt.Fprintf(&b, " {%s}", n.Symbol())
	}
	if len(n.Inputs) > 0 {
		parts := make([]string, len(n.Inputs))
		for i, in := range n.Inputs {
			if n.Op == OpPhi {
				parts[i] = fmt.Sprintf("r%d:n%d", n.From[i].ID, in.ID)
			} else {
				parts[i] = fmt.Sprintf("n%d", in.ID)
			}
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	p.writeLine("%s", b.String())
}
