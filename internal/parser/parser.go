// Package parser implements the Brine front end: a single pass that reads
// the source text and builds the region/node graph directly, resolving
// names against the scope chain, folding constant expressions and inserting
// phi nodes at control-flow joins as it goes. There is no separate token
// stream or syntax tree.
package parser

import (
	"errors"

	"brine/internal/graph"
)

// Parser owns the cursor and the per-parse toggles. One Parser parses one
// program; identifiers and the return sink are scoped to that parse.
type Parser struct {
	lex  *lexer
	fold bool
}

// Result is the parsed program: the graph walks backwards from End. Start
// has no predecessors; End's output nodes are the program's returns in
// source order.
type Result struct {
	Start *graph.Region
	End   *graph.Region
}

func New(source string) *Parser {
	return &Parser{lex: newLexer(source), fold: true}
}

// NewWithoutFolding returns a parser with constant folding and constant
// branch pruning switched off, so even statically known conditions build
// the full fork-and-merge shape. Mostly useful in tests.
func NewWithoutFolding(source string) *Parser {
	return &Parser{lex: newLexer(source)}
}

// Parse consumes the whole program, a single block, and returns the graph.
// The first error aborts the parse; there is no partial result.
func Parse(source string) (*Result, error) {
	return New(source).Parse()
}

func (p *Parser) Parse() (*Result, error) {
	g := graph.New()
	start := g.NewRegion("start")
	ctx := newContext(g, start)

	out, err := p.parseBlock(ctx)
	if err != nil {
		return nil, p.surface(err)
	}

	p.lex.skipWhitespace()
	if !p.lex.isAtEnd() {
		return nil, &ParseError{
			Message:  "unexpected input after program",
			Position: p.lex.position(),
			Err:      &SyntaxError{Expected: "end of input"},
		}
	}

	// The End region records every return as its outputs, while its only
	// predecessor is the region the outermost block ended in. Returns from
	// other branches are reachable through that region's predecessors, so
	// the wiring is asymmetric; keep it that way.
	end := g.NewRegion("end", out.region)
	if err := out.region.FinalizeNodes(nil); err != nil {
		return nil, p.surface(err)
	}
	if err := out.region.FinalizeSuccessors([]*graph.Region{end}); err != nil {
		return nil, p.surface(err)
	}
	if err := end.FinalizeNodes(out.returns.nodes); err != nil {
		return nil, p.surface(err)
	}
	if err := end.FinalizeSuccessors(nil); err != nil {
		return nil, p.surface(err)
	}

	return &Result{Start: start, End: end}, nil
}

// surface guarantees the caller always sees a *ParseError with a position,
// whatever layer the failure came from.
func (p *Parser) surface(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Message: err.Error(), Position: p.lex.position(), Err: err}
}
