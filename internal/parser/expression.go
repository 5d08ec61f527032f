package parser

import "brine/internal/graph"

// The expression grammar is deliberately flat: expr := atom (binop expr)?,
// so a + b * c parses as a + (b * c) by right association, not by
// precedence. That is a documented property of the language, not a defect.

var binops = []struct {
	token string
	op    graph.OpKind
}{
	{"+", graph.OpAdd},
	{"-", graph.OpSub},
	{"*", graph.OpMul},
	{"<", graph.OpLess},
	{">", graph.OpGreater},
}

func (p *Parser) parseExpression(ctx context) (*graph.Node, error) {
	left, err := p.parseAtom(ctx)
	if err != nil {
		return nil, err
	}

	for _, candidate := range binops {
		if !p.lex.tryRead(candidate.token) {
			continue
		}
		right, err := p.parseExpression(ctx)
		if err != nil {
			return nil, err
		}
		return p.combine(ctx, candidate.op, left, right), nil
	}
	return left, nil
}

// combine builds the operator node, folding first when both operands carry
// integer constants. Folding happens before node construction: the folded
// literal is emitted directly and no operator node ever exists, so pruned
// arithmetic leaves nothing unreachable behind.
func (p *Parser) combine(ctx context, op graph.OpKind, left, right *graph.Node) *graph.Node {
	if p.fold && foldable(left) && foldable(right) {
		return ctx.graph.NewConst(evalConst(op, left.Const.Int, right.Const.Int), ctx.region)
	}
	return ctx.graph.NewNode(op, ctx.region, left, right)
}

func foldable(n *graph.Node) bool {
	return n.Const != nil && !n.Const.IsBool
}

func evalConst(op graph.OpKind, a, b int64) *graph.Value {
	switch op {
	case graph.OpAdd:
		return graph.IntValue(a + b)
	case graph.OpSub:
		return graph.IntValue(a - b)
	case graph.OpMul:
		return graph.IntValue(a * b)
	case graph.OpLess:
		return graph.BoolValue(a < b)
	case graph.OpGreater:
		return graph.BoolValue(a > b)
	}
	// combine only passes the five operators above.
	panic(&graph.InvariantViolation{Reason: "unsupported fold operator " + op.String()})
}

func (p *Parser) parseAtom(ctx context) (*graph.Node, error) {
	// READ_INT produces an external-read node: no inputs, no constant
	// value, never foldable.
	if p.lex.tryRead("READ_INT") {
		return ctx.graph.NewNode(graph.OpReadInput, ctx.region), nil
	}

	if value, ok := p.lex.readNumber(); ok {
		return ctx.graph.NewConst(graph.IntValue(value), ctx.region), nil
	}

	pos := p.lex.position()
	name := p.lex.readName()
	if name == "" {
		return nil, &ParseError{
			Message:  "expected expression",
			Position: pos,
			Err:      &SyntaxError{Expected: "expression"},
		}
	}

	sym, err := ctx.scope.Resolve(name)
	if err != nil {
		return nil, &ParseError{Message: err.Error(), Position: pos, Err: err}
	}
	node, ok := ctx.valueOf(sym)
	if !ok {
		err := &UnassignedSymbolError{Name: sym.Name}
		return nil, &ParseError{Message: err.Error(), Position: pos, Err: err}
	}
	return node, nil
}
