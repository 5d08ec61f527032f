package parser

import "brine/internal/graph"

// parseBlock parses '{' statement* '}' inside a fresh scope and asserts on
// exit that popping lands back in the scope that was active at entry. The
// check holds regardless of which branch of a conditional handed control
// back, which is exactly when an unbalanced push would otherwise slip by.
func (p *Parser) parseBlock(ctx context) (context, error) {
	if err := p.lex.mustRead("{"); err != nil {
		return ctx, err
	}
	enclosing := ctx.scope
	ctx = ctx.withScope()

	for !p.lex.tryRead("}") {
		if p.lex.isAtEnd() {
			return ctx, &ParseError{
				Message:  "expected '}'",
				Position: p.lex.position(),
				Err:      &SyntaxError{Expected: "'}'"},
			}
		}
		var err error
		ctx, err = p.parseStatement(ctx)
		if err != nil {
			return ctx, err
		}
	}

	out, err := ctx.popScope(enclosing)
	if err != nil {
		return ctx, &ParseError{Message: err.Error(), Position: p.lex.position(), Err: err}
	}
	return out, nil
}

func (p *Parser) parseStatement(ctx context) (context, error) {
	switch {
	case p.lex.tryRead("return"):
		return p.parseReturn(ctx)
	case p.lex.tryRead("int"):
		return p.parseDeclaration(ctx)
	case p.lex.tryRead("if"):
		return p.parseIf(ctx)
	default:
		return p.parseAssignment(ctx)
	}
}

// parseDeclaration handles 'int name [= expr];'. Without an initializer the
// symbol exists but has no value, so a later read fails until assigned.
func (p *Parser) parseDeclaration(ctx context) (context, error) {
	pos := p.lex.position()
	name := p.lex.readName()
	if name == "" {
		return ctx, &ParseError{
			Message:  "expected variable name",
			Position: pos,
			Err:      &SyntaxError{Expected: "variable name"},
		}
	}

	sym, err := ctx.scope.Define(name)
	if err != nil {
		return ctx, &ParseError{Message: err.Error(), Position: pos, Err: err}
	}

	if p.lex.tryRead("=") {
		node, err := p.parseExpression(ctx)
		if err != nil {
			return ctx, err
		}
		node.Tag(sym.Name)
		ctx = ctx.withValue(sym, node)
	}
	return ctx, p.lex.mustRead(";")
}

// parseAssignment handles 'name = expr;'. The name must resolve on the
// scope chain; assignment never declares.
func (p *Parser) parseAssignment(ctx context) (context, error) {
	pos := p.lex.position()
	name := p.lex.readName()
	if name == "" {
		return ctx, &ParseError{
			Message:  "expected statement",
			Position: pos,
			Err:      &SyntaxError{Expected: "statement"},
		}
	}

	sym, err := ctx.scope.Resolve(name)
	if err != nil {
		return ctx, &ParseError{Message: err.Error(), Position: pos, Err: err}
	}
	if err := p.lex.mustRead("="); err != nil {
		return ctx, err
	}
	node, err := p.parseExpression(ctx)
	if err != nil {
		return ctx, err
	}
	node.Tag(sym.Name)
	return ctx.withValue(sym, node), p.lex.mustRead(";")
}

// parseReturn handles 'return expr?;'. The return node goes to the shared
// sink; every return in the program feeds the one End region. Parsing
// continues afterwards, so early returns inside branches are fine.
func (p *Parser) parseReturn(ctx context) (context, error) {
	if p.lex.tryRead(";") {
		ctx.addReturn(ctx.graph.NewNode(graph.OpReturn, ctx.region))
		return ctx, nil
	}
	node, err := p.parseExpression(ctx)
	if err != nil {
		return ctx, err
	}
	ctx.addReturn(ctx.graph.NewNode(graph.OpReturn, ctx.region, node))
	return ctx, p.lex.mustRead(";")
}
