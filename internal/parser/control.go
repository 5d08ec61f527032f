package parser

import (
	"sort"

	"brine/internal/graph"
	"brine/internal/scope"
)

// parseIf builds the control flow for 'if (expr) block (else block)?'.
//
// With a constant condition only the taken branch contributes to the graph;
// the other branch is still parsed, into a sink region that nothing links
// to, so its tokens and scopes are consumed correctly. Otherwise the pre-if
// region forks into a true region and either a false region or the merge
// directly, and symbols reassigned on a branch are merged back with phi
// nodes.
func (p *Parser) parseIf(ctx context) (context, error) {
	if err := p.lex.mustRead("("); err != nil {
		return ctx, err
	}
	cond, err := p.parseExpression(ctx)
	if err != nil {
		return ctx, err
	}
	if err := p.lex.mustRead(")"); err != nil {
		return ctx, err
	}

	if p.fold && cond.Const != nil {
		return p.parseConstIf(ctx, cond.Const.Truthy())
	}

	pre := ctx.region
	if err := pre.FinalizeNodes([]*graph.Node{cond}); err != nil {
		return ctx, err
	}

	trueEntry := ctx.newRegion("if-true", pre)
	trueOut, err := p.parseBlock(trueEntry)
	if err != nil {
		return ctx, err
	}

	// Without an else the false path is the pre-if context itself.
	falseOut := ctx
	var falseEntry *graph.Region
	if p.lex.tryRead("else") {
		entry := ctx.newRegion("if-false", pre)
		falseEntry = entry.region
		falseOut, err = p.parseBlock(entry)
		if err != nil {
			return ctx, err
		}
	}

	merge := ctx.newRegion("merge", trueOut.region, falseOut.region)

	second := merge.region
	if falseEntry != nil {
		second = falseEntry
	}
	if err := pre.FinalizeSuccessors([]*graph.Region{trueEntry.region, second}); err != nil {
		return ctx, err
	}

	if err := closeBranch(trueOut.region, merge.region); err != nil {
		return ctx, err
	}
	if falseEntry != nil {
		if err := closeBranch(falseOut.region, merge.region); err != nil {
			return ctx, err
		}
	}

	return p.mergeValues(ctx, trueOut, falseOut, merge), nil
}

// closeBranch finalizes a branch exit region: no output nodes of its own
// and the merge region as its only successor.
func closeBranch(exit, merge *graph.Region) error {
	if err := exit.FinalizeNodes(nil); err != nil {
		return err
	}
	return exit.FinalizeSuccessors([]*graph.Region{merge})
}

// mergeValues computes each symbol's value after the join. A symbol keeps
// its pre-if value when neither path touched it, propagates a single new
// value when both paths agree, and gets a phi when they disagree. A symbol
// first declared inside one branch has no pre-if value and is not merged;
// that gap is a known limitation of this scheme.
func (p *Parser) mergeValues(pre, trueOut, falseOut, merge context) context {
	out := merge
	for _, sym := range sortedSymbols(pre) {
		preVal := pre.values[sym]
		trueVal := branchValue(trueOut, sym, preVal)
		falseVal := branchValue(falseOut, sym, preVal)

		if trueVal == falseVal {
			if trueVal != preVal {
				out = out.withValue(sym, trueVal)
			}
			continue
		}
		phi := out.graph.NewPhi(
			[]*graph.Node{trueVal, falseVal},
			[]*graph.Region{trueOut.region, falseOut.region},
		)
		phi.Tag(sym.Name)
		out = out.withValue(sym, phi)
	}
	return out
}

func branchValue(branch context, sym *scope.Symbol, preVal *graph.Node) *graph.Node {
	if v, ok := branch.valueOf(sym); ok {
		return v
	}
	return preVal
}

// sortedSymbols orders the pre-if bindings deterministically so phi nodes
// come out in a stable order run to run. Name alone is not a total order
// because shadowed symbols share a spelling; the value node ID breaks ties.
func sortedSymbols(pre context) []*scope.Symbol {
	syms := make([]*scope.Symbol, 0, len(pre.values))
	for sym := range pre.values {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Name != syms[j].Name {
			return syms[i].Name < syms[j].Name
		}
		return pre.values[syms[i]].ID < pre.values[syms[j]].ID
	})
	return syms
}

// parseConstIf handles a condition known at parse time. Exactly one branch
// is parsed for real; a syntactic alternative is parsed into a sink region
// with the pre-if region as its only predecessor and its context thrown
// away, keeping it out of the live graph entirely.
func (p *Parser) parseConstIf(ctx context, taken bool) (context, error) {
	if taken {
		out, err := p.parseBlock(ctx)
		if err != nil {
			return ctx, err
		}
		if p.lex.tryRead("else") {
			if _, err := p.parseBlock(ctx.newRegion(prunedLabel, ctx.region)); err != nil {
				return ctx, err
			}
		}
		return out, nil
	}

	if _, err := p.parseBlock(ctx.newRegion(prunedLabel, ctx.region)); err != nil {
		return ctx, err
	}
	if p.lex.tryRead("else") {
		return p.parseBlock(ctx)
	}
	return ctx, nil
}

const prunedLabel = "const-expr-removed"
