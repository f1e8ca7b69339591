package parser

import (
	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/source"
	"awlyc/internal/token"
)

// binPrec returns the precedence of a binary operator token kind, and
// whether the kind is a binary operator at all (spec.md §4.3: `+ -` at 10,
// `* /` at 20, both left-associative).
func binPrec(k token.Kind) (int, ast.BinOp, bool) {
	switch k {
	case token.Plus:
		return 10, ast.OpAdd, true
	case token.Minus:
		return 10, ast.OpSub, true
	case token.Star:
		return 20, ast.OpMul, true
	case token.Slash:
		return 20, ast.OpDiv, true
	default:
		return 0, 0, false
	}
}

// parseExpr parses a full Pratt-precedence expression.
func (p *Parser) parseExpr() (ast.ExprID, source.Span, bool) {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(minPrec int) (ast.ExprID, source.Span, bool) {
	lhs, lhsSpan, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, lhsSpan, false
	}

	for {
		prec, op, isBin := binPrec(p.peekKind())
		if !isBin || prec < minPrec {
			return lhs, lhsSpan, true
		}
		p.advance() // operator

		rhs, rhsSpan, ok := p.parseBinary(prec + 1)
		if !ok {
			return lhs, lhsSpan, false
		}

		sp := lhsSpan.Cover(rhsSpan)
		lhs = p.b.Exprs.NewBinop(op, lhs, rhs, sp)
		lhsSpan = sp
	}
}

// parseUnary handles the one unary operator, '-', which binds tighter than
// any binary operator but looser than a call suffix.
func (p *Parser) parseUnary() (ast.ExprID, source.Span, bool) {
	if p.at(token.Minus) {
		minus := p.advance()
		operand, opSpan, ok := p.parsePrimaryWithPostfix()
		if !ok {
			return ast.NoExprID, minus.Span, false
		}
		sp := minus.Span.Cover(opSpan)
		return p.b.Exprs.NewNegate(operand, sp), sp, true
	}
	return p.parsePrimaryWithPostfix()
}

// parsePrimaryWithPostfix parses a PrimaryExpr and then zero or more call
// suffixes: PrimaryExpr Postfix*.
func (p *Parser) parsePrimaryWithPostfix() (ast.ExprID, source.Span, bool) {
	base, sp, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, sp, false
	}
	for p.at(token.LParen) {
		args, argsSpan, ok := p.parseCallArgs()
		if !ok {
			return ast.NoExprID, sp, false
		}
		callSp := sp.Cover(argsSpan)
		base = p.b.Exprs.NewCall(base, args, argsSpan, callSp)
		sp = callSp
	}
	return base, sp, true
}

// parseCallArgs parses "(" [Expr ("," Expr)*] ")".
func (p *Parser) parseCallArgs() ([]ast.ExprID, source.Span, bool) {
	open, ok := p.expect(token.LParen, diag.SynExpectToken)
	if !ok {
		return nil, source.Span{}, false
	}

	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			argID, _, ok := p.parseExpr()
			if !ok {
				p.resyncUntil(token.RParen, token.Comma, token.KwImport, token.KwFn)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
			args = append(args, argID)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	closeTok, ok := p.expect(token.RParen, diag.SynExpectToken)
	if !ok {
		return args, open.Span, false
	}
	return args, open.Span.Cover(closeTok.Span), true
}

// parsePrimary implements:
//
//	PrimaryExpr := Path | IntLit | FloatLit | StringLit | Array | Record | Negate
func (p *Parser) parsePrimary() (ast.ExprID, source.Span, bool) {
	switch p.peekKind() {
	case token.Ident:
		return p.parsePath()
	case token.IntLit:
		return p.parseIntLit()
	case token.FloatLit:
		return p.parseFloatLit()
	case token.StringLit:
		return p.parseStringLit()
	case token.LSquare:
		return p.parseArray()
	case token.LCurly:
		return p.parseRecord()
	case token.Minus:
		// Nested unary, e.g. `- -x`: Negate is itself a PrimaryExpr alternative.
		return p.parseUnary()
	default:
		sp := p.errSpan()
		p.report(diag.SynUnexpectedToken, diag.SevError, sp,
			"expected an expression, found "+p.lx.Peek().Kind.String())
		return p.b.Exprs.NewErrorNode(sp), sp, false
	}
}

// parsePath implements Path := Ident { "." Ident }*.
func (p *Parser) parsePath() (ast.ExprID, source.Span, bool) {
	first, ok := p.parseIdent(diag.SynExpectIdentifier)
	if !ok {
		return ast.NoExprID, p.errSpan(), false
	}
	segs := []ast.Ident{first}
	sp := first.Span
	for p.at(token.Period) {
		p.advance()
		seg, ok := p.parseIdent(diag.SynExpectIdentifier)
		if !ok {
			return ast.NoExprID, sp, false
		}
		segs = append(segs, seg)
		sp = sp.Cover(seg.Span)
	}
	return p.b.Exprs.NewPath(segs, sp), sp, true
}
