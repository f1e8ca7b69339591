package parser

import (
	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/source"
	"awlyc/internal/token"
)

// parseArray implements Array := "[" [Expr ("," Expr)*] "]".
func (p *Parser) parseArray() (ast.ExprID, source.Span, bool) {
	open, ok := p.expect(token.LSquare, diag.SynExpectToken)
	if !ok {
		return ast.NoExprID, p.errSpan(), false
	}

	var elems []ast.ExprID
	if !p.at(token.RSquare) {
		for {
			elemID, _, ok := p.parseExpr()
			if !ok {
				p.resyncUntil(token.RSquare, token.Comma, token.KwImport, token.KwFn)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
			elems = append(elems, elemID)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	closeTok, ok := p.expect(token.RSquare, diag.SynExpectToken)
	sp := open.Span.Cover(closeTok.Span)
	if !ok {
		return ast.NoExprID, sp, false
	}
	return p.b.Exprs.NewArray(elems, sp), sp, true
}

// parseRecord implements:
//
//	Record := "{" [ Ident (":" Expr)? ("," …)* ] "}"
//
// A bare `foo` field desugars to `(foo, Path([foo]))`, the value pointing at
// the same span as the key, per spec.md §4.3.
func (p *Parser) parseRecord() (ast.ExprID, source.Span, bool) {
	open, ok := p.expect(token.LCurly, diag.SynExpectToken)
	if !ok {
		return ast.NoExprID, p.errSpan(), false
	}

	var fields []ast.RecordField
	if !p.at(token.RCurly) {
		for {
			key, ok := p.parseIdent(diag.SynExpectIdentifier)
			if !ok {
				p.resyncUntil(token.RCurly, token.Comma, token.KwImport, token.KwFn)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}

			var valueID ast.ExprID
			if p.at(token.Colon) {
				p.advance()
				v, _, ok := p.parseExpr()
				if !ok {
					p.resyncUntil(token.RCurly, token.Comma, token.KwImport, token.KwFn)
					if p.at(token.Comma) {
						p.advance()
						continue
					}
					break
				}
				valueID = v
			} else {
				valueID = p.b.Exprs.NewPath([]ast.Ident{key}, key.Span)
			}

			fields = append(fields, ast.RecordField{Key: key, Value: valueID})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	closeTok, ok := p.expect(token.RCurly, diag.SynExpectToken)
	sp := open.Span.Cover(closeTok.Span)
	if !ok {
		return ast.NoExprID, sp, false
	}
	return p.b.Exprs.NewRecord(fields, sp), sp, true
}
