package parser

import (
	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/source"
	"awlyc/internal/token"
)

// parseFn implements FnDecl := "fn" Ident "(" [Ident ("," Ident)*] ")" "{" Expr "}".
func (p *Parser) parseFn() (ast.FnDecl, bool) {
	kw := p.advance() // 'fn'

	name, ok := p.parseIdent(diag.SynExpectIdentifier)
	if !ok {
		p.resyncUntil(token.KwImport, token.KwFn)
		return ast.FnDecl{}, false
	}

	params, paramsSpan, ok := p.parseFnParams()
	if !ok {
		p.resyncUntil(token.KwImport, token.KwFn)
		return ast.FnDecl{}, false
	}

	if _, ok := p.expect(token.LCurly, diag.SynExpectToken); !ok {
		p.resyncUntil(token.KwImport, token.KwFn)
		return ast.FnDecl{}, false
	}

	body, _, ok := p.parseExpr()
	if !ok {
		p.resyncUntil(token.RCurly, token.KwImport, token.KwFn)
	}

	closeTok, ok2 := p.expect(token.RCurly, diag.SynExpectToken)
	if !ok2 {
		p.resyncUntil(token.KwImport, token.KwFn)
	}
	if !ok {
		return ast.FnDecl{}, false
	}

	sp := kw.Span.Cover(closeTok.Span)
	return ast.FnDecl{
		Name:       name,
		ParamsSpan: paramsSpan,
		Params:     params,
		Body:       body,
		Span:       sp,
	}, true
}

// parseFnParams implements the parenthesized, comma-separated parameter
// list of a function declaration: "(" [Ident ("," Ident)*] ")".
func (p *Parser) parseFnParams() ([]ast.FnParam, source.Span, bool) {
	open, ok := p.expect(token.LParen, diag.SynExpectToken)
	if !ok {
		return nil, source.Span{}, false
	}

	var params []ast.FnParam
	if !p.at(token.RParen) {
		for {
			name, ok := p.parseIdent(diag.SynExpectIdentifier)
			if !ok {
				p.resyncUntil(token.RParen, token.LCurly, token.KwImport, token.KwFn)
				break
			}
			params = append(params, ast.FnParam{Name: name})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	close, ok := p.expect(token.RParen, diag.SynExpectToken)
	if !ok {
		return params, open.Span, false
	}
	return params, open.Span.Cover(close.Span), true
}
