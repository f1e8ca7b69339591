package parser

import (
	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/token"
)

// parseImport implements ImportDecl := "import" Ident StringLit.
func (p *Parser) parseImport() (ast.ImportDecl, bool) {
	kw := p.advance() // 'import'

	name, ok := p.parseIdent(diag.SynExpectIdentifier)
	if !ok {
		p.resyncUntil(token.KwImport, token.KwFn)
		return ast.ImportDecl{}, false
	}

	pathTok, ok := p.expect(token.StringLit, diag.SynExpectToken)
	if !ok {
		p.resyncUntil(token.KwImport, token.KwFn)
		return ast.ImportDecl{}, false
	}

	path := unquoteString(pathTok.Text)
	sp := kw.Span.Cover(pathTok.Span)
	return ast.ImportDecl{Name: name, Path: path, Span: sp}, true
}

// resyncUntil skips tokens until Peek() matches one of stop, or EOF.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) {
		for _, k := range stop {
			if p.peekKind() == k {
				return
			}
		}
		p.advance()
	}
}

// unquoteString strips the surrounding quotes and un-escapes `\"` from a
// StringLit token's raw text.
func unquoteString(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	inner := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			out = append(out, inner[i])
			continue
		}
		out = append(out, inner[i])
	}
	return string(out)
}
