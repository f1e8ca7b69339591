// Package parser implements the recursive-descent, error-recovering parser
// described by spec.md §4.3: it turns a token stream into a Module plus
// spanned, spanned-accumulated diagnostics.
package parser

import (
	"slices"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/lexer"
	"awlyc/internal/source"
	"awlyc/internal/token"
)

// Options configures a single parse.
type Options struct {
	// MaxErrors stops emitting new diagnostics once reached; 0 means
	// unlimited. Parsing itself always runs to completion.
	MaxErrors uint
	Reporter  diag.Reporter
}

func (o *Options) enough(current uint) bool {
	return o.MaxErrors != 0 && current >= o.MaxErrors
}

// Parser holds the mutable state for parsing a single file. A Parser is not
// reused across files; each call to ParseFile constructs its own.
type Parser struct {
	lx       *lexer.Lexer
	b        *ast.Builder
	file     source.FileID
	opts     Options
	errCount uint
	lastSpan source.Span
	expected []token.Kind // accumulated kinds probed via at() since the last advance
}

// ParseFile parses one file's token stream into a Module. lx must already be
// positioned at the start of the file; b is the shared builder (expression
// arena + string interner) used across every module loaded together.
func ParseFile(file source.FileID, lx *lexer.Lexer, b *ast.Builder, opts Options) *ast.Module {
	p := &Parser{
		lx:       lx,
		b:        b,
		file:     file,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	return p.parseModule()
}

func (p *Parser) at(k token.Kind) bool {
	tok := p.lx.Peek()
	p.expected = append(p.expected, k)
	return tok.Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	p.expected = append(p.expected, kinds...)
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) peekKind() token.Kind {
	return p.lx.Peek().Kind
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	p.expected = p.expected[:0]
	return tok
}

// errSpan returns a sensible span for "expected X" diagnostics: the current
// token, or a zero-width span right after the last consumed token at EOF.
func (p *Parser) errSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes k or reports a diagnostic listing every kind probed at this
// position since the last successful advance.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.expectedErr(code)
	return token.Token{Kind: token.Invalid, Span: p.errSpan(), Text: p.lx.Peek().Text}, false
}

func (p *Parser) expectedErr(code diag.Code) {
	sp := p.errSpan()
	got := p.lx.Peek()
	msg := "unexpected " + got.Kind.String()
	if len(p.expected) == 1 {
		msg = "expected " + p.expected[0].String() + ", found " + got.Kind.String()
	} else if len(p.expected) > 1 {
		msg = "expected one of "
		seen := make(map[token.Kind]bool)
		first := true
		for _, k := range p.expected {
			if seen[k] {
				continue
			}
			seen[k] = true
			if !first {
				msg += ", "
			}
			msg += k.String()
			first = false
		}
		msg += ", found " + got.Kind.String()
	}
	p.report(code, diag.SevError, sp, msg)
	p.expected = p.expected[:0]
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.enough(p.errCount) {
		return
	}
	if sev == diag.SevError {
		p.errCount++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
}

// parseModule implements Module := { ImportDecl | FnDecl }* [ Expr ].
func (p *Parser) parseModule() *ast.Module {
	start := p.lx.Peek().Span
	mod := &ast.Module{File: p.file}

	for !p.at(token.EOF) {
		before := p.lx.Peek()

		switch p.peekKind() {
		case token.KwImport:
			if decl, ok := p.parseImport(); ok {
				mod.Imports = append(mod.Imports, decl)
			} else {
				p.resyncTop()
			}
		case token.KwFn:
			if fn, ok := p.parseFn(); ok {
				mod.Functions = append(mod.Functions, fn)
			} else {
				p.resyncTop()
			}
		default:
			if mod.Expr.IsValid() {
				exprID, sp, ok := p.parseExpr()
				if ok {
					p.report(diag.SynTooManyRootExprs, diag.SevError, sp,
						"a module may have at most one root expression; this one is discarded")
				} else {
					p.resyncTop()
				}
				_ = exprID
			} else {
				exprID, _, ok := p.parseExpr()
				if ok {
					mod.Expr = exprID
				} else {
					p.resyncTop()
				}
			}
		}

		if !p.at(token.EOF) {
			after := p.lx.Peek()
			if after.Kind == before.Kind && after.Span == before.Span {
				p.advance()
			}
		}
	}

	mod.Span = start.Cover(p.lx.Peek().Span)
	return mod
}

// resyncTop recovers from a failed top-level construct by skipping tokens
// until the start of the next import/fn declaration, or EOF.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		switch p.peekKind() {
		case token.KwImport, token.KwFn:
			return
		}
		p.advance()
	}
}

// parseIdent consumes an identifier and interns its text.
func (p *Parser) parseIdent(code diag.Code) (ast.Ident, bool) {
	tok, ok := p.expect(token.Ident, code)
	if !ok {
		return ast.Ident{}, false
	}
	return p.b.NewIdent(tok.Text, tok.Span), true
}
