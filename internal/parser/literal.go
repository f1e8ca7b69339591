package parser

import (
	"strconv"
	"strings"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/source"
)

// parseIntLit implements the IntLit production: decimal, 0x (hex), or 0b
// (binary), with optional '_' grouping separators (spec.md §3, §4.3). The
// raw magnitude is parsed as u64; narrowing to i64 is deferred to
// evaluation time.
func (p *Parser) parseIntLit() (ast.ExprID, source.Span, bool) {
	tok := p.advance()
	cleaned := strings.ReplaceAll(tok.Text, "_", "")
	base, digits := 10, cleaned
	if len(cleaned) >= 2 && cleaned[0] == '0' {
		switch cleaned[1] {
		case 'x', 'X':
			base, digits = 16, cleaned[2:]
		case 'b', 'B':
			base, digits = 2, cleaned[2:]
		}
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		p.report(diag.SynIntLiteralOverflow, diag.SevError, tok.Span,
			"integer literal out of range for a 64-bit value")
		return p.b.Exprs.NewErrorNode(tok.Span), tok.Span, false
	}
	return p.b.Exprs.NewInt(v, tok.Span), tok.Span, true
}

// parseFloatLit implements FloatLit := d+.d+(_d+)* — no exponent form.
func (p *Parser) parseFloatLit() (ast.ExprID, source.Span, bool) {
	tok := p.advance()
	cleaned := strings.ReplaceAll(tok.Text, "_", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		p.report(diag.SynIntLiteralOverflow, diag.SevError, tok.Span, "malformed float literal")
		return p.b.Exprs.NewErrorNode(tok.Span), tok.Span, false
	}
	return p.b.Exprs.NewFloat(v, tok.Span), tok.Span, true
}

// parseStringLit strips quotes and un-escapes the token text, interning the
// result.
func (p *Parser) parseStringLit() (ast.ExprID, source.Span, bool) {
	tok := p.advance()
	s := unquoteString(tok.Text)
	return p.b.Exprs.NewString(p.b.Intern(s), tok.Span), tok.Span, true
}
