package lexer

import (
	"awlyc/internal/diag"
	"awlyc/internal/token"
)

// scanNumber scans IntLit and FloatLit tokens.
//
// Integers: decimal, 0x (hex), or 0b (binary), with optional '_' grouping
// separators. Floats: d+.d+(_d+)* — no exponent form.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			for {
				b := lx.cursor.Peek()
				if b == '0' || b == '1' || b == '_' {
					lx.cursor.Bump()
					continue
				}
				break
			}
			return lx.emitNumber(start, kind)
		case 'x', 'X':
			lx.cursor.Bump()
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			return lx.emitNumber(start, kind)
		default:
			// bare "0" with no base prefix: fall through into the shared
			// decimal-digit loop below so "0", "012", "0_5" lex as one
			// IntLit instead of stopping after the leading zero.
		}
	}
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
			lx.cursor.Bump() // '.'
			kind = token.FloatLit
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		} else if ok && b0 == '.' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after '.'")
			lx.cursor.Bump()
			return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start), Text: string(lx.file.Content[sp.Start:lx.cursor.Off])}
		}
	}

	return lx.emitNumber(start, kind)
}

func (lx *Lexer) emitNumber(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
