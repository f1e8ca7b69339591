// Package token defines the lexical token kinds produced by internal/lexer.
// Invariants:
//   - Token.Text is a copy of the source bytes the token covers.
//   - Token.Span matches Text exactly (Begin..End).
//   - Comments carry no token kind; the lexer skips them rather than
//     emitting them, so the parser never observes Comment tokens.
package token
