package ast

import (
	"awlyc/internal/source"
)

// Builder bundles the shared expression arena with the string interner used
// to hold identifier and string-literal text. One Builder is created per
// from-file invocation and shared by the parser across every module it
// parses, so that Expr::Path segments and Expr::Call callees across files
// resolve through the same StringID space.
type Builder struct {
	Exprs   *Exprs
	Strings *source.Interner
}

// NewBuilder creates a Builder with a fresh shared expression arena sized by
// capHint (a rough estimate of total expression-node count across all
// modules to be parsed).
func NewBuilder(capHint uint, strings *source.Interner) *Builder {
	return &Builder{
		Exprs:   NewExprs(capHint),
		Strings: strings,
	}
}

// Intern is a convenience forward to the shared interner.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// NewIdent interns name and pairs it with sp.
func (b *Builder) NewIdent(name string, sp source.Span) Ident {
	return Ident{Name: b.Intern(name), Span: sp}
}
