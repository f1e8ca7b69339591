package ast

import (
	"awlyc/internal/source"
)

// ImportDecl binds an alias to another module's file path, relative to the
// directory of the file containing the import.
type ImportDecl struct {
	Name Ident  // alias used as the first segment of a qualified call path
	Path string // raw string literal contents, unresolved
	Span source.Span
	// ResolvedFile is filled in by the module loader once the import's path
	// has been canonicalized and successfully loaded; NoFileID until then.
	ResolvedFile source.FileID
	HasResolved  bool
}

// FnParam is a single untyped, unbound function parameter.
type FnParam struct {
	Name Ident
}

// FnDecl is a pure, by-name function. Functions never close over anything
// outside their own parameter list.
type FnDecl struct {
	Name       Ident
	ParamsSpan source.Span
	Params     []FnParam
	Body       ExprID
	Span       source.Span
}

// ParamNames returns the parameter identifiers in declaration order.
func (f *FnDecl) ParamNames() []Ident {
	names := make([]Ident, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return names
}

// Module is the parsed contents of one source file: its imports, its
// function declarations, and at most one root expression.
type Module struct {
	File      source.FileID
	Imports   []ImportDecl
	Functions []FnDecl
	Expr      ExprID // NoExprID if the file declares no root expression
	Span      source.Span
}

// FindFn returns the declaration for name, or nil if the module declares no
// function by that name. Duplicate names are a lowering-time diagnostic, not
// a parse-time one; this returns the first match.
func (m *Module) FindFn(name source.StringID) *FnDecl {
	for i := range m.Functions {
		if m.Functions[i].Name.Name == name {
			return &m.Functions[i]
		}
	}
	return nil
}

// FindImport returns the import declaration aliased to name, or nil.
func (m *Module) FindImport(name source.StringID) *ImportDecl {
	for i := range m.Imports {
		if m.Imports[i].Name.Name == name {
			return &m.Imports[i]
		}
	}
	return nil
}
