// Package eval implements the evaluator of spec.md §4.5: it lowers the
// shared AST arena to an AwlycValue tree, performing lexical substitution of
// function parameters (call-by-name), cross-module function calls, and
// typed arithmetic. Unlike the parser, which accumulates diagnostics and
// keeps going, the evaluator short-circuits on the first diagnostic and
// propagates it up (spec.md §4.5 "Failure semantics").
package eval

import (
	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/loader"
	"awlyc/internal/source"
)

// binding is one entry of a substitution vector: the parameter name is bound
// to an unevaluated argument expression, plus the caller's own module and
// substitution vector, so the argument can be re-lowered in its original
// context every time the parameter is referenced (call-by-name, spec.md §9).
type binding struct {
	name   source.StringID
	expr   ast.ExprID
	module source.FileID
	env    []binding
}

// ctx is threaded by pointer through every lowering call within a single
// Lower invocation.
type ctx struct {
	modules  *loader.Modules
	exprs    *ast.Exprs
	strings  *source.Interner
	reporter diag.Reporter
}

// Lower walks from modules.Get(entry).Expr, substituting function
// parameters and following cross-module calls through modules, and returns
// the resulting value. ok is false the first time any sub-expression fails
// to lower; a diagnostic has already been reported via reporter in that
// case and the returned Value is meaningless.
func Lower(entry source.FileID, modules *loader.Modules, b *ast.Builder, reporter diag.Reporter) (Value, bool) {
	c := &ctx{modules: modules, exprs: b.Exprs, strings: b.Strings, reporter: reporter}
	mod := modules.Get(entry)
	if mod == nil || !mod.Expr.IsValid() {
		c.report(diag.SynMissingRootExpr, source.Span{File: entry}, "missing expression: module has no root expression to evaluate")
		return Value{}, false
	}
	return c.lower(mod.Expr, entry, nil)
}

func (c *ctx) report(code diag.Code, sp source.Span, msg string) {
	if c.reporter != nil {
		c.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (c *ctx) lookup(env []binding, name source.StringID) (binding, bool) {
	for _, bnd := range env {
		if bnd.name == name {
			return bnd, true
		}
	}
	return binding{}, false
}

// lower evaluates the expression identified by id, which lives in module
// module's source and sees the substitution vector env.
func (c *ctx) lower(id ast.ExprID, module source.FileID, env []binding) (Value, bool) {
	node := c.exprs.Get(id)
	switch node.Kind {
	case ast.ExprNull:
		return Null, true

	case ast.ExprInt:
		n, err := safecast.Conv[int64](node.Int)
		if err != nil {
			c.report(diag.OverflowIntLiteral, node.Span, "integer literal out of range for a 64-bit signed integer")
			return Value{}, false
		}
		return Value{Kind: KindInt, Int: n}, true

	case ast.ExprFloat:
		return Value{Kind: KindFloat, Float: node.Float}, true

	case ast.ExprString:
		s, _ := c.strings.Lookup(node.Str)
		return Value{Kind: KindString, Str: norm.NFC.String(s)}, true

	case ast.ExprPath:
		return c.lowerPath(node, module, env)

	case ast.ExprArray:
		elems := make([]Value, 0, len(node.Elems))
		for _, elemID := range node.Elems {
			v, ok := c.lower(elemID, module, env)
			if !ok {
				return Value{}, false
			}
			elems = append(elems, v)
		}
		return Value{Kind: KindArray, Array: elems}, true

	case ast.ExprRecord:
		entries := make([]RecordEntry, 0, len(node.Fields))
		for _, field := range node.Fields {
			v, ok := c.lower(field.Value, module, env)
			if !ok {
				return Value{}, false
			}
			key, _ := c.strings.Lookup(field.Key.Name)
			entries = append(entries, RecordEntry{Key: key, Value: v})
		}
		return Value{Kind: KindRecord, Record: entries}, true

	case ast.ExprBinop:
		return c.lowerBinop(node, module, env)

	case ast.ExprNegate:
		return c.lowerNegate(node, module, env)

	case ast.ExprCall:
		return c.lowerCall(node, module, env)

	case ast.ExprErrorNode:
		// A parser-recovery placeholder; the parser already reported the
		// underlying syntax error, so evaluating it is a silent no-op
		// failure rather than a second diagnostic.
		return Value{}, false

	default:
		c.report(diag.ResUnsupportedPath, node.Span, "unsupported expression")
		return Value{}, false
	}
}

func (c *ctx) lowerPath(node *ast.Expr, module source.FileID, env []binding) (Value, bool) {
	if len(node.Path) == 1 {
		bnd, ok := c.lookup(env, node.Path[0].Name)
		if !ok {
			name, _ := c.strings.Lookup(node.Path[0].Name)
			c.report(diag.ResUnknownIdent, node.Path[0].Span, "unknown identifier: "+name)
			return Value{}, false
		}
		return c.lower(bnd.expr, bnd.module, bnd.env)
	}
	c.report(diag.ResUnsupportedPath, node.Span, "qualified paths are only supported in call position")
	return Value{}, false
}

func (c *ctx) lowerNegate(node *ast.Expr, module source.FileID, env []binding) (Value, bool) {
	v, ok := c.lower(node.X, module, env)
	if !ok {
		return Value{}, false
	}
	switch v.Kind {
	case KindInt:
		return Value{Kind: KindInt, Int: -v.Int}, true
	case KindFloat:
		return Value{Kind: KindFloat, Float: -v.Float}, true
	default:
		c.report(diag.TypeInvalidNegate, node.Span, "cannot negate a "+v.Kind.String())
		return Value{}, false
	}
}

func (c *ctx) lowerBinop(node *ast.Expr, module source.FileID, env []binding) (Value, bool) {
	lhs, ok := c.lower(node.Lhs, module, env)
	if !ok {
		return Value{}, false
	}
	rhs, ok := c.lower(node.Rhs, module, env)
	if !ok {
		return Value{}, false
	}
	return c.applyBinop(node.Op, lhs, rhs, node.Span)
}

// lowerCall resolves the callee path to a function declaration (in this
// module for a single-segment path, or in an imported module for a
// two-segment alias.fn path), checks arity, and lowers the body under a
// fresh substitution vector binding each parameter to its (unevaluated)
// argument expression in the caller's own context (spec.md §4.5 "Function
// application").
func (c *ctx) lowerCall(node *ast.Expr, module source.FileID, env []binding) (Value, bool) {
	callee := c.exprs.Get(node.X)
	if callee.Kind != ast.ExprPath {
		c.report(diag.ResBadCalleePath, callee.Span, "callee must be a function name")
		return Value{}, false
	}

	var fn *ast.FnDecl
	calleeModule := module // the module whose Functions list fn comes from
	switch len(callee.Path) {
	case 1:
		mod := c.modules.Get(module)
		found, ambiguous := c.findFn(mod, callee.Path[0].Name)
		if ambiguous {
			name, _ := c.strings.Lookup(callee.Path[0].Name)
			c.report(diag.SynDuplicateFn, callee.Path[0].Span, "ambiguous function name: "+name)
			return Value{}, false
		}
		if found == nil {
			name, _ := c.strings.Lookup(callee.Path[0].Name)
			c.report(diag.ResUnknownFn, callee.Path[0].Span, "unknown function: "+name)
			return Value{}, false
		}
		fn = found

	case 2:
		callerMod := c.modules.Get(module)
		imp, ambiguousImport := c.findImport(callerMod, callee.Path[0].Name)
		if ambiguousImport {
			alias, _ := c.strings.Lookup(callee.Path[0].Name)
			c.report(diag.SynDuplicateImport, callee.Path[0].Span, "ambiguous import alias: "+alias)
			return Value{}, false
		}
		if imp == nil || !imp.HasResolved {
			alias, _ := c.strings.Lookup(callee.Path[0].Name)
			c.report(diag.ResUnknownModule, callee.Path[0].Span, "unknown module: "+alias)
			return Value{}, false
		}
		targetMod := c.modules.Get(imp.ResolvedFile)
		found, ambiguous := c.findFn(targetMod, callee.Path[1].Name)
		if ambiguous {
			name, _ := c.strings.Lookup(callee.Path[1].Name)
			c.report(diag.SynDuplicateFn, callee.Path[1].Span, "ambiguous function name: "+name)
			return Value{}, false
		}
		if found == nil {
			name, _ := c.strings.Lookup(callee.Path[1].Name)
			c.report(diag.ResUnknownFn, callee.Path[1].Span, "unknown function: "+name)
			return Value{}, false
		}
		fn = found
		calleeModule = imp.ResolvedFile

	default:
		c.report(diag.ResBadCalleePath, callee.Span, "unknown function: paths longer than two segments are not callable")
		return Value{}, false
	}

	if len(fn.Params) != len(node.Elems) {
		c.report(diag.ResArityMismatch, node.ArgsSpan, "incorrect number of arguments")
		return Value{}, false
	}

	// Every argument is bound unevaluated, tagged with the *caller's*
	// module and substitution vector (module, env): call-by-name re-lowers
	// it in that context each time the callee's body references the
	// parameter (spec.md §4.5, §9).
	newEnv := make([]binding, len(fn.Params))
	for i, param := range fn.Params {
		newEnv[i] = binding{name: param.Name.Name, expr: node.Elems[i], module: module, env: env}
	}

	return c.lower(fn.Body, calleeModule, newEnv)
}

func (c *ctx) findFn(mod *ast.Module, name source.StringID) (found *ast.FnDecl, ambiguous bool) {
	if mod == nil {
		return nil, false
	}
	for i := range mod.Functions {
		if mod.Functions[i].Name.Name == name {
			if found != nil {
				return found, true
			}
			found = &mod.Functions[i]
		}
	}
	return found, false
}

func (c *ctx) findImport(mod *ast.Module, alias source.StringID) (found *ast.ImportDecl, ambiguous bool) {
	if mod == nil {
		return nil, false
	}
	for i := range mod.Imports {
		if mod.Imports[i].Name.Name == alias {
			if found != nil {
				return found, true
			}
			found = &mod.Imports[i]
		}
	}
	return found, false
}
