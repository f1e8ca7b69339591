package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/lexer"
	"awlyc/internal/parser"
	"awlyc/internal/source"
)

type collectReporter struct {
	diags []diag.Diagnostic
}

func (r *collectReporter) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	r.diags = append(r.diags, diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: sp, Notes: notes})
}

func parseSource(t *testing.T, src string) (*ast.Module, *ast.Builder, *collectReporter) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.awlyc", []byte(src))
	file := fs.Get(fid)

	reporter := &collectReporter{}
	b := ast.NewBuilder(32, source.NewInterner())
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	mod := parser.ParseFile(fid, lx, b, parser.Options{Reporter: reporter})
	return mod, b, reporter
}

func TestParseImportAndFn(t *testing.T) {
	mod, b, rep := parseSource(t, `
import strings "util.awlyc"

fn page(title, url) {
  { title: title, link: url, v: 1.0 + 0.5 }
}

page("Are We Lang Yet", strings.host("x"))
`)

	require.Empty(t, rep.diags, "expected no diagnostics, got %v", rep.diags)
	require.Len(t, mod.Imports, 1)
	assert.Equal(t, "util.awlyc", mod.Imports[0].Path)
	assert.Equal(t, "strings", b.Strings.MustLookup(mod.Imports[0].Name.Name))

	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.Equal(t, "page", b.Strings.MustLookup(fn.Name.Name))
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "title", b.Strings.MustLookup(fn.Params[0].Name.Name))
	assert.Equal(t, "url", b.Strings.MustLookup(fn.Params[1].Name.Name))

	require.True(t, mod.Expr.IsValid())
	call := b.Exprs.Get(mod.Expr)
	require.Equal(t, ast.ExprCall, call.Kind)
	require.Len(t, call.Elems, 2)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3): outer node is Add.
	mod, b, rep := parseSource(t, "1 + 2 * 3")
	require.Empty(t, rep.diags)
	require.True(t, mod.Expr.IsValid())

	root := b.Exprs.Get(mod.Expr)
	require.Equal(t, ast.ExprBinop, root.Kind)
	assert.Equal(t, ast.OpAdd, root.Op)

	rhs := b.Exprs.Get(root.Rhs)
	require.Equal(t, ast.ExprBinop, rhs.Kind)
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestParseLeftAssociativity(t *testing.T) {
	// 1 - 2 - 3 must parse as (1 - 2) - 3.
	mod, b, rep := parseSource(t, "1 - 2 - 3")
	require.Empty(t, rep.diags)

	root := b.Exprs.Get(mod.Expr)
	require.Equal(t, ast.ExprBinop, root.Kind)
	assert.Equal(t, ast.OpSub, root.Op)

	lhs := b.Exprs.Get(root.Lhs)
	require.Equal(t, ast.ExprBinop, lhs.Kind)
	assert.Equal(t, ast.OpSub, lhs.Op)

	rhsInt := b.Exprs.Get(root.Rhs)
	assert.Equal(t, ast.ExprInt, rhsInt.Kind)
	assert.Equal(t, uint64(3), rhsInt.Int)
}

func TestParseUnaryBindsTighterThanBinary(t *testing.T) {
	// -1 * 2 is (-1) * 2, not -(1 * 2).
	mod, b, rep := parseSource(t, "-1 * 2")
	require.Empty(t, rep.diags)

	root := b.Exprs.Get(mod.Expr)
	require.Equal(t, ast.ExprBinop, root.Kind)
	assert.Equal(t, ast.OpMul, root.Op)

	lhs := b.Exprs.Get(root.Lhs)
	assert.Equal(t, ast.ExprNegate, lhs.Kind)
}

func TestParseCallBindsTighterThanUnary(t *testing.T) {
	// -f(x) is Negate(Call(f, x)).
	mod, b, rep := parseSource(t, "-f(x)")
	require.Empty(t, rep.diags)

	root := b.Exprs.Get(mod.Expr)
	require.Equal(t, ast.ExprNegate, root.Kind)

	inner := b.Exprs.Get(root.X)
	require.Equal(t, ast.ExprCall, inner.Kind)
}

func TestParseRecordShorthand(t *testing.T) {
	mod, b, rep := parseSource(t, "{ foo, bar: 3 }")
	require.Empty(t, rep.diags)

	rec := b.Exprs.Get(mod.Expr)
	require.Equal(t, ast.ExprRecord, rec.Kind)
	require.Len(t, rec.Fields, 2)

	fooVal := b.Exprs.Get(rec.Fields[0].Value)
	require.Equal(t, ast.ExprPath, fooVal.Kind)
	require.Len(t, fooVal.Path, 1)
	assert.Equal(t, rec.Fields[0].Key.Span, fooVal.Path[0].Span)

	barVal := b.Exprs.Get(rec.Fields[1].Value)
	assert.Equal(t, ast.ExprInt, barVal.Kind)
}

func TestParseArrayLiteral(t *testing.T) {
	mod, b, rep := parseSource(t, "[1, 2, 3]")
	require.Empty(t, rep.diags)

	arr := b.Exprs.Get(mod.Expr)
	require.Equal(t, ast.ExprArray, arr.Kind)
	require.Len(t, arr.Elems, 3)
}

func TestParseIntLiteralRadixAndUnderscores(t *testing.T) {
	mod, b, rep := parseSource(t, "0x1_0")
	require.Empty(t, rep.diags)
	n := b.Exprs.Get(mod.Expr)
	require.Equal(t, ast.ExprInt, n.Kind)
	assert.Equal(t, uint64(16), n.Int)
}

func TestParseFloatLiteral(t *testing.T) {
	mod, b, rep := parseSource(t, "1.5")
	require.Empty(t, rep.diags)
	n := b.Exprs.Get(mod.Expr)
	require.Equal(t, ast.ExprFloat, n.Kind)
	assert.InDelta(t, 1.5, n.Float, 0)
}

func TestParseSecondRootExprIsDiagnosedAndDiscarded(t *testing.T) {
	mod, _, rep := parseSource(t, "1 2")
	require.Len(t, rep.diags, 1)
	assert.Equal(t, diag.SynTooManyRootExprs, rep.diags[0].Code)
	require.True(t, mod.Expr.IsValid())
}

func TestParseEmptyFileHasNoRootExpr(t *testing.T) {
	mod, _, rep := parseSource(t, "")
	require.Empty(t, rep.diags)
	assert.False(t, mod.Expr.IsValid())
}

func TestParseUnclosedCallRecovers(t *testing.T) {
	mod, b, rep := parseSource(t, "f(1, 2\nfn g() { 1 }")
	require.NotEmpty(t, rep.diags)
	// Despite the unterminated call, the following function is still parsed.
	require.Len(t, mod.Functions, 1)
	assert.Equal(t, "g", b.Strings.MustLookup(mod.Functions[0].Name.Name))
}

func TestParseImportRequiresStringPath(t *testing.T) {
	_, _, rep := parseSource(t, `import strings 42`)
	require.NotEmpty(t, rep.diags)
	assert.Equal(t, diag.SynExpectToken, rep.diags[0].Code)
}
