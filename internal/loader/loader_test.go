package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/loader"
	"awlyc/internal/source"
)

type collectReporter struct {
	diags []diag.Diagnostic
}

func (r *collectReporter) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	r.diags = append(r.diags, diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: sp, Notes: notes})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResolvesImportsRelativeToImportingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.awlyc", `fn h(s) { s + "!" }`)
	entry := writeFile(t, dir, "entry.awlyc", `
import util "util.awlyc"
util.h("ok")
`)

	rep := &collectReporter{}
	b := ast.NewBuilder(32, source.NewInterner())
	modules, entryID, err := loader.Load(entry, b, loader.Options{Reporter: rep})
	require.NoError(t, err)
	require.Empty(t, rep.diags)

	entryMod := modules.Get(entryID)
	require.NotNil(t, entryMod)
	require.Len(t, entryMod.Imports, 1)

	utilAlias := b.Strings.MustLookup(entryMod.Imports[0].Name.Name)
	require.Equal(t, "util", utilAlias)
}

func TestLoadImportCycleParsesEachFileOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.awlyc", `import b "b.awlyc"
1`)
	entry := writeFile(t, dir, "b.awlyc", `import a "a.awlyc"
2`)

	// a imports b, b imports a: load starting from b.
	rep := &collectReporter{}
	b := ast.NewBuilder(32, source.NewInterner())
	modules, entryID, err := loader.Load(entry, b, loader.Options{Reporter: rep})
	require.NoError(t, err)

	entryMod := modules.Get(entryID)
	require.NotNil(t, entryMod)
	require.True(t, entryMod.Expr.IsValid())
	// Each file's only expression is its root Int; parsing either file a
	// second time would allocate more nodes.
	require.Equal(t, uint32(2), b.Exprs.Len())
}

func TestLoadFatalOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "missing.awlyc")

	rep := &collectReporter{}
	b := ast.NewBuilder(32, source.NewInterner())
	_, _, err := loader.Load(entry, b, loader.Options{Reporter: rep})
	require.Error(t, err)
	require.NotEmpty(t, rep.diags)
	require.Equal(t, diag.LoadReadFailed, rep.diags[0].Code)
}
