// Package loader implements the multi-file module loader of spec.md §4.4: it
// canonicalizes the entry path, reads and parses it and every file it
// transitively imports into the shared AST arena, and dedups by canonical
// file id so that import cycles terminate.
package loader

import (
	"path/filepath"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/lexer"
	"awlyc/internal/parser"
	"awlyc/internal/source"
)

// Modules is the table the evaluator walks: canonical file id -> parsed
// module. A slot is written before its imports are followed, which is what
// makes a cycle (A imports B imports A) terminate rather than recurse
// forever (spec.md §4.4, §8 "Import cycle").
type Modules struct {
	FileSet *source.FileSet
	byFile  map[source.FileID]*ast.Module
}

func newModules(fs *source.FileSet) *Modules {
	return &Modules{FileSet: fs, byFile: make(map[source.FileID]*ast.Module)}
}

// Get returns the module loaded for id, or nil.
func (m *Modules) Get(id source.FileID) *ast.Module {
	return m.byFile[id]
}

// Options configures a Load call.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
}

// Load reads entryPath and every file it transitively imports, parsing each
// into a single Module stored in the returned table, keyed by canonical file
// id. The *ast.Builder carries the single expression arena shared across
// every module. An I/O failure on any file is fatal (spec.md §4.1, §4.4) and
// reported as diag.LoadReadFailed or diag.LoadCanonicalize; the returned
// table is still valid for whatever modules were loaded before the failure.
// The returned FileID identifies the entry module within Modules.
func Load(entryPath string, b *ast.Builder, opts Options) (*Modules, source.FileID, error) {
	fs := source.NewFileSet()
	modules := newModules(fs)

	l := &loader{modules: modules, b: b, opts: opts}
	if err := l.load(entryPath); err != nil {
		return modules, 0, err
	}

	canon, err := source.AbsolutePath(entryPath)
	if err != nil {
		return modules, 0, err
	}
	entryID, _ := fs.GetLatest(canon)
	return modules, entryID, nil
}

type loader struct {
	modules *Modules
	b       *ast.Builder
	opts    Options
}

// load canonicalizes path, reads and parses it if not already present, then
// recurses into its imports, resolved relative to its own directory.
func (l *loader) load(path string) error {
	canon, err := source.AbsolutePath(path)
	if err != nil {
		l.report(diag.LoadCanonicalize, path, "cannot canonicalize path: "+err.Error())
		return err
	}

	if id, ok := l.modules.FileSet.GetLatest(canon); ok {
		if _, present := l.modules.byFile[id]; present {
			return nil
		}
	}

	id, err := l.modules.FileSet.Load(canon)
	if err != nil {
		l.report(diag.LoadReadFailed, canon, "cannot read file: "+err.Error())
		return err
	}

	// Write the slot before recursing into imports: a later import that
	// resolves back to this same canonical path sees it already present
	// and stops, instead of re-parsing and recursing forever.
	mod := &ast.Module{File: id}
	l.modules.byFile[id] = mod

	file := l.modules.FileSet.Get(id)
	lx := lexer.New(file, lexer.Options{Reporter: l.opts.Reporter})
	parsed := parser.ParseFile(id, lx, l.b, parser.Options{Reporter: l.opts.Reporter, MaxErrors: l.opts.MaxErrors})
	*mod = *parsed
	mod.File = id

	dir := filepath.Dir(canon)
	for i := range mod.Imports {
		depPath := mod.Imports[i].Path
		if !filepath.IsAbs(depPath) {
			depPath = filepath.Join(dir, depPath)
		}
		if err := l.load(depPath); err != nil {
			// I/O failure is the one fatal diagnostic class (spec.md §4.1):
			// it aborts the whole from-file operation, not just this import.
			return err
		}
		depCanon, err := source.AbsolutePath(depPath)
		if err != nil {
			return err
		}
		if depID, ok := l.modules.FileSet.GetLatest(depCanon); ok {
			mod.Imports[i].ResolvedFile = depID
			mod.Imports[i].HasResolved = true
		}
	}
	return nil
}

func (l *loader) report(code diag.Code, path, msg string) {
	if l.opts.Reporter == nil {
		return
	}
	l.opts.Reporter.Report(code, diag.SevError, source.Span{}, path+": "+msg, nil)
}
