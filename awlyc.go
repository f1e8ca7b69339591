// Package awlyc is the library surface of spec.md §6: given an entry file
// path, it parses the file and its transitive imports, evaluates the root
// expression to a value tree, and projects that tree into a caller-supplied
// target schema. The lexer, parser, module loader, evaluator, and
// projector each live in their own internal/ package; this file is the thin
// facade that wires them together the way spec.md's external interfaces
// describe.
package awlyc

import (
	"fmt"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/eval"
	"awlyc/internal/lexer"
	"awlyc/internal/loader"
	"awlyc/internal/parser"
	"awlyc/internal/schema"
	"awlyc/internal/source"
)

// Diagnostic, Value, and Schema re-export the internal types callers need to
// name in their own code; the packages implementing them stay internal so
// nothing outside this module can depend on their layout directly.
type (
	Diagnostic = diag.Diagnostic
	Value      = eval.Value
	Schema     = schema.Schema
)

// maxDiagnostics bounds a single from-file invocation's diagnostic bag; it
// is generous enough that no real CFGL program should ever hit it.
const maxDiagnostics = 10000

// ParseResult is the pure, filesystem-free result of Parse: spec.md §6's
// `parse(text, arena, file_id) → (Module, [Diagnostic])`.
type ParseResult struct {
	Module      *ast.Module
	Builder     *ast.Builder
	FileSet     *source.FileSet
	Diagnostics []Diagnostic
}

// Parse parses a single file's text in isolation, without touching the
// filesystem and without following its imports. name is used only to label
// spans and diagnostics.
func Parse(name, text string) ParseResult {
	fs := source.NewFileSet()
	fid := fs.AddVirtual(name, []byte(text))
	file := fs.Get(fid)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(64, source.NewInterner())
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	mod := parser.ParseFile(fid, lx, b, parser.Options{Reporter: reporter})

	bag.Sort()
	return ParseResult{Module: mod, Builder: b, FileSet: fs, Diagnostics: diagnostics(bag)}
}

// LowerResult is the outcome of loading and evaluating an entry file.
type LowerResult struct {
	Value       Value
	Diagnostics []Diagnostic
	Modules     *loader.Modules
	Builder     *ast.Builder
	Entry       source.FileID
}

// Lower loads entryPath and every file it transitively imports, then
// evaluates its root expression: spec.md §6's
// `lower(entry_path, modules, arena) → Result<AwlycValue, Diagnostic>`. An
// I/O failure reading an import (spec.md §4.1) returns the loader's error;
// a failed evaluation returns an error naming the first error diagnostic.
// In both cases the collected diagnostics are in result.Diagnostics.
func Lower(entryPath string) (LowerResult, error) {
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(256, source.NewInterner())

	modules, entryID, err := loader.Load(entryPath, b, loader.Options{Reporter: reporter})
	if err != nil {
		bag.Sort()
		return LowerResult{Diagnostics: diagnostics(bag), Modules: modules, Builder: b, Entry: entryID}, err
	}

	val, ok := eval.Lower(entryID, modules, b, reporter)
	bag.Sort()
	result := LowerResult{Value: val, Diagnostics: diagnostics(bag), Modules: modules, Builder: b, Entry: entryID}
	if !ok {
		return result, fmt.Errorf("awlyc: evaluation failed: %s", firstError(bag))
	}
	return result, nil
}

// FromFile parses entryPath and its transitive imports, evaluates the root
// expression, and projects the result into T against s (spec.md §6's
// `from_file<T>(path) → T`). Every diagnostic the pipeline produced is
// still returned even on success, so callers can surface warnings.
func FromFile[T any](entryPath string, s *Schema) (T, []Diagnostic, error) {
	var zero T
	result, err := Lower(entryPath)
	if err != nil {
		return zero, result.Diagnostics, err
	}
	return decode[T](result.Value, s, result.Diagnostics)
}

// Decode projects an already-evaluated Value into T against s, for callers
// who already ran Lower themselves (e.g. to inspect diagnostics first).
func Decode[T any](v Value, s *Schema) (T, error) {
	out, _, err := decode[T](v, s, nil)
	return out, err
}

func decode[T any](v Value, s *Schema, prior []Diagnostic) (T, []Diagnostic, error) {
	out, bag := schema.Into[T](v, s, source.Span{})
	all := append(append([]Diagnostic(nil), prior...), diagnostics(bag)...)
	if bag.HasErrors() {
		var zero T
		return zero, all, fmt.Errorf("awlyc: projection failed: %s", firstError(bag))
	}
	return out, all, nil
}

func diagnostics(bag *diag.Bag) []Diagnostic {
	items := bag.Items()
	out := make([]Diagnostic, len(items))
	for i, d := range items {
		out[i] = *d
	}
	return out
}

func firstError(bag *diag.Bag) string {
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			return d.Message
		}
	}
	return "no diagnostic recorded"
}
