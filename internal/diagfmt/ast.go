package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"awlyc/internal/ast"
	"awlyc/internal/source"
)

type treeNode struct {
	label    string
	children []treeNode
}

func identName(b *ast.Builder, id ast.Ident) string {
	return b.Strings.MustLookup(id.Name)
}

func buildExprNode(id ast.ExprID, b *ast.Builder) treeNode {
	if !id.IsValid() {
		return treeNode{label: "<none>"}
	}
	e := b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprNull:
		return treeNode{label: "Null"}
	case ast.ExprInt:
		return treeNode{label: fmt.Sprintf("Int(%d)", e.Int)}
	case ast.ExprFloat:
		return treeNode{label: fmt.Sprintf("Float(%g)", e.Float)}
	case ast.ExprString:
		return treeNode{label: fmt.Sprintf("String(%q)", b.Strings.MustLookup(e.Str))}
	case ast.ExprPath:
		segs := make([]string, len(e.Path))
		for i, seg := range e.Path {
			segs[i] = identName(b, seg)
		}
		return treeNode{label: "Path(" + strings.Join(segs, ".") + ")"}
	case ast.ExprArray:
		children := make([]treeNode, len(e.Elems))
		for i, elem := range e.Elems {
			children[i] = buildExprNode(elem, b)
		}
		return treeNode{label: "Array", children: children}
	case ast.ExprRecord:
		children := make([]treeNode, len(e.Fields))
		for i, field := range e.Fields {
			children[i] = treeNode{
				label:    "field " + identName(b, field.Key),
				children: []treeNode{buildExprNode(field.Value, b)},
			}
		}
		return treeNode{label: "Record", children: children}
	case ast.ExprBinop:
		return treeNode{label: "Binop(" + e.Op.String() + ")", children: []treeNode{
			buildExprNode(e.Lhs, b), buildExprNode(e.Rhs, b),
		}}
	case ast.ExprNegate:
		return treeNode{label: "Negate", children: []treeNode{buildExprNode(e.X, b)}}
	case ast.ExprCall:
		children := make([]treeNode, 0, len(e.Elems)+1)
		children = append(children, treeNode{label: "callee", children: []treeNode{buildExprNode(e.X, b)}})
		for _, arg := range e.Elems {
			children = append(children, buildExprNode(arg, b))
		}
		return treeNode{label: "Call", children: children}
	case ast.ExprErrorNode:
		return treeNode{label: "<error>"}
	default:
		return treeNode{label: "<unknown>"}
	}
}

func buildModuleNode(mod *ast.Module, b *ast.Builder) treeNode {
	var children []treeNode
	for _, imp := range mod.Imports {
		children = append(children, treeNode{label: fmt.Sprintf("import %s %q", identName(b, imp.Name), imp.Path)})
	}
	for _, fn := range mod.Functions {
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = identName(b, p.Name)
		}
		children = append(children, treeNode{
			label:    fmt.Sprintf("fn %s(%s)", identName(b, fn.Name), strings.Join(params, ", ")),
			children: []treeNode{buildExprNode(fn.Body, b)},
		})
	}
	if mod.Expr.IsValid() {
		children = append(children, treeNode{label: "root", children: []treeNode{buildExprNode(mod.Expr, b)}})
	}
	return treeNode{label: "Module", children: children}
}

func renderTree(w io.Writer, n treeNode, prefix string, isLast bool, isRoot bool) {
	if isRoot {
		fmt.Fprintln(w, n.label) //nolint:errcheck
	} else {
		connector := "├─ "
		if isLast {
			connector = "└─ "
		}
		fmt.Fprintln(w, prefix+connector+n.label) //nolint:errcheck
	}

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
	}
	for i, child := range n.children {
		renderTree(w, child, childPrefix, i == len(n.children)-1, false)
	}
}

// FormatModuleTree writes a tree-style dump of mod's imports, functions, and
// root expression.
func FormatModuleTree(w io.Writer, mod *ast.Module, b *ast.Builder) {
	renderTree(w, buildModuleNode(mod, b), "", false, true)
}

// ExprJSON is the JSON-serializable form of an AST expression node.
type ExprJSON struct {
	Kind     string         `json:"kind"`
	Span     source.Span    `json:"span"`
	Int      uint64         `json:"int,omitempty"`
	Float    float64        `json:"float,omitempty"`
	Str      string         `json:"str,omitempty"`
	Path     []string       `json:"path,omitempty"`
	Op       string         `json:"op,omitempty"`
	Elems    []ExprJSON     `json:"elems,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
	Children []ExprJSON     `json:"children,omitempty"`
}

func buildExprJSON(id ast.ExprID, b *ast.Builder) ExprJSON {
	if !id.IsValid() {
		return ExprJSON{Kind: "none"}
	}
	e := b.Exprs.Get(id)
	out := ExprJSON{Kind: e.Kind.String(), Span: e.Span}
	switch e.Kind {
	case ast.ExprInt:
		out.Int = e.Int
	case ast.ExprFloat:
		out.Float = e.Float
	case ast.ExprString:
		out.Str = b.Strings.MustLookup(e.Str)
	case ast.ExprPath:
		for _, seg := range e.Path {
			out.Path = append(out.Path, identName(b, seg))
		}
	case ast.ExprArray:
		for _, elem := range e.Elems {
			out.Elems = append(out.Elems, buildExprJSON(elem, b))
		}
	case ast.ExprRecord:
		fields := make(map[string]any, len(e.Fields))
		for _, field := range e.Fields {
			fields[identName(b, field.Key)] = buildExprJSON(field.Value, b)
		}
		out.Fields = fields
	case ast.ExprBinop:
		out.Op = e.Op.String()
		out.Children = []ExprJSON{buildExprJSON(e.Lhs, b), buildExprJSON(e.Rhs, b)}
	case ast.ExprNegate:
		out.Children = []ExprJSON{buildExprJSON(e.X, b)}
	case ast.ExprCall:
		out.Children = append([]ExprJSON{buildExprJSON(e.X, b)}, func() []ExprJSON {
			args := make([]ExprJSON, len(e.Elems))
			for i, arg := range e.Elems {
				args[i] = buildExprJSON(arg, b)
			}
			return args
		}()...)
	}
	return out
}

// ModuleJSON is the JSON-serializable form of a parsed Module.
type ModuleJSON struct {
	Imports   []string   `json:"imports"`
	Functions []string   `json:"functions"`
	Root      *ExprJSON  `json:"root,omitempty"`
}

// BuildModuleJSON builds mod's JSON representation.
func BuildModuleJSON(mod *ast.Module, b *ast.Builder) ModuleJSON {
	out := ModuleJSON{Imports: make([]string, 0, len(mod.Imports)), Functions: make([]string, 0, len(mod.Functions))}
	for _, imp := range mod.Imports {
		out.Imports = append(out.Imports, fmt.Sprintf("%s=%q", identName(b, imp.Name), imp.Path))
	}
	for _, fn := range mod.Functions {
		out.Functions = append(out.Functions, identName(b, fn.Name))
	}
	if mod.Expr.IsValid() {
		root := buildExprJSON(mod.Expr, b)
		out.Root = &root
	}
	return out
}

// FormatModuleJSON writes mod as indented JSON.
func FormatModuleJSON(w io.Writer, mod *ast.Module, b *ast.Builder) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildModuleJSON(mod, b))
}
