package ast

import (
	"awlyc/internal/source"
)

// ExprKind discriminates the variants of the CFGL expression grammar.
type ExprKind uint8

const (
	ExprNull ExprKind = iota
	ExprInt
	ExprFloat
	ExprString
	ExprPath
	ExprArray
	ExprRecord
	ExprBinop
	ExprNegate
	ExprCall
	// ExprErrorNode is the placeholder the parser emits when recovering from a
	// syntax error; it carries no meaningful payload beyond its span.
	ExprErrorNode
)

func (k ExprKind) String() string {
	switch k {
	case ExprNull:
		return "null"
	case ExprInt:
		return "int"
	case ExprFloat:
		return "float"
	case ExprString:
		return "string"
	case ExprPath:
		return "path"
	case ExprArray:
		return "array"
	case ExprRecord:
		return "record"
	case ExprBinop:
		return "binop"
	case ExprNegate:
		return "negate"
	case ExprCall:
		return "call"
	case ExprErrorNode:
		return "error"
	default:
		return "unknown"
	}
}

// BinOp enumerates the four arithmetic binary operators.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Ident is a single spanned path segment.
type Ident struct {
	Name source.StringID
	Span source.Span
}

// RecordField is one `key: value` pair of a Record literal. Shorthand fields
// (`{ foo }`) desugar to Value being a single-segment Path pointing at the
// same span as Key.
type RecordField struct {
	Key   Ident
	Value ExprID
}

// Expr is a single node in the shared arena. Only the fields relevant to Kind
// are meaningful; the rest are zero. A flat struct (rather than one arena per
// kind) keeps traversal code simple for a grammar this small.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// Int holds the raw lexed magnitude. Values in [2^63, 2^64) are
	// representable here; narrowing to i64 (and the resulting overflow
	// diagnostic, if any) happens at evaluation time, not here.
	Int    uint64
	Float  float64
	Str    source.StringID
	Path   []Ident
	Elems  []ExprID      // Array elements, or Call arguments
	Fields []RecordField // Record fields

	Op  BinOp  // Binop
	Lhs ExprID // Binop
	Rhs ExprID // Binop
	X   ExprID // Negate operand, or Call callee

	ArgsSpan source.Span // Call: span covering "(args)"
}

// Exprs owns the single arena of expression nodes shared across every module
// loaded within one from-file invocation.
type Exprs struct {
	arena *Arena[Expr]
}

// NewExprs creates an empty shared expression arena.
func NewExprs(capHint uint) *Exprs {
	return &Exprs{arena: NewArena[Expr](capHint)}
}

// Get returns the node at id.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.arena.Get(uint32(id))
}

// Len returns the number of allocated nodes.
func (e *Exprs) Len() uint32 {
	return e.arena.Len()
}

func (e *Exprs) alloc(expr Expr) ExprID {
	return ExprID(e.arena.Allocate(expr))
}

// NewNull allocates an Expr::Null node.
func (e *Exprs) NewNull(sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprNull, Span: sp})
}

// NewInt allocates an Expr::Int node from a raw (unsigned) lexed magnitude.
func (e *Exprs) NewInt(v uint64, sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprInt, Span: sp, Int: v})
}

// NewFloat allocates an Expr::Float node.
func (e *Exprs) NewFloat(v float64, sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprFloat, Span: sp, Float: v})
}

// NewString allocates an Expr::String node referencing an interned string.
func (e *Exprs) NewString(s source.StringID, sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprString, Span: sp, Str: s})
}

// NewPath allocates an Expr::Path node from 1 or more spanned segments.
func (e *Exprs) NewPath(segs []Ident, sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprPath, Span: sp, Path: segs})
}

// NewArray allocates an Expr::Array node.
func (e *Exprs) NewArray(elems []ExprID, sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprArray, Span: sp, Elems: elems})
}

// NewRecord allocates an Expr::Record node. Field order is preserved as
// written; callers should not rely on it as semantically meaningful.
func (e *Exprs) NewRecord(fields []RecordField, sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprRecord, Span: sp, Fields: fields})
}

// NewBinop allocates an Expr::Binop node.
func (e *Exprs) NewBinop(op BinOp, lhs, rhs ExprID, sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprBinop, Span: sp, Op: op, Lhs: lhs, Rhs: rhs})
}

// NewNegate allocates an Expr::Negate node.
func (e *Exprs) NewNegate(operand ExprID, sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprNegate, Span: sp, X: operand})
}

// NewCall allocates an Expr::Call node. argsSpan covers the parenthesized
// argument list, used for arity-mismatch diagnostics.
func (e *Exprs) NewCall(callee ExprID, args []ExprID, argsSpan, sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprCall, Span: sp, X: callee, Elems: args, ArgsSpan: argsSpan})
}

// NewErrorNode allocates an Expr::Error placeholder covering a recovery span.
func (e *Exprs) NewErrorNode(sp source.Span) ExprID {
	return e.alloc(Expr{Kind: ExprErrorNode, Span: sp})
}
