package eval

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/source"
)

// applyBinop implements the typed arithmetic promotion table of spec.md
// §4.3: Int/Float combine numerically (Int+Int stays Int, any Float operand
// promotes the result to Float), strings concatenate under +, and a string
// repeats under × by a non-negative Int. Every other operand combination is
// a TypeError.
func (c *ctx) applyBinop(op ast.BinOp, lhs, rhs Value, sp source.Span) (Value, bool) {
	switch {
	case lhs.Kind == KindInt && rhs.Kind == KindInt:
		return c.intBinop(op, lhs.Int, rhs.Int, sp)

	case lhs.Kind == KindFloat && rhs.Kind == KindFloat:
		return c.floatBinop(op, lhs.Float, rhs.Float), true

	case lhs.Kind == KindInt && rhs.Kind == KindFloat:
		return c.floatBinop(op, float64(lhs.Int), rhs.Float), true

	case lhs.Kind == KindFloat && rhs.Kind == KindInt:
		return c.floatBinop(op, lhs.Float, float64(rhs.Int)), true

	case lhs.Kind == KindString && rhs.Kind == KindString && op == ast.OpAdd:
		return Value{Kind: KindString, Str: norm.NFC.String(lhs.Str + rhs.Str)}, true

	case lhs.Kind == KindString && rhs.Kind == KindInt && op == ast.OpMul:
		if rhs.Int < 0 {
			c.report(diag.TypeInvalidOperands, sp, "invalid * operands: string repeat count must be non-negative")
			return Value{}, false
		}
		return Value{Kind: KindString, Str: norm.NFC.String(strings.Repeat(lhs.Str, int(rhs.Int)))}, true

	default:
		c.report(diag.TypeInvalidOperands, sp, "invalid "+op.String()+" operands: "+lhs.Kind.String()+" and "+rhs.Kind.String())
		return Value{}, false
	}
}

func (c *ctx) intBinop(op ast.BinOp, lhs, rhs int64, sp source.Span) (Value, bool) {
	switch op {
	case ast.OpAdd:
		return Value{Kind: KindInt, Int: lhs + rhs}, true
	case ast.OpSub:
		return Value{Kind: KindInt, Int: lhs - rhs}, true
	case ast.OpMul:
		return Value{Kind: KindInt, Int: lhs * rhs}, true
	case ast.OpDiv:
		if rhs == 0 {
			c.report(diag.TypeDivisionByZero, sp, "division by zero")
			return Value{}, false
		}
		return Value{Kind: KindInt, Int: lhs / rhs}, true
	default:
		c.report(diag.TypeInvalidOperands, sp, "invalid operator")
		return Value{}, false
	}
}

func (c *ctx) floatBinop(op ast.BinOp, lhs, rhs float64) Value {
	switch op {
	case ast.OpAdd:
		return Value{Kind: KindFloat, Float: lhs + rhs}
	case ast.OpSub:
		return Value{Kind: KindFloat, Float: lhs - rhs}
	case ast.OpMul:
		return Value{Kind: KindFloat, Float: lhs * rhs}
	case ast.OpDiv:
		return Value{Kind: KindFloat, Float: lhs / rhs}
	default:
		return Value{}
	}
}
