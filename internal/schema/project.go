package schema

import (
	"math"

	"awlyc/internal/diag"
	"awlyc/internal/eval"
	"awlyc/internal/source"
)

// Project walks v against s, reporting through reporter every mismatch
// spec.md §4.6 names (type mismatch, unknown/missing record fields,
// out-of-range integer narrowing) and returning the projected value as one
// of bool/int64/float64/string/nil/[]any/map[string]any. Since eval.Value
// carries no per-node span (the value tree has already been folded), every
// diagnostic here is anchored at root, the span of the expression that
// produced v.
//
// A Value with no native bool (spec.md's AwlycValue has no Bool variant) is
// accepted into a KindBool schema only when it is an Int of exactly 0 or 1;
// this lets record fields written as `flag: 1` decode into a Go bool field
// without CFGL needing boolean literals of its own.
func Project(v eval.Value, s *Schema, root source.Span, reporter diag.Reporter) (any, bool) {
	report := func(code diag.Code, msg string) (any, bool) {
		if reporter != nil {
			reporter.Report(code, diag.SevError, root, msg, nil)
		}
		return nil, false
	}

	switch s.Kind {
	case KindUnit:
		if v.Kind != eval.KindNull {
			return report(diag.TypeProjectMismatch, "expected unit, found "+v.Kind.String())
		}
		return nil, true

	case KindOption:
		if v.Kind == eval.KindNull {
			return nil, true
		}
		return Project(v, s.Elem, root, reporter)

	case KindBool:
		if v.Kind == eval.KindInt && (v.Int == 0 || v.Int == 1) {
			return v.Int != 0, true
		}
		return report(diag.TypeProjectMismatch, "expected bool, found "+v.Kind.String())

	case KindInt:
		if v.Kind != eval.KindInt {
			return report(diag.TypeProjectMismatch, "expected int, found "+v.Kind.String())
		}
		if !fitsSignedBits(v.Int, s.IntBits) {
			return report(diag.OverflowProjectInt, "integer value does not fit the target width")
		}
		return v.Int, true

	case KindFloat:
		var f float64
		switch v.Kind {
		case eval.KindFloat:
			f = v.Float
		case eval.KindInt:
			f = float64(v.Int)
		default:
			return report(diag.TypeProjectMismatch, "expected float, found "+v.Kind.String())
		}
		if s.FloatBits == 32 && (f > math.MaxFloat32 || f < -math.MaxFloat32) {
			return report(diag.OverflowProjectInt, "float value does not fit a 32-bit float")
		}
		return f, true

	case KindString:
		if v.Kind != eval.KindString {
			return report(diag.TypeProjectMismatch, "expected string, found "+v.Kind.String())
		}
		return v.Str, true

	case KindSequence:
		if v.Kind != eval.KindArray {
			return report(diag.TypeProjectMismatch, "expected sequence, found "+v.Kind.String())
		}
		out := make([]any, 0, len(v.Array))
		for _, elem := range v.Array {
			projected, ok := Project(elem, s.Elem, root, reporter)
			if !ok {
				return nil, false
			}
			out = append(out, projected)
		}
		return out, true

	case KindMap:
		if v.Kind != eval.KindRecord {
			return report(diag.TypeProjectMismatch, "expected map, found "+v.Kind.String())
		}
		out := make(map[string]any, len(v.Record))
		for _, entry := range v.Record {
			projected, ok := Project(entry.Value, s.Elem, root, reporter)
			if !ok {
				return nil, false
			}
			out[entry.Key] = projected
		}
		return out, true

	case KindRecord:
		if v.Kind != eval.KindRecord {
			return report(diag.TypeProjectMismatch, "expected record, found "+v.Kind.String())
		}
		out := make(map[string]any, len(s.Fields))
		seen := make(map[string]bool, len(v.Record))
		for _, entry := range v.Record {
			seen[entry.Key] = true
			field, ok := s.findField(entry.Key)
			if !ok {
				return report(diag.TypeUnknownField, "unknown field "+entry.Key)
			}
			projected, ok := Project(entry.Value, field.Type, root, reporter)
			if !ok {
				return nil, false
			}
			out[entry.Key] = projected
		}
		for _, field := range s.Fields {
			if seen[field.Name] {
				continue
			}
			if field.Type.Kind == KindOption {
				out[field.Name] = nil
				continue
			}
			return report(diag.TypeMissingField, "missing field "+field.Name)
		}
		return out, true

	default:
		return report(diag.TypeProjectMismatch, "unknown schema kind")
	}
}

func fitsSignedBits(v int64, bits uint8) bool {
	switch bits {
	case 0, 64:
		return true
	case 8:
		return v >= math.MinInt8 && v <= math.MaxInt8
	case 16:
		return v >= math.MinInt16 && v <= math.MaxInt16
	case 32:
		return v >= math.MinInt32 && v <= math.MaxInt32
	default:
		return true
	}
}

// Dump converts v directly to its natural any representation
// (bool/int64/float64/string/nil/[]any/map[string]any) with no target Schema
// and therefore no mismatch diagnostics: every eval.Kind has exactly one
// shape it can dump to. Used by cmd/awlyc's `eval` subcommand, which has no
// caller-supplied schema to project against.
func Dump(v eval.Value) any {
	switch v.Kind {
	case eval.KindNull:
		return nil
	case eval.KindInt:
		return v.Int
	case eval.KindFloat:
		return v.Float
	case eval.KindString:
		return v.Str
	case eval.KindArray:
		out := make([]any, len(v.Array))
		for i, elem := range v.Array {
			out[i] = Dump(elem)
		}
		return out
	case eval.KindRecord:
		out := make(map[string]any, len(v.Record))
		for _, entry := range v.Record {
			out[entry.Key] = Dump(entry.Value)
		}
		return out
	default:
		return nil
	}
}

// ProjectValue is Project's ergonomic entry point for callers that do not
// want to supply their own Reporter: it collects diagnostics into a fresh
// Bag and returns it alongside the projected value, so exploratory or
// REPL-style callers get *something* printable even without a
// caller-supplied Go struct type. The CLI's eval subcommand uses Dump.
func ProjectValue(v eval.Value, s *Schema, root source.Span) (any, *diag.Bag) {
	bag := diag.NewBag(1000)
	projected, _ := Project(v, s, root, diag.BagReporter{Bag: bag})
	return projected, bag
}
