package source

import "fmt"

// Span is a contiguous byte range within one source file (spec.md §3: every
// AST node, path segment, and parameter list carries one of these). Start
// and End are byte offsets, End exclusive.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span that contains both s and other, used to
// build a parent node's span from its children's (e.g. a call's span from
// its callee and closing paren, spec.md §3 "Two spans in the same file can
// be combined when a.end ≤ b.end"). Spans from different files return s
// unchanged — CFGL has no construct whose span legitimately straddles two
// modules.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
