package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag accumulates diagnostics for one from_file invocation. Unlike the
// evaluator (which short-circuits on its first failure, spec.md §4.5), the
// lexer and parser keep going past errors and report everything they find
// into a shared Bag (spec.md §4.1 "Diagnostics are accumulated… so parsing
// and evaluation continue past errors whenever recovery is possible").
type Bag struct {
	items   []*Diagnostic
	maximum uint16
}

// NewBag creates a Bag that holds at most maximum diagnostics.
func NewBag(maximum int) *Bag {
	result, err := safecast.Conv[uint16](maximum)
	if err != nil {
		panic(fmt.Errorf("bag maximum overflow: %w", err))
	}
	return &Bag{
		items:   make([]*Diagnostic, 0, result),
		maximum: result,
	}
}

// Add appends d, respecting the bag's capacity. It returns false (and
// drops d) once the limit is reached, so a pathological input can't grow
// the bag without bound.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if len(b.items) >= int(b.maximum) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic has Severity >= SevError.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic has Severity >= SevWarning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics currently in the bag.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the bag's diagnostics. The slice aliases the bag's
// internal storage and must not be mutated by the caller.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Sort orders diagnostics by file, start, end, severity (descending), then
// code (ascending) — spec.md §8's "same inputs ⇒ identical diagnostics in
// the same order" requires a deterministic, traversal-independent order
// for rendering.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code.String() < dj.Code.String()
	})
}
