package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a generic typed arena: a single owning slice indexed by stable
// 1-based integer ids. spec.md §3 requires exactly one Expr arena shared
// across every module loaded in a from_file call ("all expression nodes
// live in a single arena shared across all modules"), so Exprs embeds one
// Arena[Expr] rather than each module owning its own.
type Arena[T any] struct {
	data []*T
}

// NewArena returns an empty Arena[T]; capHint sizes its backing slice.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]*T, 0, capHint),
	}
}

// Allocate appends value and returns its new 1-based index. Index 0 is
// never allocated, so it is free to use as a "no node" sentinel (ast.NoExprID).
func (a *Arena[T]) Allocate(value T) uint32 {
	elem := new(T)
	*elem = value
	a.data = append(a.data, elem)
	return a.Len()
}

// Get returns the element at the given 1-based index, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return a.data[index-1]
}

// Len returns the number of elements allocated so far.
func (a *Arena[T]) Len() uint32 {
	result, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena len overflow: %w", err))
	}
	return result
}
