package utils

// RSeq is a sequence under construction by left recursion, kept in reverse
// order. Spec §9 calls for "a distinct sequence type whose public
// operations are only empty, snoc, reverse-to-ordered, and to map/fold over
// the reverse view" so a not-yet-reversed list can never be used in place of
// the ordered one by accident — a caller accumulates into one of these and
// flips it exactly once, at the point the list becomes part of an AST node.
// pkg/parser does not use it: its top-down productions append into
// ordinary slices in source order.
type RSeq[T any] struct{ rev []T }

// Snoc appends elem as the new most-recently-parsed element.
func (s RSeq[T]) Snoc(elem T) RSeq[T] {
	next := make([]T, 1, len(s.rev)+1)
	next[0] = elem
	return RSeq[T]{rev: append(next, s.rev...)}
}

// Len reports how many elements have been accumulated.
func (s RSeq[T]) Len() int { return len(s.rev) }

// Ordered flips the accumulator into the final, source-order slice. This is
// the single point at which a reversed list becomes an ordinary one.
func (s RSeq[T]) Ordered() []T {
	out := make([]T, len(s.rev))
	for i, v := range s.rev {
		out[len(out)-1-i] = v
	}
	return out
}

// ForEachReverse folds over the accumulator in its native (reverse) order
// without materializing the ordered slice, for call sites that only need to
// inspect the most-recent element or walk innermost-first.
func (s RSeq[T]) ForEachReverse(f func(T)) {
	for _, v := range s.rev {
		f(v)
	}
}

// NewRSeq returns an empty accumulator.
func NewRSeq[T any]() RSeq[T] { return RSeq[T]{} }
