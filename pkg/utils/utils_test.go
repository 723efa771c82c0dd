package utils_test

import (
	"testing"

	"cparse.dev/ccore/pkg/utils"
)

func TestStackLIFOOrder(t *testing.T) {
	var s utils.Stack[int]
	s.Push(1)
	s.Push(2)
	s.Push(3)

	if s.Count() != 3 {
		t.Fatalf("expected count 3, got %d", s.Count())
	}
	if top, err := s.Top(); err != nil || top != 3 {
		t.Fatalf("expected top 3, got %v, %v", top, err)
	}

	var popped []int
	for s.Count() > 0 {
		v, err := s.Pop()
		if err != nil {
			t.Fatalf("unexpected error popping: %s", err)
		}
		popped = append(popped, v)
	}
	want := []int{3, 2, 1}
	for i, v := range want {
		if popped[i] != v {
			t.Fatalf("popped %v, want %v", popped, want)
		}
	}
}

func TestStackEmptyErrors(t *testing.T) {
	var s utils.Stack[string]
	if _, err := s.Top(); err == nil {
		t.Fatalf("expected an error calling Top on an empty stack")
	}
	if _, err := s.Pop(); err == nil {
		t.Fatalf("expected an error calling Pop on an empty stack")
	}
}

func TestStackIteratorWalksTopToBottom(t *testing.T) {
	s := utils.NewStack(1, 2, 3)
	var seen []int
	s.Iterator()(func(v int) bool {
		seen = append(seen, v)
		return true
	})
	want := []int{3, 2, 1}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i, v := range want {
		if seen[i] != v {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

func TestStackIteratorStopsEarly(t *testing.T) {
	s := utils.NewStack(1, 2, 3)
	var seen []int
	s.Iterator()(func(v int) bool {
		seen = append(seen, v)
		return len(seen) < 1
	})
	if len(seen) != 1 || seen[0] != 3 {
		t.Fatalf("expected the iterator to stop after one element, got %v", seen)
	}
}

func TestRSeqAccumulatesAndOrders(t *testing.T) {
	s := utils.NewRSeq[string]()
	s = s.Snoc("a")
	s = s.Snoc("b")
	s = s.Snoc("c")

	if s.Len() != 3 {
		t.Fatalf("expected length 3, got %d", s.Len())
	}
	ordered := s.Ordered()
	want := []string{"a", "b", "c"}
	for i, v := range want {
		if ordered[i] != v {
			t.Fatalf("got %v, want %v", ordered, want)
		}
	}
}

func TestRSeqSnocIsImmutable(t *testing.T) {
	base := utils.NewRSeq[int]().Snoc(1)
	withTwo := base.Snoc(2)
	withThree := base.Snoc(3)

	if base.Len() != 1 {
		t.Fatalf("expected the original accumulator to be untouched, got length %d", base.Len())
	}
	if withTwo.Ordered()[1] != 2 || withThree.Ordered()[1] != 3 {
		t.Fatalf("expected independent branches, got %v and %v", withTwo.Ordered(), withThree.Ordered())
	}
}

func TestRSeqForEachReverseVisitsMostRecentFirst(t *testing.T) {
	s := utils.NewRSeq[int]().Snoc(1).Snoc(2).Snoc(3)
	var visited []int
	s.ForEachReverse(func(v int) { visited = append(visited, v) })
	want := []int{3, 2, 1}
	for i, v := range want {
		if visited[i] != v {
			t.Fatalf("got %v, want %v", visited, want)
		}
	}
}
