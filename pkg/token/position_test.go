package token_test

import (
	"testing"

	"cparse.dev/ccore/pkg/token"
)

func TestPositionOrdering(t *testing.T) {
	test := func(a, b token.Position, wantLess, wantLessEq bool) {
		if got := a.Less(b); got != wantLess {
			t.Errorf("%v.Less(%v) = %v, want %v", a, b, got, wantLess)
		}
		if got := a.LessEq(b); got != wantLessEq {
			t.Errorf("%v.LessEq(%v) = %v, want %v", a, b, got, wantLessEq)
		}
	}

	t.Run("different files compare lexically", func(t *testing.T) {
		test(token.Position{File: "a.c", Line: 5, Column: 1}, token.Position{File: "b.c", Line: 1, Column: 1}, true, true)
	})
	t.Run("same file, different line", func(t *testing.T) {
		test(token.Position{File: "x.c", Line: 1, Column: 9}, token.Position{File: "x.c", Line: 2, Column: 1}, true, true)
	})
	t.Run("same file and line, different column", func(t *testing.T) {
		test(token.Position{File: "x.c", Line: 1, Column: 1}, token.Position{File: "x.c", Line: 1, Column: 2}, true, true)
	})
	t.Run("equal positions", func(t *testing.T) {
		test(token.Position{File: "x.c", Line: 3, Column: 4}, token.Position{File: "x.c", Line: 3, Column: 4}, false, true)
	})
	t.Run("reversed order is not less", func(t *testing.T) {
		test(token.Position{File: "x.c", Line: 3, Column: 4}, token.Position{File: "x.c", Line: 1, Column: 1}, false, false)
	})
}

func TestPositionAdvance(t *testing.T) {
	p := token.Position{File: "x.c", Line: 1, Column: 1}

	p = p.Advance('a')
	if p != (token.Position{File: "x.c", Line: 1, Column: 2}) {
		t.Fatalf("advancing over a plain rune: got %+v", p)
	}

	p = p.Advance('\n')
	if p != (token.Position{File: "x.c", Line: 2, Column: 1}) {
		t.Fatalf("advancing over a newline: got %+v", p)
	}
}

func TestPositionString(t *testing.T) {
	p := token.Position{File: "x.c", Line: 3, Column: 7}
	if got, want := p.String(), "x.c:3:7"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
