package cenv_test

import (
	"testing"

	"cparse.dev/ccore/pkg/cenv"
	"cparse.dev/ccore/pkg/token"
)

func TestTypedefLifecycle(t *testing.T) {
	t.Run("builtin names are typedefs from the start", func(t *testing.T) {
		env := cenv.New([]string{"size_t"}, 1)
		if !env.IsTypedef("size_t") {
			t.Fatalf("expected size_t to be a typedef")
		}
		if env.IsTypedef("int") {
			t.Fatalf("did not expect int to be a typedef")
		}
	})

	t.Run("AddTypedef binds in the innermost scope", func(t *testing.T) {
		env := cenv.New(nil, 1)
		env.AddTypedef("Widget")
		if !env.IsTypedef("Widget") {
			t.Fatalf("expected Widget to resolve as a typedef")
		}
	})

	t.Run("ShadowTypedef hides an outer typedef until the scope exits", func(t *testing.T) {
		env := cenv.New([]string{"Widget"}, 1)
		env.EnterScope()
		env.ShadowTypedef("Widget")
		if env.IsTypedef("Widget") {
			t.Fatalf("expected Widget to be shadowed inside the inner scope")
		}
		env.LeaveScope()
		if !env.IsTypedef("Widget") {
			t.Fatalf("expected Widget to resolve again after the shadowing scope closed")
		}
	})

	t.Run("inner AddTypedef does not leak to the outer scope", func(t *testing.T) {
		env := cenv.New(nil, 1)
		env.EnterScope()
		env.AddTypedef("Local")
		env.LeaveScope()
		if env.IsTypedef("Local") {
			t.Fatalf("did not expect Local to still be a typedef outside its scope")
		}
	})
}

func TestScopeBalance(t *testing.T) {
	env := cenv.New(nil, 1)
	if env.ScopeDepth() != 0 {
		t.Fatalf("expected initial depth 0, got %d", env.ScopeDepth())
	}
	env.EnterScope()
	env.EnterScope()
	if env.ScopeDepth() != 2 {
		t.Fatalf("expected depth 2 after two EnterScope calls, got %d", env.ScopeDepth())
	}
	env.LeaveScope()
	if env.ScopeDepth() != 1 {
		t.Fatalf("expected depth 1 after one LeaveScope call, got %d", env.ScopeDepth())
	}
}

func TestLeaveScopeWithoutEnterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected LeaveScope without a matching EnterScope to panic")
		}
	}()
	cenv.New(nil, 1).LeaveScope()
}

func TestFreshNameIsMonotonic(t *testing.T) {
	env := cenv.New(nil, 42)
	first := env.FreshName()
	second := env.FreshName()
	third := env.FreshName()
	if first != 42 || second != 43 || third != 44 {
		t.Fatalf("expected 42,43,44, got %d,%d,%d", first, second, third)
	}
}

func TestFirstErrorWins(t *testing.T) {
	env := cenv.New(nil, 1)
	if env.Failed() {
		t.Fatalf("fresh env should not be failed")
	}

	first := env.Failf(cenv.SyntaxError, token.Position{File: "a.c", Line: 1, Column: 1}, "unexpected %s", "token")
	second := env.Failf(cenv.SemanticActionError, token.Position{File: "a.c", Line: 2, Column: 1}, "a later error")

	if !env.Failed() {
		t.Fatalf("env should be failed after Failf")
	}
	if env.Err() != first {
		t.Fatalf("expected Err() to return the first recorded error")
	}
	if second != first {
		t.Fatalf("expected the second Failf call to be a no-op returning the same error")
	}
	if env.Err().Kind != cenv.SyntaxError {
		t.Fatalf("expected the first error's kind to stick, got %v", env.Err().Kind)
	}
}
