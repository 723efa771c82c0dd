package ast_test

import (
	"testing"

	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/token"
)

func pos(line int) token.Position { return token.Position{File: "t.c", Line: line, Column: 1} }

func ident(name string) *token.Identifier { return &token.Identifier{Name: name, Pos: pos(1)} }

func TestDeclaredIdentifier(t *testing.T) {
	t.Run("plain variable", func(t *testing.T) {
		v := &ast.VarDeclarator{Name: ident("x"), Attrs: ast.NewAttrs(pos(1), 1)}
		got := ast.DeclaredIdentifier(v)
		if got == nil || got.Name != "x" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("pointer-to-array-to-function wrapper chain", func(t *testing.T) {
		v := &ast.VarDeclarator{Name: ident("f"), Attrs: ast.NewAttrs(pos(1), 1)}
		fn := &ast.FunctionDeclarator{Inner: v, Params: ast.PrototypeParams{}, Attrs: ast.NewAttrs(pos(1), 2)}
		arr := &ast.ArrayDeclarator{Inner: fn, Attrs: ast.NewAttrs(pos(1), 3)}
		ptr := &ast.PointerDeclarator{Inner: arr, Attrs: ast.NewAttrs(pos(1), 4)}

		got := ast.DeclaredIdentifier(ptr)
		if got == nil || got.Name != "f" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("abstract declarator has no identifier", func(t *testing.T) {
		v := &ast.VarDeclarator{Attrs: ast.NewAttrs(pos(1), 1)}
		ptr := &ast.PointerDeclarator{Inner: v, Attrs: ast.NewAttrs(pos(1), 2)}
		if got := ast.DeclaredIdentifier(ptr); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})
}

func TestAttachTopLevelAnnotation(t *testing.T) {
	t.Run("no-op when both asmName and attrs are empty", func(t *testing.T) {
		v := &ast.VarDeclarator{Name: ident("x"), Attrs: ast.NewAttrs(pos(1), 1)}
		got, err := ast.AttachTopLevelAnnotation(v, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got != ast.Declarator(v) {
			t.Fatalf("expected the same declarator back unchanged")
		}
	})

	t.Run("attaches through wrapper layers to the innermost var", func(t *testing.T) {
		v := &ast.VarDeclarator{Name: ident("arr"), Attrs: ast.NewAttrs(pos(1), 1)}
		wrapped := &ast.ArrayDeclarator{Inner: v, Attrs: ast.NewAttrs(pos(1), 2)}

		asmName := "arr_impl"
		attrs := []ast.GNUAttribute{{Name: token.Identifier{Name: "unused"}, Attrs: ast.NewAttrs(pos(1), 3)}}
		got, err := ast.AttachTopLevelAnnotation(wrapped, &asmName, attrs)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		inner := got.(*ast.ArrayDeclarator).Inner.(*ast.VarDeclarator)
		if inner.AsmName == nil || *inner.AsmName != "arr_impl" {
			t.Fatalf("expected asm name to be attached to the innermost var, got %+v", inner)
		}
		if len(inner.Attributes) != 1 || inner.Attributes[0].Name.Name != "unused" {
			t.Fatalf("expected attribute to be attached to the innermost var, got %+v", inner.Attributes)
		}

		if v.AsmName != nil {
			t.Fatalf("original VarDeclarator must not be mutated")
		}
	})

	t.Run("overwriting an existing asm name is an error", func(t *testing.T) {
		first := "first_impl"
		v := &ast.VarDeclarator{Name: ident("x"), AsmName: &first, Attrs: ast.NewAttrs(pos(1), 1)}

		second := "second_impl"
		if _, err := ast.AttachTopLevelAnnotation(v, &second, nil); err == nil {
			t.Fatalf("expected an error overwriting an existing asm name")
		}
	})
}

func TestLiftAttribute(t *testing.T) {
	attrs := []ast.GNUAttribute{{Name: token.Identifier{Name: "packed"}, Attrs: ast.NewAttrs(pos(1), 1)}}
	spec := ast.LiftAttribute(attrs, ast.NewAttrs(pos(2), 2))

	qual, ok := spec.(*ast.AttributeQualifierSpec)
	if !ok {
		t.Fatalf("expected *ast.AttributeQualifierSpec, got %T", spec)
	}
	if len(qual.Attributes) != 1 || qual.Attributes[0].Name.Name != "packed" {
		t.Fatalf("got %+v", qual.Attributes)
	}
	if qual.Stamp().ID != 2 {
		t.Fatalf("expected the stamp to carry through, got %+v", qual.Stamp())
	}
}
