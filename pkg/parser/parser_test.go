package parser_test

import (
	"testing"

	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/parser"
	"cparse.dev/ccore/pkg/token"
)

func mustParse(t *testing.T, src string, builtins ...string) *ast.TranslationUnit {
	t.Helper()
	start := token.Position{File: "t.c", Line: 1, Column: 1}
	tu, err := parser.Parse("t.c", []byte(src), start, builtins, 1)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %s", src, err)
	}
	return tu
}

func mustFail(t *testing.T, src string) {
	t.Helper()
	start := token.Position{File: "t.c", Line: 1, Column: 1}
	if _, err := parser.Parse("t.c", []byte(src), start, nil, 1); err == nil {
		t.Fatalf("expected a parse error for %q", src)
	}
}

func TestSimpleFunctionDefinition(t *testing.T) {
	tu := mustParse(t, `int add(int a, int b) { return a + b; }`)
	if len(tu.Decls) != 1 {
		t.Fatalf("expected 1 external decl, got %d", len(tu.Decls))
	}
	fd, ok := tu.Decls[0].(*ast.FuncDef)
	if !ok {
		t.Fatalf("expected *ast.FuncDef, got %T", tu.Decls[0])
	}
	if fd.Body == nil || len(fd.Body.Items) != 1 {
		t.Fatalf("expected a single-statement body, got %+v", fd.Body)
	}
	ret, ok := fd.Body.Items[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fd.Body.Items[0])
	}
	if _, ok := ret.Expr.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected a binary expression return value, got %T", ret.Expr)
	}
}

func TestTypedefLexerHack(t *testing.T) {
	tu := mustParse(t, `
typedef struct { int x; int y; } Point;
Point origin;
`)
	if len(tu.Decls) != 2 {
		t.Fatalf("expected 2 external decls, got %d", len(tu.Decls))
	}
	origin, ok := tu.Decls[1].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected *ast.Declaration, got %T", tu.Decls[1])
	}
	if len(origin.Specifiers) != 1 {
		t.Fatalf("expected a single specifier naming the typedef, got %+v", origin.Specifiers)
	}
	if _, ok := origin.Specifiers[0].(*ast.TypedefNameSpec); !ok {
		t.Fatalf("expected Point to resolve as a typedef name, got %T", origin.Specifiers[0])
	}
}

func TestTypedefShadowingInNestedScope(t *testing.T) {
	tu := mustParse(t, `
typedef int T;
void f(void) {
	int T;
	T = 1;
}
`)
	fd := tu.Decls[1].(*ast.FuncDef)
	assign := fd.Body.Items[1].(*ast.ExprStmt)
	a, ok := assign.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected assignment to parse as an assign expr, got %T", assign.Expr)
	}
	if _, ok := a.Lhs.(*ast.VarExpr); !ok {
		t.Fatalf("expected T to resolve as an ordinary identifier inside f, got %T", a.Lhs)
	}
}

func TestStructUnionEnumDeclarations(t *testing.T) {
	mustParse(t, `
struct Point { int x, y; };
union Value { int i; float f; };
enum Color { Red, Green, Blue };
struct Point p;
union Value v;
enum Color c;
`)
}

func TestExpressionPrecedence(t *testing.T) {
	tu := mustParse(t, `int x = 1 + 2 * 3 == 7 ? 1 : 0;`)
	decl := tu.Decls[0].(*ast.Declaration)
	init := decl.Declarators[0].Init.(*ast.ExprInitializer)
	cond, ok := init.Expr.(*ast.CondExpr)
	if !ok {
		t.Fatalf("expected a conditional expression at the top, got %T", init.Expr)
	}
	eq, ok := cond.Cond.(*ast.BinaryExpr)
	if !ok || eq.Op != token.EqEq {
		t.Fatalf("expected == at the condition, got %+v", cond.Cond)
	}
	add, ok := eq.Lhs.(*ast.BinaryExpr)
	if !ok || add.Op != token.Plus {
		t.Fatalf("expected + to bind looser than *, got %+v", eq.Lhs)
	}
	if _, ok := add.Rhs.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected * grouped on the right of +, got %+v", add.Rhs)
	}
}

func TestAttributePlacement(t *testing.T) {
	mustParse(t, `int f(void) __attribute__((noreturn));`)
	mustParse(t, `__attribute__((packed)) struct S { int x; };`)
}

func TestGNUStatementExpression(t *testing.T) {
	mustParse(t, `int x = ({ int y = 1; y + 1; });`)
}

func TestOldStyleFunctionDefinition(t *testing.T) {
	tu := mustParse(t, `
int add(a, b)
	int a;
	int b;
{
	return a + b;
}
`)
	fd := tu.Decls[0].(*ast.FuncDef)
	if len(fd.OldStyleDecls) != 2 {
		t.Fatalf("expected 2 old-style parameter declarations, got %d", len(fd.OldStyleDecls))
	}
}

func TestComputedGotoAndLabelAddress(t *testing.T) {
	mustParse(t, `
void f(void) {
	__label__ done;
	void *target = &&done;
	goto *target;
done:
	return;
}
`)
}

func TestCaseRange(t *testing.T) {
	mustParse(t, `
void f(int x) {
	switch (x) {
	case 1 ... 3:
		break;
	default:
		break;
	}
}
`)
}

func TestDesignatedInitializers(t *testing.T) {
	mustParse(t, `
struct Point { int x, y; };
struct Point p = { .x = 1, .y = 2 };
int arr[5] = { [0] = 1, [4] = 2 };
`)
}

func TestSyntaxErrorIsReported(t *testing.T) {
	mustFail(t, `int x = ;`)
	mustFail(t, `struct { int`)
}

func TestAssignmentLhsRestrictedToUnaryExpression(t *testing.T) {
	mustFail(t, `void f(void) { int a, b, c; a + b = c; }`)
	mustFail(t, `void f(void) { int x, y; (x, y) = 1; }`)
	mustFail(t, `void f(void) { int a, b, c; (a ? b : c) = 1; }`)

	mustParse(t, `void f(void) { int a; a = 1; }`)
	mustParse(t, `void f(void) { int a; (a) = 1; }`)
	mustParse(t, `void f(void) { int *p, a; *p = a; }`)
	mustParse(t, `void f(void) { int arr[4]; arr[0] = 1; }`)
}

func TestBuiltinTypedefNameSeedsTypeResolution(t *testing.T) {
	tu := mustParse(t, `size_t n;`, "size_t")
	decl := tu.Decls[0].(*ast.Declaration)
	if _, ok := decl.Specifiers[0].(*ast.TypedefNameSpec); !ok {
		t.Fatalf("expected size_t to resolve as a typedef name, got %T", decl.Specifiers[0])
	}
}
