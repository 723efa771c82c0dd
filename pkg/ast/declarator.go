package ast

import "cparse.dev/ccore/pkg/token"

// Declarator is the recursive structure spec §3 describes, built from the
// inside out. The invariant the constructors in construct.go maintain: the
// innermost node in any chain is always a *VarDeclarator.
type Declarator interface {
	Node
	isDeclarator()
}

// VarDeclarator is the innermost layer: an optional name, an optional
// assembler name, and any trailing attributes. Top-level annotation
// (assembler name, trailing attributes) always ends up here regardless of
// how many Pointer/Array/Function layers wrap it (spec §4.4).
type VarDeclarator struct {
	Name       *token.Identifier
	AsmName    *string
	Attributes []GNUAttribute
	Attrs
}

func (*VarDeclarator) isDeclarator() {}

// PointerDeclarator wraps an inner declarator behind a `*` with its
// qualifier list (`* const`, `* restrict`, ...).
type PointerDeclarator struct {
	Qualifiers []DeclSpec
	Inner      Declarator
	Attrs
}

func (*PointerDeclarator) isDeclarator() {}

// ArrayDeclarator wraps an inner declarator behind `[ ]`. Size is nil for an
// unsized array (`[]` or `[*]`/incomplete). The C99 `static` keyword inside
// the brackets is intentionally not represented here — Open Question #1 in
// SPEC_FULL.md §14 decides to preserve that information loss.
type ArrayDeclarator struct {
	Inner      Declarator
	Qualifiers []DeclSpec
	Size       Expr
	Attrs
}

func (*ArrayDeclarator) isDeclarator() {}

// ParamForm is either an old-style (K&R) identifier list or a prototype
// parameter-declaration list.
type ParamForm interface {
	isParamForm()
}

// KRParams is the old-style `f(a, b, c)` identifier list, interpreted by a
// following declaration-list (spec GLOSSARY "Old-style (K&R) function
// definition").
type KRParams struct {
	Names []token.Identifier
}

func (KRParams) isParamForm() {}

// PrototypeParams is the modern `f(int a, char *b, ...)` form.
type PrototypeParams struct {
	Params   []ParamDecl
	Variadic bool
}

func (PrototypeParams) isParamForm() {}

// ParamDecl is one parameter in a prototype. Declarator may be nil (an
// abstract or unnamed parameter) or an identifier/abstract declarator.
type ParamDecl struct {
	Specifiers []DeclSpec
	Declarator Declarator // nilable
	Attrs
}

// FunctionDeclarator wraps an inner declarator behind `( )`.
type FunctionDeclarator struct {
	Inner      Declarator
	Params     ParamForm
	Attributes []GNUAttribute
	Attrs
}

func (*FunctionDeclarator) isDeclarator() {}

// TypeName is a specifier list plus an optional abstract declarator, used in
// casts, sizeof/alignof, typeof, and builtin type arguments.
type TypeName struct {
	Specifiers []DeclSpec
	Declarator Declarator // nilable, always abstract when present
	Attrs
}
