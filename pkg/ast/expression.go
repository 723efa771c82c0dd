package ast

import "cparse.dev/ccore/pkg/token"

// Expr is implemented by every expression variant of spec §3.
type Expr interface {
	Node
	isExpr()
}

type CommaExpr struct {
	Exprs []Expr
	Attrs
}

func (*CommaExpr) isExpr() {}

// AssignExpr covers plain `=` and every compound assignment operator. Op is
// the token.Kind of the operator (token.Assign, token.PlusEq, ...). Lhs is
// restricted to a unary-expression shape; the parser rejects anything else
// with a syntax error before constructing this node, but the type itself
// does not enforce it (a looser Lhs would still be structurally valid here).
type AssignExpr struct {
	Op       token.Kind
	Lhs, Rhs Expr
	Attrs
}

func (*AssignExpr) isExpr() {}

// CondExpr is the ternary operator. Then is nil for the GNU elision
// `a ?: b` (spec §4.3).
type CondExpr struct {
	Cond, Then, Else Expr
	Attrs
}

func (*CondExpr) isExpr() {}

type BinaryExpr struct {
	Op       token.Kind
	Lhs, Rhs Expr
	Attrs
}

func (*BinaryExpr) isExpr() {}

type CastExpr struct {
	Type TypeName
	Expr Expr
	Attrs
}

func (*CastExpr) isExpr() {}

type UnaryOp int

const (
	PreInc UnaryOp = iota
	PreDec
	PostInc
	PostDec
	AddrOf
	Deref
	UnaryPlus
	UnaryMinus
	LogicalNot
	BitNot
)

type UnaryExpr struct {
	Op   UnaryOp
	Expr Expr
	Attrs
}

func (*UnaryExpr) isExpr() {}

type SizeofExpr struct {
	Expr Expr
	Attrs
}

func (*SizeofExpr) isExpr() {}

type SizeofTypeExpr struct {
	Type TypeName
	Attrs
}

func (*SizeofTypeExpr) isExpr() {}

type AlignofExpr struct {
	Expr Expr
	Attrs
}

func (*AlignofExpr) isExpr() {}

type AlignofTypeExpr struct {
	Type TypeName
	Attrs
}

func (*AlignofTypeExpr) isExpr() {}

type IndexExpr struct {
	Base, Index Expr
	Attrs
}

func (*IndexExpr) isExpr() {}

type CallExpr struct {
	Func Expr
	Args []Expr
	Attrs
}

func (*CallExpr) isExpr() {}

// MemberExpr covers both `.` and `->` access.
type MemberExpr struct {
	Base   Expr
	Arrow  bool
	Member token.Identifier
	Attrs
}

func (*MemberExpr) isExpr() {}

// CompoundLiteralExpr is `(type-name){ initializer-list }` (spec §3).
type CompoundLiteralExpr struct {
	Type TypeName
	Init ListInitializer
	Attrs
}

func (*CompoundLiteralExpr) isExpr() {}

// StmtExpr is GNU `({ ...; expr; })`: the value of a compound statement's
// last expression-statement (spec GLOSSARY "Statement expression").
type StmtExpr struct {
	Body *CompoundStmt
	Attrs
}

func (*StmtExpr) isExpr() {}

// LabelAddrExpr is GNU `&&label` (the labeled-address operator).
type LabelAddrExpr struct {
	Label token.Identifier
	Attrs
}

func (*LabelAddrExpr) isExpr() {}

// ComplexRealExpr/ComplexImagExpr are GNU `__real__`/`__imag__`.
type ComplexRealExpr struct {
	Expr Expr
	Attrs
}

func (*ComplexRealExpr) isExpr() {}

type ComplexImagExpr struct {
	Expr Expr
	Attrs
}

func (*ComplexImagExpr) isExpr() {}

// VarExpr references a bound identifier (ordinary, never a typedef-name —
// the lexer hack guarantees the parser never sees a typedef-name token
// where an expression is expected).
type VarExpr struct {
	Name token.Identifier
	Attrs
}

func (*VarExpr) isExpr() {}

type IntLit struct {
	Text  string
	Value uint64
	Flags token.NumberFlags
	Attrs
}

func (*IntLit) isExpr() {}

type FloatLit struct {
	Text  string
	Flags token.NumberFlags
	Attrs
}

func (*FloatLit) isExpr() {}

type CharLit struct {
	Value rune
	Attrs
}

func (*CharLit) isExpr() {}

// StringLit is the result of concatenating one or more adjacent string
// literal tokens in a primary expression (spec §4.3 tie-break note).
type StringLit struct {
	Value string
	Attrs
}

func (*StringLit) isExpr() {}

// VaArgExpr is `__builtin_va_arg(ap, type)`.
type VaArgExpr struct {
	Args Expr
	Type TypeName
	Attrs
}

func (*VaArgExpr) isExpr() {}

// OffsetofDesignator is one step of an offsetof member-path:
// `a.b[3]` -> [Member("a"), Member("b"), Index(3)].
type OffsetofDesignator interface {
	isOffsetofDesignator()
}

type OffsetofMember struct{ Name token.Identifier }

func (OffsetofMember) isOffsetofDesignator() {}

type OffsetofIndex struct{ Index Expr }

func (OffsetofIndex) isOffsetofDesignator() {}

// OffsetofExpr is `__builtin_offsetof(type, designator-path)`.
type OffsetofExpr struct {
	Type        TypeName
	Designators []OffsetofDesignator
	Attrs
}

func (*OffsetofExpr) isExpr() {}

// TypesCompatibleExpr is `__builtin_types_compatible_p(type1, type2)`.
type TypesCompatibleExpr struct {
	Type1, Type2 TypeName
	Attrs
}

func (*TypesCompatibleExpr) isExpr() {}
