package ast

import "cparse.dev/ccore/pkg/token"

// DeclSpec is one element of a declaration-specifier list (spec §3). The
// grammar's four specifier families (basic, struct/union/enum, typedef,
// qualifier-only) all produce values of this interface; §4.4's attribute
// lifting also produces AttributeQualifier values so a `__attribute__` seen
// in specifier position can ride along in the same list without a separate
// channel (spec GLOSSARY "attribute-as-qualifier").
type DeclSpec interface {
	Node
	isDeclSpec()
}

type StorageKind int

const (
	Typedef StorageKind = iota
	Extern
	Static
	Auto
	Register
	ThreadLocal
)

func (k StorageKind) String() string {
	return [...]string{"typedef", "extern", "static", "auto", "register", "__thread"}[k]
}

// StorageClassSpec is a storage-class specifier (spec §3).
type StorageClassSpec struct {
	Kind StorageKind
	Attrs
}

func (*StorageClassSpec) isDeclSpec() {}

type QualKind int

const (
	Const QualKind = iota
	Volatile
	Restrict
	Inline
)

func (k QualKind) String() string {
	return [...]string{"const", "volatile", "restrict", "inline"}[k]
}

// TypeQualifierSpec is a type-qualifier specifier (spec §3).
type TypeQualifierSpec struct {
	Kind QualKind
	Attrs
}

func (*TypeQualifierSpec) isDeclSpec() {}

// AttributeQualifierSpec lifts a specifier-position `__attribute__` into the
// declaration-specifier list, per spec GLOSSARY "attribute-as-qualifier".
type AttributeQualifierSpec struct {
	Attributes []GNUAttribute
	Attrs
}

func (*AttributeQualifierSpec) isDeclSpec() {}

type BasicKind int

const (
	Void BasicKind = iota
	Char
	Short
	Int
	Long
	Float
	Double
	Signed
	Unsigned
	Bool
	ComplexKind
)

func (k BasicKind) String() string {
	return [...]string{"void", "char", "short", "int", "long", "float", "double",
		"signed", "unsigned", "_Bool", "_Complex"}[k]
}

// BasicTypeSpec is a basic (builtin) type-specifier keyword.
type BasicTypeSpec struct {
	Kind BasicKind
	Attrs
}

func (*BasicTypeSpec) isDeclSpec() {}

// TypedefNameSpec references a name already bound as a typedef, resolved by
// the scoped typedef environment during parsing (spec §4.3 lexer hack).
type TypedefNameSpec struct {
	Name token.Identifier
	Attrs
}

func (*TypedefNameSpec) isDeclSpec() {}

// TypeofExprSpec is GNU `typeof(expr)`.
type TypeofExprSpec struct {
	Expr Expr
	Attrs
}

func (*TypeofExprSpec) isDeclSpec() {}

// TypeofTypeSpec is GNU `typeof(type-name)`.
type TypeofTypeSpec struct {
	Type TypeName
	Attrs
}

func (*TypeofTypeSpec) isDeclSpec() {}

// These methods adapt StructOrUnionSpec and EnumSpec (defined in
// struct_enum.go) to the DeclSpec interface.
func (*StructOrUnionSpec) isDeclSpec() {}
func (*EnumSpec) isDeclSpec()          {}
