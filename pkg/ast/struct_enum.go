package ast

import "cparse.dev/ccore/pkg/token"

type TagKind int

const (
	Struct TagKind = iota
	Union
)

func (k TagKind) String() string {
	if k == Union {
		return "union"
	}
	return "struct"
}

// StructOrUnionSpec is a struct/union specifier (spec §3). A nil Fields with
// HasBody false is a forward reference; HasBody true with zero Fields is an
// empty-but-present body.
type StructOrUnionSpec struct {
	Tag        TagKind
	Name       *token.Identifier
	HasBody    bool
	Fields     []FieldDeclaration
	Attributes []GNUAttribute
	Attrs
}

// FieldDeclaration is one member-declaration inside a struct/union body: a
// specifier list shared by one or more field declarators, mirroring the
// shape of a top-level Declaration. Attributes holds a trailing attribute
// clause that has no declarator to attach to (an unnamed field, e.g.
// `int __attribute__((deprecated));`) — Open Question #2 in SPEC_FULL.md
// §14: the original drops these on the floor; here they are preserved on
// the declaration itself instead.
type FieldDeclaration struct {
	Specifiers  []DeclSpec
	Declarators []FieldDeclarator
	Attributes  []GNUAttribute
	Attrs
}

// FieldDeclarator is one (declarator, bit-width) pair. Declarator is nil for
// an unnamed bit-field (`: N;`); BitWidth is nil for an ordinary field.
type FieldDeclarator struct {
	Declarator Declarator
	BitWidth   Expr
	Attrs
}

// EnumSpec is an enum specifier (spec §3).
type EnumSpec struct {
	Name       *token.Identifier
	HasBody    bool
	Members    []EnumMember
	Attributes []GNUAttribute
	Attrs
}

// EnumMember is one `name` or `name = value` entry.
type EnumMember struct {
	Name  token.Identifier
	Value Expr // nil if unspecified
	Attrs
}
