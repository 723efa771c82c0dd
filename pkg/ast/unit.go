package ast

// ExternalDecl is one top-level construct: a function definition, a plain
// declaration, or a top-level inline-assembly declaration (spec §3).
type ExternalDecl interface {
	Node
	isExternalDecl()
}

// TranslationUnit is the root of the tree (spec §3).
type TranslationUnit struct {
	Decls []ExternalDecl
	Attrs
}

// Declaration is a (specifiers, declarators) pair (spec §3).
type Declaration struct {
	Specifiers  []DeclSpec
	Declarators []InitDeclarator
	Attrs
}

func (*Declaration) isExternalDecl() {}
func (*Declaration) isBlockItem()    {}

// InitDeclarator is one entry of a declaration's declarator list: an
// optional declarator, an optional initializer, and an optional bit-field
// width expression. pkg/parser never sets BitWidth here: struct/union
// members are parsed into FieldDeclarator, which carries its own width.
type InitDeclarator struct {
	Declarator Declarator // nilable
	Init       Initializer
	BitWidth   Expr
	Attrs
}

// FuncDef is a function definition, prototype or old-style (spec §3/§4.3).
// OldStyleDecls is non-nil only for a K&R definition, holding the
// declaration list that types the identifier-list parameters.
type FuncDef struct {
	Specifiers    []DeclSpec
	Declarator    Declarator
	OldStyleDecls []*Declaration
	Body          *CompoundStmt
	Attrs
}

func (*FuncDef) isExternalDecl() {}
func (*FuncDef) isBlockItem()    {}
