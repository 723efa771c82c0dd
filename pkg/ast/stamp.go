// Package ast defines the abstract syntax tree produced by pkg/parser: the
// data model of spec §3 plus the constructors and attribute-threading
// combinators of spec §4.4.
package ast

import "cparse.dev/ccore/pkg/token"

// Attrs is the stamp every AST node carries: the position it was parsed at
// and a unique identifier assigned at construction time, monotonically
// increasing within one parse (spec §3 "Attrs (node stamp)").
type Attrs struct {
	Pos token.Position
	ID  uint64
}

// Node is implemented by every AST type. It is the language-neutral
// substitute spec §9 prescribes for a "has-position" type class: a single
// interface method rather than per-language ad-hoc type-switching.
type Node interface {
	Stamp() Attrs
}

func (a Attrs) Stamp() Attrs { return a }

// GNUAttribute is one `__attribute__` item: a name plus its (possibly
// empty) argument expressions, per spec §3.
type GNUAttribute struct {
	Name token.Identifier
	Args []Expr
	Attrs
}
