package ast

import "cparse.dev/ccore/pkg/token"

// Initializer is either a plain expression or a brace-enclosed list (spec
// §3).
type Initializer interface {
	Node
	isInitializer()
}

type ExprInitializer struct {
	Expr Expr
	Attrs
}

func (*ExprInitializer) isInitializer() {}

// ListInitializer is a brace-enclosed initializer list, optional trailing
// comma already consumed by the parser (spec §4.3).
type ListInitializer struct {
	Items []InitializerItem
	Attrs
}

func (*ListInitializer) isInitializer() {}

// InitializerItem is one `designator-list? initializer` entry. Designators
// is empty when no designator prefix was written.
type InitializerItem struct {
	Designators []Designator
	Init        Initializer
	Attrs
}

// Designator is one of array-index, struct-member, or the GNU array-range
// extension (spec §3 GLOSSARY "Designator").
type Designator interface {
	isDesignator()
}

type IndexDesignator struct{ Index Expr }

func (IndexDesignator) isDesignator() {}

type MemberDesignator struct{ Name token.Identifier }

func (MemberDesignator) isDesignator() {}

// RangeDesignator is the GNU `[lo ... hi]` form.
type RangeDesignator struct{ Low, High Expr }

func (RangeDesignator) isDesignator() {}
