package ast

import (
	"fmt"

	"cparse.dev/ccore/pkg/token"
)

// NewAttrs stamps a node under construction with its position and a
// caller-supplied unique id (allocated by cenv.Env.FreshName). Constructors
// never mutate an already-built node; every combinator here returns a new
// value.
func NewAttrs(pos token.Position, id uint64) Attrs {
	return Attrs{Pos: pos, ID: id}
}

// LiftAttribute turns a specifier-context `__attribute__` into the
// AttributeQualifierSpec representation so it can be appended to an
// in-progress specifier accumulator (spec §4.4 "Attribute lifting").
func LiftAttribute(attrs []GNUAttribute, stamp Attrs) DeclSpec {
	return &AttributeQualifierSpec{Attributes: attrs, Attrs: stamp}
}

// innermostVar descends a declarator chain and returns the *VarDeclarator
// at its core, per spec §3's invariant that every chain bottoms out there.
func innermostVar(d Declarator) *VarDeclarator {
	for {
		switch n := d.(type) {
		case *VarDeclarator:
			return n
		case *PointerDeclarator:
			d = n.Inner
		case *ArrayDeclarator:
			d = n.Inner
		case *FunctionDeclarator:
			d = n.Inner
		default:
			return nil
		}
	}
}

// AttachTopLevelAnnotation descends decl to its innermost VarDeclarator and
// attaches asmName/attrs there, since an assembler-name clause and trailing
// attributes on a top-level declarator always qualify the identifier being
// declared, never the outermost pointer/array/function wrapper (spec
// §4.4). Combining an already-present assembler name with a new one is a
// semantic-action error (spec §4.4, §7); combining empty with present in
// either direction keeps the present one. decl is returned unchanged
// (mutation happens on the located VarDeclarator's copy, spliced back in
// place) if there is nothing to attach.
func AttachTopLevelAnnotation(decl Declarator, asmName *string, attrs []GNUAttribute) (Declarator, error) {
	if asmName == nil && len(attrs) == 0 {
		return decl, nil
	}
	v := innermostVar(decl)
	if v == nil {
		return decl, fmt.Errorf("ast: declarator chain has no innermost variable-declarator to annotate")
	}
	merged := *v
	if asmName != nil {
		if merged.AsmName != nil {
			return decl, fmt.Errorf("ast: asm name overwrite is not allowed for %q (already %q, got %q)",
				declaratorName(v), *merged.AsmName, *asmName)
		}
		merged.AsmName = asmName
	}
	if len(attrs) > 0 {
		merged.Attributes = append(append([]GNUAttribute{}, merged.Attributes...), attrs...)
	}
	return rebuildWithVar(decl, &merged), nil
}

func declaratorName(v *VarDeclarator) string {
	if v.Name == nil {
		return "<abstract>"
	}
	return v.Name.Name
}

// rebuildWithVar rebuilds the declarator chain from the outside in,
// replacing the innermost VarDeclarator with newVar. Every wrapper layer is
// copied rather than mutated, matching the "node factories do not mutate"
// rule.
func rebuildWithVar(d Declarator, newVar *VarDeclarator) Declarator {
	switch n := d.(type) {
	case *VarDeclarator:
		return newVar
	case *PointerDeclarator:
		cp := *n
		cp.Inner = rebuildWithVar(n.Inner, newVar)
		return &cp
	case *ArrayDeclarator:
		cp := *n
		cp.Inner = rebuildWithVar(n.Inner, newVar)
		return &cp
	case *FunctionDeclarator:
		cp := *n
		cp.Inner = rebuildWithVar(n.Inner, newVar)
		return &cp
	default:
		return d
	}
}

// DeclaredIdentifier returns the identifier a declarator ultimately names,
// or nil for an abstract declarator. Used by the typedef-binding state
// machine (spec §4.3) to decide which names to add/shadow in the current
// scope.
func DeclaredIdentifier(d Declarator) *token.Identifier {
	v := innermostVar(d)
	if v == nil {
		return nil
	}
	return v.Name
}
