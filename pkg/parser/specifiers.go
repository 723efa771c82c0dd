package parser

import (
	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/token"
)

// startsDeclarationSpecifier reports whether the current token can begin a
// declaration-specifier list. Used both inside parseDeclarationSpecifiers
// and by callers needing to disambiguate a type-name from an expression
// (a cast's parenthesized operand, typeof's argument, an old-style
// parameter-declaration list).
func (p *Parser) startsDeclarationSpecifier() bool {
	return kindStartsDeclarationSpecifier(p.cur().Kind)
}

func kindStartsDeclarationSpecifier(k token.Kind) bool {
	switch k {
	case token.KwTypedef, token.KwExtern, token.KwStatic, token.KwAuto, token.KwRegister, token.KwThread,
		token.KwConst, token.KwVolatile, token.KwRestrict, token.KwInline,
		token.KwVoid, token.KwChar, token.KwShort, token.KwInt, token.KwLong, token.KwFloat, token.KwDouble,
		token.KwSigned, token.KwUnsigned, token.KwBool, token.KwComplex,
		token.KwStruct, token.KwUnion, token.KwEnum, token.KwTypeof, token.KwAttribute, token.TypedefName:
		return true
	}
	return false
}

// parseDeclarationSpecifiers parses the four specifier families spec §3
// names (basic, struct/union/enum, typedef-name, qualifier-only) plus
// specifier-position `__attribute__` clauses lifted via ast.LiftAttribute.
// The second return value reports whether `typedef` storage class was
// present, which decides the typedef-binding state machine's branch for
// every declarator that follows (spec §4.3).
func (p *Parser) parseDeclarationSpecifiers() ([]ast.DeclSpec, bool, error) {
	var specs []ast.DeclSpec
	isTypedef := false
	sawType := false

specLoop:
	for {
		switch p.cur().Kind {
		case token.KwTypedef, token.KwExtern, token.KwStatic, token.KwAuto, token.KwRegister, token.KwThread:
			t := p.advance()
			specs = append(specs, &ast.StorageClassSpec{Kind: storageKind(t.Kind), Attrs: p.stamp(t.Pos)})
			if t.Kind == token.KwTypedef {
				isTypedef = true
			}

		case token.KwConst, token.KwVolatile, token.KwRestrict, token.KwInline:
			t := p.advance()
			specs = append(specs, &ast.TypeQualifierSpec{Kind: qualKind(t.Kind), Attrs: p.stamp(t.Pos)})

		case token.KwVoid, token.KwChar, token.KwShort, token.KwInt, token.KwLong, token.KwFloat,
			token.KwDouble, token.KwSigned, token.KwUnsigned, token.KwBool, token.KwComplex:
			t := p.advance()
			specs = append(specs, &ast.BasicTypeSpec{Kind: basicKind(t.Kind), Attrs: p.stamp(t.Pos)})
			sawType = true

		case token.KwStruct, token.KwUnion:
			s, err := p.parseStructOrUnionSpec()
			if err != nil {
				return nil, false, err
			}
			specs = append(specs, s)
			sawType = true

		case token.KwEnum:
			s, err := p.parseEnumSpec()
			if err != nil {
				return nil, false, err
			}
			specs = append(specs, s)
			sawType = true

		case token.KwTypeof:
			s, err := p.parseTypeofSpec()
			if err != nil {
				return nil, false, err
			}
			specs = append(specs, s)
			sawType = true

		case token.KwAttribute:
			pos := p.cur().Pos
			attrs, err := p.parseAttributeSpecifier()
			if err != nil {
				return nil, false, err
			}
			specs = append(specs, ast.LiftAttribute(attrs, p.stamp(pos)))

		case token.TypedefName:
			if sawType {
				break specLoop
			}
			t := p.advance()
			specs = append(specs, &ast.TypedefNameSpec{Name: token.Identifier{Name: t.Value, Pos: t.Pos}, Attrs: p.stamp(t.Pos)})
			sawType = true

		default:
			break specLoop
		}
	}

	if len(specs) == 0 {
		return nil, false, p.syntaxErrorf("expected declaration specifiers, found %s", p.cur())
	}
	return specs, isTypedef, nil
}

func storageKind(k token.Kind) ast.StorageKind {
	switch k {
	case token.KwTypedef:
		return ast.Typedef
	case token.KwExtern:
		return ast.Extern
	case token.KwStatic:
		return ast.Static
	case token.KwAuto:
		return ast.Auto
	case token.KwRegister:
		return ast.Register
	case token.KwThread:
		return ast.ThreadLocal
	}
	panic("parser: unreachable storage-class kind")
}

func qualKind(k token.Kind) ast.QualKind {
	switch k {
	case token.KwConst:
		return ast.Const
	case token.KwVolatile:
		return ast.Volatile
	case token.KwRestrict:
		return ast.Restrict
	case token.KwInline:
		return ast.Inline
	}
	panic("parser: unreachable qualifier kind")
}

func basicKind(k token.Kind) ast.BasicKind {
	switch k {
	case token.KwVoid:
		return ast.Void
	case token.KwChar:
		return ast.Char
	case token.KwShort:
		return ast.Short
	case token.KwInt:
		return ast.Int
	case token.KwLong:
		return ast.Long
	case token.KwFloat:
		return ast.Float
	case token.KwDouble:
		return ast.Double
	case token.KwSigned:
		return ast.Signed
	case token.KwUnsigned:
		return ast.Unsigned
	case token.KwBool:
		return ast.Bool
	case token.KwComplex:
		return ast.ComplexKind
	}
	panic("parser: unreachable basic-type kind")
}

// acceptIdentLike accepts either an ordinary identifier or a typedef-name
// token as a plain name. Struct/union/enum tags and enum constants live in
// a namespace disjoint from typedef names, so a name the lexer happens to
// classify as TypedefName (because it is bound as a typedef in some
// enclosing scope) is still a perfectly good tag or constant name here.
func (p *Parser) acceptIdentLike() (token.Token, bool) {
	if t, ok := p.accept(token.Ident); ok {
		return t, true
	}
	if t, ok := p.accept(token.TypedefName); ok {
		return t, true
	}
	return token.Token{}, false
}

func (p *Parser) expectIdentLike() (token.Token, error) {
	if t, ok := p.acceptIdentLike(); ok {
		return t, nil
	}
	return token.Token{}, p.syntaxErrorf("expected identifier, found %s", p.cur())
}

func (p *Parser) parseStructOrUnionSpec() (*ast.StructOrUnionSpec, error) {
	start := p.cur().Pos
	kw := p.advance()
	tag := ast.Struct
	if kw.Kind == token.KwUnion {
		tag = ast.Union
	}

	attrs, err := p.parseAttributesOpt()
	if err != nil {
		return nil, err
	}

	var name *token.Identifier
	if t, ok := p.acceptIdentLike(); ok {
		id := token.Identifier{Name: t.Value, Pos: t.Pos}
		name = &id
	}

	hasBody := false
	var fields []ast.FieldDeclaration
	if _, ok := p.accept(token.LBrace); ok {
		hasBody = true
		for !p.at(token.RBrace) {
			if p.env.Failed() {
				return nil, p.env.Err()
			}
			fd, err := p.parseFieldDeclaration()
			if err != nil {
				return nil, err
			}
			fields = append(fields, fd)
		}
		if _, err := p.expect(token.RBrace); err != nil {
			return nil, err
		}
	}
	trailing, err := p.parseAttributesOpt()
	if err != nil {
		return nil, err
	}
	attrs = append(attrs, trailing...)

	return &ast.StructOrUnionSpec{
		Tag: tag, Name: name, HasBody: hasBody, Fields: fields,
		Attributes: attrs, Attrs: p.stamp(start),
	}, nil
}

func (p *Parser) parseFieldDeclaration() (ast.FieldDeclaration, error) {
	start := p.cur().Pos
	specs, _, err := p.parseDeclarationSpecifiers()
	if err != nil {
		return ast.FieldDeclaration{}, err
	}

	var declarators []ast.FieldDeclarator
	if !p.at(token.Semi) {
		for {
			fd, err := p.parseFieldDeclarator()
			if err != nil {
				return ast.FieldDeclaration{}, err
			}
			declarators = append(declarators, fd)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}

	// A field with no declarator has nowhere else to carry its trailing
	// attribute clauses, which parseDeclarationSpecifiers has lifted onto the
	// end of specs; move them onto the declaration itself.
	var unnamedAttrs []ast.GNUAttribute
	if len(declarators) == 0 {
		for len(specs) > 1 {
			aq, ok := specs[len(specs)-1].(*ast.AttributeQualifierSpec)
			if !ok {
				break
			}
			unnamedAttrs = append(append([]ast.GNUAttribute{}, aq.Attributes...), unnamedAttrs...)
			specs = specs[:len(specs)-1]
		}
	}
	if _, err := p.expect(token.Semi); err != nil {
		return ast.FieldDeclaration{}, err
	}
	return ast.FieldDeclaration{
		Specifiers: specs, Declarators: declarators, Attributes: unnamedAttrs,
		Attrs: p.stamp(start),
	}, nil
}

func (p *Parser) parseFieldDeclarator() (ast.FieldDeclarator, error) {
	start := p.cur().Pos
	var decl ast.Declarator
	if !p.at(token.Colon) {
		d, err := p.parseDeclaratorWithAnnotations()
		if err != nil {
			return ast.FieldDeclarator{}, err
		}
		decl = d
	}
	var bitWidth ast.Expr
	if _, ok := p.accept(token.Colon); ok {
		e, err := p.parseConditionalExpr()
		if err != nil {
			return ast.FieldDeclarator{}, err
		}
		bitWidth = e
	}
	return ast.FieldDeclarator{Declarator: decl, BitWidth: bitWidth, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseEnumSpec() (*ast.EnumSpec, error) {
	start := p.cur().Pos
	p.advance()

	attrs, err := p.parseAttributesOpt()
	if err != nil {
		return nil, err
	}

	var name *token.Identifier
	if t, ok := p.acceptIdentLike(); ok {
		id := token.Identifier{Name: t.Value, Pos: t.Pos}
		name = &id
	}

	hasBody := false
	var members []ast.EnumMember
	if _, ok := p.accept(token.LBrace); ok {
		hasBody = true
		for !p.at(token.RBrace) {
			if p.env.Failed() {
				return nil, p.env.Err()
			}
			m, err := p.parseEnumMember()
			if err != nil {
				return nil, err
			}
			members = append(members, m)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		if _, err := p.expect(token.RBrace); err != nil {
			return nil, err
		}
	}
	trailing, err := p.parseAttributesOpt()
	if err != nil {
		return nil, err
	}
	attrs = append(attrs, trailing...)

	return &ast.EnumSpec{Name: name, HasBody: hasBody, Members: members, Attributes: attrs, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseEnumMember() (ast.EnumMember, error) {
	t, err := p.expectIdentLike()
	if err != nil {
		return ast.EnumMember{}, err
	}
	id := token.Identifier{Name: t.Value, Pos: t.Pos}
	var val ast.Expr
	if _, ok := p.accept(token.Assign); ok {
		e, err := p.parseConditionalExpr()
		if err != nil {
			return ast.EnumMember{}, err
		}
		val = e
	}
	return ast.EnumMember{Name: id, Value: val, Attrs: p.stamp(t.Pos)}, nil
}

func (p *Parser) parseTypeofSpec() (ast.DeclSpec, error) {
	start := p.cur().Pos
	p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	if p.startsDeclarationSpecifier() {
		tn, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.TypeofTypeSpec{Type: tn, Attrs: p.stamp(start)}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.TypeofExprSpec{Expr: e, Attrs: p.stamp(start)}, nil
}
