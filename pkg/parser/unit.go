package parser

import (
	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/cenv"
	"cparse.dev/ccore/pkg/token"
)

func (p *Parser) parseTranslationUnit() (*ast.TranslationUnit, error) {
	start := p.cur().Pos
	var decls []ast.ExternalDecl
	for !p.at(token.EOF) {
		if p.env.Failed() {
			break
		}
		if _, ok := p.accept(token.Semi); ok {
			continue
		}
		d, err := p.parseExternalDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	if p.env.Failed() {
		return nil, p.env.Err()
	}
	return &ast.TranslationUnit{Decls: decls, Attrs: p.stamp(start)}, nil
}

// parseExternalDecl handles one of: a top-level inline-asm declaration, a
// function definition, or a plain declaration (spec §3 "external-decl").
// __extension__ prefixes are swallowed: they only suppress pedantic
// diagnostics in a real compiler, and the AST has no slot to carry that
// intent since it changes no downstream semantics this tree records.
func (p *Parser) parseExternalDecl() (ast.ExternalDecl, error) {
	for {
		if _, ok := p.accept(token.KwExtension); !ok {
			break
		}
	}
	if p.at(token.KwAsm) {
		stmt, err := p.parseAsmStmt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
		return stmt, nil
	}

	start := p.cur().Pos
	specs, isTypedef, err := p.parseDeclarationSpecifiers()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.Semi); ok {
		return &ast.Declaration{Specifiers: specs, Attrs: p.stamp(start)}, nil
	}

	firstDecl, err := p.parseDeclaratorWithAnnotations()
	if err != nil {
		return nil, err
	}

	if fd := findFunctionDeclarator(firstDecl); fd != nil && !isTypedef && p.looksLikeFunctionBody(fd) {
		return p.parseFuncDefTail(start, specs, firstDecl, fd)
	}
	return p.parseDeclarationTail(start, specs, isTypedef, firstDecl)
}

// looksLikeFunctionBody decides the external-declaration ambiguity between a
// function definition and a plain (possibly prototype) declaration: a
// definition is whatever is immediately followed by `{`, or by an old-style
// (K&R) declaration list before it.
func (p *Parser) looksLikeFunctionBody(fd *ast.FunctionDeclarator) bool {
	if p.at(token.LBrace) {
		return true
	}
	kr, ok := fd.Params.(ast.KRParams)
	return ok && len(kr.Names) > 0 && p.startsDeclarationSpecifier()
}

func (p *Parser) parseFuncDefTail(start token.Position, specs []ast.DeclSpec, decl ast.Declarator, fd *ast.FunctionDeclarator) (ast.ExternalDecl, error) {
	p.env.EnterScope()
	defer p.env.LeaveScope()
	bindParamNames(p.env, fd.Params)

	var oldStyle []*ast.Declaration
	if kr, ok := fd.Params.(ast.KRParams); ok && len(kr.Names) > 0 {
		for !p.at(token.LBrace) {
			if p.env.Failed() {
				return nil, p.env.Err()
			}
			d, err := p.parseKRParamDeclaration()
			if err != nil {
				return nil, err
			}
			oldStyle = append(oldStyle, d)
		}
	}

	bodyStart := p.cur().Pos
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	body, err := p.parseCompoundStmtBody(bodyStart)
	if err != nil {
		return nil, err
	}
	return &ast.FuncDef{
		Specifiers:    specs,
		Declarator:    decl,
		OldStyleDecls: oldStyle,
		Body:          body,
		Attrs:         p.stamp(start),
	}, nil
}

func (p *Parser) parseKRParamDeclaration() (*ast.Declaration, error) {
	start := p.cur().Pos
	specs, _, err := p.parseDeclarationSpecifiers()
	if err != nil {
		return nil, err
	}
	return p.parseDeclarationTail(start, specs, false, nil)
}

// parseDeclarationTail parses the declarator-list tail of a declaration
// (spec §3 "Declaration"), running the typedef-binding state machine (spec
// §4.3) on each declared name as soon as its declarator is known: a
// `typedef` declaration adds every name, anything else shadows it, so the
// next identifier token the lexer produces is classified correctly
// regardless of what it used to mean in an enclosing scope.
func (p *Parser) parseDeclarationTail(start token.Position, specs []ast.DeclSpec, isTypedef bool, firstDecl ast.Declarator) (*ast.Declaration, error) {
	cur := firstDecl
	if cur == nil {
		d, err := p.parseDeclaratorWithAnnotations()
		if err != nil {
			return nil, err
		}
		cur = d
	}

	var declarators []ast.InitDeclarator
	for {
		if id := ast.DeclaredIdentifier(cur); id != nil {
			if isTypedef {
				p.env.AddTypedef(id.Name)
			} else {
				p.env.ShadowTypedef(id.Name)
			}
		}
		initDecl, err := p.parseInitDeclaratorFromDeclarator(cur)
		if err != nil {
			return nil, err
		}
		declarators = append(declarators, initDecl)

		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		next, err := p.parseDeclaratorWithAnnotations()
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.Declaration{Specifiers: specs, Declarators: declarators, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseInitDeclaratorFromDeclarator(decl ast.Declarator) (ast.InitDeclarator, error) {
	pos := decl.Stamp().Pos
	var init ast.Initializer
	if _, ok := p.accept(token.Assign); ok {
		i, err := p.parseInitializer()
		if err != nil {
			return ast.InitDeclarator{}, err
		}
		init = i
	}
	return ast.InitDeclarator{Declarator: decl, Init: init, Attrs: p.stamp(pos)}, nil
}

func bindParamNames(env *cenv.Env, form ast.ParamForm) {
	switch f := form.(type) {
	case ast.KRParams:
		for _, name := range f.Names {
			env.ShadowTypedef(name.Name)
		}
	case ast.PrototypeParams:
		for _, param := range f.Params {
			if id := ast.DeclaredIdentifier(param.Declarator); id != nil {
				env.ShadowTypedef(id.Name)
			}
		}
	}
}

// findFunctionDeclarator descends a declarator chain looking for the
// function-suffix layer: since C never lets a function directly return
// another function (a pointer always intervenes), the first one found
// descending from the root is the one that matters for deciding whether an
// external declaration is a definition.
func findFunctionDeclarator(d ast.Declarator) *ast.FunctionDeclarator {
	switch n := d.(type) {
	case *ast.FunctionDeclarator:
		return n
	case *ast.PointerDeclarator:
		return findFunctionDeclarator(n.Inner)
	case *ast.ArrayDeclarator:
		return findFunctionDeclarator(n.Inner)
	default:
		return nil
	}
}
