package parser

import (
	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/token"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.at(token.LBrace):
		return p.parseCompoundStmt()
	case p.at(token.KwIf):
		return p.parseIfStmt()
	case p.at(token.KwSwitch):
		return p.parseSwitchStmt()
	case p.at(token.KwWhile):
		return p.parseWhileStmt()
	case p.at(token.KwDo):
		return p.parseDoWhileStmt()
	case p.at(token.KwFor):
		return p.parseForStmt()
	case p.at(token.KwGoto):
		return p.parseGotoStmt()
	case p.at(token.KwContinue):
		t := p.advance()
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Attrs: p.stamp(t.Pos)}, nil
	case p.at(token.KwBreak):
		t := p.advance()
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Attrs: p.stamp(t.Pos)}, nil
	case p.at(token.KwReturn):
		return p.parseReturnStmt()
	case p.at(token.KwCase):
		return p.parseCaseStmt()
	case p.at(token.KwDefault):
		return p.parseDefaultStmt()
	case p.at(token.KwAsm):
		stmt, err := p.parseAsmStmt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
		return stmt, nil
	case (p.at(token.Ident) || p.at(token.TypedefName)) && p.peek(1).Kind == token.Colon:
		return p.parseLabeledStmt()
	case p.at(token.Semi):
		t := p.advance()
		return &ast.ExprStmt{Attrs: p.stamp(t.Pos)}, nil
	default:
		start := p.cur().Pos
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e, Attrs: p.stamp(start)}, nil
	}
}

// parseCompoundStmt opens a new typedef scope for the block's lifetime
// (spec §4.3): every declaration inside shadows or extends bindings only
// until the closing brace.
func (p *Parser) parseCompoundStmt() (*ast.CompoundStmt, error) {
	start := p.cur().Pos
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	p.env.EnterScope()
	defer p.env.LeaveScope()
	return p.parseCompoundStmtBody(start)
}

// parseCompoundStmtBody parses a compound statement's local-label
// declarations and block items, assuming the opening brace has already
// been consumed and the scope for this block is already open — shared by
// parseCompoundStmt and the function-definition path, which reuses the
// parameter scope as the body's scope instead of opening a second one.
func (p *Parser) parseCompoundStmtBody(start token.Position) (*ast.CompoundStmt, error) {
	var labels []token.Identifier
	for p.at(token.KwLabel) {
		p.advance()
		for {
			t, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			labels = append(labels, token.Identifier{Name: t.Value, Pos: t.Pos})
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
	}

	var items []ast.BlockItem
	for !p.at(token.RBrace) {
		if p.env.Failed() {
			return nil, p.env.Err()
		}
		item, err := p.parseBlockItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.CompoundStmt{LocalLabels: labels, Items: items, Attrs: p.stamp(start)}, nil
}

// parseBlockItem mixes declarations, nested function definitions (a GNU
// extension), and statements freely, per spec §4.3.
func (p *Parser) parseBlockItem() (ast.BlockItem, error) {
	for {
		if _, ok := p.accept(token.KwExtension); !ok {
			break
		}
	}
	if !p.startsDeclarationSpecifier() {
		return p.parseStatement()
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
	if fd := findFunctionDeclarator(firstDecl); fd != nil && !isTypedef && p.at(token.LBrace) {
		def, err := p.parseFuncDefTail(start, specs, firstDecl, fd)
		if err != nil {
			return nil, err
		}
		return def.(*ast.FuncDef), nil
	}
	return p.parseDeclarationTail(start, specs, isTypedef, firstDecl)
}

func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	start := p.advance().Pos
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	// Greedily consuming a trailing `else` here is what resolves the
	// dangling-else ambiguity by shift (spec §4.3): it always binds to
	// this, the nearest still-open `if`.
	if _, ok := p.accept(token.KwElse); ok {
		e, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		elseStmt = e
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseSwitchStmt() (*ast.SwitchStmt, error) {
	start := p.advance().Pos
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.SwitchStmt{Expr: e, Body: body, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	start := p.advance().Pos
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseDoWhileStmt() (*ast.DoWhileStmt, error) {
	start := p.advance().Pos
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwWhile); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.DoWhileStmt{Body: body, Cond: cond, Attrs: p.stamp(start)}, nil
}

// parseForStmt opens a scope around the entire statement when the init
// clause is a declaration, so names it introduces are visible to the
// condition, the post-expression, and the body, and vanish after the loop
// (spec §4.3).
func (p *Parser) parseForStmt() (*ast.ForStmt, error) {
	start := p.advance().Pos
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	if p.startsDeclarationSpecifier() {
		p.env.EnterScope()
		defer p.env.LeaveScope()
	}

	stmt := &ast.ForStmt{}
	switch {
	case p.startsDeclarationSpecifier():
		dstart := p.cur().Pos
		specs, isTypedef, err := p.parseDeclarationSpecifiers()
		if err != nil {
			return nil, err
		}
		decl, err := p.parseDeclarationTail(dstart, specs, isTypedef, nil)
		if err != nil {
			return nil, err
		}
		stmt.InitDecl = decl
	case p.at(token.Semi):
		p.advance()
	default:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.InitExpr = e
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
	}

	if !p.at(token.Semi) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Cond = e
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}

	if !p.at(token.RParen) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Post = e
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	stmt.Attrs = p.stamp(start)
	return stmt, nil
}

func (p *Parser) parseGotoStmt() (ast.Stmt, error) {
	start := p.advance().Pos
	if _, ok := p.accept(token.Star); ok {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
		return &ast.ComputedGotoStmt{Expr: e, Attrs: p.stamp(start)}, nil
	}
	t, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.GotoStmt{Label: token.Identifier{Name: t.Value, Pos: t.Pos}, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, error) {
	start := p.advance().Pos
	var e ast.Expr
	if !p.at(token.Semi) {
		ex, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		e = ex
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: e, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseCaseStmt() (ast.Stmt, error) {
	start := p.advance().Pos
	lo, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.Ellipsis); ok {
		hi, err := p.parseConditionalExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return &ast.CaseRangeStmt{Low: lo, High: hi, Stmt: s, Attrs: p.stamp(start)}, nil
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.CaseStmt{Expr: lo, Stmt: s, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseDefaultStmt() (*ast.DefaultStmt, error) {
	start := p.advance().Pos
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.DefaultStmt{Stmt: s, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseLabeledStmt() (*ast.LabeledStmt, error) {
	t, _ := p.acceptIdentLike()
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	attrs, err := p.parseAttributesOpt()
	if err != nil {
		return nil, err
	}
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.LabeledStmt{
		Label:      token.Identifier{Name: t.Value, Pos: t.Pos},
		Attributes: attrs,
		Stmt:       s,
		Attrs:      p.stamp(t.Pos),
	}, nil
}
