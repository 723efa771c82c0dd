package parser

import (
	"strconv"
	"strings"

	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/token"
)

var assignOps = map[token.Kind]bool{
	token.Assign: true, token.PlusEq: true, token.MinusEq: true, token.StarEq: true,
	token.SlashEq: true, token.PercentEq: true, token.AmpEq: true, token.PipeEq: true,
	token.CaretEq: true, token.ShlEq: true, token.ShrEq: true,
}

// parseExpr is the comma-expression production, the widest grammar
// nonterminal (spec §3 "CommaExpr").
func (p *Parser) parseExpr() (ast.Expr, error) {
	start := p.cur().Pos
	first, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Comma) {
		return first, nil
	}
	exprs := []ast.Expr{first}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		e, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return &ast.CommaExpr{Exprs: exprs, Attrs: p.stamp(start)}, nil
}

// parseAssignExpr restricts its lhs to a unary-expression shape, stricter
// than gcc (which tolerates a cast or parenthesized binary expression on the
// left). The lhs is parsed as a full conditional-expression because nothing
// shorter can cover every legal unary-expression form (postfix chains,
// prefix operators, sizeof/alignof, the GNU builtins); once parsed, a
// structural check rejects anything an assignment-operator follows that
// isn't actually a unary-expression in disguise.
func (p *Parser) parseAssignExpr() (ast.Expr, error) {
	start := p.cur().Pos
	lhs, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	if assignOps[p.cur().Kind] {
		if !isUnaryExprShape(lhs) {
			return nil, p.syntaxErrorf("left-hand side of assignment must be a unary expression")
		}
		op := p.advance().Kind
		rhs, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Op: op, Lhs: lhs, Rhs: rhs, Attrs: p.stamp(start)}, nil
	}
	return lhs, nil
}

// isUnaryExprShape reports whether e is exactly the shape parseUnaryExpr (or
// something it calls down to) can produce: a postfix/primary chain, a prefix
// operator, sizeof/alignof, or one of the GNU unary-position builtins. A
// BinaryExpr, CondExpr, CommaExpr, AssignExpr, or explicit CastExpr at the
// top is never a unary-expression, even after an unwrapped parenthesization
// (parenthesized expressions carry no wrapper node, so the check sees
// straight through to whatever syntax the parens actually contained).
func isUnaryExprShape(e ast.Expr) bool {
	switch e.(type) {
	case *ast.UnaryExpr, *ast.SizeofExpr, *ast.SizeofTypeExpr, *ast.AlignofExpr, *ast.AlignofTypeExpr,
		*ast.ComplexRealExpr, *ast.ComplexImagExpr, *ast.LabelAddrExpr, *ast.VaArgExpr,
		*ast.OffsetofExpr, *ast.TypesCompatibleExpr,
		*ast.VarExpr, *ast.IntLit, *ast.FloatLit, *ast.CharLit, *ast.StringLit,
		*ast.IndexExpr, *ast.CallExpr, *ast.MemberExpr, *ast.CompoundLiteralExpr, *ast.StmtExpr:
		return true
	default:
		return false
	}
}

// parseConditionalExpr also accepts the GNU elision `a ?: b`, where Then is
// left nil (spec §4.3).
func (p *Parser) parseConditionalExpr() (ast.Expr, error) {
	start := p.cur().Pos
	cond, err := p.parseLogicalOrExpr()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.Question); !ok {
		return cond, nil
	}
	var then ast.Expr
	if !p.at(token.Colon) {
		t, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		then = t
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	els, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	return &ast.CondExpr{Cond: cond, Then: then, Else: els, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseBinaryLevel(next func() (ast.Expr, error), kinds ...token.Kind) (ast.Expr, error) {
	start := p.cur().Pos
	lhs, err := next()
	if err != nil {
		return nil, err
	}
	for containsKind(kinds, p.cur().Kind) {
		op := p.advance().Kind
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs, Attrs: p.stamp(start)}
	}
	return lhs, nil
}

func containsKind(ks []token.Kind, k token.Kind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}

func (p *Parser) parseLogicalOrExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseLogicalAndExpr, token.PipePipe)
}
func (p *Parser) parseLogicalAndExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitOrExpr, token.AmpAmp)
}
func (p *Parser) parseBitOrExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitXorExpr, token.Pipe)
}
func (p *Parser) parseBitXorExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitAndExpr, token.Caret)
}
func (p *Parser) parseBitAndExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseEqualityExpr, token.Amp)
}
func (p *Parser) parseEqualityExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseRelationalExpr, token.EqEq, token.NotEq)
}
func (p *Parser) parseRelationalExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseShiftExpr, token.Lt, token.Gt, token.Le, token.Ge)
}
func (p *Parser) parseShiftExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseAdditiveExpr, token.Shl, token.Shr)
}
func (p *Parser) parseAdditiveExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseMultiplicativeExpr, token.Plus, token.Minus)
}
func (p *Parser) parseMultiplicativeExpr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseCastExpr, token.Star, token.Slash, token.Percent)
}

// parseCastExpr resolves the cast/parenthesized-expression ambiguity the
// same way parseDirectDeclaratorGeneric resolves its own: a `(` followed by
// something that can only start a declaration-specifier means a type-name,
// and hence a cast (or, if a brace follows the closing paren, a GNU
// compound literal).
func (p *Parser) parseCastExpr() (ast.Expr, error) {
	if p.at(token.LParen) && kindStartsDeclarationSpecifier(p.peek(1).Kind) {
		start := p.cur().Pos
		p.advance()
		tn, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		if p.at(token.LBrace) {
			init, err := p.parseListInitializer()
			if err != nil {
				return nil, err
			}
			lit := &ast.CompoundLiteralExpr{Type: tn, Init: *init, Attrs: p.stamp(start)}
			return p.parsePostfixTail(lit)
		}
		e, err := p.parseCastExpr()
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{Type: tn, Expr: e, Attrs: p.stamp(start)}, nil
	}
	return p.parseUnaryExpr()
}

func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	start := p.cur().Pos
	switch p.cur().Kind {
	case token.Inc:
		p.advance()
		e, err := p.parseUnaryExpr()
		return unaryOrErr(ast.PreInc, e, p.stamp(start), err)
	case token.Dec:
		p.advance()
		e, err := p.parseUnaryExpr()
		return unaryOrErr(ast.PreDec, e, p.stamp(start), err)
	case token.Amp:
		p.advance()
		e, err := p.parseCastExpr()
		return unaryOrErr(ast.AddrOf, e, p.stamp(start), err)
	case token.AmpAmp:
		// GNU label-address &&label, distinguished from logical-and purely
		// by appearing in unary-expression position.
		p.advance()
		t, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		return &ast.LabelAddrExpr{Label: token.Identifier{Name: t.Value, Pos: t.Pos}, Attrs: p.stamp(start)}, nil
	case token.Star:
		p.advance()
		e, err := p.parseCastExpr()
		return unaryOrErr(ast.Deref, e, p.stamp(start), err)
	case token.Plus:
		p.advance()
		e, err := p.parseCastExpr()
		return unaryOrErr(ast.UnaryPlus, e, p.stamp(start), err)
	case token.Minus:
		p.advance()
		e, err := p.parseCastExpr()
		return unaryOrErr(ast.UnaryMinus, e, p.stamp(start), err)
	case token.Tilde:
		p.advance()
		e, err := p.parseCastExpr()
		return unaryOrErr(ast.BitNot, e, p.stamp(start), err)
	case token.Bang:
		p.advance()
		e, err := p.parseCastExpr()
		return unaryOrErr(ast.LogicalNot, e, p.stamp(start), err)
	case token.KwSizeof:
		return p.parseSizeofExpr()
	case token.KwAlignof:
		return p.parseAlignofExpr()
	case token.KwReal:
		p.advance()
		e, err := p.parseCastExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ComplexRealExpr{Expr: e, Attrs: p.stamp(start)}, nil
	case token.KwImag:
		p.advance()
		e, err := p.parseCastExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ComplexImagExpr{Expr: e, Attrs: p.stamp(start)}, nil
	case token.KwExtension:
		p.advance()
		return p.parseCastExpr()
	case token.KwBuiltinVaArg:
		return p.parseVaArgExpr()
	case token.KwBuiltinOffsetof:
		return p.parseOffsetofExpr()
	case token.KwBuiltinTypesCompatibleP:
		return p.parseTypesCompatibleExpr()
	default:
		return p.parsePostfixExpr()
	}
}

func unaryOrErr(op ast.UnaryOp, e ast.Expr, attrs ast.Attrs, err error) (ast.Expr, error) {
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Expr: e, Attrs: attrs}, nil
}

func (p *Parser) parseSizeofExpr() (ast.Expr, error) {
	start := p.advance().Pos
	if p.at(token.LParen) && kindStartsDeclarationSpecifier(p.peek(1).Kind) {
		p.advance()
		tn, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.SizeofTypeExpr{Type: tn, Attrs: p.stamp(start)}, nil
	}
	e, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	return &ast.SizeofExpr{Expr: e, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseAlignofExpr() (ast.Expr, error) {
	start := p.advance().Pos
	if p.at(token.LParen) && kindStartsDeclarationSpecifier(p.peek(1).Kind) {
		p.advance()
		tn, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.AlignofTypeExpr{Type: tn, Attrs: p.stamp(start)}, nil
	}
	e, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AlignofExpr{Expr: e, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseVaArgExpr() (ast.Expr, error) {
	start := p.advance().Pos
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	args, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}
	tn, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.VaArgExpr{Args: args, Type: tn, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseOffsetofExpr() (ast.Expr, error) {
	start := p.advance().Pos
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	tn, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}
	t, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	designators := []ast.OffsetofDesignator{ast.OffsetofMember{Name: token.Identifier{Name: t.Value, Pos: t.Pos}}}
designatorLoop:
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			m, err := p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			designators = append(designators, ast.OffsetofMember{Name: token.Identifier{Name: m.Value, Pos: m.Pos}})
		case p.at(token.LBracket):
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			designators = append(designators, ast.OffsetofIndex{Index: idx})
		default:
			break designatorLoop
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.OffsetofExpr{Type: tn, Designators: designators, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseTypesCompatibleExpr() (ast.Expr, error) {
	start := p.advance().Pos
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	t1, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}
	t2, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.TypesCompatibleExpr{Type1: t1, Type2: t2, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parsePostfixExpr() (ast.Expr, error) {
	base, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixTail(base)
}

func (p *Parser) parsePostfixTail(base ast.Expr) (ast.Expr, error) {
	start := base.Stamp().Pos
	for {
		switch {
		case p.at(token.LBracket):
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			base = &ast.IndexExpr{Base: base, Index: idx, Attrs: p.stamp(start)}

		case p.at(token.LParen):
			p.advance()
			var args []ast.Expr
			if !p.at(token.RParen) {
				for {
					a, err := p.parseAssignExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if _, ok := p.accept(token.Comma); !ok {
						break
					}
				}
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			base = &ast.CallExpr{Func: base, Args: args, Attrs: p.stamp(start)}

		case p.at(token.Dot):
			p.advance()
			t, err := p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			base = &ast.MemberExpr{Base: base, Member: token.Identifier{Name: t.Value, Pos: t.Pos}, Attrs: p.stamp(start)}

		case p.at(token.Arrow):
			p.advance()
			t, err := p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			base = &ast.MemberExpr{Base: base, Arrow: true, Member: token.Identifier{Name: t.Value, Pos: t.Pos}, Attrs: p.stamp(start)}

		case p.at(token.Inc):
			p.advance()
			base = &ast.UnaryExpr{Op: ast.PostInc, Expr: base, Attrs: p.stamp(start)}

		case p.at(token.Dec):
			p.advance()
			base = &ast.UnaryExpr{Op: ast.PostDec, Expr: base, Attrs: p.stamp(start)}

		default:
			return base, nil
		}
	}
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	start := p.cur().Pos
	switch p.cur().Kind {
	case token.Ident:
		t := p.advance()
		return &ast.VarExpr{Name: token.Identifier{Name: t.Value, Pos: t.Pos}, Attrs: p.stamp(start)}, nil

	case token.IntConst:
		t := p.advance()
		val, _ := strconv.ParseUint(t.Value, 0, 64)
		return &ast.IntLit{Text: t.Text, Value: val, Flags: t.Flags, Attrs: p.stamp(start)}, nil

	case token.FloatConst:
		t := p.advance()
		return &ast.FloatLit{Text: t.Text, Flags: t.Flags, Attrs: p.stamp(start)}, nil

	case token.CharConst:
		t := p.advance()
		var r rune
		for _, rr := range t.Value {
			r = rr
			break
		}
		return &ast.CharLit{Value: r, Attrs: p.stamp(start)}, nil

	case token.StringConst:
		return p.parseConcatenatedStringLit(), nil

	case token.LParen:
		p.advance()
		if p.at(token.LBrace) {
			body, err := p.parseCompoundStmt()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			return &ast.StmtExpr{Body: body, Attrs: p.stamp(start)}, nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return e, nil

	default:
		return nil, p.syntaxErrorf("expected expression, found %s", p.cur())
	}
}

// parseConcatenatedStringLit folds one or more adjacent string-literal
// tokens into a single StringLit (spec §4.3 tie-break note).
func (p *Parser) parseConcatenatedStringLit() ast.Expr {
	start := p.cur().Pos
	var sb strings.Builder
	for p.at(token.StringConst) {
		sb.WriteString(p.advance().Value)
	}
	return &ast.StringLit{Value: sb.String(), Attrs: p.stamp(start)}
}
