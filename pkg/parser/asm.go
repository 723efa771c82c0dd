package parser

import (
	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/token"
)

// parseAsmStmt parses a GNU extended-asm construct (spec §3/§4.3): it
// serves both the statement form and the top-level declaration form, since
// the two share identical syntax.
func (p *Parser) parseAsmStmt() (*ast.AsmStmt, error) {
	start := p.advance().Pos // 'asm'

	var quals []ast.AsmQualifier
qualLoop:
	for {
		switch p.cur().Kind {
		case token.KwVolatile:
			p.advance()
			quals = append(quals, ast.AsmVolatile)
		case token.KwInline:
			p.advance()
			quals = append(quals, ast.AsmInline)
		case token.KwGoto:
			p.advance()
			quals = append(quals, ast.AsmGoto)
		default:
			break qualLoop
		}
	}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	tmplTok, err := p.expect(token.StringConst)
	if err != nil {
		return nil, err
	}
	template := &ast.StringLit{Value: tmplTok.Value, Attrs: p.stamp(tmplTok.Pos)}
	stmt := &ast.AsmStmt{Qualifiers: quals, Template: template}

	if _, ok := p.accept(token.Colon); ok {
		outs, err := p.parseAsmOperandList()
		if err != nil {
			return nil, err
		}
		stmt.Outputs = outs

		if _, ok := p.accept(token.Colon); ok {
			ins, err := p.parseAsmOperandList()
			if err != nil {
				return nil, err
			}
			stmt.Inputs = ins

			if _, ok := p.accept(token.Colon); ok {
				clobbers, err := p.parseAsmClobberList()
				if err != nil {
					return nil, err
				}
				stmt.Clobbers = clobbers

				if _, ok := p.accept(token.Colon); ok {
					labels, err := p.parseAsmGotoLabelList()
					if err != nil {
						return nil, err
					}
					stmt.GotoLabels = labels
				}
			}
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	stmt.Attrs = p.stamp(start)
	return stmt, nil
}

func (p *Parser) parseAsmOperandList() ([]ast.AsmOperand, error) {
	var out []ast.AsmOperand
	if p.at(token.Colon) || p.at(token.RParen) {
		return out, nil
	}
	for {
		op, err := p.parseAsmOperand()
		if err != nil {
			return nil, err
		}
		out = append(out, op)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	return out, nil
}

func (p *Parser) parseAsmOperand() (ast.AsmOperand, error) {
	start := p.cur().Pos
	var name *token.Identifier
	if _, ok := p.accept(token.LBracket); ok {
		t, err := p.expectIdentLike()
		if err != nil {
			return ast.AsmOperand{}, err
		}
		id := token.Identifier{Name: t.Value, Pos: t.Pos}
		name = &id
		if _, err := p.expect(token.RBracket); err != nil {
			return ast.AsmOperand{}, err
		}
	}
	constraint, err := p.expect(token.StringConst)
	if err != nil {
		return ast.AsmOperand{}, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return ast.AsmOperand{}, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return ast.AsmOperand{}, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.AsmOperand{}, err
	}
	return ast.AsmOperand{Name: name, Constraint: constraint.Value, Expr: e, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseAsmClobberList() ([]string, error) {
	var out []string
	if p.at(token.Colon) || p.at(token.RParen) {
		return out, nil
	}
	for {
		t, err := p.expect(token.StringConst)
		if err != nil {
			return nil, err
		}
		out = append(out, t.Value)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	return out, nil
}

func (p *Parser) parseAsmGotoLabelList() ([]token.Identifier, error) {
	var out []token.Identifier
	if p.at(token.RParen) {
		return out, nil
	}
	for {
		t, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		out = append(out, token.Identifier{Name: t.Value, Pos: t.Pos})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	return out, nil
}
