package parser

import (
	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/token"
)

func (p *Parser) parseInitializer() (ast.Initializer, error) {
	if p.at(token.LBrace) {
		return p.parseListInitializer()
	}
	start := p.cur().Pos
	e, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ExprInitializer{Expr: e, Attrs: p.stamp(start)}, nil
}

// parseListInitializer parses a brace-enclosed initializer list, tolerating
// a trailing comma before the closing brace (spec §4.3).
func (p *Parser) parseListInitializer() (*ast.ListInitializer, error) {
	start := p.cur().Pos
	p.advance()
	var items []ast.InitializerItem
	for !p.at(token.RBrace) {
		if p.env.Failed() {
			return nil, p.env.Err()
		}
		item, err := p.parseInitializerItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.ListInitializer{Items: items, Attrs: p.stamp(start)}, nil
}

func (p *Parser) parseInitializerItem() (ast.InitializerItem, error) {
	start := p.cur().Pos
	designators, err := p.parseDesignatorListOpt()
	if err != nil {
		return ast.InitializerItem{}, err
	}
	if len(designators) > 0 {
		if _, err := p.expect(token.Assign); err != nil {
			return ast.InitializerItem{}, err
		}
	}
	init, err := p.parseInitializer()
	if err != nil {
		return ast.InitializerItem{}, err
	}
	return ast.InitializerItem{Designators: designators, Init: init, Attrs: p.stamp(start)}, nil
}

// parseDesignatorListOpt parses zero or more `[index]`/`[lo ... hi]`/`.member`
// designators (spec §3/GLOSSARY "Designator"); the GNU range form is an
// extension over plain C99 index designators.
func (p *Parser) parseDesignatorListOpt() ([]ast.Designator, error) {
	var out []ast.Designator
	for {
		switch {
		case p.at(token.LBracket):
			p.advance()
			lo, err := p.parseConditionalExpr()
			if err != nil {
				return nil, err
			}
			if _, ok := p.accept(token.Ellipsis); ok {
				hi, err := p.parseConditionalExpr()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(token.RBracket); err != nil {
					return nil, err
				}
				out = append(out, ast.RangeDesignator{Low: lo, High: hi})
				continue
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			out = append(out, ast.IndexDesignator{Index: lo})

		case p.at(token.Dot):
			p.advance()
			t, err := p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			out = append(out, ast.MemberDesignator{Name: token.Identifier{Name: t.Value, Pos: t.Pos}})

		default:
			return out, nil
		}
	}
}
