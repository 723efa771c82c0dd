package parser

import (
	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/token"
)

// parseAttributesOpt parses zero or more consecutive `__attribute__((...))`
// clauses, flattening every clause's items into one slice — GCC treats
// `__attribute__((a)) __attribute__((b))` the same as `__attribute__((a,
// b))`.
func (p *Parser) parseAttributesOpt() ([]ast.GNUAttribute, error) {
	var out []ast.GNUAttribute
	for p.at(token.KwAttribute) {
		attrs, err := p.parseAttributeSpecifier()
		if err != nil {
			return nil, err
		}
		out = append(out, attrs...)
	}
	return out, nil
}

func (p *Parser) parseAttributeSpecifier() ([]ast.GNUAttribute, error) {
	p.advance() // __attribute__
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var attrs []ast.GNUAttribute
	for !p.at(token.RParen) {
		if p.env.Failed() {
			return nil, p.env.Err()
		}
		if _, ok := p.accept(token.Comma); ok {
			continue // empty list element, e.g. __attribute__((a, , b))
		}
		a, err := p.parseOneAttribute()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return attrs, nil
}

// parseOneAttribute accepts `const` as a valid attribute name alongside
// ordinary identifiers: GCC's grammar special-cases it since it would
// otherwise collide with the type-qualifier keyword (spec GLOSSARY
// "attribute-as-qualifier").
func (p *Parser) parseOneAttribute() (ast.GNUAttribute, error) {
	start := p.cur().Pos
	var nameTok token.Token
	if p.at(token.KwConst) {
		nameTok = p.advance()
	} else {
		t, ok := p.acceptIdentLike()
		if !ok {
			return ast.GNUAttribute{}, p.syntaxErrorf("expected attribute name, found %s", p.cur())
		}
		nameTok = t
	}
	name := token.Identifier{Name: nameTok.Value, Pos: nameTok.Pos}

	var args []ast.Expr
	if _, ok := p.accept(token.LParen); ok {
		if !p.at(token.RParen) {
			for {
				e, err := p.parseAssignExpr()
				if err != nil {
					return ast.GNUAttribute{}, err
				}
				args = append(args, e)
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
			}
		}
		if _, err := p.expect(token.RParen); err != nil {
			return ast.GNUAttribute{}, err
		}
	}
	return ast.GNUAttribute{Name: name, Args: args, Attrs: p.stamp(start)}, nil
}
