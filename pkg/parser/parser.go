// Package parser is the grammar engine (spec layer L3): a hand-written
// recursive-descent parser driving pkg/lexer through the scoped typedef
// environment of pkg/cenv and building the pkg/ast tree.
//
// Spec §9 sanctions recursive descent as the language-neutral substitute
// for an LALR(1) generator whenever the generator cannot run semantic
// actions mid-parse: "if the chosen parser generator does not support
// mid-parse actions, the same effect can be obtained by a hand-written
// recursive-descent ... parser where the relevant actions run between
// token consumptions." The typedef/ordinary-identifier ambiguity (the
// lexer hack, spec §4.2) is exactly such an action: AddTypedef/ShadowTypedef
// must run before the next token is fetched, so every declarator production
// below is careful to register its binding immediately after building the
// declarator and before asking for another token.
package parser

import (
	"github.com/pkg/errors"

	"cparse.dev/ccore/pkg/ast"
	"cparse.dev/ccore/pkg/cenv"
	"cparse.dev/ccore/pkg/lexer"
	"cparse.dev/ccore/pkg/token"
)

// Parser holds the mutable state of one translation-unit parse: the monad
// (scope stack, fresh-id counter, first-error slot) and a small lookahead
// buffer over the lexer's token stream.
//
// The buffer is deliberately shallow. Buffering tokens ahead of the point
// where the grammar has registered typedef/ordinary bindings would let the
// lexer classify an identifier before the binding that should govern it
// exists (spec §4.2's hack requires the environment to be current "at
// every token fetch"). Every call site that peeks more than one token
// ahead does so only across a span that cannot contain a declarator
// binding (e.g. distinguishing a cast from a parenthesized expression).
type Parser struct {
	env *cenv.Env
	lex *lexer.Lexer
	buf []token.Token
}

// Parse implements spec §6's entry point: parse(input-bytes,
// initial-position, builtin-typedef-names, initial-unique-id) -> the
// translation unit, or the first recorded *cenv.ParseError.
func Parse(file string, src []byte, start token.Position, builtinTypedefNames []string, startID uint64) (*ast.TranslationUnit, error) {
	env := cenv.New(builtinTypedefNames, startID)
	p := &Parser{env: env, lex: lexer.New(file, src, start)}
	tu, err := p.parseTranslationUnit()
	if env.Failed() {
		return nil, env.Err()
	}
	if err != nil {
		return nil, err
	}
	return tu, nil
}

func (p *Parser) peek(n int) token.Token {
	for len(p.buf) <= n {
		t, err := p.lex.Next(p.env)
		if err != nil {
			if le, ok := err.(interface{ Error() string }); ok {
				p.env.Fail(cenv.LexicalError, t.Pos, le.Error())
			}
			t.Kind = token.Invalid
		}
		p.buf = append(p.buf, t)
	}
	return p.buf[n]
}

func (p *Parser) cur() token.Token { return p.peek(0) }

// advance consumes and returns the current token, recording its position in
// the monad (spec §4.1: the grammar engine calls SetPos after every
// successful token fetch).
func (p *Parser) advance() token.Token {
	t := p.peek(0)
	p.buf = append(p.buf[:0], p.buf[1:]...)
	p.env.SetPos(t.Pos)
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if t, ok := p.accept(k); ok {
		return t, nil
	}
	return token.Token{}, p.syntaxErrorf("expected %s, found %s", k, p.cur())
}

func (p *Parser) stamp(pos token.Position) ast.Attrs {
	return ast.NewAttrs(pos, p.env.FreshName())
}

func (p *Parser) syntaxErrorf(format string, args ...interface{}) error {
	pe := p.env.Failf(cenv.SyntaxError, p.cur().Pos, format, args...)
	return pe
}

func (p *Parser) semanticErrorf(pos token.Position, format string, args ...interface{}) error {
	pe := p.env.Failf(cenv.SemanticActionError, pos, format, args...)
	return pe
}

func (p *Parser) wrapf(err error, format string, args ...interface{}) error {
	if p.env.Failed() {
		return p.env.Err()
	}
	return errors.Wrapf(err, format, args...)
}
