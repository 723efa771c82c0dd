package lexer_test

import (
	"testing"

	"cparse.dev/ccore/pkg/lexer"
	"cparse.dev/ccore/pkg/token"
)

type typedefSet map[string]bool

func (s typedefSet) IsTypedef(name string) bool { return s[name] }

func scanAll(t *testing.T, src string, cls lexer.Classifier) []token.Token {
	t.Helper()
	l := lexer.New("t.c", []byte(src), token.Position{File: "t.c", Line: 1, Column: 1})
	var toks []token.Token
	for {
		tok, err := l.Next(cls)
		if err != nil {
			t.Fatalf("unexpected lex error: %s", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestIdentAndKeywordClassification(t *testing.T) {
	cls := typedefSet{"Widget": true}
	toks := scanAll(t, "Widget foo return", cls)

	want := []struct {
		kind token.Kind
		text string
	}{
		{token.TypedefName, "Widget"},
		{token.Ident, "foo"},
		{token.KwReturn, "return"},
		{token.EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Kind != w.kind {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, w.kind)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	t.Run("decimal integer", func(t *testing.T) {
		toks := scanAll(t, "42", nil)
		if toks[0].Kind != token.IntConst || toks[0].Value != "42" {
			t.Fatalf("got %+v", toks[0])
		}
	})
	t.Run("hex integer with unsigned-long suffix", func(t *testing.T) {
		toks := scanAll(t, "0xFFul", nil)
		if toks[0].Kind != token.IntConst || toks[0].Value != "0xFF" {
			t.Fatalf("got %+v", toks[0])
		}
		if toks[0].Flags&token.FlagUnsigned == 0 || toks[0].Flags&token.FlagLong == 0 {
			t.Fatalf("expected unsigned+long flags, got %v", toks[0].Flags)
		}
	})
	t.Run("float with exponent", func(t *testing.T) {
		toks := scanAll(t, "1.5e10", nil)
		if toks[0].Kind != token.FloatConst || toks[0].Value != "1.5e10" {
			t.Fatalf("got %+v", toks[0])
		}
	})
	t.Run("float suffix", func(t *testing.T) {
		toks := scanAll(t, "3.0f", nil)
		if toks[0].Kind != token.FloatConst || toks[0].Flags&token.FlagFloat == 0 {
			t.Fatalf("got %+v", toks[0])
		}
	})
}

func TestStringAndCharLiterals(t *testing.T) {
	t.Run("string with escapes", func(t *testing.T) {
		toks := scanAll(t, `"a\nb"`, nil)
		if toks[0].Kind != token.StringConst || toks[0].Value != "a\nb" {
			t.Fatalf("got %+v", toks[0])
		}
	})
	t.Run("char literal", func(t *testing.T) {
		toks := scanAll(t, `'x'`, nil)
		if toks[0].Kind != token.CharConst || toks[0].Value != "x" {
			t.Fatalf("got %+v", toks[0])
		}
	})
	t.Run("unterminated string is a lexical error", func(t *testing.T) {
		l := lexer.New("t.c", []byte(`"abc`), token.Position{File: "t.c", Line: 1, Column: 1})
		if _, err := l.Next(nil); err == nil {
			t.Fatalf("expected an error for an unterminated string")
		}
	})
}

func TestPunctuatorsPreferLongestMatch(t *testing.T) {
	toks := scanAll(t, "<<= << < a->b", nil)
	want := []token.Kind{token.ShlEq, token.Shl, token.Lt, token.Ident, token.Arrow, token.Ident, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestCommentsAndWhitespaceAreSkipped(t *testing.T) {
	toks := scanAll(t, "a /* block\ncomment */ b // line comment\n c", nil)
	var names []string
	for _, tok := range toks {
		if tok.Kind == token.Ident {
			names = append(names, tok.Text)
		}
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("got idents %v", names)
	}
}

func TestPositionsAdvanceAcrossLines(t *testing.T) {
	toks := scanAll(t, "a\nbb", nil)
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Fatalf("first token position: %+v", toks[0].Pos)
	}
	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 1 {
		t.Fatalf("second token position: %+v", toks[1].Pos)
	}
}
