// Package lexer is a reference implementation of the external collaborator
// spec §4.2/§6 describes: something that turns preprocessed C source bytes
// into the token stream pkg/parser consumes. pkg/parser drives this
// package's *Lexer directly, so the core is runnable end-to-end without a
// caller having to supply their own tokenizer.
//
// String and character literal recognition is built on
// github.com/prataprc/goparsec's scanner combinators, the same dependency
// its-hmny-nand2tetris's own token-level parsers (pkg/jack/parsing.go,
// pkg/asm/parsing.go) are built on. Numeric constants are hand-scanned:
// sniffNumeral's digit-by-digit walk needs to know exactly where the core
// numeral ends to find the suffix, which a combinator match wouldn't give
// it back any more directly.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	pc "github.com/prataprc/goparsec"

	"cparse.dev/ccore/pkg/token"
)

// Classifier resolves whether a lexeme is currently bound as a typedef
// name, the hook spec §4.2 requires be consulted "at every token fetch".
// cenv.Env.IsTypedef satisfies this; the lexer package itself does not
// depend on cenv so that a caller can drive the lexer standalone (e.g. for
// a syntax-highlighting use that never needs real scope tracking).
type Classifier interface {
	IsTypedef(name string) bool
}

// Error is a lexical error (spec §7): the lexer could not form a token at
// Pos.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

func errf(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Lexer tokenizes one translation unit's worth of preprocessed source.
type Lexer struct {
	file string
	src  []byte
	off  int
	pos  token.Position
}

// New returns a Lexer starting at start (commonly (file, 1, 1), per spec §6
// "initial-position").
func New(file string, src []byte, start token.Position) *Lexer {
	return &Lexer{file: file, src: src, pos: start}
}

var stringLitParser = pc.Token(`"(?:\\.|[^"\\])*"`, "STRING")
var charLitParser = pc.Token(`'(?:\\.|[^'\\])*'`, "CHAR")

// Next returns the next token, classifying identifiers against cls (spec
// §4.2's "lexer hack"). End of input is reported as a token.EOF token, not
// an error.
func (l *Lexer) Next(cls Classifier) (token.Token, error) {
	l.skipTrivia()
	start := l.pos
	if l.off >= len(l.src) {
		return token.Token{Kind: token.EOF, Pos: start}, nil
	}

	c := l.src[l.off]
	switch {
	case isIdentStart(c):
		return l.scanIdent(cls, start), nil
	case isDigit(c), c == '.' && l.off+1 < len(l.src) && isDigit(l.src[l.off+1]):
		return l.scanNumber(start)
	case c == '"':
		return l.scanString(start)
	case c == '\'':
		return l.scanChar(start)
	default:
		return l.scanPunct(start)
	}
}

func (l *Lexer) advanceBytes(n int) {
	for i := 0; i < n && l.off < len(l.src); i++ {
		l.pos = l.pos.Advance(rune(l.src[l.off]))
		l.off++
	}
}

func (l *Lexer) skipTrivia() {
	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f':
			l.advanceBytes(1)
		case c == '/' && l.off+1 < len(l.src) && l.src[l.off+1] == '/':
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advanceBytes(1)
			}
		case c == '/' && l.off+1 < len(l.src) && l.src[l.off+1] == '*':
			l.advanceBytes(2)
			for l.off < len(l.src) && !(l.src[l.off] == '*' && l.off+1 < len(l.src) && l.src[l.off+1] == '/') {
				l.advanceBytes(1)
			}
			if l.off < len(l.src) {
				l.advanceBytes(2)
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) scanIdent(cls Classifier, start token.Position) token.Token {
	begin := l.off
	for l.off < len(l.src) && isIdentCont(l.src[l.off]) {
		l.advanceBytes(1)
	}
	lexeme := string(l.src[begin:l.off])
	if kw, ok := token.Keywords[lexeme]; ok {
		return token.Token{Kind: kw, Pos: start, Text: lexeme, Value: lexeme}
	}
	kind := token.Ident
	if cls != nil && cls.IsTypedef(lexeme) {
		kind = token.TypedefName
	}
	return token.Token{Kind: kind, Pos: start, Text: lexeme, Value: lexeme}
}

// scanNumber recognizes the numeral body with sniffNumeral (it needs to know
// exactly how many bytes the core digits occupy to find the suffix), then
// hand-scans the suffix letters (u/U/l/L/f/F), which sniffNumeral leaves
// alone.
func (l *Lexer) scanNumber(start token.Position) (token.Token, error) {
	remaining := l.src[l.off:]
	core := sniffNumeral(remaining)
	if core == "" {
		return token.Token{}, errf(start, "malformed numeric constant")
	}
	isFloat := strings.ContainsAny(core, ".") ||
		(!strings.HasPrefix(core, "0x") && !strings.HasPrefix(core, "0X") && strings.ContainsAny(core, "eE"))

	l.advanceBytes(len(core))

	var flags token.NumberFlags
	suffixStart := l.off
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case 'u', 'U':
			flags |= token.FlagUnsigned
			l.advanceBytes(1)
		case 'l', 'L':
			if flags&token.FlagLong != 0 {
				flags |= token.FlagLongLong
			}
			flags |= token.FlagLong
			l.advanceBytes(1)
		case 'f', 'F':
			if !isFloat {
				goto doneSuffix
			}
			flags |= token.FlagFloat
			l.advanceBytes(1)
		default:
			goto doneSuffix
		}
	}
doneSuffix:
	raw := core + string(l.src[suffixStart:l.off])
	kind := token.IntConst
	if isFloat {
		kind = token.FloatConst
	}
	return token.Token{Kind: kind, Pos: start, Text: raw, Value: core, Flags: flags}, nil
}

// sniffNumeral returns the longest numeric-constant core (no suffix) at the
// start of src: a hex-prefixed integer, or a decimal integer/float with an
// optional exponent.
func sniffNumeral(src []byte) string {
	n := len(src)
	if n >= 2 && src[0] == '0' && (src[1] == 'x' || src[1] == 'X') {
		i := 2
		for i < n && isHexDigit(src[i]) {
			i++
		}
		return string(src[:i])
	}
	i := 0
	for i < n && isDigit(src[i]) {
		i++
	}
	if i < n && src[i] == '.' {
		i++
		for i < n && isDigit(src[i]) {
			i++
		}
	}
	if i < n && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < n && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < n && isDigit(src[j]) {
			i = j
			for i < n && isDigit(src[i]) {
				i++
			}
		}
	}
	return string(src[:i])
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) scanString(start token.Position) (token.Token, error) {
	node, rest := stringLitParser(pc.NewScanner(l.src[l.off:]))
	if node == nil {
		return token.Token{}, errf(start, "unterminated string literal")
	}
	raw := matchedPrefix(l.src[l.off:], rest)
	l.advanceBytes(len(raw))
	decoded := decodeEscapes(strings.TrimSuffix(strings.TrimPrefix(raw, `"`), `"`))
	return token.Token{Kind: token.StringConst, Pos: start, Text: raw, Value: decoded}, nil
}

func (l *Lexer) scanChar(start token.Position) (token.Token, error) {
	node, rest := charLitParser(pc.NewScanner(l.src[l.off:]))
	if node == nil {
		return token.Token{}, errf(start, "unterminated character constant")
	}
	raw := matchedPrefix(l.src[l.off:], rest)
	l.advanceBytes(len(raw))
	decoded := decodeEscapes(strings.TrimSuffix(strings.TrimPrefix(raw, `'`), `'`))
	return token.Token{Kind: token.CharConst, Pos: start, Text: raw, Value: decoded}, nil
}

// matchedPrefix recovers the text a combinator consumed by diffing the
// remaining scanner's buffer length against the input handed to it.
func matchedPrefix(in []byte, remaining pc.Scanner) string {
	_, tail := remaining.Match(`[\s\S]*`)
	consumed := len(in) - len(tail)
	if consumed < 0 || consumed > len(in) {
		return ""
	}
	return string(in[:consumed])
}

func decodeEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '\'', '"':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

var puncts = []struct {
	text string
	kind token.Kind
}{
	{"...", token.Ellipsis},
	{"<<=", token.ShlEq}, {">>=", token.ShrEq},
	{"->", token.Arrow}, {"++", token.Inc}, {"--", token.Dec},
	{"<<", token.Shl}, {">>", token.Shr},
	{"<=", token.Le}, {">=", token.Ge}, {"==", token.EqEq}, {"!=", token.NotEq},
	{"&&", token.AmpAmp}, {"||", token.PipePipe},
	{"+=", token.PlusEq}, {"-=", token.MinusEq}, {"*=", token.StarEq}, {"/=", token.SlashEq},
	{"%=", token.PercentEq}, {"&=", token.AmpEq}, {"|=", token.PipeEq}, {"^=", token.CaretEq},
	{"(", token.LParen}, {")", token.RParen}, {"[", token.LBracket}, {"]", token.RBracket},
	{"{", token.LBrace}, {"}", token.RBrace}, {".", token.Dot}, {",", token.Comma},
	{";", token.Semi}, {":", token.Colon}, {"?", token.Question}, {"=", token.Assign},
	{"+", token.Plus}, {"-", token.Minus}, {"*", token.Star}, {"/", token.Slash}, {"%", token.Percent},
	{"&", token.Amp}, {"|", token.Pipe}, {"^", token.Caret}, {"~", token.Tilde}, {"!", token.Bang},
	{"<", token.Lt}, {">", token.Gt},
}

func (l *Lexer) scanPunct(start token.Position) (token.Token, error) {
	for _, p := range puncts {
		if bytesHavePrefix(l.src[l.off:], p.text) {
			l.advanceBytes(len(p.text))
			return token.Token{Kind: p.kind, Pos: start, Text: p.text}, nil
		}
	}
	r, _ := utf8.DecodeRune(l.src[l.off:])
	l.advanceBytes(1)
	return token.Token{}, errf(start, "unexpected character %q", r)
}

func bytesHavePrefix(b []byte, s string) bool {
	if len(b) < len(s) {
		return false
	}
	return string(b[:len(s)]) == s
}
