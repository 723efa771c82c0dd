package token

// Kind identifies a lexical category. The contract with the lexer (spec §6)
// fixes these as the shared vocabulary between the external tokenizer and
// the grammar engine.
type Kind int

const (
	Invalid Kind = iota
	EOF

	// Identifiers. Ordinary and typedef-name are distinguished at the point
	// of production (the "lexer hack", spec §4.2) so the grammar never has
	// to re-consult the scope stack to tell them apart.
	Ident
	TypedefName

	// Literal constants.
	IntConst
	FloatConst
	CharConst
	StringConst

	// Punctuators.
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Arrow
	Dot
	Ellipsis
	Comma
	Semi
	Colon
	Question
	Assign

	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Lt
	Gt
	Le
	Ge
	EqEq
	NotEq
	AmpAmp
	PipePipe
	Inc
	Dec
	Shl
	Shr

	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	ShlEq
	ShrEq

	// Keywords (C99).
	KwVoid
	KwChar
	KwShort
	KwInt
	KwLong
	KwFloat
	KwDouble
	KwSigned
	KwUnsigned
	KwBool
	KwComplex
	KwConst
	KwVolatile
	KwRestrict
	KwInline
	KwAuto
	KwExtern
	KwStatic
	KwRegister
	KwTypedef
	KwThread
	KwTypeof
	KwIf
	KwElse
	KwSwitch
	KwCase
	KwDefault
	KwWhile
	KwDo
	KwFor
	KwGoto
	KwContinue
	KwBreak
	KwReturn
	KwSizeof
	KwAlignof
	KwStruct
	KwUnion
	KwEnum

	// GNU markers.
	KwAttribute
	KwExtension
	KwReal
	KwImag
	KwLabel
	KwAsm
	KwBuiltinVaArg
	KwBuiltinOffsetof
	KwBuiltinTypesCompatibleP
)

var kindNames = map[Kind]string{
	Invalid: "<invalid>", EOF: "<eof>",
	Ident: "identifier", TypedefName: "typedef-name",
	IntConst: "integer-constant", FloatConst: "floating-constant",
	CharConst: "character-constant", StringConst: "string-literal",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	LBrace: "{", RBrace: "}", Arrow: "->", Dot: ".", Ellipsis: "...",
	Comma: ",", Semi: ";", Colon: ":", Question: "?", Assign: "=",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Bang: "!",
	Lt: "<", Gt: ">", Le: "<=", Ge: ">=", EqEq: "==", NotEq: "!=",
	AmpAmp: "&&", PipePipe: "||", Inc: "++", Dec: "--", Shl: "<<", Shr: ">>",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
	AmpEq: "&=", PipeEq: "|=", CaretEq: "^=", ShlEq: "<<=", ShrEq: ">>=",
	KwVoid: "void", KwChar: "char", KwShort: "short", KwInt: "int", KwLong: "long",
	KwFloat: "float", KwDouble: "double", KwSigned: "signed", KwUnsigned: "unsigned",
	KwBool: "_Bool", KwComplex: "_Complex", KwConst: "const", KwVolatile: "volatile",
	KwRestrict: "restrict", KwInline: "inline", KwAuto: "auto", KwExtern: "extern",
	KwStatic: "static", KwRegister: "register", KwTypedef: "typedef", KwThread: "__thread",
	KwTypeof: "typeof", KwIf: "if", KwElse: "else", KwSwitch: "switch", KwCase: "case",
	KwDefault: "default", KwWhile: "while", KwDo: "do", KwFor: "for", KwGoto: "goto",
	KwContinue: "continue", KwBreak: "break", KwReturn: "return", KwSizeof: "sizeof",
	KwAlignof: "alignof", KwStruct: "struct", KwUnion: "union", KwEnum: "enum",
	KwAttribute: "__attribute__", KwExtension: "__extension__", KwReal: "__real__",
	KwImag: "__imag__", KwLabel: "__label__", KwAsm: "asm",
	KwBuiltinVaArg: "__builtin_va_arg", KwBuiltinOffsetof: "__builtin_offsetof",
	KwBuiltinTypesCompatibleP: "__builtin_types_compatible_p",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "<unknown-kind>"
}

// Keywords maps the reserved spelling (as it appears in source) to its Kind.
// The lexer consults this before falling back to identifier classification.
var Keywords = map[string]Kind{
	"void": KwVoid, "char": KwChar, "short": KwShort, "int": KwInt, "long": KwLong,
	"float": KwFloat, "double": KwDouble, "signed": KwSigned, "unsigned": KwUnsigned,
	"_Bool": KwBool, "_Complex": KwComplex, "const": KwConst, "volatile": KwVolatile,
	"restrict": KwRestrict, "inline": KwInline, "auto": KwAuto, "extern": KwExtern,
	"static": KwStatic, "register": KwRegister, "typedef": KwTypedef, "__thread": KwThread,
	"typeof": KwTypeof, "__typeof__": KwTypeof, "if": KwIf, "else": KwElse, "switch": KwSwitch,
	"case": KwCase, "default": KwDefault, "while": KwWhile, "do": KwDo, "for": KwFor,
	"goto": KwGoto, "continue": KwContinue, "break": KwBreak, "return": KwReturn,
	"sizeof": KwSizeof, "__alignof__": KwAlignof, "_Alignof": KwAlignof,
	"struct": KwStruct, "union": KwUnion, "enum": KwEnum,
	"__attribute__": KwAttribute, "__attribute": KwAttribute,
	"__extension__": KwExtension, "__real__": KwReal, "__imag__": KwImag,
	"__label__": KwLabel, "asm": KwAsm, "__asm__": KwAsm, "__asm": KwAsm,
	"__builtin_va_arg": KwBuiltinVaArg, "__builtin_offsetof": KwBuiltinOffsetof,
	"__builtin_types_compatible_p": KwBuiltinTypesCompatibleP,
	"__const": KwConst, "__const__": KwConst, "__volatile__": KwVolatile, "__volatile": KwVolatile,
	"__restrict__": KwRestrict, "__restrict": KwRestrict, "__inline__": KwInline, "__inline": KwInline,
	"__signed__": KwSigned, "__signed": KwSigned,
}

// NumberFlags records the suffix letters attached to a numeric constant, per
// spec §6 ("integer and floating constants also carry their suffix flags").
type NumberFlags uint8

const (
	FlagUnsigned NumberFlags = 1 << iota
	FlagLong
	FlagLongLong
	FlagFloat  // trailing f/F on a floating constant
	FlagLongDouble
)

// Token is a single lexical unit with its source position and, for literal
// and identifier kinds, its textual/decoded payload.
type Token struct {
	Kind  Kind
	Pos   Position
	Text  string      // raw lexeme, used in diagnostics
	Value string      // decoded payload: identifier name, decoded string/char content, numeral digits
	Flags NumberFlags // suffix flags for IntConst/FloatConst
}

func (t Token) String() string {
	if t.Text != "" {
		return t.Text
	}
	return t.Kind.String()
}
