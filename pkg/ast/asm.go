package ast

import "cparse.dev/ccore/pkg/token"

// AsmQualifier is one of the optional qualifiers accepted before the
// template string of a GNU `asm` statement (`volatile`, `inline`, `goto`).
type AsmQualifier int

const (
	AsmVolatile AsmQualifier = iota
	AsmInline
	AsmGoto
)

// AsmOperand is one entry of an asm statement's output/input operand list:
// `[name] "constraint" ( expr )` (spec §4.3).
type AsmOperand struct {
	Name       *token.Identifier
	Constraint string
	Expr       Expr
	Attrs
}

// AsmStmt models both the statement form and the top-level declaration form
// of GNU inline assembly (spec §3 lists "inline-asm" as a statement variant
// and "inline-assembly declaration" as an external declaration; the shape
// is identical, so one type serves both roles).
type AsmStmt struct {
	Qualifiers []AsmQualifier
	Template   *StringLit
	Outputs    []AsmOperand
	Inputs     []AsmOperand
	Clobbers   []string
	GotoLabels []token.Identifier
	Attrs
}

func (*AsmStmt) isStmt()         {}
func (*AsmStmt) isBlockItem()    {}
func (*AsmStmt) isExternalDecl() {}
