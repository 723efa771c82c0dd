package cenv

import (
	"fmt"

	"cparse.dev/ccore/pkg/token"
)

// ErrorKind distinguishes the three error categories of spec §7.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	SemanticActionError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case SemanticActionError:
		return "semantic-action error"
	default:
		return "error"
	}
}

// ParseError is the error slot spec §4.1/§7 describes: the first error
// encountered aborts the parse, and is returned together with its position
// so callers can format "<file>:<line>:<col>: <message>".
type ParseError struct {
	Kind     ErrorKind
	Messages []string
	Pos      token.Position
}

func (e *ParseError) Error() string {
	msg := "syntax error"
	if len(e.Messages) > 0 {
		msg = e.Messages[len(e.Messages)-1]
	}
	return fmt.Sprintf("%s: %s", e.Pos, msg)
}

// Format renders every accumulated message, one per line, each prefixed
// with the error's position, per spec §6's "Errors" contract.
func (e *ParseError) Format() string {
	out := ""
	for i, m := range e.Messages {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("%s: %s", e.Pos, m)
	}
	return out
}
