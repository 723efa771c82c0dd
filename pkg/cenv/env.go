// Package cenv implements the parser monad of spec §4.1: the single-threaded
// stateful pipeline that hides position tracking, fresh-name allocation, and
// the typedef scope stack from the grammar actions. The token lookahead
// buffer lives in pkg/parser's Parser, not here.
package cenv

import (
	"github.com/pkg/errors"

	"cparse.dev/ccore/pkg/token"
	"cparse.dev/ccore/pkg/utils"
)

// Env is the parser monad's state. It is single-threaded: every method
// mutates Env in place and none of them are safe for concurrent use (spec
// §5 "Concurrency & Resource Model" — strictly sequential, no locking
// because there is no concurrency).
type Env struct {
	pos     token.Position
	scopes  utils.Stack[*frame]
	nextID  uint64
	scopeBalance int // enter/leave accounting, asserted non-negative (spec §8 property 2)
	err     *ParseError
}

// New creates a monad seeded per spec §4.1's "Initial state": the typedef
// stack begins with one global frame pre-populated from builtins, and the
// fresh-id counter starts at startID so callers can compose multiple
// parses into one shared namespace.
func New(builtinTypedefNames []string, startID uint64) *Env {
	e := &Env{nextID: startID}
	global := newFrame()
	for _, name := range builtinTypedefNames {
		global.bindings[name] = true
	}
	e.scopes.Push(global)
	return e
}

// Pos returns the position of the most recently consumed token.
func (e *Env) Pos() token.Position { return e.pos }

// SetPos records the position of the token the grammar engine just
// consumed; pkg/parser calls this after every successful token fetch.
func (e *Env) SetPos(p token.Position) { e.pos = p }

// FreshName returns a new unique integer, monotonically increasing and
// never reused within this Env's lifetime (spec §4.1 "fresh-name").
func (e *Env) FreshName() uint64 {
	id := e.nextID
	e.nextID++
	return id
}

// EnterScope pushes a new, empty typedef frame (spec §4.1 "enter-scope").
func (e *Env) EnterScope() {
	e.scopes.Push(newFrame())
	e.scopeBalance++
}

// LeaveScope pops and discards the innermost typedef frame. Calling it
// without a matching EnterScope is a programmer error in the grammar
// engine, not a recoverable parse failure, so it panics rather than
// threading another error path through every call site (spec §4.1 "Leave
// must only be called after a matching enter; implementations assert
// this").
func (e *Env) LeaveScope() {
	if e.scopeBalance <= 0 {
		panic("cenv: LeaveScope without a matching EnterScope")
	}
	if _, err := e.scopes.Pop(); err != nil {
		panic(errors.Wrap(err, "cenv: scope stack corrupted"))
	}
	e.scopeBalance--
}

// ScopeDepth reports the number of currently open scopes beyond the global
// one, i.e. the running Enter/Leave balance spec §8 property 2 requires to
// stay non-negative at every prefix.
func (e *Env) ScopeDepth() int { return e.scopeBalance }

// AddTypedef binds ident as a typedef name in the innermost scope (spec
// §4.1 "add-typedef").
func (e *Env) AddTypedef(ident string) {
	top, err := e.scopes.Top()
	if err != nil {
		panic(errors.Wrap(err, "cenv: AddTypedef with no open scope"))
	}
	top.bindings[ident] = true
}

// ShadowTypedef marks ident as explicitly not a typedef in the innermost
// scope, hiding any outer binding until the scope exits (spec §4.1
// "shadow-typedef").
func (e *Env) ShadowTypedef(ident string) {
	top, err := e.scopes.Top()
	if err != nil {
		panic(errors.Wrap(err, "cenv: ShadowTypedef with no open scope"))
	}
	top.bindings[ident] = false
}

// IsTypedef reports whether ident currently resolves to a typedef name,
// walking scopes from innermost to outermost and stopping at the first
// binding found (spec §4.1 "is-typedef"; this is the query the lexer makes
// at every identifier token, spec §4.2).
func (e *Env) IsTypedef(ident string) bool {
	result := false
	e.scopes.Iterator()(func(f *frame) bool {
		if v, ok := f.bindings[ident]; ok {
			result = v
			return false
		}
		return true
	})
	return result
}

// Fail records the first error and marks the monad as aborted (spec §4.1
// "fail"). Subsequent calls to Fail are no-ops: only the first error is
// kept, per spec §7's "the first error is recorded ... and the parse
// aborts".
func (e *Env) Fail(kind ErrorKind, pos token.Position, msg string) *ParseError {
	if e.err == nil {
		e.err = &ParseError{Kind: kind, Pos: pos, Messages: []string{msg}}
	}
	return e.err
}

// Failf is Fail with fmt.Sprintf-style formatting.
func (e *Env) Failf(kind ErrorKind, pos token.Position, format string, args ...interface{}) *ParseError {
	return e.Fail(kind, pos, errors.Errorf(format, args...).Error())
}

// Err returns the first recorded error, or nil if none has occurred yet.
func (e *Env) Err() *ParseError { return e.err }

// Failed reports whether the monad has aborted.
func (e *Env) Failed() bool { return e.err != nil }
