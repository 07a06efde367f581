// Package parser implements Flare's recursive-descent, precedence-climbing
// parser: it tokenizes source text with the lexer, then builds a Program
// AST in a single pass.
package parser

import (
	"fmt"

	"github.com/flarelang/flare/lexer"
	"github.com/flarelang/flare/token"
)

// ErrorKind is the closed set of parse/lex error variants.
type ErrorKind uint8

const (
	UnexpectedChar ErrorKind = iota
	InvalidToken
	UnexpectedEOF
	UnexpectedToken
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "UnexpectedChar"
	case InvalidToken:
		return "InvalidToken"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case UnexpectedToken:
		return "UnexpectedToken"
	default:
		return "Unknown"
	}
}

// Error is Flare's unified parse/lex error type.
type Error struct {
	Kind    ErrorKind
	Message string
	Ch      rune // set iff Kind == UnexpectedChar
	Span    token.Span
}

func (e *Error) Error() string {
	line, col := e.Span.Start.Line, e.Span.Start.Column
	switch e.Kind {
	case UnexpectedChar:
		return fmt.Sprintf("%d:%d: unexpected character %q", line, col, e.Ch)
	default:
		return fmt.Sprintf("%d:%d: %s", line, col, e.Message)
	}
}

// fromLexError converts a lex-time error into the unified Error type.
func fromLexError(err error) *Error {
	lexErr, ok := err.(*lexer.Error)
	if !ok {
		return &Error{Kind: UnexpectedToken, Message: err.Error()}
	}
	kind := UnexpectedChar
	if lexErr.Kind == lexer.InvalidToken {
		kind = InvalidToken
	}
	return &Error{
		Kind:    kind,
		Message: lexErr.Message,
		Ch:      lexErr.Ch,
		Span:    lexErr.Span,
	}
}

func unexpectedTokenf(tok token.Token, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    UnexpectedToken,
		Message: fmt.Sprintf(format, args...),
		Span:    tok.Span,
	}
}

func unexpectedEOF(tok token.Token, context string) *Error {
	return &Error{
		Kind:    UnexpectedEOF,
		Message: fmt.Sprintf("unexpected end of input while parsing %s", context),
		Span:    tok.Span,
	}
}
