// Package lexer tokenizes Flare source text into a flat stream of typed
// tokens with byte-span offsets.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/flarelang/flare/token"
)

// Error is a lex-time failure: an unlexable byte or a malformed literal.
type Error struct {
	Kind    ErrorKind
	Message string
	Ch      rune
	Span    token.Span
}

// ErrorKind is the closed set of lex error variants.
type ErrorKind uint8

const (
	UnexpectedChar ErrorKind = iota
	InvalidToken
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "UnexpectedChar"
	case InvalidToken:
		return "InvalidToken"
	default:
		return "Unknown"
	}
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedChar:
		return fmt.Sprintf("%d:%d: unexpected character %q", e.Span.Start.Line, e.Span.Start.Column, e.Ch)
	default:
		return fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
	}
}

// Lexer tokenizes Flare source code.
type Lexer struct {
	source string
	pos    int
	line   int
	column int
	start  int

	startLine   int
	startColumn int
}

// New creates a new Lexer for the given source.
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Tokenize returns every token in the source, including a trailing EOF
// token, or the first lex error encountered.
func Tokenize(source string) ([]token.Token, error) {
	l := New(source)
	// Estimate ~1 token per 5 characters of source.
	est := len(source)/5 + 16
	tokens := make([]token.Token, 0, est)

	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

// Next scans and returns the next token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	l.start = l.pos
	l.startLine = l.line
	l.startColumn = l.column

	if l.isAtEnd() {
		return l.makeToken(token.EOF), nil
	}

	r := l.advance()

	switch {
	case r == '\n':
		return l.makeToken(token.Newline), nil
	case r == '"':
		return l.stringLiteral()
	case isDigit(r):
		return l.number(), nil
	case isAlpha(r) || r == '_':
		return l.identifier(), nil
	}

	switch r {
	case '+':
		if l.match('=') {
			return l.makeToken(token.PlusEqual), nil
		}
		return l.makeToken(token.Plus), nil
	case '-':
		if l.match('=') {
			return l.makeToken(token.MinusEqual), nil
		}
		if l.match('>') {
			return l.makeToken(token.Arrow), nil
		}
		return l.makeToken(token.Minus), nil
	case '*':
		if l.match('=') {
			return l.makeToken(token.StarEqual), nil
		}
		return l.makeToken(token.Star), nil
	case '/':
		if l.match('=') {
			return l.makeToken(token.SlashEqual), nil
		}
		return l.makeToken(token.Slash), nil
	case '%':
		return l.makeToken(token.Percent), nil
	case '=':
		if l.match('=') {
			return l.makeToken(token.EqualEqual), nil
		}
		return l.makeToken(token.Equal), nil
	case '!':
		if l.match('=') {
			return l.makeToken(token.BangEqual), nil
		}
		return l.makeToken(token.Bang), nil
	case '<':
		if l.match('=') {
			return l.makeToken(token.LessEqual), nil
		}
		return l.makeToken(token.Less), nil
	case '>':
		if l.match('=') {
			return l.makeToken(token.GreaterEqual), nil
		}
		return l.makeToken(token.Greater), nil
	case '&':
		if l.match('&') {
			return l.makeToken(token.AmpAmp), nil
		}
		return l.errorToken(r)
	case '|':
		if l.match('|') {
			return l.makeToken(token.PipePipe), nil
		}
		return l.errorToken(r)
	case '.':
		if l.match('.') {
			return l.makeToken(token.DotDot), nil
		}
		return l.makeToken(token.Dot), nil
	case ',':
		return l.makeToken(token.Comma), nil
	case ':':
		return l.makeToken(token.Colon), nil
	case ';':
		return l.makeToken(token.Semicolon), nil
	case '(':
		return l.makeToken(token.LeftParen), nil
	case ')':
		return l.makeToken(token.RightParen), nil
	case '{':
		return l.makeToken(token.LeftBrace), nil
	case '}':
		return l.makeToken(token.RightBrace), nil
	case '[':
		return l.makeToken(token.LeftBracket), nil
	case ']':
		return l.makeToken(token.RightBracket), nil
	case '?':
		return l.makeToken(token.Question), nil
	case '@':
		return l.annotation()
	}

	return l.errorToken(r)
}

func (l *Lexer) annotation() (token.Token, error) {
	markStart := l.pos
	for isAlphaNumeric(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.pos == markStart {
		return l.makeToken(token.AtSign), nil
	}
	text := "@" + l.source[markStart:l.pos]
	if kind, ok := token.Annotations[text]; ok {
		return l.makeToken(kind), nil
	}
	// Unknown annotation: rewind past '@' only, leave the name to lex as
	// an ordinary identifier on the next call.
	consumed := utf8.RuneCountInString(l.source[markStart:l.pos])
	l.pos = markStart
	l.column -= consumed
	return l.makeToken(token.AtSign), nil
}

func (l *Lexer) stringLiteral() (token.Token, error) {
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance()
			if l.isAtEnd() {
				break
			}
			switch l.peek() {
			case '\\', '"', 'b', 'n', 'f', 'r', 't':
				l.advance()
			case 'u':
				l.advance()
				for i := 0; i < 4 && isHexDigit(l.peek()); i++ {
					l.advance()
				}
			default:
				return token.Token{}, &Error{
					Kind:    InvalidToken,
					Message: "invalid escape sequence in string literal",
					Span:    l.span(),
				}
			}
			continue
		}
		if l.peek() == '\n' {
			return token.Token{}, &Error{
				Kind:    InvalidToken,
				Message: "unterminated string literal",
				Span:    l.span(),
			}
		}
		l.advance()
	}
	if l.isAtEnd() {
		return token.Token{}, &Error{
			Kind:    InvalidToken,
			Message: "unterminated string literal",
			Span:    l.span(),
		}
	}
	l.advance() // closing quote
	return l.makeToken(token.StringLiteral), nil
}

func (l *Lexer) number() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		return l.makeToken(token.FloatLiteral)
	}
	return l.makeToken(token.IntLiteral)
}

func (l *Lexer) identifier() token.Token {
	for isAlphaNumeric(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	text := l.source[l.start:l.pos]
	if kind, ok := token.LookupKeyword(text); ok {
		return l.makeToken(kind)
	}
	return l.makeToken(token.Ident)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '/':
			if l.peekNext() == '/' {
				for l.peek() != '\n' && !l.isAtEnd() {
					l.advance()
				}
			} else if l.peekNext() == '*' {
				l.advance()
				l.advance()
				for !l.isAtEnd() && !(l.peek() == '*' && l.peekNext() == '/') {
					l.advance()
				}
				if !l.isAtEnd() {
					l.advance()
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) errorToken(ch rune) (token.Token, error) {
	return token.Token{}, &Error{
		Kind: UnexpectedChar,
		Ch:   ch,
		Span: l.span(),
	}
}

func (l *Lexer) makeToken(kind token.Kind) token.Token {
	return token.Token{
		Kind: kind,
		Text: l.source[l.start:l.pos],
		Span: l.span(),
	}
}

func (l *Lexer) span() token.Span {
	return token.Span{
		Start: token.Position{Line: l.startLine, Column: l.startColumn, Offset: l.start},
		End:   token.Position{Line: l.line, Column: l.column, Offset: l.pos},
	}
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if l.pos+size >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
