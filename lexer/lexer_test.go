package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelang/flare/token"
)

func kinds(t *testing.T, toks []token.Token) []token.Kind {
	t.Helper()
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestTokenize_Keywords(t *testing.T) {
	toks, err := Tokenize("kernel grid block shared_memory compute schedule fuse")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Kernel, token.Grid, token.Block, token.SharedMemory,
		token.Compute, token.Schedule, token.Fuse, token.EOF,
	}, kinds(t, toks))
}

func TestTokenize_Operators(t *testing.T) {
	toks, err := Tokenize("+ - * / % == != < > <= >= && || ! = += -= *= /= -> .. . : , ; ( ) { } [ ] ?")
	require.NoError(t, err)
	want := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.EqualEqual, token.BangEqual, token.Less, token.Greater,
		token.LessEqual, token.GreaterEqual, token.AmpAmp, token.PipePipe,
		token.Bang, token.Equal, token.PlusEqual, token.MinusEqual,
		token.StarEqual, token.SlashEqual, token.Arrow, token.DotDot,
		token.Dot, token.Colon, token.Comma, token.Semicolon,
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.LeftBracket, token.RightBracket, token.Question, token.EOF,
	}
	assert.Equal(t, want, kinds(t, toks))
}

func TestTokenize_IntAndFloatLiterals(t *testing.T) {
	toks, err := Tokenize("42 3.14")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.IntLiteral, toks[0].Kind)
	assert.Equal(t, "42", toks[0].Text)
	assert.Equal(t, token.FloatLiteral, toks[1].Kind)
	assert.Equal(t, "3.14", toks[1].Text)
}

func TestTokenize_StringLiteralEscapes(t *testing.T) {
	toks, err := Tokenize(`"hi\n\t\"end\""`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.StringLiteral, toks[0].Kind)
}

func TestTokenize_UnterminatedStringIsInvalidToken(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, InvalidToken, lexErr.Kind)
}

func TestTokenize_UnexpectedCharReportsPosition(t *testing.T) {
	_, err := Tokenize("let x = 1 $ 2")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, UnexpectedChar, lexErr.Kind)
	assert.Equal(t, '$', lexErr.Ch)
}

func TestTokenize_KnownAnnotation(t *testing.T) {
	toks, err := Tokenize("@fusion_point")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.NotEqual(t, token.AtSign, toks[0].Kind)
}

func TestTokenize_UnknownAnnotationRewindsToAtSignPlusIdent(t *testing.T) {
	toks, err := Tokenize("@custom_marker")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.AtSign, toks[0].Kind)
	assert.Equal(t, token.Ident, toks[1].Kind)
	assert.Equal(t, "custom_marker", toks[1].Text)
}

func TestTokenize_CommentsAreSkipped(t *testing.T) {
	toks, err := Tokenize("let // trailing comment\nx /* block */ = 1")
	require.NoError(t, err)
	var gotKinds []token.Kind
	for _, tok := range toks {
		if tok.Kind == token.Newline {
			continue
		}
		gotKinds = append(gotKinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{token.Let, token.Ident, token.Equal, token.IntLiteral, token.EOF}, gotKinds)
}

func TestTokenize_SpansAreValidOffsets(t *testing.T) {
	source := "let abc = 123"
	toks, err := Tokenize(source)
	require.NoError(t, err)
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		require.LessOrEqual(t, tok.Span.Start.Offset, tok.Span.End.Offset)
		require.GreaterOrEqual(t, tok.Span.Start.Offset, 0)
		require.LessOrEqual(t, tok.Span.End.Offset, len(source))
		assert.Equal(t, tok.Text, source[tok.Span.Start.Offset:tok.Span.End.Offset])
	}
}
