package parser

import (
	"github.com/flarelang/flare/ast"
	"github.com/flarelang/flare/token"
)

// typeSpec parses a type expression: a scalar keyword, a named type, a
// Vector/Matrix/Tensor instantiation, a pointer `*T`, or an array `T[size]`.
func (p *Parser) typeSpec() (ast.Type, *Error) {
	start := p.peek()

	if p.match(token.Star) {
		inner, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		return &ast.PtrType{DType: inner, Span: spanTo(start, p.previous())}, nil
	}

	base, err := p.typeAtom(start)
	if err != nil {
		return nil, err
	}

	for p.check(token.LeftBracket) {
		p.advance()
		size := ""
		if !p.check(token.RightBracket) {
			tok, err := p.expect(token.IntLiteral, "array size")
			if err != nil {
				return nil, err
			}
			size = tok.Text
		}
		if _, err := p.expect(token.RightBracket, "array type"); err != nil {
			return nil, err
		}
		base = &ast.ArrayType{DType: base, Size: size, Span: spanTo(start, p.previous())}
	}

	return base, nil
}

func (p *Parser) typeAtom(start token.Token) (ast.Type, *Error) {
	tok := p.peek()

	if kind, ok := scalarKind(tok.Kind); ok {
		p.advance()
		return &ast.ScalarType{Kind: kind, Span: tok.Span}, nil
	}

	switch tok.Kind {
	case token.VectorKw:
		p.advance()
		return p.vectorType(start)
	case token.MatrixKw:
		p.advance()
		return p.matrixType(start)
	case token.TensorKw:
		p.advance()
		return p.tensorType(start)
	case token.Ident:
		p.advance()
		return &ast.NamedType{Name: tok.Text, Span: tok.Span}, nil
	default:
		return nil, unexpectedTokenf(tok, "expected a type, found %s", tok.Kind)
	}
}

func scalarKind(k token.Kind) (ast.ScalarKind, bool) {
	switch k {
	case token.I32:
		return ast.I32, true
	case token.I64:
		return ast.I64, true
	case token.U32:
		return ast.U32, true
	case token.U64:
		return ast.U64, true
	case token.F32:
		return ast.F32, true
	case token.F64:
		return ast.F64, true
	case token.BoolKw:
		return ast.Bool, true
	default:
		return 0, false
	}
}

func (p *Parser) vectorType(start token.Token) (ast.Type, *Error) {
	if _, err := p.expect(token.Less, "Vector type arguments"); err != nil {
		return nil, err
	}
	dtype, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma, "Vector type arguments"); err != nil {
		return nil, err
	}
	lenTok, err := p.dimensionLexeme()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Greater, "Vector type arguments"); err != nil {
		return nil, err
	}
	return &ast.VectorType{DType: dtype, Len: lenTok, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) matrixType(start token.Token) (ast.Type, *Error) {
	if _, err := p.expect(token.Less, "Matrix type arguments"); err != nil {
		return nil, err
	}
	dtype, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma, "Matrix type arguments"); err != nil {
		return nil, err
	}
	rows, err := p.dimensionLexeme()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma, "Matrix type arguments"); err != nil {
		return nil, err
	}
	cols, err := p.dimensionLexeme()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Greater, "Matrix type arguments"); err != nil {
		return nil, err
	}
	return &ast.MatrixType{DType: dtype, Rows: rows, Cols: cols, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) tensorType(start token.Token) (ast.Type, *Error) {
	if _, err := p.expect(token.Less, "Tensor type arguments"); err != nil {
		return nil, err
	}
	dtype, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	var shape []string
	for p.match(token.Comma) {
		dim, err := p.dimensionLexeme()
		if err != nil {
			return nil, err
		}
		shape = append(shape, dim)
	}
	if _, err := p.expect(token.Greater, "Tensor type arguments"); err != nil {
		return nil, err
	}
	return &ast.TensorType{DType: dtype, Shape: shape, Span: spanTo(start, p.previous())}, nil
}

// dimensionLexeme accepts an integer literal or identifier as a vector,
// matrix, or tensor dimension, returning its source lexeme verbatim since
// symbolic dimensions (M, N, K, ...) are legal syntax.
func (p *Parser) dimensionLexeme() (string, *Error) {
	tok := p.peek()
	if tok.Kind == token.IntLiteral || tok.Kind == token.Ident {
		p.advance()
		return tok.Text, nil
	}
	return "", unexpectedTokenf(tok, "expected a dimension, found %s", tok.Kind)
}

func spanTo(start, end token.Token) token.Span {
	return token.Span{Start: start.Span.Start, End: end.Span.End}
}
