package parser

import (
	"github.com/flarelang/flare/ast"
	"github.com/flarelang/flare/token"
)

func (p *Parser) expression() (ast.Expr, *Error) {
	return p.assignment()
}

// assignment parses right-associative `target = value` and compound
// assignment expressions. The target is whatever the next precedence
// level up produces; it is not restricted to l-value shapes here.
func (p *Parser) assignment() (ast.Expr, *Error) {
	start := p.peek()
	left, err := p.logicalOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.Equal) {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Target: left, Value: value, Span: spanTo(start, p.previous())}, nil
	}

	if op, ok := compoundOp(p.peek().Kind); ok {
		p.advance()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return &ast.CompoundAssign{Target: left, Op: op, Value: value, Span: spanTo(start, p.previous())}, nil
	}

	return left, nil
}

func compoundOp(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.PlusEqual:
		return ast.Add, true
	case token.MinusEqual:
		return ast.Sub, true
	case token.StarEqual:
		return ast.Mul, true
	case token.SlashEqual:
		return ast.Div, true
	}
	return 0, false
}

func (p *Parser) logicalOr() (ast.Expr, *Error) {
	start := p.peek()
	left, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.PipePipe) {
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: ast.Or, Right: right, Span: spanTo(start, p.previous())}
	}
	return left, nil
}

func (p *Parser) logicalAnd() (ast.Expr, *Error) {
	start := p.peek()
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.AmpAmp) {
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: ast.And, Right: right, Span: spanTo(start, p.previous())}
	}
	return left, nil
}

func (p *Parser) equality() (ast.Expr, *Error) {
	start := p.peek()
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.EqualEqual:
			op = ast.Equal
		case token.BangEqual:
			op = ast.NotEqual
		default:
			return left, nil
		}
		p.advance()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, Span: spanTo(start, p.previous())}
	}
}

func (p *Parser) comparison() (ast.Expr, *Error) {
	start := p.peek()
	left, err := p.rangeExpr()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.Less:
			op = ast.Less
		case token.Greater:
			op = ast.Greater
		case token.LessEqual:
			op = ast.LessEqual
		case token.GreaterEqual:
			op = ast.GreaterEqual
		default:
			return left, nil
		}
		p.advance()
		right, err := p.rangeExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, Span: spanTo(start, p.previous())}
	}
}

// rangeExpr parses the non-associative `start?..end?` production. Only
// legal as a `for` iterator; the expression emitter rejects it elsewhere.
func (p *Parser) rangeExpr() (ast.Expr, *Error) {
	start := p.peek()

	if p.check(token.DotDot) {
		p.advance()
		end, err := p.rangeEnd()
		if err != nil {
			return nil, err
		}
		return &ast.Range{Start: nil, End: end, Span: spanTo(start, p.previous())}, nil
	}

	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	if !p.match(token.DotDot) {
		return left, nil
	}
	end, err := p.rangeEnd()
	if err != nil {
		return nil, err
	}
	return &ast.Range{Start: left, End: end, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) rangeEnd() (ast.Expr, *Error) {
	switch p.peek().Kind {
	case token.Semicolon, token.RightBracket, token.RightParen, token.EOF, token.LeftBrace:
		return nil, nil
	}
	return p.additive()
}

func (p *Parser) additive() (ast.Expr, *Error) {
	start := p.peek()
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.Plus:
			op = ast.Add
		case token.Minus:
			op = ast.Sub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, Span: spanTo(start, p.previous())}
	}
}

func (p *Parser) multiplicative() (ast.Expr, *Error) {
	start := p.peek()
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.Star:
			op = ast.Mul
		case token.Slash:
			op = ast.Div
		case token.Percent:
			op = ast.Mod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right, Span: spanTo(start, p.previous())}
	}
}

func (p *Parser) unary() (ast.Expr, *Error) {
	start := p.peek()
	switch start.Kind {
	case token.Minus:
		p.advance()
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.Neg, Expr: e, Span: spanTo(start, p.previous())}, nil
	case token.Bang:
		p.advance()
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.Not, Expr: e, Span: spanTo(start, p.previous())}, nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (ast.Expr, *Error) {
	start := p.peek()
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(token.LeftParen):
			var args []ast.Expr
			for !p.check(token.RightParen) && !p.isAtEnd() {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(token.Comma) {
					break
				}
			}
			if _, err := p.expect(token.RightParen, "call argument list"); err != nil {
				return nil, err
			}
			expr = &ast.Call{Func: expr, Args: args, Span: spanTo(start, p.previous())}

		case p.match(token.LeftBracket):
			var indices []ast.Expr
			for !p.check(token.RightBracket) && !p.isAtEnd() {
				idx, err := p.expression()
				if err != nil {
					return nil, err
				}
				indices = append(indices, idx)
				if !p.match(token.Comma) {
					break
				}
			}
			if _, err := p.expect(token.RightBracket, "index expression"); err != nil {
				return nil, err
			}
			expr = &ast.Index{Object: expr, Indices: indices, Span: spanTo(start, p.previous())}

		case p.match(token.Dot):
			field, err := p.expect(token.Ident, "member access")
			if err != nil {
				return nil, err
			}
			expr = &ast.Member{Object: expr, Field: field.Text, Span: spanTo(start, p.previous())}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) primary() (ast.Expr, *Error) {
	tok := p.peek()

	switch tok.Kind {
	case token.IntLiteral:
		p.advance()
		n, err := parseInt(tok.Text)
		if err != nil {
			return nil, unexpectedTokenf(tok, "invalid integer literal %q", tok.Text)
		}
		return &ast.IntLit{Value: n, Span: tok.Span}, nil

	case token.FloatLiteral:
		p.advance()
		f, err := parseFloat(tok.Text)
		if err != nil {
			return nil, unexpectedTokenf(tok, "invalid float literal %q", tok.Text)
		}
		return &ast.FloatLit{Value: f, Span: tok.Span}, nil

	case token.StringLiteral:
		p.advance()
		return &ast.StringLit{Value: unquote(tok.Text), Span: tok.Span}, nil

	case token.True:
		p.advance()
		return &ast.BoolLit{Value: true, Span: tok.Span}, nil

	case token.False:
		p.advance()
		return &ast.BoolLit{Value: false, Span: tok.Span}, nil

	case token.Ident:
		p.advance()
		return &ast.Ident{Name: tok.Text, Span: tok.Span}, nil

	case token.LeftParen:
		p.advance()
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "parenthesized expression"); err != nil {
			return nil, err
		}
		return e, nil

	case token.LeftBracket:
		p.advance()
		var elements []ast.Expr
		for !p.check(token.RightBracket) && !p.isAtEnd() {
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, e)
			if !p.match(token.Comma) {
				break
			}
		}
		if _, err := p.expect(token.RightBracket, "array literal"); err != nil {
			return nil, err
		}
		return &ast.ArrayLit{Elements: elements, Span: spanTo(tok, p.previous())}, nil

	case token.If:
		return p.ifExpr()

	case token.LeftBrace:
		return p.blockExpr()

	case token.ThreadIdx:
		p.advance()
		dim, err := p.builtinDim()
		if err != nil {
			return nil, err
		}
		return &ast.ThreadIdx{Dim: dim, Span: spanTo(tok, p.previous())}, nil

	case token.BlockIdx:
		p.advance()
		dim, err := p.builtinDim()
		if err != nil {
			return nil, err
		}
		return &ast.BlockIdx{Dim: dim, Span: spanTo(tok, p.previous())}, nil

	case token.BlockDim:
		p.advance()
		dim, err := p.builtinDim()
		if err != nil {
			return nil, err
		}
		return &ast.BlockDim{Dim: dim, Span: spanTo(tok, p.previous())}, nil

	case token.TensorKw:
		p.advance()
		return p.tensorInit(tok)

	case token.MatrixKw, token.VectorKw:
		return nil, unexpectedTokenf(tok, "%s is only valid in type position", tok.Kind)
	}

	if _, ok := scalarKind(tok.Kind); ok {
		p.advance()
		return p.castExpr(tok)
	}

	if tok.Kind == token.EOF {
		return nil, unexpectedEOF(tok, "expression")
	}
	return nil, unexpectedTokenf(tok, "unexpected token %s in expression", tok.Kind)
}

// castExpr parses `T(expr)`, the surface form for an explicit cast to a
// scalar type. Scalar-type keywords are not identifiers, so this can never
// be confused with a regular call.
func (p *Parser) castExpr(typeTok token.Token) (ast.Expr, *Error) {
	kind, _ := scalarKind(typeTok.Kind)
	ty := &ast.ScalarType{Kind: kind, Span: typeTok.Span}
	if _, err := p.expect(token.LeftParen, "cast expression"); err != nil {
		return nil, err
	}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "cast expression"); err != nil {
		return nil, err
	}
	return &ast.Cast{Expr: e, Type: ty, Span: spanTo(typeTok, p.previous())}, nil
}

func (p *Parser) builtinDim() (ast.BuiltinDim, *Error) {
	if !p.match(token.Dot) {
		return ast.DimNone, nil
	}
	tok, err := p.expect(token.Ident, "built-in component selector")
	if err != nil {
		return ast.DimNone, err
	}
	switch tok.Text {
	case "x", "0":
		return ast.DimX, nil
	case "y", "1":
		return ast.DimY, nil
	case "z", "2":
		return ast.DimZ, nil
	default:
		return ast.DimNone, unexpectedTokenf(tok, "invalid built-in component %q, expected x, y, or z", tok.Text)
	}
}

func (p *Parser) ifExpr() (ast.Expr, *Error) {
	start := p.advance() // 'if'
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.blockExpr()
	if err != nil {
		return nil, err
	}

	var elseExpr ast.Expr
	if p.match(token.Else) {
		if p.check(token.If) {
			elseExpr, err = p.ifExpr()
		} else {
			elseExpr, err = p.blockExpr()
		}
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Cond: cond, Then: then, Else: elseExpr, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) blockExpr() (ast.Expr, *Error) {
	start := p.peek()
	stmts, err := p.stmtBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Stmts: stmts, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) tensorInit(start token.Token) (ast.Expr, *Error) {
	if _, err := p.expect(token.Less, "Tensor initializer arguments"); err != nil {
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
	if _, err := p.expect(token.Greater, "Tensor initializer arguments"); err != nil {
		return nil, err
	}
	return &ast.TensorInit{DType: dtype, Shape: shape, Span: spanTo(start, p.previous())}, nil
}
