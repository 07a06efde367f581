package parser

import (
	"github.com/flarelang/flare/ast"
	"github.com/flarelang/flare/token"
)

func (p *Parser) maybeSemi() {
	if p.check(token.Semicolon) {
		p.advance()
	}
}

// stmtBlockBody parses `{ stmt* }`, leaving the closing brace consumed.
func (p *Parser) stmtBlockBody() ([]ast.Stmt, *Error) {
	if _, err := p.expect(token.LeftBrace, "block"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(token.RightBrace, "block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) statement() (ast.Stmt, *Error) {
	switch p.peek().Kind {
	case token.Let:
		return p.letStmt()
	case token.Var:
		return p.varStmt()
	case token.Const:
		return p.constStmt()
	case token.If:
		return p.ifStmt()
	case token.While:
		return p.whileStmt()
	case token.For:
		return p.forStmt()
	case token.Return:
		return p.returnStmt()
	case token.LeftBrace:
		return p.blockStmt()
	case token.SyncThreads:
		return p.syncThreadsStmt()
	case token.LoadShared:
		return p.loadSharedStmt()
	case token.TypeKw:
		return p.typeDefStmt()
	case token.Fn:
		return p.functionStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) letStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'let'
	name, err := p.expect(token.Ident, "let binding")
	if err != nil {
		return nil, err
	}
	var ty ast.Type
	if p.match(token.Colon) {
		ty, err = p.typeSpec()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Equal, "let binding"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.maybeSemi()
	return &ast.LetStmt{Name: name.Text, Type: ty, Value: value, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) varStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'var'
	name, err := p.expect(token.Ident, "var binding")
	if err != nil {
		return nil, err
	}
	var ty ast.Type
	if p.match(token.Colon) {
		ty, err = p.typeSpec()
		if err != nil {
			return nil, err
		}
	}
	var value ast.Expr
	if p.match(token.Equal) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	p.maybeSemi()
	return &ast.VarStmt{Name: name.Text, Type: ty, Value: value, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) constStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'const'
	name, err := p.expect(token.Ident, "const binding")
	if err != nil {
		return nil, err
	}
	var ty ast.Type
	if p.match(token.Colon) {
		ty, err = p.typeSpec()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Equal, "const binding"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.maybeSemi()
	return &ast.ConstStmt{Name: name.Text, Type: ty, Value: value, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) ifStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'if'
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.match(token.Else) {
		elseStmt, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) whileStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'while'
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) forStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'for'
	varName, err := p.expect(token.Ident, "for loop")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.In, "for loop"); err != nil {
		return nil, err
	}
	iter, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Var: varName.Text, Iterator: iter, Body: body, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) returnStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'return'
	var value ast.Expr
	if !p.startsStatementTerminator() {
		var err *Error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	p.maybeSemi()
	return &ast.ReturnStmt{Value: value, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) startsStatementTerminator() bool {
	switch p.peek().Kind {
	case token.Semicolon, token.RightBrace, token.EOF:
		return true
	}
	return false
}

func (p *Parser) blockStmt() (ast.Stmt, *Error) {
	start := p.peek()
	stmts, err := p.stmtBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Stmts: stmts, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) syncThreadsStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'sync_threads'
	if _, err := p.expect(token.LeftParen, "sync_threads()"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "sync_threads()"); err != nil {
		return nil, err
	}
	p.maybeSemi()
	return &ast.SyncThreadsStmt{Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) loadSharedStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'load_shared'
	if _, err := p.expect(token.LeftParen, "load_shared(dest, src)"); err != nil {
		return nil, err
	}
	dest, err := p.expect(token.Ident, "load_shared(dest, src)")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma, "load_shared(dest, src)"); err != nil {
		return nil, err
	}
	src, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "load_shared(dest, src)"); err != nil {
		return nil, err
	}
	p.maybeSemi()
	return &ast.LoadSharedStmt{Dest: dest.Text, Src: src, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) typeDefStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'type'
	name, err := p.expect(token.Ident, "type definition")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal, "type definition"); err != nil {
		return nil, err
	}
	ty, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	p.maybeSemi()
	return &ast.TypeDefStmt{Name: name.Text, Type: ty, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) exprStmt() (ast.Stmt, *Error) {
	start := p.peek()
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.maybeSemi()
	return &ast.ExprStmt{Expr: e, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) functionStmt() (ast.Stmt, *Error) {
	start := p.advance() // 'fn'
	name, err := p.expect(token.Ident, "function definition")
	if err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	var ret ast.Type
	if p.match(token.Arrow) {
		ret, err = p.typeSpec()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.blockExpr()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStmt{
		Name:       name.Text,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		Span:       spanTo(start, p.previous()),
	}, nil
}

// paramList parses a parenthesized `name: type` list.
func (p *Parser) paramList() ([]ast.Param, *Error) {
	if _, err := p.expect(token.LeftParen, "parameter list"); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.check(token.RightParen) && !p.isAtEnd() {
		nameTok, err := p.expect(token.Ident, "parameter")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "parameter"); err != nil {
			return nil, err
		}
		ty, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Text, Type: ty, Span: spanTo(nameTok, p.previous())})
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RightParen, "parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}
