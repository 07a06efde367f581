package parser

import (
	"github.com/flarelang/flare/ast"
	"github.com/flarelang/flare/token"
)

// kernelDef parses `kernel name<generics>?(params) -> type? { sections }`.
func (p *Parser) kernelDef(attrs []ast.Attribute) (*ast.KernelDef, *Error) {
	start := p.advance() // 'kernel'
	name, err := p.expect(token.Ident, "kernel definition")
	if err != nil {
		return nil, err
	}

	kd := &ast.KernelDef{Name: name.Text, Attributes: attrs}

	if p.match(token.Less) {
		generics, err := p.genericParamList()
		if err != nil {
			return nil, err
		}
		kd.GenericParams = generics
	}

	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	kd.Params = params

	if p.match(token.Arrow) {
		ret, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		kd.ReturnType = ret
	}

	if _, err := p.expect(token.LeftBrace, "kernel body"); err != nil {
		return nil, err
	}

	var gridSet, blockSet, sharedSet, computeSet bool
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		switch p.peek().Kind {
		case token.Grid:
			if gridSet {
				return nil, unexpectedTokenf(p.peek(), "kernel %q has more than one grid section", kd.Name)
			}
			gridSet = true
			exprs, err := p.sectionExprList(token.Grid)
			if err != nil {
				return nil, err
			}
			kd.Grid = exprs

		case token.Block:
			if blockSet {
				return nil, unexpectedTokenf(p.peek(), "kernel %q has more than one block section", kd.Name)
			}
			blockSet = true
			exprs, err := p.sectionExprList(token.Block)
			if err != nil {
				return nil, err
			}
			kd.Block = exprs

		case token.SharedMemory:
			if sharedSet {
				return nil, unexpectedTokenf(p.peek(), "kernel %q has more than one shared_memory section", kd.Name)
			}
			sharedSet = true
			decls, err := p.sharedMemoryBlock()
			if err != nil {
				return nil, err
			}
			kd.SharedMemory = decls

		case token.Compute:
			if computeSet {
				return nil, unexpectedTokenf(p.peek(), "kernel %q has more than one compute section", kd.Name)
			}
			computeSet = true
			p.advance()
			stmts, err := p.stmtBlockBody()
			if err != nil {
				return nil, err
			}
			kd.Compute = stmts

		default:
			s, err := p.statement()
			if err != nil {
				return nil, err
			}
			kd.Body = append(kd.Body, s)
		}
	}

	if _, err := p.expect(token.RightBrace, "kernel body"); err != nil {
		return nil, err
	}

	kd.Span = spanTo(start, p.previous())
	return kd, nil
}

func (p *Parser) genericParamList() ([]string, *Error) {
	var names []string
	for !p.check(token.Greater) && !p.isAtEnd() {
		tok, err := p.expect(token.Ident, "generic parameter list")
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Text)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.Greater, "generic parameter list"); err != nil {
		return nil, err
	}
	return names, nil
}

// sectionExprList parses `kind ':' '[' exprs ']'`, consuming the section
// keyword itself.
func (p *Parser) sectionExprList(kind token.Kind) ([]ast.Expr, *Error) {
	p.advance() // section keyword
	if _, err := p.expect(token.Colon, "section"); err != nil {
		return nil, err
	}
	exprs, err := p.bracketExprList()
	if err != nil {
		return nil, err
	}
	p.maybeSemi()
	return exprs, nil
}

func (p *Parser) bracketExprList() ([]ast.Expr, *Error) {
	if _, err := p.expect(token.LeftBracket, "bracketed expression list"); err != nil {
		return nil, err
	}
	var exprs []ast.Expr
	for !p.check(token.RightBracket) && !p.isAtEnd() {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RightBracket, "bracketed expression list"); err != nil {
		return nil, err
	}
	return exprs, nil
}

// sharedMemoryBlock parses `shared_memory { decl* }` where each decl has
// the form `name ':' type? '[' shape_exprs ']'`. The type is syntactically
// optional here; the emitter rejects a type-less declaration with
// InvalidMemoryConfig rather than defaulting to a type.
func (p *Parser) sharedMemoryBlock() ([]ast.SharedMemoryDecl, *Error) {
	p.advance() // 'shared_memory'
	if _, err := p.expect(token.LeftBrace, "shared_memory section"); err != nil {
		return nil, err
	}
	var decls []ast.SharedMemoryDecl
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		start := p.peek()
		name, err := p.expect(token.Ident, "shared memory declaration")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "shared memory declaration"); err != nil {
			return nil, err
		}
		var ty ast.Type
		if !p.check(token.LeftBracket) {
			ty, err = p.typeAtom(p.peek())
			if err != nil {
				return nil, err
			}
		}
		shape, err := p.bracketExprList()
		if err != nil {
			return nil, err
		}
		decls = append(decls, ast.SharedMemoryDecl{
			Name:  name.Text,
			Shape: shape,
			Type:  ty,
			Span:  spanTo(start, p.previous()),
		})
		p.maybeSemi()
	}
	if _, err := p.expect(token.RightBrace, "shared_memory section"); err != nil {
		return nil, err
	}
	return decls, nil
}

// scheduleBlock parses `schedule target? { (directive ';'?)* }`.
func (p *Parser) scheduleBlock() (*ast.ScheduleBlock, *Error) {
	start := p.advance() // 'schedule'
	var target string
	if p.check(token.Ident) {
		target = p.advance().Text
	}
	if _, err := p.expect(token.LeftBrace, "schedule block"); err != nil {
		return nil, err
	}

	var directives []ast.ScheduleDirective
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		d, err := p.scheduleDirective()
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
		p.maybeSemi()
	}
	if _, err := p.expect(token.RightBrace, "schedule block"); err != nil {
		return nil, err
	}
	return &ast.ScheduleBlock{Target: target, Directives: directives, Span: spanTo(start, p.previous())}, nil
}

func (p *Parser) scheduleDirective() (ast.ScheduleDirective, *Error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident, token.Memory, token.Stream, token.Pipeline, token.Parallel:
	default:
		return ast.ScheduleDirective{}, unexpectedTokenf(tok, "expected a schedule directive, found %s", tok.Kind)
	}
	p.advance()

	switch tok.Text {
	case "tile":
		args, err := p.parenExprArgs(1, 3)
		if err != nil {
			return ast.ScheduleDirective{}, err
		}
		d := ast.ScheduleDirective{Kind: ast.DirTile, TileX: args[0], Span: spanTo(tok, p.previous())}
		if len(args) > 1 {
			d.TileY = args[1]
		}
		if len(args) > 2 {
			d.TileZ = args[2]
		}
		return d, nil

	case "vectorize":
		args, err := p.parenExprArgs(1, 1)
		if err != nil {
			return ast.ScheduleDirective{}, err
		}
		return ast.ScheduleDirective{Kind: ast.DirVectorize, N: args[0], Span: spanTo(tok, p.previous())}, nil

	case "unroll":
		args, err := p.parenExprArgs(1, 1)
		if err != nil {
			return ast.ScheduleDirective{}, err
		}
		return ast.ScheduleDirective{Kind: ast.DirUnroll, N: args[0], Span: spanTo(tok, p.previous())}, nil

	case "threads":
		args, err := p.parenExprArgs(1, 2)
		if err != nil {
			return ast.ScheduleDirective{}, err
		}
		d := ast.ScheduleDirective{Kind: ast.DirThreads, ThreadsX: args[0], Span: spanTo(tok, p.previous())}
		if len(args) > 1 {
			d.ThreadsY = args[1]
		}
		return d, nil

	case "memory":
		if _, err := p.expect(token.LeftParen, "memory(var, location)"); err != nil {
			return ast.ScheduleDirective{}, err
		}
		varName, err := p.expect(token.Ident, "memory(var, location)")
		if err != nil {
			return ast.ScheduleDirective{}, err
		}
		if _, err := p.expect(token.Comma, "memory(var, location)"); err != nil {
			return ast.ScheduleDirective{}, err
		}
		locTok := p.peek()
		switch locTok.Kind {
		case token.Persistent, token.Temporary, token.Streaming:
			p.advance()
		default:
			if locTok, err = p.expect(token.Ident, "memory(var, location)"); err != nil {
				return ast.ScheduleDirective{}, err
			}
		}
		if _, err := p.expect(token.RightParen, "memory(var, location)"); err != nil {
			return ast.ScheduleDirective{}, err
		}
		return ast.ScheduleDirective{
			Kind:           ast.DirMemory,
			MemoryVar:      varName.Text,
			MemoryLocation: ast.ResolveMemoryLocation(locTok.Text),
			Span:           spanTo(tok, p.previous()),
		}, nil

	case "stream":
		if _, err := p.expect(token.LeftParen, "stream(name)"); err != nil {
			return ast.ScheduleDirective{}, err
		}
		nameTok, err := p.expect(token.Ident, "stream(name)")
		if err != nil {
			return ast.ScheduleDirective{}, err
		}
		if _, err := p.expect(token.RightParen, "stream(name)"); err != nil {
			return ast.ScheduleDirective{}, err
		}
		return ast.ScheduleDirective{Kind: ast.DirStream, StreamName: nameTok.Text, Span: spanTo(tok, p.previous())}, nil

	case "pipeline":
		var depth ast.Expr
		if p.match(token.LeftParen) {
			if !p.check(token.RightParen) {
				d, err := p.expression()
				if err != nil {
					return ast.ScheduleDirective{}, err
				}
				depth = d
			}
			if _, err := p.expect(token.RightParen, "pipeline()"); err != nil {
				return ast.ScheduleDirective{}, err
			}
		}
		return ast.ScheduleDirective{Kind: ast.DirPipeline, Depth: depth, Span: spanTo(tok, p.previous())}, nil

	case "parallel":
		return ast.ScheduleDirective{Kind: ast.DirParallel, Span: spanTo(tok, p.previous())}, nil

	default:
		return ast.ScheduleDirective{}, unexpectedTokenf(tok, "unknown schedule directive %q", tok.Text)
	}
}

// parenExprArgs parses `(e1, e2, ...)` requiring between min and max args.
func (p *Parser) parenExprArgs(min, max int) ([]ast.Expr, *Error) {
	if _, err := p.expect(token.LeftParen, "directive arguments"); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.check(token.RightParen) && !p.isAtEnd() {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.match(token.Comma) {
			break
		}
	}
	tok := p.peek()
	if _, err := p.expect(token.RightParen, "directive arguments"); err != nil {
		return nil, err
	}
	if len(args) < min || len(args) > max {
		return nil, unexpectedTokenf(tok, "expected between %d and %d directive arguments, found %d", min, max, len(args))
	}
	return args, nil
}

// fusionBlock parses `fuse name, ... (: strategy)? (where barriers = [name, ...])? ';'?`.
func (p *Parser) fusionBlock() (*ast.FusionBlock, *Error) {
	start := p.advance() // 'fuse'
	var targets []string
	for {
		tok, err := p.expect(token.Ident, "fuse target list")
		if err != nil {
			return nil, err
		}
		targets = append(targets, tok.Text)
		if !p.match(token.Comma) {
			break
		}
	}

	strategy := ast.FusionStrategyNone
	if p.match(token.Colon) {
		tok, err := p.expect(token.Ident, "fusion strategy")
		if err != nil {
			return nil, err
		}
		switch tok.Text {
		case "elementwise":
			strategy = ast.FusionElementwise
		case "inline":
			strategy = ast.FusionInline
		case "auto":
			strategy = ast.FusionAuto
		default:
			return nil, unexpectedTokenf(tok, "unknown fusion strategy %q", tok.Text)
		}
	}

	var barriers []string
	if p.match(token.Where) {
		if _, err := p.expectIdentText("barriers"); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Equal, "fusion barriers"); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LeftBracket, "fusion barriers"); err != nil {
			return nil, err
		}
		for !p.check(token.RightBracket) && !p.isAtEnd() {
			tok, err := p.expect(token.Ident, "fusion barriers")
			if err != nil {
				return nil, err
			}
			barriers = append(barriers, tok.Text)
			if !p.match(token.Comma) {
				break
			}
		}
		if _, err := p.expect(token.RightBracket, "fusion barriers"); err != nil {
			return nil, err
		}
	}

	p.maybeSemi()
	return &ast.FusionBlock{
		Targets:  targets,
		Strategy: strategy,
		Barriers: barriers,
		Span:     spanTo(start, p.previous()),
	}, nil
}

// expectIdentText expects an identifier with the given exact text.
func (p *Parser) expectIdentText(text string) (token.Token, *Error) {
	tok, err := p.expect(token.Ident, "expected "+text)
	if err != nil {
		return token.Token{}, err
	}
	if tok.Text != text {
		return token.Token{}, unexpectedTokenf(tok, "expected %q, found %q", text, tok.Text)
	}
	return tok, nil
}
