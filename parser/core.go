package parser

import (
	"github.com/flarelang/flare/ast"
	"github.com/flarelang/flare/lexer"
	"github.com/flarelang/flare/token"
)

// Parser parses a token buffer into a Program AST.
type Parser struct {
	tokens  []token.Token
	current int
}

// Parse tokenizes source and parses it into a Program, or returns the
// first error encountered.
func Parse(source string) (*ast.Program, *Error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, fromLexError(err)
	}

	filtered := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.Newline {
			continue
		}
		filtered = append(filtered, t)
	}

	p := &Parser{tokens: filtered}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, *Error) {
	start := p.peek()
	var items []ast.Stmt

	for !p.isAtEnd() {
		attrs, aerr := p.attributes()
		if aerr != nil {
			return nil, aerr
		}

		item, err := p.topLevelItem(attrs)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	end := p.previousOrStart(start)
	return &ast.Program{
		Items: items,
		Span:  token.Span{Start: start.Span.Start, End: end.Span.End},
	}, nil
}

func (p *Parser) previousOrStart(start token.Token) token.Token {
	if p.current == 0 {
		return start
	}
	return p.tokens[p.current-1]
}

// attributes collects leading `@name(args?)` markers for the next
// top-level form.
func (p *Parser) attributes() ([]ast.Attribute, *Error) {
	var attrs []ast.Attribute

	for p.checkAnnotation() {
		tok := p.advance()
		var name string
		var span token.Span
		if tok.Kind == token.AtSign {
			ident, err := p.expect(token.Ident, "attribute name")
			if err != nil {
				return nil, err
			}
			name = ident.Text
			span = token.Span{Start: tok.Span.Start, End: ident.Span.End}
		} else {
			name = annotationName(tok)
			span = tok.Span
		}

		attr := ast.Attribute{Name: name, Span: span}

		if p.match(token.LeftParen) {
			for !p.check(token.RightParen) && !p.isAtEnd() {
				arg, err := p.attrArg()
				if err != nil {
					return nil, err
				}
				attr.Args = append(attr.Args, arg)
				if !p.match(token.Comma) {
					break
				}
			}
			if _, err := p.expect(token.RightParen, "attribute argument list"); err != nil {
				return nil, err
			}
		}

		attrs = append(attrs, attr)
	}

	return attrs, nil
}

func (p *Parser) attrArg() (ast.AttrArg, *Error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return ast.AttrArg{Kind: ast.AttrArgIdent, Ident: tok.Text, Span: tok.Span}, nil
	case token.IntLiteral:
		p.advance()
		n, perr := parseInt(tok.Text)
		if perr != nil {
			return ast.AttrArg{}, unexpectedTokenf(tok, "invalid integer literal %q", tok.Text)
		}
		return ast.AttrArg{Kind: ast.AttrArgInt, Int: n, Span: tok.Span}, nil
	case token.StringLiteral:
		p.advance()
		return ast.AttrArg{Kind: ast.AttrArgString, String: unquote(tok.Text), Span: tok.Span}, nil
	default:
		return ast.AttrArg{}, unexpectedTokenf(tok, "expected attribute argument, found %s", tok.Kind)
	}
}

func (p *Parser) checkAnnotation() bool {
	k := p.peek().Kind
	return k == token.AtSign || isAnnotationKind(k)
}

func isAnnotationKind(k token.Kind) bool {
	switch k {
	case token.AtFusionPoint, token.AtFusable, token.AtFusionTransform, token.AtFusedKernel,
		token.AtOptimize, token.AtAutoTune, token.AtSchedule, token.AtMemory, token.AtDependsOn,
		token.AtIndependent, token.AtPreferParallel, token.AtMustWait, token.AtPipelineDepth:
		return true
	}
	return false
}

func annotationName(tok token.Token) string {
	if isAnnotationKind(tok.Kind) {
		return tok.Kind.String()[1:] // strip leading '@'
	}
	return ""
}

// topLevelItem parses a kernel, fusion, schedule, function, typedef, or
// let statement and attaches attrs to it (only kernels use them).
func (p *Parser) topLevelItem(attrs []ast.Attribute) (ast.Stmt, *Error) {
	switch p.peek().Kind {
	case token.Kernel:
		k, err := p.kernelDef(attrs)
		if err != nil {
			return nil, err
		}
		return &ast.KernelStmt{Kernel: k}, nil
	case token.Fuse:
		f, err := p.fusionBlock()
		if err != nil {
			return nil, err
		}
		return &ast.FusionStmt{Fusion: f}, nil
	case token.Schedule:
		s, err := p.scheduleBlock()
		if err != nil {
			return nil, err
		}
		return &ast.ScheduleStmt{Schedule: s}, nil
	case token.Fn:
		return p.functionStmt()
	case token.TypeKw:
		return p.typeDefStmt()
	case token.Let:
		return p.letStmt()
	default:
		tok := p.peek()
		if tok.Kind == token.EOF {
			return nil, unexpectedEOF(tok, "top-level item")
		}
		return nil, unexpectedTokenf(tok, "unexpected token %s, expected a top-level item", tok.Kind)
	}
}

// --- token stream helpers ---

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind, context string) (token.Token, *Error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	tok := p.peek()
	if tok.Kind == token.EOF {
		return token.Token{}, unexpectedEOF(tok, context)
	}
	return token.Token{}, unexpectedTokenf(tok, "expected %s in %s, found %s", kind, context, tok.Kind)
}
