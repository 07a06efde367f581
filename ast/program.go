package ast

import "github.com/flarelang/flare/token"

// Program is the root node: a sequence of top-level items. Each item is
// restricted to Kernel, Fusion, Schedule, Function, TypeDef, or Let.
type Program struct {
	Items []Stmt
	Span  token.Span
}

func (p *Program) Pos() token.Span { return p.Span }
