// Package ast defines the span-annotated abstract syntax tree produced by
// the Flare parser: types, expressions, statements, kernels, schedules,
// fusion blocks, and programs.
package ast

import "github.com/flarelang/flare/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Span
}

// Type is the interface for type nodes.
type Type interface {
	Node
	typeNode()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}
