package ast

import "github.com/flarelang/flare/token"

// AttrArgKind is the closed set of attribute argument value kinds.
type AttrArgKind uint8

const (
	AttrArgIdent AttrArgKind = iota
	AttrArgInt
	AttrArgString
)

// AttrArg is one argument to an Attribute: an identifier, integer, or
// string literal.
type AttrArg struct {
	Kind   AttrArgKind
	Ident  string
	Int    int64
	String string
	Span   token.Span
}

// Attribute is a `@name(args?)` marker attached to the immediately
// following kernel.
type Attribute struct {
	Name string
	Args []AttrArg
	Span token.Span
}

// SharedMemoryDecl declares one threadgroup-memory buffer inside a
// kernel's `shared_memory { ... }` section.
type SharedMemoryDecl struct {
	Name  string
	Shape []Expr
	Type  Type // nil if absent; the emitter rejects the type-less form
	Span  token.Span
}

// KernelDef is a full `kernel name<generics>?(params) -> type? { sections }`
// definition.
type KernelDef struct {
	Name          string
	GenericParams []string
	Params        []Param
	ReturnType    Type // nil if absent
	Grid          []Expr
	Block         []Expr
	SharedMemory  []SharedMemoryDecl
	Compute       []Stmt
	Body          []Stmt
	Attributes    []Attribute
	Span          token.Span
}
