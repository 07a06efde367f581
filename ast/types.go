package ast

import "github.com/flarelang/flare/token"

// ScalarKind is the closed set of scalar base types.
type ScalarKind uint8

const (
	I32 ScalarKind = iota
	I64
	U32
	U64
	F32
	F64
	Bool
)

func (s ScalarKind) String() string {
	switch s {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// ScalarType is a bare scalar type (I32, F32, Bool, ...).
type ScalarType struct {
	Kind ScalarKind
	Span token.Span
}

func (t *ScalarType) Pos() token.Span { return t.Span }
func (t *ScalarType) typeNode()       {}

// NamedType is an identifier used in type position, validated against the
// Metal allowlist by the type converter.
type NamedType struct {
	Name string
	Span token.Span
}

func (t *NamedType) Pos() token.Span { return t.Span }
func (t *NamedType) typeNode()       {}

// VectorType is `Vector<dtype, len>`. Len is kept as its original source
// lexeme since symbolic dimensions are legal syntax. The type converter, not
// the parser, rejects lengths other than 2, 3, 4 and the shorthand x, y, z.
type VectorType struct {
	DType Type
	Len   string
	Span  token.Span
}

func (t *VectorType) Pos() token.Span { return t.Span }
func (t *VectorType) typeNode()       {}

// MatrixType is `Matrix<dtype, rows, cols>`.
type MatrixType struct {
	DType Type
	Rows  string
	Cols  string
	Span  token.Span
}

func (t *MatrixType) Pos() token.Span { return t.Span }
func (t *MatrixType) typeNode()       {}

// TensorType is `Tensor<dtype, shape...>`.
type TensorType struct {
	DType Type
	Shape []string
	Span  token.Span
}

func (t *TensorType) Pos() token.Span { return t.Span }
func (t *TensorType) typeNode()       {}

// PtrType is `*dtype`.
type PtrType struct {
	DType Type
	Span  token.Span
}

func (t *PtrType) Pos() token.Span { return t.Span }
func (t *PtrType) typeNode()       {}

// ArrayType is `dtype[size]`; Size is empty for an unsized array.
type ArrayType struct {
	DType Type
	Size  string
	Span  token.Span
}

func (t *ArrayType) Pos() token.Span { return t.Span }
func (t *ArrayType) typeNode()       {}
