package ast

import "github.com/flarelang/flare/token"

// BinaryOp is the closed set of binary operators.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Equal
	NotEqual
	Less
	Greater
	LessEqual
	GreaterEqual
	And
	Or
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case Less:
		return "<"
	case Greater:
		return ">"
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case And:
		return "&&"
	case Or:
		return "||"
	default:
		return "?"
	}
}

// UnaryOp is the closed set of unary operators.
type UnaryOp uint8

const (
	Neg UnaryOp = iota
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "!"
	default:
		return "?"
	}
}

// BuiltinDim is a thread/block built-in's optional component selector.
// DimNone means the whole vector is referenced.
type BuiltinDim uint8

const (
	DimNone BuiltinDim = iota
	DimX
	DimY
	DimZ
)

// IntLit is an integer literal expression.
type IntLit struct {
	Value int64
	Span  token.Span
}

func (e *IntLit) Pos() token.Span { return e.Span }
func (e *IntLit) exprNode()       {}

// FloatLit is a floating-point literal expression.
type FloatLit struct {
	Value float64
	Span  token.Span
}

func (e *FloatLit) Pos() token.Span { return e.Span }
func (e *FloatLit) exprNode()       {}

// StringLit is a string literal expression; rejected by the expression
// emitter since MSL has no string type.
type StringLit struct {
	Value string
	Span  token.Span
}

func (e *StringLit) Pos() token.Span { return e.Span }
func (e *StringLit) exprNode()       {}

// BoolLit is a boolean literal expression.
type BoolLit struct {
	Value bool
	Span  token.Span
}

func (e *BoolLit) Pos() token.Span { return e.Span }
func (e *BoolLit) exprNode()       {}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Span token.Span
}

func (e *Ident) Pos() token.Span { return e.Span }
func (e *Ident) exprNode()       {}

// Binary is a binary operator expression.
type Binary struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
	Span  token.Span
}

func (e *Binary) Pos() token.Span { return e.Span }
func (e *Binary) exprNode()       {}

// Unary is a prefix unary operator expression.
type Unary struct {
	Op   UnaryOp
	Expr Expr
	Span token.Span
}

func (e *Unary) Pos() token.Span { return e.Span }
func (e *Unary) exprNode()       {}

// Call is a function call expression.
type Call struct {
	Func Expr
	Args []Expr
	Span token.Span
}

func (e *Call) Pos() token.Span { return e.Span }
func (e *Call) exprNode()       {}

// Member is a field-access expression `object.field`.
type Member struct {
	Object Expr
	Field  string
	Span   token.Span
}

func (e *Member) Pos() token.Span { return e.Span }
func (e *Member) exprNode()       {}

// Index is an indexing expression `object[i1, i2, ...]`.
type Index struct {
	Object  Expr
	Indices []Expr
	Span    token.Span
}

func (e *Index) Pos() token.Span { return e.Span }
func (e *Index) exprNode()       {}

// Range is a `start?..end?` range expression, legal only as a `for`
// iterator; rejected elsewhere by the expression emitter.
type Range struct {
	Start Expr // nil if open-ended
	End   Expr // nil if open-ended
	Span  token.Span
}

func (e *Range) Pos() token.Span { return e.Span }
func (e *Range) exprNode()       {}

// ArrayLit is an array literal `[e1, e2, ...]`.
type ArrayLit struct {
	Elements []Expr
	Span     token.Span
}

func (e *ArrayLit) Pos() token.Span { return e.Span }
func (e *ArrayLit) exprNode()       {}

// TensorInit is a `Tensor<dtype, shape>` initializer expression; rejected
// by the expression emitter (MSL has no tensor type).
type TensorInit struct {
	DType Type
	Shape []string
	Span  token.Span
}

func (e *TensorInit) Pos() token.Span { return e.Span }
func (e *TensorInit) exprNode()       {}

// If is a conditional expression; Else is nil when absent, which is only
// legal in statement position.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	Span token.Span
}

func (e *If) Pos() token.Span { return e.Span }
func (e *If) exprNode()       {}

// Block is a `{ stmt* }` expression; rejected by the expression emitter.
type Block struct {
	Stmts []Stmt
	Span  token.Span
}

func (e *Block) Pos() token.Span { return e.Span }
func (e *Block) exprNode()       {}

// Assign is a plain assignment expression `target = value`.
type Assign struct {
	Target Expr
	Value  Expr
	Span   token.Span
}

func (e *Assign) Pos() token.Span { return e.Span }
func (e *Assign) exprNode()       {}

// CompoundAssign is a compound assignment expression `target op= value`.
type CompoundAssign struct {
	Target Expr
	Op     BinaryOp
	Value  Expr
	Span   token.Span
}

func (e *CompoundAssign) Pos() token.Span { return e.Span }
func (e *CompoundAssign) exprNode()       {}

// Cast is an explicit type-cast expression, written `T(expr)` with a scalar
// type keyword T and emitted as `T(expr)`.
type Cast struct {
	Expr Expr
	Type Type
	Span token.Span
}

func (e *Cast) Pos() token.Span { return e.Span }
func (e *Cast) exprNode()       {}

// ThreadIdx is the `thread_idx[.dim]` built-in.
type ThreadIdx struct {
	Dim  BuiltinDim
	Span token.Span
}

func (e *ThreadIdx) Pos() token.Span { return e.Span }
func (e *ThreadIdx) exprNode()       {}

// BlockIdx is the `block_idx[.dim]` built-in.
type BlockIdx struct {
	Dim  BuiltinDim
	Span token.Span
}

func (e *BlockIdx) Pos() token.Span { return e.Span }
func (e *BlockIdx) exprNode()       {}

// BlockDim is the `block_dim[.dim]` built-in.
type BlockDim struct {
	Dim  BuiltinDim
	Span token.Span
}

func (e *BlockDim) Pos() token.Span { return e.Span }
func (e *BlockDim) exprNode()       {}
