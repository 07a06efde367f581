// Package token defines the lexical token model shared by the Flare lexer
// and parser: a closed set of token kinds, source spans, and positions.
package token

// Kind is the closed enumeration of lexical token kinds.
type Kind uint16

const (
	EOF Kind = iota
	Error

	// Literals and names
	Ident
	IntLiteral
	FloatLiteral
	StringLiteral
	Newline

	// Keywords
	Kernel
	Fn
	Let
	Var
	Const
	If
	Else
	For
	While
	In
	Return
	TypeKw
	Grid
	Block
	SharedMemory
	Compute
	ThreadIdx
	BlockIdx
	BlockDim
	SyncThreads
	LoadShared
	Schedule
	Stream
	Pipeline
	Parallel
	Fuse
	Memory
	Persistent
	Temporary
	Streaming
	Where
	True
	False

	// Type keywords
	TensorKw
	MatrixKw
	VectorKw
	I32
	I64
	U32
	U64
	F32
	F64
	BoolKw

	// Punctuation and operators
	Plus
	Minus
	Star
	Slash
	Percent
	EqualEqual
	BangEqual
	Less
	Greater
	LessEqual
	GreaterEqual
	AmpAmp
	PipePipe
	Bang
	Equal
	PlusEqual
	MinusEqual
	StarEqual
	SlashEqual
	Arrow
	DotDot
	Dot
	Comma
	Colon
	Semicolon
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Question

	// Annotation markers (closed list; a bare '@' is AtSign)
	AtSign
	AtFusionPoint
	AtFusable
	AtFusionTransform
	AtFusedKernel
	AtOptimize
	AtAutoTune
	AtSchedule
	AtMemory
	AtDependsOn
	AtIndependent
	AtPreferParallel
	AtMustWait
	AtPipelineDepth
)

// String returns a human-readable name for the token kind, used in error
// messages and test output.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Error:
		return "Error"
	case Ident:
		return "Identifier"
	case IntLiteral:
		return "IntLiteral"
	case FloatLiteral:
		return "FloatLiteral"
	case StringLiteral:
		return "StringLiteral"
	case Newline:
		return "Newline"
	case Kernel:
		return "kernel"
	case Fn:
		return "fn"
	case Let:
		return "let"
	case Var:
		return "var"
	case Const:
		return "const"
	case If:
		return "if"
	case Else:
		return "else"
	case For:
		return "for"
	case While:
		return "while"
	case In:
		return "in"
	case Return:
		return "return"
	case TypeKw:
		return "type"
	case Grid:
		return "grid"
	case Block:
		return "block"
	case SharedMemory:
		return "shared_memory"
	case Compute:
		return "compute"
	case ThreadIdx:
		return "thread_idx"
	case BlockIdx:
		return "block_idx"
	case BlockDim:
		return "block_dim"
	case SyncThreads:
		return "sync_threads"
	case LoadShared:
		return "load_shared"
	case Schedule:
		return "schedule"
	case Stream:
		return "stream"
	case Pipeline:
		return "pipeline"
	case Parallel:
		return "parallel"
	case Fuse:
		return "fuse"
	case Memory:
		return "memory"
	case Persistent:
		return "persistent"
	case Temporary:
		return "temporary"
	case Streaming:
		return "streaming"
	case Where:
		return "where"
	case True:
		return "true"
	case False:
		return "false"
	case TensorKw:
		return "Tensor"
	case MatrixKw:
		return "Matrix"
	case VectorKw:
		return "Vector"
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
	case BoolKw:
		return "bool"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Percent:
		return "%"
	case EqualEqual:
		return "=="
	case BangEqual:
		return "!="
	case Less:
		return "<"
	case Greater:
		return ">"
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case AmpAmp:
		return "&&"
	case PipePipe:
		return "||"
	case Bang:
		return "!"
	case Equal:
		return "="
	case PlusEqual:
		return "+="
	case MinusEqual:
		return "-="
	case StarEqual:
		return "*="
	case SlashEqual:
		return "/="
	case Arrow:
		return "->"
	case DotDot:
		return ".."
	case Dot:
		return "."
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case LeftBracket:
		return "["
	case RightBracket:
		return "]"
	case Question:
		return "?"
	case AtSign:
		return "@"
	case AtFusionPoint:
		return "@fusion_point"
	case AtFusable:
		return "@fusable"
	case AtFusionTransform:
		return "@fusion_transform"
	case AtFusedKernel:
		return "@fused_kernel"
	case AtOptimize:
		return "@optimize"
	case AtAutoTune:
		return "@auto_tune"
	case AtSchedule:
		return "@schedule"
	case AtMemory:
		return "@memory"
	case AtDependsOn:
		return "@depends_on"
	case AtIndependent:
		return "@independent"
	case AtPreferParallel:
		return "@prefer_parallel"
	case AtMustWait:
		return "@must_wait"
	case AtPipelineDepth:
		return "@pipeline_depth"
	default:
		return "Unknown"
	}
}

// keywords maps reserved-word lexemes to their token kind. Identifiers that
// do not appear here lex as Ident.
var keywords = map[string]Kind{
	"kernel":        Kernel,
	"fn":            Fn,
	"let":           Let,
	"var":           Var,
	"const":         Const,
	"if":            If,
	"else":          Else,
	"for":           For,
	"while":         While,
	"in":            In,
	"return":        Return,
	"type":          TypeKw,
	"grid":          Grid,
	"block":         Block,
	"shared_memory": SharedMemory,
	"compute":       Compute,
	"thread_idx":    ThreadIdx,
	"block_idx":     BlockIdx,
	"block_dim":     BlockDim,
	"sync_threads":  SyncThreads,
	"load_shared":   LoadShared,
	"schedule":      Schedule,
	"stream":        Stream,
	"pipeline":      Pipeline,
	"parallel":      Parallel,
	"fuse":          Fuse,
	"memory":        Memory,
	"persistent":    Persistent,
	"temporary":     Temporary,
	"streaming":     Streaming,
	"where":         Where,
	"true":          True,
	"false":         False,
	"Tensor":        TensorKw,
	"Matrix":        MatrixKw,
	"Vector":        VectorKw,
	"i32":           I32,
	"i64":           I64,
	"u32":           U32,
	"u64":           U64,
	"f32":           F32,
	"f64":           F64,
	"bool":          BoolKw,
}

// Annotations maps the closed set of recognized "@name" lexemes to their
// dedicated token kind. Any other "@name" lexes as AtSign followed by an
// Ident token.
var Annotations = map[string]Kind{
	"@fusion_point":     AtFusionPoint,
	"@fusable":          AtFusable,
	"@fusion_transform": AtFusionTransform,
	"@fused_kernel":     AtFusedKernel,
	"@optimize":         AtOptimize,
	"@auto_tune":        AtAutoTune,
	"@schedule":         AtSchedule,
	"@memory":           AtMemory,
	"@depends_on":       AtDependsOn,
	"@independent":      AtIndependent,
	"@prefer_parallel":  AtPreferParallel,
	"@must_wait":        AtMustWait,
	"@pipeline_depth":   AtPipelineDepth,
}

// LookupKeyword returns the keyword token kind for ident, and whether it is
// one.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Position is a line/column/byte-offset location in source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start Position
	End   Position
}

// Token bundles a token kind with its source text slice and span.
type Token struct {
	Kind Kind
	Text string
	Span Span
}
