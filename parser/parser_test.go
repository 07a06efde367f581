package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelang/flare/ast"
	"github.com/flarelang/flare/token"
)

func TestParse_TrivialKernel(t *testing.T) {
	program, err := Parse(`kernel k() { let i: i32 = 1; }`)
	require.Nil(t, err)
	require.Len(t, program.Items, 1)

	kstmt, ok := program.Items[0].(*ast.KernelStmt)
	require.True(t, ok)
	assert.Equal(t, "k", kstmt.Kernel.Name)
	require.Len(t, kstmt.Kernel.Body, 1)

	let, ok := kstmt.Kernel.Body[0].(*ast.LetStmt)
	require.True(t, ok)
	assert.Equal(t, "i", let.Name)
}

func TestParse_EverySpanIsWithinSourceAndOrdered(t *testing.T) {
	source := `
		schedule k { tile(8, 8); unroll(4); parallel; }
		kernel k(x: *f32, y: Vector<f32, 3>) -> i32 {
			grid: [1, 2]
			block: [16, 16]
			shared_memory { tile: f32[16, 16] }
			compute { sync_threads(); }
			let r = block_idx.y + thread_idx.x;
			for i in 0..N {
				if r > 0 { return r; } else { return 0; }
			}
		}
		fuse a, b: elementwise where barriers = [sync1];
	`
	program, err := Parse(source)
	require.Nil(t, err)

	checkSpan := func(span token.Span) {
		assert.GreaterOrEqual(t, span.Start.Offset, 0)
		assert.LessOrEqual(t, span.End.Offset, len(source))
		assert.LessOrEqual(t, span.Start.Offset, span.End.Offset)
	}

	var walkExpr func(e ast.Expr)
	walkExpr = func(e ast.Expr) {
		checkSpan(e.Pos())
		switch v := e.(type) {
		case *ast.Binary:
			walkExpr(v.Left)
			walkExpr(v.Right)
		case *ast.Range:
			if v.Start != nil {
				walkExpr(v.Start)
			}
			if v.End != nil {
				walkExpr(v.End)
			}
		}
	}

	var walkStmt func(s ast.Stmt)
	walkStmt = func(s ast.Stmt) {
		checkSpan(s.Pos())
		switch v := s.(type) {
		case *ast.LetStmt:
			walkExpr(v.Value)
		case *ast.ForStmt:
			walkExpr(v.Iterator)
			walkStmt(v.Body)
		case *ast.IfStmt:
			walkExpr(v.Cond)
			walkStmt(v.Then)
			if v.Else != nil {
				walkStmt(v.Else)
			}
		case *ast.BlockStmt:
			for _, inner := range v.Stmts {
				walkStmt(inner)
			}
		case *ast.KernelStmt:
			checkSpan(v.Kernel.Span)
			for _, e := range v.Kernel.Grid {
				walkExpr(e)
			}
			for _, e := range v.Kernel.Block {
				walkExpr(e)
			}
			for _, inner := range v.Kernel.Body {
				walkStmt(inner)
			}
		case *ast.ScheduleStmt:
			checkSpan(v.Schedule.Span)
			for _, d := range v.Schedule.Directives {
				checkSpan(d.Span)
			}
		case *ast.FusionStmt:
			checkSpan(v.Fusion.Span)
		}
	}

	for _, item := range program.Items {
		walkStmt(item)
	}
}

func TestParse_KernelSectionsAreUniqueAmongFourKinds(t *testing.T) {
	_, err := Parse(`
		kernel k() {
			grid: [1]
			grid: [2]
		}
	`)
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedToken, err.Kind)
}

func TestParse_ScheduleDirectives(t *testing.T) {
	program, err := Parse(`schedule mykernel {
		tile(8, 8);
		vectorize(4);
		unroll(2);
		threads(256);
		memory(buf, shared);
		memory(other, my_pool);
		stream(s0);
		pipeline(3);
		parallel;
	}`)
	require.Nil(t, err)
	require.Len(t, program.Items, 1)

	sched := program.Items[0].(*ast.ScheduleStmt).Schedule
	assert.Equal(t, "mykernel", sched.Target)
	require.Len(t, sched.Directives, 9)

	kinds := make([]ast.DirectiveKind, len(sched.Directives))
	for i, d := range sched.Directives {
		kinds[i] = d.Kind
	}
	assert.Equal(t, []ast.DirectiveKind{
		ast.DirTile, ast.DirVectorize, ast.DirUnroll, ast.DirThreads,
		ast.DirMemory, ast.DirMemory, ast.DirStream, ast.DirPipeline, ast.DirParallel,
	}, kinds)

	named := sched.Directives[5].MemoryLocation
	assert.Equal(t, ast.MemNamed, named.Kind)
	assert.Equal(t, "my_pool", named.Name)

	shared := sched.Directives[4].MemoryLocation
	assert.Equal(t, ast.MemShared, shared.Kind)
}

func TestParse_FusionBlock(t *testing.T) {
	program, err := Parse(`fuse conv, relu, pool: inline where barriers = [b0, b1];`)
	require.Nil(t, err)
	require.Len(t, program.Items, 1)

	fusion := program.Items[0].(*ast.FusionStmt).Fusion
	assert.Equal(t, []string{"conv", "relu", "pool"}, fusion.Targets)
	assert.Equal(t, ast.FusionInline, fusion.Strategy)
	assert.Equal(t, []string{"b0", "b1"}, fusion.Barriers)
}

func TestParse_AttributesAttachToImmediatelyFollowingKernel(t *testing.T) {
	program, err := Parse(`
		@fusion_point
		@optimize(3, "aggressive")
		kernel a() { }
		kernel b() { }
	`)
	require.Nil(t, err)
	require.Len(t, program.Items, 2)

	a := program.Items[0].(*ast.KernelStmt).Kernel
	require.Len(t, a.Attributes, 2)
	assert.Equal(t, "fusion_point", a.Attributes[0].Name)
	assert.Equal(t, "optimize", a.Attributes[1].Name)
	require.Len(t, a.Attributes[1].Args, 2)
	assert.Equal(t, ast.AttrArgInt, a.Attributes[1].Args[0].Kind)
	assert.Equal(t, int64(3), a.Attributes[1].Args[0].Int)
	assert.Equal(t, ast.AttrArgString, a.Attributes[1].Args[1].Kind)
	assert.Equal(t, "aggressive", a.Attributes[1].Args[1].String)

	b := program.Items[1].(*ast.KernelStmt).Kernel
	assert.Empty(t, b.Attributes)
}

func TestParse_UnknownAnnotationFallsBackToIdentifier(t *testing.T) {
	program, err := Parse(`
		@not_a_real_one
		kernel a() { }
	`)
	require.Nil(t, err)
	a := program.Items[0].(*ast.KernelStmt).Kernel
	require.Len(t, a.Attributes, 1)
	assert.Equal(t, "not_a_real_one", a.Attributes[0].Name)
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	program, err := Parse(`kernel k() { let r = 1 + 2 * 3 == 7 && true; }`)
	require.Nil(t, err)
	kernel := program.Items[0].(*ast.KernelStmt).Kernel
	let := kernel.Body[0].(*ast.LetStmt)

	top, ok := let.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.And, top.Op)

	eq, ok := top.Left.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.Equal, eq.Op)

	add, ok := eq.Left.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.Add, add.Op)

	mul, ok := add.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.Mul, mul.Op)
}

func TestParse_ForLoopAcceptsNonRangeIteratorSyntactically(t *testing.T) {
	program, err := Parse(`kernel k() { for i in xs { } }`)
	require.Nil(t, err)
	kernel := program.Items[0].(*ast.KernelStmt).Kernel
	forStmt := kernel.Body[0].(*ast.ForStmt)
	_, isIdent := forStmt.Iterator.(*ast.Ident)
	assert.True(t, isIdent, "parser accepts any expression; the emitter enforces Range")
}

func TestParse_OpenEndedRangeBeforeClosingBracket(t *testing.T) {
	program, err := Parse(`kernel k() { let a = [1..]; }`)
	require.Nil(t, err)
	kernel := program.Items[0].(*ast.KernelStmt).Kernel
	let := kernel.Body[0].(*ast.LetStmt)
	arr := let.Value.(*ast.ArrayLit)
	rng := arr.Elements[0].(*ast.Range)
	assert.Nil(t, rng.End)
}

func TestParse_VectorMatrixTensorTypes(t *testing.T) {
	program, err := Parse(`
		kernel k(v: Vector<f32, 3>, m: Matrix<f32, M, N>, t: Tensor<i32, 4, 4>) { }
	`)
	require.Nil(t, err)
	kernel := program.Items[0].(*ast.KernelStmt).Kernel
	require.Len(t, kernel.Params, 3)

	vt := kernel.Params[0].Type.(*ast.VectorType)
	assert.Equal(t, "3", vt.Len)

	mt := kernel.Params[1].Type.(*ast.MatrixType)
	assert.Equal(t, "M", mt.Rows)
	assert.Equal(t, "N", mt.Cols)

	tt := kernel.Params[2].Type.(*ast.TensorType)
	assert.Equal(t, []string{"4", "4"}, tt.Shape)
}

func TestParse_ThreadBuiltinsWithAndWithoutDim(t *testing.T) {
	program, err := Parse(`kernel k() { let a = thread_idx; let b = thread_idx.x; }`)
	require.Nil(t, err)
	kernel := program.Items[0].(*ast.KernelStmt).Kernel

	a := kernel.Body[0].(*ast.LetStmt).Value.(*ast.ThreadIdx)
	assert.Equal(t, ast.DimNone, a.Dim)

	b := kernel.Body[1].(*ast.LetStmt).Value.(*ast.ThreadIdx)
	assert.Equal(t, ast.DimX, b.Dim)
}

func TestParse_UnexpectedTokenReportsSpan(t *testing.T) {
	_, err := Parse(`kernel ( { }`)
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedToken, err.Kind)
	assert.Greater(t, err.Span.End.Offset, err.Span.Start.Offset)
}

func TestParse_UnexpectedEOFInsideBlock(t *testing.T) {
	_, err := Parse(`kernel k() { let i: i32 = 1;`)
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedEOF, err.Kind)
}

func TestParse_LexErrorIsPropagated(t *testing.T) {
	_, err := Parse(`kernel k() { let i = 1 & 2; }`)
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedChar, err.Kind)
}

func TestParse_TrailingSemicolonsAreOptional(t *testing.T) {
	withSemi, err := Parse(`kernel k() { let i: i32 = 1; return i; }`)
	require.Nil(t, err)
	withoutSemi, err := Parse(`kernel k() { let i: i32 = 1 return i }`)
	require.Nil(t, err)

	a := withSemi.Items[0].(*ast.KernelStmt).Kernel
	b := withoutSemi.Items[0].(*ast.KernelStmt).Kernel
	assert.Len(t, a.Body, 2)
	assert.Len(t, b.Body, 2)
}

func TestParse_FunctionDefinition(t *testing.T) {
	program, err := Parse(`fn square(x: f32) -> f32 { x * x }`)
	require.Nil(t, err)
	fn := program.Items[0].(*ast.FunctionStmt)
	assert.Equal(t, "square", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)

	body, ok := fn.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, body.Stmts, 1)
}

func TestParse_ScheduleDirectiveShapeMatchesExpected(t *testing.T) {
	program, err := Parse(`schedule conv { tile(8, 8); unroll(4); parallel; }`)
	require.Nil(t, err)

	sched := program.Items[0].(*ast.ScheduleStmt).Schedule
	got := make([]ast.DirectiveKind, len(sched.Directives))
	for i, d := range sched.Directives {
		got[i] = d.Kind
	}
	want := []ast.DirectiveKind{ast.DirTile, ast.DirUnroll, ast.DirParallel}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("directive kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_KernelParamNamesShapeMatchesExpected(t *testing.T) {
	program, err := Parse(`kernel matmul(a: *f32, b: *f32, out: *f32, n: i32) { }`)
	require.Nil(t, err)

	kernel := program.Items[0].(*ast.KernelStmt).Kernel
	got := make([]string, len(kernel.Params))
	for i, p := range kernel.Params {
		got[i] = p.Name
	}
	want := []string{"a", "b", "out", "n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parameter name shape mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_TypeDef(t *testing.T) {
	program, err := Parse(`type Weight = f32`)
	require.Nil(t, err)
	td := program.Items[0].(*ast.TypeDefStmt)
	assert.Equal(t, "Weight", td.Name)
	_, ok := td.Type.(*ast.ScalarType)
	assert.True(t, ok)
}
