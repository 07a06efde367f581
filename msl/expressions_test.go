package msl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelang/flare/ast"
	"github.com/flarelang/flare/token"
)

func mustEmit(t *testing.T, e ast.Expr) string {
	t.Helper()
	s, err := emitExpr(e)
	require.Nil(t, err, "emitExpr failed: %v", err)
	return s
}

func TestEmitExpr_Literals(t *testing.T) {
	assert.Equal(t, "42", mustEmit(t, &ast.IntLit{Value: 42}))
	assert.Equal(t, "1.0f", mustEmit(t, &ast.FloatLit{Value: 1}))
	assert.Equal(t, "1.5f", mustEmit(t, &ast.FloatLit{Value: 1.5}))
	assert.Equal(t, "true", mustEmit(t, &ast.BoolLit{Value: true}))
	assert.Equal(t, "false", mustEmit(t, &ast.BoolLit{Value: false}))
}

func TestEmitExpr_Binary(t *testing.T) {
	e := &ast.Binary{Left: &ast.Ident{Name: "a"}, Op: ast.Add, Right: &ast.Ident{Name: "b"}}
	assert.Equal(t, "(a + b)", mustEmit(t, e))
}

func TestEmitExpr_Unary(t *testing.T) {
	e := &ast.Unary{Op: ast.Neg, Expr: &ast.Ident{Name: "a"}}
	assert.Equal(t, "(-a)", mustEmit(t, e))
}

func TestEmitExpr_Call(t *testing.T) {
	e := &ast.Call{Func: &ast.Ident{Name: "sqrt"}, Args: []ast.Expr{&ast.Ident{Name: "x"}}}
	assert.Equal(t, "sqrt(x)", mustEmit(t, e))
}

func TestEmitExpr_Index_ChainedBrackets(t *testing.T) {
	e := &ast.Index{Object: &ast.Ident{Name: "tile"}, Indices: []ast.Expr{&ast.Ident{Name: "i"}, &ast.Ident{Name: "j"}}}
	assert.Equal(t, "tile[i][j]", mustEmit(t, e))
}

func TestEmitExpr_IfElseIsTernary(t *testing.T) {
	e := &ast.If{Cond: &ast.Ident{Name: "c"}, Then: &ast.IntLit{Value: 1}, Else: &ast.IntLit{Value: 2}}
	assert.Equal(t, "(c ? 1 : 2)", mustEmit(t, e))
}

func TestEmitExpr_IfWithoutElseErrors(t *testing.T) {
	e := &ast.If{Cond: &ast.Ident{Name: "c"}, Then: &ast.IntLit{Value: 1}}
	_, err := emitExpr(e)
	require.NotNil(t, err)
	assert.Equal(t, ExpressionError, err.Kind)
}

func TestEmitExpr_Cast(t *testing.T) {
	e := &ast.Cast{Expr: &ast.Ident{Name: "x"}, Type: &ast.ScalarType{Kind: ast.F32}}
	assert.Equal(t, "float(x)", mustEmit(t, e))
}

func TestEmitExpr_ThreadBuiltins(t *testing.T) {
	assert.Equal(t, "thread_position_in_threadgroup", mustEmit(t, &ast.ThreadIdx{}))
	assert.Equal(t, "threadgroup_position_in_grid.y", mustEmit(t, &ast.BlockIdx{Dim: ast.DimY}))
	assert.Equal(t, "threads_per_threadgroup.z", mustEmit(t, &ast.BlockDim{Dim: ast.DimZ}))
}

func TestEmitExpr_RejectedVariants(t *testing.T) {
	rejected := []ast.Expr{
		&ast.StringLit{Value: "hi"},
		&ast.Range{End: &ast.IntLit{Value: 1}},
		&ast.TensorInit{DType: &ast.ScalarType{Kind: ast.F32}},
		&ast.Block{},
	}
	for _, e := range rejected {
		_, err := emitExpr(e)
		require.NotNil(t, err)
		assert.Equal(t, UnsupportedFeature, err.Kind)
	}
}

func TestUnsupportedFeatureErr_SuggestsAgainstPermittedExpressionKinds(t *testing.T) {
	err := unsupportedFeatureErr(token.Span{}, "identifie", "looks like a misspelled identifier form")
	assert.Equal(t, "identifier", err.Suggestion)
}
