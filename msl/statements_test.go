package msl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelang/flare/ast"
)

func mustEmitStmt(t *testing.T, s ast.Stmt) string {
	t.Helper()
	w := newWriter()
	err := emitStmt(w, s)
	require.Nil(t, err, "emitStmt failed: %v", err)
	return w.String()
}

func TestEmitStmt_Let(t *testing.T) {
	s := &ast.LetStmt{Name: "i", Type: &ast.ScalarType{Kind: ast.I32}, Value: &ast.IntLit{Value: 1}}
	assert.Equal(t, "const int i = 1;\n", mustEmitStmt(t, s))
}

func TestEmitStmt_LetWithoutTypeUsesAuto(t *testing.T) {
	s := &ast.LetStmt{Name: "r", Value: &ast.Ident{Name: "x"}}
	assert.Equal(t, "const auto r = x;\n", mustEmitStmt(t, s))
}

func TestEmitStmt_VarRequiresTypeOrValue(t *testing.T) {
	w := newWriter()
	err := emitStmt(w, &ast.VarStmt{Name: "v"})
	require.NotNil(t, err)
	assert.Equal(t, StatementError, err.Kind)
}

func TestEmitStmt_SyncThreads(t *testing.T) {
	assert.Equal(t, "threadgroup_barrier(mem_flags::mem_threadgroup);\n", mustEmitStmt(t, &ast.SyncThreadsStmt{}))
}

func TestEmitStmt_ForRangeLowering(t *testing.T) {
	s := &ast.ForStmt{
		Var:      "i",
		Iterator: &ast.Range{End: &ast.Ident{Name: "N"}},
		Body:     &ast.BlockStmt{},
	}
	got := mustEmitStmt(t, s)
	assert.Equal(t, "for (int i = 0; i < N; i++) {\n}\n", got)
}

func TestEmitStmt_ForRequiresRangeIterator(t *testing.T) {
	w := newWriter()
	err := emitStmt(w, &ast.ForStmt{Var: "i", Iterator: &ast.Ident{Name: "xs"}, Body: &ast.BlockStmt{}})
	require.NotNil(t, err)
	assert.Equal(t, StatementError, err.Kind)
}

func TestEmitStmt_LoadShared(t *testing.T) {
	s := &ast.LoadSharedStmt{Dest: "tile", Src: &ast.Ident{Name: "x"}}
	assert.Equal(t, "tile = x;\n", mustEmitStmt(t, s))
}

func TestEmitStmt_ScheduleAndTypeDefAreDropped(t *testing.T) {
	assert.Equal(t, "", mustEmitStmt(t, &ast.TypeDefStmt{Name: "T", Type: &ast.ScalarType{Kind: ast.I32}}))
	assert.Equal(t, "", mustEmitStmt(t, &ast.ScheduleStmt{Schedule: &ast.ScheduleBlock{}}))
}

func TestEmitStmt_KernelStmtIsError(t *testing.T) {
	w := newWriter()
	err := emitStmt(w, &ast.KernelStmt{Kernel: &ast.KernelDef{Name: "k"}})
	require.NotNil(t, err)
	assert.Equal(t, StatementError, err.Kind)
}
