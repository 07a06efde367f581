package msl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelang/flare/ast"
)

func TestConvertType_Scalars(t *testing.T) {
	cases := []struct {
		kind ast.ScalarKind
		want string
	}{
		{ast.I32, "int"},
		{ast.I64, "long"},
		{ast.U32, "uint"},
		{ast.U64, "ulong"},
		{ast.F32, "float"},
		{ast.F64, "double"},
		{ast.Bool, "bool"},
	}
	for _, c := range cases {
		mt, err := convertType(&ast.ScalarType{Kind: c.kind})
		require.Nil(t, err)
		assert.Equal(t, c.want, mt.Text)
	}
}

func TestConvertType_Vector(t *testing.T) {
	mt, err := convertType(&ast.VectorType{DType: &ast.ScalarType{Kind: ast.F32}, Len: "3"})
	require.Nil(t, err)
	assert.Equal(t, "float3", mt.Text)
}

func TestConvertType_VectorInvalidLength(t *testing.T) {
	_, err := convertType(&ast.VectorType{DType: &ast.ScalarType{Kind: ast.F32}, Len: "5"})
	require.NotNil(t, err)
	assert.Equal(t, UnsupportedType, err.Kind)
}

func TestConvertType_Matrix(t *testing.T) {
	mt, err := convertType(&ast.MatrixType{DType: &ast.ScalarType{Kind: ast.F32}, Rows: "4", Cols: "4"})
	require.Nil(t, err)
	assert.Equal(t, "float4x4", mt.Text)
}

func TestConvertType_MatrixNonFloatBaseRejected(t *testing.T) {
	_, err := convertType(&ast.MatrixType{DType: &ast.ScalarType{Kind: ast.I32}, Rows: "3", Cols: "3"})
	require.NotNil(t, err)
	assert.Equal(t, UnsupportedType, err.Kind)
}

func TestConvertType_PtrEmitsDeviceAddressSpace(t *testing.T) {
	mt, err := convertType(&ast.PtrType{DType: &ast.ScalarType{Kind: ast.F32}})
	require.Nil(t, err)
	assert.Equal(t, "device float*", mt.Text)
}

func TestConvertType_SizedArray(t *testing.T) {
	mt, err := convertType(&ast.ArrayType{DType: &ast.ScalarType{Kind: ast.I32}, Size: "16"})
	require.Nil(t, err)
	assert.Equal(t, "int[16]", mt.Text)
}

func TestConvertType_UnsizedArrayEmitsDevicePointer(t *testing.T) {
	mt, err := convertType(&ast.ArrayType{DType: &ast.ScalarType{Kind: ast.I32}})
	require.Nil(t, err)
	assert.Equal(t, "device int*", mt.Text)
}

func TestConvertType_UnknownNamedTypeSuggestsClosest(t *testing.T) {
	_, err := convertType(&ast.NamedType{Name: "flaot"})
	require.NotNil(t, err)
	assert.Equal(t, UnsupportedType, err.Kind)
	assert.Equal(t, "float", err.Suggestion)
}

func TestConvertType_VectorBaseRejectedWithSuggestionAttempted(t *testing.T) {
	_, err := convertType(&ast.VectorType{DType: &ast.NamedType{Name: "long"}, Len: "3"})
	require.NotNil(t, err)
	assert.Equal(t, UnsupportedType, err.Kind)
}

func TestConvertType_MatrixBadDimsPicksTheInvalidOne(t *testing.T) {
	_, err := convertType(&ast.MatrixType{DType: &ast.ScalarType{Kind: ast.F32}, Rows: "3", Cols: "9"})
	require.NotNil(t, err)
	assert.Equal(t, UnsupportedType, err.Kind)
}

func TestConvertType_NamedAllowlistInstantiations(t *testing.T) {
	mt, err := convertType(&ast.NamedType{Name: "float4x4"})
	require.Nil(t, err)
	assert.Equal(t, "float4x4", mt.Text)
}
