package msl

import (
	"strconv"

	"github.com/flarelang/flare/ast"
)

// MetalType is a converted MSL type descriptor.
type MetalType struct {
	Text      string
	SizeBytes int // 0 if unknown
	Alignment int // 0 if unknown
}

// vectorBaseScalars are the elementary scalar spellings a Vector's dtype
// must convert to.
var vectorBaseScalars = map[string]bool{
	"int": true, "uint": true, "float": true, "double": true,
	"bool": true, "short": true, "ushort": true, "char": true, "uchar": true,
}

// vectorBaseScalarNames is vectorBaseScalars' keys, for suggestion lookups.
var vectorBaseScalarNames = func() []string {
	names := make([]string, 0, len(vectorBaseScalars))
	for n := range vectorBaseScalars {
		names = append(names, n)
	}
	return names
}()

// vectorLengthNames and matrixDimNames are the valid shorthand lengths for
// vector and matrix type instantiations, for suggestion lookups.
var vectorLengthNames = []string{"2", "3", "4"}
var matrixDimNames = []string{"2", "3", "4"}
var matrixBaseNames = []string{"float", "half"}

// namedScalarAllowlist covers the elementary scalar names usable directly
// in type position (as a Named type), beyond the dedicated scalar keywords.
var namedScalarAllowlist = []string{
	"int", "uint", "float", "double", "bool",
	"short", "ushort", "char", "uchar", "half", "long", "ulong",
	"size_t", "ptrdiff_t",
}

// vectorMatrixInstantiations lists the allowed Named spellings of vector and
// matrix instantiations, e.g. "float3", "float4x4".
var vectorMatrixInstantiations = func() []string {
	var names []string
	for _, base := range []string{"int", "uint", "float", "half"} {
		for _, n := range []string{"2", "3", "4"} {
			names = append(names, base+n)
		}
	}
	for _, base := range []string{"float", "half"} {
		for _, c := range []string{"2", "3", "4"} {
			for _, r := range []string{"2", "3", "4"} {
				names = append(names, base+c+"x"+r)
			}
		}
	}
	return names
}()

func namedAllowlist() []string {
	all := make([]string, 0, len(namedScalarAllowlist)+len(vectorMatrixInstantiations))
	all = append(all, namedScalarAllowlist...)
	all = append(all, vectorMatrixInstantiations...)
	return all
}

func isInList(name string, list []string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

// convertType maps an AST type to its MSL type descriptor.
func convertType(t ast.Type) (MetalType, *Error) {
	switch ty := t.(type) {
	case *ast.ScalarType:
		return convertScalar(ty.Kind), nil

	case *ast.NamedType:
		if isInList(ty.Name, namedScalarAllowlist) || isInList(ty.Name, vectorMatrixInstantiations) {
			return MetalType{Text: ty.Name}, nil
		}
		return MetalType{}, unsupportedTypeErr(ty.Span, ty.Name, namedAllowlist(),
			"unknown named type %q", ty.Name)

	case *ast.VectorType:
		return convertVector(ty)

	case *ast.MatrixType:
		return convertMatrix(ty)

	case *ast.TensorType:
		inner, err := convertType(ty.DType)
		if err != nil {
			return MetalType{}, err
		}
		return MetalType{Text: "device " + inner.Text + "*"}, nil

	case *ast.PtrType:
		inner, err := convertType(ty.DType)
		if err != nil {
			return MetalType{}, err
		}
		return MetalType{Text: "device " + inner.Text + "*"}, nil

	case *ast.ArrayType:
		inner, err := convertType(ty.DType)
		if err != nil {
			return MetalType{}, err
		}
		if ty.Size == "" {
			return MetalType{Text: "device " + inner.Text + "*"}, nil
		}
		return MetalType{Text: inner.Text + "[" + ty.Size + "]"}, nil

	default:
		return MetalType{}, newError(InternalError, t.Pos(), "unrecognized type node")
	}
}

func convertScalar(kind ast.ScalarKind) MetalType {
	switch kind {
	case ast.I32:
		return MetalType{Text: "int", SizeBytes: 4, Alignment: 4}
	case ast.I64:
		return MetalType{Text: "long", SizeBytes: 8, Alignment: 8}
	case ast.U32:
		return MetalType{Text: "uint", SizeBytes: 4, Alignment: 4}
	case ast.U64:
		return MetalType{Text: "ulong", SizeBytes: 8, Alignment: 8}
	case ast.F32:
		return MetalType{Text: "float", SizeBytes: 4, Alignment: 4}
	case ast.F64:
		return MetalType{Text: "double", SizeBytes: 8, Alignment: 8}
	case ast.Bool:
		return MetalType{Text: "bool", SizeBytes: 1, Alignment: 1}
	default:
		return MetalType{Text: "int", SizeBytes: 4, Alignment: 4}
	}
}

func convertVector(ty *ast.VectorType) (MetalType, *Error) {
	base, err := convertType(ty.DType)
	if err != nil {
		return MetalType{}, err
	}
	if !vectorBaseScalars[base.Text] {
		return MetalType{}, unsupportedTypeErr(ty.Span, base.Text, vectorBaseScalarNames,
			"vector base type %q is not an elementary scalar", base.Text)
	}
	n, ok := resolveDimension(ty.Len)
	if !ok || (n != 2 && n != 3 && n != 4) {
		return MetalType{}, unsupportedTypeErr(ty.Span, ty.Len, vectorLengthNames,
			"vector length must be 2, 3, or 4, found %q", ty.Len)
	}
	return MetalType{Text: base.Text + strconv.Itoa(n)}, nil
}

func convertMatrix(ty *ast.MatrixType) (MetalType, *Error) {
	base, err := convertType(ty.DType)
	if err != nil {
		return MetalType{}, err
	}
	if base.Text != "float" && base.Text != "half" {
		return MetalType{}, unsupportedTypeErr(ty.Span, base.Text, matrixBaseNames,
			"matrix base type must be float or half, found %q", base.Text)
	}
	rows, rok := parseDimLiteral(ty.Rows)
	cols, cok := parseDimLiteral(ty.Cols)
	if !rok || !cok || rows < 2 || rows > 4 || cols < 2 || cols > 4 {
		badDim := ty.Rows
		if rok && rows >= 2 && rows <= 4 {
			badDim = ty.Cols
		}
		return MetalType{}, unsupportedTypeErr(ty.Span, badDim, matrixDimNames,
			"matrix dimensions must be integer literals in [2, 4], found %q x %q", ty.Rows, ty.Cols)
	}
	return MetalType{Text: base.Text + strconv.Itoa(cols) + "x" + strconv.Itoa(rows)}, nil
}

// resolveDimension resolves a vector length lexeme, accepting the shorthand
// component names x|y|z as 2|3|4 alongside integer literals.
func resolveDimension(lexeme string) (int, bool) {
	switch lexeme {
	case "x":
		return 2, true
	case "y":
		return 3, true
	case "z":
		return 4, true
	}
	return parseDimLiteral(lexeme)
}

func parseDimLiteral(lexeme string) (int, bool) {
	n, err := strconv.Atoi(lexeme)
	if err != nil {
		return 0, false
	}
	return n, true
}
