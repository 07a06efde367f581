package msl

import (
	"math"
	"strconv"
	"strings"

	"github.com/flarelang/flare/ast"
)

// emitExpr renders an expression as MSL-syntax text.
func emitExpr(e ast.Expr) (string, *Error) {
	switch ex := e.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(ex.Value, 10), nil

	case *ast.FloatLit:
		return formatFloat(ex.Value), nil

	case *ast.BoolLit:
		if ex.Value {
			return "true", nil
		}
		return "false", nil

	case *ast.Ident:
		return ex.Name, nil

	case *ast.Binary:
		l, err := emitExpr(ex.Left)
		if err != nil {
			return "", err
		}
		r, err := emitExpr(ex.Right)
		if err != nil {
			return "", err
		}
		return "(" + l + " " + ex.Op.String() + " " + r + ")", nil

	case *ast.Unary:
		inner, err := emitExpr(ex.Expr)
		if err != nil {
			return "", err
		}
		return "(" + ex.Op.String() + inner + ")", nil

	case *ast.Call:
		fn, err := emitExpr(ex.Func)
		if err != nil {
			return "", err
		}
		args, err := emitExprList(ex.Args)
		if err != nil {
			return "", err
		}
		return fn + "(" + strings.Join(args, ", ") + ")", nil

	case *ast.Member:
		obj, err := emitExpr(ex.Object)
		if err != nil {
			return "", err
		}
		return obj + "." + ex.Field, nil

	case *ast.Index:
		obj, err := emitExpr(ex.Object)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		sb.WriteString(obj)
		for _, idx := range ex.Indices {
			s, err := emitExpr(idx)
			if err != nil {
				return "", err
			}
			sb.WriteString("[")
			sb.WriteString(s)
			sb.WriteString("]")
		}
		return sb.String(), nil

	case *ast.ArrayLit:
		elems, err := emitExprList(ex.Elements)
		if err != nil {
			return "", err
		}
		return "{ " + strings.Join(elems, ", ") + " }", nil

	case *ast.If:
		if ex.Else == nil {
			return "", newError(ExpressionError, ex.Span, "if-expression without else cannot produce a value")
		}
		cond, err := emitExpr(ex.Cond)
		if err != nil {
			return "", err
		}
		then, err := emitExpr(ex.Then)
		if err != nil {
			return "", err
		}
		els, err := emitExpr(ex.Else)
		if err != nil {
			return "", err
		}
		return "(" + cond + " ? " + then + " : " + els + ")", nil

	case *ast.Assign:
		target, err := emitExpr(ex.Target)
		if err != nil {
			return "", err
		}
		value, err := emitExpr(ex.Value)
		if err != nil {
			return "", err
		}
		return target + " = " + value, nil

	case *ast.CompoundAssign:
		target, err := emitExpr(ex.Target)
		if err != nil {
			return "", err
		}
		value, err := emitExpr(ex.Value)
		if err != nil {
			return "", err
		}
		return target + " " + ex.Op.String() + "= " + value, nil

	case *ast.Cast:
		inner, err := emitExpr(ex.Expr)
		if err != nil {
			return "", err
		}
		mt, cerr := convertType(ex.Type)
		if cerr != nil {
			return "", cerr
		}
		return mt.Text + "(" + inner + ")", nil

	case *ast.ThreadIdx:
		return "thread_position_in_threadgroup" + dimSuffix(ex.Dim), nil

	case *ast.BlockIdx:
		return "threadgroup_position_in_grid" + dimSuffix(ex.Dim), nil

	case *ast.BlockDim:
		return "threads_per_threadgroup" + dimSuffix(ex.Dim), nil

	case *ast.StringLit:
		return "", unsupportedFeatureErr(ex.Span, "string literal", "Metal has no string type; remove or replace with a numeric constant")

	case *ast.Range:
		return "", unsupportedFeatureErr(ex.Span, "range expression", "ranges are only valid as a for-loop iterator")

	case *ast.TensorInit:
		return "", unsupportedFeatureErr(ex.Span, "tensor initializer", "Metal has no tensor type; pass tensor data as a buffer parameter")

	case *ast.Block:
		return "", unsupportedFeatureErr(ex.Span, "block expression", "use an explicit statement sequence instead of a block expression")

	default:
		return "", newError(InternalError, e.Pos(), "unrecognized expression node")
	}
}

func emitExprList(exprs []ast.Expr) ([]string, *Error) {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		s, err := emitExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func dimSuffix(dim ast.BuiltinDim) string {
	switch dim {
	case ast.DimX:
		return ".x"
	case ast.DimY:
		return ".y"
	case ast.DimZ:
		return ".z"
	default:
		return ""
	}
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NAN"
	case math.IsInf(v, 1):
		return "INFINITY"
	case math.IsInf(v, -1):
		return "-INFINITY"
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64) + "f"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "f"
}
