package msl

import (
	"strings"

	"github.com/flarelang/flare/ast"
)

// emitStmt renders one statement, writing it (possibly as several lines)
// to w.
func emitStmt(w *Writer, s ast.Stmt) *Error {
	switch st := s.(type) {
	case *ast.LetStmt:
		return emitBinding(w, "const", st.Name, st.Type, st.Value)
	case *ast.VarStmt:
		return emitVarStmt(w, st)
	case *ast.ConstStmt:
		return emitBinding(w, "constant", st.Name, st.Type, st.Value)
	case *ast.IfStmt:
		return emitIfStmt(w, st)
	case *ast.WhileStmt:
		return emitWhileStmt(w, st)
	case *ast.ForStmt:
		return emitForStmt(w, st)
	case *ast.ReturnStmt:
		return emitReturnStmt(w, st)
	case *ast.BlockStmt:
		return emitBlockStmt(w, st)
	case *ast.SyncThreadsStmt:
		w.writeLine("threadgroup_barrier(mem_flags::mem_threadgroup);")
		return nil
	case *ast.LoadSharedStmt:
		src, err := emitExpr(st.Src)
		if err != nil {
			return err
		}
		w.writeLine("%s = %s;", st.Dest, src)
		return nil
	case *ast.ExprStmt:
		e, err := emitExpr(st.Expr)
		if err != nil {
			return err
		}
		w.writeLine("%s;", e)
		return nil
	case *ast.FusionStmt, *ast.ScheduleStmt, *ast.TypeDefStmt:
		return nil
	case *ast.KernelStmt:
		return newError(StatementError, st.Pos(), "kernel definitions are emitted by the kernel emitter, not inline")
	case *ast.FunctionStmt:
		return emitFunctionStmt(w, st)
	default:
		return newError(InternalError, s.Pos(), "unrecognized statement node")
	}
}

func emitBinding(w *Writer, keyword, name string, ty ast.Type, value ast.Expr) *Error {
	typeText := "auto"
	if ty != nil {
		mt, err := convertType(ty)
		if err != nil {
			return err
		}
		typeText = mt.Text
	}
	val, err := emitExpr(value)
	if err != nil {
		return err
	}
	w.writeLine("%s %s %s = %s;", keyword, typeText, name, val)
	return nil
}

func emitVarStmt(w *Writer, st *ast.VarStmt) *Error {
	if st.Type == nil && st.Value == nil {
		return newError(StatementError, st.Span, "var %q needs an explicit type or an initializer", st.Name)
	}
	typeText := "auto"
	if st.Type != nil {
		mt, err := convertType(st.Type)
		if err != nil {
			return err
		}
		typeText = mt.Text
	}
	if st.Value == nil {
		w.writeLine("%s %s;", typeText, st.Name)
		return nil
	}
	val, err := emitExpr(st.Value)
	if err != nil {
		return err
	}
	w.writeLine("%s %s = %s;", typeText, st.Name, val)
	return nil
}

func emitIfStmt(w *Writer, st *ast.IfStmt) *Error {
	cond, err := emitExpr(st.Cond)
	if err != nil {
		return err
	}
	w.writeLine("if (%s) {", cond)
	w.pushIndent()
	if err := emitBodyStmt(w, st.Then); err != nil {
		return err
	}
	w.popIndent()
	if st.Else != nil {
		w.writeLine("} else {")
		w.pushIndent()
		if err := emitBodyStmt(w, st.Else); err != nil {
			return err
		}
		w.popIndent()
	}
	w.writeLine("}")
	return nil
}

func emitWhileStmt(w *Writer, st *ast.WhileStmt) *Error {
	cond, err := emitExpr(st.Cond)
	if err != nil {
		return err
	}
	w.writeLine("while (%s) {", cond)
	w.pushIndent()
	if err := emitBodyStmt(w, st.Body); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

func emitForStmt(w *Writer, st *ast.ForStmt) *Error {
	rng, ok := st.Iterator.(*ast.Range)
	if !ok {
		return newError(StatementError, st.Span, "for loop iterator must be a range expression")
	}
	if rng.End == nil {
		return newError(StatementError, rng.Span, "for loop range must have an explicit end")
	}
	startText := "0"
	if rng.Start != nil {
		s, err := emitExpr(rng.Start)
		if err != nil {
			return err
		}
		startText = s
	}
	endText, err := emitExpr(rng.End)
	if err != nil {
		return err
	}
	w.writeLine("for (int %s = %s; %s < %s; %s++) {", st.Var, startText, st.Var, endText, st.Var)
	w.pushIndent()
	if err := emitBodyStmt(w, st.Body); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

func emitReturnStmt(w *Writer, st *ast.ReturnStmt) *Error {
	if st.Value == nil {
		w.writeLine("return;")
		return nil
	}
	v, err := emitExpr(st.Value)
	if err != nil {
		return err
	}
	w.writeLine("return %s;", v)
	return nil
}

func emitBlockStmt(w *Writer, st *ast.BlockStmt) *Error {
	w.writeLine("{")
	w.pushIndent()
	for _, inner := range st.Stmts {
		if err := emitStmt(w, inner); err != nil {
			return err
		}
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

// emitBodyStmt emits the body of an if/while/for whose braces the caller
// has already opened: a block's statements are inlined, a single statement
// is emitted directly.
func emitBodyStmt(w *Writer, s ast.Stmt) *Error {
	if block, ok := s.(*ast.BlockStmt); ok {
		for _, inner := range block.Stmts {
			if err := emitStmt(w, inner); err != nil {
				return err
			}
		}
		return nil
	}
	return emitStmt(w, s)
}

func emitFunctionStmt(w *Writer, st *ast.FunctionStmt) *Error {
	retText := "void"
	if st.ReturnType != nil {
		mt, err := convertType(st.ReturnType)
		if err != nil {
			return err
		}
		retText = mt.Text
	}
	params, err := formatParamList(st.Params)
	if err != nil {
		return err
	}
	bodyText, err := emitExpr(st.Body)
	if err != nil {
		return err
	}
	w.writeLine("%s %s(%s) {", retText, st.Name, params)
	w.pushIndent()
	w.writeLine("return %s;", bodyText)
	w.popIndent()
	w.writeLine("}")
	return nil
}

func formatParamList(params []ast.Param) (string, *Error) {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		mt, err := convertType(p.Type)
		if err != nil {
			return "", err
		}
		parts = append(parts, mt.Text+" "+p.Name)
	}
	return strings.Join(parts, ", "), nil
}
