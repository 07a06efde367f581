package msl

import (
	"strconv"
	"strings"

	"github.com/flarelang/flare/ast"
	"github.com/flarelang/flare/token"
)

// Options configures kernel code generation.
type Options struct {
	// DefaultThreadgroupSize is used when a kernel's block rank can't be
	// resolved and no schedule Threads directive is present.
	DefaultThreadgroupSize [3]int

	// MaxThreadsPerThreadgroup caps the resolved threadgroup size.
	MaxThreadsPerThreadgroup int
}

// DefaultOptions returns the conservative defaults used when a caller
// supplies no Options.
func DefaultOptions() Options {
	return Options{
		DefaultThreadgroupSize:   [3]int{256, 1, 1},
		MaxThreadsPerThreadgroup: 1024,
	}
}

// CompileKernel emits a full `kernel void` MSL definition for one kernel.
func CompileKernel(k *ast.KernelDef, schedule *ast.ScheduleBlock, opts Options) (string, *Error) {
	if len(k.GenericParams) > 0 {
		return "", newError(InvalidKernelConfig, k.Span,
			"generic kernel %q cannot be emitted; specialize the kernel host-side before compiling", k.Name)
	}
	if len(k.Grid) > 3 {
		return "", newError(InvalidKernelConfig, k.Span, "grid has %d dimensions, at most 3 are allowed", len(k.Grid))
	}
	if len(k.Block) > 3 {
		return "", newError(InvalidKernelConfig, k.Span, "block has %d dimensions, at most 3 are allowed", len(k.Block))
	}

	w := newWriter()

	if schedule != nil {
		for _, d := range schedule.Directives {
			line, err := renderDirective(d)
			if err != nil {
				return "", err
			}
			w.writeLine("// %s", line)
		}
	}

	sig, err := buildSignature(k)
	if err != nil {
		return "", err
	}

	w.writeLine("%s {", sig)
	w.pushIndent()
	for _, decl := range k.SharedMemory {
		if err := emitSharedMemoryDecl(w, decl); err != nil {
			return "", err
		}
	}
	for _, s := range k.Compute {
		if err := emitStmt(w, s); err != nil {
			return "", err
		}
	}
	for _, s := range k.Body {
		if err := emitStmt(w, s); err != nil {
			return "", err
		}
	}
	w.popIndent()
	w.writeLine("}")

	return w.String(), nil
}

// buildSignature assembles the `kernel void name(...)` line: user
// parameters with sequential [[buffer(N)]] bindings, followed by the three
// fixed built-in semantic parameters.
func buildSignature(k *ast.KernelDef) (string, *Error) {
	parts := make([]string, 0, len(k.Params)+3)
	for i, p := range k.Params {
		mt, err := convertType(p.Type)
		if err != nil {
			return "", err
		}
		parts = append(parts, mt.Text+" "+p.Name+" [[buffer("+strconv.Itoa(i)+")]]")
	}
	parts = append(parts,
		"uint3 thread_position_in_threadgroup [[thread_position_in_threadgroup]]",
		"uint3 threadgroup_position_in_grid [[threadgroup_position_in_grid]]",
		"uint3 threads_per_threadgroup [[threads_per_threadgroup]]")
	return "kernel void " + k.Name + "(" + strings.Join(parts, ", ") + ")", nil
}

func emitSharedMemoryDecl(w *Writer, decl ast.SharedMemoryDecl) *Error {
	if len(decl.Shape) == 0 {
		return newError(InvalidMemoryConfig, decl.Span, "shared memory declaration %q has an empty shape", decl.Name)
	}
	if decl.Type == nil {
		return newError(InvalidMemoryConfig, decl.Span, "shared memory declaration %q needs an explicit type", decl.Name)
	}
	mt, err := convertType(decl.Type)
	if err != nil {
		return err
	}
	typeText := mt.Text
	dims := make([]string, 0, len(decl.Shape))
	for _, e := range decl.Shape {
		s, err := emitExpr(e)
		if err != nil {
			return err
		}
		dims = append(dims, s)
	}
	w.writeLine("threadgroup %s %s[%s];", typeText, decl.Name, strings.Join(dims, " * "))
	return nil
}

func renderDirective(d ast.ScheduleDirective) (string, *Error) {
	switch d.Kind {
	case ast.DirTile:
		var parts []string
		for _, e := range []ast.Expr{d.TileX, d.TileY, d.TileZ} {
			if e == nil {
				continue
			}
			s, err := emitExpr(e)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "tile(" + strings.Join(parts, ", ") + ")", nil
	case ast.DirVectorize:
		n, err := emitExpr(d.N)
		if err != nil {
			return "", err
		}
		return "vectorize(" + n + ")", nil
	case ast.DirUnroll:
		n, err := emitExpr(d.N)
		if err != nil {
			return "", err
		}
		return "unroll(" + n + ")", nil
	case ast.DirThreads:
		var parts []string
		for _, e := range []ast.Expr{d.ThreadsX, d.ThreadsY} {
			if e == nil {
				continue
			}
			s, err := emitExpr(e)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "threads(" + strings.Join(parts, ", ") + ")", nil
	case ast.DirMemory:
		loc := d.MemoryLocation.Kind.String()
		if d.MemoryLocation.Kind == ast.MemNamed {
			loc = d.MemoryLocation.Name
		}
		text := "memory(" + d.MemoryVar + ", " + loc + ")"
		if d.MemoryLocation.Kind == ast.MemNamed {
			if hint := suggest(d.MemoryLocation.Name, ast.ReservedMemoryLocationNames()); hint != "" {
				text += " (did you mean \"" + hint + "\"?)"
			}
		}
		return text, nil
	case ast.DirStream:
		return "stream(" + d.StreamName + ")", nil
	case ast.DirPipeline:
		if d.Depth == nil {
			return "pipeline()", nil
		}
		depth, err := emitExpr(d.Depth)
		if err != nil {
			return "", err
		}
		return "pipeline(" + depth + ")", nil
	case ast.DirParallel:
		return "parallel", nil
	default:
		return "", newError(InvalidScheduleDirective, d.Span, "unrecognized schedule directive")
	}
}

// ResolveThreadgroupSize computes the Metal threadgroup (threads-per-group)
// size for a kernel, honoring the precedence: a schedule Threads directive,
// then the block section's rank, then opts.DefaultThreadgroupSize.
func ResolveThreadgroupSize(span token.Span, schedule *ast.ScheduleBlock, block []ast.Expr, opts Options) (x, y, z int, err *Error) {
	if opts.MaxThreadsPerThreadgroup == 0 {
		opts.MaxThreadsPerThreadgroup = 1024
	}
	if dx, dy, ok := threadsDirective(schedule); ok {
		x, y, z = dx, dy, 1
	} else {
		x, y, z = defaultSizeForRank(len(block), opts)
	}
	if x*y*z > opts.MaxThreadsPerThreadgroup {
		return 0, 0, 0, newError(ResourceLimitExceeded, span,
			"threadgroup size %dx%dx%d exceeds max_threads_per_threadgroup %d", x, y, z, opts.MaxThreadsPerThreadgroup)
	}
	return x, y, z, nil
}

func threadsDirective(schedule *ast.ScheduleBlock) (x, y int, ok bool) {
	if schedule == nil {
		return 0, 0, false
	}
	for _, d := range schedule.Directives {
		if d.Kind != ast.DirThreads {
			continue
		}
		xv, xok := intLiteralValue(d.ThreadsX)
		if !xok {
			return 0, 0, false
		}
		yv := 1
		if d.ThreadsY != nil {
			if v, ok := intLiteralValue(d.ThreadsY); ok {
				yv = v
			}
		}
		return xv, yv, true
	}
	return 0, 0, false
}

func intLiteralValue(e ast.Expr) (int, bool) {
	lit, ok := e.(*ast.IntLit)
	if !ok {
		return 0, false
	}
	return int(lit.Value), true
}

func defaultSizeForRank(rank int, opts Options) (int, int, int) {
	switch rank {
	case 1:
		return 256, 1, 1
	case 2:
		return 16, 16, 1
	case 3:
		return 8, 8, 8
	default:
		return opts.DefaultThreadgroupSize[0], opts.DefaultThreadgroupSize[1], opts.DefaultThreadgroupSize[2]
	}
}
