// Package flare compiles the Flare GPU-kernel DSL to Metal Shading
// Language compute kernels. The public contract is a single pure
// function: Compile takes source text and returns MSL text or an error.
package flare

import (
	"fmt"
	"strings"

	"github.com/flarelang/flare/ast"
	"github.com/flarelang/flare/msl"
	"github.com/flarelang/flare/parser"
)

// Stage identifies which pipeline component produced a CompileError.
type Stage string

const (
	StageParse  Stage = "parse"
	StageCodegen Stage = "codegen"
)

// CompileError wraps an underlying parser or codegen error with the stage
// that produced it.
type CompileError struct {
	Stage Stage
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("flare: %s error: %s", e.Stage, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Options configures compilation. The zero value is not valid; use
// DefaultOptions.
type Options struct {
	Metal msl.Options
}

// DefaultOptions returns the default compilation options.
func DefaultOptions() Options {
	return Options{Metal: msl.DefaultOptions()}
}

// Compile parses source as a Flare program and emits the concatenated MSL
// text of each top-level kernel, separated by blank lines.
func Compile(source string) (string, error) {
	return CompileWithOptions(source, DefaultOptions())
}

// CompileWithOptions is Compile with explicit kernel-emission options.
func CompileWithOptions(source string, opts Options) (string, error) {
	program, perr := parser.Parse(source)
	if perr != nil {
		return "", &CompileError{Stage: StageParse, Err: perr}
	}

	schedules := make(map[string]*ast.ScheduleBlock)
	for _, item := range program.Items {
		if s, ok := item.(*ast.ScheduleStmt); ok && s.Schedule.Target != "" {
			schedules[s.Schedule.Target] = s.Schedule
		}
	}

	var chunks []string
	for _, item := range program.Items {
		kstmt, ok := item.(*ast.KernelStmt)
		if !ok {
			continue
		}
		text, merr := msl.CompileKernel(kstmt.Kernel, schedules[kstmt.Kernel.Name], opts.Metal)
		if merr != nil {
			return "", &CompileError{Stage: StageCodegen, Err: merr}
		}
		chunks = append(chunks, text)
	}

	return strings.Join(chunks, "\n"), nil
}
