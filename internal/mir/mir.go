// Package mir is a placeholder for a mid-level IR lowering stage.
//
// Nothing in this repository calls into it. Lowering the AST through a MIR
// before Metal codegen is future work, once the kernel emitter's direct
// AST-walking approach shows concrete pressure (a second backend, an
// optimization pass) that justifies the extra stage.
package mir

import "github.com/flarelang/flare/ast"

// Module is the eventual lowered-program representation. It has no
// constructor yet; Lower is unimplemented.
type Module struct {
	Kernels []Kernel
}

// Kernel is the eventual lowered-kernel representation.
type Kernel struct {
	Name string
}

// Lower is unimplemented. It exists to pin down the shape future work
// will need to fill in.
func Lower(*ast.Program) (*Module, error) {
	panic("mir: lowering is not implemented")
}
