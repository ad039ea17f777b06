//go:build !amd64

package jit

import (
	"fmt"

	"github.com/example/implicitmodeler/ir"
)

// nativeCompile always declines on architectures without a codegen
// backend; Compile falls back to the interpreter. wazero's engine
// package follows the same shape: a compiler engine that is only wired
// in on supported GOARCH values, with the interpreter as the universal
// baseline.
func nativeCompile(prog ir.Program) (*CompiledProgram, error) {
	return nil, fmt.Errorf("jit: no native backend for this architecture")
}
