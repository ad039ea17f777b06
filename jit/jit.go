// Package jit turns a validated ir.Program into a callable float64(x, y,
// z) function. It follows the dual-engine split tetratelabs-wazero uses
// for WebAssembly: a portable interpreter that always works, and a
// native amd64 compiler that replaces it when the program and the build
// target both support it. Callers evaluate the same CompiledFn either
// way; CompiledProgram.Native reports which engine produced it.
package jit

import (
	"fmt"

	"github.com/example/implicitmodeler/ir"
)

// CompiledFn evaluates a compiled Program at one point in space.
type CompiledFn func(x, y, z float64) float64

// CompiledProgram owns a CompiledFn plus whatever backing resources its
// engine allocated (executable pages, for the native backend). Release
// must be called once the function is no longer needed.
type CompiledProgram struct {
	Eval    CompiledFn
	Native  bool
	release func()
}

// Release frees any resources the engine holds. It is safe to call more
// than once and safe to call on a zero-value CompiledProgram.
func (c *CompiledProgram) Release() {
	if c != nil && c.release != nil {
		c.release()
		c.release = nil
	}
}

// Compile lowers prog to a callable function. It validates prog first
// (spec.md §4.2: "compiling an invalid program is an error, not a
// panic"), then tries the native backend, falling back to the
// interpreter when the native backend declines — unsupported
// architecture, or an instruction it does not implement directly.
func Compile(prog ir.Program) (*CompiledProgram, error) {
	if err := prog.Validate(); err != nil {
		return nil, fmt.Errorf("jit: refusing to compile invalid program: %w", err)
	}
	if cp, err := nativeCompile(prog); err == nil {
		return cp, nil
	}
	fn := newInterpreter(prog)
	return &CompiledProgram{Eval: fn.eval, Native: false}, nil
}
