//go:build amd64

package jit

import (
	"runtime"
	"unsafe"

	"github.com/example/implicitmodeler/ir"
)

//go:noescape
func callCompiled(fn uintptr, regfile unsafe.Pointer)

func nativeCompile(prog ir.Program) (*CompiledProgram, error) {
	code, err := assemble(prog)
	if err != nil {
		return nil, err
	}
	page, err := allocExec(code)
	if err != nil {
		return nil, err
	}

	nregs := int(ir.NumParamRegisters)
	for _, instr := range prog.Instructions {
		if int(instr.Out)+1 > nregs {
			nregs = int(instr.Out) + 1
		}
	}
	for reg := range prog.Constants {
		if int(reg)+1 > nregs {
			nregs = int(reg) + 1
		}
	}
	consts := prog.Constants
	resultReg := prog.Result()
	fnAddr := uintptr(unsafe.Pointer(&page.mem[0]))

	eval := func(x, y, z float64) float64 {
		regfile := make([]float64, nregs)
		regfile[ir.RegX], regfile[ir.RegY], regfile[ir.RegZ] = x, y, z
		for reg, v := range consts {
			regfile[reg] = v
		}
		callCompiled(fnAddr, unsafe.Pointer(&regfile[0]))
		runtime.KeepAlive(page)
		return regfile[resultReg]
	}

	return &CompiledProgram{Eval: eval, Native: true, release: page.free}, nil
}
